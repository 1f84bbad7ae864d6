package hiddenquery

import "errors"

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("hiddenquery: invalid config")
	// ErrMissingState is returned by New when no state model is bound.
	ErrMissingState = errors.New("hiddenquery: state model is required")
	// ErrNilArguments is returned by event handlers invoked without a payload.
	ErrNilArguments = errors.New("hiddenquery: nil event arguments")
)
