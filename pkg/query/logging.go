package query

import "time"

// EvaluationLogEvent describes one query execution for logging.
type EvaluationLogEvent struct {
	Engine   string
	Expr     string
	Scanned  int
	Matched  int
	Duration time.Duration
	Err      error
}

// EvaluationLogger records query executions.
type EvaluationLogger interface {
	LogEvaluation(EvaluationLogEvent)
}

// EvaluationLoggerFunc adapts a function to EvaluationLogger.
type EvaluationLoggerFunc func(EvaluationLogEvent)

// LogEvaluation implements EvaluationLogger.
func (f EvaluationLoggerFunc) LogEvaluation(event EvaluationLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluationLogger struct{}

func (noopEvaluationLogger) LogEvaluation(EvaluationLogEvent) {}

// Logger is the structured logging contract used by the controller.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
