//go:build !js_eval

package query

// NewJSEvaluator is unavailable without the js_eval build tag; it returns nil
// so callers can fall back to the expr engine.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

func jsEvaluatorAvailable() bool {
	return false
}
