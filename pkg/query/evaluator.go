package query

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Document is a searchable record. Fields are exposed to filter expressions
// as top level variables; ID is also bound as "id" unless a field shadows it.
type Document struct {
	ID     string
	Fields map[string]any
}

// MatchContext carries the inputs needed when evaluating a filter against a
// single document.
type MatchContext struct {
	Document Document
	Now      *time.Time
	Args     map[string]any
}

func (ctx MatchContext) withDefaults() MatchContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx MatchContext) timestamp() time.Time {
	ctx = ctx.withDefaults()
	return *ctx.Now
}

// variables returns the document fields plus the reserved bindings.
func (ctx MatchContext) variables() map[string]any {
	vars := map[string]any{
		"id":   ctx.Document.ID,
		"now":  ctx.timestamp(),
		"args": ctx.Args,
	}
	for key, value := range ctx.Document.Fields {
		vars[key] = value
	}
	return vars
}

// Evaluator executes filter expressions against documents.
type Evaluator interface {
	Evaluate(ctx MatchContext, expression string) (any, error)
	Compile(expression string) (CompiledExpression, error)
}

// CompiledExpression is a reusable filter program.
type CompiledExpression interface {
	Evaluate(ctx MatchContext) (any, error)
}

// Match evaluates program against ctx and requires a boolean outcome.
func Match(program CompiledExpression, ctx MatchContext) (bool, error) {
	if program == nil {
		return true, nil
	}
	value, err := program.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	matched, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("query: filter must evaluate to bool, got %T", value)
	}
	return matched, nil
}

func fieldSignature(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if named, ok := e.(interface{ Engine() string }); ok {
			return named.Engine()
		}
		return "custom"
	}
}
