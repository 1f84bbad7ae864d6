package query

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-hiddenquery/pkg/events"
	"github.com/goliatone/go-hiddenquery/pkg/state"
)

// Results is the outcome of one query execution.
type Results struct {
	Request    Request
	Documents  []Document
	TotalCount int
	Duration   time.Duration
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithEvaluator replaces the default expr evaluator.
func WithEvaluator(e Evaluator) ControllerOption {
	return func(c *Controller) {
		if e != nil {
			c.evaluator = e
		}
	}
}

// WithProgramCache configures the cache used by the default evaluator.
func WithProgramCache(cache ProgramCache) ControllerOption {
	return func(c *Controller) {
		c.cache = cache
	}
}

// WithFunctionRegistry configures the helpers exposed by the default evaluator.
func WithFunctionRegistry(registry *FunctionRegistry) ControllerOption {
	return func(c *Controller) {
		if registry != nil {
			c.registry = registry.Clone()
		}
	}
}

// WithStateModel seeds the free text expression from the model's q attribute.
func WithStateModel(model state.Model) ControllerOption {
	return func(c *Controller) {
		c.model = model
	}
}

// WithTextFields lists the document fields free text terms are matched
// against. Defaults to "title".
func WithTextFields(fields ...string) ControllerOption {
	return func(c *Controller) {
		if len(fields) > 0 {
			c.textFields = append([]string(nil), fields...)
		}
	}
}

// WithConstantExpression adds a fragment to every query.
func WithConstantExpression(expression string) ControllerOption {
	return func(c *Controller) {
		c.constant = expression
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEvaluationLogger attaches an evaluation logger.
func WithEvaluationLogger(logger EvaluationLogger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.evalLogger = logger
		}
	}
}

// Controller runs queries: it lets subscribers contribute to a fresh Builder
// through the BuildingQuery topic, then filters the index with the result.
type Controller struct {
	// BuildingQuery fires once per execution before the request is frozen.
	BuildingQuery *events.Topic[*BuildingQueryArgs]
	// Success fires after an execution completed without error.
	Success *events.Topic[*Results]

	index      Index
	evaluator  Evaluator
	cache      ProgramCache
	registry   *FunctionRegistry
	model      state.Model
	textFields []string
	constant   string
	logger     Logger
	evalLogger EvaluationLogger

	mu         sync.Mutex
	last       *Results
	executions int
}

// NewController constructs a controller over index.
func NewController(index Index, opts ...ControllerOption) *Controller {
	c := &Controller{
		BuildingQuery: events.NewTopic[*BuildingQueryArgs]("query.building"),
		Success:       events.NewTopic[*Results]("query.success"),
		index:         index,
		textFields:    []string{"title"},
		logger:        noopLogger{},
		evalLogger:    noopEvaluationLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.evaluator == nil {
		c.evaluator = c.defaultEvaluator()
	}
	return c
}

func (c *Controller) defaultEvaluator() Evaluator {
	var exprOpts []ExprEvaluatorOption
	if c.cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(c.cache))
	}
	registry := c.registry
	if registry == nil {
		registry = StandardFunctions()
	}
	exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	return NewExprEvaluator(exprOpts...)
}

// ExecuteQuery runs a query and records its results.
func (c *Controller) ExecuteQuery(ctx context.Context) error {
	_, err := c.Search(ctx)
	return err
}

// Search runs a query and returns its results.
func (c *Controller) Search(ctx context.Context) (*Results, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.index == nil {
		return nil, ErrNoIndex
	}
	if c.evaluator == nil {
		return nil, ErrNoEvaluator
	}

	builder := NewBuilder()
	builder.Expression.Add(state.String(c.model, state.Q))
	builder.ConstantExpression.Add(c.constant)
	if err := c.BuildingQuery.Publish(ctx, &BuildingQueryArgs{Builder: builder}); err != nil {
		c.logger.Error("query: building query handlers failed", "error", err)
		return nil, fmt.Errorf("query: building query: %w", err)
	}
	request := builder.Build()

	start := time.Now()
	results, err := c.run(ctx, request)
	duration := time.Since(start)

	event := EvaluationLogEvent{
		Engine:   evaluatorEngineName(c.evaluator),
		Expr:     request.Filter(),
		Duration: duration,
		Err:      err,
	}
	if results != nil {
		event.Scanned = results.TotalCount
		event.Matched = len(results.Documents)
	}
	c.evalLogger.LogEvaluation(event)

	if err != nil {
		c.logger.Error("query: execution failed", "q", request.Q, "aq", request.AQ, "cq", request.CQ, "error", err)
		return nil, err
	}
	results.Duration = duration
	c.logger.Debug("query: executed", "q", request.Q, "aq", request.AQ, "cq", request.CQ, "matched", len(results.Documents), "duration", duration)

	c.mu.Lock()
	c.last = results
	c.executions++
	c.mu.Unlock()

	if err := c.Success.Publish(ctx, results); err != nil {
		c.logger.Warn("query: success handlers failed", "error", err)
	}
	return results, nil
}

func (c *Controller) run(ctx context.Context, request Request) (*Results, error) {
	docs, err := c.index.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: load documents: %w", err)
	}

	var program CompiledExpression
	if filter := request.Filter(); filter != "" {
		program, err = c.evaluator.Compile(filter)
		if err != nil {
			return nil, wrapEvaluatorError(evaluatorEngineName(c.evaluator), err)
		}
	}

	terms := strings.Fields(Fold(request.Q))
	now := time.Now()
	results := &Results{Request: request, TotalCount: len(docs)}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !c.matchesTerms(doc, terms) {
			continue
		}
		matched, err := Match(program, MatchContext{Document: doc, Now: &now})
		if err != nil {
			return nil, wrapEvaluationError(evaluatorEngineName(c.evaluator), request.Filter(), doc.ID, err)
		}
		if matched {
			results.Documents = append(results.Documents, doc)
		}
	}
	return results, nil
}

func (c *Controller) matchesTerms(doc Document, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	var text strings.Builder
	for _, field := range c.textFields {
		if value, ok := doc.Fields[field]; ok {
			text.WriteString(Fold(toString(value)))
			text.WriteByte(' ')
		}
	}
	haystack := text.String()
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// LastResults returns the results of the latest successful execution.
func (c *Controller) LastResults() *Results {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Executions reports how many executions completed successfully.
func (c *Controller) Executions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.executions
}

// NewEvaluator returns the evaluator registered for engine: "expr", "cel"
// or "js" (js_eval builds only).
func NewEvaluator(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", "expr":
		return NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry)), nil
	case "cel":
		return NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry)), nil
	case "js":
		if !jsEvaluatorAvailable() {
			return nil, fmt.Errorf("%w: js engine requires the js_eval build tag", ErrNoEvaluator)
		}
		return NewJSEvaluator(JSWithProgramCache(cache), JSWithFunctionRegistry(registry)), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrNoEvaluator, engine)
	}
}
