// Package hiddenquery keeps a hidden query expression (HQ) and its
// human-readable description (HD), both held in a shared state model, in sync
// with the query pipeline and the breadcrumb pipeline.
//
// While HQ is non-empty every executed query is narrowed by it, and the
// breadcrumb shows a removable entry summarising it. Removing that entry
// clears both attributes, logs a contextRemove analytics event and re-runs
// the query. Clearing every breadcrumb at once clears the attributes silently,
// leaving the single re-run to the breadcrumb manager.
package hiddenquery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-hiddenquery/pkg/activity"
	"github.com/goliatone/go-hiddenquery/pkg/breadcrumb"
	"github.com/goliatone/go-hiddenquery/pkg/events"
	"github.com/goliatone/go-hiddenquery/pkg/query"
	"github.com/goliatone/go-hiddenquery/pkg/state"
)

// ComponentID identifies the component in breadcrumb entries and analytics.
const ComponentID = "HiddenQuery"

// Ellipsis is appended to truncated descriptions.
const Ellipsis = " …"

// QueryExecutor re-runs the current query. *query.Controller satisfies it.
type QueryExecutor interface {
	ExecuteQuery(ctx context.Context) error
}

// AnalyticsLogger records usage events. *activity.Emitter satisfies it.
type AnalyticsLogger interface {
	Emit(ctx context.Context, event activity.Event) error
}

// Bindings are the collaborators the component attaches to. State is
// required; a nil source is not subscribed and a nil Query or Analytics turns
// the matching step of Clear into a no-op.
type Bindings struct {
	State              state.Model
	BuildingQuery      events.Source[*query.BuildingQueryArgs]
	PopulateBreadcrumb events.Source[*breadcrumb.PopulateArgs]
	ClearBreadcrumb    events.Source[breadcrumb.ClearArgs]
	Query              QueryExecutor
	Analytics          AnalyticsLogger
}

// HiddenQuery is the hidden filter synchronizer.
type HiddenQuery struct {
	state     state.Model
	query     QueryExecutor
	analytics AnalyticsLogger
	config    Config
	logger    Logger

	// mu serializes the state mutations of Clear and OnClearBreadcrumb.
	mu   sync.Mutex
	subs events.Group
}

// New validates the options once and subscribes to every bound source.
func New(bindings Bindings, opts ...Option) (*HiddenQuery, error) {
	if bindings.State == nil {
		return nil, ErrMissingState
	}
	s := applyOptions(opts)
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	h := &HiddenQuery{
		state:     bindings.State,
		query:     bindings.Query,
		analytics: bindings.Analytics,
		config:    s.config.withDefaults(),
		logger:    s.logger,
	}

	if bindings.BuildingQuery != nil {
		h.subs.Add(bindings.BuildingQuery.Subscribe(h.OnBuildingQuery))
	}
	if bindings.PopulateBreadcrumb != nil {
		h.subs.Add(bindings.PopulateBreadcrumb.Subscribe(h.OnPopulateBreadcrumb))
	}
	if bindings.ClearBreadcrumb != nil {
		h.subs.Add(bindings.ClearBreadcrumb.Subscribe(h.OnClearBreadcrumb))
	}
	return h, nil
}

// Close releases every subscription. Calling it again is a no-op.
func (h *HiddenQuery) Close() error {
	h.subs.UnsubscribeAll()
	return nil
}

// Config returns the effective configuration.
func (h *HiddenQuery) Config() Config {
	return h.config
}

// OnBuildingQuery narrows the query by HQ when one is set.
func (h *HiddenQuery) OnBuildingQuery(_ context.Context, args *query.BuildingQueryArgs) error {
	if args == nil || args.Builder == nil {
		return fmt.Errorf("%w: building query", ErrNilArguments)
	}
	if hq := state.String(h.state, state.HQ); hq != "" {
		args.Builder.AdvancedExpression.Add(hq)
	}
	return nil
}

// OnPopulateBreadcrumb contributes one entry while both a description and a
// hidden query are present.
func (h *HiddenQuery) OnPopulateBreadcrumb(_ context.Context, args *breadcrumb.PopulateArgs) error {
	if args == nil {
		return fmt.Errorf("%w: populate breadcrumb", ErrNilArguments)
	}
	description := h.Description()
	if description == "" || state.String(h.state, state.HQ) == "" {
		return nil
	}
	args.Add(breadcrumb.Entry{
		ID:     ComponentID,
		Title:  h.config.Title,
		Values: []string{description},
		Clear:  h.Clear,
	})
	return nil
}

// OnClearBreadcrumb clears HD and HQ without logging or re-running the
// query; the breadcrumb manager runs it once for every component.
func (h *HiddenQuery) OnClearBreadcrumb(context.Context, breadcrumb.ClearArgs) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	state.Clear(h.state, state.HD, state.HQ)
	return nil
}

// Clear removes the hidden query. The description is captured before the
// attributes are cleared so the analytics event carries what the user saw.
// The query re-run happens outside the critical section and runs even when
// logging failed; both errors are joined.
func (h *HiddenQuery) Clear(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error

	h.mu.Lock()
	description := h.Description()
	state.Clear(h.state, state.HD, state.HQ)
	if h.analytics != nil {
		event := activity.BuildContextRemoveEvent(activity.ContextRemoveInput{
			Origin:      ComponentID,
			ContextName: description,
		})
		if err := h.analytics.Emit(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("hiddenquery: log context remove: %w", err))
		}
	}
	h.mu.Unlock()

	h.logger.Debug("hidden query cleared", "description", description)

	if h.query != nil {
		if err := h.query.ExecuteQuery(ctx); err != nil {
			errs = append(errs, fmt.Errorf("hiddenquery: execute query: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		h.logger.Warn("hidden query clear failed", "error", err)
		return err
	}
	return nil
}

// Description is HD when set, HQ otherwise, truncated to the configured
// number of characters with Ellipsis appended.
func (h *HiddenQuery) Description() string {
	description := state.String(h.state, state.HD)
	if description == "" {
		description = state.String(h.state, state.HQ)
	}
	return Truncate(description, h.config.MaximumDescriptionLength)
}

// Truncate keeps the first n characters of s and appends Ellipsis when s is
// longer. It counts runes, not bytes, and does not respect word boundaries.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + Ellipsis
}
