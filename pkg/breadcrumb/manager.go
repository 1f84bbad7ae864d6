package breadcrumb

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-hiddenquery/pkg/activity"
	"github.com/goliatone/go-hiddenquery/pkg/events"
)

// Origin identifies the manager in analytics events.
const Origin = "Breadcrumb"

// Executor re-runs the current query.
type Executor interface {
	ExecuteQuery(ctx context.Context) error
}

// Manager owns the populate and clear-all topics.
type Manager struct {
	Populate *events.Topic[*PopulateArgs]
	ClearAll *events.Topic[ClearArgs]

	query     Executor
	analytics *activity.Emitter
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithExecutor sets the query re-run after a reset.
func WithExecutor(query Executor) ManagerOption {
	return func(m *Manager) {
		m.query = query
	}
}

// WithAnalytics logs a breadcrumbResetAll event on every reset.
func WithAnalytics(emitter *activity.Emitter) ManagerOption {
	return func(m *Manager) {
		m.analytics = emitter
	}
}

// NewManager constructs a manager with fresh topics.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		Populate: events.NewTopic[*PopulateArgs]("breadcrumb.populate"),
		ClearAll: events.NewTopic[ClearArgs]("breadcrumb.clear"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Entries asks every subscriber for its entries. Entries contributed before a
// failing handler are still returned alongside the error.
func (m *Manager) Entries(ctx context.Context) ([]Entry, error) {
	args := &PopulateArgs{}
	if err := m.Populate.Publish(ctx, args); err != nil {
		return args.Entries, fmt.Errorf("breadcrumb: populate: %w", err)
	}
	return args.Entries, nil
}

// Reset clears every breadcrumb, then re-runs the query exactly once.
func (m *Manager) Reset(ctx context.Context) error {
	var errs []error
	if err := m.ClearAll.Publish(ctx, ClearArgs{Origin: Origin}); err != nil {
		errs = append(errs, fmt.Errorf("breadcrumb: clear: %w", err))
	}
	if err := m.analytics.Emit(ctx, activity.BuildBreadcrumbResetEvent(Origin)); err != nil {
		errs = append(errs, fmt.Errorf("breadcrumb: analytics: %w", err))
	}
	if m.query != nil {
		if err := m.query.ExecuteQuery(ctx); err != nil {
			errs = append(errs, fmt.Errorf("breadcrumb: execute query: %w", err))
		}
	}
	return errors.Join(errs...)
}
