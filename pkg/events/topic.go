package events

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Handler receives a payload published on a Topic.
type Handler[T any] func(ctx context.Context, payload T) error

// Source is the subscribe half of a Topic. Components depend on Source so
// they never see the publishing side.
type Source[T any] interface {
	Subscribe(handler Handler[T]) *Subscription
}

// Topic fans out payloads to subscribers in subscription order.
type Topic[T any] struct {
	name string

	mu          sync.RWMutex
	subscribers []subscriber[T]
}

type subscriber[T any] struct {
	id      string
	handler Handler[T]
}

// NewTopic constructs an empty topic. The name is informational only.
func NewTopic[T any](name string) *Topic[T] {
	return &Topic[T]{name: name}
}

// Name returns the topic name.
func (t *Topic[T]) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Subscribe registers handler and returns the handle that releases it.
// A nil handler yields an inert subscription.
func (t *Topic[T]) Subscribe(handler Handler[T]) *Subscription {
	id := uuid.NewString()
	if t == nil || handler == nil {
		return NewSubscription(id, t.Name(), nil)
	}
	t.mu.Lock()
	t.subscribers = append(t.subscribers, subscriber[T]{id: id, handler: handler})
	t.mu.Unlock()
	return NewSubscription(id, t.name, func() { t.remove(id) })
}

// Publish invokes every subscriber synchronously. All subscribers run even
// when some fail; failures are joined.
func (t *Topic[T]) Publish(ctx context.Context, payload T) error {
	if t == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Snapshot so handlers may subscribe or unsubscribe while we iterate.
	t.mu.RLock()
	snapshot := make([]subscriber[T], len(t.subscribers))
	copy(snapshot, t.subscribers)
	t.mu.RUnlock()

	var errs []error
	for _, sub := range snapshot {
		if err := sub.handler(ctx, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len reports the number of live subscribers.
func (t *Topic[T]) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subscribers)
}

func (t *Topic[T]) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, sub := range t.subscribers {
		if sub.id == id {
			t.subscribers = append(t.subscribers[:i:i], t.subscribers[i+1:]...)
			return
		}
	}
}
