package events

import "sync"

// Subscription is the handle returned by Subscribe. Releasing it detaches the
// handler from its topic; releasing twice is a no-op.
type Subscription struct {
	id      string
	topic   string
	once    sync.Once
	release func()
}

// NewSubscription builds a handle that calls release once on Unsubscribe.
// Packages with their own listener lists use it to hand out uniform handles.
func NewSubscription(id, topic string, release func()) *Subscription {
	return &Subscription{id: id, topic: topic, release: release}
}

// ID returns the unique identifier assigned at subscription time.
func (s *Subscription) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Topic returns the name of the topic the handle belongs to.
func (s *Subscription) Topic() string {
	if s == nil {
		return ""
	}
	return s.topic
}

// Unsubscribe detaches the handler.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// Group collects handles so they can be released together.
type Group struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Add appends handles to the group, skipping nil entries.
func (g *Group) Add(subs ...*Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, sub := range subs {
		if sub != nil {
			g.subs = append(g.subs, sub)
		}
	}
}

// Len reports how many handles the group holds.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// UnsubscribeAll releases every handle and empties the group.
func (g *Group) UnsubscribeAll() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}
