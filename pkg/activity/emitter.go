package activity

import (
	"context"
	"strings"
)

// DefaultChannel is stamped on events emitted without a channel.
const DefaultChannel = "search"

// Config holds emitter defaults.
type Config struct {
	Enabled bool
	// Channel defaults to DefaultChannel.
	Channel string
	// Origin is stamped on events that do not name one.
	Origin string
	// Muted verbs are dropped before reaching any hook.
	Muted []string
}

// Emitter is the analytics logger handed to search components. A nil or
// disabled Emitter accepts every event and does nothing.
type Emitter struct {
	hooks   Hooks
	channel string
	origin  string
	muted   map[string]struct{}
}

// NewEmitter drops nil hooks and resolves cfg defaults. A disabled config
// yields an emitter with no hooks.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	e := &Emitter{
		channel: strings.TrimSpace(cfg.Channel),
		origin:  strings.TrimSpace(cfg.Origin),
	}
	if e.channel == "" {
		e.channel = DefaultChannel
	}
	if !cfg.Enabled {
		return e
	}
	for _, hook := range hooks {
		if hook != nil {
			e.hooks = append(e.hooks, hook)
		}
	}
	for _, verb := range cfg.Muted {
		if verb = strings.TrimSpace(verb); verb != "" {
			if e.muted == nil {
				e.muted = make(map[string]struct{})
			}
			e.muted[verb] = struct{}{}
		}
	}
	return e
}

// Enabled reports whether Emit reaches at least one hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.hooks.Enabled()
}

// Emit applies the channel and origin defaults and forwards the event.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if _, skip := e.muted[strings.TrimSpace(event.Verb)]; skip {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	if strings.TrimSpace(event.Origin) == "" {
		event.Origin = e.origin
	}
	return e.hooks.Notify(ctx, event)
}
