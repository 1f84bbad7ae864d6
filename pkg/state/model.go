package state

import (
	"github.com/goliatone/go-hiddenquery/pkg/events"
)

// Well known attribute keys.
const (
	// Q is the basic query typed in the search box.
	Q = "q"
	// HQ is the hidden query expression.
	HQ = "hq"
	// HD is the hidden query description.
	HD = "hd"
)

// ChangeFunc is invoked after an attribute changed value.
type ChangeFunc func(Change)

// Change describes a single attribute transition.
type Change struct {
	Key      string
	Previous any
	Value    any
}

// Model is the key/value state shared between components.
type Model interface {
	Get(key string) any
	Set(key string, value any)
	Subscribe(key string, fn ChangeFunc) *events.Subscription
}

// String reads key from model, returning "" for nil models, absent keys and
// non-string values.
func String(model Model, key string) string {
	if model == nil {
		return ""
	}
	value, ok := model.Get(key).(string)
	if !ok {
		return ""
	}
	return value
}

// Clear sets every key to the empty string.
func Clear(model Model, keys ...string) {
	if model == nil {
		return
	}
	for _, key := range keys {
		model.Set(key, "")
	}
}
