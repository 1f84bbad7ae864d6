// Package hydrate decodes raw component attribute maps into typed
// configuration structs.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Context identifies the component whose attributes are being decoded.
type Context struct {
	Component string
	ID        string
}

func (c Context) String() string {
	if c.ID == "" {
		return c.Component
	}
	return c.Component + "#" + c.ID
}

// PreHook mutates or normalises the attributes before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook adjusts or validates the decoded struct.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts attribute maps into T, starting from a defaults value.
type Decoder[T any] struct {
	defaults     T
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
}

// WithDefaults seeds the decoded value; keys absent from the payload keep them.
func WithDefaults[T any](defaults T) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.defaults = defaults
	}
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithDisallowUnknownFields rejects attributes T does not declare.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into T applying configured hooks. A nil payload
// decodes to the defaults.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T

	current := make(map[string]any, len(payload))
	for key, value := range payload {
		current[key] = value
	}

	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: pre-hook for %s failed: %w", ctx, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("hydrate: marshal attributes for %s: %w", ctx, err)
	}
	result := d.defaults
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	for _, configure := range d.configureDec {
		if configure != nil {
			configure(decoder)
		}
	}
	if err := decoder.Decode(&result); err != nil {
		return zero, fmt.Errorf("hydrate: decode %s: %w", ctx, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: post-hook for %s failed: %w", ctx, err)
		}
	}

	return result, nil
}

// NormalizeKeys rewrites attribute names to camelCase, dropping a leading
// "data-" prefix: "data-maximum-description-length" becomes
// "maximumDescriptionLength". When two spellings collide the camelCase one wins.
func NormalizeKeys(_ Context, payload map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		name := CamelKey(key)
		if _, exists := out[name]; exists && key != name {
			continue
		}
		out[name] = value
	}
	return out, nil
}

// CamelKey converts a kebab-case attribute name into camelCase.
func CamelKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "data-")
	if !strings.Contains(key, "-") {
		return key
	}
	parts := strings.Split(key, "-")
	var b strings.Builder
	b.Grow(len(key))
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(strings.ToLower(part))
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

// NumericKeys returns a pre-hook converting string values of the named keys
// into numbers so they decode into integer fields.
func NumericKeys(keys ...string) PreHook {
	return func(_ Context, payload map[string]any) (map[string]any, error) {
		for _, key := range keys {
			raw, ok := payload[key].(string)
			if !ok {
				continue
			}
			trimmed := strings.TrimSpace(raw)
			n, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: %q is not a number", key, raw)
			}
			payload[key] = json.Number(strconv.FormatFloat(n, 'f', -1, 64))
		}
		return payload, nil
	}
}
