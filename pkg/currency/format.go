// Package currency formats monetary amounts according to a culture registry.
//
// A per-call symbol override temporarily replaces the active culture's
// symbol. The override happens under the registry lock and is restored by a
// deferred call, so concurrent calls never observe each other's symbol.
package currency

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	// ErrInvalidArgument is wrapped when an amount or option cannot be used.
	ErrInvalidArgument = errors.New("currency: invalid argument")
	// ErrUnknownCulture is wrapped when the requested or active culture is not registered.
	ErrUnknownCulture = errors.New("currency: unknown culture")
)

// Options tunes a single Format call.
type Options struct {
	// Decimals is the exact number of fractional digits. Defaults to 0.
	Decimals int
	// Symbol overrides the culture symbol for this call only.
	Symbol string
}

// Format formats amount with the Default registry.
func Format(amount any, opts *Options) (string, error) {
	return Default.Format(amount, opts)
}

// Format renders amount using the active culture. A nil amount (or nil
// pointer) yields "" without error; zero formats normally.
func (g *Globalization) Format(amount any, opts *Options) (string, error) {
	if isNil(amount) {
		return "", nil
	}
	value, err := toFloat(amount)
	if err != nil {
		return "", err
	}

	var decimals int
	var symbol string
	if opts != nil {
		if opts.Decimals < 0 {
			return "", fmt.Errorf("%w: decimals must be >= 0, got %d", ErrInvalidArgument, opts.Decimals)
		}
		decimals = opts.Decimals
		symbol = opts.Symbol
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	culture, err := g.activeLocked()
	if err != nil {
		return "", err
	}
	if symbol != "" {
		saved := culture.Symbol
		culture.Symbol = symbol
		defer func() { culture.Symbol = saved }()
	}
	return culture.format(value, decimals), nil
}

func (c *Culture) format(value float64, decimals int) string {
	p := message.NewPrinter(c.Tag)
	digits := p.Sprint(number.Decimal(math.Abs(value),
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
	pattern := c.PositivePattern
	if value < 0 {
		pattern = c.NegativePattern
	}
	return strings.NewReplacer(SymbolPlaceholder, c.Symbol, NumberPlaceholder, digits).Replace(pattern)
}

func isNil(amount any) bool {
	if amount == nil {
		return true
	}
	rv := reflect.ValueOf(amount)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func toFloat(amount any) (float64, error) {
	var value float64
	switch v := amount.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, v.String())
		}
		value = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, v)
		}
		value = f
	default:
		rv := reflect.ValueOf(amount)
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			value = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			value = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			value = rv.Float()
		case reflect.String:
			return toFloat(rv.String())
		default:
			return 0, fmt.Errorf("%w: unsupported amount type %T", ErrInvalidArgument, amount)
		}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: amount must be finite, got %v", ErrInvalidArgument, value)
	}
	return value, nil
}
