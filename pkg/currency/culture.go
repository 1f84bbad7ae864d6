package currency

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SymbolPlaceholder and NumberPlaceholder are the tokens of a Culture pattern.
const (
	SymbolPlaceholder = "$"
	NumberPlaceholder = "n"
)

// Culture holds the currency rules of one locale. Separators and grouping
// come from Tag; placement of the symbol comes from the patterns, where "$"
// stands for the symbol and "n" for the absolute amount.
type Culture struct {
	Tag             language.Tag
	Unit            currency.Unit
	Symbol          string
	PositivePattern string
	NegativePattern string
}

// Name is the canonical BCP 47 name the culture is registered under.
func (c Culture) Name() string {
	return c.Tag.String()
}

func (c Culture) normalized() (Culture, error) {
	if c.Tag == language.Und {
		return c, fmt.Errorf("%w: culture tag is required", ErrInvalidArgument)
	}
	if c.PositivePattern == "" {
		c.PositivePattern = SymbolPlaceholder + NumberPlaceholder
	}
	if c.NegativePattern == "" {
		c.NegativePattern = "-" + c.PositivePattern
	}
	for _, pattern := range []string{c.PositivePattern, c.NegativePattern} {
		if !strings.Contains(pattern, NumberPlaceholder) {
			return c, fmt.Errorf("%w: pattern %q has no %q placeholder", ErrInvalidArgument, pattern, NumberPlaceholder)
		}
	}
	if c.Symbol == "" {
		c.Symbol = c.Unit.String()
	}
	return c, nil
}

var builtinCultures = []Culture{
	{Tag: language.AmericanEnglish, Unit: currency.USD, Symbol: "$", PositivePattern: "$n", NegativePattern: "-$n"},
	{Tag: language.BritishEnglish, Unit: currency.GBP, Symbol: "£", PositivePattern: "$n", NegativePattern: "-$n"},
	{Tag: language.MustParse("de-DE"), Unit: currency.EUR, Symbol: "€", PositivePattern: "n $", NegativePattern: "-n $"},
	{Tag: language.MustParse("fr-FR"), Unit: currency.EUR, Symbol: "€", PositivePattern: "n $", NegativePattern: "-n $"},
	{Tag: language.MustParse("ja-JP"), Unit: currency.JPY, Symbol: "¥", PositivePattern: "$n", NegativePattern: "-$n"},
}

// Languages whose cultures place the symbol after the amount when derived
// through RegisterTag.
var suffixLanguages = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "pt": true, "nl": true,
	"sv": true, "fi": true, "da": true, "nb": true, "pl": true, "cs": true,
}

// Globalization is a registry of cultures with one active culture. It plays
// the role of a process-wide locale configuration; Default is the instance
// used by the package-level Format.
type Globalization struct {
	mu       sync.Mutex
	cultures map[string]*Culture
	active   string
}

// Default is the process-wide registry, active culture en-US.
var Default = NewGlobalization()

// NewGlobalization returns a registry holding the built-in cultures with
// en-US active.
func NewGlobalization() *Globalization {
	g := &Globalization{cultures: make(map[string]*Culture, len(builtinCultures))}
	for _, c := range builtinCultures {
		culture := c
		g.cultures[culture.Name()] = &culture
	}
	g.active = language.AmericanEnglish.String()
	return g
}

// Register adds or replaces a culture.
func (g *Globalization) Register(c Culture) error {
	normalized, err := c.normalized()
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cultures[normalized.Name()] = &normalized
	return nil
}

// RegisterTag derives a culture from CLDR data: the currency in use for the
// tag's region and its localized symbol.
func (g *Globalization) RegisterTag(tag language.Tag) (Culture, error) {
	unit, confidence := currency.FromTag(tag)
	if confidence == language.No {
		return Culture{}, fmt.Errorf("%w: no currency for %s", ErrUnknownCulture, tag)
	}
	symbol := message.NewPrinter(tag).Sprint(currency.Symbol(unit))
	culture := Culture{Tag: tag, Unit: unit, Symbol: symbol}
	base, _ := tag.Base()
	if suffixLanguages[base.String()] {
		culture.PositivePattern = NumberPlaceholder + " " + SymbolPlaceholder
		culture.NegativePattern = "-" + culture.PositivePattern
	}
	if err := g.Register(culture); err != nil {
		return Culture{}, err
	}
	return g.lookup(tag.String())
}

// Use activates a registered culture.
func (g *Globalization) Use(name string) error {
	key, err := cultureKey(name)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.cultures[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCulture, name)
	}
	g.active = key
	return nil
}

// Active returns a copy of the active culture.
func (g *Globalization) Active() (Culture, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	culture, err := g.activeLocked()
	if err != nil {
		return Culture{}, err
	}
	return *culture, nil
}

// CurrencySymbol returns the symbol of the active culture.
func (g *Globalization) CurrencySymbol() (string, error) {
	culture, err := g.Active()
	if err != nil {
		return "", err
	}
	return culture.Symbol, nil
}

// Remove unregisters a culture. Removing the active one leaves the registry
// without an active culture until Use is called again.
func (g *Globalization) Remove(name string) {
	key, err := cultureKey(name)
	if err != nil {
		return
	}
	g.mu.Lock()
	delete(g.cultures, key)
	g.mu.Unlock()
}

func (g *Globalization) lookup(key string) (Culture, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	culture, ok := g.cultures[key]
	if !ok {
		return Culture{}, fmt.Errorf("%w: %s", ErrUnknownCulture, key)
	}
	return *culture, nil
}

func (g *Globalization) activeLocked() (*Culture, error) {
	culture, ok := g.cultures[g.active]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCulture, g.active)
	}
	return culture, nil
}

func cultureKey(name string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrUnknownCulture, name, err)
	}
	return tag.String(), nil
}
