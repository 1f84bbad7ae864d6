package currency

import (
	"errors"
	"testing"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func TestUseRejectsUnknownCultures(t *testing.T) {
	g := NewGlobalization()
	if err := g.Use("xx-??"); !errors.Is(err, ErrUnknownCulture) {
		t.Fatalf("expected ErrUnknownCulture for malformed tag, got %v", err)
	}
	if err := g.Use("pt-BR"); !errors.Is(err, ErrUnknownCulture) {
		t.Fatalf("expected ErrUnknownCulture for unregistered tag, got %v", err)
	}
	if err := g.Use(" en-gb "); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}
	active, err := g.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.Name() != "en-GB" || active.Symbol != "£" {
		t.Fatalf("unexpected active culture %+v", active)
	}
}

func TestRegisterNormalizesCulture(t *testing.T) {
	g := NewGlobalization()
	if err := g.Register(Culture{Tag: language.MustParse("en-CA"), Unit: currency.CAD}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := g.Use("en-CA"); err != nil {
		t.Fatalf("use: %v", err)
	}
	active, _ := g.Active()
	if active.Symbol != "CAD" || active.PositivePattern != "$n" || active.NegativePattern != "-$n" {
		t.Fatalf("unexpected defaults %+v", active)
	}
	got, err := g.Format(-2, nil)
	if err != nil || got != "-CAD2" {
		t.Fatalf("unexpected format %q err=%v", got, err)
	}

	if err := g.Register(Culture{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected missing tag to be rejected, got %v", err)
	}
	if err := g.Register(Culture{Tag: language.Dutch, PositivePattern: "$"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected pattern without amount to be rejected, got %v", err)
	}
}

func TestRegisterTagDerivesCurrency(t *testing.T) {
	g := NewGlobalization()
	culture, err := g.RegisterTag(language.MustParse("es-ES"))
	if err != nil {
		t.Fatalf("register tag: %v", err)
	}
	if culture.Unit != currency.EUR {
		t.Fatalf("expected EUR, got %s", culture.Unit)
	}
	if culture.Symbol == "" {
		t.Fatalf("expected a derived symbol")
	}
	if culture.PositivePattern != "n $" {
		t.Fatalf("expected suffix placement, got %q", culture.PositivePattern)
	}
	if err := g.Use("es-ES"); err != nil {
		t.Fatalf("use: %v", err)
	}
	if symbol, err := g.CurrencySymbol(); err != nil || symbol != culture.Symbol {
		t.Fatalf("unexpected symbol %q err=%v", symbol, err)
	}
}

func TestActiveReturnsCopy(t *testing.T) {
	g := NewGlobalization()
	active, _ := g.Active()
	active.Symbol = "changed"
	if symbol, _ := g.CurrencySymbol(); symbol != "$" {
		t.Fatalf("mutating the copy changed the registry: %q", symbol)
	}
}
