package query

import (
	"errors"
	"testing"
)

type engineCase struct {
	name string
	new  func(cache ProgramCache, registry *FunctionRegistry) Evaluator
	fold string
}

func engines() []engineCase {
	return []engineCase{
		{
			name: "expr",
			new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
				return NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry))
			},
			fold: `fold(title) == "cafe latte"`,
		},
		{
			name: "cel",
			new: func(cache ProgramCache, registry *FunctionRegistry) Evaluator {
				return NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry))
			},
			fold: `call("fold", title) == "cafe latte"`,
		},
	}
}

func latte() MatchContext {
	return MatchContext{Document: Document{
		ID:     "1",
		Fields: map[string]any{"title": "Café Latte", "category": "drinks", "price": 4},
	}}
}

func TestEvaluatorsMatchDocuments(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.name, func(t *testing.T) {
			evaluator := engine.new(NewMemoryCache(), StandardFunctions())

			program, err := evaluator.Compile(`category == "drinks" && price > 2`)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			matched, err := Match(program, latte())
			if err != nil || !matched {
				t.Fatalf("expected match, got %t err=%v", matched, err)
			}

			value, err := evaluator.Evaluate(latte(), `category == "food"`)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if value != false {
				t.Fatalf("expected false, got %v", value)
			}

			value, err = evaluator.Evaluate(latte(), `id == "1"`)
			if err != nil || value != true {
				t.Fatalf("expected id binding, got %v err=%v", value, err)
			}
		})
	}
}

func TestEvaluatorsExposeRegistryFunctions(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.name, func(t *testing.T) {
			evaluator := engine.new(nil, StandardFunctions())
			value, err := evaluator.Evaluate(latte(), engine.fold)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if value != true {
				t.Fatalf("expected folded match, got %v", value)
			}
		})
	}
}

func TestEvaluatorsRejectEmptyExpression(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.name, func(t *testing.T) {
			evaluator := engine.new(nil, nil)
			if _, err := evaluator.Evaluate(latte(), ""); !errors.Is(err, ErrEmptyExpr) {
				t.Fatalf("expected ErrEmptyExpr, got %v", err)
			}
			if _, err := evaluator.Compile(""); !errors.Is(err, ErrEmptyExpr) {
				t.Fatalf("expected ErrEmptyExpr, got %v", err)
			}
		})
	}
}

func TestEvaluatorsCacheCompiledPrograms(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.name, func(t *testing.T) {
			cache := NewMemoryCache()
			evaluator := engine.new(cache, nil)
			for i := 0; i < 3; i++ {
				if _, err := evaluator.Evaluate(latte(), `price > 1`); err != nil {
					t.Fatalf("evaluate: %v", err)
				}
			}
			if cache.Len() != 1 {
				t.Fatalf("expected 1 cached program, got %d", cache.Len())
			}
		})
	}
}

func TestCELCachesPerFieldSet(t *testing.T) {
	cache := NewMemoryCache()
	evaluator := NewCELEvaluator(CELWithProgramCache(cache))
	other := MatchContext{Document: Document{ID: "2", Fields: map[string]any{"price": 1, "brand": "acme"}}}

	if _, err := evaluator.Evaluate(latte(), `price > 1`); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	value, err := evaluator.Evaluate(other, `price > 1`)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if value != false {
		t.Fatalf("expected false for second document, got %v", value)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected one program per field set, got %d", cache.Len())
	}
}

func TestMatchRequiresBoolean(t *testing.T) {
	program, err := NewExprEvaluator().Compile("price")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := Match(program, latte()); err == nil {
		t.Fatalf("expected non-boolean error")
	}
	if ok, err := Match(nil, latte()); !ok || err != nil {
		t.Fatalf("nil program should match everything")
	}
}
