package query

import "testing"

func TestExpressionBuilderCombinesWithAnd(t *testing.T) {
	var b ExpressionBuilder
	if b.Build() != "" || !b.IsEmpty() {
		t.Fatalf("expected empty builder")
	}

	b.Add(`category == "drinks"`)
	if got := b.Build(); got != `category == "drinks"` {
		t.Fatalf("single fragment should be verbatim, got %q", got)
	}

	b.Add("   ")
	b.Add("price > 2")
	if got := b.Build(); got != `(category == "drinks") && (price > 2)` {
		t.Fatalf("unexpected combination %q", got)
	}

	parts := b.Parts()
	parts[0] = "mutated"
	if b.Parts()[0] != `category == "drinks"` {
		t.Fatalf("expected parts copy")
	}
}

func TestBuilderBuildAndFilter(t *testing.T) {
	b := NewBuilder()
	b.Expression.Add("cafe")
	b.Expression.Add("latte")
	b.AdvancedExpression.Add(`category == "drinks"`)
	b.ConstantExpression.Add("price > 2")

	req := b.Build()
	if req.Q != "cafe latte" {
		t.Fatalf("unexpected q %q", req.Q)
	}
	if req.Filter() != `(category == "drinks") && (price > 2)` {
		t.Fatalf("unexpected filter %q", req.Filter())
	}

	onlyConstant := Request{CQ: "price > 2"}
	if onlyConstant.Filter() != "price > 2" {
		t.Fatalf("unexpected filter %q", onlyConstant.Filter())
	}
	if (Request{}).Filter() != "" {
		t.Fatalf("expected empty filter")
	}
}
