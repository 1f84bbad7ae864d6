package query

import "strings"

// AndOperator joins expression fragments.
const AndOperator = " && "

// ExpressionBuilder accumulates expression fragments that are ANDed together
// when built. Fragments are additive: nothing ever removes one.
type ExpressionBuilder struct {
	parts []string
}

// Add appends a fragment. Blank fragments are ignored.
func (b *ExpressionBuilder) Add(expression string) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return
	}
	b.parts = append(b.parts, expression)
}

// Parts returns a copy of the accumulated fragments.
func (b *ExpressionBuilder) Parts() []string {
	return append([]string(nil), b.parts...)
}

// IsEmpty reports whether no fragment was added.
func (b *ExpressionBuilder) IsEmpty() bool {
	return len(b.parts) == 0
}

// Build combines the fragments. A single fragment is returned verbatim,
// several are parenthesised and joined with AndOperator.
func (b *ExpressionBuilder) Build() string {
	return combine(b.parts)
}

func combine(parts []string) string {
	var kept []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	}
	wrapped := make([]string, len(kept))
	for i, part := range kept {
		wrapped[i] = "(" + part + ")"
	}
	return strings.Join(wrapped, AndOperator)
}

// Builder is the mutable handle components receive while a query is being
// built.
//
//	Expression          free text typed by the user (q)
//	AdvancedExpression  filter fragments added by components (aq)
//	ConstantExpression  filter fragments that never change between queries (cq)
type Builder struct {
	Expression         ExpressionBuilder
	AdvancedExpression ExpressionBuilder
	ConstantExpression ExpressionBuilder
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Request is the immutable outcome of a Builder.
type Request struct {
	Q  string
	AQ string
	CQ string
}

// Build freezes the builder into a Request. Free text parts are joined with
// spaces; every resulting term must match.
func (b *Builder) Build() Request {
	return Request{
		Q:  strings.Join(b.Expression.parts, " "),
		AQ: b.AdvancedExpression.Build(),
		CQ: b.ConstantExpression.Build(),
	}
}

// Filter returns the expression the backend evaluates per document: the
// advanced and constant parts ANDed together.
func (r Request) Filter() string {
	return combine([]string{r.AQ, r.CQ})
}

// BuildingQueryArgs is the payload of the building query event.
type BuildingQueryArgs struct {
	Builder *Builder
}
