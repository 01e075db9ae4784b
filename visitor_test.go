// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import (
	"strings"
	"testing"
)

// TestVisitTotality checks that a visitor which only records tokens
// reconstructs the original source when its recorded text is concatenated
// in visitation order, the visitor-path restatement of the round-trip
// property (P4).
func TestVisitTotality(t *testing.T) {
	const src = `local function f(x, y)
	return x + y -- comment
end
local t = {1, 2, name = "value"}
`
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}

	sb := new(strings.Builder)
	v := BaseVisitor()
	v.VisitToken = func(ctx any, tok Token) {
		for _, tr := range tok.Trivia {
			sb.WriteString(tr.Text)
		}
		if tok.Text != "" {
			sb.WriteString(tok.Text)
		} else if text, ok := tok.FixedText(); ok {
			sb.WriteString(text)
		}
	}
	Visit(v, nil, tree)
	if got := sb.String(); got != src {
		t.Errorf("token-visiting reconstruction = %q, want %q", got, src)
	}
}

// TestVisitStatKinds checks that VisitStat fires once per top-level
// statement, in source order.
func TestVisitStatKinds(t *testing.T) {
	const src = `local x = 1
local y = 2
print(x, y)
x += 1
`
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}

	var kinds []string
	v := BaseVisitor()
	v.VisitStat = func(ctx any, n Stat) {
		switch n.(type) {
		case *StatLocalVariable:
			kinds = append(kinds, "local")
		case *StatCall:
			kinds = append(kinds, "call")
		case *StatCompoundAssign:
			kinds = append(kinds, "compound")
		default:
			kinds = append(kinds, "other")
		}
	}
	Visit(v, nil, tree)

	want := []string{"local", "local", "call", "compound"}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

// TestVisitExprNested checks that VisitExpr reaches expressions nested
// inside a binary operator, not just top-level ones.
func TestVisitExprNested(t *testing.T) {
	const src = "local x = 1 + 2 * 3\n"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}

	var numbers []string
	v := BaseVisitor()
	v.VisitExpr = func(ctx any, n Expr) {
		if num, ok := n.(*ExprNumber); ok {
			numbers = append(numbers, num.Token.Text)
		}
	}
	Visit(v, nil, tree)

	want := []string{"1", "2", "3"}
	if len(numbers) != len(want) {
		t.Fatalf("numbers = %v, want %v", numbers, want)
	}
	for i := range want {
		if numbers[i] != want[i] {
			t.Errorf("numbers[%d] = %q, want %q", i, numbers[i], want[i])
		}
	}
}
