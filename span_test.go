// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import "testing"

// TestSpanMonotonicity checks that every token reachable from a node lies
// within that node's span (property P3).
func TestSpanMonotonicity(t *testing.T) {
	const src = `
local function f(x: number, y: number): number
	if x > y then
		return x
	else
		return y
	end
end

local t = {a = 1, b = {2, 3}}
for i = 1, 10 do
	print(i)
end
`
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}

	var walk func(node any)
	walk = func(node any) {
		span, err := SpanOf(node)
		if err != nil {
			t.Fatalf("SpanOf(%T): %v", node, err)
		}
		v := BaseVisitor()
		v.VisitToken = func(ctx any, tok Token) {
			if tok.Span.Start < span.Start || tok.Span.End > span.End {
				t.Errorf("token %v span %v escapes parent %T span %v", tok, tok.Span, node, span)
			}
		}
		Visit(v, nil, node)
	}

	for _, stat := range tree.Block.Stats {
		walk(stat)
	}
	if tree.Block.LastStat != nil {
		walk(tree.Block.LastStat)
	}
}

func TestSpanOfNumericFor(t *testing.T) {
	const src = "for i = 1, 10, 2 do end"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	stat := tree.Block.Stats[0]
	span, err := SpanOf(stat)
	if err != nil {
		t.Fatal("SpanOf:", err)
	}
	if span.Start != 0 || span.End != len(src) {
		t.Errorf("SpanOf(numeric for) = %v, want [0,%d)", span, len(src))
	}
}

func TestSpanOfEmptyBlock(t *testing.T) {
	tree, err := Parse([]byte(""))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if _, err := SpanOf(tree.Block); err == nil {
		t.Error("SpanOf(empty block) succeeded, want an error")
	}
}
