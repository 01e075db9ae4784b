// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParseRoundTrip walks testdata/<case>/input.luau and checks that
// printing a parsed file reproduces it byte-for-byte, the round-trip
// property every successful parse must satisfy.
func TestParseRoundTrip(t *testing.T) {
	root := "testdata"
	listing, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, ent := range listing {
		name := ent.Name()
		if !ent.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		path := filepath.Join(root, name, "input.luau")
		src, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			t.Error(err)
			continue
		}
		t.Run(name, func(t *testing.T) {
			tree, err := Parse(src)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			got := Print(tree)
			if got != string(src) {
				t.Errorf("Print(Parse(src)) != src\n--- got ---\n%s\n--- want ---\n%s", got, src)
			}
		})
	}
}

func TestParseReturn(t *testing.T) {
	tree, err := Parse([]byte("return 1"))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if len(tree.Block.Stats) != 0 {
		t.Fatalf("len(Block.Stats) = %d, want 0", len(tree.Block.Stats))
	}
	ret, ok := tree.Block.LastStat.(*LastStatReturn)
	if !ok {
		t.Fatalf("Block.LastStat is %T, want *LastStatReturn", tree.Block.LastStat)
	}
	if ret.Exprs.Len() != 1 {
		t.Fatalf("len(Exprs) = %d, want 1", ret.Exprs.Len())
	}
	num, ok := ret.Exprs[0].Node.(*ExprNumber)
	if !ok {
		t.Fatalf("Exprs[0] is %T, want *ExprNumber", ret.Exprs[0].Node)
	}
	if num.Token.Text != "1" {
		t.Errorf("Token.Text = %q, want %q", num.Token.Text, "1")
	}
	if got := Print(tree); got != "return 1" {
		t.Errorf("Print = %q, want %q", got, "return 1")
	}
}

func TestParseLocalTableType(t *testing.T) {
	const src = "local x: {a: number, [string]: boolean} = t"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if len(tree.Block.Stats) != 1 {
		t.Fatalf("len(Block.Stats) = %d, want 1", len(tree.Block.Stats))
	}
	local, ok := tree.Block.Stats[0].(*StatLocalVariable)
	if !ok {
		t.Fatalf("Stats[0] is %T, want *StatLocalVariable", tree.Block.Stats[0])
	}
	if local.Names.Len() != 1 {
		t.Fatalf("len(Names) = %d, want 1", local.Names.Len())
	}
	tbl, ok := local.Names[0].Node.Type.(*TypeTable)
	if !ok {
		t.Fatalf("Names[0].Type is %T, want *TypeTable", local.Names[0].Node.Type)
	}
	if tbl.Fields.Len() != 2 {
		t.Fatalf("len(Fields) = %d, want 2", tbl.Fields.Len())
	}
	if _, ok := tbl.Fields[0].Node.(*TableTypeFieldName); !ok {
		t.Errorf("Fields[0] is %T, want *TableTypeFieldName", tbl.Fields[0].Node)
	}
	if _, ok := tbl.Fields[1].Node.(*TableTypeFieldIndexer); !ok {
		t.Errorf("Fields[1] is %T, want *TableTypeFieldIndexer", tbl.Fields[1].Node)
	}
	if got := Print(tree); got != src {
		t.Errorf("Print = %q, want %q", got, src)
	}
}

func TestParseInterpString(t *testing.T) {
	const src = "local s = `hi {name}!`"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	local := tree.Block.Stats[0].(*StatLocalVariable)
	interp, ok := local.Exprs[0].Node.(*ExprInterpString)
	if !ok {
		t.Fatalf("Exprs[0] is %T, want *ExprInterpString", local.Exprs[0].Node)
	}
	if len(interp.Mids) != 1 {
		t.Fatalf("len(Mids) = %d, want 1", len(interp.Mids))
	}
	exprVar, ok := interp.Mids[0].Expr.(*ExprVar)
	if !ok {
		t.Fatalf("Mids[0].Expr is %T, want *ExprVar", interp.Mids[0].Expr)
	}
	if _, ok := exprVar.Var.Root.(*VarRootName); !ok {
		t.Errorf("Mids[0].Expr var root is %T, want *VarRootName", exprVar.Var.Root)
	}
	if got := Print(tree); got != src {
		t.Errorf("Print = %q, want %q", got, src)
	}
}

func TestParseNumericFor(t *testing.T) {
	const src = "for i = 1, 10, 2 do end"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	stat, ok := tree.Block.Stats[0].(*StatNumericFor)
	if !ok {
		t.Fatalf("Stats[0] is %T, want *StatNumericFor", tree.Block.Stats[0])
	}
	if stat.Start.(*ExprNumber).Token.Text != "1" {
		t.Errorf("Start = %q, want %q", stat.Start.(*ExprNumber).Token.Text, "1")
	}
	if stat.Finish.(*ExprNumber).Token.Text != "10" {
		t.Errorf("Finish = %q, want %q", stat.Finish.(*ExprNumber).Token.Text, "10")
	}
	if stat.Step == nil || stat.Step.(*ExprNumber).Token.Text != "2" {
		t.Errorf("Step = %v, want 2", stat.Step)
	}
	span, err := SpanOf(stat)
	if err != nil {
		t.Fatal("SpanOf:", err)
	}
	if span.Start != 0 || span.End != len(src) {
		t.Errorf("SpanOf(stat) = %v, want [0,%d)", span, len(src))
	}
}

func TestParseCallChain(t *testing.T) {
	const src = "a.b:c(1)(2)"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	stat, ok := tree.Block.Stats[0].(*StatCall)
	if !ok {
		t.Fatalf("Stats[0] is %T, want *StatCall", tree.Block.Stats[0])
	}
	if _, ok := stat.Var.Root.(*VarRootName); !ok {
		t.Fatalf("Var.Root is %T, want *VarRootName", stat.Var.Root)
	}
	if len(stat.Var.Suffixes) != 3 {
		t.Fatalf("len(Suffixes) = %d, want 3", len(stat.Var.Suffixes))
	}
	if _, ok := stat.Var.Suffixes[0].(*VarSuffixIndexName); !ok {
		t.Errorf("Suffixes[0] is %T, want *VarSuffixIndexName", stat.Var.Suffixes[0])
	}
	call, ok := stat.Var.Suffixes[1].(*VarSuffixCall)
	if !ok || call.Method == nil {
		t.Errorf("Suffixes[1] is %T (method nil=%v), want *VarSuffixCall with method", stat.Var.Suffixes[1], call == nil)
	}
	if !IsCall(stat.Var.Suffixes[2]) {
		t.Errorf("Suffixes[2] = %T, want a call suffix", stat.Var.Suffixes[2])
	}
}

func TestParseCompoundAssign(t *testing.T) {
	const src = "x += y"
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	stat, ok := tree.Block.Stats[0].(*StatCompoundAssign)
	if !ok {
		t.Fatalf("Stats[0] is %T, want *StatCompoundAssign", tree.Block.Stats[0])
	}
	if stat.Op.Text != "" {
		t.Errorf("Op.Text = %q", stat.Op.Text)
	}
	if text, _ := stat.Op.FixedText(); text != "+=" {
		t.Errorf("Op.FixedText() = %q, want %q", text, "+=")
	}
	if _, ok := stat.Var.Root.(*VarRootName); !ok {
		t.Errorf("Var.Root is %T, want *VarRootName", stat.Var.Root)
	}
	if _, ok := stat.Expr.(*ExprVar); !ok {
		t.Errorf("Expr is %T, want *ExprVar", stat.Expr)
	}
}

func TestParseMalformedLocal(t *testing.T) {
	_, err := Parse([]byte("local = 1"))
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if perr.Span.Start != 6 || perr.Span.End != 7 {
		t.Errorf("Span = %v, want [6,7) (the \"=\" token)", perr.Span)
	}
}

// TestParseDeterministic checks that parsing the same source twice produces
// structurally identical trees (via their printed form, since the CST
// carries no non-deterministic fields like pointers compared by identity).
func TestParseDeterministic(t *testing.T) {
	const src = "local function f(x: number): number return x + 1 end"
	t1, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	t2, err := Parse([]byte(src))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if Print(t1) != Print(t2) {
		t.Errorf("two parses of the same source printed differently")
	}
}
