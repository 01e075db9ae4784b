// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustParse(t *testing.T, src string) *Cst {
	t.Helper()
	tree, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return tree
}

func TestLowerLocalVariable(t *testing.T) {
	tree := mustParse(t, `local x: number, y = 1, "two"`)
	got := Lower(tree)

	want := &AstStatBlock{
		Stats: []AstStat{
			&AstStatLocalVariable{
				Names: []AstLocalName{
					{Name: "x", Type: AstTypeReference{Name: "number"}},
					{Name: "y"},
				},
				Exprs: []AstExpr{
					AstExprNumber{Value: "1"},
					AstExprString{Value: "two"},
				},
			},
		},
	}

	diffOpts := cmp.Options{cmpopts.EquateEmpty()}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Errorf("Lower(Parse(...)) mismatch (-want +got):\n%s", diff)
	}
}

func TestLowerDecodesStringEscapes(t *testing.T) {
	tree := mustParse(t, `return "a\tb"`)
	got := Lower(tree)

	ret, ok := got.LastStat.(AstLastStatReturn)
	if !ok {
		t.Fatalf("LastStat is %T, want AstLastStatReturn", got.LastStat)
	}
	if len(ret.Exprs) != 1 {
		t.Fatalf("len(Exprs) = %d, want 1", len(ret.Exprs))
	}
	str, ok := ret.Exprs[0].(AstExprString)
	if !ok {
		t.Fatalf("Exprs[0] is %T, want AstExprString", ret.Exprs[0])
	}
	if str.Value != "a\tb" {
		t.Errorf("Value = %q, want %q", str.Value, "a\tb")
	}
}

func TestLowerKeepsNumeralTextAsWritten(t *testing.T) {
	tree := mustParse(t, "return 0x1F, 1_000, 1.5e10")
	got := Lower(tree)
	ret := got.LastStat.(AstLastStatReturn)
	want := []string{"0x1F", "1_000", "1.5e10"}
	if len(ret.Exprs) != len(want) {
		t.Fatalf("len(Exprs) = %d, want %d", len(ret.Exprs), len(want))
	}
	for i, w := range want {
		num, ok := ret.Exprs[i].(AstExprNumber)
		if !ok {
			t.Fatalf("Exprs[%d] is %T, want AstExprNumber", i, ret.Exprs[i])
		}
		if num.Value != w {
			t.Errorf("Exprs[%d].Value = %q, want %q", i, num.Value, w)
		}
	}
}

func TestLowerFunctionAttributes(t *testing.T) {
	const src = `@native
function f(): number
	return 1
end

local @native @checked function g(): number
	return 2
end
`
	tree := mustParse(t, src)
	got := Lower(tree)

	if len(got.Stats) != 2 {
		t.Fatalf("len(Stats) = %d, want 2", len(got.Stats))
	}

	fn, ok := got.Stats[0].(*AstStatFunction)
	if !ok {
		t.Fatalf("Stats[0] is %T, want *AstStatFunction", got.Stats[0])
	}
	if diff := cmp.Diff([]string{"native"}, fn.Attributes); diff != "" {
		t.Errorf("Stats[0].Attributes mismatch (-want +got):\n%s", diff)
	}

	localFn, ok := got.Stats[1].(*AstStatLocalFunction)
	if !ok {
		t.Fatalf("Stats[1] is %T, want *AstStatLocalFunction", got.Stats[1])
	}
	if diff := cmp.Diff([]string{"native", "checked"}, localFn.Attributes); diff != "" {
		t.Errorf("Stats[1].Attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestLowerCallStatement(t *testing.T) {
	tree := mustParse(t, "print(1, 2)")
	got := Lower(tree)

	want := &AstStatBlock{
		Stats: []AstStat{
			&AstStatCall{
				Var: &AstVar{
					Root: AstVarRootName{Name: "print"},
					Suffixes: []AstVarSuffix{
						AstVarSuffixCall{
							Arg: AstFunctionArgPack{
								Exprs: []AstExpr{
									AstExprNumber{Value: "1"},
									AstExprNumber{Value: "2"},
								},
							},
						},
					},
				},
			},
		},
	}

	diffOpts := cmp.Options{cmpopts.EquateEmpty()}
	if diff := cmp.Diff(want, got, diffOpts); diff != "" {
		t.Errorf("Lower(Parse(...)) mismatch (-want +got):\n%s", diff)
	}
}
