// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import "testing"

func TestPrintPreservesTrivia(t *testing.T) {
	tests := []string{
		"  local x = 1\n",
		"local x = 1 -- trailing comment\n",
		"--[[ leading block comment ]]\nlocal x = 1",
		"local\tx\t=\t1",
		"\n\n\nlocal x = 1\n\n\n",
		"#!/usr/bin/env luau\nlocal x = 1\n",
	}
	for _, src := range tests {
		tree, err := Parse([]byte(src))
		if err != nil {
			t.Errorf("Parse(%q): %v", src, err)
			continue
		}
		if got := Print(tree); got != src {
			t.Errorf("Print(Parse(%q)) = %q, want %q", src, got, src)
		}
	}
}

func TestPrintEmptySource(t *testing.T) {
	tree, err := Parse([]byte(""))
	if err != nil {
		t.Fatal("Parse:", err)
	}
	if got := Print(tree); got != "" {
		t.Errorf("Print(Parse(\"\")) = %q, want empty", got)
	}
}

func TestPrintStringLiteralsRoundTrip(t *testing.T) {
	tests := []string{
		`local a = "simple"`,
		`local a = 'single quoted'`,
		`local a = "escaped \"quote\" and \\backslash"`,
		`local a = "tab\tand\nnewline"`,
		`local a = [[long string]]`,
		`local a = [==[long string with ]] inside]==]`,
		"local a = `interp {1 + 1} end`",
	}
	for _, src := range tests {
		tree, err := Parse([]byte(src))
		if err != nil {
			t.Errorf("Parse(%q): %v", src, err)
			continue
		}
		if got := Print(tree); got != src {
			t.Errorf("Print(Parse(%q)) = %q, want %q", src, got, src)
		}
	}
}
