// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import "strings"

// Print renders cst back to source text. For any tree produced by [Parse],
// Print(cst) reproduces the original input byte-for-byte.
func Print(cst *Cst) string {
	sb := new(strings.Builder)
	v := &Visitor{VisitToken: func(ctx any, tok Token) {
		writeToken(sb, tok)
	}}
	Visit(v, nil, cst)
	return sb.String()
}

func writeToken(sb *strings.Builder, tok Token) {
	for _, tr := range tok.Trivia {
		sb.WriteString(tr.Text)
	}
	if tok.Text != "" {
		sb.WriteString(tok.Text)
		return
	}
	if text, ok := tok.FixedText(); ok {
		sb.WriteString(text)
	}
}
