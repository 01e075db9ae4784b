// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import (
	"errors"

	"go.luau.dev/cst/internal/luaulex"
)

// ErrEmptySpan is returned by [SpanOf] when asked for the span of an empty
// block, which has no tokens to derive a span from.
var ErrEmptySpan = errors.New("luau: span of empty block is undefined")

type spanCollector struct {
	has        bool
	start, end int
}

func (c *spanCollector) visitToken(ctx any, tok Token) {
	if !c.has {
		c.has = true
		c.start = tok.Span.Start
		c.end = tok.Span.End
		return
	}
	if tok.Span.Start < c.start {
		c.start = tok.Span.Start
	}
	if tok.Span.End > c.end {
		c.end = tok.Span.End
	}
}

// SpanOf returns the byte-offset span of node, computed from the spans of
// its first and last constituent tokens. node may be any CST node type
// defined by this package, including *[Cst] and *[Block].
//
// SpanOf returns [ErrEmptySpan] if node is a *[Block] with no statements
// and no last statement, per the invariant that an empty block has no
// defined span.
func SpanOf(node any) (Span, error) {
	if b, ok := node.(*Block); ok && len(b.Stats) == 0 && b.LastStat == nil {
		return Span{}, ErrEmptySpan
	}

	c := new(spanCollector)
	v := &Visitor{VisitToken: c.visitToken}
	walkAny(v, nil, node)

	if !c.has {
		return Span{}, ErrEmptySpan
	}
	return luaulex.NewSpan(c.start, c.end), nil
}

// walkAny dispatches a single node of any kind defined by this package to
// the matching private visit method. Unlike the public [Visit] entry
// point, it accepts every internal node category (suffixes, fields, roots,
// generics) so that [SpanOf] can be called on any constituent of a tree,
// not just its top-level categories.
func walkAny(v *Visitor, ctx any, node any) {
	switch n := node.(type) {
	case *Cst:
		v.visitCst(ctx, n)
	case *Block:
		v.visitBlock(ctx, n)
	case Stat:
		v.visitStat(ctx, n)
	case LastStat:
		v.visitLastStat(ctx, n)
	case Expr:
		v.visitExpr(ctx, n)
	case Type:
		v.visitType(ctx, n)
	case TypePack:
		v.visitTypePack(ctx, n)
	case TableTypeField:
		v.visitTableTypeField(ctx, n)
	case TableField:
		v.visitTableField(ctx, n)
	case *Var:
		v.visitVar(ctx, n)
	case VarRoot:
		v.visitVarRoot(ctx, n)
	case VarSuffix:
		v.visitVarSuffix(ctx, n)
	case FunctionArg:
		v.visitFunctionArg(ctx, n)
	case *FunctionBody:
		v.visitFunctionBody(ctx, n)
	case *Generics:
		v.visitGenerics(ctx, n)
	case Token:
		v.token(ctx, n)
	default:
		panic("luau: SpanOf: unsupported node type")
	}
}
