// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

// Visitor is a record of optional callbacks, one per CST node kind plus
// VisitToken, used to drive a uniform pre-order, left-to-right walk over a
// tree with [Visit]. Unset callbacks are no-ops.
type Visitor struct {
	VisitToken func(ctx any, tok Token)

	VisitCst   func(ctx any, n *Cst)
	VisitBlock func(ctx any, n *Block)

	VisitType         func(ctx any, n Type)
	VisitTypePack     func(ctx any, n TypePack)
	VisitTableTypeField func(ctx any, n TableTypeField)

	VisitExpr       func(ctx any, n Expr)
	VisitTableField func(ctx any, n TableField)
	VisitVar        func(ctx any, n *Var)
	VisitVarRoot    func(ctx any, n VarRoot)
	VisitVarSuffix  func(ctx any, n VarSuffix)
	VisitFunctionArg func(ctx any, n FunctionArg)
	VisitFunctionBody func(ctx any, n *FunctionBody)

	VisitStat     func(ctx any, n Stat)
	VisitLastStat func(ctx any, n LastStat)
}

// BaseVisitor returns a [Visitor] with every callback set to a no-op.
// Callers typically copy the result and overwrite the slots they need.
// A zero Visitor walks the same way, since unset callbacks are skipped.
func BaseVisitor() *Visitor {
	return &Visitor{
		VisitToken:          func(ctx any, tok Token) {},
		VisitCst:            func(ctx any, n *Cst) {},
		VisitBlock:          func(ctx any, n *Block) {},
		VisitType:           func(ctx any, n Type) {},
		VisitTypePack:       func(ctx any, n TypePack) {},
		VisitTableTypeField: func(ctx any, n TableTypeField) {},
		VisitExpr:           func(ctx any, n Expr) {},
		VisitTableField:     func(ctx any, n TableField) {},
		VisitVar:            func(ctx any, n *Var) {},
		VisitVarRoot:        func(ctx any, n VarRoot) {},
		VisitVarSuffix:      func(ctx any, n VarSuffix) {},
		VisitFunctionArg:    func(ctx any, n FunctionArg) {},
		VisitFunctionBody:   func(ctx any, n *FunctionBody) {},
		VisitStat:           func(ctx any, n Stat) {},
		VisitLastStat:       func(ctx any, n LastStat) {},
	}
}

func (v *Visitor) token(ctx any, tok Token) {
	if v.VisitToken != nil {
		v.VisitToken(ctx, tok)
	}
}

func (v *Visitor) optToken(ctx any, tok *Token) {
	if tok != nil {
		v.token(ctx, *tok)
	}
}

// Visit performs a pre-order, left-to-right walk of root, invoking v's
// callbacks for every node and token encountered. root must be a *[Cst],
// *[Block], or any node type defined by this package.
func Visit(v *Visitor, ctx any, root any) {
	walkAny(v, ctx, root)
}

func (v *Visitor) visitCst(ctx any, n *Cst) {
	if v.VisitCst != nil {
		v.VisitCst(ctx, n)
	}
	v.visitBlock(ctx, n.Block)
	v.token(ctx, n.EOF)
}

func (v *Visitor) visitBlock(ctx any, n *Block) {
	if v.VisitBlock != nil {
		v.VisitBlock(ctx, n)
	}
	for i, stat := range n.Stats {
		v.visitStat(ctx, stat)
		if i < len(n.StatSemis) {
			v.optToken(ctx, n.StatSemis[i])
		}
	}
	if n.LastStat != nil {
		v.visitLastStat(ctx, n.LastStat)
		v.optToken(ctx, n.LastStatSemi)
	}
}

func (v *Visitor) visitAttributes(ctx any, attrs []Attribute) {
	for _, a := range attrs {
		v.token(ctx, a.At)
		v.token(ctx, a.Name)
	}
}

func (v *Visitor) visitGenerics(ctx any, g *Generics) {
	if g == nil {
		return
	}
	v.token(ctx, g.Angles.Open)
	for _, elem := range g.Params {
		p := elem.Node
		v.token(ctx, p.Name)
		v.optToken(ctx, p.Pack)
		if p.Eq != nil {
			v.token(ctx, *p.Eq)
			switch d := p.Default.(type) {
			case Type:
				v.visitType(ctx, d)
			case TypePack:
				v.visitTypePack(ctx, d)
			}
		}
		v.optToken(ctx, elem.Sep)
	}
	v.token(ctx, g.Angles.Close)
}

func (v *Visitor) visitFunctionBody(ctx any, n *FunctionBody) {
	if v.VisitFunctionBody != nil {
		v.VisitFunctionBody(ctx, n)
	}
	v.visitGenerics(ctx, n.Generics)
	v.token(ctx, n.Parens.Open)
	for _, elem := range n.Params {
		v.token(ctx, elem.Node.Name)
		if elem.Node.Colon != nil {
			v.token(ctx, *elem.Node.Colon)
			v.visitType(ctx, elem.Node.Type)
		}
		v.optToken(ctx, elem.Sep)
	}
	if n.Vararg != nil {
		v.token(ctx, n.Vararg.Ellip)
		if n.Vararg.Colon != nil {
			v.token(ctx, *n.Vararg.Colon)
			v.visitType(ctx, n.Vararg.Type)
		}
	}
	v.token(ctx, n.Parens.Close)
	if n.Colon != nil {
		v.token(ctx, *n.Colon)
		v.visitTypePack(ctx, n.Ret)
	}
	v.visitBlock(ctx, n.Block)
	v.token(ctx, n.End)
}

func (v *Visitor) visitStat(ctx any, n Stat) {
	if v.VisitStat != nil {
		v.VisitStat(ctx, n)
	}
	switch s := n.(type) {
	case *StatAssign:
		for _, elem := range s.Vars {
			v.visitVar(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
		v.token(ctx, s.Eq)
		for _, elem := range s.Exprs {
			v.visitExpr(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
	case *StatCompoundAssign:
		v.visitVar(ctx, s.Var)
		v.token(ctx, s.Op)
		v.visitExpr(ctx, s.Expr)
	case *StatCall:
		v.visitVar(ctx, s.Var)
	case *StatDo:
		v.token(ctx, s.Do)
		v.visitBlock(ctx, s.Block)
		v.token(ctx, s.End)
	case *StatWhile:
		v.token(ctx, s.While)
		v.visitExpr(ctx, s.Cond)
		v.token(ctx, s.Do)
		v.visitBlock(ctx, s.Block)
		v.token(ctx, s.End)
	case *StatRepeat:
		v.token(ctx, s.Repeat)
		v.visitBlock(ctx, s.Block)
		v.token(ctx, s.Until)
		v.visitExpr(ctx, s.Cond)
	case *StatIf:
		v.token(ctx, s.If)
		v.visitExpr(ctx, s.Cond)
		v.token(ctx, s.Then)
		v.visitBlock(ctx, s.Block)
		for _, e := range s.Elseifs {
			v.token(ctx, e.Elseif)
			v.visitExpr(ctx, e.Cond)
			v.token(ctx, e.Then)
			v.visitBlock(ctx, e.Block)
		}
		if s.Else != nil {
			v.token(ctx, *s.Else)
			v.visitBlock(ctx, s.ElseBlock)
		}
		v.token(ctx, s.End)
	case *StatNumericFor:
		v.token(ctx, s.For)
		v.token(ctx, s.Name)
		if s.Colon != nil {
			v.token(ctx, *s.Colon)
			v.visitType(ctx, s.Type)
		}
		v.token(ctx, s.Eq)
		v.visitExpr(ctx, s.Start)
		v.token(ctx, s.Comma1)
		v.visitExpr(ctx, s.Finish)
		if s.Comma2 != nil {
			v.token(ctx, *s.Comma2)
			v.visitExpr(ctx, s.Step)
		}
		v.token(ctx, s.Do)
		v.visitBlock(ctx, s.Block)
		v.token(ctx, s.End)
	case *StatForIn:
		v.token(ctx, s.For)
		for _, elem := range s.Names {
			v.token(ctx, elem.Node.Name)
			if elem.Node.Colon != nil {
				v.token(ctx, *elem.Node.Colon)
				v.visitType(ctx, elem.Node.Type)
			}
			v.optToken(ctx, elem.Sep)
		}
		v.token(ctx, s.In)
		for _, elem := range s.Exprs {
			v.visitExpr(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
		v.token(ctx, s.Do)
		v.visitBlock(ctx, s.Block)
		v.token(ctx, s.End)
	case *StatFunction:
		v.visitAttributes(ctx, s.Attributes)
		v.token(ctx, s.Function)
		v.visitVar(ctx, s.Name)
		if s.Method != nil {
			v.token(ctx, s.Method.Colon)
			v.token(ctx, s.Method.Name)
		}
		v.visitFunctionBody(ctx, s.Body)
	case *StatLocalFunction:
		v.token(ctx, s.Local)
		v.visitAttributes(ctx, s.Attributes)
		v.token(ctx, s.Function)
		v.token(ctx, s.Name)
		v.visitFunctionBody(ctx, s.Body)
	case *StatLocalVariable:
		v.token(ctx, s.Local)
		for _, elem := range s.Names {
			v.token(ctx, elem.Node.Name)
			if elem.Node.Colon != nil {
				v.token(ctx, *elem.Node.Colon)
				v.visitType(ctx, elem.Node.Type)
			}
			v.optToken(ctx, elem.Sep)
		}
		if s.Eq != nil {
			v.token(ctx, *s.Eq)
			for _, elem := range s.Exprs {
				v.visitExpr(ctx, elem.Node)
				v.optToken(ctx, elem.Sep)
			}
		}
	case *StatType:
		v.optToken(ctx, s.Export)
		v.token(ctx, s.Type)
		v.token(ctx, s.Name)
		v.visitGenerics(ctx, s.Generics)
		v.token(ctx, s.Eq)
		v.visitType(ctx, s.Value)
	default:
		panic("luau: visitStat: unknown Stat variant")
	}
}

func (v *Visitor) visitLastStat(ctx any, n LastStat) {
	if v.VisitLastStat != nil {
		v.VisitLastStat(ctx, n)
	}
	switch s := n.(type) {
	case *LastStatReturn:
		v.token(ctx, s.Return)
		for _, elem := range s.Exprs {
			v.visitExpr(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
	case *LastStatBreak:
		v.token(ctx, s.Token)
	case *LastStatContinue:
		v.token(ctx, s.Token)
	default:
		panic("luau: visitLastStat: unknown LastStat variant")
	}
}

func (v *Visitor) visitVar(ctx any, n *Var) {
	if v.VisitVar != nil {
		v.VisitVar(ctx, n)
	}
	v.visitVarRoot(ctx, n.Root)
	for _, suffix := range n.Suffixes {
		v.visitVarSuffix(ctx, suffix)
	}
}

func (v *Visitor) visitVarRoot(ctx any, n VarRoot) {
	if v.VisitVarRoot != nil {
		v.VisitVarRoot(ctx, n)
	}
	switch r := n.(type) {
	case *VarRootName:
		v.token(ctx, r.Name)
	case *VarRootParen:
		v.token(ctx, r.Parens.Open)
		v.visitExpr(ctx, r.Expr)
		v.token(ctx, r.Parens.Close)
	default:
		panic("luau: visitVarRoot: unknown VarRoot variant")
	}
}

func (v *Visitor) visitVarSuffix(ctx any, n VarSuffix) {
	if v.VisitVarSuffix != nil {
		v.VisitVarSuffix(ctx, n)
	}
	switch s := n.(type) {
	case *VarSuffixIndexName:
		v.token(ctx, s.Dot)
		v.token(ctx, s.Name)
	case *VarSuffixIndexExpr:
		v.token(ctx, s.Bracks.Open)
		v.visitExpr(ctx, s.Expr)
		v.token(ctx, s.Bracks.Close)
	case *VarSuffixCall:
		if s.Method != nil {
			v.token(ctx, s.Method.Colon)
			v.token(ctx, s.Method.Name)
		}
		v.visitFunctionArg(ctx, s.Arg)
	default:
		panic("luau: visitVarSuffix: unknown VarSuffix variant")
	}
}

func (v *Visitor) visitFunctionArg(ctx any, n FunctionArg) {
	if v.VisitFunctionArg != nil {
		v.VisitFunctionArg(ctx, n)
	}
	switch a := n.(type) {
	case *FunctionArgList:
		v.token(ctx, a.Parens.Open)
		for _, elem := range a.Args {
			v.visitExpr(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
		v.token(ctx, a.Parens.Close)
	case *FunctionArgTable:
		v.visitExpr(ctx, a.Table)
	case *FunctionArgString:
		v.token(ctx, a.Token)
	default:
		panic("luau: visitFunctionArg: unknown FunctionArg variant")
	}
}

func (v *Visitor) visitTableField(ctx any, n TableField) {
	if v.VisitTableField != nil {
		v.VisitTableField(ctx, n)
	}
	switch f := n.(type) {
	case *TableFieldNamed:
		v.token(ctx, f.Name)
		v.token(ctx, f.Eq)
		v.visitExpr(ctx, f.Value)
	case *TableFieldIndexed:
		v.token(ctx, f.Bracks.Open)
		v.visitExpr(ctx, f.Key)
		v.token(ctx, f.Bracks.Close)
		v.token(ctx, f.Eq)
		v.visitExpr(ctx, f.Value)
	case *TableFieldPositional:
		v.visitExpr(ctx, f.Value)
	default:
		panic("luau: visitTableField: unknown TableField variant")
	}
}

func (v *Visitor) visitExpr(ctx any, n Expr) {
	if v.VisitExpr != nil {
		v.VisitExpr(ctx, n)
	}
	switch e := n.(type) {
	case *ExprNil:
		v.token(ctx, e.Token)
	case *ExprBoolean:
		v.token(ctx, e.Token)
	case *ExprNumber:
		v.token(ctx, e.Token)
	case *ExprString:
		v.token(ctx, e.Token)
	case *ExprVarargs:
		v.token(ctx, e.Token)
	case *ExprInterpString:
		v.token(ctx, e.Begin)
		for _, mid := range e.Mids {
			v.visitExpr(ctx, mid.Expr)
			v.token(ctx, mid.Segment)
		}
	case *ExprTable:
		v.token(ctx, e.Braces.Open)
		for _, elem := range e.Fields {
			v.visitTableField(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
		v.token(ctx, e.Braces.Close)
	case *ExprFunction:
		v.visitAttributes(ctx, e.Attributes)
		v.token(ctx, e.Function)
		v.visitFunctionBody(ctx, e.Body)
	case *ExprIfElse:
		v.token(ctx, e.If)
		v.visitExpr(ctx, e.Cond)
		v.token(ctx, e.Then)
		v.visitExpr(ctx, e.Body)
		for _, el := range e.Elseifs {
			v.token(ctx, el.Elseif)
			v.visitExpr(ctx, el.Cond)
			v.token(ctx, el.Then)
			v.visitExpr(ctx, el.Body)
		}
		v.token(ctx, e.Else)
		v.visitExpr(ctx, e.ElseBody)
	case *ExprVar:
		v.visitVar(ctx, e.Var)
	case *ExprAssertion:
		v.visitExpr(ctx, e.Expr)
		v.token(ctx, e.DoubleColon)
		v.visitType(ctx, e.Type)
	case *ExprUnary:
		v.token(ctx, e.Op)
		v.visitExpr(ctx, e.Expr)
	case *ExprBinary:
		v.visitExpr(ctx, e.Left)
		v.token(ctx, e.Op)
		v.visitExpr(ctx, e.Right)
	default:
		panic("luau: visitExpr: unknown Expr variant")
	}
}

func (v *Visitor) visitType(ctx any, n Type) {
	if v.VisitType != nil {
		v.VisitType(ctx, n)
	}
	switch t := n.(type) {
	case *TypeNil:
		v.token(ctx, t.Token)
	case *TypeBoolean:
		v.token(ctx, t.Token)
	case *TypeString:
		v.token(ctx, t.Token)
	case *TypeReference:
		v.optToken(ctx, t.Prefix)
		v.optToken(ctx, t.Dot)
		v.token(ctx, t.Name)
		if t.Generics != nil {
			v.token(ctx, t.Generics.Angles.Open)
			for _, elem := range t.Generics.Args {
				v.visitType(ctx, elem.Node)
				v.optToken(ctx, elem.Sep)
			}
			v.token(ctx, t.Generics.Angles.Close)
		}
	case *TypeTypeof:
		v.token(ctx, t.Typeof)
		v.token(ctx, t.Parens.Open)
		v.visitExpr(ctx, t.Expr)
		v.token(ctx, t.Parens.Close)
	case *TypeArray:
		v.token(ctx, t.Braces.Open)
		v.visitType(ctx, t.Elem)
		v.token(ctx, t.Braces.Close)
	case *TypeTable:
		v.token(ctx, t.Braces.Open)
		for _, elem := range t.Fields {
			v.visitTableTypeField(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
		v.token(ctx, t.Braces.Close)
	case *TypeFunction:
		v.visitGenerics(ctx, t.Generics)
		v.token(ctx, t.Parens.Open)
		for _, elem := range t.Params {
			v.optToken(ctx, elem.Node.Name)
			v.optToken(ctx, elem.Node.Colon)
			v.visitType(ctx, elem.Node.Type)
			v.optToken(ctx, elem.Sep)
		}
		if t.Vararg != nil {
			v.token(ctx, t.Vararg.Ellip)
			v.optToken(ctx, t.Vararg.Colon)
			if t.Vararg.Type != nil {
				v.visitType(ctx, t.Vararg.Type)
			}
		}
		v.token(ctx, t.Parens.Close)
		v.token(ctx, t.Arrow)
		v.visitTypePack(ctx, t.Ret)
	case *TypeParen:
		v.token(ctx, t.Parens.Open)
		v.visitType(ctx, t.Type)
		v.token(ctx, t.Parens.Close)
	case *TypeOptional:
		v.visitType(ctx, t.Type)
		v.token(ctx, t.Question)
	case *TypeUnion:
		for _, m := range t.Types {
			v.optToken(ctx, m.Op)
			v.visitType(ctx, m.Type)
		}
	case *TypeIntersection:
		for _, m := range t.Types {
			v.optToken(ctx, m.Op)
			v.visitType(ctx, m.Type)
		}
	default:
		panic("luau: visitType: unknown Type variant")
	}
}

func (v *Visitor) visitTableTypeField(ctx any, n TableTypeField) {
	if v.VisitTableTypeField != nil {
		v.VisitTableTypeField(ctx, n)
	}
	switch f := n.(type) {
	case *TableTypeFieldName:
		v.optToken(ctx, f.Access)
		v.token(ctx, f.Name)
		v.token(ctx, f.Colon)
		v.visitType(ctx, f.Type)
	case *TableTypeFieldString:
		v.optToken(ctx, f.Access)
		v.token(ctx, f.Bracks.Open)
		v.token(ctx, f.Key)
		v.token(ctx, f.Bracks.Close)
		v.token(ctx, f.Colon)
		v.visitType(ctx, f.Type)
	case *TableTypeFieldIndexer:
		v.optToken(ctx, f.Access)
		v.token(ctx, f.Bracks.Open)
		v.visitType(ctx, f.Key)
		v.token(ctx, f.Bracks.Close)
		v.token(ctx, f.Colon)
		v.visitType(ctx, f.Type)
	default:
		panic("luau: visitTableTypeField: unknown TableTypeField variant")
	}
}

func (v *Visitor) visitTypePack(ctx any, n TypePack) {
	if n == nil {
		return
	}
	if v.VisitTypePack != nil {
		v.VisitTypePack(ctx, n)
	}
	switch p := n.(type) {
	case *TypePackVariadic:
		v.token(ctx, p.Ellip)
		v.visitType(ctx, p.Type)
	case *TypePackGeneric:
		v.token(ctx, p.Name)
		v.token(ctx, p.Ellip)
	case *TypePackListed:
		if p.Parens != nil {
			v.token(ctx, p.Parens.Open)
		}
		for _, elem := range p.Types {
			v.visitType(ctx, elem.Node)
			v.optToken(ctx, elem.Sep)
		}
		if p.Tail != nil {
			v.visitTypePack(ctx, p.Tail)
		}
		if p.Parens != nil {
			v.token(ctx, p.Parens.Close)
		}
	default:
		panic("luau: visitTypePack: unknown TypePack variant")
	}
}
