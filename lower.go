// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import "go.luau.dev/cst/internal/luaulex"

// decodeString returns the value a string token denotes. A token that
// reached here came from a successful [Parse], so a decode failure would
// mean the scanner accepted text it should have rejected; decodeString
// falls back to the raw token text rather than panicking on that case.
func decodeString(tok Token) string {
	v, err := luaulex.DecodeString(tok.Text)
	if err != nil {
		return tok.Text
	}
	return v
}

func decodeInterpSegment(tok Token) string {
	v, err := luaulex.DecodeInterpSegment(tok.Text)
	if err != nil {
		return tok.Text
	}
	return v
}

// Lower discards trivia, delimiters, and separator tokens from cst and
// returns the normalized lossy tree described by the AST type model. Unlike
// [Parse], Lower does not round-trip: AstStatBlock carries only the
// structure needed by a downstream consumer that doesn't care how the
// source was written.
func Lower(cst *Cst) *AstStatBlock {
	return lowerBlock(cst.Block)
}

func lowerBlock(b *Block) *AstStatBlock {
	out := &AstStatBlock{Stats: make([]AstStat, len(b.Stats))}
	for i, s := range b.Stats {
		out.Stats[i] = lowerStat(s)
	}
	if b.LastStat != nil {
		out.LastStat = lowerLastStat(b.LastStat)
	}
	return out
}

func lowerOptType(t Type) AstType {
	if t == nil {
		return nil
	}
	return lowerType(t)
}

func lowerType(t Type) AstType {
	switch t := t.(type) {
	case *TypeNil:
		return AstTypeNil{}
	case *TypeBoolean:
		return AstTypeBoolean{Value: t.Token.Kind.String() == "true"}
	case *TypeString:
		return AstTypeString{Value: decodeString(t.Token)}
	case *TypeReference:
		var prefix string
		if t.Prefix != nil {
			prefix = t.Prefix.Text
		}
		var generics []AstType
		if t.Generics != nil {
			for _, elem := range t.Generics.Args.Nodes() {
				generics = append(generics, lowerType(elem))
			}
		}
		return AstTypeReference{Prefix: prefix, Name: t.Name.Text, Generics: generics}
	case *TypeTypeof:
		return AstTypeTypeof{Expr: lowerExpr(t.Expr)}
	case *TypeArray:
		return AstTypeArray{Elem: lowerType(t.Elem)}
	case *TypeTable:
		fields := make([]AstTableTypeField, t.Fields.Len())
		for i, f := range t.Fields.Nodes() {
			fields[i] = lowerTableTypeField(f)
		}
		return AstTypeTable{Fields: fields}
	case *TypeFunction:
		params := make([]AstFunctionParam, t.Params.Len())
		for i, p := range t.Params.Nodes() {
			var name string
			if p.Name != nil {
				name = p.Name.Text
			}
			params[i] = AstFunctionParam{Name: name, Type: lowerType(p.Type)}
		}
		var varargsType AstType
		if t.Vararg != nil {
			varargsType = lowerOptType(t.Vararg.Type)
		}
		return AstTypeFunction{
			Generics:    lowerGenerics(t.Generics),
			Params:      params,
			HasVarargs:  t.Vararg != nil,
			VarargsType: varargsType,
			Ret:         lowerTypePack(t.Ret),
		}
	case *TypeParen:
		return AstTypeParen{Type: lowerType(t.Type)}
	case *TypeOptional:
		return AstTypeOptional{Type: lowerType(t.Type)}
	case *TypeUnion:
		types := make([]AstType, len(t.Types))
		for i, m := range t.Types {
			types[i] = lowerType(m.Type)
		}
		return AstTypeUnion{Types: types}
	case *TypeIntersection:
		types := make([]AstType, len(t.Types))
		for i, m := range t.Types {
			types[i] = lowerType(m.Type)
		}
		return AstTypeIntersection{Types: types}
	default:
		panic("luau: lowerType: unknown Type variant")
	}
}

func lowerTypePack(p TypePack) AstTypePack {
	if p == nil {
		return nil
	}
	switch p := p.(type) {
	case *TypePackVariadic:
		return AstTypePackVariadic{Type: lowerType(p.Type)}
	case *TypePackGeneric:
		return AstTypePackGeneric{Name: p.Name.Text}
	case *TypePackListed:
		types := make([]AstType, p.Types.Len())
		for i, t := range p.Types.Nodes() {
			types[i] = lowerType(t)
		}
		return AstTypePackList{Types: types, Tail: lowerTypePack(p.Tail)}
	default:
		panic("luau: lowerTypePack: unknown TypePack variant")
	}
}

func accessText(tok *Token) string {
	if tok == nil {
		return ""
	}
	return tok.Text
}

func lowerTableTypeField(f TableTypeField) AstTableTypeField {
	switch f := f.(type) {
	case *TableTypeFieldName:
		return AstTableTypeFieldName{Access: accessText(f.Access), Name: f.Name.Text, Type: lowerType(f.Type)}
	case *TableTypeFieldString:
		return AstTableTypeFieldString{Access: accessText(f.Access), Key: decodeString(f.Key), Type: lowerType(f.Type)}
	case *TableTypeFieldIndexer:
		return AstTableTypeFieldIndexer{Access: accessText(f.Access), Key: lowerType(f.Key), Type: lowerType(f.Type)}
	default:
		panic("luau: lowerTableTypeField: unknown TableTypeField variant")
	}
}

func lowerGenerics(g *Generics) []AstGenericParam {
	if g == nil {
		return nil
	}
	out := make([]AstGenericParam, g.Params.Len())
	for i, p := range g.Params.Nodes() {
		ap := AstGenericParam{Name: p.Name.Text, Pack: p.Pack != nil}
		if p.Eq != nil {
			switch d := p.Default.(type) {
			case Type:
				ap.Default = lowerType(d)
			case TypePack:
				ap.Default = lowerTypePack(d)
			}
		}
		out[i] = ap
	}
	return out
}

func lowerExprs(list Punctuated[Expr]) []AstExpr {
	nodes := list.Nodes()
	out := make([]AstExpr, len(nodes))
	for i, e := range nodes {
		out[i] = lowerExpr(e)
	}
	return out
}

func lowerExpr(e Expr) AstExpr {
	switch e := e.(type) {
	case *ExprNil:
		return AstExprNil{}
	case *ExprBoolean:
		return AstExprBoolean{Value: e.Token.Kind.String() == "true"}
	case *ExprNumber:
		return AstExprNumber{Value: e.Token.Text}
	case *ExprString:
		return AstExprString{Value: decodeString(e.Token)}
	case *ExprVarargs:
		return AstExprVarargs{}
	case *ExprInterpString:
		parts := []AstInterpStringPart{AstInterpStringLiteral{Text: decodeInterpSegment(e.Begin)}}
		for _, mid := range e.Mids {
			parts = append(parts, AstInterpStringExpr{Expr: lowerExpr(mid.Expr)})
			parts = append(parts, AstInterpStringLiteral{Text: decodeInterpSegment(mid.Segment)})
		}
		return AstExprInterpString{Parts: parts}
	case *ExprTable:
		return AstExprTable{Table: lowerTable(e.Fields)}
	case *ExprFunction:
		return AstExprFunction{Attributes: lowerAttributes(e.Attributes), Body: lowerFunctionBody(e.Body)}
	case *ExprIfElse:
		branches := []AstIfBranch{{Cond: lowerExpr(e.Cond), Body: lowerExpr(e.Body)}}
		for _, el := range e.Elseifs {
			branches = append(branches, AstIfBranch{Cond: lowerExpr(el.Cond), Body: lowerExpr(el.Body)})
		}
		return AstExprIfElse{Branches: branches, ElseBody: lowerExpr(e.ElseBody)}
	case *ExprVar:
		return AstExprVar{Var: lowerVar(e.Var)}
	case *ExprAssertion:
		return AstExprAssertion{Expr: lowerExpr(e.Expr), Type: lowerType(e.Type)}
	case *ExprUnary:
		return AstExprUnary{Operator: e.Op.String(), Expr: lowerExpr(e.Expr)}
	case *ExprBinary:
		return AstExprBinary{Left: lowerExpr(e.Left), Operator: e.Op.String(), Right: lowerExpr(e.Right)}
	default:
		panic("luau: lowerExpr: unknown Expr variant")
	}
}

func lowerAttributes(attrs []Attribute) []string {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Name.Text
	}
	return out
}

func lowerTable(fields Punctuated[TableField]) *AstTable {
	out := &AstTable{Fields: make([]AstTableField, fields.Len())}
	for i, f := range fields.Nodes() {
		out.Fields[i] = lowerTableField(f)
	}
	return out
}

func lowerTableField(f TableField) AstTableField {
	switch f := f.(type) {
	case *TableFieldNamed:
		return AstTableFieldNameKey{Name: f.Name.Text, Value: lowerExpr(f.Value)}
	case *TableFieldIndexed:
		return AstTableFieldExprKey{Key: lowerExpr(f.Key), Value: lowerExpr(f.Value)}
	case *TableFieldPositional:
		return AstTableFieldNoKey{Value: lowerExpr(f.Value)}
	default:
		panic("luau: lowerTableField: unknown TableField variant")
	}
}

func lowerFunctionBody(b *FunctionBody) *AstFunctionBody {
	params := make([]AstFunctionParam, b.Params.Len())
	for i, p := range b.Params.Nodes() {
		params[i] = AstFunctionParam{Name: p.Name.Text, Type: lowerOptType(p.Type)}
	}
	var varargsType AstType
	if b.Vararg != nil && b.Vararg.Type != nil {
		varargsType = lowerType(b.Vararg.Type)
	}
	return &AstFunctionBody{
		Generics:    lowerGenerics(b.Generics),
		Params:      params,
		HasVarargs:  b.Vararg != nil,
		VarargsType: varargsType,
		Ret:         lowerTypePack(b.Ret),
		Block:       lowerBlock(b.Block),
	}
}

func lowerVar(v *Var) *AstVar {
	out := &AstVar{Root: lowerVarRoot(v.Root)}
	if len(v.Suffixes) > 0 {
		out.Suffixes = make([]AstVarSuffix, len(v.Suffixes))
		for i, s := range v.Suffixes {
			out.Suffixes[i] = lowerVarSuffix(s)
		}
	}
	return out
}

func lowerVarRoot(r VarRoot) AstVarRoot {
	switch r := r.(type) {
	case *VarRootName:
		return AstVarRootName{Name: r.Name.Text}
	case *VarRootParen:
		return AstVarRootParen{Expr: lowerExpr(r.Expr)}
	default:
		panic("luau: lowerVarRoot: unknown VarRoot variant")
	}
}

func lowerVarSuffix(s VarSuffix) AstVarSuffix {
	switch s := s.(type) {
	case *VarSuffixIndexName:
		return AstVarSuffixNameIndex{Name: s.Name.Text}
	case *VarSuffixIndexExpr:
		return AstVarSuffixExprIndex{Expr: lowerExpr(s.Expr)}
	case *VarSuffixCall:
		var method string
		if s.Method != nil {
			method = s.Method.Name.Text
		}
		return AstVarSuffixCall{Method: method, Arg: lowerFunctionArg(s.Arg)}
	default:
		panic("luau: lowerVarSuffix: unknown VarSuffix variant")
	}
}

func lowerFunctionArg(a FunctionArg) AstFunctionArg {
	switch a := a.(type) {
	case *FunctionArgList:
		return AstFunctionArgPack{Exprs: lowerExprs(a.Args)}
	case *FunctionArgTable:
		return AstFunctionArgTable{Table: lowerTable(a.Table.Fields)}
	case *FunctionArgString:
		return AstFunctionArgString{Value: decodeString(a.Token)}
	default:
		panic("luau: lowerFunctionArg: unknown FunctionArg variant")
	}
}

func lowerLocalNames(names Punctuated[Param]) []AstLocalName {
	nodes := names.Nodes()
	out := make([]AstLocalName, len(nodes))
	for i, p := range nodes {
		out[i] = AstLocalName{Name: p.Name.Text, Type: lowerOptType(p.Type)}
	}
	return out
}

func lowerStat(s Stat) AstStat {
	switch s := s.(type) {
	case *StatAssign:
		vars := make([]*AstVar, s.Vars.Len())
		for i, v := range s.Vars.Nodes() {
			vars[i] = lowerVar(v)
		}
		return &AstStatAssign{Vars: vars, Exprs: lowerExprs(s.Exprs)}
	case *StatCompoundAssign:
		return &AstStatCompoundAssign{Var: lowerVar(s.Var), Operator: s.Op.String(), Expr: lowerExpr(s.Expr)}
	case *StatCall:
		return &AstStatCall{Var: lowerVar(s.Var)}
	case *StatDo:
		return &AstStatDo{Block: lowerBlock(s.Block)}
	case *StatWhile:
		return &AstStatWhile{Cond: lowerExpr(s.Cond), Block: lowerBlock(s.Block)}
	case *StatRepeat:
		return &AstStatRepeat{Block: lowerBlock(s.Block), Cond: lowerExpr(s.Cond)}
	case *StatIf:
		branches := []AstIfBranchStat{{Cond: lowerExpr(s.Cond), Block: lowerBlock(s.Block)}}
		for _, el := range s.Elseifs {
			branches = append(branches, AstIfBranchStat{Cond: lowerExpr(el.Cond), Block: lowerBlock(el.Block)})
		}
		out := &AstStatIf{Branches: branches}
		if s.ElseBlock != nil {
			out.ElseBlock = lowerBlock(s.ElseBlock)
		}
		return out
	case *StatNumericFor:
		var step AstExpr
		if s.Step != nil {
			step = lowerExpr(s.Step)
		}
		return &AstStatNumericFor{
			Name: s.Name.Text, Type: lowerOptType(s.Type),
			Start: lowerExpr(s.Start), Finish: lowerExpr(s.Finish), Step: step,
			Block: lowerBlock(s.Block),
		}
	case *StatForIn:
		return &AstStatForIn{Names: lowerLocalNames(s.Names), Exprs: lowerExprs(s.Exprs), Block: lowerBlock(s.Block)}
	case *StatFunction:
		var method string
		if s.Method != nil {
			method = s.Method.Name.Text
		}
		return &AstStatFunction{
			Attributes: lowerAttributes(s.Attributes), Name: lowerVar(s.Name),
			Method: method, Body: lowerFunctionBody(s.Body),
		}
	case *StatLocalFunction:
		return &AstStatLocalFunction{Attributes: lowerAttributes(s.Attributes), Name: s.Name.Text, Body: lowerFunctionBody(s.Body)}
	case *StatLocalVariable:
		return &AstStatLocalVariable{Names: lowerLocalNames(s.Names), Exprs: lowerExprs(s.Exprs)}
	case *StatType:
		return &AstStatType{Export: s.Export != nil, Name: s.Name.Text, Generics: lowerGenerics(s.Generics), Value: lowerType(s.Value)}
	default:
		panic("luau: lowerStat: unknown Stat variant")
	}
}

func lowerLastStat(s LastStat) AstLastStat {
	switch s := s.(type) {
	case *LastStatReturn:
		return AstLastStatReturn{Exprs: lowerExprs(s.Exprs)}
	case *LastStatBreak:
		return AstLastStatBreak{}
	case *LastStatContinue:
		return AstLastStatContinue{}
	default:
		panic("luau: lowerLastStat: unknown LastStat variant")
	}
}
