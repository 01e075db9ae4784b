// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

import (
	"fmt"

	"go.luau.dev/cst/internal/luaulex"
)

// ParseError is returned by [Parse] when the token stream cannot be
// assembled into a [Cst]: an unexpected token, a missing expected token, a
// grammar violation (call statement without a call suffix, generic
// parameter ordering, default-ordering), or any other structural failure.
// The parser does not attempt recovery; the first error aborts the parse.
type ParseError struct {
	Span Span
	Pos  Position
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

func newParseError(pos Position, span Span, format string, args ...any) *ParseError {
	return &ParseError{Span: span, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Parse converts a complete Luau source buffer into a [Cst]. On success,
// every invariant documented on [Cst] and its constituent node types holds;
// on failure, Parse returns either a [*luaulex.LexError] or a [*ParseError],
// both carrying a [Span] and a message, at the first point of failure.
func Parse(source []byte) (*Cst, error) {
	p := &parser{sc: luaulex.NewScanner(source)}
	p.advance()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.cur.Kind != luaulex.EOFToken {
		return nil, p.errorf(p.cur, "unexpected %s", p.cur)
	}
	eof := p.cur
	return &Cst{Block: block, EOF: eof}, nil
}

type parser struct {
	sc      *luaulex.Scanner
	cur     Token
	hasNext bool
	next    Token
	err     error
}

func (p *parser) advance() {
	if p.err != nil {
		p.cur = Token{Kind: luaulex.InvalidToken}
		return
	}
	if p.hasNext {
		p.cur = p.next
		p.hasNext = false
		return
	}
	tok, err := p.sc.Scan()
	if err != nil {
		p.err = err
		p.cur = Token{Kind: luaulex.InvalidToken}
		return
	}
	p.cur = tok
}

func (p *parser) peek() Token {
	if p.err != nil {
		return Token{Kind: luaulex.InvalidToken}
	}
	if !p.hasNext {
		tok, err := p.sc.Scan()
		if err != nil {
			p.err = err
			return Token{Kind: luaulex.InvalidToken}
		}
		p.next = tok
		p.hasNext = true
	}
	return p.next
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return newParseError(tok.Pos, tok.Span, format, args...)
}

func (p *parser) expect(kind luaulex.TokenKind) (Token, error) {
	if p.err != nil {
		return Token{}, p.err
	}
	if p.cur.Kind != kind {
		return Token{}, p.errorf(p.cur, "expected %s, found %s", kind, p.cur)
	}
	tok := p.cur
	p.advance()
	if p.err != nil {
		return Token{}, p.err
	}
	return tok, nil
}

func parsePunctuated[T any](p *parser, sepKind luaulex.TokenKind, parseElem func() (T, error)) (Punctuated[T], error) {
	var list Punctuated[T]
	for {
		elem, err := parseElem()
		if err != nil {
			return nil, err
		}
		list = append(list, PunctuatedElem[T]{Node: elem})
		if p.cur.Kind == sepKind {
			sep := p.cur
			p.advance()
			if p.err != nil {
				return nil, p.err
			}
			list[len(list)-1].Sep = &sep
			continue
		}
		break
	}
	return list, nil
}

func isBlockEnd(kind luaulex.TokenKind) bool {
	switch kind {
	case luaulex.EOFToken, luaulex.EndToken, luaulex.ElseToken, luaulex.ElseifToken, luaulex.UntilToken:
		return true
	default:
		return false
	}
}

func isCompoundAssignOp(kind luaulex.TokenKind) bool {
	switch kind {
	case luaulex.AddAssignToken, luaulex.SubAssignToken, luaulex.MulAssignToken, luaulex.DivAssignToken,
		luaulex.FloorDivAssignToken, luaulex.ModAssignToken, luaulex.PowAssignToken, luaulex.ConcatAssignToken:
		return true
	default:
		return false
	}
}

// ---- Blocks & statements ----

func (p *parser) parseBlock() (*Block, error) {
	b := &Block{}
	for !isBlockEnd(p.cur.Kind) {
		switch p.cur.Kind {
		case luaulex.ReturnToken:
			last, err := p.parseLastStat()
			if err != nil {
				return nil, err
			}
			b.LastStat = last
			if p.cur.Kind == luaulex.SemiToken {
				semi := p.cur
				p.advance()
				b.LastStatSemi = &semi
			}
			return b, nil
		case luaulex.BreakToken, luaulex.ContinueToken:
			last, err := p.parseLastStat()
			if err != nil {
				return nil, err
			}
			b.LastStat = last
			if p.cur.Kind == luaulex.SemiToken {
				semi := p.cur
				p.advance()
				b.LastStatSemi = &semi
			}
			return b, nil
		}
		stat, err := p.parseStat()
		if err != nil {
			return nil, err
		}
		b.Stats = append(b.Stats, stat)
		if p.cur.Kind == luaulex.SemiToken {
			semi := p.cur
			p.advance()
			b.StatSemis = append(b.StatSemis, &semi)
		} else {
			b.StatSemis = append(b.StatSemis, nil)
		}
	}
	return b, nil
}

func (p *parser) parseLastStat() (LastStat, error) {
	switch p.cur.Kind {
	case luaulex.ReturnToken:
		ret := p.cur
		p.advance()
		var exprs Punctuated[Expr]
		if !isBlockEnd(p.cur.Kind) && p.cur.Kind != luaulex.SemiToken {
			var err error
			exprs, err = parsePunctuated(p, luaulex.CommaToken, p.parseExpr)
			if err != nil {
				return nil, err
			}
		}
		return &LastStatReturn{Return: ret, Exprs: exprs}, nil
	case luaulex.BreakToken:
		tok := p.cur
		p.advance()
		return &LastStatBreak{Token: tok}, nil
	case luaulex.ContinueToken:
		tok := p.cur
		p.advance()
		return &LastStatContinue{Token: tok}, nil
	default:
		return nil, p.errorf(p.cur, "unexpected %s", p.cur)
	}
}

func (p *parser) parseAttributes() ([]Attribute, error) {
	var attrs []Attribute
	for p.cur.Kind == luaulex.AtToken {
		at := p.cur
		p.advance()
		name, err := p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attribute{At: at, Name: name})
	}
	return attrs, nil
}

func (p *parser) parseStat() (Stat, error) {
	switch p.cur.Kind {
	case luaulex.AtToken:
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		funcTok, err := p.expect(luaulex.FunctionToken)
		if err != nil {
			return nil, err
		}
		return p.finishStatFunction(attrs, funcTok)
	case luaulex.FunctionToken:
		funcTok := p.cur
		p.advance()
		return p.finishStatFunction(nil, funcTok)
	case luaulex.LocalToken:
		return p.parseLocalStat()
	case luaulex.IfToken:
		return p.parseIfStat()
	case luaulex.WhileToken:
		return p.parseWhileStat()
	case luaulex.DoToken:
		return p.parseDoStat()
	case luaulex.ForToken:
		return p.parseForStat()
	case luaulex.RepeatToken:
		return p.parseRepeatStat()
	case luaulex.ExportToken:
		export := p.cur
		p.advance()
		return p.parseTypeStat(&export)
	case luaulex.TypeToken:
		return p.parseTypeStat(nil)
	default:
		return p.parseAssignOrCallStat()
	}
}

func (p *parser) finishStatFunction(attrs []Attribute, funcTok Token) (Stat, error) {
	name, method, err := p.parseFunctionName()
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}
	return &StatFunction{Attributes: attrs, Function: funcTok, Name: name, Method: method, Body: body}, nil
}

func (p *parser) parseFunctionName() (*Var, *VarSuffixCallMethod, error) {
	name, err := p.expect(luaulex.IdentifierToken)
	if err != nil {
		return nil, nil, err
	}
	v := &Var{Root: &VarRootName{Name: name}}
	for p.cur.Kind == luaulex.DotToken {
		dot := p.cur
		p.advance()
		field, err := p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, nil, err
		}
		v.Suffixes = append(v.Suffixes, &VarSuffixIndexName{Dot: dot, Name: field})
	}
	var method *VarSuffixCallMethod
	if p.cur.Kind == luaulex.ColonToken {
		colon := p.cur
		p.advance()
		mname, err := p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, nil, err
		}
		method = &VarSuffixCallMethod{Colon: colon, Name: mname}
	}
	return v, method, nil
}

func (p *parser) parseLocalStat() (Stat, error) {
	local := p.cur
	p.advance()
	var attrs []Attribute
	if p.cur.Kind == luaulex.AtToken {
		var err error
		attrs, err = p.parseAttributes()
		if err != nil {
			return nil, err
		}
	}
	if p.cur.Kind == luaulex.FunctionToken {
		funcTok := p.cur
		p.advance()
		name, err := p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, err
		}
		body, err := p.parseFunctionBody()
		if err != nil {
			return nil, err
		}
		return &StatLocalFunction{Attributes: attrs, Local: local, Function: funcTok, Name: name, Body: body}, nil
	}

	names, err := parsePunctuated(p, luaulex.CommaToken, p.parseLocalName)
	if err != nil {
		return nil, err
	}
	var eq *Token
	var exprs Punctuated[Expr]
	if p.cur.Kind == luaulex.AssignToken {
		tok := p.cur
		p.advance()
		eq = &tok
		exprs, err = parsePunctuated(p, luaulex.CommaToken, p.parseExpr)
		if err != nil {
			return nil, err
		}
	}
	return &StatLocalVariable{Local: local, Names: names, Eq: eq, Exprs: exprs}, nil
}

func (p *parser) parseLocalName() (Param, error) {
	name, err := p.expect(luaulex.IdentifierToken)
	if err != nil {
		return Param{}, err
	}
	var colon *Token
	var typ Type
	if p.cur.Kind == luaulex.ColonToken {
		tok := p.cur
		p.advance()
		colon = &tok
		typ, err = p.parseType()
		if err != nil {
			return Param{}, err
		}
	}
	return Param{Name: name, Colon: colon, Type: typ}, nil
}

func (p *parser) parseIfStat() (Stat, error) {
	ifTok := p.cur
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.expect(luaulex.ThenToken)
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stat := &StatIf{If: ifTok, Cond: cond, Then: then, Block: block, End: Token{}}
	for p.cur.Kind == luaulex.ElseifToken {
		elseif := p.cur
		p.advance()
		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		t2, err := p.expect(luaulex.ThenToken)
		if err != nil {
			return nil, err
		}
		b2, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stat.Elseifs = append(stat.Elseifs, StatElseif{Elseif: elseif, Cond: c, Then: t2, Block: b2})
	}
	if p.cur.Kind == luaulex.ElseToken {
		elseTok := p.cur
		p.advance()
		eb, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stat.Else = &elseTok
		stat.ElseBlock = eb
	}
	end, err := p.expect(luaulex.EndToken)
	if err != nil {
		return nil, err
	}
	stat.End = end
	return stat, nil
}

func (p *parser) parseWhileStat() (Stat, error) {
	whileTok := p.cur
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	do, err := p.expect(luaulex.DoToken)
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(luaulex.EndToken)
	if err != nil {
		return nil, err
	}
	return &StatWhile{While: whileTok, Cond: cond, Do: do, Block: block, End: end}, nil
}

func (p *parser) parseDoStat() (Stat, error) {
	doTok := p.cur
	p.advance()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(luaulex.EndToken)
	if err != nil {
		return nil, err
	}
	return &StatDo{Do: doTok, Block: block, End: end}, nil
}

func (p *parser) parseRepeatStat() (Stat, error) {
	repeatTok := p.cur
	p.advance()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	until, err := p.expect(luaulex.UntilToken)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &StatRepeat{Repeat: repeatTok, Block: block, Until: until, Cond: cond}, nil
}

func (p *parser) parseForStat() (Stat, error) {
	forTok := p.cur
	p.advance()
	name, err := p.expect(luaulex.IdentifierToken)
	if err != nil {
		return nil, err
	}
	var colon *Token
	var typ Type
	if p.cur.Kind == luaulex.ColonToken {
		tok := p.cur
		p.advance()
		colon = &tok
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if p.cur.Kind == luaulex.AssignToken {
		eq := p.cur
		p.advance()
		start, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		comma1, err := p.expect(luaulex.CommaToken)
		if err != nil {
			return nil, err
		}
		finish, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		var comma2 *Token
		var step Expr
		if p.cur.Kind == luaulex.CommaToken {
			tok := p.cur
			p.advance()
			comma2 = &tok
			step, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		do, err := p.expect(luaulex.DoToken)
		if err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(luaulex.EndToken)
		if err != nil {
			return nil, err
		}
		return &StatNumericFor{
			For: forTok, Name: name, Colon: colon, Type: typ, Eq: eq,
			Start: start, Comma1: comma1, Finish: finish, Comma2: comma2, Step: step,
			Do: do, Block: block, End: end,
		}, nil
	}

	names := Punctuated[Param]{{Node: Param{Name: name, Colon: colon, Type: typ}}}
	for p.cur.Kind == luaulex.CommaToken {
		sep := p.cur
		p.advance()
		names[len(names)-1].Sep = &sep
		n, err := p.parseLocalName()
		if err != nil {
			return nil, err
		}
		names = append(names, PunctuatedElem[Param]{Node: n})
	}
	in, err := p.expect(luaulex.InToken)
	if err != nil {
		return nil, err
	}
	exprs, err := parsePunctuated(p, luaulex.CommaToken, p.parseExpr)
	if err != nil {
		return nil, err
	}
	do, err := p.expect(luaulex.DoToken)
	if err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(luaulex.EndToken)
	if err != nil {
		return nil, err
	}
	return &StatForIn{For: forTok, Names: names, In: in, Exprs: exprs, Do: do, Block: block, End: end}, nil
}

func (p *parser) parseTypeStat(export *Token) (Stat, error) {
	typeTok, err := p.expect(luaulex.TypeToken)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(luaulex.IdentifierToken)
	if err != nil {
		return nil, err
	}
	generics, err := p.tryParseGenerics(true)
	if err != nil {
		return nil, err
	}
	eq, err := p.expect(luaulex.AssignToken)
	if err != nil {
		return nil, err
	}
	value, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &StatType{Export: export, Type: typeTok, Name: name, Generics: generics, Eq: eq, Value: value}, nil
}

func (p *parser) parseAssignOrCallStat() (Stat, error) {
	first, err := p.parseVar()
	if err != nil {
		return nil, err
	}
	if isCompoundAssignOp(p.cur.Kind) {
		op := p.cur
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &StatCompoundAssign{Var: first, Op: op, Expr: rhs}, nil
	}
	if p.cur.Kind == luaulex.CommaToken || p.cur.Kind == luaulex.AssignToken {
		vars := Punctuated[*Var]{{Node: first}}
		for p.cur.Kind == luaulex.CommaToken {
			sep := p.cur
			p.advance()
			vars[len(vars)-1].Sep = &sep
			v, err := p.parseVar()
			if err != nil {
				return nil, err
			}
			vars = append(vars, PunctuatedElem[*Var]{Node: v})
		}
		eq, err := p.expect(luaulex.AssignToken)
		if err != nil {
			return nil, err
		}
		exprs, err := parsePunctuated(p, luaulex.CommaToken, p.parseExpr)
		if err != nil {
			return nil, err
		}
		return &StatAssign{Vars: vars, Eq: eq, Exprs: exprs}, nil
	}
	if len(first.Suffixes) == 0 || !IsCall(first.Suffixes[len(first.Suffixes)-1]) {
		return nil, p.errorf(p.cur, "call statement requires a call suffix")
	}
	return &StatCall{Var: first}, nil
}

// ---- Vars ----

func (p *parser) parseVar() (*Var, error) {
	root, err := p.parseVarRoot()
	if err != nil {
		return nil, err
	}
	v := &Var{Root: root}
	for {
		switch p.cur.Kind {
		case luaulex.DotToken:
			dot := p.cur
			p.advance()
			name, err := p.expect(luaulex.IdentifierToken)
			if err != nil {
				return nil, err
			}
			v.Suffixes = append(v.Suffixes, &VarSuffixIndexName{Dot: dot, Name: name})
		case luaulex.LBracketToken:
			open := p.cur
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			close, err := p.expect(luaulex.RBracketToken)
			if err != nil {
				return nil, err
			}
			v.Suffixes = append(v.Suffixes, &VarSuffixIndexExpr{Bracks: Bracks{Open: open, Close: close}, Expr: e})
		case luaulex.ColonToken:
			colon := p.cur
			p.advance()
			name, err := p.expect(luaulex.IdentifierToken)
			if err != nil {
				return nil, err
			}
			arg, err := p.parseFunctionArg()
			if err != nil {
				return nil, err
			}
			v.Suffixes = append(v.Suffixes, &VarSuffixCall{Method: &VarSuffixCallMethod{Colon: colon, Name: name}, Arg: arg})
		case luaulex.LParenToken, luaulex.StringToken, luaulex.LBraceToken:
			arg, err := p.parseFunctionArg()
			if err != nil {
				return nil, err
			}
			v.Suffixes = append(v.Suffixes, &VarSuffixCall{Arg: arg})
		default:
			return v, nil
		}
	}
}

func (p *parser) parseVarRoot() (VarRoot, error) {
	switch p.cur.Kind {
	case luaulex.LParenToken:
		open := p.cur
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(luaulex.RParenToken)
		if err != nil {
			return nil, err
		}
		return &VarRootParen{Parens: Parens{Open: open, Close: close}, Expr: e}, nil
	case luaulex.IdentifierToken:
		name := p.cur
		p.advance()
		return &VarRootName{Name: name}, nil
	default:
		return nil, p.errorf(p.cur, "unexpected %s, expected variable", p.cur)
	}
}

func (p *parser) parseFunctionArg() (FunctionArg, error) {
	switch p.cur.Kind {
	case luaulex.LParenToken:
		open := p.cur
		p.advance()
		var args Punctuated[Expr]
		if p.cur.Kind != luaulex.RParenToken {
			var err error
			args, err = parsePunctuated(p, luaulex.CommaToken, p.parseExpr)
			if err != nil {
				return nil, err
			}
		}
		close, err := p.expect(luaulex.RParenToken)
		if err != nil {
			return nil, err
		}
		return &FunctionArgList{Parens: Parens{Open: open, Close: close}, Args: args}, nil
	case luaulex.StringToken:
		tok := p.cur
		p.advance()
		return &FunctionArgString{Token: tok}, nil
	case luaulex.LBraceToken:
		tbl, err := p.parseTableConstructor()
		if err != nil {
			return nil, err
		}
		return &FunctionArgTable{Table: tbl}, nil
	default:
		return nil, p.errorf(p.cur, "unexpected %s, expected call arguments", p.cur)
	}
}

// ---- Expressions ----

func (p *parser) parseExpr() (Expr, error) { return p.parseExprOr() }

func (p *parser) parseExprOr() (Expr, error) {
	left, err := p.parseExprAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == luaulex.OrToken {
		op := p.cur
		p.advance()
		right, err := p.parseExprAnd()
		if err != nil {
			return nil, err
		}
		left = &ExprBinary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseExprAnd() (Expr, error) {
	left, err := p.parseExprCompare()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == luaulex.AndToken {
		op := p.cur
		p.advance()
		right, err := p.parseExprCompare()
		if err != nil {
			return nil, err
		}
		left = &ExprBinary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func isCompareOp(kind luaulex.TokenKind) bool {
	switch kind {
	case luaulex.LessToken, luaulex.LessEqualToken, luaulex.GreaterToken, luaulex.GreaterEqualToken,
		luaulex.EqualToken, luaulex.NotEqualToken:
		return true
	default:
		return false
	}
}

func (p *parser) parseExprCompare() (Expr, error) {
	left, err := p.parseExprConcat()
	if err != nil {
		return nil, err
	}
	for isCompareOp(p.cur.Kind) {
		op := p.cur
		p.advance()
		right, err := p.parseExprConcat()
		if err != nil {
			return nil, err
		}
		left = &ExprBinary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseExprConcat() (Expr, error) {
	left, err := p.parseExprAddSub()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == luaulex.ConcatToken {
		op := p.cur
		p.advance()
		right, err := p.parseExprConcat()
		if err != nil {
			return nil, err
		}
		return &ExprBinary{Left: left, Op: op, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseExprAddSub() (Expr, error) {
	left, err := p.parseExprMulDiv()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == luaulex.AddToken || p.cur.Kind == luaulex.SubToken {
		op := p.cur
		p.advance()
		right, err := p.parseExprMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ExprBinary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func isMulOp(kind luaulex.TokenKind) bool {
	switch kind {
	case luaulex.MulToken, luaulex.DivToken, luaulex.FloorDivToken, luaulex.ModToken:
		return true
	default:
		return false
	}
}

func (p *parser) parseExprMulDiv() (Expr, error) {
	left, err := p.parseExprUnary()
	if err != nil {
		return nil, err
	}
	for isMulOp(p.cur.Kind) {
		op := p.cur
		p.advance()
		right, err := p.parseExprUnary()
		if err != nil {
			return nil, err
		}
		left = &ExprBinary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func isUnaryOp(kind luaulex.TokenKind) bool {
	switch kind {
	case luaulex.NotToken, luaulex.LenToken, luaulex.SubToken, luaulex.AddToken:
		return true
	default:
		return false
	}
}

func (p *parser) parseExprUnary() (Expr, error) {
	if isUnaryOp(p.cur.Kind) {
		op := p.cur
		p.advance()
		operand, err := p.parseExprUnary()
		if err != nil {
			return nil, err
		}
		return &ExprUnary{Op: op, Expr: operand}, nil
	}
	return p.parseExprPow()
}

func (p *parser) parseExprPow() (Expr, error) {
	left, err := p.parseExprAssertion()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == luaulex.PowToken {
		op := p.cur
		p.advance()
		right, err := p.parseExprUnary()
		if err != nil {
			return nil, err
		}
		return &ExprBinary{Left: left, Op: op, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseExprAssertion() (Expr, error) {
	left, err := p.parseExprPrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == luaulex.DoubleColonToken {
		dc := p.cur
		p.advance()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		left = &ExprAssertion{Expr: left, DoubleColon: dc, Type: typ}
	}
	return left, nil
}

func (p *parser) parseExprPrimary() (Expr, error) {
	switch p.cur.Kind {
	case luaulex.NilToken:
		tok := p.cur
		p.advance()
		return &ExprNil{Token: tok}, nil
	case luaulex.TrueToken, luaulex.FalseToken:
		tok := p.cur
		p.advance()
		return &ExprBoolean{Token: tok}, nil
	case luaulex.NumeralToken:
		tok := p.cur
		p.advance()
		return &ExprNumber{Token: tok}, nil
	case luaulex.StringToken:
		tok := p.cur
		p.advance()
		return &ExprString{Token: tok}, nil
	case luaulex.VarargToken:
		tok := p.cur
		p.advance()
		return &ExprVarargs{Token: tok}, nil
	case luaulex.InterpStringPartToken:
		tok := p.cur
		p.advance()
		return &ExprInterpString{Begin: tok}, nil
	case luaulex.InterpStringBeginToken:
		return p.parseInterpString()
	case luaulex.LBraceToken:
		return p.parseTableConstructor()
	case luaulex.AtToken:
		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, err
		}
		funcTok, err := p.expect(luaulex.FunctionToken)
		if err != nil {
			return nil, err
		}
		body, err := p.parseFunctionBody()
		if err != nil {
			return nil, err
		}
		return &ExprFunction{Attributes: attrs, Function: funcTok, Body: body}, nil
	case luaulex.FunctionToken:
		funcTok := p.cur
		p.advance()
		body, err := p.parseFunctionBody()
		if err != nil {
			return nil, err
		}
		return &ExprFunction{Function: funcTok, Body: body}, nil
	case luaulex.IfToken:
		return p.parseIfElseExpr()
	case luaulex.LParenToken, luaulex.IdentifierToken:
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return &ExprVar{Var: v}, nil
	default:
		return nil, p.errorf(p.cur, "unexpected %s", p.cur)
	}
}

func (p *parser) parseInterpString() (Expr, error) {
	begin := p.cur
	p.advance()
	node := &ExprInterpString{Begin: begin}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != luaulex.InterpStringMidToken && p.cur.Kind != luaulex.InterpStringEndToken {
			return nil, p.errorf(p.cur, "expected interpolated string segment, found %s", p.cur)
		}
		seg := p.cur
		p.advance()
		node.Mids = append(node.Mids, InterpStringMid{Expr: e, Segment: seg})
		if seg.Kind == luaulex.InterpStringEndToken {
			break
		}
	}
	return node, nil
}

func (p *parser) parseIfElseExpr() (Expr, error) {
	ifTok := p.cur
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.expect(luaulex.ThenToken)
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	node := &ExprIfElse{If: ifTok, Cond: cond, Then: then, Body: body}
	for p.cur.Kind == luaulex.ElseifToken {
		elseif := p.cur
		p.advance()
		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		t2, err := p.expect(luaulex.ThenToken)
		if err != nil {
			return nil, err
		}
		b2, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Elseifs = append(node.Elseifs, ExprElseif{Elseif: elseif, Cond: c, Then: t2, Body: b2})
	}
	elseTok, err := p.expect(luaulex.ElseToken)
	if err != nil {
		return nil, err
	}
	elseBody, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	node.Else = elseTok
	node.ElseBody = elseBody
	return node, nil
}

func (p *parser) parseTableConstructor() (*ExprTable, error) {
	open, err := p.expect(luaulex.LBraceToken)
	if err != nil {
		return nil, err
	}
	var fields Punctuated[TableField]
	for p.cur.Kind != luaulex.RBraceToken {
		field, err := p.parseTableField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, PunctuatedElem[TableField]{Node: field})
		if p.cur.Kind == luaulex.CommaToken || p.cur.Kind == luaulex.SemiToken {
			sep := p.cur
			p.advance()
			fields[len(fields)-1].Sep = &sep
			continue
		}
		break
	}
	close, err := p.expect(luaulex.RBraceToken)
	if err != nil {
		return nil, err
	}
	return &ExprTable{Braces: Braces{Open: open, Close: close}, Fields: fields}, nil
}

func (p *parser) parseTableField() (TableField, error) {
	if p.cur.Kind == luaulex.LBracketToken {
		open := p.cur
		p.advance()
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(luaulex.RBracketToken)
		if err != nil {
			return nil, err
		}
		eq, err := p.expect(luaulex.AssignToken)
		if err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &TableFieldIndexed{Bracks: Bracks{Open: open, Close: close}, Key: key, Eq: eq, Value: val}, nil
	}
	if p.cur.Kind == luaulex.IdentifierToken && p.peek().Kind == luaulex.AssignToken {
		name := p.cur
		p.advance()
		eq := p.cur
		p.advance()
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &TableFieldNamed{Name: name, Eq: eq, Value: val}, nil
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &TableFieldPositional{Value: val}, nil
}

// ---- Function bodies & generics ----

func (p *parser) tryParseGenerics(allowDefaults bool) (*Generics, error) {
	if p.cur.Kind != luaulex.LessToken {
		return nil, nil
	}
	open := p.cur
	p.advance()
	var params Punctuated[GenericParam]
	seenDefault := false
	seenPack := false
	for {
		name, err := p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, err
		}
		gp := GenericParam{Name: name}
		if p.cur.Kind == luaulex.VarargToken {
			ellip := p.cur
			p.advance()
			gp.Pack = &ellip
			seenPack = true
		} else if seenPack {
			return nil, p.errorf(name, "generic type parameters must precede generic pack parameters")
		}
		if p.cur.Kind == luaulex.AssignToken {
			if !allowDefaults {
				return nil, p.errorf(p.cur, "default type parameters are not allowed here")
			}
			eqTok := p.cur
			p.advance()
			gp.Eq = &eqTok
			if gp.Pack != nil {
				tp, err := p.parseGenericPackDefault()
				if err != nil {
					return nil, err
				}
				gp.Default = tp
			} else {
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				gp.Default = t
			}
			seenDefault = true
		} else if seenDefault {
			return nil, p.errorf(name, "generic parameter without a default follows one with a default")
		}
		params = append(params, PunctuatedElem[GenericParam]{Node: gp})
		if p.cur.Kind == luaulex.CommaToken {
			sep := p.cur
			p.advance()
			params[len(params)-1].Sep = &sep
			continue
		}
		break
	}
	close, err := p.expect(luaulex.GreaterToken)
	if err != nil {
		return nil, err
	}
	return &Generics{Angles: Angles{Open: open, Close: close}, Params: params}, nil
}

func (p *parser) parseGenericPackDefault() (TypePack, error) {
	if p.cur.Kind == luaulex.LParenToken {
		return p.parseParenTypePack()
	}
	if p.cur.Kind == luaulex.IdentifierToken && p.peek().Kind == luaulex.VarargToken {
		name := p.cur
		p.advance()
		ellip := p.cur
		p.advance()
		return &TypePackGeneric{Name: name, Ellip: ellip}, nil
	}
	if p.cur.Kind == luaulex.VarargToken {
		ellip := p.cur
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &TypePackVariadic{Ellip: ellip, Type: t}, nil
	}
	return nil, p.errorf(p.cur, "expected type pack")
}

func (p *parser) parseFunctionBody() (*FunctionBody, error) {
	generics, err := p.tryParseGenerics(false)
	if err != nil {
		return nil, err
	}
	open, err := p.expect(luaulex.LParenToken)
	if err != nil {
		return nil, err
	}
	var params Punctuated[Param]
	var vararg *ParamVararg
	for p.cur.Kind != luaulex.RParenToken {
		if p.cur.Kind == luaulex.VarargToken {
			ellip := p.cur
			p.advance()
			var colon *Token
			var typ Type
			if p.cur.Kind == luaulex.ColonToken {
				tok := p.cur
				p.advance()
				colon = &tok
				typ, err = p.parseType()
				if err != nil {
					return nil, err
				}
			}
			vararg = &ParamVararg{Ellip: ellip, Colon: colon, Type: typ}
			break
		}
		name, err := p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, err
		}
		var colon *Token
		var typ Type
		if p.cur.Kind == luaulex.ColonToken {
			tok := p.cur
			p.advance()
			colon = &tok
			typ, err = p.parseType()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, PunctuatedElem[Param]{Node: Param{Name: name, Colon: colon, Type: typ}})
		if p.cur.Kind == luaulex.CommaToken {
			sep := p.cur
			p.advance()
			params[len(params)-1].Sep = &sep
			continue
		}
		break
	}
	close, err := p.expect(luaulex.RParenToken)
	if err != nil {
		return nil, err
	}
	var retColon *Token
	var ret TypePack
	if p.cur.Kind == luaulex.ColonToken {
		tok := p.cur
		p.advance()
		retColon = &tok
		ret, err = p.parseReturnTypePack()
		if err != nil {
			return nil, err
		}
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(luaulex.EndToken)
	if err != nil {
		return nil, err
	}
	return &FunctionBody{
		Generics: generics, Parens: Parens{Open: open, Close: close}, Params: params, Vararg: vararg,
		Colon: retColon, Ret: ret, Block: block, End: end,
	}, nil
}

// ---- Types ----

func (p *parser) parseType() (Type, error) {
	var lead *Token
	if p.cur.Kind == luaulex.PipeToken {
		tok := p.cur
		p.advance()
		lead = &tok
	}
	first, err := p.parseIntersectionType()
	if err != nil {
		return nil, err
	}
	if lead == nil && p.cur.Kind != luaulex.PipeToken {
		return first, nil
	}
	members := []UnionIntersectionMember{{Op: lead, Type: first}}
	for p.cur.Kind == luaulex.PipeToken {
		op := p.cur
		p.advance()
		t, err := p.parseIntersectionType()
		if err != nil {
			return nil, err
		}
		members = append(members, UnionIntersectionMember{Op: &op, Type: t})
	}
	return &TypeUnion{Types: members}, nil
}

func (p *parser) parseIntersectionType() (Type, error) {
	var lead *Token
	if p.cur.Kind == luaulex.AmpToken {
		tok := p.cur
		p.advance()
		lead = &tok
	}
	first, err := p.parseTypePostfix()
	if err != nil {
		return nil, err
	}
	if lead == nil && p.cur.Kind != luaulex.AmpToken {
		return first, nil
	}
	members := []UnionIntersectionMember{{Op: lead, Type: first}}
	for p.cur.Kind == luaulex.AmpToken {
		op := p.cur
		p.advance()
		t, err := p.parseTypePostfix()
		if err != nil {
			return nil, err
		}
		members = append(members, UnionIntersectionMember{Op: &op, Type: t})
	}
	return &TypeIntersection{Types: members}, nil
}

func (p *parser) parseTypePostfix() (Type, error) {
	t, err := p.parseTypePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == luaulex.QuestionToken {
		q := p.cur
		p.advance()
		t = &TypeOptional{Type: t, Question: q}
	}
	return t, nil
}

func (p *parser) parseTypePrimary() (Type, error) {
	switch p.cur.Kind {
	case luaulex.NilToken:
		tok := p.cur
		p.advance()
		return &TypeNil{Token: tok}, nil
	case luaulex.TrueToken, luaulex.FalseToken:
		tok := p.cur
		p.advance()
		return &TypeBoolean{Token: tok}, nil
	case luaulex.StringToken:
		tok := p.cur
		p.advance()
		return &TypeString{Token: tok}, nil
	case luaulex.TypeofToken:
		typeofTok := p.cur
		p.advance()
		open, err := p.expect(luaulex.LParenToken)
		if err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(luaulex.RParenToken)
		if err != nil {
			return nil, err
		}
		return &TypeTypeof{Typeof: typeofTok, Parens: Parens{Open: open, Close: close}, Expr: e}, nil
	case luaulex.LBraceToken:
		return p.parseTypeTableOrArray()
	case luaulex.LParenToken:
		return p.parseParenTypeOrFunction(nil)
	case luaulex.LessToken:
		generics, err := p.tryParseGenerics(false)
		if err != nil {
			return nil, err
		}
		return p.parseParenTypeOrFunction(generics)
	default:
		return p.parseTypeReference()
	}
}

func (p *parser) parseTypeReference() (Type, error) {
	first, err := p.expect(luaulex.IdentifierToken)
	if err != nil {
		return nil, err
	}
	var prefix, dot *Token
	name := first
	if p.cur.Kind == luaulex.DotToken {
		d := p.cur
		p.advance()
		prefix, dot = &first, &d
		name, err = p.expect(luaulex.IdentifierToken)
		if err != nil {
			return nil, err
		}
	}
	var generics *TypeArgs
	if p.cur.Kind == luaulex.LessToken {
		open := p.cur
		p.advance()
		args, err := parsePunctuated(p, luaulex.CommaToken, p.parseType)
		if err != nil {
			return nil, err
		}
		close, err := p.expect(luaulex.GreaterToken)
		if err != nil {
			return nil, err
		}
		generics = &TypeArgs{Angles: Angles{Open: open, Close: close}, Args: args}
	}
	return &TypeReference{Prefix: prefix, Dot: dot, Name: name, Generics: generics}, nil
}

func (p *parser) parseParenTypeOrFunction(generics *Generics) (Type, error) {
	open, err := p.expect(luaulex.LParenToken)
	if err != nil {
		return nil, err
	}
	var params Punctuated[FunctionTypeParam]
	var vararg *FunctionTypeVararg
	for p.cur.Kind != luaulex.RParenToken {
		if p.cur.Kind == luaulex.VarargToken {
			ellip := p.cur
			p.advance()
			var colon *Token
			var typ Type
			if p.cur.Kind == luaulex.ColonToken {
				tok := p.cur
				p.advance()
				colon = &tok
				typ, err = p.parseType()
				if err != nil {
					return nil, err
				}
			} else if p.cur.Kind != luaulex.RParenToken {
				typ, err = p.parseType()
				if err != nil {
					return nil, err
				}
			}
			vararg = &FunctionTypeVararg{Ellip: ellip, Colon: colon, Type: typ}
			break
		}
		var name *Token
		var colon *Token
		if p.cur.Kind == luaulex.IdentifierToken && p.peek().Kind == luaulex.ColonToken {
			n := p.cur
			p.advance()
			name = &n
			c := p.cur
			p.advance()
			colon = &c
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, PunctuatedElem[FunctionTypeParam]{Node: FunctionTypeParam{Name: name, Colon: colon, Type: typ}})
		if p.cur.Kind == luaulex.CommaToken {
			sep := p.cur
			p.advance()
			params[len(params)-1].Sep = &sep
			continue
		}
		break
	}
	close, err := p.expect(luaulex.RParenToken)
	if err != nil {
		return nil, err
	}
	if generics != nil || p.cur.Kind == luaulex.ArrowToken {
		arrow, err := p.expect(luaulex.ArrowToken)
		if err != nil {
			return nil, err
		}
		ret, err := p.parseReturnTypePack()
		if err != nil {
			return nil, err
		}
		return &TypeFunction{Generics: generics, Parens: Parens{Open: open, Close: close}, Params: params, Vararg: vararg, Arrow: arrow, Ret: ret}, nil
	}
	if len(params) == 1 && params[0].Node.Name == nil && vararg == nil {
		return &TypeParen{Parens: Parens{Open: open, Close: close}, Type: params[0].Node.Type}, nil
	}
	return nil, p.errorf(p.cur, "expected '->' for function type")
}

func (p *parser) parseOneTableTypeField() (TableTypeField, error) {
	var access *Token
	if p.cur.Kind == luaulex.IdentifierToken && p.cur.Text == "read" &&
		(p.peek().Kind == luaulex.IdentifierToken || p.peek().Kind == luaulex.LBracketToken) {
		a := p.cur
		p.advance()
		access = &a
	}
	if p.cur.Kind == luaulex.LBracketToken {
		open := p.cur
		p.advance()
		if p.cur.Kind == luaulex.StringToken {
			key := p.cur
			p.advance()
			close, err := p.expect(luaulex.RBracketToken)
			if err != nil {
				return nil, err
			}
			colon, err := p.expect(luaulex.ColonToken)
			if err != nil {
				return nil, err
			}
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return &TableTypeFieldString{Access: access, Bracks: Bracks{Open: open, Close: close}, Key: key, Colon: colon, Type: typ}, nil
		}
		keyType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(luaulex.RBracketToken)
		if err != nil {
			return nil, err
		}
		colon, err := p.expect(luaulex.ColonToken)
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &TableTypeFieldIndexer{Access: access, Bracks: Bracks{Open: open, Close: close}, Key: keyType, Colon: colon, Type: typ}, nil
	}
	name, err := p.expect(luaulex.IdentifierToken)
	if err != nil {
		return nil, err
	}
	colon, err := p.expect(luaulex.ColonToken)
	if err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &TableTypeFieldName{Access: access, Name: name, Colon: colon, Type: typ}, nil
}

func (p *parser) parseTypeTableOrArray() (Type, error) {
	open, err := p.expect(luaulex.LBraceToken)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == luaulex.RBraceToken {
		close := p.cur
		p.advance()
		return &TypeTable{Braces: Braces{Open: open, Close: close}}, nil
	}
	looksLikeField := p.cur.Kind == luaulex.LBracketToken ||
		(p.cur.Kind == luaulex.IdentifierToken && p.peek().Kind == luaulex.ColonToken) ||
		(p.cur.Kind == luaulex.IdentifierToken && p.cur.Text == "read" &&
			(p.peek().Kind == luaulex.IdentifierToken || p.peek().Kind == luaulex.LBracketToken))
	if !looksLikeField {
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(luaulex.RBraceToken)
		if err != nil {
			return nil, err
		}
		return &TypeArray{Braces: Braces{Open: open, Close: close}, Elem: elem}, nil
	}
	var fields Punctuated[TableTypeField]
	for {
		f, err := p.parseOneTableTypeField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, PunctuatedElem[TableTypeField]{Node: f})
		if p.cur.Kind == luaulex.CommaToken || p.cur.Kind == luaulex.SemiToken {
			sep := p.cur
			p.advance()
			fields[len(fields)-1].Sep = &sep
			if p.cur.Kind == luaulex.RBraceToken {
				break
			}
			continue
		}
		break
	}
	close, err := p.expect(luaulex.RBraceToken)
	if err != nil {
		return nil, err
	}
	return &TypeTable{Braces: Braces{Open: open, Close: close}, Fields: fields}, nil
}

func isNameOnlyReference(t Type) (Token, bool) {
	ref, ok := t.(*TypeReference)
	if !ok || ref.Prefix != nil || ref.Generics != nil {
		return Token{}, false
	}
	return ref.Name, true
}

func (p *parser) parseReturnTypePack() (TypePack, error) {
	if p.cur.Kind == luaulex.VarargToken {
		ellip := p.cur
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &TypePackVariadic{Ellip: ellip, Type: t}, nil
	}
	if p.cur.Kind == luaulex.LParenToken {
		return p.parseParenTypePack()
	}
	if p.cur.Kind == luaulex.IdentifierToken && p.peek().Kind == luaulex.VarargToken {
		name := p.cur
		p.advance()
		ellip := p.cur
		p.advance()
		return &TypePackGeneric{Name: name, Ellip: ellip}, nil
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &TypePackListed{Types: Punctuated[Type]{{Node: t}}}, nil
}

func (p *parser) parseParenTypePack() (TypePack, error) {
	open, err := p.expect(luaulex.LParenToken)
	if err != nil {
		return nil, err
	}
	var types Punctuated[Type]
	var tail TypePack
	for p.cur.Kind != luaulex.RParenToken {
		if p.cur.Kind == luaulex.VarargToken {
			ellip := p.cur
			p.advance()
			vt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			tail = &TypePackVariadic{Ellip: ellip, Type: vt}
			break
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if name, ok := isNameOnlyReference(t); ok && p.cur.Kind == luaulex.VarargToken {
			ellip := p.cur
			p.advance()
			tail = &TypePackGeneric{Name: name, Ellip: ellip}
			break
		}
		types = append(types, PunctuatedElem[Type]{Node: t})
		if p.cur.Kind == luaulex.CommaToken {
			sep := p.cur
			p.advance()
			types[len(types)-1].Sep = &sep
			continue
		}
		break
	}
	close, err := p.expect(luaulex.RParenToken)
	if err != nil {
		return nil, err
	}
	parens := Parens{Open: open, Close: close}
	return &TypePackListed{Parens: &parens, Types: types, Tail: tail}, nil
}
