// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luaulex

import "fmt"

// Span is a half-open byte-offset range [Start, End) into a source buffer.
// The zero value is an empty span at offset zero.
type Span struct {
	Start, End int

	// z is reserved for a future line/column packing scheme.
	// It carries no information today.
	z uint32
}

// NewSpan returns the span [start, end).
// NewSpan panics if end < start.
func NewSpan(start, end int) Span {
	if end < start {
		panic("luaulex: span end before start")
	}
	return Span{Start: start, End: end}
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool { return s.Start == s.End }

// Merge returns the smallest span that covers both a and b.
// It assumes a precedes or equals b in source order.
func Merge(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Position is a human-readable line/column location, used for diagnostics.
// Lines and columns are both 1-based; columns count bytes, not runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether pos has a positive line number and column.
func (pos Position) IsValid() bool {
	return pos.Line > 0 && pos.Column > 0
}

func (pos Position) String() string {
	if !pos.IsValid() {
		return "<invalid position>"
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// TriviaKind classifies a run of non-syntactic source bytes.
type TriviaKind int

const (
	// WhitespaceTrivia is a run of spaces, tabs, newlines, or other blanks.
	WhitespaceTrivia TriviaKind = iota
	// LineCommentTrivia is a "-- ..." comment running to end of line.
	LineCommentTrivia
	// BlockCommentTrivia is a "--[=*[ ... ]=*]" long-bracket comment.
	BlockCommentTrivia
	// ShebangTrivia is a "#!..." line, valid only at offset 0.
	ShebangTrivia
)

func (k TriviaKind) String() string {
	switch k {
	case WhitespaceTrivia:
		return "Whitespace"
	case LineCommentTrivia:
		return "LineComment"
	case BlockCommentTrivia:
		return "BlockComment"
	case ShebangTrivia:
		return "Shebang"
	default:
		return fmt.Sprintf("TriviaKind(%d)", int(k))
	}
}

// Trivia is a lexically insignificant byte range attached to the token that
// follows it: whitespace, a comment, or the initial shebang line.
type Trivia struct {
	Kind TriviaKind
	Text string
	Span Span
}

// Token is a single lexical element of Luau source, with any trivia that
// preceded it attached in source order.
type Token struct {
	Kind TokenKind
	// Text holds the source text for Identifier, Numeral, String, and
	// InterpString* tokens, exactly as written (quotes, long-bracket levels,
	// and escape sequences included, undecoded) so that printing a token
	// stream reproduces the original bytes. For fixed-text tokens (keywords,
	// punctuation), Text is empty and FixedText gives the canonical text.
	Text string
	Span Span
	Pos  Position
	// Trivia is the ordered list of whitespace/comments/shebang that preceded
	// this token. Trivia preceding EOF is attached to the synthetic EOF token.
	Trivia []Trivia
}

// FixedText returns the canonical source text for tokens whose text does not
// vary (keywords and punctuation), and ok == false for variable-text tokens.
func (tok Token) FixedText() (text string, ok bool) {
	text, ok = fixedText[tok.Kind]
	return
}

// String formats the token the way it would appear in Luau source,
// ignoring trivia. It returns "<eof>" for EOFToken.
func (tok Token) String() string {
	switch tok.Kind {
	case EOFToken:
		return "<eof>"
	case IdentifierToken, NumeralToken, StringToken,
		InterpStringBeginToken, InterpStringMidToken, InterpStringEndToken, InterpStringPartToken:
		return tok.Text
	default:
		if text, ok := fixedText[tok.Kind]; ok {
			return text
		}
		return tok.Kind.String()
	}
}

// TokenKind enumerates every lexical element of the Luau grammar.
// The zero value is InvalidToken.
type TokenKind int

// TokenKind values.
const (
	// InvalidToken indicates a lexical error; see [LexError].
	InvalidToken TokenKind = iota
	// EOFToken is the single synthetic token terminating every token stream.
	EOFToken
	// IdentifierToken indicates a name. Token.Text holds the identifier.
	IdentifierToken
	// NumeralToken indicates a numeric constant as written in the source.
	NumeralToken
	// StringToken indicates a short or long literal string.
	// Token.Text holds the literal exactly as written, including its
	// delimiters; see [DecodeString] to recover the string's value.
	StringToken
	// InterpStringBeginToken introduces an interpolated string with at least
	// one embedded expression: the text from the opening backtick through the
	// first '{', both delimiters included.
	InterpStringBeginToken
	// InterpStringMidToken is a segment of an interpolated string between two
	// embedded expressions: text from a '}' through the next '{', both
	// delimiters included.
	InterpStringMidToken
	// InterpStringEndToken is the final segment of an interpolated string:
	// text from a '}' through the closing backtick, both included.
	InterpStringEndToken
	// InterpStringPartToken is an interpolated string with no embedded
	// expressions at all: the whole literal, backticks included.
	// See [DecodeInterpSegment] to recover any segment's literal text.
	InterpStringPartToken

	// Keywords

	AndToken
	BreakToken
	ContinueToken
	DoToken
	ElseToken
	ElseifToken
	EndToken
	ExportToken
	FalseToken
	ForToken
	FunctionToken
	IfToken
	InToken
	LocalToken
	NilToken
	NotToken
	OrToken
	RepeatToken
	ReturnToken
	ThenToken
	TrueToken
	TypeToken
	TypeofToken
	UntilToken
	WhileToken

	// Punctuation

	LParenToken         // (
	RParenToken         // )
	LBracketToken       // [
	RBracketToken       // ]
	LBraceToken         // {
	RBraceToken         // }
	CommaToken          // ,
	SemiToken           // ;
	ColonToken          // :
	DoubleColonToken    // ::
	DotToken            // .
	ConcatToken         // ..
	VarargToken         // ...
	QuestionToken       // ?
	PipeToken           // |
	AmpToken            // &
	LessToken           // <
	LessEqualToken      // <=
	GreaterToken        // >
	GreaterEqualToken   // >=
	AssignToken         // =
	EqualToken          // ==
	NotEqualToken       // ~=
	AddToken            // +
	AddAssignToken      // +=
	SubToken            // -
	SubAssignToken      // -=
	MulToken            // *
	MulAssignToken      // *=
	DivToken            // /
	DivAssignToken      // /=
	FloorDivToken       // //
	FloorDivAssignToken // //=
	ModToken            // %
	ModAssignToken      // %=
	PowToken            // ^
	PowAssignToken      // ^=
	ConcatAssignToken   // ..=
	LenToken            // #
	AtToken             // @
	ArrowToken          // ->
)

var keywords = map[string]TokenKind{
	"and":      AndToken,
	"break":    BreakToken,
	"continue": ContinueToken,
	"do":       DoToken,
	"else":     ElseToken,
	"elseif":   ElseifToken,
	"end":      EndToken,
	"export":   ExportToken,
	"false":    FalseToken,
	"for":      ForToken,
	"function": FunctionToken,
	"if":       IfToken,
	"in":       InToken,
	"local":    LocalToken,
	"nil":      NilToken,
	"not":      NotToken,
	"or":       OrToken,
	"repeat":   RepeatToken,
	"return":   ReturnToken,
	"then":     ThenToken,
	"true":     TrueToken,
	"type":     TypeToken,
	"typeof":   TypeofToken,
	"until":    UntilToken,
	"while":    WhileToken,
}

var fixedText = map[TokenKind]string{
	AndToken: "and", BreakToken: "break", ContinueToken: "continue",
	DoToken: "do", ElseToken: "else", ElseifToken: "elseif", EndToken: "end",
	ExportToken: "export", FalseToken: "false", ForToken: "for",
	FunctionToken: "function", IfToken: "if", InToken: "in", LocalToken: "local",
	NilToken: "nil", NotToken: "not", OrToken: "or", RepeatToken: "repeat",
	ReturnToken: "return", ThenToken: "then", TrueToken: "true", TypeToken: "type",
	TypeofToken: "typeof", UntilToken: "until", WhileToken: "while",

	LParenToken: "(", RParenToken: ")", LBracketToken: "[", RBracketToken: "]",
	LBraceToken: "{", RBraceToken: "}", CommaToken: ",", SemiToken: ";",
	ColonToken: ":", DoubleColonToken: "::", DotToken: ".", ConcatToken: "..",
	VarargToken: "...", QuestionToken: "?", PipeToken: "|", AmpToken: "&",
	LessToken: "<", LessEqualToken: "<=", GreaterToken: ">", GreaterEqualToken: ">=",
	AssignToken: "=", EqualToken: "==", NotEqualToken: "~=",
	AddToken: "+", AddAssignToken: "+=", SubToken: "-", SubAssignToken: "-=",
	MulToken: "*", MulAssignToken: "*=", DivToken: "/", DivAssignToken: "/=",
	FloorDivToken: "//", FloorDivAssignToken: "//=", ModToken: "%", ModAssignToken: "%=",
	PowToken: "^", PowAssignToken: "^=", ConcatAssignToken: "..=",
	LenToken: "#", AtToken: "@", ArrowToken: "->",
}

// String returns the canonical source text for keywords and punctuation,
// or a descriptive name for variable-text and structural kinds.
func (k TokenKind) String() string {
	if text, ok := fixedText[k]; ok {
		return text
	}
	switch k {
	case InvalidToken:
		return "InvalidToken"
	case EOFToken:
		return "<eof>"
	case IdentifierToken:
		return "IdentifierToken"
	case NumeralToken:
		return "NumeralToken"
	case StringToken:
		return "StringToken"
	case InterpStringBeginToken:
		return "InterpStringBeginToken"
	case InterpStringMidToken:
		return "InterpStringMidToken"
	case InterpStringEndToken:
		return "InterpStringEndToken"
	case InterpStringPartToken:
		return "InterpStringPartToken"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}
