// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

// PunctuatedElem is one element of a [Punctuated] list: a node and the
// separator token that followed it, if any. Only the final element of a
// list may have a nil Sep.
type PunctuatedElem[T any] struct {
	Node T
	Sep  *Token
}

// Punctuated is an ordered sequence of nodes, each optionally followed by a
// separator token (usually "," or ";"). It preserves trailing separators
// losslessly: a list with a trailing comma has a non-nil Sep on its last
// element.
type Punctuated[T any] []PunctuatedElem[T]

// Len returns the number of nodes in the list.
func (p Punctuated[T]) Len() int { return len(p) }

// Nodes returns the nodes of the list, discarding separators.
func (p Punctuated[T]) Nodes() []T {
	nodes := make([]T, len(p))
	for i, elem := range p {
		nodes[i] = elem.Node
	}
	return nodes
}

// Parens is a pair of delimiting "(" and ")" tokens.
type Parens struct{ Open, Close Token }

// Bracks is a pair of delimiting "[" and "]" tokens.
type Bracks struct{ Open, Close Token }

// Braces is a pair of delimiting "{" and "}" tokens.
type Braces struct{ Open, Close Token }

// Angles is a pair of delimiting "<" and ">" tokens.
type Angles struct{ Open, Close Token }

// Cst is the root of a parsed source buffer: a block of statements followed
// by the single synthetic EOF token that owns any trailing trivia.
type Cst struct {
	Block *Block
	EOF   Token
}

// Block is a sequence of statements optionally followed by a last statement
// (return, break, or continue) and any stray trailing semicolon tokens
// consumed alongside statements.
type Block struct {
	Stats []Stat
	// StatSemis[i] is the semicolon token following Stats[i], if the source
	// had one; it is not required between statements.
	StatSemis []*Token
	LastStat  LastStat // nil if the block has no last statement
	// LastStatSemi is the semicolon following LastStat, if any.
	LastStatSemi *Token
}

// GenericParam is one name in a generic declaration's parameter list,
// optionally followed by a default type, type pack, or no default at all.
type GenericParam struct {
	Name Token
	// Pack is the "..." token when this parameter is a generic pack
	// parameter rather than a generic type parameter.
	Pack *Token
	Eq   *Token // "=" token, if this parameter has a default
	// Default, when Eq != nil, is either a Type (for a name parameter) or a
	// TypePack (for a pack parameter).
	Default any
}

// Generics is the "<...>" clause attached to a function body or a type
// declaration.
type Generics struct {
	Angles Angles
	Params Punctuated[GenericParam]
}

// Attribute is a single "@name" function attribute, such as "@native".
type Attribute struct {
	At   Token
	Name Token
}
