// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luau

// Type is a closed set of type-annotation node variants.
type Type interface {
	typeNode()
}

// TypeNil is the "nil" type.
type TypeNil struct{ Token Token }

// TypeBoolean is a boolean literal type ("true" or "false").
type TypeBoolean struct{ Token Token }

// TypeString is a string-literal singleton type.
type TypeString struct{ Token Token }

// TypeReference is a named type, optionally prefixed by a module name
// ("prefix.name") and optionally instantiated with generic arguments
// ("name<T, U>").
type TypeReference struct {
	Prefix *Token // name before the "."
	Dot    *Token
	Name   Token
	Generics *TypeArgs // "<...>" instantiation, if present
}

// TypeArgs is the "<...>" type-argument list of a [TypeReference].
type TypeArgs struct {
	Angles Angles
	Args   Punctuated[Type]
}

// TypeTypeof is "typeof(expr)", valid only in type position.
type TypeTypeof struct {
	Typeof Token
	Parens Parens
	Expr   Expr
}

// TypeArray is "{T}", an array type.
type TypeArray struct {
	Braces Braces
	Elem   Type
}

// TypeTable is "{ field, field, ... }", a table type.
type TypeTable struct {
	Braces Braces
	Fields Punctuated[TableTypeField]
}

// TableTypeField is a closed set of table-type field variants.
type TableTypeField interface {
	tableTypeFieldNode()
}

// TableTypeFieldName is "[access] name: Type" (or "[access] name: Type" with
// no access modifier).
type TableTypeFieldName struct {
	Access *Token // "read" access modifier token, if present
	Name   Token
	Colon  Token
	Type   Type
}

// TableTypeFieldString is "[access] [\"key\"]: Type".
type TableTypeFieldString struct {
	Access *Token
	Bracks Bracks
	Key    Token // string token
	Colon  Token
	Type   Type
}

// TableTypeFieldIndexer is "[access] [KeyType]: Type".
type TableTypeFieldIndexer struct {
	Access *Token
	Bracks Bracks
	Key    Type
	Colon  Token
	Type   Type
}

func (*TableTypeFieldName) tableTypeFieldNode()     {}
func (*TableTypeFieldString) tableTypeFieldNode()   {}
func (*TableTypeFieldIndexer) tableTypeFieldNode()  {}

// FunctionTypeParam is one parameter of a [TypeFunction]'s parameter list: an
// optional name followed by a colon and its type.
type FunctionTypeParam struct {
	Name  *Token
	Colon *Token
	Type  Type
}

// TypeFunction is "<generics>(params, ...varargtype) -> ret".
type TypeFunction struct {
	Generics *Generics
	Parens   Parens
	Params   Punctuated[FunctionTypeParam]
	Vararg   *FunctionTypeVararg
	Arrow    Token
	Ret      TypePack
}

// FunctionTypeVararg is the trailing "...T" varargs entry of a function
// type's parameter list. Colon is set only for the "...: T" spelling, and
// Type is nil for a bare "...". Any comma separating it from the preceding
// parameter is stored as that parameter's trailing separator, not here.
type FunctionTypeVararg struct {
	Ellip Token
	Colon *Token
	Type  Type
}

// TypeParen is a parenthesized type, "(T)".
type TypeParen struct {
	Parens Parens
	Type   Type
}

// TypeOptional is "T?".
type TypeOptional struct {
	Type Type
	Question Token
}

// TypeUnion is a flat "A | B | C" list. The first member's Op is non-nil
// only when the source had a leading "|" ("| A | B").
type TypeUnion struct {
	Types []UnionIntersectionMember
}

// TypeIntersection is a flat "A & B & C" list. The first member's Op is
// non-nil only when the source had a leading "&" ("& A & B").
type TypeIntersection struct {
	Types []UnionIntersectionMember
}

// UnionIntersectionMember is one element of a [TypeUnion] or
// [TypeIntersection]: a type and the operator token before it, if any
// (nil only for the first element when there was no leading operator).
type UnionIntersectionMember struct {
	Op   *Token
	Type Type
}

func (*TypeNil) typeNode()          {}
func (*TypeBoolean) typeNode()      {}
func (*TypeString) typeNode()       {}
func (*TypeReference) typeNode()    {}
func (*TypeTypeof) typeNode()       {}
func (*TypeArray) typeNode()        {}
func (*TypeTable) typeNode()        {}
func (*TypeFunction) typeNode()     {}
func (*TypeParen) typeNode()        {}
func (*TypeOptional) typeNode()     {}
func (*TypeUnion) typeNode()        {}
func (*TypeIntersection) typeNode() {}

// TypePack is a closed set of type-pack variants, used in function
// parameter/return position.
type TypePack interface {
	typePackNode()
}

// TypePackVariadic is "...T".
type TypePackVariadic struct {
	Ellip Token
	Type  Type
}

// TypePackGeneric is a generic pack reference, "T...".
type TypePackGeneric struct {
	Name  Token
	Ellip Token
}

// TypePackListed is "(T, U, ...V)" or a bare single type used where a pack
// is expected; Parens is nil when there is exactly one type and no parens
// were present in the source (a bare return type).
type TypePackListed struct {
	Parens *Parens
	Types  Punctuated[Type]
	Tail   TypePack // trailing "...T"/"T..." element, if any
}

func (*TypePackVariadic) typePackNode() {}
func (*TypePackGeneric) typePackNode()  {}
func (*TypePackListed) typePackNode()   {}
