// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

// Package luau implements a lossless parser for the Luau source language.
//
// Parse builds a [Cst] that preserves every byte of the input, including
// whitespace, comments, and punctuation, so that [Print] can reproduce the
// original source exactly. [Visit] walks any CST in source order through a
// record of optional callbacks; [SpanOf] derives the byte-offset span of any
// node from its constituent tokens. [Lower] produces a normalized, lossy
// [*AstStatBlock] view of the same tree for consumers that don't need
// trivia or punctuation.
package luau

import "go.luau.dev/cst/internal/luaulex"

// Token is a single lexical element, with any trivia that preceded it
// attached in source order. See [luaulex.Token].
type Token = luaulex.Token

// Span is a half-open byte-offset range into the source. See [luaulex.Span].
type Span = luaulex.Span

// Position is a human-readable line/column location. See [luaulex.Position].
type Position = luaulex.Position
