// Copyright 2026 The Luau CST Authors
// SPDX-License-Identifier: MIT

package luaulex

import (
	"errors"
	"strconv"
	"strings"
)

// ParseInt converts the given string to a 64-bit signed integer according to
// Luau's numeral grammar: decimal, "0x"/"0X" hexadecimal, and "0b"/"0B"
// binary, any of which may use "_" as a digit separator. Surrounding
// whitespace is permitted, and any error returned will be of type
// [*strconv.NumError].
func ParseInt(s string) (int64, error) {
	orig := s
	s = trimSpace(s)
	neg, withoutSign := cutSign(s)
	withoutSign = strings.ReplaceAll(withoutSign, "_", "")

	if h, isHex := cutPrefix(withoutSign, "0x", "0X"); isHex {
		// A value outside the int64 range saturates at the nearest limit
		// and is reported with [strconv.ErrRange].
		x, err := strconv.ParseUint(h, 16, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &strconv.NumError{Func: "ParseInt", Num: orig, Err: strconv.ErrSyntax}
		}
		limit := uint64(1<<63 - 1)
		if neg {
			limit = 1 << 63
		}
		if err != nil || x > limit {
			x, err = limit, &strconv.NumError{Func: "ParseInt", Num: orig, Err: strconv.ErrRange}
		}
		if neg {
			return int64(-x), err
		}
		return int64(x), err
	}

	if b, isBin := cutPrefix(withoutSign, "0b", "0B"); isBin {
		const maxBinDigits = 64
		if len(b) > maxBinDigits {
			i := len(b) - maxBinDigits
			b = b[i:]
		}
		x, err := strconv.ParseUint(b, 2, 64)
		if err != nil {
			err = &strconv.NumError{Func: "ParseInt", Num: orig, Err: strconv.ErrSyntax}
		}
		if neg {
			return int64(-x), err
		}
		return int64(x), err
	}

	i, err := strconv.ParseInt(withoutSign, 10, 64)
	if neg {
		i = -i
	}
	if err != nil {
		err = &strconv.NumError{Func: "ParseInt", Num: orig, Err: strconv.ErrSyntax}
	}
	return i, err
}

// ParseNumber converts the given string to a 64-bit floating-point number
// according to Luau's numeral grammar. Surrounding whitespace is permitted,
// underscores are accepted as digit separators, and any error returned will
// be of type [*strconv.NumError].
func ParseNumber(s string) (float64, error) {
	orig := s
	s = trimSpace(s)
	s = strings.ReplaceAll(s, "_", "")
	_, withoutSign := cutSign(s)
	if strings.EqualFold(withoutSign, "Inf") ||
		strings.EqualFold(withoutSign, "Infinity") ||
		strings.EqualFold(withoutSign, "NaN") {
		return 0, &strconv.NumError{Func: "ParseNumber", Num: orig, Err: strconv.ErrSyntax}
	}

	if b, isBin := cutPrefix(withoutSign, "0b", "0B"); isBin {
		i, err := strconv.ParseUint(b, 2, 64)
		if err != nil {
			return 0, &strconv.NumError{Func: "ParseNumber", Num: orig, Err: strconv.ErrSyntax}
		}
		return float64(i), nil
	}

	toParse := s
	if (strings.HasPrefix(withoutSign, "0x") || strings.HasPrefix(withoutSign, "0X")) &&
		!strings.ContainsAny(s, "pP") {
		// Go hex float literals must have an exponent.
		toParse = s + "p0"
	}
	f, err := strconv.ParseFloat(toParse, 64)
	if errors.Is(err, strconv.ErrRange) {
		err = nil
	} else if err != nil {
		err.(*strconv.NumError).Num = orig
	}
	return f, err
}

func cutPrefix(s string, prefixes ...string) (rest string, matched bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return s[len(p):], true
		}
	}
	return s, false
}

func cutSign(s string) (neg bool, rest string) {
	switch {
	case len(s) == 0:
		return false, s
	case s[0] == '+':
		return false, s[1:]
	case s[0] == '-':
		return true, s[1:]
	default:
		return false, s
	}
}

func trimSpace(s string) string {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
