package interp

import (
	"strconv"
	"strings"
)

// ParseNumber attempts to read text as a number literal: plain decimal,
// `0x`-prefixed hex, `0b`-prefixed binary, or an `N/D` rational. It returns
// the Continuation that pushes the corresponding value(s) and ok=true on
// success; ok=false means text is not a number and the caller should fall
// through to an undefined-word error.
//
// Values that fit in an int64 take the IntLitCont fast path; anything wider
// goes through the Context's NumberFactory (backed by math/big in package
// stackvm) and comes back wrapped in a LitCont. A rational literal pushes
// its numerator and denominator as two separate values via a MultiLitCont,
// so word-level code sees the same two plain integers it would from typing
// them separately — there is no single folded "rational" stack value.
func ParseNumber(ctx *Context, text string) (Continuation, bool, error) {
	if text == "" {
		return nil, false, nil
	}

	if num, den, isRat := splitRational(text); isRat {
		numVal, denVal, err := ctx.Numbers.Rational(num, den)
		if err != nil {
			return nil, false, err
		}
		return &MultiLitCont{Vals: []Value{numVal, denVal}}, true, nil
	}

	base, digits, neg := numberBase(text)
	if digits == "" {
		return nil, false, nil
	}

	if n, err := strconv.ParseInt(digits, base, 64); err == nil {
		if neg {
			n = -n
		}
		return &IntLitCont{V: n}, true, nil
	}

	s := digits
	if neg {
		s = "-" + digits
	}
	v, err := ctx.Numbers.Int(s, base)
	if err != nil {
		// Not parseable at all as a number in this base: not a number
		// literal, fall through to undefined-word handling.
		return nil, false, nil
	}
	return &LitCont{V: v}, true, nil
}

// numberBase strips a sign and a 0x/0b prefix, returning the base to parse
// the remaining digits in. An empty digits return means text does not look
// like a number at all.
func numberBase(text string) (base int, digits string, neg bool) {
	s := text
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return 16, s[2:], neg
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		return 2, s[2:], neg
	default:
		if s == "" || !isDecimal(s) {
			return 10, "", neg
		}
		return 10, s, neg
	}
}

func isDecimal(s string) bool {
	for i, r := range s {
		if r == '-' && i == 0 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitRational recognizes an `N/D` literal: two decimal runs (optionally
// signed) separated by a single slash, with no other slashes.
func splitRational(text string) (num, den string, ok bool) {
	i := strings.IndexByte(text, '/')
	if i <= 0 || i == len(text)-1 {
		return "", "", false
	}
	if strings.IndexByte(text[i+1:], '/') >= 0 {
		return "", "", false
	}
	num, den = text[:i], text[i+1:]
	if !isDecimal(num) || !isDecimal(den) {
		return "", "", false
	}
	return num, den, true
}
