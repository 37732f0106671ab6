package bignum

import "math/bits"

// Word is a single base-2^64 digit of a magnitude.
type Word = uint64

const (
	// WordBits is the width of a Word in bits.
	WordBits = 64
	// WordHexDigits is the number of hexadecimal characters encoding one Word.
	WordHexDigits = WordBits / 4
	// maxWord is B-1, the largest digit.
	maxWord = ^Word(0)
)

// MulAdd computes the double-word value a*b + c + d, returned as its low and
// high words. The sum never exceeds 2^128 - 1, so the result is exact.
func MulAdd(a, b, c, d Word) (lo, hi Word) {
	hi, lo = bits.Mul64(a, b)
	var carry Word
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	lo, carry = bits.Add64(lo, d, 0)
	hi += carry
	return lo, hi
}

// DivWide divides the double word hi*B + lo by d and returns the quotient
// split into high and low words together with the remainder.
//
// A non-zero qhi means the quotient does not fit in one Word; callers that
// expect a single-word quotient treat that as an internal error.
//
// DivWide panics if d is zero.
func DivWide(hi, lo, d Word) (qhi, qlo, r Word) {
	if d == 0 {
		panic("bignum: DivWide by zero")
	}
	// bits.Div64 requires hi < d; split the dividend into two single-word
	// divisions when it is not.
	if hi >= d {
		qhi, hi = hi/d, hi%d
	}
	qlo, r = bits.Div64(hi, lo, d)
	return qhi, qlo, r
}
