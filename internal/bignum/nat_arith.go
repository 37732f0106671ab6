package bignum

import (
	"math/bits"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// at returns ws[i], or 0 past the end of ws.
func at(ws []Word, i int) Word {
	if i < len(ws) {
		return ws[i]
	}
	return 0
}

// Add returns x + y.
func (x Nat) Add(y Nat) Nat {
	return Nat{words: addWords(x.digits(), y.digits())}
}

// addWords is ripple-carry addition into a result one digit wider than the
// longer operand.
func addWords(x, y []Word) []Word {
	z := make([]Word, max(len(x), len(y))+1)
	var c Word
	for i := range z {
		z[i], c = bits.Add64(at(x, i), at(y, i), c)
	}
	return normalize(z)
}

// Sub returns x - y. It fails with apperrors.ErrUnderflow when x < y.
func (x Nat) Sub(y Nat) (Nat, error) {
	if x.Cmp(y) < 0 {
		return Nat{}, apperrors.NewArithmeticError("sub", apperrors.ErrUnderflow)
	}
	return x.sub(y), nil
}

// sub returns x - y for callers that have established x >= y.
func (x Nat) sub(y Nat) Nat {
	return Nat{words: subWrap(x.digits(), y.digits())}
}

// subWrap computes x - y modulo B^n, n being the longer operand length, by
// adding the two's complement of y to x and dropping the final carry. The
// result equals the true difference whenever x >= y.
func subWrap(x, y []Word) []Word {
	n := max(len(x), len(y))

	neg := make([]Word, n)
	for i := range neg {
		neg[i] = ^at(y, i)
	}
	c := Word(1)
	for i := range neg {
		neg[i], c = bits.Add64(neg[i], 0, c)
	}

	z := make([]Word, n)
	c = 0
	for i := range z {
		z[i], c = bits.Add64(at(x, i), neg[i], c)
	}
	return normalize(z)
}

// Mul returns x * y using schoolbook multiplication.
func (x Nat) Mul(y Nat) Nat {
	switch {
	case x.IsZero() || y.IsZero():
		return natZero
	case x.IsOne():
		return y
	case y.IsOne():
		return x
	}
	return Nat{words: mulWords(x.digits(), y.digits())}
}

// mulWords returns the len(x)+len(y) digit product of x and y, normalized.
func mulWords(x, y []Word) []Word {
	z := make([]Word, len(x)+len(y))
	for j, yj := range y {
		var carry Word
		for i, xi := range x {
			z[i+j], carry = MulAdd(xi, yj, carry, z[i+j])
		}
		z[len(x)+j] = carry
	}
	return normalize(z)
}

// Pow returns x**n by repeated squaring. x**0 is 1 for every x, including 0.
// A negative exponent fails with apperrors.ErrUnsupportedOperation.
func (x Nat) Pow(n int64) (Nat, error) {
	if n < 0 {
		return Nat{}, apperrors.NewArithmeticError("pow", apperrors.ErrUnsupportedOperation)
	}
	result := natOne
	base := x
	for e := uint64(n); e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		if e > 1 {
			base = base.Mul(base)
		}
	}
	return result, nil
}
