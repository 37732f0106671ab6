package bignum

import (
	"math/bits"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// QuoRem returns the quotient and remainder of x / y, such that
// y*q + r == x and r < y. It fails with apperrors.ErrDivisionByZero when y
// is zero.
func (x Nat) QuoRem(y Nat) (q, r Nat, err error) {
	if y.IsZero() {
		return Nat{}, Nat{}, apperrors.NewArithmeticError("quorem", apperrors.ErrDivisionByZero)
	}
	switch x.Cmp(y) {
	case -1:
		return natZero, x, nil
	case 0:
		return natOne, natZero, nil
	}

	yd := y.digits()
	if len(yd) == 1 {
		qw, rw := divShort(x.digits(), yd[0])
		return Nat{words: qw}, NatFromWord(rw), nil
	}
	qw, rw := divLong(x.digits(), yd)
	return Nat{words: qw}, Nat{words: rw}, nil
}

// Quo returns x / y, truncated.
func (x Nat) Quo(y Nat) (Nat, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns x % y.
func (x Nat) Rem(y Nat) (Nat, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// divShort divides u by the single digit v, walking from the most
// significant digit down with a running one-digit remainder. v must be
// non-zero.
func divShort(u []Word, v Word) (q []Word, r Word) {
	q = make([]Word, len(u))
	i := len(u) - 1

	// A leading digit below v contributes a zero quotient digit; fold it
	// into the remainder before starting.
	if u[i] < v {
		r = u[i]
		i--
	}
	for ; i >= 0; i-- {
		qhi, qlo, rem := DivWide(r, u[i], v)
		if qhi != 0 {
			panic("bignum: short division quotient digit overflow")
		}
		q[i], r = qlo, rem
	}
	return normalize(q), r
}

// divLong divides u by v using digit estimation and correction (Knuth,
// TAOCP vol. 2, 4.3.1, Algorithm D). It requires u >= v and v != 0; it is
// also correct for a single-digit v.
//
// Both operands are first scaled by 2^s so that the top bit of v is set.
// With that normalization the two-by-one estimate of each quotient digit
// exceeds the true digit by at most two, which bounds the correction loop.
func divLong(u, v []Word) (q, r []Word) {
	n := len(v)
	s := uint(bits.LeadingZeros64(v[n-1]))

	vn := Nat{words: v}.Lsh(s).digits()
	un := extend(Nat{words: u}.Lsh(s).digits(), len(u)+1)
	vTop := vn[n-1]

	m := len(u) - n
	q = make([]Word, m+1)

	for j := m; j >= 0; j-- {
		// The window un[j:j+n+1] is always below vn*B, so its top digit
		// never exceeds vTop. Equality would make the two-by-one quotient
		// overflow a digit; B-1 is then the estimate.
		window := un[j : j+n+1]
		qhat := maxWord
		if top := window[n]; top < vTop {
			qhi, qlo, _ := DivWide(top, window[n-1], vTop)
			if qhi != 0 {
				panic("bignum: long division estimate overflow")
			}
			qhat = qlo
		}

		prod := mulDigit(vn, qhat)
		for cmpWords(prod, window) > 0 {
			qhat--
			prod = subWrap(prod, vn)
		}

		diff := subWrap(window, prod)
		for i := range window {
			window[i] = at(diff, i)
		}
		q[j] = qhat
	}

	rem := Nat{words: normalize(un[:n])}.Rsh(s)
	return normalize(q), rem.digits()
}

// mulDigit returns the len(v)+1 digit product v * d without normalizing.
func mulDigit(v []Word, d Word) []Word {
	z := make([]Word, len(v)+1)
	var carry Word
	for i, vi := range v {
		z[i], carry = MulAdd(vi, d, carry, 0)
	}
	z[len(v)] = carry
	return z
}
