package bignum

import (
	"github.com/agbru/bigcalc/internal/algebra"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

var (
	_ algebra.EuclideanDomain[Nat, Nat] = Nat{}
	_ algebra.EuclideanDomain[Int, Nat] = Int{}
)

// Zero returns the Nat 0.
func (Nat) Zero() Nat { return natZero }

// One returns the Nat 1.
func (Nat) One() Nat { return natOne }

// EuclideanSize returns x itself.
func (x Nat) EuclideanSize() Nat { return x }

// Zero returns the Int 0.
func (Int) Zero() Int { return Int{mag: natZero} }

// One returns the Int 1.
func (Int) One() Int { return Int{mag: natOne} }

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.mag.IsZero() }

// EuclideanSize returns |x|.
func (x Int) EuclideanSize() Nat { return x.mag }

// Pow supports only the zero exponent, for which it returns 1. Every other
// exponent fails with apperrors.ErrUnsupportedOperation; callers needing
// positive powers use algebra.Power.
func (x Int) Pow(n int64) (Int, error) {
	if n != 0 {
		return Int{}, apperrors.NewArithmeticError("pow", apperrors.ErrUnsupportedOperation)
	}
	return x.One(), nil
}
