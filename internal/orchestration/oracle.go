package orchestration

import (
	"math/big"

	"github.com/agbru/bigcalc/internal/bignum"
)

// Oracle is an independent arbitrary-precision implementation the
// self-check compares against. Eval reports false for operations it does
// not implement.
type Oracle interface {
	Name() string
	Eval(op string, a, b *big.Int) (*big.Int, bool)
}

// extraOracles is extended by build-tagged files.
var extraOracles []Oracle

// DefaultOracles returns math/big followed by any oracle compiled in.
func DefaultOracles() []Oracle {
	return append([]Oracle{BigOracle{}}, extraOracles...)
}

// BigOracle evaluates operations with math/big.
type BigOracle struct{}

// Name implements Oracle.
func (BigOracle) Name() string { return "math/big" }

// Eval implements Oracle. Division follows the calculator's conventions:
// div and rem truncate, mod is Euclidean, shifts act on the magnitude.
func (BigOracle) Eval(op string, a, b *big.Int) (*big.Int, bool) {
	z := new(big.Int)
	switch op {
	case "add":
		z.Add(a, b)
	case "sub":
		z.Sub(a, b)
	case "mul":
		z.Mul(a, b)
	case "div":
		z.Quo(a, b)
	case "rem":
		z.Rem(a, b)
	case "mod":
		z.Mod(a, b)
	case "shl", "shr":
		z.Abs(a)
		if op == "shl" {
			z.Lsh(z, uint(b.Uint64()))
		} else {
			z.Rsh(z, uint(b.Uint64()))
		}
		if a.Sign() < 0 {
			z.Neg(z)
		}
	case "or":
		z.Or(a, b)
	case "gcd":
		z.GCD(nil, nil, a, b)
	case "cmp":
		z.SetInt64(int64(a.Cmp(b)))
	default:
		return nil, false
	}
	return z, true
}

func toBig(x bignum.Int) *big.Int {
	b := x.Magnitude().Big()
	if x.IsNeg() {
		b.Neg(b)
	}
	return b
}
