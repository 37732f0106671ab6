//go:build gmp

package orchestration

import (
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	extraOracles = append(extraOracles, GMPOracle{})
}

// GMPOracle evaluates operations with libgmp. It is compiled in with the
// gmp build tag and requires cgo.
type GMPOracle struct{}

// Name implements Oracle.
func (GMPOracle) Name() string { return "gmp" }

// Eval implements Oracle for the ring and truncated division operations.
func (GMPOracle) Eval(op string, a, b *big.Int) (*big.Int, bool) {
	x, y, z := toGMP(a), toGMP(b), new(gmp.Int)
	switch op {
	case "add":
		z.Add(x, y)
	case "sub":
		z.Sub(x, y)
	case "mul":
		z.Mul(x, y)
	case "div":
		z.Quo(x, y)
	case "rem":
		z.Rem(x, y)
	default:
		return nil, false
	}
	out, ok := new(big.Int).SetString(z.String(), 10)
	return out, ok
}

func toGMP(b *big.Int) *gmp.Int {
	z, _ := new(gmp.Int).SetString(b.String(), 10)
	return z
}
