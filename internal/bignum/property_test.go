package bignum

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genNat generates Nats of up to maxSize words, zero included.
func genNat() gopter.Gen {
	return gen.SliceOf(gen.UInt64()).Map(func(ws []uint64) Nat {
		return NatFromWords(ws...)
	})
}

// genNonZeroNat generates Nats that are never zero.
func genNonZeroNat() gopter.Gen {
	return genNat().SuchThat(func(x Nat) bool { return !x.IsZero() })
}

func genInt() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), genNat()).Map(func(vs []interface{}) Int {
		return NewInt(vs[0].(bool), vs[1].(Nat))
	})
}

func genNonZeroInt() gopter.Gen {
	return genInt().SuchThat(func(x Int) bool { return !x.IsZero() })
}

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 8
	return parameters
}

// intBig converts x to math/big for oracle comparisons.
func intBig(x Int) *big.Int {
	b := x.Magnitude().Big()
	if x.IsNeg() {
		b.Neg(b)
	}
	return b
}

// TestNatRingLaws_PropertyBased checks the commutative semiring laws and
// agreement with math/big for addition and multiplication.
func TestNatRingLaws_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("addition is commutative", prop.ForAll(
		func(x, y Nat) bool { return x.Add(y).Equal(y.Add(x)) },
		genNat(), genNat(),
	))
	properties.Property("multiplication is commutative", prop.ForAll(
		func(x, y Nat) bool { return x.Mul(y).Equal(y.Mul(x)) },
		genNat(), genNat(),
	))
	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(x, y, z Nat) bool { return x.Mul(y.Add(z)).Equal(x.Mul(y).Add(x.Mul(z))) },
		genNat(), genNat(), genNat(),
	))
	properties.Property("addition matches math/big", prop.ForAll(
		func(x, y Nat) bool {
			return x.Add(y).Big().Cmp(new(big.Int).Add(x.Big(), y.Big())) == 0
		},
		genNat(), genNat(),
	))
	properties.Property("multiplication matches math/big", prop.ForAll(
		func(x, y Nat) bool {
			return x.Mul(y).Big().Cmp(new(big.Int).Mul(x.Big(), y.Big())) == 0
		},
		genNat(), genNat(),
	))
	properties.Property("(x + y) - y == x", prop.ForAll(
		func(x, y Nat) bool {
			d, err := x.Add(y).Sub(y)
			return err == nil && d.Equal(x)
		},
		genNat(), genNat(),
	))

	properties.TestingRun(t)
}

// TestNatDivision_PropertyBased checks y*q + r == x with r < y.
func TestNatDivision_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("division identity holds", prop.ForAll(
		func(x, y Nat) bool {
			q, r, err := x.QuoRem(y)
			if err != nil {
				t.Logf("QuoRem(%s, %s): %v", x.Text(), y.Text(), err)
				return false
			}
			return y.Mul(q).Add(r).Equal(x) && r.Cmp(y) < 0
		},
		genNat(), genNonZeroNat(),
	))
	properties.Property("division matches math/big", prop.ForAll(
		func(x, y Nat) bool {
			q, r, _ := x.QuoRem(y)
			wq, wr := new(big.Int).QuoRem(x.Big(), y.Big(), new(big.Int))
			return q.Big().Cmp(wq) == 0 && r.Big().Cmp(wr) == 0
		},
		genNat(), genNonZeroNat(),
	))
	properties.Property("(x * y) / y == x", prop.ForAll(
		func(x, y Nat) bool {
			q, r, err := x.Mul(y).QuoRem(y)
			return err == nil && q.Equal(x) && r.IsZero()
		},
		genNat(), genNonZeroNat(),
	))

	properties.TestingRun(t)
}

// TestNatOrdering_PropertyBased checks that Cmp is a total order consistent
// with subtraction.
func TestNatOrdering_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("Cmp is antisymmetric and matches math/big", prop.ForAll(
		func(x, y Nat) bool {
			c := x.Cmp(y)
			return c == -y.Cmp(x) && c == x.Big().Cmp(y.Big())
		},
		genNat(), genNat(),
	))
	properties.Property("Sub fails exactly when x < y", prop.ForAll(
		func(x, y Nat) bool {
			_, err := x.Sub(y)
			return (err != nil) == (x.Cmp(y) < 0)
		},
		genNat(), genNat(),
	))
	properties.Property("text round trip", prop.ForAll(
		func(x Nat) bool {
			back, err := ParseNat(x.Text())
			return err == nil && back.Equal(x)
		},
		genNat(),
	))
	properties.Property("low and high slices reassemble x", prop.ForAll(
		func(x Nat, k uint8) bool {
			cut := int(k) % (x.Len() + 1)
			low, high := x.Slice(0, cut), x.Slice(cut, x.Len())
			return high.Lsh(uint(cut)*WordBits).Add(low).Equal(x)
		},
		genNat(), gen.UInt8(),
	))

	properties.TestingRun(t)
}

// TestIntArithmetic_PropertyBased checks signed operations against math/big.
func TestIntArithmetic_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	properties.Property("addition and subtraction match math/big", prop.ForAll(
		func(x, y Int) bool {
			sum := intBig(x.Add(y)).Cmp(new(big.Int).Add(intBig(x), intBig(y))) == 0
			diff := intBig(x.Sub(y)).Cmp(new(big.Int).Sub(intBig(x), intBig(y))) == 0
			return sum && diff
		},
		genInt(), genInt(),
	))
	properties.Property("truncated division matches math/big", prop.ForAll(
		func(x, y Int) bool {
			q, r, err := x.QuoRem(y)
			if err != nil {
				return false
			}
			wq, wr := new(big.Int).QuoRem(intBig(x), intBig(y), new(big.Int))
			return intBig(q).Cmp(wq) == 0 && intBig(r).Cmp(wr) == 0
		},
		genInt(), genNonZeroInt(),
	))
	properties.Property("Euclidean remainder lies in [0, |y|)", prop.ForAll(
		func(x, y Int) bool {
			r, err := x.EucRem(y)
			if err != nil {
				return false
			}
			want := new(big.Int).Mod(intBig(x), intBig(y))
			return !r.IsNeg() && r.Magnitude().Cmp(y.Magnitude()) < 0 && intBig(r).Cmp(want) == 0
		},
		genInt(), genNonZeroInt(),
	))
	properties.Property("zero results are never negative", prop.ForAll(
		func(x Int) bool {
			return !x.Sub(x).IsNeg() && !x.Add(x.Neg()).IsNeg() && !x.Mul(Int{}).IsNeg()
		},
		genInt(),
	))

	properties.TestingRun(t)
}
