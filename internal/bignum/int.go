package bignum

import (
	"errors"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Int is an arbitrary-precision signed integer in sign-magnitude form.
//
// Zero is always non-negative: every constructor and operation clears the
// sign of a zero result, so two Ints are equal exactly when their signs and
// magnitudes are. The zero value of Int is zero.
type Int struct {
	neg bool
	mag Nat
}

// NewInt returns the Int with the given sign and magnitude. A zero
// magnitude always yields non-negative zero.
func NewInt(neg bool, mag Nat) Int {
	return Int{neg: neg && !mag.IsZero(), mag: mag}
}

// IntFromNat returns the non-negative Int with magnitude x.
func IntFromNat(x Nat) Int {
	return Int{mag: x}
}

// IntFromInt64 converts a native signed integer.
func IntFromInt64(v int64) Int {
	if v < 0 {
		// Two's complement negation is exact for math.MinInt64 when viewed
		// as an unsigned word.
		return NewInt(true, NatFromWord(Word(-uint64(v))))
	}
	return IntFromNat(NatFromWord(Word(v)))
}

// ParseInt parses an optional leading '-' followed by a ParseNat literal.
func ParseInt(s string) (Int, error) {
	neg := false
	body := s
	if len(body) > 0 && body[0] == '-' {
		neg = true
		body = body[1:]
	}
	mag, err := ParseNat(body)
	if err != nil {
		var malformed *apperrors.MalformedInputError
		if errors.As(err, &malformed) && neg {
			malformed.Input = s
			if malformed.Char != 0 {
				malformed.Pos++
			}
		}
		return Int{}, err
	}
	return NewInt(neg, mag), nil
}

// MustParseInt is like ParseInt but panics on malformed input.
func MustParseInt(s string) Int {
	x, err := ParseInt(s)
	if err != nil {
		panic(err)
	}
	return x
}

// Magnitude returns |x| as a Nat.
func (x Int) Magnitude() Nat { return x.mag }

// IsNeg reports whether x < 0.
func (x Int) IsNeg() bool { return x.neg }

// Sign returns -1, 0 or +1 according to the sign of x.
func (x Int) Sign() int {
	switch {
	case x.mag.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Neg returns -x. Negating zero yields zero.
func (x Int) Neg() Int {
	return NewInt(!x.neg, x.mag)
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{mag: x.mag}
}

// ToNat demotes x to a Nat. It fails with apperrors.ErrNegativeToUnsigned
// when x is negative.
func (x Int) ToNat() (Nat, error) {
	if x.neg {
		return Nat{}, apperrors.NewArithmeticError("to nat", apperrors.ErrNegativeToUnsigned)
	}
	return x.mag, nil
}

// Cmp compares x and y and returns -1, 0 or +1. Negative values order
// before non-negative ones; among negatives the magnitude order is reversed.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return -x.mag.Cmp(y.mag)
	}
	return x.mag.Cmp(y.mag)
}

// Equal reports whether x and y have the same sign and magnitude.
func (x Int) Equal(y Int) bool {
	return x.neg == y.neg && x.mag.Equal(y.mag)
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return NewInt(x.neg, x.mag.Add(y.mag))
	}
	// Signs differ: x + y is the positive operand minus the magnitude of
	// the negative one.
	if x.neg {
		return y.Sub(x.Neg())
	}
	return x.Sub(y.Neg())
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	switch {
	case !x.neg && !y.neg:
		return diffOf(x.mag, y.mag)
	case !x.neg && y.neg:
		// x - (-|y|) = x + |y|
		return IntFromNat(x.mag.Add(y.mag))
	case x.neg && !y.neg:
		// -|x| - y = -(|x| + y)
		return NewInt(true, x.mag.Add(y.mag))
	default:
		// -|x| - (-|y|) = |y| - |x|
		return diffOf(y.mag, x.mag)
	}
}

// diffOf returns a - b for magnitudes, comparing first so that the
// unsigned subtraction never underflows.
func diffOf(a, b Nat) Int {
	switch a.Cmp(b) {
	case 1:
		return IntFromNat(a.sub(b))
	case -1:
		return NewInt(true, b.sub(a))
	}
	return Int{}
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return NewInt(x.neg != y.neg, x.mag.Mul(y.mag))
}

// QuoRem returns the truncated quotient and remainder of x / y. The quotient
// is negative when exactly one operand is; the remainder takes the sign of
// x. It fails with apperrors.ErrDivisionByZero when y is zero.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	uq, ur, err := x.mag.QuoRem(y.mag)
	if err != nil {
		return Int{}, Int{}, err
	}
	return NewInt(x.neg != y.neg, uq), NewInt(x.neg, ur), nil
}

// Quo returns x / y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the truncated remainder of x / y, which has the sign of x.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// EucRem returns the Euclidean remainder of x / y, always in [0, |y|).
func (x Int) EucRem(y Int) (Int, error) {
	r, err := x.Rem(y)
	if err != nil {
		return Int{}, err
	}
	if r.neg {
		r = r.Add(y.Abs())
	}
	return r, nil
}

// String returns the debug form of x: the Nat debug form of |x|, prefixed
// with '-' when x is negative. Zero prints as "0x0".
func (x Int) String() string {
	if x.neg {
		return "-" + x.mag.String()
	}
	return x.mag.String()
}

// Text returns x as a compact hexadecimal literal accepted by ParseInt.
func (x Int) Text() string {
	if x.neg {
		return "-" + x.mag.Text()
	}
	return x.mag.Text()
}
