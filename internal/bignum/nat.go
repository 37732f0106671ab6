package bignum

import "math/bits"

// Nat is an arbitrary-precision unsigned integer.
//
// The value is held as little-endian base-2^64 digits with no high zero
// digits; zero is the single digit 0. The zero value of Nat is zero.
//
// Nat has value semantics: no method modifies its receiver or its
// arguments, and every result owns storage that no other Nat can observe
// being written. Results may share read-only storage with an operand.
type Nat struct {
	words []Word
}

var (
	natZero = Nat{words: []Word{0}}
	natOne  = Nat{words: []Word{1}}
)

// NatFromWord promotes a single word to a Nat.
func NatFromWord(w Word) Nat {
	return Nat{words: []Word{w}}
}

// NatFromWords builds a Nat from little-endian digits. The input slice is
// copied and the result is normalized.
func NatFromWords(ws ...Word) Nat {
	words := make([]Word, len(ws))
	copy(words, ws)
	return Nat{words: normalize(words)}
}

// normalize strips high zero digits, collapsing an all-zero (or empty)
// slice to the canonical single zero digit.
func normalize(ws []Word) []Word {
	n := len(ws)
	for n > 1 && ws[n-1] == 0 {
		n--
	}
	if n == 0 {
		return []Word{0}
	}
	return ws[:n]
}

// digits returns the canonical digit slice, mapping the zero value to [0].
func (x Nat) digits() []Word {
	if len(x.words) == 0 {
		return natZero.words
	}
	return x.words
}

// Words returns a copy of the little-endian digits of x.
func (x Nat) Words() []Word {
	d := x.digits()
	out := make([]Word, len(d))
	copy(out, d)
	return out
}

// Len returns the number of digits in the canonical representation of x.
func (x Nat) Len() int {
	return len(x.digits())
}

// Word returns digit i of x, or 0 if i is beyond the most significant digit.
func (x Nat) Word(i int) Word {
	d := x.digits()
	if i < 0 || i >= len(d) {
		return 0
	}
	return d[i]
}

// MSW returns the most significant digit of x.
func (x Nat) MSW() Word {
	d := x.digits()
	return d[len(d)-1]
}

// Slice returns the value held by digits lo through hi-1 of x, so that
// digit lo of x becomes digit 0 of the result. Bounds are clamped to
// [0, x.Len()]; an empty range yields zero.
func (x Nat) Slice(lo, hi int) Nat {
	d := x.digits()
	lo = min(max(lo, 0), len(d))
	hi = min(max(hi, lo), len(d))
	return NatFromWords(d[lo:hi]...)
}

// BitLen returns the number of significant bits in x; BitLen of zero is 0.
func (x Nat) BitLen() int {
	d := x.digits()
	return (len(d)-1)*WordBits + bits.Len64(d[len(d)-1])
}

// IsZero reports whether x == 0.
func (x Nat) IsZero() bool {
	d := x.digits()
	return len(d) == 1 && d[0] == 0
}

// IsOne reports whether x == 1.
func (x Nat) IsOne() bool {
	d := x.digits()
	return len(d) == 1 && d[0] == 1
}

// Cmp compares x and y by value and returns -1, 0 or +1.
func (x Nat) Cmp(y Nat) int {
	return cmpWords(x.digits(), y.digits())
}

// Equal reports whether x and y have identical canonical digits.
func (x Nat) Equal(y Nat) bool {
	return x.Cmp(y) == 0
}

// cmpWords compares two digit slices, treating missing high digits as zero.
func cmpWords(x, y []Word) int {
	n := max(len(x), len(y))
	for i := n - 1; i >= 0; i-- {
		var xi, yi Word
		if i < len(x) {
			xi = x[i]
		}
		if i < len(y) {
			yi = y[i]
		}
		switch {
		case xi < yi:
			return -1
		case xi > yi:
			return 1
		}
	}
	return 0
}

// extend returns a copy of ws widened with zero digits to length n
// (or len(ws) if that is larger).
func extend(ws []Word, n int) []Word {
	out := make([]Word, max(n, len(ws)))
	copy(out, ws)
	return out
}
