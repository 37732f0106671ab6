package bignum

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ParseNat parses a hexadecimal literal.
//
// The grammar is an optional case-insensitive "0x" prefix followed by one or
// more hexadecimal digits of either case. The digit string is left-padded
// with zeros to a multiple of WordHexDigits and split into words, most
// significant first.
//
// Any other input yields a *apperrors.MalformedInputError, which matches
// apperrors.ErrMalformedInput.
func ParseNat(s string) (Nat, error) {
	offset := 0
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		offset = 2
	}
	digitsStr := s[offset:]
	if digitsStr == "" {
		return Nat{}, &apperrors.MalformedInputError{Input: s}
	}

	pad := (WordHexDigits - len(digitsStr)%WordHexDigits) % WordHexDigits
	n := (len(digitsStr) + pad) / WordHexDigits
	words := make([]Word, n)

	// Position -pad..-1 are the implicit leading zeros.
	for i := -pad; i < len(digitsStr); i++ {
		var v Word
		if i >= 0 {
			c := digitsStr[i]
			d, ok := hexValue(c)
			if !ok {
				return Nat{}, &apperrors.MalformedInputError{Input: s, Pos: offset + i, Char: rune(c)}
			}
			v = Word(d)
		}
		k := (i + pad) / WordHexDigits
		w := &words[n-1-k]
		*w = *w<<4 | v
	}
	return Nat{words: normalize(words)}, nil
}

// MustParseNat is like ParseNat but panics if s is malformed. It is meant for
// literals in tests and package-level variables.
func MustParseNat(s string) Nat {
	x, err := ParseNat(s)
	if err != nil {
		panic(err)
	}
	return x
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// String returns the debug form of x: "0x" followed by the most significant
// word in bare uppercase hex, then every lower word as exactly 16 uppercase
// hex digits, separated by single spaces. Zero prints as "0x0".
//
// The form is for display only: ParseNat rejects the spaces. Use Text for a
// value that must be parsed back.
func (x Nat) String() string {
	d := x.digits()
	var sb strings.Builder
	sb.Grow(2 + len(d)*(WordHexDigits+1))
	fmt.Fprintf(&sb, "0x%X", d[len(d)-1])
	for i := len(d) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, " %016X", d[i])
	}
	return sb.String()
}

// Text returns x as a compact lowercase hexadecimal literal with a "0x"
// prefix and no separators. ParseNat(x.Text()) == x.
func (x Nat) Text() string {
	d := x.digits()
	var sb strings.Builder
	sb.Grow(2 + len(d)*WordHexDigits)
	fmt.Fprintf(&sb, "0x%x", d[len(d)-1])
	for i := len(d) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%016x", d[i])
	}
	return sb.String()
}

// Big converts x to a math/big integer.
func (x Nat) Big() *big.Int {
	d := x.digits()
	buf := make([]byte, len(d)*8)
	for i, w := range d {
		binary.BigEndian.PutUint64(buf[(len(d)-1-i)*8:], w)
	}
	return new(big.Int).SetBytes(buf)
}

// NatFromBig converts a non-negative math/big integer to a Nat.
func NatFromBig(b *big.Int) (Nat, error) {
	if b.Sign() < 0 {
		return Nat{}, apperrors.NewArithmeticError("from big", apperrors.ErrNegativeToUnsigned)
	}
	raw := b.Bytes()
	n := (len(raw) + 7) / 8
	buf := make([]byte, n*8)
	copy(buf[len(buf)-len(raw):], raw)
	words := make([]Word, n)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(buf[(n-1-i)*8:])
	}
	return Nat{words: normalize(words)}, nil
}
