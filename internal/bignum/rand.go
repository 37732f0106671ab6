//go:generate mockgen -source=rand.go -destination=mocks/mock_rand.go -package=mocks

package bignum

// WordSource supplies uniformly distributed words. *math/rand/v2.Rand and
// the decred crypto/rand PRNG both satisfy it. Generation is not meant to
// be cryptographically secure even when the source is.
type WordSource interface {
	Uint64() uint64
}

// RandomNat returns a Nat built from exactly n words drawn from src, the
// first word drawn becoming the least significant digit. High zero words
// are normalized away, so the result may be shorter than n digits. n <= 0
// yields zero.
func RandomNat(src WordSource, n int) Nat {
	if n <= 0 {
		return natZero
	}
	words := make([]Word, n)
	for i := range words {
		words[i] = src.Uint64()
	}
	return Nat{words: normalize(words)}
}

// RandomInt draws an n-word magnitude as RandomNat does, then one more word
// whose low bit selects the sign.
func RandomInt(src WordSource, n int) Int {
	mag := RandomNat(src, n)
	return NewInt(src.Uint64()&1 == 1, mag)
}
