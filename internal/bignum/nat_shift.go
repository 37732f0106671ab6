package bignum

// Lsh returns x << k.
func (x Nat) Lsh(k uint) Nat {
	if x.IsZero() {
		return natZero
	}
	d := x.digits()
	wordShift := int(k / WordBits)
	bitShift := k % WordBits

	// One spare digit receives the bits shifted out of the top word.
	z := make([]Word, len(d)+wordShift+1)
	copy(z[wordShift:], d)

	// Go defines x >> 64 as 0, so bitShift == 0 needs no special case.
	for i := len(z) - 1; i > wordShift; i-- {
		z[i] = z[i]<<bitShift | z[i-1]>>(WordBits-bitShift)
	}
	z[wordShift] <<= bitShift
	return Nat{words: normalize(z)}
}

// Rsh returns x >> k.
func (x Nat) Rsh(k uint) Nat {
	d := x.digits()
	wordShift := k / WordBits
	if wordShift >= uint(len(d)) {
		return natZero
	}
	bitShift := k % WordBits

	z := make([]Word, len(d)-int(wordShift))
	copy(z, d[wordShift:])
	for i := 0; i < len(z)-1; i++ {
		z[i] = z[i]>>bitShift | z[i+1]<<(WordBits-bitShift)
	}
	z[len(z)-1] >>= bitShift
	return Nat{words: normalize(z)}
}

// Or returns the bitwise OR of x and y.
func (x Nat) Or(y Nat) Nat {
	xd, yd := x.digits(), y.digits()
	z := extend(xd, len(yd))
	for i, w := range yd {
		z[i] |= w
	}
	return Nat{words: normalize(z)}
}
