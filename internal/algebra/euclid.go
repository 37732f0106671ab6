package algebra

// GCD returns a greatest common divisor of a and b using Euclid's
// algorithm. The result is unique only up to a unit; for signed integers
// its sign follows the last non-zero remainder.
func GCD[T Euclidean[T]](a, b T) (T, error) {
	for !b.IsZero() {
		_, r, err := a.QuoRem(b)
		if err != nil {
			return a, err
		}
		a, b = b, r
	}
	return a, nil
}

// LCM returns a least common multiple of a and b. LCM with zero is zero.
func LCM[T Euclidean[T]](a, b T) (T, error) {
	if a.IsZero() || b.IsZero() {
		return a.Zero(), nil
	}
	g, err := GCD(a, b)
	if err != nil {
		return a.Zero(), err
	}
	q, _, err := a.QuoRem(g)
	if err != nil {
		return a.Zero(), err
	}
	return q.Mul(b), nil
}

// Divides reports whether d divides x exactly.
func Divides[T Euclidean[T]](d, x T) (bool, error) {
	_, r, err := x.QuoRem(d)
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}

// Power computes x**n by repeated squaring using only Mul, so it works for
// any Ring regardless of what its own Pow supports.
func Power[T Ring[T]](x T, n uint64) T {
	result := x.One()
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(x)
		}
		if n > 1 {
			x = x.Mul(x)
		}
	}
	return result
}
