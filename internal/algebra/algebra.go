// Package algebra defines the ring and Euclidean-domain capability sets
// shared by the integer types, together with generic algorithms written
// only against those capabilities.
//
// Go has no static interface methods, so identities are obtained from any
// value of the type: x.Zero() and x.One() do not depend on x.
package algebra

// Ring is a commutative ring with identity.
type Ring[T any] interface {
	// Zero returns the additive identity.
	Zero() T
	// One returns the multiplicative identity.
	One() T
	// IsZero reports whether the receiver is the additive identity.
	IsZero() bool
	Add(T) T
	Mul(T) T
	// Pow raises the receiver to a non-negative power. Implementations may
	// reject exponents they do not support.
	Pow(n int64) (T, error)
}

// Euclidean is a ring with division with remainder.
type Euclidean[T any] interface {
	Ring[T]
	// QuoRem returns q and r with receiver == divisor*q + r, where r is
	// smaller than divisor under the domain's size metric.
	QuoRem(divisor T) (q, r T, err error)
}

// EuclideanDomain is a Euclidean ring with an explicit size metric S.
type EuclideanDomain[T, S any] interface {
	Euclidean[T]
	// EuclideanSize returns the size used by the division algorithm.
	EuclideanSize() S
}
