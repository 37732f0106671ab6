// Package bignum implements arbitrary-precision integer arithmetic.
//
// Nat is an unsigned magnitude stored as canonical little-endian base-2^64
// digits; Int is a signed integer in sign-magnitude form built on Nat.
// Both satisfy algebra.EuclideanDomain so that generic algorithms such as
// algebra.GCD can operate on either.
//
// Arithmetic uses schoolbook algorithms: ripple-carry addition,
// two's-complement subtraction, O(n·m) multiplication, and long division by
// digit estimation and correction. All values are immutable; every operation
// returns a new value.
//
// Violated arithmetic preconditions (division by zero, unsigned underflow,
// negative-to-unsigned conversion, unsupported exponents, malformed hex)
// are reported as errors matching the sentinels in package apperrors.
// Internal consistency failures panic.
//
// Text I/O is hexadecimal only:
//
//	x, _ := bignum.ParseNat("0xFFFFFFFFFFFFFFFF")
//	fmt.Println(x.Add(bignum.NatFromWord(1))) // 0x1 0000000000000000
package bignum
