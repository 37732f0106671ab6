package bignum_test

import (
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bignum"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ExampleNat_Add shows carry propagation into a new word.
func ExampleNat_Add() {
	x := bignum.MustParseNat("0xFFFFFFFFFFFFFFFF")
	fmt.Println(x.Add(bignum.NatFromWord(1)))
	// Output:
	// 0x1 0000000000000000
}

// ExampleNat_QuoRem divides a three-word value by a single word.
func ExampleNat_QuoRem() {
	x := bignum.MustParseNat("0xCDF6CB3091A77FE6143FC6910875333BB3B08D7AE0B60629")
	y := bignum.MustParseNat("0xD4024CBD9C6BAE10")

	q, r, err := x.QuoRem(y)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(q.Text())
	fmt.Println(r.Text())
	// Output:
	// 0xf8b36482cdc11eae615a3c1c9c8ad986
	// 0x43b4eec6252d59c9
}

// ExampleNat_Sub demonstrates the underflow error.
func ExampleNat_Sub() {
	_, err := bignum.NatFromWord(1).Sub(bignum.NatFromWord(2))
	fmt.Println(err)
	fmt.Println(errors.Is(err, apperrors.ErrUnderflow))
	// Output:
	// sub: unsigned subtraction underflow
	// true
}

// ExampleInt_EucRem contrasts truncated and Euclidean remainders.
func ExampleInt_EucRem() {
	x := bignum.IntFromInt64(-7)
	y := bignum.IntFromInt64(2)

	r, _ := x.Rem(y)
	e, _ := x.EucRem(y)
	fmt.Println(r, e)
	// Output:
	// -0x1 0x1
}
