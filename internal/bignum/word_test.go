package bignum

import "testing"

func TestMulAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		a, b, c, d Word
		lo, hi     Word
	}{
		{"small", 2, 3, 4, 5, 15, 0},
		{"zero product", 0, maxWord, maxWord, 1, 0, 1},
		{"carry out of low word", 1 << 63, 2, 0, 0, 0, 1},
		{"maximum operands fill 128 bits", maxWord, maxWord, maxWord, maxWord, maxWord, maxWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lo, hi := MulAdd(tt.a, tt.b, tt.c, tt.d)
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("MulAdd(%#x, %#x, %#x, %#x) = (%#x, %#x), want (%#x, %#x)",
					tt.a, tt.b, tt.c, tt.d, lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestDivWide(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		hi, lo, d     Word
		qhi, qlo, rem Word
	}{
		{"single word", 0, 100, 7, 0, 14, 2},
		{"two word dividend", 1, 0, 2, 0, 1 << 63, 0},
		{"quotient overflows one word", 5, 7, 2, 2, 1<<63 + 3, 1},
		{"divide by one", maxWord, maxWord, 1, maxWord, maxWord, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			qhi, qlo, r := DivWide(tt.hi, tt.lo, tt.d)
			if qhi != tt.qhi || qlo != tt.qlo || r != tt.rem {
				t.Errorf("DivWide(%#x, %#x, %#x) = (%#x, %#x, %#x), want (%#x, %#x, %#x)",
					tt.hi, tt.lo, tt.d, qhi, qlo, r, tt.qhi, tt.qlo, tt.rem)
			}
		})
	}
}

func TestDivWide_ZeroDivisorPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("DivWide by zero should panic")
		}
	}()
	DivWide(1, 1, 0)
}
