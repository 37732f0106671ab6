package bignum_test

import (
	"math/rand/v2"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/bignum/mocks"
)

func TestRandomNat_DrawOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	src := mocks.NewMockWordSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Uint64().Return(uint64(0x11)),
		src.EXPECT().Uint64().Return(uint64(0x22)),
		src.EXPECT().Uint64().Return(uint64(0x33)),
	)

	x := bignum.RandomNat(src, 3)
	want := bignum.NatFromWords(0x11, 0x22, 0x33)
	if !x.Equal(want) {
		t.Errorf("RandomNat = %v, want %v", x, want)
	}
}

func TestRandomNat_NormalizesHighZeros(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	src := mocks.NewMockWordSource(ctrl)
	src.EXPECT().Uint64().Return(uint64(7))
	src.EXPECT().Uint64().Return(uint64(0)).Times(2)

	x := bignum.RandomNat(src, 3)
	if x.Len() != 1 || x.Word(0) != 7 {
		t.Errorf("RandomNat = %v, want 0x7", x)
	}
}

func TestRandomNat_NonPositiveLength(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	src := mocks.NewMockWordSource(ctrl)
	src.EXPECT().Uint64().Times(0)

	for _, n := range []int{0, -3} {
		if x := bignum.RandomNat(src, n); !x.IsZero() {
			t.Errorf("RandomNat(%d) = %v, want 0", n, x)
		}
	}
}

func TestRandomInt_SignWord(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		signWord uint64
		neg      bool
	}{
		{"odd sign word is negative", 0xFF, true},
		{"even sign word is positive", 0xFE, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			src := mocks.NewMockWordSource(ctrl)
			gomock.InOrder(
				src.EXPECT().Uint64().Return(uint64(5)),
				src.EXPECT().Uint64().Return(tt.signWord),
			)
			x := bignum.RandomInt(src, 1)
			if x.IsNeg() != tt.neg || !x.Magnitude().Equal(bignum.NatFromWord(5)) {
				t.Errorf("RandomInt = %v, want neg=%v magnitude 5", x, tt.neg)
			}
		})
	}
}

func TestRandomInt_ZeroMagnitudeIsNonNegative(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	src := mocks.NewMockWordSource(ctrl)
	src.EXPECT().Uint64().Return(uint64(0))
	src.EXPECT().Uint64().Return(uint64(1))

	if x := bignum.RandomInt(src, 1); x.IsNeg() || x.Sign() != 0 {
		t.Errorf("RandomInt with zero magnitude = %v, want 0", x)
	}
}

func TestRandomNat_SeededSourceIsDeterministic(t *testing.T) {
	t.Parallel()
	a := bignum.RandomNat(rand.New(rand.NewPCG(7, 9)), 5)
	b := bignum.RandomNat(rand.New(rand.NewPCG(7, 9)), 5)
	if !a.Equal(b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}
