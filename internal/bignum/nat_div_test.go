package bignum

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func TestNat_QuoRemKnownCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		dividend string
		divisor  string
		quo      string
		rem      string
	}{
		{
			name:     "single word divisor",
			dividend: "0xCDF6CB3091A77FE6143FC6910875333BB3B08D7AE0B60629",
			divisor:  "0xD4024CBD9C6BAE10",
			quo:      "f8b36482cdc11eae615a3c1c9c8ad986",
			rem:      "43b4eec6252d59c9",
		},
		{
			name:     "equal lengths",
			dividend: "0x55589105C1E8687FEDA2729CA4FBD7DF",
			divisor:  "0x21906BFD894BDCD7F0F5A4CC17554F5F",
			quo:      "2",
			rem:      "1237b90aaf50aed00bb7290476513921",
		},
		{
			name:     "three by two words",
			dividend: "0x7FEB1182A1B069E520AD55537A7E6FF76A5E0258CF105762",
			divisor:  "0x63861802BBE83994FAA714D6517E1784",
			quo:      "149099cbfc9ba7b38",
			rem:      "24919ff5ff5ce6f9ca0f48bfac46c682",
		},
		{
			name: "ten by three words",
			dividend: "0x8257DC4F1B654A9C47B4FD75965CC3AD59B5F00C06AE76C0B322CBD40CA7391E583158A3F4EA59631C" +
				"1099FA4D7AFACDF481AA5CF4F3AF4A91B859F25FE8F1F4A8E6865CF228831FAC53FCE908880E5",
			divisor: "0xEC3857AB7272481CFC9E4B7A828EFB861B005130E5F2F301",
			quo: "8d41ebf26d8e036e2180bfa06594cea61ab6cba1834e249f3d06a9d3f2e07700ac2a7984db2956c2267ab39" +
				"b9656d3e68338034da2edc0e",
			rem: "9e1e5b3c0fd14f30866c9465fc8dae310053b8bab03c5ad7",
		},
		{
			name:     "estimate clamped to the maximum digit",
			dividend: "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			divisor:  "0xffffffffffffffffffffffffffffffff",
			quo:      "100000000000000000000000000000001",
			rem:      "0",
		},
		{
			name:     "power of two over unnormalized divisor",
			dividend: "0x8000000000000000000000000000000000000000000000000000000000000000",
			divisor:  "0xffffffffffffffffffffffffffffffff",
			quo:      "80000000000000000000000000000000",
			rem:      "80000000000000000000000000000000",
		},
		{
			name:     "divisor with single top bit",
			dividend: "0xffffffffffffffffffffffffffffffffffffffffffffffff",
			divisor:  "0x80000000000000000000000000000001",
			quo:      "1ffffffffffffffff",
			rem:      "7ffffffffffffffe0000000000000000",
		},
		{
			name:     "quotient fills one digit",
			dividend: "0x7fffffffffffffffffffffffffffffffffffffffffffffff",
			divisor:  "0x80000000000000000000000000000001",
			quo:      "ffffffffffffffff",
			rem:      "7fffffffffffffff0000000000000000",
		},
		{
			name:     "estimate needs correction",
			dividend: "0xffffffffffffffff0000000000000000ffffffffffffffff",
			divisor:  "0xffffffffffffffff0000000000000001",
			quo:      "ffffffffffffffff",
			rem:      "ffffffffffffffff0000000000000000",
		},
		{
			name:     "estimate needs two corrections",
			dividend: "0x1000000000000000000000000000000000000000000000003",
			divisor:  "0x100000000000000000000000000000001",
			quo:      "ffffffffffffffff",
			rem:      "ffffffffffffffff0000000000000004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, v := MustParseNat(tt.dividend), MustParseNat(tt.divisor)
			q, r, err := u.QuoRem(v)
			if err != nil {
				t.Fatalf("QuoRem returned error: %v", err)
			}
			if want := MustParseNat(tt.quo); !q.Equal(want) {
				t.Errorf("quotient = %s, want %s", q.Text(), want.Text())
			}
			if want := MustParseNat(tt.rem); !r.Equal(want) {
				t.Errorf("remainder = %s, want %s", r.Text(), want.Text())
			}
		})
	}
}

func TestNat_QuoRemFromWords(t *testing.T) {
	t.Parallel()
	u := NatFromWords(1, 2, 9, 8, 4, 1)
	v := NatFromWords(2, 4, 8)
	q, r, err := u.QuoRem(v)
	if err != nil {
		t.Fatal(err)
	}
	if want := MustParseNat("0x20000000000000007000000000000000c000000000000000"); !q.Equal(want) {
		t.Errorf("quotient = %s, want %s", q.Text(), want.Text())
	}
	if want := MustParseNat("0x520000000000000008000000000000001"); !r.Equal(want) {
		t.Errorf("remainder = %s, want %s", r.Text(), want.Text())
	}
	if !v.Mul(q).Add(r).Equal(u) {
		t.Error("v*q + r != u")
	}
}

func TestNat_QuoRemIdentities(t *testing.T) {
	t.Parallel()
	x := MustParseNat("0x56C1ADE683B78C807948E66BDA765CC9BA2FB6F85667311E")
	two := NatFromWord(2)

	q, r, err := x.Mul(two).QuoRem(x)
	if err != nil || !q.Equal(two) || !r.IsZero() {
		t.Errorf("(2x)/x = (%v, %v, %v), want (2, 0, nil)", q, r, err)
	}
	if q, _ := x.Quo(natOne); !q.Equal(x) {
		t.Errorf("x/1 = %v", q)
	}
	if q, _ := x.Quo(x); !q.IsOne() {
		t.Errorf("x/x = %v", q)
	}
	if q, _ := natOne.Quo(natOne); !q.IsOne() {
		t.Errorf("1/1 = %v", q)
	}
	q, r, _ = natOne.QuoRem(x)
	if !q.IsZero() || !r.IsOne() {
		t.Errorf("1/x = (%v, %v), want (0, 1)", q, r)
	}
}

func TestNat_QuoRemByZero(t *testing.T) {
	t.Parallel()
	x := NatFromWord(42)
	checks := map[string]error{}
	_, _, checks["QuoRem"] = x.QuoRem(natZero)
	_, checks["Quo"] = x.Quo(Nat{})
	_, checks["Rem"] = x.Rem(natZero)
	for name, err := range checks {
		if !errors.Is(err, apperrors.ErrDivisionByZero) {
			t.Errorf("%s by zero error = %v, want ErrDivisionByZero", name, err)
		}
	}
}

func TestDivShortMatchesDivLong(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		u := RandomNat(rng, 1+rng.IntN(8))
		v := rng.Uint64() | 1
		if u.Cmp(NatFromWord(v)) < 0 {
			continue
		}
		qs, rs := divShort(u.digits(), v)
		ql, rl := divLong(u.digits(), []Word{v})
		if !slices.Equal(qs, ql) || !slices.Equal([]Word{rs}, rl) {
			t.Fatalf("short and long division disagree for %s / %#x: (%#x, %#x) vs (%#x, %#x)",
				u.Text(), v, qs, rs, ql, rl)
		}
	}
}

func TestNat_QuoRemRandomAgainstBig(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(42, 1024))
	for i := 0; i < 300; i++ {
		u := RandomNat(rng, 1+rng.IntN(10))
		v := RandomNat(rng, 1+rng.IntN(6))
		// Thin out the divisor's top word now and then to exercise large
		// normalization shifts.
		if i%3 == 0 {
			v = v.Rsh(uint(rng.IntN(63)))
		}
		if v.IsZero() {
			continue
		}
		q, r, err := u.QuoRem(v)
		if err != nil {
			t.Fatal(err)
		}
		wantQ, wantR := new(big.Int).QuoRem(u.Big(), v.Big(), new(big.Int))
		if q.Big().Cmp(wantQ) != 0 || r.Big().Cmp(wantR) != 0 {
			t.Fatalf("%s / %s = (%s, %s), want (%x, %x)", u.Text(), v.Text(), q.Text(), r.Text(), wantQ, wantR)
		}
		if r.Cmp(v) >= 0 {
			t.Fatalf("remainder %s not below divisor %s", r.Text(), v.Text())
		}
	}
}
