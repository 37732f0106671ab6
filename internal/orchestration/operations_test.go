package orchestration

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/bigcalc/internal/bignum"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		op       string
		operands []string
		want     []string
	}{
		{"add", []string{"0xff", "0x1"}, []string{"0x100"}},
		{"add", []string{"-0x5", "0x5"}, []string{"0x0"}},
		{"sub", []string{"0x1", "0x3"}, []string{"-0x2"}},
		{"mul", []string{"-0x3", "0x5"}, []string{"-0xf"}},
		{"div", []string{"-0x7", "0x2"}, []string{"-0x3"}},
		{"rem", []string{"-0x7", "0x2"}, []string{"-0x1"}},
		{"mod", []string{"-0x7", "0x2"}, []string{"0x1"}},
		{"mod", []string{"-0x7", "-0x2"}, []string{"0x1"}},
		{"quorem", []string{"0x7", "-0x2"}, []string{"-0x3", "0x1"}},
		{"gcd", []string{"-0xc", "0x12"}, []string{"0x6"}},
		{"gcd", []string{"0x0", "-0x9"}, []string{"0x9"}},
		{"lcm", []string{"0x4", "-0x6"}, []string{"0xc"}},
		{"pow", []string{"-0x2", "0x3"}, []string{"-0x8"}},
		{"pow", []string{"0x2", "0x40"}, []string{"0x10000000000000000"}},
		{"pow", []string{"0x0", "0x0"}, []string{"0x1"}},
		{"shl", []string{"0x1", "0x40"}, []string{"0x10000000000000000"}},
		{"shl", []string{"-0x3", "0x4"}, []string{"-0x30"}},
		{"shr", []string{"-0x100", "0x4"}, []string{"-0x10"}},
		{"shr", []string{"-0x1", "0x1"}, []string{"0x0"}},
		{"or", []string{"0xf0", "0x0f"}, []string{"0xff"}},
		{"cmp", []string{"-0x1", "0x1"}, []string{"-0x1"}},
		{"cmp", []string{"0x10000000000000000", "0x10000000000000000"}, []string{"0x0"}},
		{"neg", []string{"0x0"}, []string{"0x0"}},
		{"neg", []string{"0x5"}, []string{"-0x5"}},
		{"abs", []string{"-0x5"}, []string{"0x5"}},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			t.Parallel()
			res, err := Evaluate(context.Background(), Env{}, tt.op, tt.operands)
			if err != nil {
				t.Fatalf("Evaluate(%s %v) error: %v", tt.op, tt.operands, err)
			}
			if len(res.Values) != len(tt.want) {
				t.Fatalf("got %d values, want %d", len(res.Values), len(tt.want))
			}
			for i, v := range res.Values {
				if v.Text() != tt.want[i] {
					t.Errorf("%s %v [%d] = %s, want %s", tt.op, tt.operands, i, v.Text(), tt.want[i])
				}
			}
		})
	}
}

func TestEvaluate_QuoRemLabels(t *testing.T) {
	t.Parallel()
	res, err := Evaluate(context.Background(), Env{}, "quorem", []string{"0x9", "0x2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Labels) != 2 || res.Labels[0] != "q" || res.Labels[1] != "r" {
		t.Errorf("labels = %v, want [q r]", res.Labels)
	}
	if res.Value().Text() != "0x4" {
		t.Errorf("Value() = %s, want 0x4", res.Value().Text())
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		op       string
		operands []string
		sentinel error
	}{
		{"division by zero", "div", []string{"0x1", "0x0"}, apperrors.ErrDivisionByZero},
		{"mod by zero", "mod", []string{"0x1", "0x0"}, apperrors.ErrDivisionByZero},
		{"negative or", "or", []string{"-0x1", "0x1"}, apperrors.ErrNegativeToUnsigned},
		{"negative exponent", "pow", []string{"0x2", "-0x1"}, apperrors.ErrUnsupportedOperation},
		{"malformed operand", "add", []string{"0x1", "0xZ"}, apperrors.ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Evaluate(context.Background(), Env{}, tt.op, tt.operands)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		op       string
		operands []string
	}{
		{"unknown op", "frobnicate", []string{"0x1"}},
		{"missing operand", "add", []string{"0x1"}},
		{"extra operand", "neg", []string{"0x1", "0x2"}},
		{"shift too large", "shl", []string{"0x1", "0x1000001"}},
		{"shift count negative", "shr", []string{"0x1", "-0x1"}},
		{"shift count wide", "shl", []string{"0x1", "0x10000000000000000"}},
		{"pow result too large", "pow", []string{"0x3", "0x1000000"}},
		{"rand without source", "rand", []string{"0x1"}},
		{"rand too many words", "rand", []string{"0x10001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Evaluate(context.Background(), Env{}, tt.op, tt.operands)
			var vErr apperrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v (%T), want ValidationError", err, err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorGeneric {
				t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorGeneric)
			}
		})
	}
}

func TestEvaluate_PowOfOneIgnoresSizeLimit(t *testing.T) {
	t.Parallel()
	res, err := Evaluate(context.Background(), Env{}, "pow", []string{"-0x1", "0xffffff"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Value().Text() != "-0x1" {
		t.Errorf("(-1)**0xffffff = %s, want -0x1", res.Value().Text())
	}
}

func TestEvaluate_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, Env{}, "add", []string{"0x1", "0x2"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEvaluateValues_DeadlineStopsLongOperation(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(5, 8))
	a := bignum.IntFromNat(bignum.RandomNat(r, 20000))
	b := bignum.IntFromNat(bignum.RandomNat(r, 20000))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res, err := EvaluateValues(ctx, Env{}, "mul", []bignum.Int{a, b})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
	if len(res.Values) != 0 {
		t.Errorf("got %d values after the deadline, want none", len(res.Values))
	}
	if code := apperrors.ExitCodeFor(apperrors.CalculationError{Op: "mul", Cause: err}); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
}

func TestEvaluate_RandUsesSource(t *testing.T) {
	t.Parallel()
	env := Env{Source: rand.New(rand.NewPCG(7, 11))}
	res, err := Evaluate(context.Background(), env, "rand", []string{"0x3"})
	if err != nil {
		t.Fatal(err)
	}

	want := bignum.RandomNat(rand.New(rand.NewPCG(7, 11)), 3)
	if !res.Value().Magnitude().Equal(want) || res.Value().IsNeg() {
		t.Errorf("rand 3 = %s, want %s", res.Value(), want)
	}
}

func TestEvaluate_RecordsMetrics(t *testing.T) {
	t.Parallel()
	rec := metrics.NewRecorder()
	env := Env{Recorder: rec}

	if _, err := Evaluate(context.Background(), env, "add", []string{"0x1", "0x2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Evaluate(context.Background(), env, "div", []string{"0x1", "0x0"}); err == nil {
		t.Fatal("expected division by zero")
	}

	n, err := testutil.GatherAndCount(rec.Registry(), "bigcalc_operations_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("operations_total series = %d, want 2", n)
	}
}

func TestEvaluate_ReportsDuration(t *testing.T) {
	t.Parallel()
	res, err := Evaluate(context.Background(), Env{}, "mul", []string{"0xffffffffffffffffffffffff", "0xffffffffffffffffffffffff"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Duration < 0 || res.Duration > time.Minute {
		t.Errorf("implausible duration %v", res.Duration)
	}
	if res.Op != "mul" {
		t.Errorf("Op = %q, want mul", res.Op)
	}
}

func TestOperationNames(t *testing.T) {
	t.Parallel()
	names := OperationNames()
	if len(names) != len(Operations()) {
		t.Fatalf("names and operations disagree: %d vs %d", len(names), len(Operations()))
	}
	for _, name := range names {
		op, ok := Lookup(name)
		if !ok || op.Name != name {
			t.Errorf("Lookup(%q) failed", name)
		}
		if op.Arity < 1 || op.Arity > 2 || op.Summary == "" {
			t.Errorf("operation %q is incompletely described", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup of an unknown name succeeded")
	}
}
