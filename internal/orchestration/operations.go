package orchestration

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/bigcalc/internal/algebra"
	"github.com/agbru/bigcalc/internal/bignum"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
)

const tracerName = "github.com/agbru/bigcalc/internal/orchestration"

// Operand limits for the operations whose result size is driven by a small
// integer argument rather than by the operands' own size.
const (
	MaxShift     = 1 << 24 // bits
	MaxPowBits   = 1 << 24 // estimated bits of a pow result
	MaxRandWords = 1 << 16
)

// Env carries the collaborators an evaluation may need.
type Env struct {
	// Source feeds the rand operation.
	Source bignum.WordSource
	// Recorder receives one observation per evaluation. It may be nil.
	Recorder *metrics.Recorder
}

// Result is the outcome of one evaluated operation.
type Result struct {
	Op     string
	Values []bignum.Int
	// Labels names each value when there is more than one (quorem).
	Labels   []string
	Duration time.Duration
}

// Value returns the first result value.
func (r Result) Value() bignum.Int {
	if len(r.Values) == 0 {
		return bignum.Int{}
	}
	return r.Values[0]
}

// Operation describes one evaluator entry.
type Operation struct {
	Name    string
	Arity   int
	Summary string
	Labels  []string
	eval    func(env Env, args []bignum.Int) ([]bignum.Int, error)
}

var operations = []Operation{
	{Name: "add", Arity: 2, Summary: "a + b", eval: binary(bignum.Int.Add)},
	{Name: "sub", Arity: 2, Summary: "a - b", eval: binary(bignum.Int.Sub)},
	{Name: "mul", Arity: 2, Summary: "a * b", eval: binary(bignum.Int.Mul)},
	{Name: "div", Arity: 2, Summary: "a / b truncated toward zero", eval: binaryErr(bignum.Int.Quo)},
	{Name: "rem", Arity: 2, Summary: "remainder of div, sign of a", eval: binaryErr(bignum.Int.Rem)},
	{Name: "mod", Arity: 2, Summary: "Euclidean remainder in [0, |b|)", eval: binaryErr(bignum.Int.EucRem)},
	{Name: "quorem", Arity: 2, Summary: "quotient and remainder of div", Labels: []string{"q", "r"}, eval: evalQuoRem},
	{Name: "gcd", Arity: 2, Summary: "greatest common divisor, non-negative", eval: evalGCD},
	{Name: "lcm", Arity: 2, Summary: "least common multiple, non-negative", eval: evalLCM},
	{Name: "pow", Arity: 2, Summary: "a ** n for a small n >= 0", eval: evalPow},
	{Name: "shl", Arity: 2, Summary: "magnitude of a shifted left by k bits", eval: shift(bignum.Nat.Lsh)},
	{Name: "shr", Arity: 2, Summary: "magnitude of a shifted right by k bits", eval: shift(bignum.Nat.Rsh)},
	{Name: "or", Arity: 2, Summary: "bitwise or of two non-negative values", eval: evalOr},
	{Name: "cmp", Arity: 2, Summary: "-1, 0 or 1 as a <, = or > b", eval: evalCmp},
	{Name: "neg", Arity: 1, Summary: "-a", eval: unary(bignum.Int.Neg)},
	{Name: "abs", Arity: 1, Summary: "|a|", eval: unary(bignum.Int.Abs)},
	{Name: "rand", Arity: 1, Summary: "random non-negative value of n words", eval: evalRand},
}

// Operations returns the evaluator entries in display order.
func Operations() []Operation {
	return operations
}

// OperationNames returns the names accepted by Evaluate.
func OperationNames() []string {
	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = op.Name
	}
	return names
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Evaluate parses the hexadecimal operands and evaluates op on them.
func Evaluate(ctx context.Context, env Env, op string, operands []string) (Result, error) {
	args := make([]bignum.Int, len(operands))
	for i, s := range operands {
		v, err := bignum.ParseInt(s)
		if err != nil {
			return Result{Op: op}, apperrors.WrapError(err, "operand %d", i+1)
		}
		args[i] = v
	}
	return EvaluateValues(ctx, env, op, args)
}

// EvaluateValues evaluates op on already parsed operands. Each call is
// traced as one span and recorded in env.Recorder.
//
// The arithmetic itself does not poll ctx, so it runs on its own goroutine
// and EvaluateValues returns ctx.Err() as soon as ctx is done. The abandoned
// computation finishes in the background and its result is dropped.
func EvaluateValues(ctx context.Context, env Env, name string, args []bignum.Int) (Result, error) {
	res := Result{Op: name}
	op, ok := Lookup(name)
	if !ok {
		return res, apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", name)}
	}
	if len(args) != op.Arity {
		return res, apperrors.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("expects %d operand(s), got %d", op.Arity, len(args)),
		}
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "bigcalc."+name)
	defer span.End()
	span.SetAttributes(attribute.String("bigcalc.op", name), attribute.Int("bigcalc.arity", op.Arity))

	start := time.Now()
	values, err := runEval(ctx, op, env, args)
	res.Duration = time.Since(start)
	env.Recorder.ObserveOperation(name, res.Duration, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	res.Values = values
	res.Labels = op.Labels
	span.SetAttributes(attribute.Int("bigcalc.result_bits", values[0].Magnitude().BitLen()))
	return res, nil
}

type evalOutcome struct {
	values []bignum.Int
	err    error
}

func runEval(ctx context.Context, op Operation, env Env, args []bignum.Int) ([]bignum.Int, error) {
	done := make(chan evalOutcome, 1)
	go func() {
		values, err := op.eval(env, args)
		done <- evalOutcome{values, err}
	}()
	select {
	case o := <-done:
		return o.values, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func unary(f func(bignum.Int) bignum.Int) func(Env, []bignum.Int) ([]bignum.Int, error) {
	return func(_ Env, a []bignum.Int) ([]bignum.Int, error) {
		return []bignum.Int{f(a[0])}, nil
	}
}

func binary(f func(bignum.Int, bignum.Int) bignum.Int) func(Env, []bignum.Int) ([]bignum.Int, error) {
	return func(_ Env, a []bignum.Int) ([]bignum.Int, error) {
		return []bignum.Int{f(a[0], a[1])}, nil
	}
}

func binaryErr(f func(bignum.Int, bignum.Int) (bignum.Int, error)) func(Env, []bignum.Int) ([]bignum.Int, error) {
	return func(_ Env, a []bignum.Int) ([]bignum.Int, error) {
		v, err := f(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return []bignum.Int{v}, nil
	}
}

func shift(f func(bignum.Nat, uint) bignum.Nat) func(Env, []bignum.Int) ([]bignum.Int, error) {
	return func(_ Env, a []bignum.Int) ([]bignum.Int, error) {
		k, err := smallOperand(a[1], "k", MaxShift)
		if err != nil {
			return nil, err
		}
		return []bignum.Int{bignum.NewInt(a[0].IsNeg(), f(a[0].Magnitude(), uint(k)))}, nil
	}
}

func evalQuoRem(_ Env, a []bignum.Int) ([]bignum.Int, error) {
	q, r, err := a[0].QuoRem(a[1])
	if err != nil {
		return nil, err
	}
	return []bignum.Int{q, r}, nil
}

func evalGCD(_ Env, a []bignum.Int) ([]bignum.Int, error) {
	g, err := algebra.GCD(a[0], a[1])
	if err != nil {
		return nil, err
	}
	return []bignum.Int{g.Abs()}, nil
}

func evalLCM(_ Env, a []bignum.Int) ([]bignum.Int, error) {
	l, err := algebra.LCM(a[0], a[1])
	if err != nil {
		return nil, err
	}
	return []bignum.Int{l.Abs()}, nil
}

func evalPow(_ Env, a []bignum.Int) ([]bignum.Int, error) {
	if a[1].IsNeg() {
		return nil, apperrors.NewArithmeticError("pow", apperrors.ErrUnsupportedOperation)
	}
	n, err := smallOperand(a[1], "n", MaxPowBits)
	if err != nil {
		return nil, err
	}
	if bits := uint64(a[0].Magnitude().BitLen()); bits > 1 && n > MaxPowBits/bits {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("result would exceed %d bits", MaxPowBits),
		}
	}
	return []bignum.Int{algebra.Power(a[0], n)}, nil
}

func evalOr(_ Env, a []bignum.Int) ([]bignum.Int, error) {
	x, err := a[0].ToNat()
	if err != nil {
		return nil, err
	}
	y, err := a[1].ToNat()
	if err != nil {
		return nil, err
	}
	return []bignum.Int{bignum.IntFromNat(x.Or(y))}, nil
}

func evalCmp(_ Env, a []bignum.Int) ([]bignum.Int, error) {
	return []bignum.Int{bignum.IntFromInt64(int64(a[0].Cmp(a[1])))}, nil
}

func evalRand(env Env, a []bignum.Int) ([]bignum.Int, error) {
	n, err := smallOperand(a[0], "n", MaxRandWords)
	if err != nil {
		return nil, err
	}
	if env.Source == nil {
		return nil, apperrors.ValidationError{Field: "rand", Message: "no random source configured"}
	}
	return []bignum.Int{bignum.IntFromNat(bignum.RandomNat(env.Source, int(n)))}, nil
}

// smallOperand converts x to a native count bounded by limit.
func smallOperand(x bignum.Int, field string, limit uint64) (uint64, error) {
	if x.IsNeg() {
		return 0, apperrors.ValidationError{Field: field, Message: "must not be negative"}
	}
	m := x.Magnitude()
	if m.Len() > 1 || m.Word(0) > limit {
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %#x", limit)}
	}
	return m.Word(0), nil
}
