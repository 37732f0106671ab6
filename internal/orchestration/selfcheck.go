package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking workers when
// the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// progressSteps is how many updates each worker sends over its share.
const progressSteps = 50

// CheckResult summarizes the cases run for one property.
type CheckResult struct {
	Property string
	Op       string
	Cases    int
	Failures int
	// Elapsed is the evaluation time summed over all workers.
	Elapsed time.Duration
	// FirstFailure describes one failing case, if any.
	FirstFailure string
}

// CheckOptions carries the collaborators of RunSelfCheck.
type CheckOptions struct {
	// Oracles defaults to DefaultOracles when empty.
	Oracles  []Oracle
	Recorder *metrics.Recorder
	Logger   logging.Logger
}

type property struct {
	name string
	op   string
	gen  func(r *rand.Rand, maxWords int) (a, b bignum.Int)
}

var properties = []property{
	{"add", "add", genPair},
	{"sub", "sub", genPair},
	{"mul", "mul", genPair},
	{"div-short", "div", genShortDivisor},
	{"div-long", "div", genLongDivisor},
	{"rem", "rem", genLongDivisor},
	{"mod", "mod", genLongDivisor},
	{"shl", "shl", genShift},
	{"shr", "shr", genShift},
	{"or", "or", genNonNegativePair},
	{"gcd", "gcd", genCommonFactor},
	{"cmp", "cmp", genPair},
}

// PropertyNames returns the self-check properties in run order.
func PropertyNames() []string {
	names := make([]string, len(properties))
	for i, p := range properties {
		names[i] = p.name
	}
	return names
}

// WorkerCount returns the number of workers RunSelfCheck starts for cfg:
// cfg.Workers, or one per CPU when unset, capped by the number of cases.
func WorkerCount(cfg config.AppConfig) int {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return max(1, min(workers, len(properties)*cfg.Iterations))
}

type tally struct {
	cases    int
	failures int
	elapsed  time.Duration
	first    string
}

// RunSelfCheck evaluates cfg.Iterations random cases per property on
// cfg.Workers goroutines and compares every result with each oracle.
//
// Case i belongs to worker i mod workers, and each worker draws from its own
// PCG seeded with (cfg.Seed, worker index), so a run is reproducible for a
// given seed and worker count.
//
// Parameters:
//   - ctx: Cancels the run; partial results are still returned.
//   - cfg: Iterations, MaxWords, Workers and Seed drive the run.
//   - opts: Oracles, metrics and logging.
//   - progressReporter: Displays worker progress (NullProgressReporter for quiet mode).
//   - out: The writer handed to progressReporter.
//
// Returns:
//   - []CheckResult: One row per property, in run order.
//   - error: The context error if the run was interrupted.
func RunSelfCheck(ctx context.Context, cfg config.AppConfig, opts CheckOptions, progressReporter ProgressReporter, out io.Writer) ([]CheckResult, error) {
	oracles := opts.Oracles
	if len(oracles) == 0 {
		oracles = DefaultOracles()
	}
	total := len(properties) * cfg.Iterations
	workers := WorkerCount(cfg)

	tallies := make([][]tally, workers)
	progressChan := make(chan ProgressUpdate, workers*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, workers, out)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		tallies[w] = make([]tally, len(properties))
		g.Go(func() error {
			return runWorker(ctx, w, workers, total, cfg, oracles, opts, tallies[w], progressChan)
		})
	}
	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	results := make([]CheckResult, len(properties))
	for i, p := range properties {
		res := CheckResult{Property: p.name, Op: p.op}
		for w := range tallies {
			t := tallies[w][i]
			res.Cases += t.cases
			res.Failures += t.failures
			res.Elapsed += t.elapsed
			if res.FirstFailure == "" {
				res.FirstFailure = t.first
			}
		}
		results[i] = res
	}
	return results, err
}

func runWorker(ctx context.Context, w, workers, total int, cfg config.AppConfig, oracles []Oracle, opts CheckOptions, tallies []tally, progressChan chan<- ProgressUpdate) error {
	r := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))
	share := (total - w + workers - 1) / workers
	step := max(1, share/progressSteps)
	done := 0

	for c := w; c < total; c += workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		pi := c % len(properties)
		p := properties[pi]
		a, b := p.gen(r, cfg.MaxWords)

		start := time.Now()
		failure := checkCase(ctx, p, a, b, oracles)
		if err := ctx.Err(); err != nil {
			return err
		}
		t := &tallies[pi]
		t.elapsed += time.Since(start)
		t.cases++

		outcome := metrics.OutcomeOK
		if failure != "" {
			outcome = metrics.OutcomeMismatch
			t.failures++
			if t.first == "" {
				t.first = failure
			}
			if opts.Logger != nil {
				opts.Logger.Warn("self-check mismatch",
					logging.String("property", p.name),
					logging.Int("worker", w),
					logging.String("case", failure))
			}
		}
		opts.Recorder.ObserveCase(p.name, outcome)

		done++
		if done%step == 0 || done == share {
			select {
			case progressChan <- ProgressUpdate{WorkerIndex: w, Value: float64(done) / float64(share)}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// checkCase evaluates one case and returns a description of the first
// disagreement, or "" when every oracle agrees.
func checkCase(ctx context.Context, p property, a, b bignum.Int, oracles []Oracle) string {
	res, err := EvaluateValues(ctx, Env{}, p.op, []bignum.Int{a, b})
	if err != nil {
		return fmt.Sprintf("%s(%s, %s): unexpected error: %v", p.op, short(a), short(b), err)
	}
	got := toBig(res.Value())
	for _, o := range oracles {
		want, ok := o.Eval(p.op, toBig(a), toBig(b))
		if !ok {
			continue
		}
		if got.Cmp(want) != 0 {
			return fmt.Sprintf("%s(%s, %s) = %s, %s says %s",
				p.op, short(a), short(b), short(res.Value()), o.Name(), format.TruncateHex(fmt.Sprintf("%#x", want), 64, 16))
		}
	}
	return ""
}

func short(x bignum.Int) string {
	return format.TruncateHex(x.Text(), 64, 16)
}

// AnalyzeCheckResults presents the self-check table and derives the exit
// code: ExitErrorMismatch when any case failed.
func AnalyzeCheckResults(results []CheckResult, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentCheckTable(results, out)

	cases, failures := 0, 0
	for _, r := range results {
		cases += r.Cases
		failures += r.Failures
	}
	if failures > 0 {
		fmt.Fprintf(out, "\nGlobal Status: FAILURE. %s of %s cases disagree with a reference implementation.\n",
			format.FormatNumberString(fmt.Sprint(failures)), format.FormatNumberString(fmt.Sprint(cases)))
		return apperrors.ExitErrorMismatch
	}
	fmt.Fprintf(out, "\nGlobal Status: Success. All %s cases agree.\n", format.FormatNumberString(fmt.Sprint(cases)))
	return apperrors.ExitSuccess
}

// edgeSource biases words toward the values that exercise carries, borrows
// and the quotient-estimate corrections of long division.
type edgeSource struct{ r *rand.Rand }

func (s edgeSource) Uint64() uint64 {
	switch s.r.IntN(8) {
	case 0:
		return 0
	case 1:
		return math.MaxUint64
	case 2:
		return 1 << 63
	case 3:
		return 1
	default:
		return s.r.Uint64()
	}
}

func randomInt(r *rand.Rand, maxWords int) bignum.Int {
	return bignum.RandomInt(edgeSource{r}, 1+r.IntN(maxWords))
}

func genPair(r *rand.Rand, maxWords int) (bignum.Int, bignum.Int) {
	return randomInt(r, maxWords), randomInt(r, maxWords)
}

func genNonNegativePair(r *rand.Rand, maxWords int) (bignum.Int, bignum.Int) {
	a, b := genPair(r, maxWords)
	return a.Abs(), b.Abs()
}

func genShortDivisor(r *rand.Rand, maxWords int) (bignum.Int, bignum.Int) {
	a := randomInt(r, maxWords)
	for {
		if b := bignum.RandomInt(edgeSource{r}, 1); !b.IsZero() {
			return a, b
		}
	}
}

func genLongDivisor(r *rand.Rand, maxWords int) (bignum.Int, bignum.Int) {
	a := randomInt(r, maxWords)
	for {
		if b := randomInt(r, maxWords); !b.IsZero() {
			return a, b
		}
	}
}

func genShift(r *rand.Rand, maxWords int) (bignum.Int, bignum.Int) {
	return randomInt(r, maxWords), bignum.IntFromInt64(r.Int64N(int64(2*maxWords*bignum.WordBits) + 1))
}

// genCommonFactor draws operands sharing a random factor, since independent
// random values are almost always coprime.
func genCommonFactor(r *rand.Rand, maxWords int) (bignum.Int, bignum.Int) {
	half := max(1, maxWords/2)
	c := randomInt(r, half)
	return randomInt(r, half).Mul(c), randomInt(r, half).Mul(c)
}
