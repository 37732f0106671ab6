package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	dcrrand "github.com/decred/dcrd/crypto/rand"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// runEvaluate evaluates the single operation given on the command line.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	env := orchestration.Env{Recorder: a.Recorder}
	if a.Config.Op == "rand" {
		source, err := a.randomSource()
		if err != nil {
			return a.reportError(err)
		}
		env.Source = source
	}

	result, err := orchestration.Evaluate(ctx, env, a.Config.Op, a.Config.Operands)
	if errors.Is(err, context.DeadlineExceeded) {
		return a.reportError(apperrors.TimeoutError{Operation: a.Config.Op, Limit: a.Config.Timeout})
	}
	if err != nil {
		return a.reportError(apperrors.CalculationError{Op: a.Config.Op, Cause: err})
	}
	a.Logger.Debug("evaluated",
		logging.String("op", result.Op),
		logging.Int("values", len(result.Values)),
		logging.String("duration", result.Duration.String()))

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Grouped:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, result, a.Config.Operands, outputCfg); err != nil {
		return a.reportError(err)
	}
	return apperrors.ExitSuccess
}

// reportError prints err and maps it to an exit code.
func (a *Application) reportError(err error) int {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	return apperrors.ExitCodeFor(err)
}

// runSelfCheck runs the randomized cross-check and reports the summary.
func (a *Application) runSelfCheck(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	cfg, workers := a.prepareSelfCheck()

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		cli.PrintExecutionConfig(cfg, workers, out)
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	opts := orchestration.CheckOptions{
		Oracles:  a.Oracles,
		Recorder: a.Recorder,
		Logger:   a.Logger,
	}
	results, err := orchestration.RunSelfCheck(ctx, cfg, opts, progressReporter, progressOut)
	usage := collector.Snapshot().Since(before)

	summaryOut := out
	if cfg.Quiet {
		summaryOut = io.Discard
	}
	code := orchestration.AnalyzeCheckResults(results, cli.CLIResultPresenter{}, summaryOut)
	if cfg.Verbose {
		cli.DisplaySystemStats(sysmon.Sample(), usage, out)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "selfcheck", Limit: cfg.Timeout}
		}
		a.Logger.Error("self-check interrupted", err, logging.Uint64("seed", cfg.Seed))
		return apperrors.ExitCodeFor(err)
	}
	if code != apperrors.ExitSuccess {
		a.Logger.Warn("self-check found mismatches", logging.Uint64("seed", cfg.Seed))
	}
	if cfg.Quiet {
		fmt.Fprintln(out, selfCheckVerdict(code))
	}
	return code
}

// prepareSelfCheck draws a seed when none was given and logs the run
// parameters, so every run can be reproduced from the log.
func (a *Application) prepareSelfCheck() (config.AppConfig, int) {
	cfg := a.Config
	if !cfg.SeedSet {
		cfg.Seed = dcrrand.Uint64()
	}
	workers := orchestration.WorkerCount(cfg)
	a.Logger.Info("self-check starting",
		logging.Uint64("seed", cfg.Seed),
		logging.Int("workers", workers),
		logging.Int("iterations", cfg.Iterations),
		logging.Int("max_words", cfg.MaxWords))
	return cfg, workers
}

// runDashboard runs the self-check inside the full-screen dashboard.
// Mismatches are not logged per case while the dashboard owns the terminal.
func (a *Application) runDashboard(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	cfg, _ := a.prepareSelfCheck()
	opts := orchestration.CheckOptions{Oracles: a.Oracles, Recorder: a.Recorder}
	code := tui.Run(ctx, cfg, opts, Version, out)
	if code != apperrors.ExitSuccess {
		a.Logger.Warn("self-check did not pass",
			logging.Uint64("seed", cfg.Seed),
			logging.Int("exit_code", code))
	}
	return code
}

func selfCheckVerdict(code int) string {
	if code == apperrors.ExitSuccess {
		return "ok"
	}
	return "mismatch"
}
