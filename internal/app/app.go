// Package app wires the configuration, the evaluator, the self-check and
// the terminal front end into the bigcalc application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	dcrrand "github.com/decred/dcrd/crypto/rand"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	In        io.Reader
	ErrWriter io.Writer
	Logger    logging.Logger
	Recorder  *metrics.Recorder
	// Oracles overrides the self-check reference implementations.
	Oracles []orchestration.Oracle
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithOracles sets the reference implementations used by the self-check.
func WithOracles(oracles ...orchestration.Oracle) AppOption {
	return func(a *Application) { a.Oracles = oracles }
}

// WithInput sets the reader the REPL consumes instead of stdin.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithLogger replaces the default console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, orchestration.OperationNames())
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:    cfg,
		In:        os.Stdin,
		ErrWriter: errWriter,
		Recorder:  metrics.NewRecorder(),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newConsoleLogger(errWriter, cfg)
	}
	return app, nil
}

// newConsoleLogger returns a human-readable zerolog logger filtered at the
// configured level.
func newConsoleLogger(w io.Writer, cfg config.AppConfig) logging.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: time.Kitchen}
	zl := zerolog.New(out).Level(logging.ParseLevel(cfg.LogLevel)).With().Timestamp().Logger()
	return logging.NewZerologAdapter(zl)
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.MetricsAddr != "" {
		stopMetrics := a.serveMetrics(ctx)
		defer stopMetrics()
	}

	switch {
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	case a.Config.TUI:
		return a.runDashboard(ctx, out)
	case a.Config.SelfCheck:
		return a.runSelfCheck(ctx, out)
	default:
		return a.runEvaluate(ctx, out)
	}
}

// serveMetrics exposes the recorder until the returned function is called.
func (a *Application) serveMetrics(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Logger.Info("serving metrics", logging.String("addr", a.Config.MetricsAddr))
		if err := a.Recorder.Serve(ctx, a.Config.MetricsAddr); err != nil {
			a.Logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, orchestration.OperationNames()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session. Each evaluation gets the
// configured timeout; the session itself runs until exit or a signal.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	source, err := a.randomSource()
	if err != nil {
		a.Logger.Error("random source unavailable", err)
		return apperrors.ExitErrorGeneric
	}
	repl := cli.NewREPL(cli.REPLConfig{
		Timeout:  a.Config.Timeout,
		Grouped:  a.Config.Verbose,
		Source:   source,
		Recorder: a.Recorder,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// randomSource returns the words fed to the rand operation: a PCG seeded
// from --seed when given, otherwise a cryptographically seeded PRNG.
func (a *Application) randomSource() (bignum.WordSource, error) {
	if a.Config.SeedSet {
		return rand.New(rand.NewPCG(a.Config.Seed, 0)), nil
	}
	prng, err := dcrrand.NewPRNG()
	if err != nil {
		return nil, apperrors.WrapError(err, "seeding random source")
	}
	return prng, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
