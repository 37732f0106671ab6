// Package config parses and validates the command-line configuration of
// bigcalc. Values are resolved with the priority CLI flags > environment
// variables (prefixed with EnvPrefix) > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "BIGCALC_"

// Default values for the tunable flags.
const (
	DefaultIterations = 500
	DefaultMaxWords   = 8
	DefaultTimeout    = 5 * time.Minute
	DefaultLogLevel   = "info"

	// MaxMaxWords bounds the operand size used by the self-check.
	MaxMaxWords = 4096
)

// AppConfig aggregates every setting that drives a bigcalc run.
type AppConfig struct {
	// Op is the operation named by the first positional argument.
	Op string
	// Operands are the remaining positional arguments, unparsed.
	Operands []string

	// REPL starts the interactive session.
	REPL bool
	// SelfCheck runs the randomized cross-check against the reference oracles.
	SelfCheck bool
	// TUI shows the self-check as a full-screen dashboard. It implies
	// SelfCheck.
	TUI bool
	// Iterations is the number of random cases per self-check property.
	Iterations int
	// MaxWords is the largest operand size, in words, drawn by the self-check.
	MaxWords int
	// Workers is the self-check concurrency; 0 means one per CPU.
	Workers int
	// Seed seeds the deterministic generators. SeedSet reports whether it
	// was given explicitly.
	Seed    uint64
	SeedSet bool

	Timeout     time.Duration
	Quiet       bool
	Verbose     bool
	NoColor     bool
	MetricsAddr string
	LogLevel    string
	// Completion names a shell for which to print a completion script.
	Completion string
	// OutputFile receives a copy of the result when non-empty.
	OutputFile string
}

// ParseConfig parses command-line arguments into an AppConfig.
//
// Parameters:
//   - programName: The name used in usage messages.
//   - args: The arguments, without the program name.
//   - errorWriter: Where flag errors and usage are written.
//   - availableOps: The operation names accepted as the first positional argument.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.BoolVar(&config.REPL, "repl", false, "Start an interactive session.")
	fs.BoolVar(&config.REPL, "i", false, "Shorthand for --repl.")
	fs.BoolVar(&config.SelfCheck, "selfcheck", false, "Cross-check the arithmetic against reference implementations.")
	fs.BoolVar(&config.TUI, "tui", false, "Run the self-check in a full-screen dashboard.")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "Random cases per self-check property.")
	fs.IntVar(&config.MaxWords, "max-words", DefaultMaxWords, "Maximum operand size in 64-bit words for the self-check.")
	fs.IntVar(&config.Workers, "workers", 0, "Self-check workers (0 = number of CPUs).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for deterministic random operands.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print word-grouped values and timings.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] <op> <a> [b]\n\n", programName)
		fmt.Fprintf(errorWriter, "Operations: %s\n", strings.Join(availableOps, ", "))
		fmt.Fprintf(errorWriter, "Operands are hexadecimal with an optional 0x prefix and leading '-'.\n\n")
		fmt.Fprintln(errorWriter, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.SeedSet = isFlagSet(fs, "seed")

	applyEnvOverrides(&config, fs)

	if config.TUI {
		config.SelfCheck = true
	}

	if rest := fs.Args(); len(rest) > 0 {
		config.Op = strings.ToLower(rest[0])
		config.Operands = rest[1:]
	}

	if err := config.Validate(availableOps); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableOps: The operation names accepted for single evaluation.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableOps []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("the timeout must be strictly positive")
	}
	if c.Iterations <= 0 {
		return apperrors.NewConfigError("--iterations must be positive, got %d", c.Iterations)
	}
	if c.MaxWords <= 0 || c.MaxWords > MaxMaxWords {
		return apperrors.NewConfigError("--max-words must be in [1, %d], got %d", MaxMaxWords, c.MaxWords)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("--workers cannot be negative")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.REPL && c.SelfCheck {
		return apperrors.NewConfigError("--repl and --selfcheck are mutually exclusive")
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet are mutually exclusive")
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported shell for --completion: %q", c.Completion)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigError("unknown log level: %q", c.LogLevel)
	}

	// Single evaluation is the mode left when no other mode is selected.
	if c.REPL || c.SelfCheck || c.Completion != "" {
		return nil
	}
	if c.Op == "" {
		return apperrors.NewConfigError("no operation given")
	}
	if !slices.Contains(availableOps, c.Op) {
		return apperrors.NewConfigError("unrecognized operation: %q", c.Op)
	}
	return nil
}
