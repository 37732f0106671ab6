package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

var testOps = []string{"add", "sub", "mul", "div", "neg", "rand"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("bigcalc", []string{"add", "0x1", "0x2"}, io.Discard, testOps)
	require.NoError(t, err)

	assert.Equal(t, "add", cfg.Op)
	assert.Equal(t, []string{"0x1", "0x2"}, cfg.Operands)
	assert.Equal(t, DefaultIterations, cfg.Iterations)
	assert.Equal(t, DefaultMaxWords, cfg.MaxWords)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.SeedSet)
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "short aliases",
			args: []string{"-q", "-o", "out.txt", "NEG", "-0x5"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.True(t, cfg.Quiet)
				assert.Equal(t, "out.txt", cfg.OutputFile)
				assert.Equal(t, "neg", cfg.Op, "operation names are case-insensitive")
				assert.Equal(t, []string{"-0x5"}, cfg.Operands)
			},
		},
		{
			name: "repl needs no operation",
			args: []string{"-i"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.True(t, cfg.REPL)
				assert.Empty(t, cfg.Op)
			},
		},
		{
			name: "selfcheck tuning",
			args: []string{"--selfcheck", "--iterations", "20", "--max-words", "3", "--workers", "2", "--seed", "99"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.True(t, cfg.SelfCheck)
				assert.Equal(t, 20, cfg.Iterations)
				assert.Equal(t, 3, cfg.MaxWords)
				assert.Equal(t, 2, cfg.Workers)
				assert.Equal(t, uint64(99), cfg.Seed)
				assert.True(t, cfg.SeedSet)
			},
		},
		{
			name: "tui implies selfcheck",
			args: []string{"--tui", "--workers", "3"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.True(t, cfg.TUI)
				assert.True(t, cfg.SelfCheck)
				assert.Equal(t, 3, cfg.Workers)
			},
		},
		{
			name: "completion",
			args: []string{"--completion", "zsh"},
			check: func(t *testing.T, cfg AppConfig) {
				assert.Equal(t, "zsh", cfg.Completion)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("bigcalc", tt.args, io.Discard, testOps)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no operation", nil},
		{"unknown operation", []string{"frobnicate", "0x1"}},
		{"zero timeout", []string{"--timeout", "0s", "add"}},
		{"negative iterations", []string{"--selfcheck", "--iterations", "-1"}},
		{"max words too large", []string{"--selfcheck", "--max-words", "100000"}},
		{"quiet and verbose", []string{"-q", "-v", "add"}},
		{"repl and selfcheck", []string{"--repl", "--selfcheck"}},
		{"repl and tui", []string{"--repl", "--tui"}},
		{"tui and quiet", []string{"--tui", "-q"}},
		{"unknown shell", []string{"--completion", "tcsh"}},
		{"unknown log level", []string{"--log-level", "loud", "add"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("bigcalc", tt.args, io.Discard, testOps)
			var cfgErr apperrors.ConfigError
			require.Error(t, err)
			assert.True(t, errors.As(err, &cfgErr), "want ConfigError, got %T: %v", err, err)
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err))
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("bigcalc", []string{"-h"}, io.Discard, testOps)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"ITERATIONS", "42")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")
	t.Setenv(EnvPrefix+"SEED", "0x10")
	t.Setenv(EnvPrefix+"VERBOSE", "yes")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "debug")

	cfg, err := ParseConfig("bigcalc", []string{"--selfcheck"}, io.Discard, testOps)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Iterations)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, uint64(16), cfg.Seed)
	assert.True(t, cfg.SeedSet)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"ITERATIONS", "42")
	t.Setenv(EnvPrefix+"QUIET", "true")
	t.Setenv(EnvPrefix+"OUTPUT", "env.txt")

	cfg, err := ParseConfig("bigcalc", []string{"--iterations", "7", "-o", "flag.txt", "--selfcheck"}, io.Discard, testOps)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, "flag.txt", cfg.OutputFile)
	assert.True(t, cfg.Quiet, "unset flags still take the environment value")
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBoolEnv(tt.in, tt.def), "parseBoolEnv(%q, %v)", tt.in, tt.def)
	}
}
