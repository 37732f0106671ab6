package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the self-check configuration to the user:
// case counts, operand sizes, the seed that reproduces the run and the
// environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - workers: The resolved worker count.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, workers int, out io.Writer) {
	properties := orchestration.PropertyNames()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Checking %s%d%s properties with %s%d%s cases each, operands up to %s%d%s words, timeout %s%s%s.\n",
		ui.ColorMagenta(), len(properties), ui.ColorReset(),
		ui.ColorMagenta(), cfg.Iterations, ui.ColorReset(),
		ui.ColorMagenta(), cfg.MaxWords, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Seed: %s%d%s (rerun with --seed %d --workers %d to reproduce).\n",
		ui.ColorCyan(), cfg.Seed, ui.ColorReset(), cfg.Seed, workers)
	fmt.Fprintf(out, "Environment: %s%d%s workers, %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), workers, ui.ColorReset(),
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
