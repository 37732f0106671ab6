package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bignum"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running self-check.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for colorized
// terminal output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult displays the values of an evaluated operation.
func (CLIResultPresenter) PresentResult(result orchestration.Result, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// PresentCheckTable displays the self-check summary with one row per
// property. Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentCheckTable(results []orchestration.CheckResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.CurrentStyles().Header.Render("--- Self-check Summary ---"))

	maxNameLen := len("Property")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Property))
	}

	fmt.Fprintf(out, "%sProperty%s%s   %sCases%s    %sTime%s        %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Property")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ OK%s", ui.ColorGreen(), ui.ColorReset())
		if res.Failures > 0 {
			status = fmt.Sprintf("%s❌ %d mismatch(es)%s", ui.ColorRed(), res.Failures, ui.ColorReset())
		}
		elapsed := format.FormatExecutionDuration(res.Elapsed)
		fmt.Fprintf(out, "%s%s%s%s   %-8d %s%-11s%s %s\n",
			ui.ColorBlue(), res.Property, ui.ColorReset(), padRight("", maxNameLen-len(res.Property)),
			res.Cases,
			ui.ColorYellow(), elapsed, ui.ColorReset(),
			status)
	}

	for _, res := range results {
		if res.FirstFailure != "" {
			fmt.Fprintf(out, "\n%sFirst %s failure:%s %s\n", ui.ColorRed(), res.Property, ui.ColorReset(), res.FirstFailure)
		}
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// FormatValue renders v for display. Grouped selects the word-grouped
// debug form; truncate shortens long values to their edges.
func FormatValue(v bignum.Int, grouped, truncate bool) string {
	if grouped {
		return v.String()
	}
	s := v.Text()
	if truncate {
		return format.TruncateHex(s, TruncationLimit, HexDisplayEdges)
	}
	return s
}

// DisplayResult writes the values of result to out. Quiet mode prints one
// bare value per line; otherwise each value is labelled and long values are
// truncated unless Verbose is set, which also adds sizes and timing.
func DisplayResult(result orchestration.Result, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		for _, v := range result.Values {
			fmt.Fprintln(out, FormatValue(v, opts.Grouped, false))
		}
		return
	}

	for i, v := range result.Values {
		label := result.Op
		if i < len(result.Labels) {
			label = result.Labels[i]
		}
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
			ui.ColorBold(), label, ui.ColorReset(),
			ui.ColorGreen(), FormatValue(v, opts.Grouped, !opts.Verbose), ui.ColorReset())
		if opts.Verbose {
			mag := v.Magnitude()
			fmt.Fprintf(out, "  %s%d bits, %d words%s\n", ui.ColorGrey(), mag.BitLen(), mag.Len(), ui.ColorReset())
		}
	}
	if opts.Verbose {
		fmt.Fprintf(out, "Evaluated %s%s%s in %s%s%s\n",
			ui.ColorCyan(), result.Op, ui.ColorReset(),
			ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	}
}

// DisplaySystemStats shows the host and process figures gathered around a
// self-check run.
func DisplaySystemStats(stats sysmon.Stats, usage metrics.MemoryUsage, out io.Writer) {
	fmt.Fprintf(out, "\nSystem: %s\n", stats)
	fmt.Fprintf(out, "Memory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(usage.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(usage.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", usage.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(usage.PauseTotalNs)/1e6)
}
