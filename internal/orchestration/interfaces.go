package orchestration

import (
	"io"
	"sync"
	"time"
)

// ProgressUpdate is the completion fraction reported by one self-check worker.
type ProgressUpdate struct {
	// WorkerIndex identifies the reporting worker.
	WorkerIndex int
	// Value is the fraction of the worker's cases done, in [0, 1].
	Value float64
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
	// Grouped selects the word-grouped debug form instead of the compact
	// hexadecimal literal.
	Grouped bool
}

// ProgressReporter defines the interface for displaying self-check progress.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer focuses on running the
// cases.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting evaluation and
// self-check results.
type ResultPresenter interface {
	// PresentResult displays the values of an evaluated operation.
	PresentResult(result Result, opts PresentationOptions, out io.Writer)

	// PresentCheckTable displays the per-property self-check summary.
	PresentCheckTable(results []CheckResult, out io.Writer)

	// FormatDuration formats durations for display.
	FormatDuration(d time.Duration) string
}
