// Package orchestration evaluates calculator operations and runs the
// randomized self-check that cross-validates the arithmetic against
// reference implementations on concurrent workers. It decouples the work
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
