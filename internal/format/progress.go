package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the displayed estimate; anything slower reads as a day.
const maxETA = 24 * time.Hour

// ProgressState tracks the completion fraction of a fixed set of workers.
type ProgressState struct {
	mu         sync.Mutex
	progresses []float64
	numWorkers int
}

// NewProgressState creates a ProgressState for numWorkers workers, all at 0.
func NewProgressState(numWorkers int) *ProgressState {
	if numWorkers < 0 {
		numWorkers = 0
	}
	return &ProgressState{
		progresses: make([]float64, numWorkers),
		numWorkers: numWorkers,
	}
}

// Update sets the progress of worker index. Out-of-range indices are ignored
// and the value is clamped to [0, 1].
func (p *ProgressState) Update(index int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.progresses) {
		return
	}
	p.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress over all workers.
func (p *ProgressState) CalculateAverage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.averageLocked()
}

func (p *ProgressState) averageLocked() float64 {
	if p.numWorkers == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progresses {
		sum += v
	}
	return sum / float64(p.numWorkers)
}

// ProgressWithETA extends ProgressState with a running completion rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker for numWorkers workers, starting the
// clock now.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numWorkers),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records the progress of worker index and returns the new
// average together with the estimated remaining time.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA estimates the remaining time from the current rate. It returns 0
// while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	secs := remaining / p.progressRate
	if secs > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(secs * float64(time.Second))
}

// FormatETA renders an estimate compactly: "45s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders a bar of length cells for a fraction in [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines a bar, a percentage and the estimate.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = clamp01(progress)
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
