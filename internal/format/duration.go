package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders an operation time in the coarsest unit
// that still keeps it non-zero: whole nanoseconds below 1µs, whole
// microseconds below 1ms, whole milliseconds below 1s, and d.String()
// above. Single-word arithmetic routinely lands in the nanosecond range.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
