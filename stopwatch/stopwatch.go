// Package stopwatch is a small wall-clock timing utility for benchmarks. Each
// Stopwatch is a caller-owned value, so timers can nest or run concurrently
// without shared state.
package stopwatch

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Stopwatch measures one labeled interval.
type Stopwatch struct {
	label string
	start time.Time
	out   io.Writer
}

// Start begins timing a labeled interval, reporting to stdout on Stop.
func Start(label string) *Stopwatch {
	return StartWithWriter(label, os.Stdout)
}

// StartWithWriter begins timing a labeled interval, reporting to w on Stop.
func StartWithWriter(label string, w io.Writer) *Stopwatch {
	return &Stopwatch{label: label, start: time.Now(), out: w}
}

// Elapsed returns the time since Start without reporting.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Restart rewinds the interval to now, keeping the label and writer.
func (s *Stopwatch) Restart() {
	s.start = time.Now()
}

// Stop reports the elapsed wall time as "  <label>: <n> ms" and returns it.
func (s *Stopwatch) Stop() time.Duration {
	d := time.Since(s.start)
	fmt.Fprintf(s.out, "  %s: %.3f ms\n", s.label, float64(d.Nanoseconds())/1e6)
	return d
}
