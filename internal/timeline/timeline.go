// Package timeline synthesises the time axis of an animation.
package timeline

import (
	"math"
	"time"
)

// ISO 8601 layouts with seconds
// resolution and an explicit numeric offset.
const (
	isoLayout      = "2006-01-02T15:04:05-07:00"
	isoMicroLayout = "2006-01-02T15:04:05.000000-07:00"
)

// Step and span limits. Timestamps are printed with microsecond precision,
// so shorter steps would collapse onto the same instant.
const (
	MinStep = time.Microsecond
	MaxSpan = 100 * 365 * 24 * time.Hour
)

// Clock supplies the start instant of a timeline.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Fixed is a Clock that always returns the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Generate returns total instants starting at clock.Now() in UTC, each step apart.
// The clock is read exactly once.
func Generate(clock Clock, total int, step time.Duration) []time.Time {
	if clock == nil {
		clock = SystemClock{}
	}
	if total <= 0 {
		return []time.Time{}
	}

	start := clock.Now().UTC()
	times := make([]time.Time, total)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * step)
	}
	return times
}

// Seconds converts a step length in (possibly fractional) seconds to a
// Duration rounded to whole microseconds. The caller keeps s within MaxSpan.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s*1e6)) * time.Microsecond
}

// FormatISO renders t in UTC as ISO 8601. Sub-second precision is printed
// with microseconds only when present.
func FormatISO(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(isoLayout)
	}
	return t.Truncate(time.Microsecond).Format(isoMicroLayout)
}
