package engine

import (
	"math"
	"sort"
	"time"
)

// ServiceDayStartHour is the boundary of a "service day": midpoint-based
// metrics bucket sleep into 07:00-to-07:00 days so that a session starting at
// 02:00 still belongs to the day that began the previous morning. Duration
// metrics use plain calendar days instead; the two must not be unified.
const ServiceDayStartHour = 7

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// MapRange clamps v into [inMin, inMax] and rescales it linearly onto
// [outMin, outMax]. A degenerate input range yields outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if span == 0 {
		return outMin
	}
	ratio := (Clamp(v, inMin, inMax) - inMin) / span
	return outMin + ratio*(outMax-outMin)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the median, averaging the two middle elements for
// even-length input. Returns 0 for an empty slice.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// StdDev returns the population standard deviation.
func StdDev(xs []float64) float64 {
	if len(xs) <= 1 {
		return 0
	}
	mean := Mean(xs)
	sumSquares := 0.0
	for _, x := range xs {
		diff := x - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(xs)))
}

// WrapDiffHours returns the absolute difference between two clock values in
// hours, corrected for the 24-hour cycle: 23:00 and 01:00 are 2 hours apart,
// never 22. The result is always in [0, 12].
func WrapDiffHours(a, b float64) float64 {
	d := math.Abs(a - b)
	d = math.Mod(d, 24)
	if d > 12 {
		d = 24 - d
	}
	return d
}

// signedWrapHours maps an hour delta onto (-12, 12].
func signedWrapHours(d float64) float64 {
	d = math.Mod(d, 24)
	if d > 12 {
		d -= 24
	}
	if d <= -12 {
		d += 24
	}
	return d
}

// CircularStdDevHours computes the standard deviation of clock-hour samples
// with wrap-around correction, so bedtimes of 23:30 and 00:30 count as one
// hour apart. Offsets are unwrapped relative to the first sample.
func CircularStdDevHours(hours []float64) float64 {
	if len(hours) <= 1 {
		return 0
	}
	ref := hours[0]
	offsets := make([]float64, len(hours))
	for i, h := range hours {
		offsets[i] = signedWrapHours(h - ref)
	}
	return StdDev(offsets)
}

// CircularMeanHours averages clock-hour samples with the same wrap-around
// correction, so bedtimes of 23:30 and 00:30 average to midnight rather
// than noon. The result is normalized into [0, 24).
func CircularMeanHours(hours []float64) float64 {
	if len(hours) == 0 {
		return 0
	}
	ref := hours[0]
	sum := 0.0
	for _, h := range hours {
		sum += signedWrapHours(h - ref)
	}
	return math.Mod(ref+sum/float64(len(hours))+24, 24)
}

// ClockHours converts a time to hours-from-midnight in its own location
// (0-24, fractional).
func ClockHours(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// ClockMinutes converts a time to minutes-from-midnight in its own location.
func ClockMinutes(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}

// CalendarDayKey buckets a time into its calendar day (YYYY-MM-DD) in the
// time's own location.
func CalendarDayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ServiceDayKey buckets a time into its 07:00-to-07:00 service day. Times
// before 07:00 belong to the day that started the previous morning.
func ServiceDayKey(t time.Time) string {
	if t.Hour() < ServiceDayStartHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format("2006-01-02")
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
