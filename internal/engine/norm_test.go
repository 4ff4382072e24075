package engine

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		name                           string
		v, inMin, inMax, outMin, outMax float64
		want                           float64
	}{
		{"midpoint", 5, 0, 10, 0, 100, 50},
		{"clamps below input range", -3, 0, 10, 0, 100, 0},
		{"clamps above input range", 15, 0, 10, 0, 100, 100},
		{"inverted output range", 2, 0, 10, 100, 0, 80},
		{"degenerate input range", 5, 3, 3, 40, 90, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRange(tt.v, tt.inMin, tt.inMax, tt.outMin, tt.outMax)
			if !almostEqual(got, tt.want) {
				t.Errorf("MapRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"odd length", []float64{5, 1, 3}, 3},
		{"even length averages middles", []float64{1, 2, 3, 10}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.xs); !almostEqual(got, tt.want) {
				t.Errorf("Median() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStdDevIsPopulation(t *testing.T) {
	// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almostEqual(got, 2) {
		t.Errorf("StdDev() = %v, want 2", got)
	}
}

func TestWrapDiffHours(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"around midnight", 23, 1, 2},
		{"symmetric", 1, 23, 2},
		{"maximum separation", 6, 18, 12},
		{"same clock", 3.5, 3.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapDiffHours(tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("WrapDiffHours(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got < 0 || got > 12 {
				t.Errorf("WrapDiffHours(%v, %v) = %v, outside [0, 12]", tt.a, tt.b, got)
			}
		})
	}
}

func TestCircularStdDevHours(t *testing.T) {
	// 23:30 and 00:30 are one hour apart; a naive stddev would see 11.5.
	got := CircularStdDevHours([]float64{23.5, 0.5})
	if !almostEqual(got, 0.5) {
		t.Errorf("CircularStdDevHours() = %v, want 0.5", got)
	}

	if got := CircularStdDevHours([]float64{22}); got != 0 {
		t.Errorf("single sample = %v, want 0", got)
	}
}

func TestCircularMeanHours(t *testing.T) {
	tests := []struct {
		name  string
		hours []float64
		want  float64
	}{
		{"empty", nil, 0},
		{"straddles midnight", []float64{23.5, 0.5}, 0},
		{"reversed straddle", []float64{1, 23}, 0},
		{"plain evening times", []float64{22, 23}, 22.5},
		{"single sample", []float64{3.25}, 3.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircularMeanHours(tt.hours); !almostEqual(got, tt.want) {
				t.Errorf("CircularMeanHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceDayKey(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"before 07:00 belongs to previous day", time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC), "2026-01-09"},
		{"at 07:00 starts a new day", time.Date(2026, 1, 10, 7, 0, 0, 0, time.UTC), "2026-01-10"},
		{"evening stays on its own day", time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC), "2026-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServiceDayKey(tt.t); got != tt.want {
				t.Errorf("ServiceDayKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClockHours(t *testing.T) {
	got := ClockHours(time.Date(2026, 1, 10, 14, 30, 0, 0, time.UTC))
	if !almostEqual(got, 14.5) {
		t.Errorf("ClockHours() = %v, want 14.5", got)
	}
}
