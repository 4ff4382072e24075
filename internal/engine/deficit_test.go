package engine

import (
	"testing"
	"time"
)

func dailySleepWeek(now time.Time, minutesPerDay float64) []DailySleep {
	days := make([]DailySleep, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, DailySleep{
			Date:         CalendarDayKey(now.AddDate(0, 0, -i)),
			TotalMinutes: minutesPerDay,
		})
	}
	return days
}

func TestCalculateSleepDeficit(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		days         []DailySleep
		wantWeekly   float64
		wantCategory DeficitCategory
		wantSufficient bool
	}{
		{
			name:           "no data reports zero, not a 52 hour hole",
			days:           nil,
			wantWeekly:     0,
			wantCategory:   DeficitLow,
			wantSufficient: false,
		},
		{
			name:           "on target all week",
			days:           dailySleepWeek(now, 450),
			wantWeekly:     0,
			wantCategory:   DeficitLow,
			wantSufficient: true,
		},
		{
			name:           "five hours a night accumulates high deficit",
			days:           dailySleepWeek(now, 300),
			wantWeekly:     17.5,
			wantCategory:   DeficitHigh,
			wantSufficient: true,
		},
		{
			name:           "surplus clamps at -8",
			days:           dailySleepWeek(now, 540),
			wantWeekly:     -8,
			wantCategory:   DeficitSurplus,
			wantSufficient: true,
		},
		{
			name: "deficit clamps at 20",
			days: []DailySleep{
				{Date: CalendarDayKey(now), TotalMinutes: 30},
			},
			wantWeekly:     20,
			wantCategory:   DeficitHigh,
			wantSufficient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSleepDeficit(tt.days, 7.5, now)
			if !almostEqual(got.WeeklyDeficit, tt.wantWeekly) {
				t.Errorf("WeeklyDeficit = %v, want %v", got.WeeklyDeficit, tt.wantWeekly)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %v, want %v", got.Category, tt.wantCategory)
			}
			if got.DataSufficient != tt.wantSufficient {
				t.Errorf("DataSufficient = %v, want %v", got.DataSufficient, tt.wantSufficient)
			}
			if len(got.Daily) != 7 {
				t.Errorf("len(Daily) = %d, want 7", len(got.Daily))
			}
		})
	}
}

func TestCalculateSleepDeficitSignedDays(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	// One 9h day offsets part of a short week.
	days := []DailySleep{
		{Date: CalendarDayKey(now), TotalMinutes: 540},
		{Date: CalendarDayKey(now.AddDate(0, 0, -1)), TotalMinutes: 360},
	}

	got := CalculateSleepDeficit(days, 7.5, now)

	// Day 0: -1.5, day -1: +1.5, five empty days: +7.5 each = 37.5, clamped.
	if !almostEqual(got.WeeklyDeficit, 20) {
		t.Fatalf("unexpected weekly deficit %v", got.WeeklyDeficit)
	}
	for _, d := range got.Daily {
		if d.Date == CalendarDayKey(now) && !almostEqual(d.Deficit, -1.5) {
			t.Errorf("surplus day deficit = %v, want -1.5", d.Deficit)
		}
	}
}
