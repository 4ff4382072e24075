package engine

import (
	"testing"
	"time"
)

func TestCalculateCircadianPhase(t *testing.T) {
	tests := []struct {
		name      string
		in        CircadianInput
		wantScore float64
		wantPhase CircadianPhaseLabel
	}{
		{
			name: "textbook sleeper is fully aligned",
			in: CircadianInput{
				SleepStart:           time.Date(2026, 1, 9, 23, 0, 0, 0, time.UTC),
				SleepEnd:             time.Date(2026, 1, 10, 7, 0, 0, 0, time.UTC),
				BedtimeStdDevMinutes: 0,
				SleepDurationHours:   8,
				SleepDebtHours:       0,
				Shift:                ShiftDay,
			},
			wantScore: 100,
			wantPhase: PhaseAligned,
		},
		{
			name: "night shift docks the score but stays aligned",
			in: CircadianInput{
				SleepStart:           time.Date(2026, 1, 9, 23, 0, 0, 0, time.UTC),
				SleepEnd:             time.Date(2026, 1, 10, 7, 0, 0, 0, time.UTC),
				SleepDurationHours:   8,
				SleepDebtHours:       0,
				Shift:                ShiftNight,
			},
			wantScore: 85,
			wantPhase: PhaseAligned,
		},
		{
			name: "inverted sleeper on nights is disrupted",
			in: CircadianInput{
				SleepStart:           time.Date(2026, 1, 9, 11, 0, 0, 0, time.UTC),
				SleepEnd:             time.Date(2026, 1, 9, 19, 0, 0, 0, time.UTC),
				BedtimeStdDevMinutes: 120,
				SleepDurationHours:   8,
				SleepDebtHours:       8,
				Shift:                ShiftNight,
			},
			// duration 100, timing 10, debt 20, consistency 40, minus 15.
			wantScore: 30,
			wantPhase: PhaseDisrupted,
		},
		{
			name: "late midpoint with middling score reads delayed",
			in: CircadianInput{
				SleepStart:           time.Date(2026, 1, 9, 5, 0, 0, 0, time.UTC),
				SleepEnd:             time.Date(2026, 1, 9, 13, 0, 0, 0, time.UTC),
				BedtimeStdDevMinutes: 75,
				SleepDurationHours:   8,
				SleepDebtHours:       5,
				Shift:                ShiftDay,
			},
			// duration 100, timing 10, debt 60, consistency 70.
			wantScore: 59,
			wantPhase: PhaseDelayed,
		},
		{
			name: "early midpoint with middling score reads advanced",
			in: CircadianInput{
				SleepStart:           time.Date(2026, 1, 9, 17, 0, 0, 0, time.UTC),
				SleepEnd:             time.Date(2026, 1, 10, 1, 0, 0, 0, time.UTC),
				BedtimeStdDevMinutes: 75,
				SleepDurationHours:   8,
				SleepDebtHours:       5,
				Shift:                ShiftDay,
			},
			wantScore: 59,
			wantPhase: PhaseAdvanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCircadianPhase(tt.in)
			if !almostEqual(got.AlignmentScore, tt.wantScore) {
				t.Errorf("AlignmentScore = %v, want %v", got.AlignmentScore, tt.wantScore)
			}
			if got.Phase != tt.wantPhase {
				t.Errorf("Phase = %v, want %v", got.Phase, tt.wantPhase)
			}
			if got.AlignmentScore < 0 || got.AlignmentScore > 100 {
				t.Errorf("AlignmentScore %v outside [0, 100]", got.AlignmentScore)
			}
		})
	}
}

func TestCircadianMidpointWrapsOverMidnight(t *testing.T) {
	// 23:00 to 07:00 has its midpoint at 03:00 even though the clock wraps.
	got := CalculateCircadianPhase(CircadianInput{
		SleepStart:         time.Date(2026, 1, 9, 23, 0, 0, 0, time.UTC),
		SleepEnd:           time.Date(2026, 1, 10, 7, 0, 0, 0, time.UTC),
		SleepDurationHours: 8,
		Shift:              ShiftDay,
	})
	if !almostEqual(got.MidpointMinutes, 180) {
		t.Errorf("MidpointMinutes = %v, want 180", got.MidpointMinutes)
	}
}
