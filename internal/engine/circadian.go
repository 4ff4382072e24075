package engine

import (
	"math"
	"time"
)

// IdealMidpointMinutes is the optimal circadian sleep midpoint (03:00),
// expressed as minutes from midnight.
const IdealMidpointMinutes = 3 * 60

// Factor blend weights for the alignment score.
const (
	circadianDurationWeight    = 0.30
	circadianTimingWeight      = 0.30
	circadianDebtWeight        = 0.20
	circadianConsistencyWeight = 0.20
)

// shiftPhaseAdjust nudges the blended alignment score by current shift
// category. Tuned by observation, not derived from a model.
var shiftPhaseAdjust = map[ShiftCategory]float64{
	ShiftMorning:   +10,
	ShiftDay:       0,
	ShiftAfternoon: -5,
	ShiftNight:     -15,
	ShiftOff:       0,
}

// CircadianPhaseLabel is the textual phase classification.
type CircadianPhaseLabel string

const (
	PhaseAligned   CircadianPhaseLabel = "aligned"
	PhaseDelayed   CircadianPhaseLabel = "delayed"
	PhaseAdvanced  CircadianPhaseLabel = "advanced"
	PhaseDisrupted CircadianPhaseLabel = "disrupted"
)

// CircadianInput carries the pre-aggregated signals for the phase
// calculation. The caller guarantees at least one valid dated main-sleep
// record backs SleepStart/SleepEnd; the calculator does not self-validate.
type CircadianInput struct {
	SleepStart           time.Time
	SleepEnd             time.Time
	AvgBedtimeMinutes    float64 // rolling average over up to 14 main sleeps
	AvgWakeMinutes       float64
	BedtimeStdDevMinutes float64 // wrap-aware
	SleepDurationHours   float64
	SleepDebtHours       float64 // weekly, from CalculateSleepDeficit
	Shift                ShiftCategory
}

// CircadianFactors are the four 0-100 sub-factors behind the alignment
// score.
type CircadianFactors struct {
	Duration    float64 `json:"duration"`
	Timing      float64 `json:"timing"`
	Debt        float64 `json:"debt"`
	Consistency float64 `json:"consistency"`
}

// CircadianPhase is the alignment result.
// @Description Circadian alignment score and phase classification.
type CircadianPhase struct {
	AlignmentScore  float64             `json:"alignment_score" example:"72.5"`
	Phase           CircadianPhaseLabel `json:"phase" example:"aligned"`
	MidpointMinutes float64             `json:"midpoint_minutes" example:"225"`
	AvgBedtime      float64             `json:"avg_bedtime_minutes" example:"1380"`
	AvgWakeTime     float64             `json:"avg_wake_minutes" example:"420"`
	Factors         CircadianFactors    `json:"factors"`
}

// CalculateCircadianPhase blends duration adequacy, timing fit against the
// 03:00 midpoint ideal, sleep-debt pressure and bedtime consistency (each
// mapped onto 0-100) with fixed weights, then applies a shift-category
// adjustment and clamps into [0, 100].
func CalculateCircadianPhase(in CircadianInput) CircadianPhase {
	midpointMinutes := sleepMidpointMinutes(in.SleepStart, in.SleepEnd)

	// Wrap-aware deviation from the 03:00 ideal, in hours.
	deviation := math.Abs(midpointMinutes - IdealMidpointMinutes)
	deviation = math.Min(deviation, 1440-deviation)
	hoursDeviation := deviation / 60

	factors := CircadianFactors{
		Duration:    MapRange(in.SleepDurationHours, 5, 8, 20, 100),
		Timing:      MapRange(hoursDeviation, 0, 6, 100, 10),
		Debt:        MapRange(in.SleepDebtHours, 2, 8, 100, 20),
		Consistency: MapRange(in.BedtimeStdDevMinutes, 30, 120, 100, 40),
	}

	score := factors.Duration*circadianDurationWeight +
		factors.Timing*circadianTimingWeight +
		factors.Debt*circadianDebtWeight +
		factors.Consistency*circadianConsistencyWeight
	score += shiftPhaseAdjust[in.Shift]
	score = Clamp(score, 0, 100)

	return CircadianPhase{
		AlignmentScore:  round1(score),
		Phase:           phaseLabel(score, midpointMinutes),
		MidpointMinutes: midpointMinutes,
		AvgBedtime:      in.AvgBedtimeMinutes,
		AvgWakeTime:     in.AvgWakeMinutes,
		Factors:         factors,
	}
}

// sleepMidpointMinutes is the latest sleep's midpoint as minutes from
// midnight (0-1440).
func sleepMidpointMinutes(start, end time.Time) float64 {
	midUnix := (start.Unix() + end.Unix()) / 2
	return ClockMinutes(time.Unix(midUnix, 0).In(start.Location()))
}

func phaseLabel(score, midpointMinutes float64) CircadianPhaseLabel {
	if score >= 70 {
		return PhaseAligned
	}
	if score < 40 {
		return PhaseDisrupted
	}
	// Direction of drift decides between delayed and advanced.
	if signedWrapHours((midpointMinutes-IdealMidpointMinutes)/60) > 0 {
		return PhaseDelayed
	}
	return PhaseAdvanced
}
