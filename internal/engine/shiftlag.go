package engine

import (
	"fmt"
	"math"
)

// ShiftLag sub-score caps.
const (
	shiftLagDebtCap          = 40
	shiftLagMisalignmentCap  = 40
	shiftLagInstabilityCap   = 20
	shiftLagLowThreshold     = 20
	shiftLagModerateThresold = 50
)

// Default biological night used when no sleep midpoint is available.
const (
	defaultBioNightStart = 23
	defaultBioNightEnd   = 7
)

// Fallback shift start times (minutes from midnight) for rostered days that
// carry only a category label.
var estimatedShiftStartMinutes = map[ShiftCategory]float64{
	ShiftNight:     22 * 60,
	ShiftMorning:   6 * 60,
	ShiftDay:       8 * 60,
	ShiftAfternoon: 14 * 60,
}

// ShiftLagLevel classifies the 0-100 ShiftLag score.
type ShiftLagLevel string

const (
	ShiftLagLow      ShiftLagLevel = "low"
	ShiftLagModerate ShiftLagLevel = "moderate"
	ShiftLagHigh     ShiftLagLevel = "high"
)

// ShiftLagDrivers are the human-readable driver lines shown alongside the
// score.
type ShiftLagDrivers struct {
	SleepDebt        string `json:"sleep_debt" example:"Sleep debt (7 days): 5.2h"`
	NightWork        string `json:"night_work" example:"Night work during biological night: 3.1h/shift"`
	ScheduleRotation string `json:"schedule_rotation" example:"Shift start variation: 2.4h"`
}

// ShiftLagMetrics is the composite circadian-strain score.
// @Description ShiftLag score combining sleep debt, biological-night work and
// @Description schedule instability.
type ShiftLagMetrics struct {
	Score                      int             `json:"score" example:"38"`
	Level                      ShiftLagLevel   `json:"level" example:"moderate"`
	SleepDebtScore             int             `json:"sleep_debt_score" example:"20"`
	MisalignmentScore          int             `json:"misalignment_score" example:"15"`
	InstabilityScore           int             `json:"instability_score" example:"3"`
	SleepDebtHours             float64         `json:"sleep_debt_hours" example:"5.2"`
	AvgNightOverlapHours       float64         `json:"avg_night_overlap_hours" example:"3.1"`
	ShiftStartVariabilityHours float64         `json:"shift_start_variability_hours" example:"2.4"`
	Explanation                string          `json:"explanation"`
	Drivers                    ShiftLagDrivers `json:"drivers"`
	// DataSufficient is false when neither sleep nor shift data exists; the
	// zero score then means "unknown", not "no strain".
	DataSufficient bool `json:"data_sufficient"`
}

// CalculateShiftLag scores circadian strain from three components: sleep
// debt against a personal need (cap 40), work overlapping the biological
// night (cap 40) and shift-start instability (cap 20). The biological night
// is centred on circadianMidpointMinutes when available, else 23:00-07:00.
// sleepDays covers the last 7 calendar days; shifts should span at least the
// last 14 rostered days, most recent last.
func CalculateShiftLag(sleepDays []DailySleep, shifts []ShiftDayRecord, circadianMidpointMinutes *float64) ShiftLagMetrics {
	if len(sleepDays) == 0 && len(shifts) == 0 {
		return ShiftLagMetrics{
			Level:       ShiftLagLow,
			Explanation: "Track a few days of sleep and shifts to unlock your ShiftLag score.",
			Drivers: ShiftLagDrivers{
				SleepDebt:        "No data",
				NightWork:        "No data",
				ScheduleRotation: "No data",
			},
		}
	}

	debtHours, debtScore := sleepDebtComponent(sleepDays, shifts)
	overlapHours, misalignmentScore := nightWorkComponent(shifts, circadianMidpointMinutes)
	variabilityHours, instabilityScore := instabilityComponent(shifts)

	score := int(Clamp(float64(debtScore+misalignmentScore+instabilityScore), 0, 100))

	var level ShiftLagLevel
	switch {
	case score <= shiftLagLowThreshold:
		level = ShiftLagLow
	case score <= shiftLagModerateThresold:
		level = ShiftLagModerate
	default:
		level = ShiftLagHigh
	}

	return ShiftLagMetrics{
		Score:                      score,
		Level:                      level,
		SleepDebtScore:             debtScore,
		MisalignmentScore:          misalignmentScore,
		InstabilityScore:           instabilityScore,
		SleepDebtHours:             round1(debtHours),
		AvgNightOverlapHours:       round1(overlapHours),
		ShiftStartVariabilityHours: round1(variabilityHours),
		Explanation:                shiftLagExplanation(level),
		Drivers: ShiftLagDrivers{
			SleepDebt:        debtDriver(debtHours),
			NightWork:        nightWorkDriver(overlapHours),
			ScheduleRotation: rotationDriver(variabilityHours),
		},
		DataSufficient: true,
	}
}

// sleepDebtComponent accumulates shortfall against a personal nightly need:
// the median of off-day sleep clamped to [7, 9] hours, defaulting to 8 when
// no off day reached 3 hours. Days with a rostered work shift never set the
// need; work-night sleep is exactly what the debt measures.
func sleepDebtComponent(sleepDays []DailySleep, shifts []ShiftDayRecord) (debtHours float64, score int) {
	workDays := make(map[string]bool)
	for _, s := range shifts {
		if s.Category.IsWork() {
			workDays[CalendarDayKey(s.Date)] = true
		}
	}

	var offDaySleep []float64
	for _, d := range sleepDays {
		if d.Hours() >= 3 && !workDays[d.Date] {
			offDaySleep = append(offDaySleep, d.Hours())
		}
	}
	need := 8.0
	if len(offDaySleep) > 0 {
		need = Clamp(Median(offDaySleep), 7, 9)
	}

	for _, d := range sleepDays {
		debtHours += math.Max(0, need-d.Hours())
	}

	switch {
	case debtHours <= 3:
		score = 0
	case debtHours <= 7:
		score = int(math.Round((debtHours - 3) / 4 * 20))
	case debtHours <= 14:
		score = int(math.Round(20 + (debtHours-7)/7*15))
	default:
		score = shiftLagDebtCap
	}
	return debtHours, score
}

// nightWorkComponent averages, over the last 5 timed work shifts, the
// overlap between each shift and the biological night window.
func nightWorkComponent(shifts []ShiftDayRecord, midpointMinutes *float64) (avgOverlapHours float64, score int) {
	nightStart, nightEnd := float64(defaultBioNightStart), float64(defaultBioNightEnd)
	if midpointMinutes != nil {
		mid := *midpointMinutes / 60
		nightStart = math.Mod(math.Round(mid-4)+24, 24)
		nightEnd = math.Mod(math.Round(mid+4)+24, 24)
	}

	var timed []ShiftDayRecord
	for i := len(shifts) - 1; i >= 0 && len(timed) < 5; i-- {
		s := shifts[i]
		if s.Category.IsWork() && s.Start != nil && s.End != nil {
			timed = append(timed, s)
		}
	}
	if len(timed) == 0 {
		return 0, 0
	}

	total := 0.0
	for _, s := range timed {
		total += nightOverlapHours(ClockHours(*s.Start), ClockHours(*s.End), nightStart, nightEnd)
	}
	avgOverlapHours = total / float64(len(timed))

	switch {
	case avgOverlapHours <= 2:
		score = 5
	case avgOverlapHours <= 4:
		score = int(math.Round(5 + (avgOverlapHours-2)/2*10))
	case avgOverlapHours <= 6:
		score = int(math.Round(15 + (avgOverlapHours-4)/2*10))
	case avgOverlapHours <= 8:
		score = int(math.Round(25 + (avgOverlapHours-6)/2*10))
	default:
		score = shiftLagMisalignmentCap
	}
	return avgOverlapHours, score
}

// nightOverlapHours intersects a shift with the biological night on an
// unwrapped 0-48h axis. The night window and overnight shift ends are pushed
// past 24 so plain min/max interval math applies; shift bounds earlier than
// the night start belong to the next cycle.
func nightOverlapHours(shiftStart, shiftEnd, nightStart, nightEnd float64) float64 {
	if shiftEnd < shiftStart {
		shiftEnd += 24
	}
	if nightEnd < nightStart {
		nightEnd += 24
	}
	if shiftStart < nightStart {
		shiftStart += 24
	}
	if shiftEnd < nightStart {
		shiftEnd += 24
	}
	return math.Max(0, math.Min(shiftEnd, nightEnd)-math.Max(shiftStart, nightStart))
}

// instabilityComponent measures the spread of shift start times over the
// last 14 work days. Days without a recorded start fall back to a category
// estimate. Fewer than 2 samples scores zero.
func instabilityComponent(shifts []ShiftDayRecord) (variabilityHours float64, score int) {
	var starts []float64
	count := 0
	for i := len(shifts) - 1; i >= 0 && count < 14; i-- {
		s := shifts[i]
		if !s.Category.IsWork() {
			continue
		}
		count++
		if s.Start != nil {
			starts = append(starts, ClockMinutes(*s.Start))
		} else if est, ok := estimatedShiftStartMinutes[s.Category]; ok {
			starts = append(starts, est)
		}
	}
	if len(starts) < 2 {
		return 0, 0
	}

	variabilityHours = StdDev(starts) / 60

	switch {
	case variabilityHours < 2:
		score = 0
	case variabilityHours < 4:
		score = int(math.Round((variabilityHours - 2) / 2 * 5))
	case variabilityHours < 6:
		score = int(math.Round(5 + (variabilityHours-4)/2*5))
	case variabilityHours < 8:
		score = int(math.Round(10 + (variabilityHours-6)/2*5))
	default:
		score = shiftLagInstabilityCap
	}
	return variabilityHours, score
}

func shiftLagExplanation(level ShiftLagLevel) string {
	switch level {
	case ShiftLagLow:
		return "Your body clock is coping well with your current schedule."
	case ShiftLagModerate:
		return "You're carrying some shift lag from your recent shifts."
	default:
		return "Your body clock is out of sync due to recent night shifts and sleep debt."
	}
}

func debtDriver(hours float64) string {
	if hours <= 0.5 {
		return "None"
	}
	return fmt.Sprintf("Sleep debt (7 days): %.1fh", hours)
}

func nightWorkDriver(hours float64) string {
	if hours <= 0.5 {
		return "Minimal"
	}
	return fmt.Sprintf("Night work during biological night: %.1fh/shift", hours)
}

func rotationDriver(hours float64) string {
	if hours < 1 {
		return "Low"
	}
	return fmt.Sprintf("Shift start variation: %.1fh", hours)
}
