package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// BingeRiskLevel classifies the 0-100 binge-risk score.
type BingeRiskLevel string

const (
	BingeRiskLow    BingeRiskLevel = "low"
	BingeRiskMedium BingeRiskLevel = "medium"
	BingeRiskHigh   BingeRiskLevel = "high"
)

const (
	bingeRiskHighThreshold   = 70
	bingeRiskMediumThreshold = 30
	bingeBaselineScore       = 5
)

// BingeRiskInputs feeds the binge-risk calculation. Sleep, Shifts and Meals
// must be ordered most recent first and cover roughly the last 7 days. The
// pointer fields are optional upstream signals; nil means unavailable.
type BingeRiskInputs struct {
	Sleep  []SleepSession
	Shifts []ShiftDayRecord
	Meals  []MealEvent
	Now    time.Time

	AlignmentScore *float64 // circadian alignment, 0-100
	SleepDebtHours *float64 // weekly deficit, signed
	ShiftLagScore  *float64 // 0-100

	ActivityIntensity string // today's shift intensity, "" unknown
}

// BingeRisk is the overeating-risk result.
// @Description Binge-risk score with the top contributing drivers.
type BingeRisk struct {
	Score       int            `json:"score" example:"45"`
	Level       BingeRiskLevel `json:"level" example:"medium"`
	Drivers     []string       `json:"drivers"`
	Explanation string         `json:"explanation"`
	// DataSufficient is false when no recent sleep exists; the baseline score
	// of 5 then reflects missing data, not assessed low risk.
	DataSufficient bool `json:"data_sufficient"`
}

// CalculateBingeRisk sums risk contributions from recent sleep, shift
// pattern, physical demand, meal timing, circadian strain and time of day,
// clamps into [0, 100] and keeps the top 3 drivers. Without any recent sleep
// it returns a fixed low baseline regardless of stale debt or lag numbers.
func CalculateBingeRisk(in BingeRiskInputs) BingeRisk {
	if len(in.Sleep) == 0 {
		return BingeRisk{
			Score:   bingeBaselineScore,
			Level:   BingeRiskLow,
			Drivers: []string{"Not enough sleep, shift or meal data yet"},
			Explanation: "Binge risk stays low until we have a few days of sleep, shift and meal data. " +
				"Log your rota and sleep to unlock personalised binge-risk coaching.",
		}
	}

	score := 0
	var drivers []string
	addDriver := func(d string) { drivers = append(drivers, d) }
	hasDriver := func(substr string) bool {
		for _, d := range drivers {
			if strings.Contains(d, substr) {
				return true
			}
		}
		return false
	}

	lastSleep := in.Sleep[0]
	lastSleepHours := lastSleep.DurationHours

	switch {
	case lastSleepHours < 4:
		score += 40
		addDriver(fmt.Sprintf("Very low sleep (%s)", formatHoursMinutes(lastSleepHours)))
	case lastSleepHours < 5:
		score += 35
		addDriver(fmt.Sprintf("Low sleep (%s)", formatHoursMinutes(lastSleepHours)))
	case lastSleepHours < 6:
		score += 25
		addDriver(fmt.Sprintf("Low sleep (%s)", formatHoursMinutes(lastSleepHours)))
	case lastSleepHours < 7:
		score += 15
		if !hasDriver("sleep") {
			addDriver(fmt.Sprintf("Moderate sleep (%s)", formatHoursMinutes(lastSleepHours)))
		}
	}

	if lastSleep.Quality != 0 && lastSleep.Quality < 3 {
		score += 10
		if !hasDriver("quality") {
			addDriver("Poor sleep quality")
		}
	}

	if in.SleepDebtHours != nil && *in.SleepDebtHours > 0 {
		debt := *in.SleepDebtHours
		switch {
		case debt > 14:
			score += 20
			addDriver(fmt.Sprintf("High sleep debt (%.1fh)", debt))
		case debt > 7:
			score += 12
			addDriver(fmt.Sprintf("Sleep debt (%.1fh)", debt))
		case debt > 3:
			score += 6
		}
	}

	todayKey := CalendarDayKey(in.Now)
	currentShift, hasCurrentShift := findShiftByDate(in.Shifts, todayKey)
	isNightShift := hasCurrentShift && currentShift.Category == ShiftNight

	switch {
	case isNightShift:
		score += 25
		addDriver("Night shift")
	case justFinishedNightShift(in.Shifts, in.Now):
		score += 20
		addDriver("Post-night shift")
	}

	if quickTurnaround(in.Shifts, in.Sleep) {
		score += 15
		addDriver("Quick shift turnaround")
	}

	// Night shifts commonly run 12h or longer; treated as a long-shift proxy
	// until actual shift times carry hour counts.
	if isNightShift {
		score += 8
	}

	switch in.ActivityIntensity {
	case "intense":
		score += 15
		if !hasDriver("Intense") && !hasDriver("activity") {
			addDriver("Intense shift (high physical demand)")
		}
	case "busy":
		score += 10
		if !hasDriver("Busy") && !hasDriver("activity") {
			addDriver("Busy shift (elevated activity)")
		}
	case "moderate":
		score += 5
	}

	if len(in.Meals) > 0 {
		lastMeal := in.Meals[0]
		hoursSinceMeal := in.Now.Sub(lastMeal.LoggedAt).Hours()
		switch {
		case hoursSinceMeal > 16:
			score += 20
			addDriver(fmt.Sprintf("Very long fasting window (%dh)", int(math.Round(hoursSinceMeal))))
		case hoursSinceMeal > 14:
			score += 15
			addDriver(fmt.Sprintf("Long fasting window (%dh)", int(math.Round(hoursSinceMeal))))
		case hoursSinceMeal > 12:
			score += 10
			addDriver(fmt.Sprintf("Extended fasting (%dh)", int(math.Round(hoursSinceMeal))))
		}
		if h := lastMeal.LoggedAt.Hour(); h >= 0 && h < 6 {
			score += 8
			addDriver("Eating during biological night")
		}
	} else {
		score += 15
		addDriver("No meals logged today")
	}

	if in.AlignmentScore != nil && *in.AlignmentScore < 50 {
		score += 8
		addDriver("Circadian misalignment")
	}
	if in.ShiftLagScore != nil && *in.ShiftLagScore > 50 {
		score += 6
		if !hasDriver("misalignment") {
			addDriver("High shift lag")
		}
	}

	// Evening and small hours carry the highest snacking pressure.
	hour := in.Now.Hour()
	switch {
	case hour >= 20 || hour < 2:
		score += 8
	case hour >= 18 || hour < 4:
		score += 5
	}

	finalScore := int(Clamp(float64(score), 0, 100))

	level := BingeRiskLow
	switch {
	case finalScore >= bingeRiskHighThreshold:
		level = BingeRiskHigh
	case finalScore >= bingeRiskMediumThreshold:
		level = BingeRiskMedium
	}

	explanation := bingeExplanation(level, drivers, lastSleepHours, isNightShift)

	if len(drivers) > 3 {
		drivers = drivers[:3]
	}
	return BingeRisk{
		Score:          finalScore,
		Level:          level,
		Drivers:        drivers,
		Explanation:    explanation,
		DataSufficient: true,
	}
}

func findShiftByDate(shifts []ShiftDayRecord, dateKey string) (ShiftDayRecord, bool) {
	for _, s := range shifts {
		if CalendarDayKey(s.Date) == dateKey {
			return s, true
		}
	}
	return ShiftDayRecord{}, false
}

// justFinishedNightShift reports whether yesterday was a night shift and the
// clock is still in the morning recovery window.
func justFinishedNightShift(shifts []ShiftDayRecord, now time.Time) bool {
	yesterdayKey := CalendarDayKey(now.AddDate(0, 0, -1))
	shift, ok := findShiftByDate(shifts, yesterdayKey)
	if !ok || shift.Category != ShiftNight {
		return false
	}
	return ClockHours(now) < 12
}

// quickTurnaround approximates back-to-back shifts with too little sleep
// between them: two consecutive working days plus a recent sleep under 6h.
func quickTurnaround(shifts []ShiftDayRecord, sleep []SleepSession) bool {
	if len(shifts) < 2 {
		return false
	}
	if !shifts[0].Category.IsWork() || !shifts[1].Category.IsWork() {
		return false
	}
	for i, s := range sleep {
		if i == 2 {
			break
		}
		if s.DurationHours < 6 {
			return true
		}
	}
	return false
}

func formatHoursMinutes(hours float64) string {
	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func bingeExplanation(level BingeRiskLevel, drivers []string, lastSleepHours float64, isNightShift bool) string {
	mainDriver := ""
	if len(drivers) > 0 {
		mainDriver = drivers[0]
	}

	switch level {
	case BingeRiskHigh:
		if isNightShift {
			return fmt.Sprintf("You're at high risk of overeating tonight. You got %s sleep and you're on nights. Eat every 3-4 hours to avoid bingeing.", formatHoursMinutes(lastSleepHours))
		}
		if strings.Contains(mainDriver, "fasting") || strings.Contains(mainDriver, "meal") {
			return fmt.Sprintf("High risk tonight. You slept %s and haven't eaten in a while. Have a meal now, then another in 3-4 hours.", formatHoursMinutes(lastSleepHours))
		}
		return fmt.Sprintf("High risk tonight. You slept %s and %s. Eat every 3-4 hours today.", formatHoursMinutes(lastSleepHours), strings.ToLower(mainDriver))
	case BingeRiskMedium:
		issue := mainDriver
		switch {
		case issue == "":
			issue = "You need to watch your eating"
		case strings.Contains(issue, "sleep"):
			issue = "You're short on sleep"
		case strings.Contains(issue, "fasting") || strings.Contains(issue, "meal"):
			issue = "Long gap since last meal"
		case strings.Contains(issue, "debt"):
			issue = "You're building sleep debt"
		case strings.Contains(issue, "shift"):
			issue = "Your shift pattern is tough"
		}
		return fmt.Sprintf("Moderate risk. %s. Eat every 4-5 hours today.", issue)
	default:
		return "Low risk. You're doing well. Keep eating regularly and getting enough sleep."
	}
}
