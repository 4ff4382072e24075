package engine

import (
	"math"
	"strings"
	"time"
)

// Final blend weights for the 0-10 total.
const (
	rhythmSleepWeight     = 0.60
	rhythmNutritionWeight = 0.25
	rhythmActivityWeight  = 0.15
)

// Sleep composite weights.
const (
	rhythmDurationWeight   = 0.35
	rhythmRegularityWeight = 0.25
	rhythmPatternWeight    = 0.20
	rhythmRecoveryWeight   = 0.20
)

// bedtimeRewardWindow defines the per-category bedtime window and its score
// range. Windows whose end extends past 24 wrap over midnight: a 01:00
// bedtime is scored as 25:00. The hour thresholds are tuned constants, not
// derived values; change them here, not inline.
type bedtimeRewardWindow struct {
	fromHour, toHour   float64
	minScore, maxScore float64
}

var bedtimeRewards = map[ShiftCategory]bedtimeRewardWindow{
	ShiftNight:     {20, 26, 70, 100},
	ShiftMorning:   {20, 23, 70, 95},
	ShiftAfternoon: {21, 24, 70, 90},
	ShiftDay:       {21, 23, 70, 95},
}

const (
	alignmentOffDayScore  = 80
	alignmentNoShiftScore = 70
	nightRecoveryPenalty  = 10
)

// MacroTarget is a target-type nutrition metric: closer to target is better.
// A zero target means "not set" and yields a neutral default.
type MacroTarget struct {
	Target   float64
	Consumed float64
}

// LimitTarget is a limit-type nutrition metric: lower consumption relative
// to the cap is better, the inverse of MacroTarget.
type LimitTarget struct {
	Limit    float64
	Consumed float64
}

// NutritionSnapshot is the day's intake versus targets.
type NutritionSnapshot struct {
	CalorieTarget    float64
	ConsumedCalories float64
	Protein          MacroTarget
	Carbs            MacroTarget
	Fat              MacroTarget
	SatFat           LimitTarget
	Caffeine         LimitTarget
	WaterTargetML    float64
	WaterConsumedML  float64
}

// ActivitySnapshot is the day's movement versus goals.
type ActivitySnapshot struct {
	Steps             float64
	StepsGoal         float64
	ActiveMinutes     float64
	ActiveMinutesGoal float64
}

// MealWindow is a recommended eating window for a named slot.
type MealWindow struct {
	Slot        string
	WindowStart string // HH:mm
	WindowEnd   string // HH:mm
}

// MealTimingSnapshot pairs recommended windows with actually logged meals.
type MealTimingSnapshot struct {
	Recommended []MealWindow
	Actual      []MealEvent
}

// ShiftRhythmInputs feeds the composite score. Sleep must be ordered most
// recent first; only the first 7 main sessions are used.
type ShiftRhythmInputs struct {
	Sleep            []SleepSession
	Shifts           []ShiftDayRecord
	Nutrition        NutritionSnapshot
	Activity         ActivitySnapshot
	MealTiming       MealTimingSnapshot
	TargetSleepHours float64
}

// ShiftRhythmScore is the dashboard composite. Sub-scores are 0-100; the
// total is 0-10 with one decimal.
// @Description Composite shift-rhythm score with 0-100 sub-scores.
type ShiftRhythmScore struct {
	SleepScore        int     `json:"sleep_score" example:"85"`
	RegularityScore   int     `json:"regularity_score" example:"92"`
	ShiftPatternScore int     `json:"shift_pattern_score" example:"78"`
	RecoveryScore     int     `json:"recovery_score" example:"81"`
	NutritionScore    int     `json:"nutrition_score" example:"74"`
	ActivityScore     int     `json:"activity_score" example:"88"`
	MealTimingScore   int     `json:"meal_timing_score" example:"75"`
	TotalScore        float64 `json:"total_score" example:"8.2"`
}

// CalculateShiftRhythm blends sleep quality, regularity, shift alignment and
// recovery with nutrition, activity and meal-timing adherence into a single
// 0-10 score. Every ratio guards against a zero target.
func CalculateShiftRhythm(in ShiftRhythmInputs) ShiftRhythmScore {
	target := in.TargetSleepHours
	if target <= 0 {
		target = DefaultRequiredDailyHours
	}

	recent := recentMainSleep(in.Sleep, 7)
	shiftByDate := make(map[string]ShiftDayRecord, len(in.Shifts))
	for _, s := range in.Shifts {
		shiftByDate[CalendarDayKey(s.Date)] = s
	}

	sleepScore := sleepDurationScore(recent, target)
	regularityScore := regularityScore(recent)
	patternScore := shiftPatternScore(recent, shiftByDate)
	recoveryScore := recoveryScore(recent, shiftByDate)

	sleepComposite := Clamp(
		sleepScore*rhythmDurationWeight+
			regularityScore*rhythmRegularityWeight+
			patternScore*rhythmPatternWeight+
			recoveryScore*rhythmRecoveryWeight,
		0, 100)

	nutritionScore := nutritionScore(in.Nutrition)
	activityScore := activityScore(in.Activity)
	mealTimingScore := mealTimingScore(in.MealTiming)

	total := sleepComposite*rhythmSleepWeight +
		nutritionScore*rhythmNutritionWeight +
		activityScore*rhythmActivityWeight

	return ShiftRhythmScore{
		SleepScore:        int(math.Round(sleepScore)),
		RegularityScore:   int(math.Round(regularityScore)),
		ShiftPatternScore: int(math.Round(patternScore)),
		RecoveryScore:     int(math.Round(recoveryScore)),
		NutritionScore:    int(math.Round(nutritionScore)),
		ActivityScore:     int(math.Round(activityScore)),
		MealTimingScore:   int(math.Round(mealTimingScore)),
		TotalScore:        round1(total / 10),
	}
}

func recentMainSleep(sessions []SleepSession, n int) []SleepSession {
	out := make([]SleepSession, 0, n)
	for _, s := range sessions {
		if !s.IsMain {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

// sleepDurationScore maps the 7-day average duration against
// [0.6*target, 1.1*target] onto [25, 100].
func sleepDurationScore(sleep []SleepSession, target float64) float64 {
	durations := make([]float64, 0, len(sleep))
	for _, s := range sleep {
		durations = append(durations, s.DurationHours)
	}
	return MapRange(Mean(durations), target*0.6, target*1.1, 25, 100)
}

// regularityScore maps wrap-aware bedtime spread [0, 3.5]h onto [100, 40].
func regularityScore(sleep []SleepSession) float64 {
	bedtimes := make([]float64, 0, len(sleep))
	for _, s := range sleep {
		bedtimes = append(bedtimes, ClockHours(s.Start))
	}
	return MapRange(CircularStdDevHours(bedtimes), 0, 3.5, 100, 40)
}

// shiftPatternScore rewards bedtimes that fit the day's shift category and
// averages across the window. Days without a shift record score 70, off
// days 80.
func shiftPatternScore(sleep []SleepSession, shiftByDate map[string]ShiftDayRecord) float64 {
	scores := make([]float64, 0, len(sleep))
	for _, s := range sleep {
		shift, ok := shiftByDate[CalendarDayKey(s.Date)]
		if !ok {
			scores = append(scores, alignmentNoShiftScore)
			continue
		}
		window, ok := bedtimeRewards[shift.Category]
		if !ok {
			scores = append(scores, alignmentOffDayScore)
			continue
		}
		bedtime := ClockHours(s.Start)
		if window.toHour >= 24 && bedtime < 12 {
			bedtime += 24
		}
		scores = append(scores, MapRange(bedtime, window.fromHour, window.toHour, window.minScore, window.maxScore))
	}
	if len(scores) == 0 {
		return alignmentNoShiftScore
	}
	return Mean(scores)
}

// recoveryScore blends duration adequacy (60%) with quality adequacy (40%)
// per sleep, docking a flat penalty when the previous day was a night shift.
func recoveryScore(sleep []SleepSession, shiftByDate map[string]ShiftDayRecord) float64 {
	scores := make([]float64, 0, len(sleep))
	for _, s := range sleep {
		quality := float64(s.Quality)
		if quality == 0 {
			quality = 3
		}
		durationScore := MapRange(s.DurationHours, 5, 9, 30, 100)
		qualityScore := MapRange(quality, 1, 5, 30, 100)

		penalty := 0.0
		prevKey := CalendarDayKey(s.Date.AddDate(0, 0, -1))
		if prev, ok := shiftByDate[prevKey]; ok && prev.Category == ShiftNight {
			penalty = nightRecoveryPenalty
		}
		scores = append(scores, Clamp(durationScore*0.6+qualityScore*0.4-penalty, 20, 100))
	}
	if len(scores) == 0 {
		return alignmentNoShiftScore
	}
	return Mean(scores)
}

func nutritionScore(n NutritionSnapshot) float64 {
	calorieRatio := 1.0
	if n.CalorieTarget > 0 {
		calorieRatio = n.ConsumedCalories / n.CalorieTarget
	}
	calorieScore := MapRange(calorieRatio, 0.7, 1.1, 50, 100)

	var macroScores []float64
	if n.Protein.Target > 0 {
		macroScores = append(macroScores, MapRange(n.Protein.Consumed/n.Protein.Target, 0.8, 1.1, 60, 100))
	}
	if n.Carbs.Target > 0 {
		macroScores = append(macroScores, MapRange(n.Carbs.Consumed/n.Carbs.Target, 0.8, 1.15, 65, 100))
	}
	if n.Fat.Target > 0 {
		macroScores = append(macroScores, MapRange(n.Fat.Consumed/n.Fat.Target, 0.7, 1.2, 60, 98))
	}
	if n.SatFat.Limit > 0 {
		// Limit metric: staying well under the cap scores highest.
		macroScores = append(macroScores, MapRange(n.SatFat.Consumed/n.SatFat.Limit, 0.3, 1.0, 100, 55))
	}
	macroScore := 80.0
	if len(macroScores) > 0 {
		macroScore = Clamp(Mean(macroScores), 40, 100)
	}

	waterScore := 80.0
	if n.WaterTargetML > 0 {
		waterScore = MapRange(n.WaterConsumedML/n.WaterTargetML, 0.6, 1.0, 55, 100)
	}
	caffeineScore := 85.0
	if n.Caffeine.Limit > 0 {
		caffeineScore = MapRange(n.Caffeine.Consumed/n.Caffeine.Limit, 0.2, 1.1, 100, 50)
	}
	hydrationScore := Clamp(waterScore*0.7+caffeineScore*0.3, 40, 100)

	return Clamp(calorieScore*0.4+macroScore*0.4+hydrationScore*0.2, 0, 100)
}

func activityScore(a ActivitySnapshot) float64 {
	stepsGoal := a.StepsGoal
	if stepsGoal <= 0 {
		stepsGoal = 10000
	}
	stepsScore := MapRange(a.Steps/stepsGoal, 0.5, 1.1, 60, 100)

	activeScore := 80.0
	if a.ActiveMinutesGoal > 0 {
		activeScore = MapRange(a.ActiveMinutes/a.ActiveMinutesGoal, 0.5, 1.1, 60, 100)
	}
	return Clamp(stepsScore*0.75+activeScore*0.25, 0, 100)
}

// mealTimingScore gives full credit for meals inside their recommended
// window and partial credit decaying linearly with distance from the window
// start. Absence of any recommendation or logged meal is neutral (75), never
// a penalty.
func mealTimingScore(mt MealTimingSnapshot) float64 {
	if len(mt.Recommended) == 0 || len(mt.Actual) == 0 {
		return 75
	}

	scores := make([]float64, 0, len(mt.Actual))
	for _, meal := range mt.Actual {
		window, ok := findWindow(mt.Recommended, meal.Slot)
		if !ok {
			scores = append(scores, 70)
			continue
		}
		windowStart, okStart := atClock(meal.LoggedAt, window.WindowStart)
		windowEnd, okEnd := atClock(meal.LoggedAt, window.WindowEnd)
		if !okStart || !okEnd {
			scores = append(scores, 70)
			continue
		}
		if !meal.LoggedAt.Before(windowStart) && !meal.LoggedAt.After(windowEnd) {
			scores = append(scores, 95)
			continue
		}
		diffMinutes := math.Abs(meal.LoggedAt.Sub(windowStart).Minutes())
		scores = append(scores, MapRange(diffMinutes, 30, 180, 90, 60))
	}
	return Clamp(Mean(scores), 40, 100)
}

func findWindow(windows []MealWindow, slot string) (MealWindow, bool) {
	for _, w := range windows {
		if strings.EqualFold(w.Slot, slot) {
			return w, true
		}
	}
	return MealWindow{}, false
}

// atClock places an HH:mm clock value onto t's calendar day.
func atClock(t time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, t.Location()), true
}
