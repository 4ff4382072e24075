package engine

import "time"

const (
	// DefaultRequiredDailyHours is the default nightly sleep requirement.
	DefaultRequiredDailyHours = 7.5

	// Weekly deficit is clamped into this range before categorization.
	minWeeklyDeficit = -8.0
	maxWeeklyDeficit = 20.0
)

// DeficitCategory classifies the weekly deficit.
type DeficitCategory string

const (
	DeficitSurplus DeficitCategory = "surplus"
	DeficitLow     DeficitCategory = "low"
	DeficitMedium  DeficitCategory = "medium"
	DeficitHigh    DeficitCategory = "high"
)

// SleepDeficitDay is one day of the deficit breakdown.
type SleepDeficitDay struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Required float64 `json:"required"`
	Actual   float64 `json:"actual"`
	Deficit  float64 `json:"deficit"`
}

// SleepDeficit is the weekly sleep-deficit result.
// @Description Weekly sleep deficit against the required nightly hours.
type SleepDeficit struct {
	RequiredDaily float64           `json:"required_daily" example:"7.5"`
	WeeklyDeficit float64           `json:"weekly_deficit" example:"4.5"`
	Daily         []SleepDeficitDay `json:"daily"`
	Category      DeficitCategory   `json:"category" example:"medium"`
	// DataSufficient is false when the window contains no sleep at all; the
	// weekly deficit is then 0 and must not be read as "fully rested".
	DataSufficient bool `json:"data_sufficient"`
}

// CalculateSleepDeficit aggregates main-sleep totals per calendar day over
// the 7 days ending at now. Days absent from the input count as zero sleep.
// Per-day deficit is signed so surplus days offset short days; the weekly
// sum is clamped to [-8, 20] hours.
func CalculateSleepDeficit(days []DailySleep, requiredDailyHours float64, now time.Time) SleepDeficit {
	if requiredDailyHours <= 0 {
		requiredDailyHours = DefaultRequiredDailyHours
	}

	byDate := make(map[string]float64, len(days))
	hasAnySleep := false
	for _, d := range days {
		byDate[d.Date] += d.TotalMinutes
		if d.TotalMinutes > 0 {
			hasAnySleep = true
		}
	}

	daily := make([]SleepDeficitDay, 0, 7)
	weekly := 0.0
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		key := CalendarDayKey(day)
		actual := byDate[key] / 60
		deficit := requiredDailyHours - actual
		weekly += deficit
		daily = append(daily, SleepDeficitDay{
			Date:     key,
			Label:    day.Format("Mon"),
			Required: requiredDailyHours,
			Actual:   actual,
			Deficit:  deficit,
		})
	}

	// A brand-new user with no data is not 52.5 hours behind.
	if !hasAnySleep {
		weekly = 0
	}
	weekly = Clamp(weekly, minWeeklyDeficit, maxWeeklyDeficit)

	var category DeficitCategory
	switch {
	case weekly <= -1:
		category = DeficitSurplus
	case weekly < 3:
		category = DeficitLow
	case weekly < 8:
		category = DeficitMedium
	default:
		category = DeficitHigh
	}

	return SleepDeficit{
		RequiredDaily:  requiredDailyHours,
		WeeklyDeficit:  weekly,
		Daily:          daily,
		Category:       category,
		DataSufficient: hasAnySleep,
	}
}
