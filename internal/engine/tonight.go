package engine

import (
	"fmt"
	"math"
	"time"
)

// Tonight-target bounds and base, in hours.
const (
	tonightBaseTarget = 7.5
	tonightMinTarget  = 6.5
	tonightMaxTarget  = 9.0
)

// UpcomingShiftCategory buckets the next shift by its start hour.
type UpcomingShiftCategory string

const (
	UpcomingNone  UpcomingShiftCategory = "none"
	UpcomingEarly UpcomingShiftCategory = "early" // 04:00-07:59
	UpcomingDay   UpcomingShiftCategory = "day"   // 08:00-16:59
	UpcomingLate  UpcomingShiftCategory = "late"  // 17:00-22:59
	UpcomingNight UpcomingShiftCategory = "night" // 23:00-03:59
)

// UpcomingShift is the next rostered shift starting within the lookahead
// window (the caller resolves "within 36 hours").
type UpcomingShift struct {
	Start time.Time
}

// TonightTarget is the recommended sleep duration for the coming night.
// @Description Recommended hours of sleep for tonight with the reasoning.
type TonightTarget struct {
	TargetHours   float64               `json:"target_hours" example:"8.0"`
	ShiftCategory UpcomingShiftCategory `json:"shift_category" example:"early"`
	Explanation   string                `json:"explanation"`
}

// CalculateTonightTarget adjusts a 7.5h base for accumulated weekly deficit
// and the demands of the next shift, clamped into [6.5, 9.0]. A nil next
// shift means nothing is rostered within the lookahead window.
func CalculateTonightTarget(weeklyDeficitHours float64, next *UpcomingShift) TonightTarget {
	target := tonightBaseTarget

	switch {
	case weeklyDeficitHours >= 8:
		target += 1.0
	case weeklyDeficitHours >= 4:
		target += 0.5
	case weeklyDeficitHours <= -2:
		target -= 0.5
	}

	category := UpcomingNone
	if next != nil {
		category = categorizeUpcomingShift(next.Start)
		switch category {
		case UpcomingEarly:
			// Early starts leave no room to catch up in the morning.
			target = math.Max(target, 8.0)
		case UpcomingNight:
			// Aim for a solid core sleep without extreme values either way.
			target = math.Min(math.Max(target, 7.5), 8.5)
		}
	}

	target = Clamp(target, tonightMinTarget, tonightMaxTarget)

	return TonightTarget{
		TargetHours:   round1(target),
		ShiftCategory: category,
		Explanation:   tonightExplanation(category, weeklyDeficitHours, next),
	}
}

func categorizeUpcomingShift(start time.Time) UpcomingShiftCategory {
	switch h := start.Hour(); {
	case h >= 4 && h < 8:
		return UpcomingEarly
	case h >= 8 && h < 17:
		return UpcomingDay
	case h >= 17 && h < 23:
		return UpcomingLate
	default:
		return UpcomingNight
	}
}

func tonightExplanation(category UpcomingShiftCategory, weeklyDeficitHours float64, next *UpcomingShift) string {
	if next == nil {
		return "You don't have a shift starting soon, so we're aiming for your normal 7–9 hours of sleep."
	}
	startClock := next.Start.Format("3:04 PM")

	switch {
	case category == UpcomingEarly && weeklyDeficitHours >= 4:
		return fmt.Sprintf("You've built up about %.1f hours of sleep debt and you have an early shift at %s. Tonight's goal is a longer sleep to help you catch up.", weeklyDeficitHours, startClock)
	case category == UpcomingEarly:
		return fmt.Sprintf("You have an early shift at %s. A solid sleep tonight will protect your alertness in the morning.", startClock)
	case category == UpcomingNight:
		return fmt.Sprintf("You're working a night shift starting at %s. This target balances recovery with your upcoming shift so you don't over- or under-sleep.", startClock)
	case weeklyDeficitHours >= 4:
		return fmt.Sprintf("You're about %.1f hours behind your weekly sleep target, so tonight's goal is slightly higher to help you recover.", weeklyDeficitHours)
	default:
		return "You're close to your weekly sleep target. Keeping a steady routine tonight will support your body clock."
	}
}
