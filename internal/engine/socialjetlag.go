package engine

import (
	"fmt"
	"sort"
	"time"
)

// Social jetlag category thresholds in hours of midpoint misalignment.
const (
	jetlagLowThreshold      = 1.5
	jetlagModerateThreshold = 3.5
)

// SocialJetlagCategory classifies midpoint misalignment.
type SocialJetlagCategory string

const (
	JetlagLow      SocialJetlagCategory = "low"
	JetlagModerate SocialJetlagCategory = "moderate"
	JetlagHigh     SocialJetlagCategory = "high"
)

// SocialJetlag describes how far the current sleep midpoint has shifted from
// the user's own baseline.
// @Description Sleep-midpoint drift versus the user's personal baseline.
type SocialJetlag struct {
	CurrentMisalignmentHours       float64              `json:"current_misalignment_hours" example:"2.3"`
	WeeklyAverageMisalignmentHours float64              `json:"weekly_average_misalignment_hours" example:"1.8"`
	BaselineMidpointClock          float64              `json:"baseline_midpoint_clock,omitempty" example:"3.5"`
	CurrentMidpointClock           float64              `json:"current_midpoint_clock,omitempty" example:"5.8"`
	Category                       SocialJetlagCategory `json:"category" example:"moderate"`
	Explanation                    string               `json:"explanation"`
	// DataSufficient is false when fewer than 2 service days of main sleep
	// exist; the misalignment values are then 0 and carry no meaning.
	DataSufficient bool `json:"data_sufficient"`
}

type dayMidpoint struct {
	date     string
	midpoint float64
}

// CalculateSocialJetlag computes the wrap-aware distance between the current
// sleep midpoint and a personal baseline (median midpoint of up to the 7
// most recent non-today service days). Only main sessions participate, and
// sessions are bucketed into 07:00-to-07:00 service days.
func CalculateSocialJetlag(sessions []SleepSession, now time.Time) SocialJetlag {
	main := make([]SleepSession, 0, len(sessions))
	for _, s := range sessions {
		if s.IsMain && s.End.After(s.Start) {
			main = append(main, s)
		}
	}
	if len(main) < 2 {
		return insufficientJetlag("Not enough main sleep data. Log at least 2 days of main sleep to calculate social jetlag.")
	}

	byDay := make(map[string][]SleepSession)
	for _, s := range main {
		key := ServiceDayKey(s.Start)
		byDay[key] = append(byDay[key], s)
	}

	midpoints := make([]dayMidpoint, 0, len(byDay))
	for key, daySessions := range byDay {
		midpoints = append(midpoints, dayMidpoint{date: key, midpoint: serviceDayMidpoint(daySessions)})
	}
	if len(midpoints) < 2 {
		return insufficientJetlag("Not enough sleep data (need at least 2 days with main sleep).")
	}
	sortMidpoints(midpoints)

	todayKey := ServiceDayKey(now)
	baseline := make([]float64, 0, 7)
	for _, d := range lastN(filterOutDay(midpoints, todayKey), 10) {
		if len(baseline) == 7 {
			break
		}
		baseline = append(baseline, d.midpoint)
	}
	if len(baseline) < 2 {
		return insufficientJetlag("Not enough baseline data.")
	}
	baselineMidpoint := Median(baseline)

	// Today's midpoint, or the most recent day when today has no sleep yet.
	current := midpoints[len(midpoints)-1]
	for _, d := range midpoints {
		if d.date == todayKey {
			current = d
			break
		}
	}

	currentMisalignment := WrapDiffHours(current.midpoint, baselineMidpoint)

	last7 := lastN(midpoints, 7)
	diffs := make([]float64, 0, len(last7))
	for _, d := range last7 {
		diffs = append(diffs, WrapDiffHours(d.midpoint, baselineMidpoint))
	}
	weeklyAverage := Mean(diffs)

	var category SocialJetlagCategory
	switch {
	case currentMisalignment <= jetlagLowThreshold:
		category = JetlagLow
	case currentMisalignment <= jetlagModerateThreshold:
		category = JetlagModerate
	default:
		category = JetlagHigh
	}

	return SocialJetlag{
		CurrentMisalignmentHours:       round1(currentMisalignment),
		WeeklyAverageMisalignmentHours: round1(weeklyAverage),
		BaselineMidpointClock:          baselineMidpoint,
		CurrentMidpointClock:           current.midpoint,
		Category:                       category,
		Explanation:                    jetlagExplanation(category, currentMisalignment),
		DataSufficient:                 true,
	}
}

// serviceDayMidpoint is the clock-hour midpoint between the earliest session
// start and the latest session end of a service day, independent of which
// calendar date the midpoint lands on.
func serviceDayMidpoint(sessions []SleepSession) float64 {
	earliest := sessions[0].Start
	latest := sessions[0].End
	for _, s := range sessions[1:] {
		if s.Start.Before(earliest) {
			earliest = s.Start
		}
		if s.End.After(latest) {
			latest = s.End
		}
	}
	midUnix := (earliest.Unix() + latest.Unix()) / 2
	return ClockHours(time.Unix(midUnix, 0).In(earliest.Location()))
}

func sortMidpoints(ms []dayMidpoint) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].date < ms[j].date })
}

func filterOutDay(ms []dayMidpoint, key string) []dayMidpoint {
	out := make([]dayMidpoint, 0, len(ms))
	for _, m := range ms {
		if m.date != key {
			out = append(out, m)
		}
	}
	return out
}

func lastN(ms []dayMidpoint, n int) []dayMidpoint {
	if len(ms) <= n {
		return ms
	}
	return ms[len(ms)-n:]
}

func jetlagExplanation(category SocialJetlagCategory, hours float64) string {
	switch category {
	case JetlagLow:
		return "Your sleep timing has stayed close to your usual rhythm this week."
	case JetlagModerate:
		return fmt.Sprintf("Your sleep midpoint has shifted by around %.1f hours due to recent shift changes.", hours)
	default:
		return fmt.Sprintf("Your body clock is heavily shifted (~%.1fh) from your usual pattern after recent day/night rotations.", hours)
	}
}

func insufficientJetlag(reason string) SocialJetlag {
	return SocialJetlag{
		Category:       JetlagLow,
		Explanation:    reason,
		DataSufficient: false,
	}
}
