// Package engine contains the circadian and shift-rhythm scoring
// calculators. Every calculator is a pure function over caller-shaped value
// objects: no I/O, no shared state, no dependency on persistence. Callers
// (the service layer) are responsible for windowing raw records, dropping
// malformed ones and normalizing schema differences before handing data in.
package engine

import "time"

// ShiftCategory classifies a rostered day.
type ShiftCategory string

const (
	ShiftDay       ShiftCategory = "day"
	ShiftNight     ShiftCategory = "night"
	ShiftMorning   ShiftCategory = "morning"
	ShiftAfternoon ShiftCategory = "afternoon"
	ShiftOff       ShiftCategory = "off"
)

// IsWork reports whether the category represents a working day.
func (c ShiftCategory) IsWork() bool {
	return c != "" && c != ShiftOff
}

// SleepSession is a single sleep record. Only main sessions (IsMain) feed
// regularity, midpoint and debt calculations; naps contribute to daily
// totals only where a calculator says so.
type SleepSession struct {
	// Date is the calendar day the session belongs to (the day it ended).
	Date time.Time
	// Start and End are the session boundaries; End is always after Start
	// (records violating this are dropped upstream).
	Start time.Time
	End   time.Time
	// DurationHours is End minus Start in hours.
	DurationHours float64
	// Quality is a 1-5 rating, 0 when not recorded.
	Quality int
	// IsMain distinguishes main sleep from naps.
	IsMain bool
}

// ShiftDayRecord is one rostered day. Start/End are nil when the rota only
// carries a category; category "off" implies neither is used for alignment
// math.
type ShiftDayRecord struct {
	Date      time.Time
	Category  ShiftCategory
	Start     *time.Time
	End       *time.Time
	Intensity string // very_light, light, moderate, busy, intense; "" unknown
}

// DailySleep is the total main-sleep time for one calendar day.
type DailySleep struct {
	Date         string // YYYY-MM-DD
	TotalMinutes float64
}

// Hours returns the daily total in hours.
func (d DailySleep) Hours() float64 {
	return d.TotalMinutes / 60
}

// MealEvent is a logged meal occurrence.
type MealEvent struct {
	Slot     string
	LoggedAt time.Time
}
