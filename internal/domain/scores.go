package domain

import "github.com/shiftcoach/shiftcoach-api/internal/engine"

// DashboardScores bundles every calculator result in one pass so the
// cross-feeding signals (sleep debt, circadian midpoint) are computed once
// and consistently.
// @Description All scores for the dashboard, computed from the same data
// @Description snapshot.
type DashboardScores struct {
	ShiftRhythm  engine.ShiftRhythmScore `json:"shift_rhythm"`
	SleepDeficit engine.SleepDeficit     `json:"sleep_deficit"`
	Circadian    engine.CircadianPhase   `json:"circadian"`
	SocialJetlag engine.SocialJetlag     `json:"social_jetlag"`
	ShiftLag     engine.ShiftLagMetrics  `json:"shift_lag"`
	BingeRisk    engine.BingeRisk        `json:"binge_risk"`
	Tonight      engine.TonightTarget    `json:"tonight"`
}

// CoachOutput contains the structured output from the LLM.
// @Description LLM-generated coaching insights.
type CoachOutput struct {
	// Summary of the current situation (2-3 sentences)
	Summary string `json:"summary" example:"You're coming off three night shifts with about five hours of sleep debt..."`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations" example:"[\"Your sleep midpoint has drifted 4 hours later this week\"]"`
	// Actionable guidance (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Aim for the 8.5 hour target tonight before your early shift\"]"`
}

// CoachContext is the context object sent to the LLM.
// @Description Score snapshot given to the coaching model.
type CoachContext struct {
	Scores DashboardScores `json:"scores"`
}

// CoachResponse is the response for the coach insights endpoint.
// @Description Coaching insights with the scores they were derived from.
type CoachResponse struct {
	Scores   DashboardScores `json:"scores"`
	Insights CoachOutput     `json:"insights"`
	// Trace ID for correlating feedback (present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}
