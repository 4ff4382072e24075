package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

// ScoresHandler serves the computed score endpoints.
type ScoresHandler struct {
	service service.ScoreService
}

func NewScoresHandler(service service.ScoreService) *ScoresHandler {
	return &ScoresHandler{service: service}
}

// serveScore runs one calculator and writes the result, mapping domain
// errors the same way for every score endpoint.
func (h *ScoresHandler) serveScore(w http.ResponseWriter, r *http.Request, notFoundDetail string, compute func(userID uuid.UUID) (any, error)) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := compute(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound(notFoundDetail).Write(w)
			return
		}
		problem.InternalError("Failed to compute score").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetShiftRhythm handles GET /v1/users/{userId}/scores/shift-rhythm
// @Summary Get the shift-rhythm score
// @Description Compute the 0-10 dashboard composite with its seven sub-scores.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.ShiftRhythmScore "Shift-rhythm score"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/shift-rhythm [get]
func (h *ScoresHandler) GetShiftRhythm(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.ShiftRhythm(r.Context(), userID)
	})
}

// GetSleepDeficit handles GET /v1/users/{userId}/scores/sleep-deficit
// @Summary Get the weekly sleep deficit
// @Description Compute the signed weekly sleep deficit with a per-day breakdown.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.SleepDeficit "Weekly sleep deficit"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/sleep-deficit [get]
func (h *ScoresHandler) GetSleepDeficit(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.SleepDeficit(r.Context(), userID)
	})
}

// GetCircadian handles GET /v1/users/{userId}/scores/circadian
// @Summary Get the circadian phase
// @Description Compute body-clock alignment from the latest main sleep and recent bedtime consistency. Requires at least one main sleep session.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.CircadianPhase "Circadian phase"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found or no main sleep recorded"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/circadian [get]
func (h *ScoresHandler) GetCircadian(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "No main sleep recorded yet", func(userID uuid.UUID) (any, error) {
		return h.service.Circadian(r.Context(), userID)
	})
}

// GetSocialJetlag handles GET /v1/users/{userId}/scores/social-jetlag
// @Summary Get social jetlag
// @Description Compute the drift between the current sleep midpoint and the personal baseline.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.SocialJetlag "Social jetlag"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/social-jetlag [get]
func (h *ScoresHandler) GetSocialJetlag(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.SocialJetlag(r.Context(), userID)
	})
}

// GetShiftLag handles GET /v1/users/{userId}/scores/shift-lag
// @Summary Get the ShiftLag score
// @Description Compute circadian strain from sleep debt, biological-night work and schedule instability.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.ShiftLagMetrics "ShiftLag score"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/shift-lag [get]
func (h *ScoresHandler) GetShiftLag(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.ShiftLag(r.Context(), userID)
	})
}

// GetBingeRisk handles GET /v1/users/{userId}/scores/binge-risk
// @Summary Get the binge-eating risk
// @Description Compute the 0-100 binge risk from sleep, shifts, meals and circadian strain, with its top drivers.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.BingeRisk "Binge risk"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/binge-risk [get]
func (h *ScoresHandler) GetBingeRisk(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.BingeRisk(r.Context(), userID)
	})
}

// GetTonight handles GET /v1/users/{userId}/scores/tonight
// @Summary Get tonight's sleep target
// @Description Compute the recommended sleep duration for the coming night from weekly deficit and the next rostered shift.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} engine.TonightTarget "Tonight's sleep target"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/tonight [get]
func (h *ScoresHandler) GetTonight(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.TonightTarget(r.Context(), userID)
	})
}

// GetDashboard handles GET /v1/users/{userId}/scores/dashboard
// @Summary Get all scores
// @Description Compute every score from one data snapshot so the signals feeding each other agree.
// @Tags scores
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.DashboardScores "All scores"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/scores/dashboard [get]
func (h *ScoresHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.serveScore(w, r, "User not found", func(userID uuid.UUID) (any, error) {
		return h.service.Dashboard(r.Context(), userID)
	})
}
