package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/api/validation"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/pkg/problem"
)

type ShiftHandler struct {
	service service.ShiftService
}

func NewShiftHandler(service service.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/shifts
// @Summary Record a rostered day
// @Description Create or replace the shift entry for one calendar date. Off days must not carry times; timed entries need both start and end.
// @Tags shifts
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateShiftRequest true "Rostered day"
// @Success 200 {object} domain.ShiftResponse "Shift stored"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts [put]
func (h *ShiftHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	shift, err := h.service.Upsert(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Invalid shift times for the given category").Write(w)
			return
		}
		problem.InternalError("Failed to store shift").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shift.ToResponse())
}

// List handles GET /v1/users/{userId}/shifts
// @Summary List shifts
// @Description Fetch rostered days in a date range, ascending by date. Defaults to two weeks around today.
// @Tags shifts
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339)" format(date-time)
// @Param to query string false "End of date range (RFC3339)" format(date-time)
// @Success 200 {object} domain.ShiftListResponse "Shifts in range"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts [get]
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	from, to, fieldErrors := parseRangeParams(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, domain.ShiftFilter{From: from, To: to})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list shifts").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Delete handles DELETE /v1/users/{userId}/shifts/{shiftId}
// @Summary Delete a shift
// @Description Remove one rostered day.
// @Tags shifts
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param shiftId path string true "Shift UUID" format(uuid)
// @Success 204 "Shift deleted"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Shift not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/shifts/{shiftId} [delete]
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	shiftID, err := uuid.Parse(chi.URLParam(r, "shiftId"))
	if err != nil {
		problem.BadRequest("Invalid shift ID format").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, shiftID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Shift not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete shift").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
