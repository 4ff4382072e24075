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

type MealHandler struct {
	service service.MealLogService
}

func NewMealHandler(service service.MealLogService) *MealHandler {
	return &MealHandler{service: service}
}

// Create handles POST /v1/users/{userId}/meals
// @Summary Log a meal
// @Description Record one eating occasion with its nutrition content.
// @Tags meals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateMealLogRequest true "Meal data"
// @Success 201 {object} domain.MealLogResponse "Meal logged"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals [post]
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateMealLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	meal, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to log meal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(meal.ToResponse())
}

// List handles GET /v1/users/{userId}/meals
// @Summary List meals
// @Description Fetch logged meals in a time range, most recent first. Defaults to the last 7 days.
// @Tags meals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of time range (RFC3339)" format(date-time)
// @Param to query string false "End of time range (RFC3339)" format(date-time)
// @Success 200 {object} domain.MealLogListResponse "Meals in range"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals [get]
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
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

	response, err := h.service.List(r.Context(), userID, domain.MealLogFilter{From: from, To: to})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list meals").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Delete handles DELETE /v1/users/{userId}/meals/{mealId}
// @Summary Delete a meal
// @Description Remove one logged meal.
// @Tags meals
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param mealId path string true "Meal UUID" format(uuid)
// @Success 204 "Meal deleted"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "Meal not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals/{mealId} [delete]
func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	mealID, err := uuid.Parse(chi.URLParam(r, "mealId"))
	if err != nil {
		problem.BadRequest("Invalid meal ID format").Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, mealID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Meal not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete meal").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
