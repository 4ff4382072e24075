package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/engine"
)

func serveScoreRequest(t *testing.T, handlerFunc http.HandlerFunc, userID, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID+"/scores/"+path, nil)
	rec := httptest.NewRecorder()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	handlerFunc(rec, req)
	return rec
}

func TestScoresHandler_Endpoints(t *testing.T) {
	userID := uuid.New()
	handler := NewScoresHandler(&MockScoreService{})

	tests := []struct {
		name        string
		path        string
		handlerFunc http.HandlerFunc
	}{
		{"shift rhythm", "shift-rhythm", handler.GetShiftRhythm},
		{"sleep deficit", "sleep-deficit", handler.GetSleepDeficit},
		{"circadian", "circadian", handler.GetCircadian},
		{"social jetlag", "social-jetlag", handler.GetSocialJetlag},
		{"shift lag", "shift-lag", handler.GetShiftLag},
		{"binge risk", "binge-risk", handler.GetBingeRisk},
		{"tonight", "tonight", handler.GetTonight},
		{"dashboard", "dashboard", handler.GetDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveScoreRequest(t, tt.handlerFunc, userID.String(), tt.path)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestScoresHandler_InvalidUserID(t *testing.T) {
	handler := NewScoresHandler(&MockScoreService{})

	rec := serveScoreRequest(t, handler.GetDashboard, "not-a-uuid", "dashboard")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScoresHandler_UserNotFound(t *testing.T) {
	handler := NewScoresHandler(&MockScoreService{
		sleepDeficitFunc: func(ctx context.Context, userID uuid.UUID) (*engine.SleepDeficit, error) {
			return nil, domain.ErrNotFound
		},
	})

	rec := serveScoreRequest(t, handler.GetSleepDeficit, uuid.New().String(), "sleep-deficit")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d, body: %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestScoresHandler_CircadianWithoutMainSleep(t *testing.T) {
	handler := NewScoresHandler(&MockScoreService{
		circadianFunc: func(ctx context.Context, userID uuid.UUID) (*engine.CircadianPhase, error) {
			return nil, domain.ErrNotFound
		},
	})

	rec := serveScoreRequest(t, handler.GetCircadian, uuid.New().String(), "circadian")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var p struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("Failed to decode problem body: %v", err)
	}
	if p.Detail != "No main sleep recorded yet" {
		t.Errorf("detail = %q, want %q", p.Detail, "No main sleep recorded yet")
	}
}

func TestScoresHandler_DashboardPayload(t *testing.T) {
	userID := uuid.New()
	handler := NewScoresHandler(&MockScoreService{
		dashboardFunc: func(ctx context.Context, uid uuid.UUID) (*domain.DashboardScores, error) {
			return &domain.DashboardScores{
				ShiftRhythm:  engine.ShiftRhythmScore{TotalScore: 6.8},
				SleepDeficit: engine.SleepDeficit{WeeklyDeficit: 4.5, Category: engine.DeficitMedium, DataSufficient: true},
				BingeRisk:    engine.BingeRisk{Score: 42, Level: engine.BingeRiskMedium},
				Tonight:      engine.TonightTarget{TargetHours: 8.5, ShiftCategory: engine.UpcomingNight},
			}, nil
		},
	})

	rec := serveScoreRequest(t, handler.GetDashboard, userID.String(), "dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var response domain.DashboardScores
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ShiftRhythm.TotalScore != 6.8 {
		t.Errorf("ShiftRhythm.TotalScore = %v, want 6.8", response.ShiftRhythm.TotalScore)
	}
	if response.Tonight.TargetHours != 8.5 {
		t.Errorf("Tonight.TargetHours = %v, want 8.5", response.Tonight.TargetHours)
	}
	if response.BingeRisk.Level != engine.BingeRiskMedium {
		t.Errorf("BingeRisk.Level = %q, want %q", response.BingeRisk.Level, engine.BingeRiskMedium)
	}
}
