package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

func TestActivityHandler_Upsert(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		body           string
		mockService    *MockActivityService
		wantStatusCode int
	}{
		{
			name:           "valid day",
			userID:         userID.String(),
			body:           `{"date": "2024-01-16", "steps": 9400, "active_minutes": 45}`,
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "zero movement day",
			userID:         userID.String(),
			body:           `{"date": "2024-01-17", "steps": 0, "active_minutes": 0}`,
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "bad date format",
			userID:         userID.String(),
			body:           `{"date": "January 16", "steps": 9400}`,
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative steps",
			userID:         userID.String(),
			body:           `{"date": "2024-01-16", "steps": -100}`,
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "active minutes above a day",
			userID:         userID.String(),
			body:           `{"date": "2024-01-16", "steps": 100, "active_minutes": 2000}`,
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			body:           `{"date": "2024-01-16", "steps": 9400}`,
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			userID: uuid.New().String(),
			body:   `{"date": "2024-01-16", "steps": 9400}`,
			mockService: &MockActivityService{
				upsertFunc: func(ctx context.Context, uid uuid.UUID, req *domain.UpsertActivityDayRequest) (*domain.ActivityDay, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewActivityHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodPut, "/v1/users/"+tt.userID+"/activity", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", tt.userID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			handler.Upsert(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Upsert() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestActivityHandler_List(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		queryParams    string
		mockService    *MockActivityService
		wantStatusCode int
	}{
		{
			name:        "list with range",
			userID:      userID.String(),
			queryParams: "?from=2024-01-03T00:00:00Z&to=2024-01-17T00:00:00Z",
			mockService: &MockActivityService{
				listFunc: func(ctx context.Context, uid uuid.UUID, filter domain.ActivityFilter) (*domain.ActivityDayListResponse, error) {
					if filter.From == nil || filter.To == nil {
						t.Error("Expected from and to filters to be set")
					}
					return &domain.ActivityDayListResponse{Data: []domain.ActivityDayResponse{}}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			mockService:    &MockActivityService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			userID: uuid.New().String(),
			mockService: &MockActivityService{
				listFunc: func(ctx context.Context, uid uuid.UUID, filter domain.ActivityFilter) (*domain.ActivityDayListResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewActivityHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID+"/activity"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", tt.userID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
