package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

func newCoachFixture(t *testing.T, output *domain.CoachOutput) (*scoreFixture, *MockCoachLLM, CoachService) {
	t.Helper()
	f := newScoreFixture(time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC))
	mockLLM := NewMockCoachLLM(output)
	svc := NewCoachService(f.svc, mockLLM, f.userRepo)
	return f, mockLLM, svc
}

func TestCoachService_Generate(t *testing.T) {
	ctx := context.Background()

	output := &domain.CoachOutput{
		Summary:      "You are running a moderate sleep deficit on a night rotation.",
		Observations: []string{"Six-hour sleeps are 1.5h short of your target."},
		Guidance:     []string{"Aim for 8.5 hours before tonight's shift."},
	}

	t.Run("bundles scores with insights", func(t *testing.T) {
		f, mockLLM, svc := newCoachFixture(t, output)
		for i := 0; i < 7; i++ {
			end := time.Date(2024, 1, 20-i, 7, 0, 0, 0, time.UTC)
			f.addSleep(end.Add(-6*time.Hour), end, 3)
		}

		resp, err := svc.Generate(ctx, f.user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Insights.Summary != output.Summary {
			t.Errorf("expected LLM summary to be returned, got %q", resp.Insights.Summary)
		}
		if !resp.Scores.SleepDeficit.DataSufficient {
			t.Error("expected computed scores in the response")
		}
		if mockLLM.callCount != 1 {
			t.Errorf("expected one LLM call, got %d", mockLLM.callCount)
		}
		if mockLLM.lastCtx == nil || mockLLM.lastCtx.Scores.SleepDeficit.WeeklyDeficit != resp.Scores.SleepDeficit.WeeklyDeficit {
			t.Error("expected the LLM to receive the same scores as the response")
		}
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		_, mockLLM, svc := newCoachFixture(t, output)

		_, err := svc.Generate(ctx, uuid.New())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if mockLLM.callCount != 0 {
			t.Errorf("expected no LLM call, got %d", mockLLM.callCount)
		}
	})

	t.Run("propagates LLM failures", func(t *testing.T) {
		f, mockLLM, svc := newCoachFixture(t, output)
		llmErr := errors.New("model unavailable")
		mockLLM.SetError(llmErr)

		_, err := svc.Generate(ctx, f.user.ID)
		if !errors.Is(err, llmErr) {
			t.Errorf("expected LLM error, got %v", err)
		}
	})
}
