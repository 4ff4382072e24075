package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

func TestMealLogService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a meal log", func(t *testing.T) {
		mealRepo := NewMockMealLogRepository()
		userRepo := NewMockUserRepository()
		user := newTestUser(userRepo)
		svc := NewMealLogService(mealRepo, userRepo)

		meal, err := svc.Create(ctx, user.ID, &domain.CreateMealLogRequest{
			Slot:     "lunch",
			LoggedAt: time.Date(2024, 1, 16, 12, 30, 0, 0, time.UTC),
			Calories: 650,
			ProteinG: 35,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meal.Slot != "lunch" || meal.Calories != 650 {
			t.Errorf("expected meal content preserved, got %s/%v", meal.Slot, meal.Calories)
		}
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		mealRepo := NewMockMealLogRepository()
		userRepo := NewMockUserRepository()
		svc := NewMealLogService(mealRepo, userRepo)

		_, err := svc.Create(ctx, uuid.New(), &domain.CreateMealLogRequest{
			Slot:     "dinner",
			LoggedAt: time.Date(2024, 1, 16, 19, 0, 0, 0, time.UTC),
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMealLogService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by range, most recent first", func(t *testing.T) {
		mealRepo := NewMockMealLogRepository()
		userRepo := NewMockUserRepository()
		user := newTestUser(userRepo)
		svc := NewMealLogService(mealRepo, userRepo)

		times := []time.Time{
			time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 16, 12, 30, 0, 0, time.UTC),
			time.Date(2024, 1, 16, 19, 0, 0, 0, time.UTC),
		}
		for _, at := range times {
			if _, err := svc.Create(ctx, user.ID, &domain.CreateMealLogRequest{Slot: "meal", LoggedAt: at}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		resp, err := svc.List(ctx, user.ID, domain.MealLogFilter{
			From: timePtr(time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)),
			To:   timePtr(time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Data) != 2 {
			t.Fatalf("expected 2 meals in range, got %d", len(resp.Data))
		}
		if !resp.Data[0].LoggedAt.After(resp.Data[1].LoggedAt) {
			t.Error("expected meals ordered most recent first")
		}
	})
}

func TestMealLogService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses to delete another user's meal", func(t *testing.T) {
		mealRepo := NewMockMealLogRepository()
		userRepo := NewMockUserRepository()
		owner := newTestUser(userRepo)
		intruder := newTestUser(userRepo)
		svc := NewMealLogService(mealRepo, userRepo)

		meal, err := svc.Create(ctx, owner.ID, &domain.CreateMealLogRequest{
			Slot:     "snack",
			LoggedAt: time.Date(2024, 1, 16, 15, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := svc.Delete(ctx, intruder.ID, meal.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := svc.Delete(ctx, owner.ID, meal.ID); err != nil {
			t.Errorf("expected owner delete to succeed, got %v", err)
		}
	})
}
