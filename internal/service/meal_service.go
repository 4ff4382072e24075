package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type MealLogService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.MealLogFilter) (*domain.MealLogListResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, mealID uuid.UUID) error
}

type mealLogService struct {
	repo     repository.MealLogRepository
	userRepo repository.UserRepository
}

func NewMealLogService(repo repository.MealLogRepository, userRepo repository.UserRepository) MealLogService {
	return &mealLogService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *mealLogService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	meal := &domain.MealLog{
		UserID:     userID,
		Slot:       req.Slot,
		LoggedAt:   req.LoggedAt.UTC(),
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
		SatFatG:    req.SatFatG,
		CaffeineMG: req.CaffeineMG,
		WaterML:    req.WaterML,
	}

	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, err
	}

	return meal, nil
}

func (s *mealLogService) List(ctx context.Context, userID uuid.UUID, filter domain.MealLogFilter) (*domain.MealLogListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Default to the last 7 days.
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now
	if filter.From != nil {
		from = *filter.From
	}
	if filter.To != nil {
		to = *filter.To
	}

	meals, err := s.repo.ListByRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	response := &domain.MealLogListResponse{
		Data: make([]domain.MealLogResponse, len(meals)),
	}
	for i, meal := range meals {
		response.Data[i] = meal.ToResponse()
	}

	return response, nil
}

func (s *mealLogService) Delete(ctx context.Context, userID uuid.UUID, mealID uuid.UUID) error {
	meal, err := s.repo.GetByID(ctx, mealID)
	if err != nil {
		return err
	}
	if meal.UserID != userID {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, mealID)
}
