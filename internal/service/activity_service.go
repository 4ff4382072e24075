package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type ActivityService interface {
	Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertActivityDayRequest) (*domain.ActivityDay, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) (*domain.ActivityDayListResponse, error)
}

type activityService struct {
	repo     repository.ActivityRepository
	userRepo repository.UserRepository
}

func NewActivityService(repo repository.ActivityRepository, userRepo repository.UserRepository) ActivityService {
	return &activityService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *activityService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertActivityDayRequest) (*domain.ActivityDay, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	day := &domain.ActivityDay{
		UserID:        userID,
		Date:          date,
		Steps:         req.Steps,
		ActiveMinutes: req.ActiveMinutes,
	}

	if err := s.repo.Upsert(ctx, day); err != nil {
		return nil, err
	}

	return day, nil
}

func (s *activityService) List(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) (*domain.ActivityDayListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Default to the last 14 days.
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -14)
	to := now
	if filter.From != nil {
		from = *filter.From
	}
	if filter.To != nil {
		to = *filter.To
	}

	days, err := s.repo.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	response := &domain.ActivityDayListResponse{
		Data: make([]domain.ActivityDayResponse, len(days)),
	}
	for i, day := range days {
		response.Data[i] = day.ToResponse()
	}

	return response, nil
}
