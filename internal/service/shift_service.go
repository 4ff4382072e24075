package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type ShiftService interface {
	Upsert(ctx context.Context, userID uuid.UUID, req *domain.CreateShiftRequest) (*domain.Shift, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ShiftFilter) (*domain.ShiftListResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, shiftID uuid.UUID) error
}

type shiftService struct {
	repo     repository.ShiftRepository
	userRepo repository.UserRepository
}

func NewShiftService(repo repository.ShiftRepository, userRepo repository.UserRepository) ShiftService {
	return &shiftService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Upsert records one rostered day, replacing any existing entry for the
// same date.
func (s *shiftService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.CreateShiftRequest) (*domain.Shift, error) {
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

	// Off days carry no times; timed entries need both ends in order.
	if req.Category == domain.ShiftCategoryOff && (req.StartAt != nil || req.EndAt != nil) {
		return nil, domain.ErrInvalidInput
	}
	if (req.StartAt == nil) != (req.EndAt == nil) {
		return nil, domain.ErrInvalidInput
	}
	if req.StartAt != nil && !req.EndAt.After(*req.StartAt) {
		return nil, domain.ErrInvalidInput
	}

	shift := &domain.Shift{
		UserID:    userID,
		Date:      date,
		Category:  req.Category,
		Intensity: req.Intensity,
	}
	if req.StartAt != nil {
		start := req.StartAt.UTC()
		end := req.EndAt.UTC()
		shift.StartAt = &start
		shift.EndAt = &end
	}

	if err := s.repo.Upsert(ctx, shift); err != nil {
		return nil, err
	}

	return shift, nil
}

func (s *shiftService) List(ctx context.Context, userID uuid.UUID, filter domain.ShiftFilter) (*domain.ShiftListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Default to the two weeks around today when no range is given.
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -14)
	to := now.AddDate(0, 0, 14)
	if filter.From != nil {
		from = *filter.From
	}
	if filter.To != nil {
		to = *filter.To
	}

	shifts, err := s.repo.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	response := &domain.ShiftListResponse{
		Data: make([]domain.ShiftResponse, len(shifts)),
	}
	for i, shift := range shifts {
		response.Data[i] = shift.ToResponse()
	}

	return response, nil
}

func (s *shiftService) Delete(ctx context.Context, userID uuid.UUID, shiftID uuid.UUID) error {
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if shift.UserID != userID {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, shiftID)
}
