package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateTargets(ctx context.Context, id uuid.UUID, req *domain.UpdateUserTargetsRequest) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		ID:               uuid.New(),
		Timezone:         req.Timezone,
		SleepTargetHours: 7.5,
		StepsGoal:        10000,
	}
	if req.SleepTargetHours != nil {
		user.SleepTargetHours = *req.SleepTargetHours
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateTargets applies the provided coaching targets, leaving omitted
// fields untouched.
func (s *userService) UpdateTargets(ctx context.Context, id uuid.UUID, req *domain.UpdateUserTargetsRequest) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SleepTargetHours != nil {
		user.SleepTargetHours = *req.SleepTargetHours
	}
	if req.CalorieTarget != nil {
		user.CalorieTarget = *req.CalorieTarget
	}
	if req.ProteinTargetG != nil {
		user.ProteinTargetG = *req.ProteinTargetG
	}
	if req.CarbsTargetG != nil {
		user.CarbsTargetG = *req.CarbsTargetG
	}
	if req.FatTargetG != nil {
		user.FatTargetG = *req.FatTargetG
	}
	if req.SatFatLimitG != nil {
		user.SatFatLimitG = *req.SatFatLimitG
	}
	if req.CaffeineLimitMG != nil {
		user.CaffeineLimitMG = *req.CaffeineLimitMG
	}
	if req.WaterTargetML != nil {
		user.WaterTargetML = *req.WaterTargetML
	}
	if req.StepsGoal != nil {
		user.StepsGoal = *req.StepsGoal
	}
	if req.ActiveMinutesGoal != nil {
		user.ActiveMinutesGoal = *req.ActiveMinutesGoal
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
