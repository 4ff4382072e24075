package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/engine"
	"github.com/shiftcoach/shiftcoach-api/internal/langfuse"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	createFunc        func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	updateTargetsFunc func(ctx context.Context, id uuid.UUID, req *domain.UpdateUserTargetsRequest) (*domain.User, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{
		ID:               uuid.New(),
		Timezone:         req.Timezone,
		SleepTargetHours: 7.5,
		StepsGoal:        10000,
		CreatedAt:        time.Now(),
	}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.User{
		ID:               id,
		Timezone:         "UTC",
		SleepTargetHours: 7.5,
		StepsGoal:        10000,
		CreatedAt:        time.Now(),
	}, nil
}

func (m *MockUserService) UpdateTargets(ctx context.Context, id uuid.UUID, req *domain.UpdateUserTargetsRequest) (*domain.User, error) {
	if m.updateTargetsFunc != nil {
		return m.updateTargetsFunc(ctx, id, req)
	}
	user := &domain.User{
		ID:               id,
		Timezone:         "UTC",
		SleepTargetHours: 7.5,
		StepsGoal:        10000,
		CreatedAt:        time.Now(),
	}
	if req.SleepTargetHours != nil {
		user.SleepTargetHours = *req.SleepTargetHours
	}
	return user, nil
}

// MockSleepLogService is a mock implementation of SleepLogService
type MockSleepLogService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepLogRequest) (*domain.SleepLog, bool, error)
	updateFunc func(ctx context.Context, userID uuid.UUID, logID uuid.UUID, req *domain.UpdateSleepLogRequest) (*domain.SleepLog, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.SleepLogFilter) (*domain.SleepLogListResponse, error)
}

func (m *MockSleepLogService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepLogRequest) (*domain.SleepLog, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.SleepLog{
		ID:            uuid.New(),
		UserID:        userID,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Quality:       req.Quality,
		Type:          req.Type,
		LocalTimezone: "UTC",
		CreatedAt:     time.Now(),
	}, false, nil
}

func (m *MockSleepLogService) Update(ctx context.Context, userID uuid.UUID, logID uuid.UUID, req *domain.UpdateSleepLogRequest) (*domain.SleepLog, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, logID, req)
	}
	return &domain.SleepLog{
		ID:            logID,
		UserID:        userID,
		StartAt:       time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2024, 1, 16, 7, 0, 0, 0, time.UTC),
		Quality:       4,
		Type:          domain.SleepTypeMain,
		LocalTimezone: "UTC",
		CreatedAt:     time.Now(),
	}, nil
}

func (m *MockSleepLogService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepLogFilter) (*domain.SleepLogListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepLogListResponse{
		Data:       []domain.SleepLogResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockShiftService is a mock implementation of ShiftService
type MockShiftService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateShiftRequest) (*domain.Shift, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.ShiftFilter) (*domain.ShiftListResponse, error)
	deleteFunc func(ctx context.Context, userID uuid.UUID, shiftID uuid.UUID) error
}

func (m *MockShiftService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.CreateShiftRequest) (*domain.Shift, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, req)
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	return &domain.Shift{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		Category:  req.Category,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Intensity: req.Intensity,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockShiftService) List(ctx context.Context, userID uuid.UUID, filter domain.ShiftFilter) (*domain.ShiftListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.ShiftListResponse{Data: []domain.ShiftResponse{}}, nil
}

func (m *MockShiftService) Delete(ctx context.Context, userID uuid.UUID, shiftID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, shiftID)
	}
	return nil
}

// MockMealLogService is a mock implementation of MealLogService
type MockMealLogService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.MealLogFilter) (*domain.MealLogListResponse, error)
	deleteFunc func(ctx context.Context, userID uuid.UUID, mealID uuid.UUID) error
}

func (m *MockMealLogService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.MealLog{
		ID:        uuid.New(),
		UserID:    userID,
		Slot:      req.Slot,
		LoggedAt:  req.LoggedAt,
		Calories:  req.Calories,
		CreatedAt: time.Now(),
	}, nil
}

func (m *MockMealLogService) List(ctx context.Context, userID uuid.UUID, filter domain.MealLogFilter) (*domain.MealLogListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.MealLogListResponse{Data: []domain.MealLogResponse{}}, nil
}

func (m *MockMealLogService) Delete(ctx context.Context, userID uuid.UUID, mealID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, mealID)
	}
	return nil
}

// MockActivityService is a mock implementation of ActivityService
type MockActivityService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, req *domain.UpsertActivityDayRequest) (*domain.ActivityDay, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) (*domain.ActivityDayListResponse, error)
}

func (m *MockActivityService) Upsert(ctx context.Context, userID uuid.UUID, req *domain.UpsertActivityDayRequest) (*domain.ActivityDay, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, req)
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	return &domain.ActivityDay{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          date,
		Steps:         req.Steps,
		ActiveMinutes: req.ActiveMinutes,
		CreatedAt:     time.Now(),
	}, nil
}

func (m *MockActivityService) List(ctx context.Context, userID uuid.UUID, filter domain.ActivityFilter) (*domain.ActivityDayListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.ActivityDayListResponse{Data: []domain.ActivityDayResponse{}}, nil
}

// MockScoreService is a mock implementation of ScoreService
type MockScoreService struct {
	shiftRhythmFunc   func(ctx context.Context, userID uuid.UUID) (*engine.ShiftRhythmScore, error)
	sleepDeficitFunc  func(ctx context.Context, userID uuid.UUID) (*engine.SleepDeficit, error)
	circadianFunc     func(ctx context.Context, userID uuid.UUID) (*engine.CircadianPhase, error)
	socialJetlagFunc  func(ctx context.Context, userID uuid.UUID) (*engine.SocialJetlag, error)
	shiftLagFunc      func(ctx context.Context, userID uuid.UUID) (*engine.ShiftLagMetrics, error)
	bingeRiskFunc     func(ctx context.Context, userID uuid.UUID) (*engine.BingeRisk, error)
	tonightTargetFunc func(ctx context.Context, userID uuid.UUID) (*engine.TonightTarget, error)
	dashboardFunc     func(ctx context.Context, userID uuid.UUID) (*domain.DashboardScores, error)
}

func (m *MockScoreService) ShiftRhythm(ctx context.Context, userID uuid.UUID) (*engine.ShiftRhythmScore, error) {
	if m.shiftRhythmFunc != nil {
		return m.shiftRhythmFunc(ctx, userID)
	}
	return &engine.ShiftRhythmScore{TotalScore: 7.5}, nil
}

func (m *MockScoreService) SleepDeficit(ctx context.Context, userID uuid.UUID) (*engine.SleepDeficit, error) {
	if m.sleepDeficitFunc != nil {
		return m.sleepDeficitFunc(ctx, userID)
	}
	return &engine.SleepDeficit{RequiredDaily: 7.5, Category: engine.DeficitLow, DataSufficient: true}, nil
}

func (m *MockScoreService) Circadian(ctx context.Context, userID uuid.UUID) (*engine.CircadianPhase, error) {
	if m.circadianFunc != nil {
		return m.circadianFunc(ctx, userID)
	}
	return &engine.CircadianPhase{AlignmentScore: 85, Phase: engine.PhaseAligned}, nil
}

func (m *MockScoreService) SocialJetlag(ctx context.Context, userID uuid.UUID) (*engine.SocialJetlag, error) {
	if m.socialJetlagFunc != nil {
		return m.socialJetlagFunc(ctx, userID)
	}
	return &engine.SocialJetlag{Category: engine.JetlagLow, DataSufficient: true}, nil
}

func (m *MockScoreService) ShiftLag(ctx context.Context, userID uuid.UUID) (*engine.ShiftLagMetrics, error) {
	if m.shiftLagFunc != nil {
		return m.shiftLagFunc(ctx, userID)
	}
	return &engine.ShiftLagMetrics{Score: 10, Level: engine.ShiftLagLow, DataSufficient: true}, nil
}

func (m *MockScoreService) BingeRisk(ctx context.Context, userID uuid.UUID) (*engine.BingeRisk, error) {
	if m.bingeRiskFunc != nil {
		return m.bingeRiskFunc(ctx, userID)
	}
	return &engine.BingeRisk{Score: 5, Level: engine.BingeRiskLow}, nil
}

func (m *MockScoreService) TonightTarget(ctx context.Context, userID uuid.UUID) (*engine.TonightTarget, error) {
	if m.tonightTargetFunc != nil {
		return m.tonightTargetFunc(ctx, userID)
	}
	return &engine.TonightTarget{TargetHours: 7.5, ShiftCategory: engine.UpcomingNone}, nil
}

func (m *MockScoreService) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardScores, error) {
	if m.dashboardFunc != nil {
		return m.dashboardFunc(ctx, userID)
	}
	return &domain.DashboardScores{}, nil
}

// MockCoachService is a mock implementation of CoachService
type MockCoachService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID) (*domain.CoachResponse, error)
}

func (m *MockCoachService) Generate(ctx context.Context, userID uuid.UUID) (*domain.CoachResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID)
	}
	return &domain.CoachResponse{
		Insights: domain.CoachOutput{
			Summary:      "You are on track.",
			Observations: []string{"Sleep has been consistent."},
			Guidance:     []string{"Keep the same bedtime tonight."},
		},
	}, nil
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	scores []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return true }

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return nil
}
