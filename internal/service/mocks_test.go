package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

// MockSleepLogRepository is a mock implementation of SleepLogRepository
type MockSleepLogRepository struct {
	logs            map[uuid.UUID]*domain.SleepLog
	clientRequestID map[string]*domain.SleepLog
	listResult      []domain.SleepLog
	err             error
}

func NewMockSleepLogRepository() *MockSleepLogRepository {
	return &MockSleepLogRepository{
		logs:            make(map[uuid.UUID]*domain.SleepLog),
		clientRequestID: make(map[string]*domain.SleepLog),
	}
}

func (m *MockSleepLogRepository) Create(ctx context.Context, log *domain.SleepLog) error {
	if m.err != nil {
		return m.err
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()
	m.logs[log.ID] = log
	if log.ClientRequestID != nil {
		key := log.UserID.String() + ":" + *log.ClientRequestID
		m.clientRequestID[key] = log
	}
	return nil
}

func (m *MockSleepLogRepository) Update(ctx context.Context, log *domain.SleepLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs[log.ID] = log
	return nil
}

func (m *MockSleepLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	log, ok := m.logs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return log, nil
}

func (m *MockSleepLogRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepLogFilter) ([]domain.SleepLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.SleepLog, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	var result []domain.SleepLog
	for _, log := range m.logs {
		if log.UserID == userID {
			result = append(result, *log)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.After(result[j].StartAt) })
	return result, nil
}

func (m *MockSleepLogRepository) ListByEndRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.SleepLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SleepLog
	for _, log := range m.logs {
		if log.UserID == userID && !log.EndAt.Before(from) && log.EndAt.Before(to) {
			result = append(result, *log)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EndAt.After(result[j].EndAt) })
	return result, nil
}

func (m *MockSleepLogRepository) HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time, sleepType domain.SleepType, excludeID *uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, log := range m.logs {
		if log.UserID != userID || log.Type != domain.SleepTypeMain {
			continue
		}
		if excludeID != nil && log.ID == *excludeID {
			continue
		}
		// Overlap: new period overlaps if start < existing.end AND end > existing.start
		if startAt.Before(log.EndAt) && endAt.After(log.StartAt) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSleepLogRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := userID.String() + ":" + clientRequestID
	log, ok := m.clientRequestID[key]
	if !ok {
		return nil, nil
	}
	return log, nil
}

func (m *MockSleepLogRepository) SetError(err error) {
	m.err = err
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockShiftRepository is a mock implementation of ShiftRepository
type MockShiftRepository struct {
	shifts map[uuid.UUID]*domain.Shift
	err    error
}

func NewMockShiftRepository() *MockShiftRepository {
	return &MockShiftRepository{
		shifts: make(map[uuid.UUID]*domain.Shift),
	}
}

func (m *MockShiftRepository) Upsert(ctx context.Context, shift *domain.Shift) error {
	if m.err != nil {
		return m.err
	}
	// Replace any existing entry for the same user and date
	for id, existing := range m.shifts {
		if existing.UserID == shift.UserID && existing.Date.Equal(shift.Date) {
			delete(m.shifts, id)
		}
	}
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	shift.CreatedAt = time.Now()
	m.shifts[shift.ID] = shift
	return nil
}

func (m *MockShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shift, error) {
	if m.err != nil {
		return nil, m.err
	}
	shift, ok := m.shifts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return shift, nil
}

func (m *MockShiftRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Shift, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := date.Format("2006-01-02")
	for _, shift := range m.shifts {
		if shift.UserID == userID && shift.Date.Format("2006-01-02") == key {
			return shift, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockShiftRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Shift, error) {
	if m.err != nil {
		return nil, m.err
	}
	fromKey := from.Format("2006-01-02")
	toKey := to.Format("2006-01-02")
	var result []domain.Shift
	for _, shift := range m.shifts {
		key := shift.Date.Format("2006-01-02")
		if shift.UserID == userID && key >= fromKey && key <= toKey {
			result = append(result, *shift)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *MockShiftRepository) NextWorkShift(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.Shift, error) {
	if m.err != nil {
		return nil, m.err
	}
	var next *domain.Shift
	for _, shift := range m.shifts {
		if shift.UserID != userID || shift.Category == domain.ShiftCategoryOff || shift.StartAt == nil {
			continue
		}
		if shift.StartAt.Before(from) || !shift.StartAt.Before(to) {
			continue
		}
		if next == nil || shift.StartAt.Before(*next.StartAt) {
			next = shift
		}
	}
	return next, nil
}

func (m *MockShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.shifts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *MockShiftRepository) SetError(err error) {
	m.err = err
}

// MockMealLogRepository is a mock implementation of MealLogRepository
type MockMealLogRepository struct {
	meals map[uuid.UUID]*domain.MealLog
	err   error
}

func NewMockMealLogRepository() *MockMealLogRepository {
	return &MockMealLogRepository{
		meals: make(map[uuid.UUID]*domain.MealLog),
	}
}

func (m *MockMealLogRepository) Create(ctx context.Context, meal *domain.MealLog) error {
	if m.err != nil {
		return m.err
	}
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	meal.CreatedAt = time.Now()
	m.meals[meal.ID] = meal
	return nil
}

func (m *MockMealLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	meal, ok := m.meals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return meal, nil
}

func (m *MockMealLogRepository) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MealLog
	for _, meal := range m.meals {
		if meal.UserID == userID && !meal.LoggedAt.Before(from) && meal.LoggedAt.Before(to) {
			result = append(result, *meal)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LoggedAt.After(result[j].LoggedAt) })
	return result, nil
}

func (m *MockMealLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.meals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.meals, id)
	return nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	days map[string]*domain.ActivityDay
	err  error
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{
		days: make(map[string]*domain.ActivityDay),
	}
}

func activityKey(userID uuid.UUID, date time.Time) string {
	return userID.String() + ":" + date.Format("2006-01-02")
}

func (m *MockActivityRepository) Upsert(ctx context.Context, day *domain.ActivityDay) error {
	if m.err != nil {
		return m.err
	}
	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}
	day.CreatedAt = time.Now()
	m.days[activityKey(day.UserID, day.Date)] = day
	return nil
}

func (m *MockActivityRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ActivityDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	day, ok := m.days[activityKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return day, nil
}

func (m *MockActivityRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ActivityDay, error) {
	if m.err != nil {
		return nil, m.err
	}
	fromKey := from.Format("2006-01-02")
	toKey := to.Format("2006-01-02")
	var result []domain.ActivityDay
	for _, day := range m.days {
		key := day.Date.Format("2006-01-02")
		if day.UserID == userID && key >= fromKey && key <= toKey {
			result = append(result, *day)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// MockCoachLLM is a mock implementation of llm.CoachLLM
type MockCoachLLM struct {
	output    *domain.CoachOutput
	err       error
	lastCtx   *domain.CoachContext
	callCount int
}

func NewMockCoachLLM(output *domain.CoachOutput) *MockCoachLLM {
	return &MockCoachLLM{output: output}
}

func (m *MockCoachLLM) GenerateInsights(ctx context.Context, coachCtx *domain.CoachContext) (*domain.CoachOutput, error) {
	m.callCount++
	m.lastCtx = coachCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func (m *MockCoachLLM) SetError(err error) {
	m.err = err
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intensityPtr(i domain.ShiftIntensity) *domain.ShiftIntensity {
	return &i
}
