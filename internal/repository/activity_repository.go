package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	// Upsert inserts or replaces the activity totals for the user and date.
	Upsert(ctx context.Context, day *domain.ActivityDay) error
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ActivityDay, error)
	ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ActivityDay, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Upsert(ctx context.Context, day *domain.ActivityDay) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"steps", "active_minutes"}),
		}).
		Create(day).Error
}

func (r *activityRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.ActivityDay, error) {
	var day domain.ActivityDay
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		First(&day).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

func (r *activityRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.ActivityDay, error) {
	var days []domain.ActivityDay
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}
