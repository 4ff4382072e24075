package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftRepository interface {
	// Upsert inserts the shift or replaces the existing row for the same
	// user and date. The rota is declarative: re-posting a day overwrites it.
	Upsert(ctx context.Context, shift *domain.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shift, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Shift, error)
	ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Shift, error)
	// NextWorkShift returns the earliest non-off shift whose start falls in
	// [from, to), or nil when nothing is rostered in that window.
	NextWorkShift(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.Shift, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Upsert(ctx context.Context, shift *domain.Shift) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "start_at", "end_at", "intensity"}),
		}).
		Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shift, error) {
	var shift domain.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Shift, error) {
	var shift domain.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		First(&shift).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) ListByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Shift, error) {
	var shifts []domain.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepository) NextWorkShift(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.Shift, error) {
	var shift domain.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("category <> ?", domain.ShiftCategoryOff).
		Where("start_at IS NOT NULL").
		Where("start_at >= ? AND start_at < ?", from, to).
		Order("start_at ASC").
		First(&shift).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Shift{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
