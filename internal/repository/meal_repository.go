package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
)

type MealLogRepository interface {
	Create(ctx context.Context, meal *domain.MealLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MealLog, error)
	// ListByRange returns meals logged inside [from, to), most recent first.
	ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mealLogRepository struct {
	db *gorm.DB
}

func NewMealLogRepository(db *gorm.DB) MealLogRepository {
	return &mealLogRepository{db: db}
}

func (r *mealLogRepository) Create(ctx context.Context, meal *domain.MealLog) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealLog, error) {
	var meal domain.MealLog
	err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealLogRepository) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealLog, error) {
	var meals []domain.MealLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("logged_at >= ? AND logged_at < ?", from, to).
		Order("logged_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.MealLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
