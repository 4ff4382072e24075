package domain

import (
	"time"

	"github.com/google/uuid"
)

// MealLog is one logged eating occasion with its nutrition content.
type MealLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_meal_logs_user_logged" json:"user_id"`
	Slot       string    `gorm:"type:varchar(32);not null" json:"slot"`
	LoggedAt   time.Time `gorm:"not null;index:idx_meal_logs_user_logged,sort:desc" json:"logged_at"`
	Calories   float64   `gorm:"not null;default:0" json:"calories"`
	ProteinG   float64   `gorm:"not null;default:0" json:"protein_g"`
	CarbsG     float64   `gorm:"not null;default:0" json:"carbs_g"`
	FatG       float64   `gorm:"not null;default:0" json:"fat_g"`
	SatFatG    float64   `gorm:"not null;default:0" json:"sat_fat_g"`
	CaffeineMG float64   `gorm:"not null;default:0" json:"caffeine_mg"`
	WaterML    float64   `gorm:"not null;default:0" json:"water_ml"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MealLog) TableName() string {
	return "meal_logs"
}

// CreateMealLogRequest is the request body for logging a meal.
// @Description Request payload for one eating occasion.
type CreateMealLogRequest struct {
	// Meal slot name (breakfast, lunch, dinner, snack, ...)
	Slot string `json:"slot" validate:"required,max=32" example:"lunch"`
	// When the meal was eaten, RFC3339
	LoggedAt   time.Time `json:"logged_at" validate:"required" example:"2024-01-16T12:30:00Z"`
	Calories   float64   `json:"calories" validate:"gte=0,lte=10000" example:"650"`
	ProteinG   float64   `json:"protein_g" validate:"gte=0,lte=1000" example:"35"`
	CarbsG     float64   `json:"carbs_g" validate:"gte=0,lte=2000" example:"70"`
	FatG       float64   `json:"fat_g" validate:"gte=0,lte=1000" example:"20"`
	SatFatG    float64   `json:"sat_fat_g" validate:"gte=0,lte=500" example:"6"`
	CaffeineMG float64   `json:"caffeine_mg" validate:"gte=0,lte=2000" example:"0"`
	WaterML    float64   `json:"water_ml" validate:"gte=0,lte=5000" example:"300"`
}

// MealLogResponse is the response body for meal endpoints.
// @Description One logged meal.
type MealLogResponse struct {
	ID         uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID     uuid.UUID `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Slot       string    `json:"slot" example:"lunch"`
	LoggedAt   time.Time `json:"logged_at" example:"2024-01-16T12:30:00Z"`
	Calories   float64   `json:"calories" example:"650"`
	ProteinG   float64   `json:"protein_g" example:"35"`
	CarbsG     float64   `json:"carbs_g" example:"70"`
	FatG       float64   `json:"fat_g" example:"20"`
	SatFatG    float64   `json:"sat_fat_g" example:"6"`
	CaffeineMG float64   `json:"caffeine_mg" example:"0"`
	WaterML    float64   `json:"water_ml" example:"300"`
	CreatedAt  time.Time `json:"created_at" example:"2024-01-16T12:35:00Z"`
}

func (m *MealLog) ToResponse() MealLogResponse {
	return MealLogResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		Slot:       m.Slot,
		LoggedAt:   m.LoggedAt,
		Calories:   m.Calories,
		ProteinG:   m.ProteinG,
		CarbsG:     m.CarbsG,
		FatG:       m.FatG,
		SatFatG:    m.SatFatG,
		CaffeineMG: m.CaffeineMG,
		WaterML:    m.WaterML,
		CreatedAt:  m.CreatedAt,
	}
}

// MealLogListResponse is the response body for listing meals.
// @Description Meals within a time range, most recent first.
type MealLogListResponse struct {
	Data []MealLogResponse `json:"data"`
}

// MealLogFilter contains filter parameters for listing meals
type MealLogFilter struct {
	From *time.Time
	To   *time.Time
}
