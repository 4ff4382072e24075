package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShiftCategory classifies a rostered day.
// @Description Rostered shift category.
type ShiftCategory string

const (
	ShiftCategoryDay       ShiftCategory = "day"
	ShiftCategoryNight     ShiftCategory = "night"
	ShiftCategoryMorning   ShiftCategory = "morning"
	ShiftCategoryAfternoon ShiftCategory = "afternoon"
	ShiftCategoryOff       ShiftCategory = "off"
)

// ShiftIntensity is the self-reported physical demand of a shift.
type ShiftIntensity string

const (
	IntensityVeryLight ShiftIntensity = "very_light"
	IntensityLight     ShiftIntensity = "light"
	IntensityModerate  ShiftIntensity = "moderate"
	IntensityBusy      ShiftIntensity = "busy"
	IntensityIntense   ShiftIntensity = "intense"
)

// Shift is one rostered day. StartAt/EndAt are optional; label-only rota
// entries carry just the category. One shift per user per date.
type Shift struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_shifts_user_date" json:"user_id"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_shifts_user_date" json:"date"`
	Category  ShiftCategory   `gorm:"type:varchar(16);not null" json:"category"`
	StartAt   *time.Time      `json:"start_at,omitempty"`
	EndAt     *time.Time      `json:"end_at,omitempty"`
	Intensity *ShiftIntensity `gorm:"type:varchar(16)" json:"intensity,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Shift) TableName() string {
	return "shifts"
}

// IsWork reports whether the shift represents a working day.
func (s *Shift) IsWork() bool {
	return s.Category != ShiftCategoryOff
}

// CreateShiftRequest is the request body for creating or replacing a shift.
// @Description Request payload for one rostered day.
type CreateShiftRequest struct {
	// Rostered calendar date (YYYY-MM-DD)
	Date string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-01-16"`
	// Shift category
	Category ShiftCategory `json:"category" validate:"required,oneof=day night morning afternoon off" example:"night" enums:"day,night,morning,afternoon,off"`
	// Shift start time in RFC3339 format (optional for label-only entries)
	StartAt *time.Time `json:"start_at,omitempty" example:"2024-01-16T22:00:00Z"`
	// Shift end time in RFC3339 format (must accompany start_at)
	EndAt *time.Time `json:"end_at,omitempty" example:"2024-01-17T06:00:00Z"`
	// Physical demand of the shift
	Intensity *ShiftIntensity `json:"intensity,omitempty" validate:"omitempty,oneof=very_light light moderate busy intense" example:"busy" enums:"very_light,light,moderate,busy,intense"`
}

// ShiftResponse is the response body for shift endpoints.
// @Description One rostered day.
type ShiftResponse struct {
	ID        uuid.UUID       `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID    uuid.UUID       `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Date      string          `json:"date" example:"2024-01-16"`
	Category  ShiftCategory   `json:"category" example:"night"`
	StartAt   *time.Time      `json:"start_at,omitempty" example:"2024-01-16T22:00:00Z"`
	EndAt     *time.Time      `json:"end_at,omitempty" example:"2024-01-17T06:00:00Z"`
	Intensity *ShiftIntensity `json:"intensity,omitempty" example:"busy"`
	CreatedAt time.Time       `json:"created_at" example:"2024-01-15T12:00:00Z"`
}

func (s *Shift) ToResponse() ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Date:      s.Date.Format("2006-01-02"),
		Category:  s.Category,
		StartAt:   s.StartAt,
		EndAt:     s.EndAt,
		Intensity: s.Intensity,
		CreatedAt: s.CreatedAt,
	}
}

// ShiftListResponse is the response body for listing shifts.
// @Description Shifts within a date range, ascending by date.
type ShiftListResponse struct {
	Data []ShiftResponse `json:"data"`
}

// ShiftFilter contains filter parameters for listing shifts
type ShiftFilter struct {
	From *time.Time
	To   *time.Time
}
