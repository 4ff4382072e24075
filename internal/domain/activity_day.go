package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityDay is one day's movement summary. One row per user per date;
// repeated submissions replace the stored values.
type ActivityDay struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_activity_user_date" json:"user_id"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_activity_user_date" json:"date"`
	Steps         float64   `gorm:"not null;default:0" json:"steps"`
	ActiveMinutes float64   `gorm:"not null;default:0" json:"active_minutes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ActivityDay) TableName() string {
	return "activity_days"
}

// UpsertActivityDayRequest is the request body for recording daily activity.
// @Description Request payload for one day's movement totals.
type UpsertActivityDayRequest struct {
	// Calendar date (YYYY-MM-DD)
	Date string `json:"date" validate:"required,datetime=2006-01-02" example:"2024-01-16"`
	// Step count for the day
	Steps float64 `json:"steps" validate:"gte=0,lte=200000" example:"9400"`
	// Minutes of moderate-or-higher activity
	ActiveMinutes float64 `json:"active_minutes" validate:"gte=0,lte=1440" example:"45"`
}

// ActivityDayResponse is the response body for activity endpoints.
// @Description One day's movement totals.
type ActivityDayResponse struct {
	ID            uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID        uuid.UUID `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Date          string    `json:"date" example:"2024-01-16"`
	Steps         float64   `json:"steps" example:"9400"`
	ActiveMinutes float64   `json:"active_minutes" example:"45"`
	CreatedAt     time.Time `json:"created_at" example:"2024-01-16T21:00:00Z"`
}

func (a *ActivityDay) ToResponse() ActivityDayResponse {
	return ActivityDayResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		Date:          a.Date.Format("2006-01-02"),
		Steps:         a.Steps,
		ActiveMinutes: a.ActiveMinutes,
		CreatedAt:     a.CreatedAt,
	}
}

// ActivityDayListResponse is the response body for listing activity days.
// @Description Activity days within a date range, ascending by date.
type ActivityDayListResponse struct {
	Data []ActivityDayResponse `json:"data"`
}

// ActivityFilter contains filter parameters for listing activity days
type ActivityFilter struct {
	From *time.Time
	To   *time.Time
}
