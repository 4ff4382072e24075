package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`

	// Coaching targets. Zero means "not set"; calculators fall back to
	// their own defaults.
	SleepTargetHours  float64 `gorm:"type:numeric(4,2);not null;default:7.5" json:"sleep_target_hours"`
	CalorieTarget     float64 `gorm:"not null;default:0" json:"calorie_target"`
	ProteinTargetG    float64 `gorm:"not null;default:0" json:"protein_target_g"`
	CarbsTargetG      float64 `gorm:"not null;default:0" json:"carbs_target_g"`
	FatTargetG        float64 `gorm:"not null;default:0" json:"fat_target_g"`
	SatFatLimitG      float64 `gorm:"not null;default:0" json:"sat_fat_limit_g"`
	CaffeineLimitMG   float64 `gorm:"not null;default:0" json:"caffeine_limit_mg"`
	WaterTargetML     float64 `gorm:"not null;default:0" json:"water_target_ml"`
	StepsGoal         float64 `gorm:"not null;default:10000" json:"steps_goal"`
	ActiveMinutesGoal float64 `gorm:"not null;default:0" json:"active_minutes_goal"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone         string   `json:"timezone" validate:"required,timezone"`
	SleepTargetHours *float64 `json:"sleep_target_hours,omitempty" validate:"omitempty,gte=4,lte=12"`
}

// UpdateUserTargetsRequest updates the coaching targets. Omitted fields are
// left unchanged.
type UpdateUserTargetsRequest struct {
	SleepTargetHours  *float64 `json:"sleep_target_hours,omitempty" validate:"omitempty,gte=4,lte=12"`
	CalorieTarget     *float64 `json:"calorie_target,omitempty" validate:"omitempty,gte=0,lte=10000"`
	ProteinTargetG    *float64 `json:"protein_target_g,omitempty" validate:"omitempty,gte=0,lte=1000"`
	CarbsTargetG      *float64 `json:"carbs_target_g,omitempty" validate:"omitempty,gte=0,lte=2000"`
	FatTargetG        *float64 `json:"fat_target_g,omitempty" validate:"omitempty,gte=0,lte=1000"`
	SatFatLimitG      *float64 `json:"sat_fat_limit_g,omitempty" validate:"omitempty,gte=0,lte=500"`
	CaffeineLimitMG   *float64 `json:"caffeine_limit_mg,omitempty" validate:"omitempty,gte=0,lte=2000"`
	WaterTargetML     *float64 `json:"water_target_ml,omitempty" validate:"omitempty,gte=0,lte=10000"`
	StepsGoal         *float64 `json:"steps_goal,omitempty" validate:"omitempty,gte=0,lte=100000"`
	ActiveMinutesGoal *float64 `json:"active_minutes_goal,omitempty" validate:"omitempty,gte=0,lte=1440"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Timezone          string    `json:"timezone"`
	SleepTargetHours  float64   `json:"sleep_target_hours"`
	CalorieTarget     float64   `json:"calorie_target"`
	ProteinTargetG    float64   `json:"protein_target_g"`
	CarbsTargetG      float64   `json:"carbs_target_g"`
	FatTargetG        float64   `json:"fat_target_g"`
	SatFatLimitG      float64   `json:"sat_fat_limit_g"`
	CaffeineLimitMG   float64   `json:"caffeine_limit_mg"`
	WaterTargetML     float64   `json:"water_target_ml"`
	StepsGoal         float64   `json:"steps_goal"`
	ActiveMinutesGoal float64   `json:"active_minutes_goal"`
	CreatedAt         time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Timezone:          u.Timezone,
		SleepTargetHours:  u.SleepTargetHours,
		CalorieTarget:     u.CalorieTarget,
		ProteinTargetG:    u.ProteinTargetG,
		CarbsTargetG:      u.CarbsTargetG,
		FatTargetG:        u.FatTargetG,
		SatFatLimitG:      u.SatFatLimitG,
		CaffeineLimitMG:   u.CaffeineLimitMG,
		WaterTargetML:     u.WaterTargetML,
		StepsGoal:         u.StepsGoal,
		ActiveMinutesGoal: u.ActiveMinutesGoal,
		CreatedAt:         u.CreatedAt,
	}
}
