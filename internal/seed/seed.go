package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"gorm.io/gorm"
)

const seededDays = 28

// Run seeds the database with sample shift workers and a rotating
// fortnight of shifts, sleep, meals and activity. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SleepLog{},
		&domain.Shift{},
		&domain.MealLog{},
		&domain.ActivityDay{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam", SleepTargetHours: 7.5, StepsGoal: 10000},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York", SleepTargetHours: 8, StepsGoal: 8000},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo", SleepTargetHours: 7, StepsGoal: 12000},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i, user := range users {
		if err := seedUserFortnight(db, user, i, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

// rotationFor maps a day index onto a simple 2-2-2-1 rotation so every
// seeded user cycles through day, afternoon and night work with off days.
func rotationFor(dayIdx, offset int) domain.ShiftCategory {
	cycle := []domain.ShiftCategory{
		domain.ShiftCategoryDay, domain.ShiftCategoryDay,
		domain.ShiftCategoryAfternoon, domain.ShiftCategoryAfternoon,
		domain.ShiftCategoryNight, domain.ShiftCategoryNight,
		domain.ShiftCategoryOff,
	}
	return cycle[(dayIdx+offset)%len(cycle)]
}

func shiftWindow(category domain.ShiftCategory, date time.Time) (start, end time.Time) {
	switch category {
	case domain.ShiftCategoryDay:
		start = time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, time.UTC)
		end = start.Add(8 * time.Hour)
	case domain.ShiftCategoryAfternoon:
		start = time.Date(date.Year(), date.Month(), date.Day(), 14, 0, 0, 0, time.UTC)
		end = start.Add(8 * time.Hour)
	case domain.ShiftCategoryNight:
		start = time.Date(date.Year(), date.Month(), date.Day(), 22, 0, 0, 0, time.UTC)
		end = start.Add(8 * time.Hour)
	}
	return start, end
}

func seedUserFortnight(db *gorm.DB, user domain.User, offset int, rng *rand.Rand) error {
	now := time.Now().UTC()
	intensity := domain.IntensityModerate

	for i := seededDays; i >= -3; i-- {
		date := now.AddDate(0, 0, -i)
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		category := rotationFor(seededDays-i, offset)

		shift := domain.Shift{
			UserID:   user.ID,
			Date:     day,
			Category: category,
		}
		if category != domain.ShiftCategoryOff {
			start, end := shiftWindow(category, day)
			shift.StartAt = &start
			shift.EndAt = &end
			shift.Intensity = &intensity
		}
		if err := db.Where("user_id = ? AND date = ?", user.ID, day).FirstOrCreate(&shift).Error; err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}

		// Future days get a roster entry only.
		if i < 0 {
			continue
		}

		if err := seedSleepForDay(db, user, day, category, i, rng); err != nil {
			return err
		}
		if err := seedMealsForDay(db, user, day, category, rng); err != nil {
			return err
		}

		activity := domain.ActivityDay{
			UserID:        user.ID,
			Date:          day,
			Steps:         float64(4000 + rng.Intn(9000)),
			ActiveMinutes: float64(15 + rng.Intn(60)),
		}
		if err := db.Where("user_id = ? AND date = ?", user.ID, day).FirstOrCreate(&activity).Error; err != nil {
			return fmt.Errorf("failed to create activity day: %w", err)
		}
	}
	return nil
}

func seedSleepForDay(db *gorm.DB, user domain.User, day time.Time, category domain.ShiftCategory, idx int, rng *rand.Rand) error {
	// Sleep timing tracks the rota: night workers sleep mornings, the
	// rest sleep the night before the shift.
	var bedtime time.Time
	var hours int
	switch category {
	case domain.ShiftCategoryNight:
		bedtime = day.Add(7 * time.Hour).Add(time.Duration(rng.Intn(60)) * time.Minute)
		hours = 5 + rng.Intn(2)
	case domain.ShiftCategoryAfternoon:
		bedtime = day.Add(-2 * time.Hour).Add(time.Duration(rng.Intn(90)) * time.Minute)
		hours = 7 + rng.Intn(2)
	default:
		bedtime = day.Add(-2 * time.Hour).Add(time.Duration(rng.Intn(60)) * time.Minute)
		hours = 6 + rng.Intn(3)
	}
	wakeup := bedtime.Add(time.Duration(hours) * time.Hour)

	clientReqID := fmt.Sprintf("seed-main-%s-%d", user.ID, idx)
	mainSleep := domain.SleepLog{
		UserID:          user.ID,
		StartAt:         bedtime,
		EndAt:           wakeup,
		Quality:         2 + rng.Intn(4),
		Type:            domain.SleepTypeMain,
		LocalTimezone:   user.Timezone,
		ClientRequestID: &clientReqID,
	}
	if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&mainSleep).Error; err != nil {
		return fmt.Errorf("failed to create main sleep log: %w", err)
	}

	// Night workers nap before their shift about half the time.
	if category == domain.ShiftCategoryNight && rng.Float32() < 0.5 {
		napStart := day.Add(18 * time.Hour).Add(time.Duration(rng.Intn(60)) * time.Minute)
		napEnd := napStart.Add(time.Duration(30+rng.Intn(60)) * time.Minute)

		napClientReqID := fmt.Sprintf("seed-nap-%s-%d", user.ID, idx)
		napLog := domain.SleepLog{
			UserID:          user.ID,
			StartAt:         napStart,
			EndAt:           napEnd,
			Quality:         2 + rng.Intn(3),
			Type:            domain.SleepTypeNap,
			LocalTimezone:   user.Timezone,
			ClientRequestID: &napClientReqID,
		}
		if err := db.Where("client_request_id = ?", napClientReqID).FirstOrCreate(&napLog).Error; err != nil {
			return fmt.Errorf("failed to create nap log: %w", err)
		}
	}
	return nil
}

func seedMealsForDay(db *gorm.DB, user domain.User, day time.Time, category domain.ShiftCategory, rng *rand.Rand) error {
	type mealPlan struct {
		slot     string
		hour     int
		calories float64
	}

	plans := []mealPlan{
		{"breakfast", 7, 420},
		{"lunch", 12, 650},
		{"dinner", 19, 700},
	}
	if category == domain.ShiftCategoryNight {
		plans = []mealPlan{
			{"dinner", 20, 700},
			{"night_snack", 1, 450},
			{"breakfast", 8, 350},
		}
	}

	for _, plan := range plans {
		loggedAt := day.Add(time.Duration(plan.hour)*time.Hour + time.Duration(rng.Intn(45))*time.Minute)
		meal := domain.MealLog{
			UserID:     user.ID,
			Slot:       plan.slot,
			LoggedAt:   loggedAt,
			Calories:   plan.calories + float64(rng.Intn(150)),
			ProteinG:   20 + float64(rng.Intn(25)),
			CarbsG:     40 + float64(rng.Intn(50)),
			FatG:       15 + float64(rng.Intn(15)),
			SatFatG:    3 + float64(rng.Intn(6)),
			CaffeineMG: float64(rng.Intn(120)),
			WaterML:    200 + float64(rng.Intn(300)),
		}
		if err := db.Where("user_id = ? AND slot = ? AND logged_at = ?", user.ID, plan.slot, loggedAt).
			FirstOrCreate(&meal).Error; err != nil {
			return fmt.Errorf("failed to create meal log: %w", err)
		}
	}
	return nil
}
