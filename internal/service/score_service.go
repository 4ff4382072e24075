package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/engine"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DeficitWindowDays is the lookback for the weekly sleep deficit.
	DeficitWindowDays = 7

	// SnapshotWindowDays is the lookback for everything else: jetlag
	// baselines, bedtime consistency and shift instability all want up to
	// two weeks of history.
	SnapshotWindowDays = 14

	// NextShiftLookahead bounds the search for tonight's upcoming shift.
	NextShiftLookahead = 36 * time.Hour
)

// mealWindowsByCategory maps a rostered day to its recommended eating
// windows. Night workers get a pre-shift dinner and a controlled mid-shift
// meal instead of the standard three slots.
var mealWindowsByCategory = map[domain.ShiftCategory][]engine.MealWindow{
	domain.ShiftCategoryDay: {
		{Slot: "breakfast", WindowStart: "07:00", WindowEnd: "09:00"},
		{Slot: "lunch", WindowStart: "12:00", WindowEnd: "14:00"},
		{Slot: "dinner", WindowStart: "18:00", WindowEnd: "20:00"},
	},
	domain.ShiftCategoryMorning: {
		{Slot: "breakfast", WindowStart: "05:00", WindowEnd: "06:30"},
		{Slot: "lunch", WindowStart: "11:00", WindowEnd: "13:00"},
		{Slot: "dinner", WindowStart: "17:00", WindowEnd: "19:00"},
	},
	domain.ShiftCategoryAfternoon: {
		{Slot: "breakfast", WindowStart: "08:00", WindowEnd: "10:00"},
		{Slot: "lunch", WindowStart: "13:00", WindowEnd: "14:30"},
		{Slot: "dinner", WindowStart: "20:00", WindowEnd: "22:00"},
	},
	domain.ShiftCategoryNight: {
		{Slot: "breakfast", WindowStart: "14:00", WindowEnd: "16:00"},
		{Slot: "dinner", WindowStart: "19:00", WindowEnd: "21:00"},
		{Slot: "snack", WindowStart: "01:00", WindowEnd: "02:00"},
	},
	domain.ShiftCategoryOff: {
		{Slot: "breakfast", WindowStart: "08:00", WindowEnd: "10:00"},
		{Slot: "lunch", WindowStart: "12:30", WindowEnd: "14:30"},
		{Slot: "dinner", WindowStart: "18:30", WindowEnd: "20:30"},
	},
}

// ScoreService computes every calculator result from persisted records.
type ScoreService interface {
	ShiftRhythm(ctx context.Context, userID uuid.UUID) (*engine.ShiftRhythmScore, error)
	SleepDeficit(ctx context.Context, userID uuid.UUID) (*engine.SleepDeficit, error)
	Circadian(ctx context.Context, userID uuid.UUID) (*engine.CircadianPhase, error)
	SocialJetlag(ctx context.Context, userID uuid.UUID) (*engine.SocialJetlag, error)
	ShiftLag(ctx context.Context, userID uuid.UUID) (*engine.ShiftLagMetrics, error)
	BingeRisk(ctx context.Context, userID uuid.UUID) (*engine.BingeRisk, error)
	TonightTarget(ctx context.Context, userID uuid.UUID) (*engine.TonightTarget, error)
	// Dashboard computes every score from one data snapshot so that the
	// signals feeding each other (sleep debt, circadian midpoint) agree.
	Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardScores, error)
}

type scoreService struct {
	userRepo     repository.UserRepository
	sleepLogRepo repository.SleepLogRepository
	shiftRepo    repository.ShiftRepository
	mealRepo     repository.MealLogRepository
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	userRepo repository.UserRepository,
	sleepLogRepo repository.SleepLogRepository,
	shiftRepo repository.ShiftRepository,
	mealRepo repository.MealLogRepository,
	activityRepo repository.ActivityRepository,
) ScoreService {
	return &scoreService{
		userRepo:     userRepo,
		sleepLogRepo: sleepLogRepo,
		shiftRepo:    shiftRepo,
		mealRepo:     mealRepo,
		activityRepo: activityRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// scoreSnapshot is everything the calculators need, loaded once.
type scoreSnapshot struct {
	user       *domain.User
	nowLocal   time.Time
	sessions   []engine.SleepSession // most recent first
	dailySleep []engine.DailySleep   // last 7 calendar days
	shiftsAsc  []engine.ShiftDayRecord // through today, oldest first
	meals      []engine.MealEvent // most recent first
	todayShift *domain.Shift
	nextShift  *engine.UpcomingShift
	nutrition  engine.NutritionSnapshot
	activity   engine.ActivitySnapshot
	mealTiming engine.MealTimingSnapshot
}

func (s *scoreService) loadSnapshot(ctx context.Context, userID uuid.UUID) (*scoreSnapshot, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if l, err := time.LoadLocation(user.Timezone); err == nil {
		loc = l
	}
	now := s.now()
	nowLocal := now.In(loc)

	from := now.AddDate(0, 0, -SnapshotWindowDays)
	logs, err := s.sleepLogRepo.ListByEndRange(ctx, userID, from, now.Add(time.Hour))
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.ListByDateRange(ctx, userID, nowLocal.AddDate(0, 0, -SnapshotWindowDays), nowLocal.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}

	meals, err := s.mealRepo.ListByRange(ctx, userID, now.AddDate(0, 0, -DeficitWindowDays), now.Add(time.Hour))
	if err != nil {
		return nil, err
	}

	nextShift, err := s.shiftRepo.NextWorkShift(ctx, userID, now, now.Add(NextShiftLookahead))
	if err != nil {
		return nil, err
	}

	snap := &scoreSnapshot{
		user:     user,
		nowLocal: nowLocal,
	}

	snap.sessions = toEngineSessions(logs)
	snap.dailySleep = bucketDailySleep(snap.sessions, nowLocal)

	todayKey := nowLocal.Format("2006-01-02")
	for i := range shifts {
		shift := shifts[i]
		dayKey := shift.Date.Format("2006-01-02")
		if dayKey == todayKey {
			snap.todayShift = &shifts[i]
		}
		// Future rostered days inform today's plan only; the calculators
		// score shifts already worked, not shifts still ahead.
		if dayKey > todayKey {
			continue
		}
		snap.shiftsAsc = append(snap.shiftsAsc, toEngineShift(shift, loc))
	}

	for _, meal := range meals {
		snap.meals = append(snap.meals, engine.MealEvent{
			Slot:     meal.Slot,
			LoggedAt: meal.LoggedAt.In(loc),
		})
	}

	if nextShift != nil && nextShift.StartAt != nil {
		snap.nextShift = &engine.UpcomingShift{Start: nextShift.StartAt.In(loc)}
	}

	snap.nutrition = buildNutritionSnapshot(user, meals, nowLocal)
	snap.mealTiming = buildMealTimingSnapshot(snap, nowLocal)

	activityDay, err := s.activityRepo.GetByDate(ctx, userID, nowLocal)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	snap.activity = engine.ActivitySnapshot{
		StepsGoal:         user.StepsGoal,
		ActiveMinutesGoal: user.ActiveMinutesGoal,
	}
	if activityDay != nil {
		snap.activity.Steps = activityDay.Steps
		snap.activity.ActiveMinutes = activityDay.ActiveMinutes
	}

	return snap, nil
}

// toEngineSessions converts stored logs into calculator sessions in each
// log's local timezone, dropping malformed records instead of letting them
// poison the math.
func toEngineSessions(logs []domain.SleepLog) []engine.SleepSession {
	sessions := make([]engine.SleepSession, 0, len(logs))
	for _, log := range logs {
		if !log.EndAt.After(log.StartAt) {
			continue
		}
		loc := time.UTC
		if l, err := time.LoadLocation(log.LocalTimezone); err == nil {
			loc = l
		}
		end := log.EndAt.In(loc)
		sessions = append(sessions, engine.SleepSession{
			Date:          end,
			Start:         log.StartAt.In(loc),
			End:           end,
			DurationHours: log.DurationHours(),
			Quality:       log.Quality,
			IsMain:        log.Type == domain.SleepTypeMain,
		})
	}
	return sessions
}

// bucketDailySleep sums main-sleep minutes per calendar day over the
// deficit window.
func bucketDailySleep(sessions []engine.SleepSession, nowLocal time.Time) []engine.DailySleep {
	totals := make(map[string]float64)
	for _, s := range sessions {
		if !s.IsMain {
			continue
		}
		totals[engine.CalendarDayKey(s.Date)] += s.DurationHours * 60
	}

	days := make([]engine.DailySleep, 0, DeficitWindowDays)
	for i := 0; i < DeficitWindowDays; i++ {
		key := engine.CalendarDayKey(nowLocal.AddDate(0, 0, -i))
		days = append(days, engine.DailySleep{Date: key, TotalMinutes: totals[key]})
	}
	return days
}

func toEngineShift(shift domain.Shift, loc *time.Location) engine.ShiftDayRecord {
	record := engine.ShiftDayRecord{
		Date:     shift.Date,
		Category: engine.ShiftCategory(shift.Category),
	}
	if shift.StartAt != nil {
		start := shift.StartAt.In(loc)
		record.Start = &start
	}
	if shift.EndAt != nil {
		end := shift.EndAt.In(loc)
		record.End = &end
	}
	if shift.Intensity != nil {
		record.Intensity = string(*shift.Intensity)
	}
	return record
}

func buildNutritionSnapshot(user *domain.User, meals []domain.MealLog, nowLocal time.Time) engine.NutritionSnapshot {
	todayKey := nowLocal.Format("2006-01-02")
	snap := engine.NutritionSnapshot{
		CalorieTarget: user.CalorieTarget,
		Protein:       engine.MacroTarget{Target: user.ProteinTargetG},
		Carbs:         engine.MacroTarget{Target: user.CarbsTargetG},
		Fat:           engine.MacroTarget{Target: user.FatTargetG},
		SatFat:        engine.LimitTarget{Limit: user.SatFatLimitG},
		Caffeine:      engine.LimitTarget{Limit: user.CaffeineLimitMG},
		WaterTargetML: user.WaterTargetML,
	}
	for _, meal := range meals {
		if meal.LoggedAt.In(nowLocal.Location()).Format("2006-01-02") != todayKey {
			continue
		}
		snap.ConsumedCalories += meal.Calories
		snap.Protein.Consumed += meal.ProteinG
		snap.Carbs.Consumed += meal.CarbsG
		snap.Fat.Consumed += meal.FatG
		snap.SatFat.Consumed += meal.SatFatG
		snap.Caffeine.Consumed += meal.CaffeineMG
		snap.WaterConsumedML += meal.WaterML
	}
	return snap
}

func buildMealTimingSnapshot(snap *scoreSnapshot, nowLocal time.Time) engine.MealTimingSnapshot {
	category := domain.ShiftCategoryOff
	if snap.todayShift != nil {
		category = snap.todayShift.Category
	}

	todayKey := nowLocal.Format("2006-01-02")
	var today []engine.MealEvent
	for _, meal := range snap.meals {
		if engine.CalendarDayKey(meal.LoggedAt) == todayKey {
			today = append(today, meal)
		}
	}

	return engine.MealTimingSnapshot{
		Recommended: mealWindowsByCategory[category],
		Actual:      today,
	}
}

func (s *scoreService) ShiftRhythm(ctx context.Context, userID uuid.UUID) (*engine.ShiftRhythmScore, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := computeShiftRhythm(snap)
	return &result, nil
}

func (s *scoreService) SleepDeficit(ctx context.Context, userID uuid.UUID) (*engine.SleepDeficit, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := computeDeficit(snap)
	return &result, nil
}

func (s *scoreService) Circadian(ctx context.Context, userID uuid.UUID) (*engine.CircadianPhase, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	deficit := computeDeficit(snap)
	result := computeCircadian(snap, deficit)
	if result == nil {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

func (s *scoreService) SocialJetlag(ctx context.Context, userID uuid.UUID) (*engine.SocialJetlag, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := engine.CalculateSocialJetlag(snap.sessions, snap.nowLocal)
	return &result, nil
}

func (s *scoreService) ShiftLag(ctx context.Context, userID uuid.UUID) (*engine.ShiftLagMetrics, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	deficit := computeDeficit(snap)
	circadian := computeCircadian(snap, deficit)
	result := computeShiftLag(snap, circadian)
	return &result, nil
}

func (s *scoreService) BingeRisk(ctx context.Context, userID uuid.UUID) (*engine.BingeRisk, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	deficit := computeDeficit(snap)
	circadian := computeCircadian(snap, deficit)
	shiftLag := computeShiftLag(snap, circadian)
	result := computeBingeRisk(snap, deficit, circadian, shiftLag)
	return &result, nil
}

func (s *scoreService) TonightTarget(ctx context.Context, userID uuid.UUID) (*engine.TonightTarget, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	deficit := computeDeficit(snap)
	result := engine.CalculateTonightTarget(deficit.WeeklyDeficit, snap.nextShift)
	return &result, nil
}

func (s *scoreService) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardScores, error) {
	tracer := otel.Tracer("shiftcoach-api/scores")
	ctx, span := tracer.Start(ctx, "ScoreService.Dashboard",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
		),
	)
	defer span.End()

	inputPayload := map[string]any{"user_id": userID.String()}
	if inputJSON, err := json.Marshal(inputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	deficit := computeDeficit(snap)
	circadian := computeCircadian(snap, deficit)
	shiftLag := computeShiftLag(snap, circadian)
	jetlag := engine.CalculateSocialJetlag(snap.sessions, snap.nowLocal)
	bingeRisk := computeBingeRisk(snap, deficit, circadian, shiftLag)
	tonight := engine.CalculateTonightTarget(deficit.WeeklyDeficit, snap.nextShift)

	scores := &domain.DashboardScores{
		ShiftRhythm:  computeShiftRhythm(snap),
		SleepDeficit: deficit,
		SocialJetlag: jetlag,
		ShiftLag:     shiftLag,
		BingeRisk:    bingeRisk,
		Tonight:      tonight,
	}
	if circadian != nil {
		scores.Circadian = *circadian
	}

	if outputJSON, err := json.Marshal(scores); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return scores, nil
}

func computeDeficit(snap *scoreSnapshot) engine.SleepDeficit {
	return engine.CalculateSleepDeficit(snap.dailySleep, snap.user.SleepTargetHours, snap.nowLocal)
}

// computeCircadian returns nil when no main sleep exists to anchor the
// midpoint.
func computeCircadian(snap *scoreSnapshot, deficit engine.SleepDeficit) *engine.CircadianPhase {
	var latest *engine.SleepSession
	var bedtimes, wakeMinutes []float64
	for i := range snap.sessions {
		s := snap.sessions[i]
		if !s.IsMain {
			continue
		}
		if latest == nil {
			latest = &snap.sessions[i]
		}
		bedtimes = append(bedtimes, engine.ClockHours(s.Start))
		wakeMinutes = append(wakeMinutes, engine.ClockMinutes(s.End))
	}
	if latest == nil {
		return nil
	}

	category := engine.ShiftOff
	if snap.todayShift != nil {
		category = engine.ShiftCategory(snap.todayShift.Category)
	}

	// Bedtimes straddle midnight on most rosters; a plain mean of 23:30
	// and 00:30 would land at noon.
	result := engine.CalculateCircadianPhase(engine.CircadianInput{
		SleepStart:           latest.Start,
		SleepEnd:             latest.End,
		AvgBedtimeMinutes:    engine.CircularMeanHours(bedtimes) * 60,
		AvgWakeMinutes:       engine.Mean(wakeMinutes),
		BedtimeStdDevMinutes: engine.CircularStdDevHours(bedtimes) * 60,
		SleepDurationHours:   latest.DurationHours,
		SleepDebtHours:       deficit.WeeklyDeficit,
		Shift:                category,
	})
	return &result
}

func computeShiftLag(snap *scoreSnapshot, circadian *engine.CircadianPhase) engine.ShiftLagMetrics {
	var midpoint *float64
	if circadian != nil {
		m := circadian.MidpointMinutes
		midpoint = &m
	}

	// Only days with logged sleep participate; unlogged days mean "no
	// record", not "zero hours slept".
	var sleepDays []engine.DailySleep
	for _, d := range snap.dailySleep {
		if d.TotalMinutes > 0 {
			sleepDays = append(sleepDays, d)
		}
	}
	return engine.CalculateShiftLag(sleepDays, snap.shiftsAsc, midpoint)
}

func computeBingeRisk(snap *scoreSnapshot, deficit engine.SleepDeficit, circadian *engine.CircadianPhase, shiftLag engine.ShiftLagMetrics) engine.BingeRisk {
	in := engine.BingeRiskInputs{
		Sleep:  snap.sessions,
		Shifts: reverseShifts(snap.shiftsAsc),
		Meals:  snap.meals,
		Now:    snap.nowLocal,
	}
	if deficit.DataSufficient {
		debt := deficit.WeeklyDeficit
		in.SleepDebtHours = &debt
	}
	if circadian != nil {
		alignment := circadian.AlignmentScore
		in.AlignmentScore = &alignment
	}
	if shiftLag.DataSufficient {
		lag := float64(shiftLag.Score)
		in.ShiftLagScore = &lag
	}
	if snap.todayShift != nil && snap.todayShift.Intensity != nil {
		in.ActivityIntensity = string(*snap.todayShift.Intensity)
	}
	return engine.CalculateBingeRisk(in)
}

func computeShiftRhythm(snap *scoreSnapshot) engine.ShiftRhythmScore {
	return engine.CalculateShiftRhythm(engine.ShiftRhythmInputs{
		Sleep:            snap.sessions,
		Shifts:           snap.shiftsAsc,
		Nutrition:        snap.nutrition,
		Activity:         snap.activity,
		MealTiming:       snap.mealTiming,
		TargetSleepHours: snap.user.SleepTargetHours,
	})
}

func reverseShifts(asc []engine.ShiftDayRecord) []engine.ShiftDayRecord {
	out := make([]engine.ShiftDayRecord, len(asc))
	for i, s := range asc {
		out[len(asc)-1-i] = s
	}
	return out
}
