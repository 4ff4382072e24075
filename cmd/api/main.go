// ShiftCoach API
//
// REST API for shift-worker health coaching.
//
//	@title			ShiftCoach API
//	@version		1.0
//	@description	Log sleep, shifts, meals and activity; compute circadian and shift-rhythm scores; generate non-medical LLM coaching.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management and coaching targets
//
//	@tag.name			sleep-logs
//	@tag.description	Sleep session tracking endpoints
//
//	@tag.name			shifts
//	@tag.description	Work roster endpoints
//
//	@tag.name			meals
//	@tag.description	Meal logging endpoints
//
//	@tag.name			activity
//	@tag.description	Daily movement endpoints
//
//	@tag.name			scores
//	@tag.description	Computed circadian and rhythm scores
//
//	@tag.name			coach
//	@tag.description	LLM coaching insights and feedback
package main

import (
	"context"
	"net/http"

	"github.com/shiftcoach/shiftcoach-api/internal/api"
	"github.com/shiftcoach/shiftcoach-api/internal/api/handler"
	"github.com/shiftcoach/shiftcoach-api/internal/config"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/langfuse"
	"github.com/shiftcoach/shiftcoach-api/internal/llm"
	"github.com/shiftcoach/shiftcoach-api/internal/logging"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"github.com/shiftcoach/shiftcoach-api/internal/seed"
	"github.com/shiftcoach/shiftcoach-api/internal/service"
	"github.com/shiftcoach/shiftcoach-api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	log := logging.NewProduction()

	// Initialize tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "shiftcoach-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Warnf("Tracer shutdown failed: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Database connection established")

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SleepLog{},
		&domain.Shift{},
		&domain.MealLog{},
		&domain.ActivityDay{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database migration completed")

	if cfg.Seed {
		log.Info("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sleepLogRepo := repository.NewSleepLogRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	mealRepo := repository.NewMealLogRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	sleepLogService := service.NewSleepLogService(sleepLogRepo, userRepo)
	shiftService := service.NewShiftService(shiftRepo, userRepo)
	mealService := service.NewMealLogService(mealRepo, userRepo)
	activityService := service.NewActivityService(activityRepo, userRepo)
	scoreService := service.NewScoreService(userRepo, sleepLogRepo, shiftRepo, mealRepo, activityRepo)

	// Langfuse client for coach feedback scores (no-op when not configured)
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}, log)

	// The coach system prompt can be managed in Langfuse; falls back to
	// the local cache, then the built-in prompt.
	var coachPrompt string
	if cfg.CoachPromptName != "" || cfg.CoachPromptPath != "" {
		coachPrompt, err = langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
			BaseURL:     cfg.LangfuseBaseURL,
			PublicKey:   cfg.LangfusePublicKey,
			SecretKey:   cfg.LangfuseSecretKey,
			PromptName:  cfg.CoachPromptName,
			PromptLabel: cfg.CoachPromptLabel,
			SavePath:    cfg.CoachPromptPath,
		}, log)
		if err != nil {
			log.Infof("Using built-in coach prompt: %v", err)
			coachPrompt = ""
		}
	}

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAICoachModel, coachPrompt)
	if openaiClient == nil {
		log.Warn("OpenAI API key not configured, coach insights endpoint will be unavailable")
	}

	coachService := service.NewCoachService(scoreService, openaiClient, userRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sleepLogHandler := handler.NewSleepLogHandler(sleepLogService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	mealHandler := handler.NewMealHandler(mealService)
	activityHandler := handler.NewActivityHandler(activityService)
	scoresHandler := handler.NewScoresHandler(scoreService)
	coachHandler := handler.NewCoachHandler(coachService, langfuseClient)

	// Setup router
	router := api.NewRouter(
		log,
		userHandler,
		sleepLogHandler,
		shiftHandler,
		mealHandler,
		activityHandler,
		scoresHandler,
		coachHandler,
	)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Infof("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
