package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/shiftcoach/shiftcoach-api/docs"
	"github.com/shiftcoach/shiftcoach-api/internal/api/handler"
	"github.com/shiftcoach/shiftcoach-api/internal/api/middleware"
	"github.com/shiftcoach/shiftcoach-api/internal/logging"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	log             logging.Logger
	userHandler     *handler.UserHandler
	sleepLogHandler *handler.SleepLogHandler
	shiftHandler    *handler.ShiftHandler
	mealHandler     *handler.MealHandler
	activityHandler *handler.ActivityHandler
	scoresHandler   *handler.ScoresHandler
	coachHandler    *handler.CoachHandler
}

func NewRouter(
	log logging.Logger,
	userHandler *handler.UserHandler,
	sleepLogHandler *handler.SleepLogHandler,
	shiftHandler *handler.ShiftHandler,
	mealHandler *handler.MealHandler,
	activityHandler *handler.ActivityHandler,
	scoresHandler *handler.ScoresHandler,
	coachHandler *handler.CoachHandler,
) *Router {
	return &Router{
		log:             log,
		userHandler:     userHandler,
		sleepLogHandler: sleepLogHandler,
		shiftHandler:    shiftHandler,
		mealHandler:     mealHandler,
		activityHandler: activityHandler,
		scoresHandler:   scoresHandler,
		coachHandler:    coachHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.log))
	r.Use(middleware.Logger(rt.log))
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetByID)
				r.Patch("/targets", rt.userHandler.UpdateTargets)

				r.Route("/sleep-logs", func(r chi.Router) {
					r.Post("/", rt.sleepLogHandler.Create)
					r.Get("/", rt.sleepLogHandler.List)
					r.Patch("/{logId}", rt.sleepLogHandler.Update)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Put("/", rt.shiftHandler.Upsert)
					r.Get("/", rt.shiftHandler.List)
					r.Delete("/{shiftId}", rt.shiftHandler.Delete)
				})

				r.Route("/meals", func(r chi.Router) {
					r.Post("/", rt.mealHandler.Create)
					r.Get("/", rt.mealHandler.List)
					r.Delete("/{mealId}", rt.mealHandler.Delete)
				})

				r.Route("/activity", func(r chi.Router) {
					r.Put("/", rt.activityHandler.Upsert)
					r.Get("/", rt.activityHandler.List)
				})

				r.Route("/scores", func(r chi.Router) {
					r.Get("/shift-rhythm", rt.scoresHandler.GetShiftRhythm)
					r.Get("/sleep-deficit", rt.scoresHandler.GetSleepDeficit)
					r.Get("/circadian", rt.scoresHandler.GetCircadian)
					r.Get("/social-jetlag", rt.scoresHandler.GetSocialJetlag)
					r.Get("/shift-lag", rt.scoresHandler.GetShiftLag)
					r.Get("/binge-risk", rt.scoresHandler.GetBingeRisk)
					r.Get("/tonight", rt.scoresHandler.GetTonight)
					r.Get("/dashboard", rt.scoresHandler.GetDashboard)
				})

				r.Route("/coach", func(r chi.Router) {
					r.Get("/insights", rt.coachHandler.GetInsights)
					r.Post("/insights/feedback", rt.coachHandler.PostFeedback)
				})
			})
		})
	})

	return r
}
