package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
	"github.com/shiftcoach/shiftcoach-api/internal/llm"
	"github.com/shiftcoach/shiftcoach-api/internal/repository"
	"go.opentelemetry.io/otel/trace"
)

// CoachService generates LLM coaching insights from the score dashboard.
type CoachService interface {
	// Generate creates coaching insights for a user.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.CoachResponse, error)
}

type coachService struct {
	scoreService ScoreService
	llmClient    llm.CoachLLM
	userRepo     repository.UserRepository
}

// NewCoachService creates a new CoachService.
func NewCoachService(
	scoreService ScoreService,
	llmClient llm.CoachLLM,
	userRepo repository.UserRepository,
) CoachService {
	return &coachService{
		scoreService: scoreService,
		llmClient:    llmClient,
		userRepo:     userRepo,
	}
}

func (s *coachService) Generate(ctx context.Context, userID uuid.UUID) (*domain.CoachResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	scores, err := s.scoreService.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	coachCtx := &domain.CoachContext{Scores: *scores}

	output, err := s.llmClient.GenerateInsights(ctx, coachCtx)
	if err != nil {
		return nil, err
	}

	response := &domain.CoachResponse{
		Scores:   *scores,
		Insights: *output,
	}

	// Expose the trace ID so clients can reference this generation.
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		response.TraceID = span.SpanContext().TraceID().String()
	}

	return response, nil
}
