package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/shiftcoach/shiftcoach-api/internal/domain"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const defaultSystemPrompt = `You are a non-medical health coach for shift workers.

You receive a snapshot of computed scores for a single user: a shift-rhythm composite, weekly sleep deficit, circadian alignment, social jetlag, ShiftLag (circadian strain from shift work), binge-eating risk, and tonight's recommended sleep target. You must base your conclusions only on the provided data.

Your goals:
- Describe the user's current state in clear, neutral language.
- Explain how their recent shifts are driving the scores (night work, rotation, sleep debt).
- Connect the binge-risk drivers to concrete eating and sleeping behavior.
- Anchor the advice on tonight's sleep target and the next shift.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines (sleep timing, meal timing, wind-down habits, light exposure).
- If a score is flagged as having insufficient data, say the data is limited instead of interpreting the number.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing where the user stands right now.",
  "observations": [
    "3-6 bullet points about what the scores show and which shifts or habits drive them.",
    "At least one item about the relationship between their rota and their sleep.",
    "If binge risk is elevated, one item naming its top driver."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include tonight's sleep target with the reason behind it.",
    "If meal timing contributed, include one suggestion about when to eat around the next shift."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's current scores.

- "shift_rhythm" is the 0-10 dashboard composite with its 0-100 sub-scores.
- "sleep_deficit" is the signed weekly deficit in hours with a per-day breakdown.
- "circadian" and "social_jetlag" describe body-clock alignment and drift.
- "shift_lag" decomposes circadian strain into sleep debt, biological-night work and schedule instability.
- "binge_risk" is 0-100 with its top drivers.
- "tonight" is the recommended sleep duration for the coming night.

Fields named "data_sufficient" mark whether enough data backs the number.

JSON:

%s

Based on this data, respond in the required JSON format.`

// CoachLLM is the interface for generating coaching insights using an LLM.
type CoachLLM interface {
	// GenerateInsights takes a score snapshot and returns LLM-generated coaching.
	GenerateInsights(ctx context.Context, coachCtx *domain.CoachContext) (*domain.CoachOutput, error)
}

// OpenAIClient implements CoachLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for generating insights.
// An empty systemPrompt falls back to the built-in coach prompt.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model, systemPrompt string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateInsights calls OpenAI to generate coaching insights.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, coachCtx *domain.CoachContext) (*domain.CoachOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	// Serialize context to JSON
	contextJSON, err := json.MarshalIndent(coachCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	// Call OpenAI
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	// Parse the JSON response
	var output domain.CoachOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
