package service

import (
	"alcyxob/coach-studio/internal/ai"
	"alcyxob/coach-studio/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Suggestion outcomes, used for metrics.
const (
	SuggestionOK      = "ok"
	SuggestionEmpty   = "empty"
	SuggestionInvalid = "invalid"
	SuggestionFailed  = "failed"
)

// SuggestionMetrics counts suggestion calls by outcome.
type SuggestionMetrics interface {
	SuggestionOutcome(outcome string)
}

type nopSuggestionMetrics struct{}

func (nopSuggestionMetrics) SuggestionOutcome(string) {}

// SuggestionService asks the AI runner for exercise suggestions.
type SuggestionService interface {
	// SuggestExercises never returns a malformed response: anything that does not
	// match the expected shape degrades to an empty suggestion list. Runner
	// errors are returned wrapped.
	SuggestExercises(ctx context.Context, req domain.SuggestionRequest) (*domain.SuggestionResponse, error)
}

type suggestionService struct {
	runner  ai.PromptRunner
	metrics SuggestionMetrics
}

// NewSuggestionService creates a new instance of suggestionService. metrics may be nil.
func NewSuggestionService(runner ai.PromptRunner, metrics SuggestionMetrics) SuggestionService {
	if metrics == nil {
		metrics = nopSuggestionMetrics{}
	}
	return &suggestionService{
		runner:  runner,
		metrics: metrics,
	}
}

// suggestionPromptInput is exactly what the runner receives.
type suggestionPromptInput struct {
	MuscleGroup        string `json:"muscleGroup"`
	EquipmentAvailable string `json:"equipmentAvailable,omitempty"`
	ExerciseCount      int    `json:"exerciseCount"`
}

type suggestionInput struct {
	MuscleGroup   string `validate:"required"`
	ExerciseCount int    `validate:"min=1,max=20"`
}

var exerciseSuggestionPrompt = ai.PromptDefinition{
	Name: "suggest_exercises",
	Template: `You are an experienced strength and conditioning coach.
Suggest {{.ExerciseCount}} exercises that target the {{.MuscleGroup}} muscle group.
{{- if .EquipmentAvailable}}
Only use the following equipment: {{.EquipmentAvailable}}.
{{- else}}
Assume a standard commercial gym.
{{- end}}
For every exercise give a short description of how to perform it, a recommended
number of sets as a range (for example "3-4") and a recommended number of
repetitions as a range (for example "8-12").`,
	OutputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "suggestedExercises": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "sets": {"type": "string"},
          "reps": {"type": "string"}
        },
        "required": ["name", "description", "sets", "reps"],
        "additionalProperties": false
      }
    }
  },
  "required": ["suggestedExercises"],
  "additionalProperties": false
}`),
}

func emptySuggestions() *domain.SuggestionResponse {
	return &domain.SuggestionResponse{SuggestedExercises: []domain.ExerciseSuggestion{}}
}

func (s *suggestionService) SuggestExercises(ctx context.Context, req domain.SuggestionRequest) (*domain.SuggestionResponse, error) {
	input := suggestionPromptInput{
		MuscleGroup:        strings.TrimSpace(req.MuscleGroup),
		EquipmentAvailable: strings.TrimSpace(req.EquipmentAvailable),
		ExerciseCount:      req.Count(),
	}
	if err := validateStruct(suggestionInput{MuscleGroup: input.MuscleGroup, ExerciseCount: input.ExerciseCount}); err != nil {
		return nil, err
	}

	raw, err := s.runner.RunPrompt(ctx, exerciseSuggestionPrompt, input)
	if err != nil {
		s.metrics.SuggestionOutcome(SuggestionFailed)
		return nil, fmt.Errorf("suggest exercises: %w", err)
	}
	if len(raw) == 0 {
		s.metrics.SuggestionOutcome(SuggestionEmpty)
		return emptySuggestions(), nil
	}

	var resp domain.SuggestionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warnf("suggestion response is not the expected JSON: %s", err)
		s.metrics.SuggestionOutcome(SuggestionInvalid)
		return emptySuggestions(), nil
	}
	if err := validate.Struct(resp); err != nil {
		log.Warnf("suggestion response failed validation: %s", err)
		s.metrics.SuggestionOutcome(SuggestionInvalid)
		return emptySuggestions(), nil
	}

	if len(resp.SuggestedExercises) == 0 {
		s.metrics.SuggestionOutcome(SuggestionEmpty)
	} else {
		s.metrics.SuggestionOutcome(SuggestionOK)
	}
	return &resp, nil
}
