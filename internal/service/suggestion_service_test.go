package service

import (
	"alcyxob/coach-studio/internal/ai"
	"alcyxob/coach-studio/internal/ai/mocks"
	"alcyxob/coach-studio/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSuggestionService_ForwardsDefaultCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockPromptRunner(ctrl)
	metrics := newCountingMetrics()
	svc := NewSuggestionService(runner, metrics)

	runner.EXPECT().
		RunPrompt(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, def ai.PromptDefinition, input any) (json.RawMessage, error) {
			assert.Equal(t, exerciseSuggestionPrompt.Name, def.Name)
			forwarded, err := json.Marshal(input)
			require.NoError(t, err)
			assert.JSONEq(t, `{"muscleGroup":"legs","exerciseCount":3}`, string(forwarded))
			return json.RawMessage(`{"suggestedExercises":[{"name":"Squat","description":"Barbell back squat","sets":"3-4","reps":"8-12"}]}`), nil
		})

	resp, err := svc.SuggestExercises(context.Background(), domain.SuggestionRequest{MuscleGroup: "legs"})
	require.NoError(t, err)
	require.Len(t, resp.SuggestedExercises, 1)
	assert.Equal(t, domain.ExerciseSuggestion{Name: "Squat", Description: "Barbell back squat", Sets: "3-4", Reps: "8-12"}, resp.SuggestedExercises[0])
	assert.Equal(t, 1, metrics.outcomes[SuggestionOK])
}

func TestSuggestionService_ForwardsEquipmentAndCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockPromptRunner(ctrl)
	svc := NewSuggestionService(runner, nil)

	count := 5
	runner.EXPECT().
		RunPrompt(gomock.Any(), gomock.Any(), suggestionPromptInput{MuscleGroup: "back", EquipmentAvailable: "dumbbells", ExerciseCount: 5}).
		Return(json.RawMessage(`{"suggestedExercises":[]}`), nil)

	resp, err := svc.SuggestExercises(context.Background(), domain.SuggestionRequest{
		MuscleGroup:        "back",
		EquipmentAvailable: "dumbbells",
		ExerciseCount:      &count,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.SuggestedExercises)
	assert.Empty(t, resp.SuggestedExercises)
}

func TestSuggestionService_MalformedResponsesDegrade(t *testing.T) {
	tests := map[string]json.RawMessage{
		"absent":        nil,
		"missing field": json.RawMessage(`{"exercises":[]}`),
		"null field":    json.RawMessage(`{"suggestedExercises":null}`),
		"wrong type":    json.RawMessage(`{"suggestedExercises":"squat"}`),
		"missing reps":  json.RawMessage(`{"suggestedExercises":[{"name":"Squat","description":"d","sets":"3"}]}`),
		"not an object": json.RawMessage(`[1,2,3]`),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockPromptRunner(ctrl)
			svc := NewSuggestionService(runner, nil)

			runner.EXPECT().RunPrompt(gomock.Any(), gomock.Any(), gomock.Any()).Return(raw, nil)

			resp, err := svc.SuggestExercises(context.Background(), domain.SuggestionRequest{MuscleGroup: "chest"})
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotNil(t, resp.SuggestedExercises)
			assert.Empty(t, resp.SuggestedExercises)
		})
	}
}

func TestSuggestionService_RunnerErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockPromptRunner(ctrl)
	metrics := newCountingMetrics()
	svc := NewSuggestionService(runner, metrics)

	providerErr := &ai.APIError{StatusCode: 500, Message: "boom"}
	runner.EXPECT().RunPrompt(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, providerErr)

	resp, err := svc.SuggestExercises(context.Background(), domain.SuggestionRequest{MuscleGroup: "chest"})
	assert.Nil(t, resp)
	var apiErr *ai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 1, metrics.outcomes[SuggestionFailed])
}

func TestSuggestionService_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockPromptRunner(ctrl)
	svc := NewSuggestionService(runner, nil)

	zero := 0
	_, err := svc.SuggestExercises(context.Background(), domain.SuggestionRequest{MuscleGroup: "  "})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = svc.SuggestExercises(context.Background(), domain.SuggestionRequest{MuscleGroup: "legs", ExerciseCount: &zero})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
