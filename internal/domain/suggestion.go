// internal/domain/suggestion.go
package domain

// DefaultSuggestionCount is used when a request omits ExerciseCount.
const DefaultSuggestionCount = 3

// SuggestionRequest is the input of the AI exercise suggestion gateway.
type SuggestionRequest struct {
	MuscleGroup        string `json:"muscleGroup"`
	EquipmentAvailable string `json:"equipmentAvailable,omitempty"`
	ExerciseCount      *int   `json:"exerciseCount,omitempty"` // nil means DefaultSuggestionCount
}

// Count returns the requested number of suggestions with the default applied.
func (r SuggestionRequest) Count() int {
	if r.ExerciseCount == nil {
		return DefaultSuggestionCount
	}
	return *r.ExerciseCount
}

// ExerciseSuggestion is one AI proposed exercise. Sets and Reps are ranges such as "3-4" or "8-12".
type ExerciseSuggestion struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Sets        string `json:"sets" validate:"required"`
	Reps        string `json:"reps" validate:"required"`
}

// SuggestionResponse is the validated output of the gateway.
type SuggestionResponse struct {
	SuggestedExercises []ExerciseSuggestion `json:"suggestedExercises" validate:"required,dive"`
}
