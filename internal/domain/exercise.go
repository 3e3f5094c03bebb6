// internal/domain/exercise.go
package domain

// Difficulty is the optional skill level of an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Exercise represents a single exercise definition in the library.
// The same shape is embedded (by value) inside a WorkoutDay.
type Exercise struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	MuscleGroups []string   `json:"muscleGroups"`        // Ordered, e.g. ["Chest", "Triceps"]
	Equipment    []string   `json:"equipment,omitempty"` // e.g. ["Barbell", "Bench"]
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	MediaURL     string     `json:"mediaUrl,omitempty"` // Image or video reference
}

// Snapshot returns a deep copy of the exercise suitable for embedding into a day.
// Later edits of the library entry never reach the snapshot.
func (e Exercise) Snapshot() Exercise {
	cp := e
	if e.MuscleGroups != nil {
		cp.MuscleGroups = append([]string(nil), e.MuscleGroups...)
	}
	if e.Equipment != nil {
		cp.Equipment = append([]string(nil), e.Equipment...)
	}
	return cp
}

// ExerciseData holds the user supplied fields of a new or edited exercise.
type ExerciseData struct {
	Name         string
	Description  string
	MuscleGroups []string
	Equipment    []string
	Difficulty   Difficulty
	MediaURL     string
}
