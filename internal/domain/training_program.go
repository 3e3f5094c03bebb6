// internal/domain/training_program.go
package domain

// TrainingProgram is the root aggregate: a named plan owning its workout days.
type TrainingProgram struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"` // e.g. "Hypertrophy"
	WorkoutDays []WorkoutDay `json:"workoutDays"`
}

// WorkoutDay is a named session within a program. Exercises are snapshots
// of library entries and are unique by ID within the day.
type WorkoutDay struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"` // e.g. "Push"
	Exercises []Exercise `json:"exercises"`
}

// HasExercise reports whether an exercise with the given ID is already in the day.
func (d *WorkoutDay) HasExercise(exerciseID string) bool {
	for _, ex := range d.Exercises {
		if ex.ID == exerciseID {
			return true
		}
	}
	return false
}

// DayIndex returns the position of the day in the program or -1.
func (p *TrainingProgram) DayIndex(dayID string) int {
	for i := range p.WorkoutDays {
		if p.WorkoutDays[i].ID == dayID {
			return i
		}
	}
	return -1
}
