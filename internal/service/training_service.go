package service

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrProgramNotFound  = errors.New("training program not found")
)

// Editor operation names, used for metrics and logs.
const (
	OpAddProgram            = "add_program"
	OpDeleteProgram         = "delete_program"
	OpAddWorkoutDay         = "add_workout_day"
	OpDeleteWorkoutDay      = "delete_workout_day"
	OpAddExercisesToDay     = "add_exercises_to_day"
	OpCreateAndAttach       = "create_and_attach_exercise"
	OpRemoveExerciseFromDay = "remove_exercise_from_day"
	OpDeleteLibraryExercise = "delete_library_exercise"
	OpCreateLibraryExercise = "create_library_exercise"
	OpUpdateLibraryExercise = "update_library_exercise"
)

// EditorMetrics counts successful editor mutations.
type EditorMetrics interface {
	EditorMutation(op string)
}

type nopEditorMetrics struct{}

func (nopEditorMetrics) EditorMutation(string) {}

// --- Service Interface ---

// TrainingService edits the exercise library and the program -> day -> exercise tree.
// Operations addressing a program or day that does not exist are no-ops: they
// return a nil result and a nil error.
type TrainingService interface {
	// Library
	CreateExercise(ctx context.Context, data domain.ExerciseData) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID string, data domain.ExerciseData) (*domain.Exercise, error)
	DeleteExerciseFromLibrary(ctx context.Context, exerciseID string) error

	// Programs
	ListPrograms(ctx context.Context) ([]domain.TrainingProgram, error)
	GetProgram(ctx context.Context, programID string) (*domain.TrainingProgram, error)
	AddProgram(ctx context.Context, name string) (*domain.TrainingProgram, error)
	DeleteProgram(ctx context.Context, programID string) error

	// Days
	AddWorkoutDay(ctx context.Context, programID, dayName string) (*domain.WorkoutDay, error)
	DeleteWorkoutDay(ctx context.Context, programID, dayID string) error
	AddExercisesToDay(ctx context.Context, programID, dayID string, exercises []domain.Exercise) (*domain.WorkoutDay, error)
	AttachLibraryExercises(ctx context.Context, programID, dayID string, exerciseIDs []string) (*domain.WorkoutDay, error)
	CreateAndAttachExercise(ctx context.Context, programID, dayID string, data domain.ExerciseData) (*domain.Exercise, error)
	RemoveExerciseFromDay(ctx context.Context, programID, dayID, exerciseID string) error
}

// --- Service Implementation ---

// trainingService implements the TrainingService interface.
type trainingService struct {
	// mu serializes every mutation so that read-modify-write cycles over the
	// two collections do not interleave inside one process.
	mu           sync.Mutex
	exerciseRepo repository.ExerciseRepository
	programRepo  repository.ProgramRepository
	metrics      EditorMetrics
}

// NewTrainingService creates a new instance of trainingService. metrics may be nil.
func NewTrainingService(exerciseRepo repository.ExerciseRepository, programRepo repository.ProgramRepository, metrics EditorMetrics) TrainingService {
	if metrics == nil {
		metrics = nopEditorMetrics{}
	}
	return &trainingService{
		exerciseRepo: exerciseRepo,
		programRepo:  programRepo,
		metrics:      metrics,
	}
}

type exerciseInput struct {
	Name         string   `validate:"required"`
	MuscleGroups []string `validate:"dive,required"`
	Equipment    []string `validate:"dive,required"`
	Difficulty   string   `validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	MediaURL     string   `validate:"omitempty,url"`
}

type programInput struct {
	Name string `validate:"required,min=3"`
}

type dayInput struct {
	Name string `validate:"required"`
}

func normalizeExerciseData(data domain.ExerciseData) (domain.ExerciseData, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Description = strings.TrimSpace(data.Description)
	data.MediaURL = strings.TrimSpace(data.MediaURL)
	err := validateStruct(exerciseInput{
		Name:         data.Name,
		MuscleGroups: data.MuscleGroups,
		Equipment:    data.Equipment,
		Difficulty:   string(data.Difficulty),
		MediaURL:     data.MediaURL,
	})
	return data, err
}

func newExercise(data domain.ExerciseData) domain.Exercise {
	ex := domain.Exercise{
		ID:          uuid.NewString(),
		Name:        data.Name,
		Description: data.Description,
		Difficulty:  data.Difficulty,
		MediaURL:    data.MediaURL,
	}
	ex.MuscleGroups = append([]string{}, data.MuscleGroups...)
	if len(data.Equipment) > 0 {
		ex.Equipment = append([]string(nil), data.Equipment...)
	}
	return ex
}

// --- Library ---

// CreateExercise adds a new exercise to the library only.
func (s *trainingService) CreateExercise(ctx context.Context, data domain.ExerciseData) (*domain.Exercise, error) {
	data, err := normalizeExerciseData(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ex := newExercise(data)
	if err := s.exerciseRepo.SaveAll(ctx, append(exercises, ex)); err != nil {
		return nil, err
	}
	s.metrics.EditorMutation(OpCreateLibraryExercise)
	return &ex, nil
}

// ListExercises returns the whole library in insertion order.
func (s *trainingService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx)
}

// GetExercise retrieves a single library exercise.
func (s *trainingService) GetExercise(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		if exercises[i].ID == exerciseID {
			return &exercises[i], nil
		}
	}
	return nil, ErrExerciseNotFound
}

// UpdateExercise replaces the user editable fields of a library exercise.
// Copies already embedded in workout days keep their old values.
func (s *trainingService) UpdateExercise(ctx context.Context, exerciseID string, data domain.ExerciseData) (*domain.Exercise, error) {
	data, err := normalizeExerciseData(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range exercises {
		if exercises[i].ID == exerciseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrExerciseNotFound
	}

	updated := newExercise(data)
	updated.ID = exerciseID
	exercises[idx] = updated
	if err := s.exerciseRepo.SaveAll(ctx, exercises); err != nil {
		return nil, err
	}
	s.metrics.EditorMutation(OpUpdateLibraryExercise)
	return &updated, nil
}

// DeleteExerciseFromLibrary removes the exercise from the library and strips
// every embedded copy from every day of every program. Either both collections
// are written or, when the second write fails, the first one is restored.
func (s *trainingService) DeleteExerciseFromLibrary(ctx context.Context, exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	keptExercises := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if ex.ID != exerciseID {
			keptExercises = append(keptExercises, ex)
		}
	}
	libraryChanged := len(keptExercises) != len(exercises)

	stripped := 0
	for pi := range programs {
		for di := range programs[pi].WorkoutDays {
			day := &programs[pi].WorkoutDays[di]
			kept := make([]domain.Exercise, 0, len(day.Exercises))
			for _, ex := range day.Exercises {
				if ex.ID == exerciseID {
					stripped++
					continue
				}
				kept = append(kept, ex)
			}
			day.Exercises = kept
		}
	}

	if !libraryChanged && stripped == 0 {
		return nil
	}

	if libraryChanged {
		if err := s.exerciseRepo.SaveAll(ctx, keptExercises); err != nil {
			return err
		}
	}
	if stripped > 0 {
		if err := s.programRepo.SaveAll(ctx, programs); err != nil {
			if libraryChanged {
				return s.rollbackLibrary(ctx, exercises, err)
			}
			return err
		}
	}

	log.Debugf("exercise %s deleted from library, %d embedded copies stripped", exerciseID, stripped)
	s.metrics.EditorMutation(OpDeleteLibraryExercise)
	return nil
}

// rollbackLibrary restores the previous library after a failed program write.
func (s *trainingService) rollbackLibrary(ctx context.Context, previous []domain.Exercise, cause error) error {
	err := fmt.Errorf("save programs: %w", cause)
	if rbErr := s.exerciseRepo.SaveAll(ctx, previous); rbErr != nil {
		log.Errorf("exercise library rollback failed: %s", rbErr)
		return multierr.Append(err, fmt.Errorf("rollback exercise library: %w", rbErr))
	}
	log.Warnf("exercise library rolled back after failed program write: %s", cause)
	return err
}

// --- Programs ---

// ListPrograms returns all programs with their nested days.
func (s *trainingService) ListPrograms(ctx context.Context) ([]domain.TrainingProgram, error) {
	return s.programRepo.GetAll(ctx)
}

// GetProgram retrieves a single program.
func (s *trainingService) GetProgram(ctx context.Context, programID string) (*domain.TrainingProgram, error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range programs {
		if programs[i].ID == programID {
			return &programs[i], nil
		}
	}
	return nil, ErrProgramNotFound
}

// AddProgram appends a new program with no workout days.
func (s *trainingService) AddProgram(ctx context.Context, name string) (*domain.TrainingProgram, error) {
	name = strings.TrimSpace(name)
	if err := validateStruct(programInput{Name: name}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	program := domain.TrainingProgram{
		ID:          uuid.NewString(),
		Name:        name,
		WorkoutDays: []domain.WorkoutDay{},
	}
	if err := s.programRepo.SaveAll(ctx, append(programs, program)); err != nil {
		return nil, err
	}
	s.metrics.EditorMutation(OpAddProgram)
	return &program, nil
}

// DeleteProgram removes the program. Assignments that point at it are left in place.
func (s *trainingService) DeleteProgram(ctx context.Context, programID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.TrainingProgram, 0, len(programs))
	for _, p := range programs {
		if p.ID != programID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(programs) {
		return nil
	}
	if err := s.programRepo.SaveAll(ctx, kept); err != nil {
		return err
	}
	s.metrics.EditorMutation(OpDeleteProgram)
	return nil
}

// --- Days ---

// mutateProgram loads all programs, applies fn to the addressed one and saves
// the collection when fn reports a change. Callers must hold s.mu.
func (s *trainingService) mutateProgram(ctx context.Context, programID string, fn func(p *domain.TrainingProgram) bool) (found bool, err error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for i := range programs {
		if programs[i].ID != programID {
			continue
		}
		if !fn(&programs[i]) {
			return true, nil
		}
		return true, s.programRepo.SaveAll(ctx, programs)
	}
	return false, nil
}

// AddWorkoutDay appends a new empty day to the program.
func (s *trainingService) AddWorkoutDay(ctx context.Context, programID, dayName string) (*domain.WorkoutDay, error) {
	dayName = strings.TrimSpace(dayName)
	if err := validateStruct(dayInput{Name: dayName}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var added *domain.WorkoutDay
	_, err := s.mutateProgram(ctx, programID, func(p *domain.TrainingProgram) bool {
		day := domain.WorkoutDay{
			ID:        uuid.NewString(),
			Name:      dayName,
			Exercises: []domain.Exercise{},
		}
		p.WorkoutDays = append(p.WorkoutDays, day)
		added = &day
		return true
	})
	if err != nil {
		return nil, err
	}
	if added != nil {
		s.metrics.EditorMutation(OpAddWorkoutDay)
	}
	return added, nil
}

// DeleteWorkoutDay removes one day from one program.
func (s *trainingService) DeleteWorkoutDay(ctx context.Context, programID, dayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	_, err := s.mutateProgram(ctx, programID, func(p *domain.TrainingProgram) bool {
		idx := p.DayIndex(dayID)
		if idx < 0 {
			return false
		}
		p.WorkoutDays = append(p.WorkoutDays[:idx:idx], p.WorkoutDays[idx+1:]...)
		changed = true
		return true
	})
	if err != nil {
		return err
	}
	if changed {
		s.metrics.EditorMutation(OpDeleteWorkoutDay)
	}
	return nil
}

// AddExercisesToDay merges exercises into the day by ID. Exercises already in
// the day, or repeated in the input, are skipped. The day is returned as stored.
func (s *trainingService) AddExercisesToDay(ctx context.Context, programID, dayID string, exercises []domain.Exercise) (*domain.WorkoutDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addExercisesToDay(ctx, programID, dayID, exercises)
}

func (s *trainingService) addExercisesToDay(ctx context.Context, programID, dayID string, exercises []domain.Exercise) (*domain.WorkoutDay, error) {
	var result *domain.WorkoutDay
	added := 0
	_, err := s.mutateProgram(ctx, programID, func(p *domain.TrainingProgram) bool {
		idx := p.DayIndex(dayID)
		if idx < 0 {
			return false
		}
		day := &p.WorkoutDays[idx]
		for _, ex := range exercises {
			if ex.ID == "" || day.HasExercise(ex.ID) {
				continue
			}
			day.Exercises = append(day.Exercises, ex.Snapshot())
			added++
		}
		snapshot := *day
		result = &snapshot
		return added > 0
	})
	if err != nil {
		return nil, err
	}
	if added > 0 {
		s.metrics.EditorMutation(OpAddExercisesToDay)
	}
	return result, nil
}

// AttachLibraryExercises copies the given library exercises into the day.
// Unknown IDs are skipped.
func (s *trainingService) AttachLibraryExercises(ctx context.Context, programID, dayID string, exerciseIDs []string) (*domain.WorkoutDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	library, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Exercise, len(library))
	for _, ex := range library {
		byID[ex.ID] = ex
	}
	selected := make([]domain.Exercise, 0, len(exerciseIDs))
	for _, id := range exerciseIDs {
		if ex, ok := byID[id]; ok {
			selected = append(selected, ex)
		}
	}
	return s.addExercisesToDay(ctx, programID, dayID, selected)
}

// CreateAndAttachExercise creates a library exercise and embeds a copy of it
// into the addressed day. Nothing is written when the program or day is missing.
// If the program write fails the library write is rolled back.
func (s *trainingService) CreateAndAttachExercise(ctx context.Context, programID, dayID string, data domain.ExerciseData) (*domain.Exercise, error) {
	data, err := normalizeExerciseData(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var day *domain.WorkoutDay
	for pi := range programs {
		if programs[pi].ID != programID {
			continue
		}
		if di := programs[pi].DayIndex(dayID); di >= 0 {
			day = &programs[pi].WorkoutDays[di]
		}
		break
	}
	if day == nil {
		return nil, nil
	}

	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ex := newExercise(data)
	day.Exercises = append(day.Exercises, ex.Snapshot())

	if err := s.exerciseRepo.SaveAll(ctx, append(exercises[:len(exercises):len(exercises)], ex)); err != nil {
		return nil, err
	}
	if err := s.programRepo.SaveAll(ctx, programs); err != nil {
		return nil, s.rollbackLibrary(ctx, exercises, err)
	}
	s.metrics.EditorMutation(OpCreateAndAttach)
	return &ex, nil
}

// RemoveExerciseFromDay removes the embedded copy from one day only.
// The library and other days are untouched.
func (s *trainingService) RemoveExerciseFromDay(ctx context.Context, programID, dayID, exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	_, err := s.mutateProgram(ctx, programID, func(p *domain.TrainingProgram) bool {
		idx := p.DayIndex(dayID)
		if idx < 0 {
			return false
		}
		day := &p.WorkoutDays[idx]
		kept := make([]domain.Exercise, 0, len(day.Exercises))
		for _, ex := range day.Exercises {
			if ex.ID != exerciseID {
				kept = append(kept, ex)
			}
		}
		changed = len(kept) != len(day.Exercises)
		day.Exercises = kept
		return changed
	})
	if err != nil {
		return err
	}
	if changed {
		s.metrics.EditorMutation(OpRemoveExerciseFromDay)
	}
	return nil
}
