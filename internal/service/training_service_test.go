package service

import (
	"alcyxob/coach-studio/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrainingService(t *testing.T) (TrainingService, *testRepos, *countingMetrics) {
	t.Helper()
	repos := newTestRepos()
	metrics := newCountingMetrics()
	return NewTrainingService(repos.exercises, repos.programs, metrics), repos, metrics
}

func exerciseNames(exercises []domain.Exercise) []string {
	names := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		names = append(names, ex.Name)
	}
	return names
}

func TestTrainingService_AddProgram_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	for _, name := range []string{"", "  ", "ab"} {
		p, err := svc.AddProgram(ctx, name)
		assert.ErrorIs(t, err, ErrValidationFailed, "name %q", name)
		assert.Nil(t, p)
	}

	p, err := svc.AddProgram(ctx, "Легс") // four runes, more bytes
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotNil(t, p.WorkoutDays)
	assert.Empty(t, p.WorkoutDays)

	programs, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Легс", programs[0].Name)
}

func TestTrainingService_DeleteProgram(t *testing.T) {
	ctx := context.Background()
	svc, _, metrics := newTestTrainingService(t)

	p1, err := svc.AddProgram(ctx, "Strength")
	require.NoError(t, err)
	p2, err := svc.AddProgram(ctx, "Mobility")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProgram(ctx, "missing"))
	assert.Zero(t, metrics.mutations[OpDeleteProgram])

	require.NoError(t, svc.DeleteProgram(ctx, p1.ID))
	programs, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, p2.ID, programs[0].ID)

	_, err = svc.GetProgram(ctx, p1.ID)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestTrainingService_AddWorkoutDay(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	p, err := svc.AddProgram(ctx, "Hypertrophy")
	require.NoError(t, err)

	_, err = svc.AddWorkoutDay(ctx, p.ID, " ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	day, err := svc.AddWorkoutDay(ctx, "missing", "Push")
	require.NoError(t, err)
	assert.Nil(t, day)

	day, err = svc.AddWorkoutDay(ctx, p.ID, "Push")
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, "Push", day.Name)
	assert.NotNil(t, day.Exercises)

	got, err := svc.GetProgram(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.WorkoutDays, 1)
	assert.Equal(t, day.ID, got.WorkoutDays[0].ID)
}

func TestTrainingService_DeleteWorkoutDay_LeavesEverythingElse(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	bench, err := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Bench Press", MuscleGroups: []string{"Chest"}})
	require.NoError(t, err)

	p1, _ := svc.AddProgram(ctx, "Program One")
	p2, _ := svc.AddProgram(ctx, "Program Two")
	d1, _ := svc.AddWorkoutDay(ctx, p1.ID, "Push")
	d2, _ := svc.AddWorkoutDay(ctx, p1.ID, "Pull")
	d3, _ := svc.AddWorkoutDay(ctx, p2.ID, "Push")
	for _, d := range []struct{ p, d string }{{p1.ID, d1.ID}, {p1.ID, d2.ID}, {p2.ID, d3.ID}} {
		_, err := svc.AttachLibraryExercises(ctx, d.p, d.d, []string{bench.ID})
		require.NoError(t, err)
	}

	before, err := svc.ListPrograms(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkoutDay(ctx, p1.ID, d1.ID))

	after, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, []domain.WorkoutDay{before[0].WorkoutDays[1]}, after[0].WorkoutDays)
	assert.Equal(t, before[1], after[1])

	// unknown day or program
	require.NoError(t, svc.DeleteWorkoutDay(ctx, p1.ID, "missing"))
	require.NoError(t, svc.DeleteWorkoutDay(ctx, "missing", d2.ID))
	again, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, after, again)
}

func TestTrainingService_AddExercisesToDay_SetUnion(t *testing.T) {
	ctx := context.Background()
	svc, _, metrics := newTestTrainingService(t)

	p, _ := svc.AddProgram(ctx, "Hypertrophy")
	d, _ := svc.AddWorkoutDay(ctx, p.ID, "Push")

	a := domain.Exercise{ID: "a", Name: "A", MuscleGroups: []string{"Chest"}}
	b := domain.Exercise{ID: "b", Name: "B", MuscleGroups: []string{"Shoulders"}}
	c := domain.Exercise{ID: "c", Name: "C", MuscleGroups: []string{"Triceps"}}

	day, err := svc.AddExercisesToDay(ctx, p.ID, d.ID, []domain.Exercise{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, exerciseNames(day.Exercises))

	day, err = svc.AddExercisesToDay(ctx, p.ID, d.ID, []domain.Exercise{b, c, c})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, exerciseNames(day.Exercises))

	day, err = svc.AddExercisesToDay(ctx, p.ID, d.ID, []domain.Exercise{a})
	require.NoError(t, err)
	assert.Len(t, day.Exercises, 3)
	assert.Equal(t, 2, metrics.mutations[OpAddExercisesToDay])

	day, err = svc.AddExercisesToDay(ctx, p.ID, "missing", []domain.Exercise{a})
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestTrainingService_AttachLibraryExercises_SkipsUnknown(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	squat, err := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Squat", MuscleGroups: []string{"Legs"}})
	require.NoError(t, err)
	p, _ := svc.AddProgram(ctx, "Lower Body")
	d, _ := svc.AddWorkoutDay(ctx, p.ID, "Legs")

	day, err := svc.AttachLibraryExercises(ctx, p.ID, d.ID, []string{"nope", squat.ID})
	require.NoError(t, err)
	require.Len(t, day.Exercises, 1)
	assert.Equal(t, *squat, day.Exercises[0])
}

func TestTrainingService_CreateAndAttachExercise(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	p, _ := svc.AddProgram(ctx, "Hypertrophy")
	d, _ := svc.AddWorkoutDay(ctx, p.ID, "Push")
	other, _ := svc.AddWorkoutDay(ctx, p.ID, "Pull")

	_, err := svc.CreateAndAttachExercise(ctx, p.ID, d.ID, domain.ExerciseData{Name: ""})
	assert.ErrorIs(t, err, ErrValidationFailed)

	ex, err := svc.CreateAndAttachExercise(ctx, p.ID, d.ID, domain.ExerciseData{
		Name:         "Dips",
		Description:  "Parallel bar dips",
		MuscleGroups: []string{"Chest", "Triceps"},
		Difficulty:   domain.DifficultyIntermediate,
	})
	require.NoError(t, err)
	require.NotNil(t, ex)

	library, err := svc.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, *ex, library[0])

	got, err := svc.GetProgram(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.WorkoutDays[0].Exercises, 1)
	assert.Equal(t, *ex, got.WorkoutDays[0].Exercises[0])
	assert.Empty(t, got.WorkoutDays[1].Exercises)
	assert.Equal(t, other.ID, got.WorkoutDays[1].ID)

	// missing day writes nothing
	ex, err = svc.CreateAndAttachExercise(ctx, p.ID, "missing", domain.ExerciseData{Name: "Ghost"})
	require.NoError(t, err)
	assert.Nil(t, ex)
	library, _ = svc.ListExercises(ctx)
	assert.Len(t, library, 1)
}

func TestTrainingService_CreateAndAttachExercise_RollsBackLibrary(t *testing.T) {
	ctx := context.Background()
	svc, repos, metrics := newTestTrainingService(t)

	existing, err := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Row", MuscleGroups: []string{"Back"}})
	require.NoError(t, err)
	p, _ := svc.AddProgram(ctx, "Hypertrophy")
	d, _ := svc.AddWorkoutDay(ctx, p.ID, "Pull")

	repos.programs.failSave = true
	ex, err := svc.CreateAndAttachExercise(ctx, p.ID, d.ID, domain.ExerciseData{Name: "Pull Up", MuscleGroups: []string{"Back"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errInjected)
	assert.Nil(t, ex)
	assert.Zero(t, metrics.mutations[OpCreateAndAttach])

	library, err := svc.ListExercises(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Exercise{*existing}, library)

	got, err := svc.GetProgram(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.WorkoutDays[0].Exercises)
}

func TestTrainingService_RemoveExerciseFromDay(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	bench, _ := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Bench Press", MuscleGroups: []string{"Chest"}})
	p, _ := svc.AddProgram(ctx, "Hypertrophy")
	push, _ := svc.AddWorkoutDay(ctx, p.ID, "Push")
	upper, _ := svc.AddWorkoutDay(ctx, p.ID, "Upper")
	_, _ = svc.AttachLibraryExercises(ctx, p.ID, push.ID, []string{bench.ID})
	_, _ = svc.AttachLibraryExercises(ctx, p.ID, upper.ID, []string{bench.ID})

	require.NoError(t, svc.RemoveExerciseFromDay(ctx, p.ID, push.ID, bench.ID))

	got, _ := svc.GetProgram(ctx, p.ID)
	assert.Empty(t, got.WorkoutDays[0].Exercises)
	assert.Len(t, got.WorkoutDays[1].Exercises, 1)

	library, _ := svc.ListExercises(ctx)
	assert.Len(t, library, 1)
}

func TestTrainingService_DeleteExerciseFromLibrary_Cascade(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	bench, err := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Bench Press", MuscleGroups: []string{"Chest"}})
	require.NoError(t, err)
	ohp, err := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Overhead Press", MuscleGroups: []string{"Shoulders"}})
	require.NoError(t, err)

	p, _ := svc.AddProgram(ctx, "Hypertrophy")
	push, _ := svc.AddWorkoutDay(ctx, p.ID, "Push")
	_, err = svc.AttachLibraryExercises(ctx, p.ID, push.ID, []string{bench.ID, ohp.ID})
	require.NoError(t, err)

	p2, _ := svc.AddProgram(ctx, "Powerlifting")
	heavy, _ := svc.AddWorkoutDay(ctx, p2.ID, "Heavy")
	_, err = svc.AttachLibraryExercises(ctx, p2.ID, heavy.ID, []string{bench.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExerciseFromLibrary(ctx, bench.ID))

	library, err := svc.ListExercises(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Overhead Press"}, exerciseNames(library))

	got, err := svc.GetProgram(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Overhead Press"}, exerciseNames(got.WorkoutDays[0].Exercises))

	got2, err := svc.GetProgram(ctx, p2.ID)
	require.NoError(t, err)
	assert.Empty(t, got2.WorkoutDays[0].Exercises)

	_, err = svc.GetExercise(ctx, bench.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	// unknown id is a no-op
	require.NoError(t, svc.DeleteExerciseFromLibrary(ctx, "missing"))
}

func TestTrainingService_DeleteExerciseFromLibrary_RollsBack(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newTestTrainingService(t)

	bench, _ := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Bench Press", MuscleGroups: []string{"Chest"}})
	p, _ := svc.AddProgram(ctx, "Hypertrophy")
	push, _ := svc.AddWorkoutDay(ctx, p.ID, "Push")
	_, _ = svc.AttachLibraryExercises(ctx, p.ID, push.ID, []string{bench.ID})

	repos.programs.failSave = true
	err := svc.DeleteExerciseFromLibrary(ctx, bench.ID)
	assert.ErrorIs(t, err, errInjected)

	library, _ := svc.ListExercises(ctx)
	assert.Equal(t, []domain.Exercise{*bench}, library)
	got, _ := svc.GetProgram(ctx, p.ID)
	assert.Len(t, got.WorkoutDays[0].Exercises, 1)
}

func TestTrainingService_UpdateExercise_DoesNotTouchEmbeddedCopies(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	squat, _ := svc.CreateExercise(ctx, domain.ExerciseData{Name: "Squat", MuscleGroups: []string{"Legs"}})
	p, _ := svc.AddProgram(ctx, "Lower Body")
	d, _ := svc.AddWorkoutDay(ctx, p.ID, "Legs")
	_, _ = svc.AttachLibraryExercises(ctx, p.ID, d.ID, []string{squat.ID})

	updated, err := svc.UpdateExercise(ctx, squat.ID, domain.ExerciseData{
		Name:         "Back Squat",
		MuscleGroups: []string{"Quads", "Glutes"},
		Equipment:    []string{"Barbell"},
		MediaURL:     "https://cdn.example.com/squat.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, squat.ID, updated.ID)

	got, _ := svc.GetExercise(ctx, squat.ID)
	assert.Equal(t, "Back Squat", got.Name)

	program, _ := svc.GetProgram(ctx, p.ID)
	assert.Equal(t, "Squat", program.WorkoutDays[0].Exercises[0].Name)
	assert.Equal(t, []string{"Legs"}, program.WorkoutDays[0].Exercises[0].MuscleGroups)

	_, err = svc.UpdateExercise(ctx, "missing", domain.ExerciseData{Name: "X"})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	_, err = svc.UpdateExercise(ctx, squat.ID, domain.ExerciseData{Name: "Squat", Difficulty: "Expert"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestTrainingService_Scenario_HypertrophyPush(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTrainingService(t)

	p, err := svc.AddProgram(ctx, "Hypertrophy")
	require.NoError(t, err)
	push, err := svc.AddWorkoutDay(ctx, p.ID, "Push")
	require.NoError(t, err)

	bench, err := svc.CreateAndAttachExercise(ctx, p.ID, push.ID, domain.ExerciseData{Name: "Bench Press", MuscleGroups: []string{"Chest"}})
	require.NoError(t, err)
	_, err = svc.CreateAndAttachExercise(ctx, p.ID, push.ID, domain.ExerciseData{Name: "Overhead Press", MuscleGroups: []string{"Shoulders"}})
	require.NoError(t, err)

	got, _ := svc.GetProgram(ctx, p.ID)
	assert.Equal(t, []string{"Bench Press", "Overhead Press"}, exerciseNames(got.WorkoutDays[0].Exercises))

	require.NoError(t, svc.DeleteExerciseFromLibrary(ctx, bench.ID))

	got, _ = svc.GetProgram(ctx, p.ID)
	assert.Equal(t, []string{"Overhead Press"}, exerciseNames(got.WorkoutDays[0].Exercises))
}
