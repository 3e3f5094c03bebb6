package kv

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/kvstore"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramRepository_EmptyAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewProgramRepository(store)

	programs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, programs)
	assert.Empty(t, programs)

	in := []domain.TrainingProgram{{
		ID:   "p1",
		Name: "Hypertrophy",
		WorkoutDays: []domain.WorkoutDay{{
			ID:        "d1",
			Name:      "Push",
			Exercises: []domain.Exercise{{ID: "e1", Name: "Bench Press", MuscleGroups: []string{"Chest"}}},
		}},
	}}
	require.NoError(t, repo.SaveAll(ctx, in))

	raw, ok, err := store.Get(ctx, kvstore.KeyTrainingPrograms)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"workoutDays"`)

	out, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRepository_CorruptCollection(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, kvstore.KeyExercises, "{not json"))

	_, err := NewExerciseRepository(store).GetAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrCorruptCollection)
}

func TestAssignmentRepository_NilMapSavesEmptyObject(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewAssignmentRepository(store)

	require.NoError(t, repo.SaveAll(ctx, nil))
	raw, _, err := store.Get(ctx, kvstore.KeyClientAssignments)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)

	assignments, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestSessionRepository_Flag(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewSessionRepository(store)

	ok, err := repo.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetAuthenticated(ctx, true))
	ok, err = repo.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.SetAuthenticated(ctx, false))
	_, present, _ := store.Get(ctx, kvstore.KeyIsAuthenticated)
	assert.False(t, present)
}
