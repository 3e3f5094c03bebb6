package service

import (
	"alcyxob/coach-studio/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) *domain.CalendarDate {
	t.Helper()
	d, err := domain.ParseCalendarDate(s)
	require.NoError(t, err)
	return &d
}

func TestRosterService_AssignOverwrites(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	training := NewTrainingService(repos.exercises, repos.programs, nil)
	roster := NewRosterService(repos.clients, repos.assignments, repos.programs)

	p1, _ := training.AddProgram(ctx, "Strength")
	p2, _ := training.AddProgram(ctx, "Endurance")

	_, err := roster.Assign(ctx, "jane@example.com", p1.ID, date(t, "2024-01-01"), nil)
	require.NoError(t, err)
	second, err := roster.Assign(ctx, "jane@example.com", p2.ID, nil, date(t, "2024-03-01"))
	require.NoError(t, err)

	all, err := repos.assignments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *second, all["jane@example.com"])
	assert.Nil(t, all["jane@example.com"].StartDate)

	resolved, ok, err := roster.LookupAssignment(ctx, "jane@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p2.ID, resolved.Program.ID)
	assert.Equal(t, "01/03/2024", resolved.Assignment.EndDate.Display())
}

func TestRosterService_Assign_Validation(t *testing.T) {
	repos := newTestRepos()
	roster := NewRosterService(repos.clients, repos.assignments, repos.programs)

	_, err := roster.Assign(context.Background(), "", "p1", nil, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = roster.Assign(context.Background(), "c1", " ", nil, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestRosterService_LookupAssignment_DeletedProgram(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	training := NewTrainingService(repos.exercises, repos.programs, nil)
	roster := NewRosterService(repos.clients, repos.assignments, repos.programs)

	p, _ := training.AddProgram(ctx, "Strength")
	_, err := roster.Assign(ctx, "c1", p.ID, nil, nil)
	require.NoError(t, err)
	require.NoError(t, training.DeleteProgram(ctx, p.ID))

	resolved, ok, err := roster.LookupAssignment(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, resolved)

	// the stale entry itself is kept
	all, _ := repos.assignments.GetAll(ctx)
	assert.Contains(t, all, "c1")

	_, ok, err = roster.LookupAssignment(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRosterService_Unassign(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	roster := NewRosterService(repos.clients, repos.assignments, repos.programs)

	require.NoError(t, roster.Unassign(ctx, "nobody"))

	_, err := roster.Assign(ctx, "c1", "p1", nil, nil)
	require.NoError(t, err)
	_, err = roster.Assign(ctx, "c2", "p1", nil, nil)
	require.NoError(t, err)
	require.NoError(t, roster.Unassign(ctx, "c1"))

	all, _ := repos.assignments.GetAll(ctx)
	assert.NotContains(t, all, "c1")
	assert.Contains(t, all, "c2")
}

func TestRosterService_ListClients(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	training := NewTrainingService(repos.exercises, repos.programs, nil)
	roster := NewRosterService(repos.clients, repos.assignments, repos.programs)

	require.NoError(t, repos.clients.SaveAll(ctx, []domain.ClientRecord{
		{Name: "Jane", Email: "jane@example.com", CreatedAt: time.Now()},
		{Name: "John", Email: "john@example.com", CreatedAt: time.Now()},
	}))
	p, _ := training.AddProgram(ctx, "Strength")
	_, err := roster.Assign(ctx, "jane@example.com", p.ID, nil, nil)
	require.NoError(t, err)

	entries, err := roster.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Client{ID: "jane@example.com", Name: "Jane", Email: "jane@example.com"}, entries[0].Client)
	require.NotNil(t, entries[0].Assignment)
	assert.Equal(t, "Strength", entries[0].Assignment.Program.Name)
	assert.Nil(t, entries[1].Assignment)
}

func TestRosterService_ListClientProfiles(t *testing.T) {
	repos := newTestRepos()
	roster := NewRosterService(repos.clients, repos.assignments, repos.programs)

	profiles := roster.ListClientProfiles(context.Background())
	require.NotEmpty(t, profiles)
	profiles[0].Name = "changed"
	assert.NotEqual(t, "changed", roster.ListClientProfiles(context.Background())[0].Name)
}
