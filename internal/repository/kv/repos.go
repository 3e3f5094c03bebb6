package kv

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/kvstore"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"fmt"
)

type exerciseRepository struct {
	c collection[[]domain.Exercise]
}

// NewExerciseRepository creates the exercise library repository.
func NewExerciseRepository(store kvstore.Store) repository.ExerciseRepository {
	return &exerciseRepository{c: newCollection[[]domain.Exercise](store, kvstore.KeyExercises)}
}

func (r *exerciseRepository) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		return []domain.Exercise{}, nil
	}
	return exercises, nil
}

func (r *exerciseRepository) SaveAll(ctx context.Context, exercises []domain.Exercise) error {
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return r.c.save(ctx, exercises)
}

type programRepository struct {
	c collection[[]domain.TrainingProgram]
}

// NewProgramRepository creates the training program repository.
func NewProgramRepository(store kvstore.Store) repository.ProgramRepository {
	return &programRepository{c: newCollection[[]domain.TrainingProgram](store, kvstore.KeyTrainingPrograms)}
}

func (r *programRepository) GetAll(ctx context.Context) ([]domain.TrainingProgram, error) {
	programs, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if programs == nil {
		return []domain.TrainingProgram{}, nil
	}
	return programs, nil
}

func (r *programRepository) SaveAll(ctx context.Context, programs []domain.TrainingProgram) error {
	if programs == nil {
		programs = []domain.TrainingProgram{}
	}
	return r.c.save(ctx, programs)
}

type dietItemRepository struct {
	c collection[[]domain.DietItem]
}

// NewDietItemRepository creates the diet item repository.
func NewDietItemRepository(store kvstore.Store) repository.DietItemRepository {
	return &dietItemRepository{c: newCollection[[]domain.DietItem](store, kvstore.KeyDietItems)}
}

func (r *dietItemRepository) GetAll(ctx context.Context) ([]domain.DietItem, error) {
	items, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []domain.DietItem{}, nil
	}
	return items, nil
}

func (r *dietItemRepository) SaveAll(ctx context.Context, items []domain.DietItem) error {
	if items == nil {
		items = []domain.DietItem{}
	}
	return r.c.save(ctx, items)
}

type clientRepository struct {
	c collection[[]domain.ClientRecord]
}

// NewClientRepository creates the client auth record repository.
func NewClientRepository(store kvstore.Store) repository.ClientRepository {
	return &clientRepository{c: newCollection[[]domain.ClientRecord](store, kvstore.KeyClients)}
}

func (r *clientRepository) GetAll(ctx context.Context) ([]domain.ClientRecord, error) {
	clients, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		return []domain.ClientRecord{}, nil
	}
	return clients, nil
}

func (r *clientRepository) SaveAll(ctx context.Context, clients []domain.ClientRecord) error {
	if clients == nil {
		clients = []domain.ClientRecord{}
	}
	return r.c.save(ctx, clients)
}

type assignmentRepository struct {
	c collection[map[string]domain.ClientTrainingAssignment]
}

// NewAssignmentRepository creates the client assignment map repository.
func NewAssignmentRepository(store kvstore.Store) repository.AssignmentRepository {
	return &assignmentRepository{c: newCollection[map[string]domain.ClientTrainingAssignment](store, kvstore.KeyClientAssignments)}
}

func (r *assignmentRepository) GetAll(ctx context.Context) (map[string]domain.ClientTrainingAssignment, error) {
	assignments, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		return map[string]domain.ClientTrainingAssignment{}, nil
	}
	return assignments, nil
}

func (r *assignmentRepository) SaveAll(ctx context.Context, assignments map[string]domain.ClientTrainingAssignment) error {
	if assignments == nil {
		assignments = map[string]domain.ClientTrainingAssignment{}
	}
	return r.c.save(ctx, assignments)
}

type sessionRepository struct {
	store kvstore.Store
}

// NewSessionRepository creates the repository of the authenticated-flag marker.
func NewSessionRepository(store kvstore.Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) IsAuthenticated(ctx context.Context) (bool, error) {
	v, ok, err := r.store.Get(ctx, kvstore.KeyIsAuthenticated)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", kvstore.KeyIsAuthenticated, err)
	}
	return ok && v == "true", nil
}

// SetAuthenticated writes "true" on login and removes the marker on logout.
func (r *sessionRepository) SetAuthenticated(ctx context.Context, authenticated bool) error {
	if authenticated {
		return r.store.Set(ctx, kvstore.KeyIsAuthenticated, "true")
	}
	return r.store.Remove(ctx, kvstore.KeyIsAuthenticated)
}
