package repository

import (
	"alcyxob/coach-studio/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrCorruptCollection = RepositoryError("stored collection is corrupt")
	ErrEncodeFailed      = RepositoryError("collection encoding failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Every repository reads and writes a whole collection at once.
// A collection that was never saved reads as empty.

// ExerciseRepository stores the global exercise library.
type ExerciseRepository interface {
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	SaveAll(ctx context.Context, exercises []domain.Exercise) error
}

// ProgramRepository stores training programs with their nested days.
type ProgramRepository interface {
	GetAll(ctx context.Context) ([]domain.TrainingProgram, error)
	SaveAll(ctx context.Context, programs []domain.TrainingProgram) error
}

// DietItemRepository stores the flat diet item list.
type DietItemRepository interface {
	GetAll(ctx context.Context) ([]domain.DietItem, error)
	SaveAll(ctx context.Context, items []domain.DietItem) error
}

// ClientRepository stores client auth records.
type ClientRepository interface {
	GetAll(ctx context.Context) ([]domain.ClientRecord, error)
	SaveAll(ctx context.Context, clients []domain.ClientRecord) error
}

// AssignmentRepository stores the client -> program assignment map, keyed by client ID.
type AssignmentRepository interface {
	GetAll(ctx context.Context) (map[string]domain.ClientTrainingAssignment, error)
	SaveAll(ctx context.Context, assignments map[string]domain.ClientTrainingAssignment) error
}

// SessionRepository stores the simple authenticated-flag marker.
type SessionRepository interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	SetAuthenticated(ctx context.Context, authenticated bool) error
}
