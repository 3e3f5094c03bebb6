package service

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// --- Service Interface ---

// RosterService lists clients and manages their program assignments.
type RosterService interface {
	ListClients(ctx context.Context) ([]domain.RosterEntry, error)
	Assign(ctx context.Context, clientID, programID string, startDate, endDate *domain.CalendarDate) (*domain.ClientTrainingAssignment, error)
	Unassign(ctx context.Context, clientID string) error
	LookupAssignment(ctx context.Context, clientID string) (*domain.ResolvedAssignment, bool, error)
	ListClientProfiles(ctx context.Context) []domain.ClientProfile
}

// --- Service Implementation ---

type rosterService struct {
	mu             sync.Mutex
	clientRepo     repository.ClientRepository
	assignmentRepo repository.AssignmentRepository
	programRepo    repository.ProgramRepository
}

// NewRosterService creates a new instance of rosterService.
func NewRosterService(clientRepo repository.ClientRepository, assignmentRepo repository.AssignmentRepository, programRepo repository.ProgramRepository) RosterService {
	return &rosterService{
		clientRepo:     clientRepo,
		assignmentRepo: assignmentRepo,
		programRepo:    programRepo,
	}
}

type assignInput struct {
	ClientID  string `validate:"required"`
	ProgramID string `validate:"required"`
}

// ListClients returns every registered client with its resolved assignment.
func (s *rosterService) ListClients(ctx context.Context) ([]domain.RosterEntry, error) {
	records, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RosterEntry, 0, len(records))
	for _, rec := range records {
		client := rec.ToClient()
		entry := domain.RosterEntry{Client: client}
		if a, ok := assignments[client.ID]; ok {
			entry.Assignment = resolveAssignment(a, programs)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Assign stores the assignment for the client, replacing any previous one.
func (s *rosterService) Assign(ctx context.Context, clientID, programID string, startDate, endDate *domain.CalendarDate) (*domain.ClientTrainingAssignment, error) {
	clientID = strings.TrimSpace(clientID)
	programID = strings.TrimSpace(programID)
	if err := validateStruct(assignInput{ClientID: clientID, ProgramID: programID}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	assignment := domain.ClientTrainingAssignment{
		ClientID:  clientID,
		ProgramID: programID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if prev, ok := assignments[clientID]; ok {
		log.Debugf("client %s: replacing assignment to program %s", clientID, prev.ProgramID)
	}
	assignments[clientID] = assignment
	if err := s.assignmentRepo.SaveAll(ctx, assignments); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Unassign removes the client's assignment if there is one.
func (s *rosterService) Unassign(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := assignments[clientID]; !ok {
		return nil
	}
	delete(assignments, clientID)
	return s.assignmentRepo.SaveAll(ctx, assignments)
}

// LookupAssignment returns the assignment only when it exists and its program still exists.
func (s *rosterService) LookupAssignment(ctx context.Context, clientID string) (*domain.ResolvedAssignment, bool, error) {
	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return nil, false, err
	}
	a, ok := assignments[clientID]
	if !ok {
		return nil, false, nil
	}
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, false, err
	}
	resolved := resolveAssignment(a, programs)
	return resolved, resolved != nil, nil
}

// ListClientProfiles returns the sample profiles used as AI suggestion context.
func (s *rosterService) ListClientProfiles(_ context.Context) []domain.ClientProfile {
	profiles := make([]domain.ClientProfile, len(sampleClientProfiles))
	copy(profiles, sampleClientProfiles)
	return profiles
}

func resolveAssignment(a domain.ClientTrainingAssignment, programs []domain.TrainingProgram) *domain.ResolvedAssignment {
	for _, p := range programs {
		if p.ID == a.ProgramID {
			return &domain.ResolvedAssignment{Assignment: a, Program: p}
		}
	}
	return nil
}
