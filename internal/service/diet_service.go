package service

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DietService manages the flat list of tracked diet items.
type DietService interface {
	ListDietItems(ctx context.Context) ([]domain.DietItem, error)
	AddDietItem(ctx context.Context, foodName, quantity string) (*domain.DietItem, error)
	DeleteDietItem(ctx context.Context, itemID string) error
}

type dietService struct {
	mu       sync.Mutex
	dietRepo repository.DietItemRepository
}

// NewDietService creates a new instance of dietService.
func NewDietService(dietRepo repository.DietItemRepository) DietService {
	return &dietService{dietRepo: dietRepo}
}

type dietItemInput struct {
	FoodName string `validate:"required"`
	Quantity string `validate:"required"`
}

func (s *dietService) ListDietItems(ctx context.Context) ([]domain.DietItem, error) {
	return s.dietRepo.GetAll(ctx)
}

func (s *dietService) AddDietItem(ctx context.Context, foodName, quantity string) (*domain.DietItem, error) {
	in := dietItemInput{FoodName: strings.TrimSpace(foodName), Quantity: strings.TrimSpace(quantity)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.dietRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	item := domain.DietItem{
		ID:       uuid.NewString(),
		FoodName: in.FoodName,
		Quantity: in.Quantity,
	}
	if err := s.dietRepo.SaveAll(ctx, append(items, item)); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteDietItem is a no-op for unknown IDs.
func (s *dietService) DeleteDietItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.dietRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.DietItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.dietRepo.SaveAll(ctx, kept)
}
