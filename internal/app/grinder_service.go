package app

import (
	"context"
	"errors"
	"strings"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

// GrinderService encapsulates grinder-equipment use cases.
type GrinderService struct {
	grinders domain.GrinderRepository
}

// NewGrinderService creates a GrinderService backed by the given repository.
func NewGrinderService(grinders domain.GrinderRepository) *GrinderService {
	return &GrinderService{grinders: grinders}
}

// Create validates and stores a new grinder.
func (s *GrinderService) Create(ctx context.Context, g *domain.Grinder) (*domain.Grinder, error) {
	g.DisplayName = strings.TrimSpace(g.DisplayName)
	if g.DisplayName == "" {
		return nil, errors.New("display name is required")
	}
	g.IsActive = true
	return s.grinders.CreateGrinder(ctx, g)
}

// List returns the user's grinders, optionally only active ones.
func (s *GrinderService) List(ctx context.Context, userID int64, activeOnly bool) ([]domain.Grinder, error) {
	return s.grinders.ListGrinders(ctx, userID, activeOnly)
}

// Update validates and stores changes to a grinder, including the
// active flag used to retire equipment without losing brew history.
func (s *GrinderService) Update(ctx context.Context, userID int64, id string, g *domain.Grinder) (*domain.Grinder, error) {
	grinderID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	g.ID = grinderID
	g.UserID = userID
	g.DisplayName = strings.TrimSpace(g.DisplayName)
	if g.DisplayName == "" {
		return nil, errors.New("display name is required")
	}
	updated, err := s.grinders.UpdateGrinder(ctx, g)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}
