package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

// BrewService encapsulates brew-journal use cases.
type BrewService struct {
	brews domain.BrewRepository
	beans domain.BeanRepository
}

// NewBrewService creates a BrewService backed by the given repositories.
func NewBrewService(brews domain.BrewRepository, beans domain.BeanRepository) *BrewService {
	return &BrewService{brews: brews, beans: beans}
}

// BrewInput carries the submitted fields of a brew form. Identifier
// fields are raw strings so malformed values can short-circuit to
// not-found instead of reaching the store.
type BrewInput struct {
	BeanID           string
	Method           string
	BrewedAt         *time.Time
	DoseGrams        *float64
	YieldGrams       *float64
	BrewTimeSeconds  *int
	WaterTempCelsius *int
	GrinderID        string
	GrindSetting     string
	Rating           *int
	Notes            string
	FlavorNotes      string
	IsPublic         bool
}

// Record validates and stores a new brew owned by userID.
func (s *BrewService) Record(ctx context.Context, userID int64, in BrewInput) (*domain.Brew, error) {
	brew, err := s.brewFromInput(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.brews.CreateBrew(ctx, brew)
}

// Get returns one non-deleted brew owned by userID.
func (s *BrewService) Get(ctx context.Context, userID int64, id string) (*domain.Brew, error) {
	brewID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	brew, err := s.brews.GetBrew(ctx, userID, brewID)
	if err != nil {
		return nil, err
	}
	if brew == nil {
		return nil, ErrNotFound
	}
	return brew, nil
}

// List returns the user's brews with bean details, newest first,
// narrowed by the given filter.
func (s *BrewService) List(ctx context.Context, userID int64, f domain.BrewFilter) ([]domain.BrewWithBean, error) {
	return s.brews.ListBrews(ctx, userID, f)
}

// Update validates and stores changes to an existing brew.
func (s *BrewService) Update(ctx context.Context, userID int64, id string, in BrewInput) (*domain.Brew, error) {
	brewID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	brew, err := s.brewFromInput(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	brew.ID = brewID
	updated, err := s.brews.UpdateBrew(ctx, brew)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Delete soft-deletes a brew. The row stays in the store but disappears
// from every listing and statistic; there is no resurrection path.
func (s *BrewService) Delete(ctx context.Context, userID int64, id string) error {
	brewID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	deleted, err := s.brews.SoftDeleteBrew(ctx, userID, brewID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SetPublic toggles the read-only share link for a brew.
func (s *BrewService) SetPublic(ctx context.Context, userID int64, id string, public bool) error {
	brewID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	ok, err := s.brews.SetBrewPublic(ctx, userID, brewID, public)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Shared returns a brew through the unauthenticated share path. Only
// public, non-deleted brews are visible; everything else is not-found.
func (s *BrewService) Shared(ctx context.Context, id string) (*domain.BrewWithBean, error) {
	brewID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	brew, err := s.brews.GetSharedBrew(ctx, brewID)
	if err != nil {
		return nil, err
	}
	if brew == nil {
		return nil, ErrNotFound
	}
	return brew, nil
}

func (s *BrewService) brewFromInput(ctx context.Context, userID int64, in BrewInput) (*domain.Brew, error) {
	beanID, err := uuid.Parse(in.BeanID)
	if err != nil {
		return nil, errors.New("a bean is required")
	}
	bean, err := s.beans.GetBean(ctx, userID, beanID)
	if err != nil {
		return nil, err
	}
	if bean == nil {
		return nil, errors.New("a bean is required")
	}

	method := domain.BrewMethod(in.Method)
	if !method.Valid() {
		return nil, fmt.Errorf("unknown brew method %q", in.Method)
	}

	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, errors.New("rating must be between 1 and 5")
	}
	if in.DoseGrams != nil && *in.DoseGrams <= 0 {
		return nil, errors.New("dose must be > 0")
	}
	if in.YieldGrams != nil && *in.YieldGrams <= 0 {
		return nil, errors.New("yield must be > 0")
	}
	if in.BrewTimeSeconds != nil && *in.BrewTimeSeconds < 0 {
		return nil, errors.New("brew time must not be negative")
	}
	if in.WaterTempCelsius != nil && (*in.WaterTempCelsius < 0 || *in.WaterTempCelsius > 100) {
		return nil, errors.New("water temperature must be between 0 and 100")
	}

	var grinderID *uuid.UUID
	if strings.TrimSpace(in.GrinderID) != "" {
		id, err := uuid.Parse(in.GrinderID)
		if err != nil {
			return nil, errors.New("unknown grinder")
		}
		grinderID = &id
	}

	brewedAt := time.Now()
	if in.BrewedAt != nil {
		brewedAt = *in.BrewedAt
	}

	return &domain.Brew{
		UserID:           userID,
		BeanID:           beanID,
		Method:           method,
		BrewedAt:         brewedAt,
		DoseGrams:        in.DoseGrams,
		YieldGrams:       in.YieldGrams,
		BrewTimeSeconds:  in.BrewTimeSeconds,
		WaterTempCelsius: in.WaterTempCelsius,
		GrinderID:        grinderID,
		GrindSetting:     strings.TrimSpace(in.GrindSetting),
		Rating:           in.Rating,
		Notes:            in.Notes,
		FlavorNotes:      in.FlavorNotes,
		IsPublic:         in.IsPublic,
	}, nil
}
