package app

import (
	"context"
	"errors"
	"strings"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound indicates that the requested resource does not exist or is
// not visible to the caller. Malformed identifiers resolve to it as well,
// before any query reaches the store.
var ErrNotFound = errors.New("not found")

// BeanService encapsulates bean-inventory use cases.
type BeanService struct {
	beans domain.BeanRepository
	stats domain.StatsRepository
}

// NewBeanService creates a BeanService backed by the given repositories.
func NewBeanService(beans domain.BeanRepository, stats domain.StatsRepository) *BeanService {
	return &BeanService{beans: beans, stats: stats}
}

// Create validates and stores a new bean.
func (s *BeanService) Create(ctx context.Context, b *domain.Bean) (*domain.Bean, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validateBeanEnums(b); err != nil {
		return nil, err
	}
	return s.beans.CreateBean(ctx, b)
}

// Get returns one bean together with its brewing aggregate.
func (s *BeanService) Get(ctx context.Context, userID int64, id string) (*domain.Bean, *domain.BeanStats, error) {
	beanID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	bean, err := s.beans.GetBean(ctx, userID, beanID)
	if err != nil {
		return nil, nil, err
	}
	if bean == nil {
		return nil, nil, ErrNotFound
	}
	stats, err := s.stats.BeanStats(ctx, userID, beanID)
	if err != nil {
		return nil, nil, err
	}
	return bean, stats, nil
}

// List returns all beans owned by the user.
func (s *BeanService) List(ctx context.Context, userID int64) ([]domain.Bean, error) {
	return s.beans.ListBeans(ctx, userID)
}

// Update validates and stores changes to an existing bean.
func (s *BeanService) Update(ctx context.Context, userID int64, id string, b *domain.Bean) (*domain.Bean, error) {
	beanID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	b.ID = beanID
	b.UserID = userID
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validateBeanEnums(b); err != nil {
		return nil, err
	}
	updated, err := s.beans.UpdateBean(ctx, b)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Delete removes a bean. Beans still referenced by non-deleted brews are
// protected; domain.ErrBeanInUse propagates to the caller.
func (s *BeanService) Delete(ctx context.Context, userID int64, id string) error {
	beanID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	deleted, err := s.beans.DeleteBean(ctx, userID, beanID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func validateBeanEnums(b *domain.Bean) error {
	switch b.RoastLevel {
	case "", domain.RoastLight, domain.RoastMedium, domain.RoastMediumDark, domain.RoastDark:
	default:
		return errors.New("unknown roast level")
	}
	switch b.Process {
	case "", domain.ProcessWashed, domain.ProcessNatural, domain.ProcessHoney, domain.ProcessAnaerobic:
	default:
		return errors.New("unknown process")
	}
	return nil
}
