package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBeanInUse is returned when deleting a bean that non-deleted brews
// still reference.
var ErrBeanInUse = errors.New("bean is referenced by existing brews")

// RoastLevel is the roast profile of a bag of beans.
type RoastLevel string

const (
	RoastLight      RoastLevel = "light"
	RoastMedium     RoastLevel = "medium"
	RoastMediumDark RoastLevel = "medium-dark"
	RoastDark       RoastLevel = "dark"
)

// Process is the post-harvest processing method.
type Process string

const (
	ProcessWashed    Process = "washed"
	ProcessNatural   Process = "natural"
	ProcessHoney     Process = "honey"
	ProcessAnaerobic Process = "anaerobic"
)

// Bean is a coffee bean entry in a user's inventory.
type Bean struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int64      `json:"userId"`
	Name       string     `json:"name"`
	Roaster    string     `json:"roaster"`
	Origin     string     `json:"origin"`
	RoastLevel RoastLevel `json:"roastLevel"`
	Process    Process    `json:"process"`
	RoastDate  *time.Time `json:"roastDate"`
	Link       string     `json:"link"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// BeanRepository is the port for bean persistence.
type BeanRepository interface {
	CreateBean(ctx context.Context, b *Bean) (*Bean, error)
	GetBean(ctx context.Context, userID int64, id uuid.UUID) (*Bean, error)
	ListBeans(ctx context.Context, userID int64) ([]Bean, error)
	UpdateBean(ctx context.Context, b *Bean) (*Bean, error)
	// DeleteBean removes a bean. It returns ErrBeanInUse when non-deleted
	// brews still reference it.
	DeleteBean(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
}
