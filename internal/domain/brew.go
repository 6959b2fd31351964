package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BrewMethod is the fixed set of supported brewing methods.
type BrewMethod string

const (
	MethodEspresso    BrewMethod = "espresso"
	MethodV60         BrewMethod = "v60"
	MethodAeropress   BrewMethod = "aeropress"
	MethodFrenchPress BrewMethod = "french_press"
	MethodMoka        BrewMethod = "moka"
	MethodChemex      BrewMethod = "chemex"
	MethodTurkish     BrewMethod = "turkish"
	MethodColdBrew    BrewMethod = "cold_brew"
)

// BrewMethods lists every valid method, in menu order.
var BrewMethods = []BrewMethod{
	MethodEspresso, MethodV60, MethodAeropress, MethodFrenchPress,
	MethodMoka, MethodChemex, MethodTurkish, MethodColdBrew,
}

// Valid reports whether m is one of the supported methods.
func (m BrewMethod) Valid() bool {
	for _, known := range BrewMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Brew is one recorded brewing session. Optional measurements are
// pointers; nil means "not recorded". A non-nil DeletedAt marks the row
// soft-deleted: it must be excluded from every listing and statistic.
type Brew struct {
	ID               uuid.UUID  `json:"id"`
	UserID           int64      `json:"userId"`
	BeanID           uuid.UUID  `json:"beanId"`
	Method           BrewMethod `json:"method"`
	BrewedAt         time.Time  `json:"brewedAt"`
	DoseGrams        *float64   `json:"doseGrams"`
	YieldGrams       *float64   `json:"yieldGrams"`
	BrewTimeSeconds  *int       `json:"brewTimeSeconds"`
	WaterTempCelsius *int       `json:"waterTempCelsius"`
	GrinderID        *uuid.UUID `json:"grinderId"`
	GrindSetting     string     `json:"grindSetting"`
	Rating           *int       `json:"rating"`
	Notes            string     `json:"notes"`
	FlavorNotes      string     `json:"flavorNotes"`
	IsPublic         bool       `json:"isPublic"`
	DeletedAt        *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// BrewWithBean pairs a brew with display fields of its bean for listings.
type BrewWithBean struct {
	Brew
	BeanName    string `json:"beanName"`
	BeanRoaster string `json:"beanRoaster"`
}

// BrewFilter narrows List queries. Nil fields are ignored, so filters
// compose; every query is additionally scoped to the owner and to
// non-deleted rows by the repository itself.
type BrewFilter struct {
	Method    *BrewMethod
	BeanID    *uuid.UUID
	GrinderID *uuid.UUID
	// Search matches notes and flavor notes, case-insensitive substring.
	Search *string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Window returns the effective page for a listing: a missing limit
// defaults to 50, oversized limits truncate to 200, and negative
// offsets floor at zero. Repositories apply this so both backends page
// identically.
func (f BrewFilter) Window() (limit, offset int) {
	limit = f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset = f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// BrewRepository is the port for brew persistence.
type BrewRepository interface {
	CreateBrew(ctx context.Context, b *Brew) (*Brew, error)
	GetBrew(ctx context.Context, userID int64, id uuid.UUID) (*Brew, error)
	ListBrews(ctx context.Context, userID int64, f BrewFilter) ([]BrewWithBean, error)
	UpdateBrew(ctx context.Context, b *Brew) (*Brew, error)
	SoftDeleteBrew(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
	SetBrewPublic(ctx context.Context, userID int64, id uuid.UUID, public bool) (bool, error)
	// GetSharedBrew is the unauthenticated read path: it returns the brew
	// only when it is public and not deleted, regardless of owner.
	GetSharedBrew(ctx context.Context, id uuid.UUID) (*BrewWithBean, error)
}
