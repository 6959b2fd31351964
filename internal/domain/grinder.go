package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Grinder is a grinder in a user's equipment list. Inactive grinders are
// kept for history but hidden from pickers.
type Grinder struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"userId"`
	DisplayName string    `json:"displayName"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Notes       string    `json:"notes"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GrinderRepository is the port for grinder persistence.
type GrinderRepository interface {
	CreateGrinder(ctx context.Context, g *Grinder) (*Grinder, error)
	GetGrinder(ctx context.Context, userID int64, id uuid.UUID) (*Grinder, error)
	ListGrinders(ctx context.Context, userID int64, activeOnly bool) ([]Grinder, error)
	UpdateGrinder(ctx context.Context, g *Grinder) (*Grinder, error)
}
