package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

const grinderColumns = "id, user_id, display_name, brand, model, notes, is_active, created_at"

// CreateGrinder inserts a new grinder.
func (d *DB) CreateGrinder(ctx context.Context, g *domain.Grinder) (*domain.Grinder, error) {
	g.ID = uuid.New()
	g.CreatedAt = time.Now().UTC()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO grinders (id, user_id, display_name, brand, model, notes, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.UserID, g.DisplayName, g.Brand, g.Model, g.Notes, g.IsActive, g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetGrinder retrieves one grinder, scoped to a user.
func (d *DB) GetGrinder(ctx context.Context, userID int64, id uuid.UUID) (*domain.Grinder, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+grinderColumns+" FROM grinders WHERE id = $1 AND user_id = $2", id, userID)
	return scanGrinder(row)
}

// ListGrinders returns a user's grinders, optionally only active ones.
func (d *DB) ListGrinders(ctx context.Context, userID int64, activeOnly bool) ([]domain.Grinder, error) {
	query := "SELECT " + grinderColumns + " FROM grinders WHERE user_id = $1"
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY display_name"

	rows, err := d.sql.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Grinder
	for rows.Next() {
		g, err := scanGrinder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// UpdateGrinder stores changes to a grinder, scoped to its owner.
// Returns nil when the grinder does not exist.
func (d *DB) UpdateGrinder(ctx context.Context, g *domain.Grinder) (*domain.Grinder, error) {
	row := d.sql.QueryRowContext(ctx,
		`UPDATE grinders SET display_name = $1, brand = $2, model = $3, notes = $4, is_active = $5
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+grinderColumns,
		g.DisplayName, g.Brand, g.Model, g.Notes, g.IsActive, g.ID, g.UserID,
	)
	return scanGrinder(row)
}

func scanGrinder(row rowScanner) (*domain.Grinder, error) {
	var g domain.Grinder
	err := row.Scan(&g.ID, &g.UserID, &g.DisplayName, &g.Brand, &g.Model, &g.Notes, &g.IsActive, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
