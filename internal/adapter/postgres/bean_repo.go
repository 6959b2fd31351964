package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brewlog/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const beanColumns = "id, user_id, name, roaster, origin, roast_level, process, roast_date, link, notes, created_at"

// CreateBean inserts a new bean.
func (d *DB) CreateBean(ctx context.Context, b *domain.Bean) (*domain.Bean, error) {
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO beans (id, user_id, name, roaster, origin, roast_level, process, roast_date, link, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.UserID, b.Name, b.Roaster, b.Origin, b.RoastLevel, b.Process, b.RoastDate, b.Link, b.Notes, b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBean retrieves one bean, scoped to a user.
func (d *DB) GetBean(ctx context.Context, userID int64, id uuid.UUID) (*domain.Bean, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+beanColumns+" FROM beans WHERE id = $1 AND user_id = $2", id, userID)
	return scanBean(row)
}

// ListBeans returns all beans owned by a user, newest first.
func (d *DB) ListBeans(ctx context.Context, userID int64) ([]domain.Bean, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+beanColumns+" FROM beans WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Bean
	for rows.Next() {
		b, err := scanBean(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpdateBean stores changes to a bean, scoped to its owner. Returns nil
// when the bean does not exist.
func (d *DB) UpdateBean(ctx context.Context, b *domain.Bean) (*domain.Bean, error) {
	row := d.sql.QueryRowContext(ctx,
		`UPDATE beans SET name = $1, roaster = $2, origin = $3, roast_level = $4, process = $5, roast_date = $6, link = $7, notes = $8
		 WHERE id = $9 AND user_id = $10
		 RETURNING `+beanColumns,
		b.Name, b.Roaster, b.Origin, b.RoastLevel, b.Process, b.RoastDate, b.Link, b.Notes, b.ID, b.UserID,
	)
	return scanBean(row)
}

// DeleteBean removes a bean. The brews foreign key is ON DELETE
// RESTRICT, so a bean with brew history surfaces domain.ErrBeanInUse.
func (d *DB) DeleteBean(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM beans WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return false, domain.ErrBeanInUse
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBean(row rowScanner) (*domain.Bean, error) {
	var b domain.Bean
	var roastDate sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Roaster, &b.Origin, &b.RoastLevel, &b.Process, &roastDate, &b.Link, &b.Notes, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if roastDate.Valid {
		b.RoastDate = &roastDate.Time
	}
	return &b, nil
}
