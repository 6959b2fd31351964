package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brewlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const brewColumns = "id, user_id, bean_id, method, brewed_at, dose_grams, yield_grams, brew_time_seconds, water_temp_celsius, grinder_id, grind_setting, rating, notes, flavor_notes, is_public, created_at, updated_at"

// CreateBrew inserts a new brew.
func (d *DB) CreateBrew(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
	b.ID = uuid.New()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO brews (id, user_id, bean_id, method, brewed_at, dose_grams, yield_grams, brew_time_seconds, water_temp_celsius, grinder_id, grind_setting, rating, notes, flavor_notes, is_public, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		b.ID, b.UserID, b.BeanID, b.Method, b.BrewedAt.UTC(), b.DoseGrams, b.YieldGrams, b.BrewTimeSeconds,
		b.WaterTempCelsius, b.GrinderID, b.GrindSetting, b.Rating, b.Notes, b.FlavorNotes, b.IsPublic,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBrew retrieves one non-deleted brew, scoped to a user.
func (d *DB) GetBrew(ctx context.Context, userID int64, id uuid.UUID) (*domain.Brew, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+brewColumns+" FROM brews WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL",
		id, userID)
	return scanBrew(row)
}

// ListBrews returns a user's non-deleted brews with bean details, newest
// first. Filters compose: every non-nil field narrows the query, while
// owner scoping and the soft-delete exclusion are always applied here
// and cannot be filtered away.
func (d *DB) ListBrews(ctx context.Context, userID int64, f domain.BrewFilter) ([]domain.BrewWithBean, error) {
	limit, offset := f.Window()

	qb := sq.Select(
		"b.id", "b.user_id", "b.bean_id", "b.method", "b.brewed_at",
		"b.dose_grams", "b.yield_grams", "b.brew_time_seconds", "b.water_temp_celsius",
		"b.grinder_id", "b.grind_setting", "b.rating", "b.notes", "b.flavor_notes",
		"b.is_public", "b.created_at", "b.updated_at",
		"cb.name", "cb.roaster",
	).
		From("brews b").
		Join("beans cb ON cb.id = b.bean_id").
		Where(sq.Eq{"b.user_id": userID}).
		Where(sq.Eq{"b.deleted_at": nil}).
		OrderBy("b.brewed_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar)

	if f.Method != nil {
		qb = qb.Where(sq.Eq{"b.method": *f.Method})
	}
	if f.BeanID != nil {
		qb = qb.Where(sq.Eq{"b.bean_id": *f.BeanID})
	}
	if f.GrinderID != nil {
		qb = qb.Where(sq.Eq{"b.grinder_id": *f.GrinderID})
	}
	if f.Search != nil && *f.Search != "" {
		pattern := "%" + *f.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"b.notes": pattern},
			sq.ILike{"b.flavor_notes": pattern},
		})
	}
	if f.From != nil {
		qb = qb.Where(sq.GtOrEq{"b.brewed_at": f.From.UTC()})
	}
	if f.To != nil {
		qb = qb.Where(sq.Lt{"b.brewed_at": f.To.UTC()})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.BrewWithBean, 0, f.Limit)
	for rows.Next() {
		var item domain.BrewWithBean
		if err := scanBrewInto(rows, &item.Brew, &item.BeanName, &item.BeanRoaster); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateBrew stores changes to a non-deleted brew, scoped to its owner.
// Returns nil when the brew does not exist or is soft-deleted.
func (d *DB) UpdateBrew(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
	row := d.sql.QueryRowContext(ctx,
		`UPDATE brews SET bean_id = $1, method = $2, brewed_at = $3, dose_grams = $4, yield_grams = $5,
			brew_time_seconds = $6, water_temp_celsius = $7, grinder_id = $8, grind_setting = $9,
			rating = $10, notes = $11, flavor_notes = $12, is_public = $13, updated_at = $14
		 WHERE id = $15 AND user_id = $16 AND deleted_at IS NULL
		 RETURNING `+brewColumns,
		b.BeanID, b.Method, b.BrewedAt.UTC(), b.DoseGrams, b.YieldGrams, b.BrewTimeSeconds,
		b.WaterTempCelsius, b.GrinderID, b.GrindSetting, b.Rating, b.Notes, b.FlavorNotes,
		b.IsPublic, time.Now().UTC(), b.ID, b.UserID,
	)
	return scanBrew(row)
}

// SoftDeleteBrew marks a brew deleted. The row is never physically
// removed and there is no resurrection path.
func (d *DB) SoftDeleteBrew(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE brews SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL",
		time.Now().UTC(), id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetBrewPublic toggles the public share flag on a non-deleted brew.
func (d *DB) SetBrewPublic(ctx context.Context, userID int64, id uuid.UUID, public bool) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE brews SET is_public = $1, updated_at = $2 WHERE id = $3 AND user_id = $4 AND deleted_at IS NULL",
		public, time.Now().UTC(), id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetSharedBrew is the unauthenticated read path: only public,
// non-deleted brews are visible, regardless of owner.
func (d *DB) GetSharedBrew(ctx context.Context, id uuid.UUID) (*domain.BrewWithBean, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT b.id, b.user_id, b.bean_id, b.method, b.brewed_at, b.dose_grams, b.yield_grams,
			b.brew_time_seconds, b.water_temp_celsius, b.grinder_id, b.grind_setting, b.rating,
			b.notes, b.flavor_notes, b.is_public, b.created_at, b.updated_at, cb.name, cb.roaster
		 FROM brews b
		 JOIN beans cb ON cb.id = b.bean_id
		 WHERE b.id = $1 AND b.is_public AND b.deleted_at IS NULL`, id)

	var item domain.BrewWithBean
	err := scanBrewInto(row, &item.Brew, &item.BeanName, &item.BeanRoaster)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanBrew(row rowScanner) (*domain.Brew, error) {
	var b domain.Brew
	err := scanBrewInto(row, &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBrewInto scans the brew columns plus any trailing extras (e.g.
// joined bean fields), converting SQL nulls to nil pointers.
func scanBrewInto(row rowScanner, b *domain.Brew, extras ...any) error {
	var (
		dose, yield   sql.NullFloat64
		seconds, temp sql.NullInt64
		rating        sql.NullInt64
		grinderID     uuid.NullUUID
	)
	dest := []any{
		&b.ID, &b.UserID, &b.BeanID, &b.Method, &b.BrewedAt,
		&dose, &yield, &seconds, &temp, &grinderID, &b.GrindSetting,
		&rating, &b.Notes, &b.FlavorNotes, &b.IsPublic, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extras...)
	if err := row.Scan(dest...); err != nil {
		return err
	}

	if dose.Valid {
		b.DoseGrams = &dose.Float64
	}
	if yield.Valid {
		b.YieldGrams = &yield.Float64
	}
	if seconds.Valid {
		v := int(seconds.Int64)
		b.BrewTimeSeconds = &v
	}
	if temp.Valid {
		v := int(temp.Int64)
		b.WaterTempCelsius = &v
	}
	if rating.Valid {
		v := int(rating.Int64)
		b.Rating = &v
	}
	if grinderID.Valid {
		b.GrinderID = &grinderID.UUID
	}
	return nil
}
