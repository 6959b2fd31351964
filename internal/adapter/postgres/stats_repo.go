package postgres

import (
	"context"
	"database/sql"
	"time"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

// TodayBrewCount counts non-deleted brews on a local calendar day.
func (d *DB) TodayBrewCount(ctx context.Context, userID int64, localDay string) (int, error) {
	dayStart, err := time.ParseInLocation(domain.DayFormat, localDay, time.Local)
	if err != nil {
		return 0, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int
	err = d.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM brews WHERE user_id = $1 AND deleted_at IS NULL AND brewed_at >= $2 AND brewed_at < $3",
		userID, dayStart.UTC(), dayEnd.UTC(),
	).Scan(&count)
	return count, err
}

// WeeklyAverageRating averages ratings over the trailing 7 days. COALESCE
// keeps the "no data" result at 0 rather than NULL; callers rely on that.
func (d *DB) WeeklyAverageRating(ctx context.Context, userID int64) (float64, error) {
	weekAgo := time.Now().AddDate(0, 0, -7)

	var avg float64
	err := d.sql.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating), 0) FROM brews WHERE user_id = $1 AND deleted_at IS NULL AND rating IS NOT NULL AND brewed_at >= $2",
		userID, weekAgo.UTC(),
	).Scan(&avg)
	return avg, err
}

// FavoriteMethods ranks methods by brew count. Ties break alphabetically
// by method so the ordering is stable across backends.
func (d *DB) FavoriteMethods(ctx context.Context, userID int64, limit int) ([]domain.MethodCount, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT method, COUNT(*) FROM brews
		 WHERE user_id = $1 AND deleted_at IS NULL
		 GROUP BY method
		 ORDER BY COUNT(*) DESC, method ASC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.MethodCount
	for rows.Next() {
		var mc domain.MethodCount
		if err := rows.Scan(&mc.Method, &mc.BrewCount); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

// BeanStats returns the single-row aggregate for one bean. AverageRating
// stays nil when no rated brews exist; this deliberately differs from
// WeeklyAverageRating's zero default.
func (d *DB) BeanStats(ctx context.Context, userID int64, beanID uuid.UUID) (*domain.BeanStats, error) {
	var (
		stats       domain.BeanStats
		avg         sql.NullFloat64
		first, last sql.NullTime
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(rating), MIN(brewed_at), MAX(brewed_at)
		 FROM brews WHERE bean_id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		beanID, userID,
	).Scan(&stats.TotalBrews, &avg, &first, &last)
	if err != nil {
		return nil, err
	}

	if avg.Valid {
		stats.AverageRating = &avg.Float64
	}
	if first.Valid {
		stats.FirstBrewedAt = &first.Time
	}
	if last.Valid {
		stats.LastBrewedAt = &last.Time
	}
	return &stats, nil
}

// BeanCount returns the size of a user's bean inventory.
func (d *DB) BeanCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM beans WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

// TopBeans ranks a user's beans by brew count. The left join keeps
// unbrewed beans in the listing with a zero count; soft-deleted brews
// never count.
func (d *DB) TopBeans(ctx context.Context, userID int64, limit int) ([]domain.BeanWithCount, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT cb.id, cb.user_id, cb.name, cb.roaster, cb.origin, cb.roast_level, cb.process,
			cb.roast_date, cb.link, cb.notes, cb.created_at, COUNT(b.id)
		 FROM beans cb
		 LEFT JOIN brews b ON b.bean_id = cb.id AND b.deleted_at IS NULL
		 WHERE cb.user_id = $1
		 GROUP BY cb.id
		 ORDER BY COUNT(b.id) DESC, cb.name ASC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.BeanWithCount
	for rows.Next() {
		var item domain.BeanWithCount
		var roastDate sql.NullTime
		err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Roaster, &item.Origin,
			&item.RoastLevel, &item.Process, &roastDate, &item.Link, &item.Notes,
			&item.CreatedAt, &item.BrewCount)
		if err != nil {
			return nil, err
		}
		if roastDate.Valid {
			item.RoastDate = &roastDate.Time
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// DistinctBrewDays returns the distinct local calendar days with at
// least one non-deleted brew, most recent first, windowed to the
// trailing lookback days. Timestamps are folded into local days in Go so
// day boundaries match the rest of the day-scoped queries.
func (d *DB) DistinctBrewDays(ctx context.Context, userID int64, lookbackDays int) ([]string, error) {
	since := time.Now().AddDate(0, 0, -lookbackDays)

	rows, err := d.sql.QueryContext(ctx,
		"SELECT brewed_at FROM brews WHERE user_id = $1 AND deleted_at IS NULL AND brewed_at >= $2 ORDER BY brewed_at DESC",
		userID, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var days []string
	for rows.Next() {
		var brewedAt time.Time
		if err := rows.Scan(&brewedAt); err != nil {
			return nil, err
		}
		day := brewedAt.In(time.Local).Format(domain.DayFormat)
		if len(days) == 0 || days[len(days)-1] != day {
			days = append(days, day)
		}
	}
	return days, rows.Err()
}
