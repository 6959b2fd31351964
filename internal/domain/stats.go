package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MethodCount is one row of the favorite-method ranking.
type MethodCount struct {
	Method    BrewMethod `json:"method"`
	BrewCount int        `json:"brewCount"`
}

// BeanStats is the per-bean aggregate. AverageRating is nil (not zero)
// when no rated brews exist; this deliberately differs from the weekly
// average, which reports 0 for "no data".
type BeanStats struct {
	TotalBrews    int        `json:"totalBrews"`
	AverageRating *float64   `json:"averageRating"`
	FirstBrewedAt *time.Time `json:"firstBrewedAt"`
	LastBrewedAt  *time.Time `json:"lastBrewedAt"`
}

// BeanWithCount pairs a bean with its non-deleted brew count for the
// inventory ranking.
type BeanWithCount struct {
	Bean
	BrewCount int `json:"brewCount"`
}

// StatsRepository is the port for read-only aggregate projections over a
// user's brew history. Every query excludes soft-deleted rows and is
// scoped to one owner; none of them cache or mutate anything.
type StatsRepository interface {
	// TodayBrewCount counts brews whose brewed_at falls on the given
	// local calendar day.
	TodayBrewCount(ctx context.Context, userID int64, localDay string) (int, error)
	// WeeklyAverageRating averages ratings over the trailing 7 days,
	// returning 0 when no qualifying rows exist.
	WeeklyAverageRating(ctx context.Context, userID int64) (float64, error)
	// FavoriteMethods ranks methods by brew count, descending, ties
	// broken alphabetically by method.
	FavoriteMethods(ctx context.Context, userID int64, limit int) ([]MethodCount, error)
	BeanStats(ctx context.Context, userID int64, beanID uuid.UUID) (*BeanStats, error)
	BeanCount(ctx context.Context, userID int64) (int, error)
	// TopBeans ranks the user's beans by non-deleted brew count,
	// descending, ties broken alphabetically by name. Beans without
	// brews are included with a zero count.
	TopBeans(ctx context.Context, userID int64, limit int) ([]BeanWithCount, error)
	// DistinctBrewDays returns the distinct local calendar days with at
	// least one brew, most recent first, windowed to the trailing
	// lookback days.
	DistinctBrewDays(ctx context.Context, userID int64, lookbackDays int) ([]string, error)
}
