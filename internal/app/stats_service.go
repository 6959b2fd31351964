package app

import (
	"context"
	"time"

	"brewlog/internal/domain"

	"golang.org/x/sync/errgroup"
)

// StatsService derives dashboard statistics from a user's brew history.
// Every number is recomputed from the live store on each call; none of
// the queries mutate anything or depend on another's result, so the
// dashboard fans them out concurrently.
type StatsService struct {
	stats domain.StatsRepository
	brews domain.BrewRepository
}

// NewStatsService creates a StatsService backed by the given repositories.
func NewStatsService(stats domain.StatsRepository, brews domain.BrewRepository) *StatsService {
	return &StatsService{stats: stats, brews: brews}
}

// Dashboard is the aggregate view rendered on the landing page.
type Dashboard struct {
	TodayBrewCount      int                   `json:"todayBrewCount"`
	BrewCountChange     int                   `json:"brewCountChange"`
	WeeklyAverageRating float64               `json:"weeklyAverageRating"`
	FavoriteMethods     []domain.MethodCount  `json:"favoriteMethods"`
	BeanCount           int                   `json:"beanCount"`
	CurrentStreak       int                   `json:"currentStreak"`
	RecentBrews         []domain.BrewWithBean `json:"recentBrews"`
}

// GetDashboard assembles the dashboard for one user. The day-over-day
// change is plain subtraction of yesterday's count from today's.
func (s *StatsService) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	now := time.Now().In(time.Local)
	today := now.Format(domain.DayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(domain.DayFormat)

	var d Dashboard
	var yesterdayCount int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TodayBrewCount, err = s.stats.TodayBrewCount(gctx, userID, today)
		return err
	})
	g.Go(func() (err error) {
		yesterdayCount, err = s.stats.TodayBrewCount(gctx, userID, yesterday)
		return err
	})
	g.Go(func() (err error) {
		d.WeeklyAverageRating, err = s.stats.WeeklyAverageRating(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.FavoriteMethods, err = s.stats.FavoriteMethods(gctx, userID, 1)
		return err
	})
	g.Go(func() (err error) {
		d.BeanCount, err = s.stats.BeanCount(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.RecentBrews, err = s.brews.ListBrews(gctx, userID, domain.BrewFilter{Limit: 10})
		return err
	})
	g.Go(func() error {
		streak, err := s.currentStreak(gctx, userID, today)
		if err != nil {
			return err
		}
		d.CurrentStreak = streak
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.BrewCountChange = d.TodayBrewCount - yesterdayCount
	return &d, nil
}

// GetStreak returns the current consecutive-day brewing streak.
func (s *StatsService) GetStreak(ctx context.Context, userID int64) (int, error) {
	today := time.Now().In(time.Local).Format(domain.DayFormat)
	return s.currentStreak(ctx, userID, today)
}

// GetFavoriteMethods returns the top methods by brew count.
func (s *StatsService) GetFavoriteMethods(ctx context.Context, userID int64, limit int) ([]domain.MethodCount, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.stats.FavoriteMethods(ctx, userID, limit)
}

// GetTopBeans returns the user's beans ranked by brew count, the view
// the bean inventory renders.
func (s *StatsService) GetTopBeans(ctx context.Context, userID int64, limit int) ([]domain.BeanWithCount, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.stats.TopBeans(ctx, userID, limit)
}

func (s *StatsService) currentStreak(ctx context.Context, userID int64, today string) (int, error) {
	days, err := s.stats.DistinctBrewDays(ctx, userID, domain.StreakLookbackDays)
	if err != nil {
		return 0, err
	}
	return domain.CurrentStreak(days, today), nil
}
