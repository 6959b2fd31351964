package app

import (
	"context"
	"testing"
	"time"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

func TestStatsService_GetDashboard(t *testing.T) {
	today := time.Now().In(time.Local).Format(domain.DayFormat)
	yesterday := time.Now().In(time.Local).AddDate(0, 0, -1).Format(domain.DayFormat)

	stats := &mockStatsRepo{
		todayBrewCountFn: func(ctx context.Context, userID int64, localDay string) (int, error) {
			switch localDay {
			case today:
				return 3, nil
			case yesterday:
				return 5, nil
			}
			t.Errorf("unexpected day %q", localDay)
			return 0, nil
		},
		weeklyAverageRatingFn: func(ctx context.Context, userID int64) (float64, error) {
			return 4.2, nil
		},
		favoriteMethodsFn: func(ctx context.Context, userID int64, limit int) ([]domain.MethodCount, error) {
			if limit != 1 {
				t.Errorf("expected limit 1 on the dashboard, got %d", limit)
			}
			return []domain.MethodCount{{Method: domain.MethodV60, BrewCount: 12}}, nil
		},
		beanCountFn: func(ctx context.Context, userID int64) (int, error) {
			return 4, nil
		},
		distinctBrewDaysFn: func(ctx context.Context, userID int64, lookbackDays int) ([]string, error) {
			return []string{today, yesterday}, nil
		},
	}
	brews := &mockBrewRepo{
		listBrewsFn: func(ctx context.Context, userID int64, f domain.BrewFilter) ([]domain.BrewWithBean, error) {
			if f.Limit != 10 {
				t.Errorf("expected 10 recent brews, got limit %d", f.Limit)
			}
			return []domain.BrewWithBean{{Brew: domain.Brew{ID: uuid.New()}, BeanName: "Kenya"}}, nil
		},
	}

	svc := NewStatsService(stats, brews)
	d, err := svc.GetDashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if d.TodayBrewCount != 3 {
		t.Errorf("expected 3 brews today, got %d", d.TodayBrewCount)
	}
	if d.BrewCountChange != -2 {
		t.Errorf("expected change -2, got %d", d.BrewCountChange)
	}
	if d.WeeklyAverageRating != 4.2 {
		t.Errorf("expected weekly average 4.2, got %f", d.WeeklyAverageRating)
	}
	if len(d.FavoriteMethods) != 1 || d.FavoriteMethods[0].Method != domain.MethodV60 {
		t.Errorf("unexpected favorite methods %+v", d.FavoriteMethods)
	}
	if d.BeanCount != 4 {
		t.Errorf("expected 4 beans, got %d", d.BeanCount)
	}
	if d.CurrentStreak != 2 {
		t.Errorf("expected streak 2, got %d", d.CurrentStreak)
	}
	if len(d.RecentBrews) != 1 {
		t.Errorf("expected 1 recent brew, got %d", len(d.RecentBrews))
	}
}

func TestStatsService_GetDashboard_Empty(t *testing.T) {
	svc := NewStatsService(&mockStatsRepo{}, &mockBrewRepo{})

	d, err := svc.GetDashboard(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.TodayBrewCount != 0 || d.BrewCountChange != 0 || d.WeeklyAverageRating != 0 || d.CurrentStreak != 0 {
		t.Errorf("expected zeroed dashboard, got %+v", d)
	}
}

func TestStatsService_GetStreak_NoBrewToday(t *testing.T) {
	yesterday := time.Now().In(time.Local).AddDate(0, 0, -1).Format(domain.DayFormat)
	stats := &mockStatsRepo{
		distinctBrewDaysFn: func(ctx context.Context, userID int64, lookbackDays int) ([]string, error) {
			if lookbackDays != domain.StreakLookbackDays {
				t.Errorf("expected lookback %d, got %d", domain.StreakLookbackDays, lookbackDays)
			}
			return []string{yesterday}, nil
		},
	}

	svc := NewStatsService(stats, &mockBrewRepo{})
	streak, err := svc.GetStreak(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if streak != 0 {
		t.Errorf("expected streak 0 without a brew today, got %d", streak)
	}
}

func TestStatsService_GetTopBeans_DefaultLimit(t *testing.T) {
	stats := &mockStatsRepo{
		topBeansFn: func(ctx context.Context, userID int64, limit int) ([]domain.BeanWithCount, error) {
			if limit != 50 {
				t.Errorf("expected default limit 50, got %d", limit)
			}
			return []domain.BeanWithCount{{Bean: domain.Bean{Name: "Kenya"}, BrewCount: 3}}, nil
		},
	}

	svc := NewStatsService(stats, &mockBrewRepo{})
	beans, err := svc.GetTopBeans(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(beans) != 1 || beans[0].BrewCount != 3 {
		t.Errorf("unexpected ranking %+v", beans)
	}
}

func TestStatsService_GetFavoriteMethods_DefaultLimit(t *testing.T) {
	stats := &mockStatsRepo{
		favoriteMethodsFn: func(ctx context.Context, userID int64, limit int) ([]domain.MethodCount, error) {
			if limit != 5 {
				t.Errorf("expected default limit 5, got %d", limit)
			}
			return nil, nil
		},
	}

	svc := NewStatsService(stats, &mockBrewRepo{})
	if _, err := svc.GetFavoriteMethods(context.Background(), 1, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
