package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"brewlog/internal/domain"
)

func seedBean(t *testing.T, db *DB, userID int64, name string) *domain.Bean {
	t.Helper()
	bean, err := db.CreateBean(context.Background(), &domain.Bean{UserID: userID, Name: name})
	if err != nil {
		t.Fatalf("CreateBean: %v", err)
	}
	return bean
}

func seedBrew(t *testing.T, db *DB, b *domain.Brew) *domain.Brew {
	t.Helper()
	if b.BrewedAt.IsZero() {
		b.BrewedAt = time.Now()
	}
	brew, err := db.CreateBrew(context.Background(), b)
	if err != nil {
		t.Fatalf("CreateBrew: %v", err)
	}
	return brew
}

func TestBrewRepositoryOwnerScoping(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	mine := seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60})

	otherBean := seedBean(t, db, 2, "Geisha")
	seedBrew(t, db, &domain.Brew{UserID: 2, BeanID: otherBean.ID, Method: domain.MethodEspresso})

	// Listing is scoped to one owner.
	brews, err := db.ListBrews(ctx, 1, domain.BrewFilter{})
	if err != nil {
		t.Fatalf("ListBrews: %v", err)
	}
	if len(brews) != 1 {
		t.Fatalf("expected 1 brew, got %d", len(brews))
	}
	if brews[0].BeanName != "Kenya AA" {
		t.Errorf("expected bean name joined, got %q", brews[0].BeanName)
	}

	// Another user cannot read or delete someone else's brew.
	got, _ := db.GetBrew(ctx, 2, mine.ID)
	if got != nil {
		t.Error("expected nil for cross-owner get")
	}
	deleted, _ := db.SoftDeleteBrew(ctx, 2, mine.ID)
	if deleted {
		t.Error("expected cross-owner delete to be a no-op")
	}
}

func TestBrewRepositorySoftDelete(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	rating := 5
	brew := seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, Rating: &rating})

	deleted, err := db.SoftDeleteBrew(ctx, 1, brew.ID)
	if err != nil {
		t.Fatalf("SoftDeleteBrew: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report true")
	}

	// Deleting twice is a no-op.
	deleted, _ = db.SoftDeleteBrew(ctx, 1, brew.ID)
	if deleted {
		t.Error("expected second delete to report false")
	}

	// Deleted brews vanish from every read path.
	if got, _ := db.GetBrew(ctx, 1, brew.ID); got != nil {
		t.Error("expected deleted brew hidden from get")
	}
	if brews, _ := db.ListBrews(ctx, 1, domain.BrewFilter{}); len(brews) != 0 {
		t.Errorf("expected deleted brew hidden from list, got %d", len(brews))
	}
	today := time.Now().In(time.Local).Format(domain.DayFormat)
	if n, _ := db.TodayBrewCount(ctx, 1, today); n != 0 {
		t.Errorf("expected deleted brew excluded from counts, got %d", n)
	}
	if avg, _ := db.WeeklyAverageRating(ctx, 1); avg != 0 {
		t.Errorf("expected deleted brew excluded from averages, got %f", avg)
	}
	if days, _ := db.DistinctBrewDays(ctx, 1, domain.StreakLookbackDays); len(days) != 0 {
		t.Errorf("expected deleted brew excluded from brew days, got %v", days)
	}
}

func TestBrewRepositoryFilters(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	other := seedBean(t, db, 1, "Geisha")
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, Notes: "bright and floral"})
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: other.ID, Method: domain.MethodEspresso, FlavorNotes: "chocolate"})

	method := domain.MethodV60
	brews, err := db.ListBrews(ctx, 1, domain.BrewFilter{Method: &method})
	if err != nil {
		t.Fatalf("ListBrews: %v", err)
	}
	if len(brews) != 1 || brews[0].Method != domain.MethodV60 {
		t.Errorf("method filter: got %v", brews)
	}

	brews, _ = db.ListBrews(ctx, 1, domain.BrewFilter{BeanID: &other.ID})
	if len(brews) != 1 || brews[0].BeanID != other.ID {
		t.Errorf("bean filter: got %v", brews)
	}

	search := "CHOCO"
	brews, _ = db.ListBrews(ctx, 1, domain.BrewFilter{Search: &search})
	if len(brews) != 1 || brews[0].FlavorNotes != "chocolate" {
		t.Errorf("search filter: got %v", brews)
	}
}

func TestDeleteBeanInUse(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	brew := seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60})

	_, err := db.DeleteBean(ctx, 1, bean.ID)
	if !errors.Is(err, domain.ErrBeanInUse) {
		t.Fatalf("expected ErrBeanInUse, got %v", err)
	}

	// Soft-deleting the brew releases the bean.
	if _, err := db.SoftDeleteBrew(ctx, 1, brew.ID); err != nil {
		t.Fatalf("SoftDeleteBrew: %v", err)
	}
	deleted, err := db.DeleteBean(ctx, 1, bean.ID)
	if err != nil {
		t.Fatalf("DeleteBean: %v", err)
	}
	if !deleted {
		t.Error("expected bean deleted")
	}
}

func TestSharedBrewVisibility(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	brew := seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60})

	// Private brews are invisible on the share path.
	if got, _ := db.GetSharedBrew(ctx, brew.ID); got != nil {
		t.Error("expected private brew hidden")
	}

	if ok, _ := db.SetBrewPublic(ctx, 1, brew.ID, true); !ok {
		t.Fatal("SetBrewPublic reported false")
	}
	got, err := db.GetSharedBrew(ctx, brew.ID)
	if err != nil {
		t.Fatalf("GetSharedBrew: %v", err)
	}
	if got == nil || got.BeanName != "Kenya AA" {
		t.Errorf("expected shared brew with bean, got %v", got)
	}

	// Deletion wins over sharing.
	_, _ = db.SoftDeleteBrew(ctx, 1, brew.ID)
	if got, _ := db.GetSharedBrew(ctx, brew.ID); got != nil {
		t.Error("expected deleted brew hidden from share path")
	}
}

func TestFavoriteMethodsRanking(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	for range 3 {
		seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60})
	}
	// Tie between espresso and aeropress breaks alphabetically.
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodEspresso})
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodAeropress})

	methods, err := db.FavoriteMethods(ctx, 1, 2)
	if err != nil {
		t.Fatalf("FavoriteMethods: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if methods[0].Method != domain.MethodV60 || methods[0].BrewCount != 3 {
		t.Errorf("expected v60 first, got %+v", methods[0])
	}
	if methods[1].Method != domain.MethodAeropress {
		t.Errorf("expected aeropress on tie, got %+v", methods[1])
	}
}

func TestBeanStats(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")

	// No brews: zero counts, nil average.
	stats, err := db.BeanStats(ctx, 1, bean.ID)
	if err != nil {
		t.Fatalf("BeanStats: %v", err)
	}
	if stats.TotalBrews != 0 || stats.AverageRating != nil {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	r4, r5 := 4, 5
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, Rating: &r4})
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, Rating: &r5})
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60})

	stats, _ = db.BeanStats(ctx, 1, bean.ID)
	if stats.TotalBrews != 3 {
		t.Errorf("expected 3 brews, got %d", stats.TotalBrews)
	}
	if stats.AverageRating == nil || *stats.AverageRating != 4.5 {
		t.Errorf("expected average 4.5 over rated brews only, got %v", stats.AverageRating)
	}
	if stats.FirstBrewedAt == nil || stats.LastBrewedAt == nil {
		t.Error("expected first/last brewed timestamps")
	}
}

func TestTopBeans(t *testing.T) {
	db := New()
	ctx := context.Background()

	kenya := seedBean(t, db, 1, "Kenya AA")
	geisha := seedBean(t, db, 1, "Geisha")
	unbrewed := seedBean(t, db, 1, "Decaf")
	otherBean := seedBean(t, db, 2, "Sumatra")

	for range 3 {
		seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: geisha.ID, Method: domain.MethodV60})
	}
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: kenya.ID, Method: domain.MethodEspresso})
	deleted := seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: kenya.ID, Method: domain.MethodEspresso})
	if _, err := db.SoftDeleteBrew(ctx, 1, deleted.ID); err != nil {
		t.Fatalf("SoftDeleteBrew: %v", err)
	}
	seedBrew(t, db, &domain.Brew{UserID: 2, BeanID: otherBean.ID, Method: domain.MethodV60})

	beans, err := db.TopBeans(ctx, 1, 10)
	if err != nil {
		t.Fatalf("TopBeans: %v", err)
	}
	if len(beans) != 3 {
		t.Fatalf("expected 3 beans, got %d", len(beans))
	}
	if beans[0].Name != "Geisha" || beans[0].BrewCount != 3 {
		t.Errorf("expected Geisha first with 3 brews, got %+v", beans[0])
	}
	// The soft-deleted brew does not count.
	if beans[1].Name != "Kenya AA" || beans[1].BrewCount != 1 {
		t.Errorf("expected Kenya AA with 1 brew, got %+v", beans[1])
	}
	// Unbrewed beans stay in the ranking with zero.
	if beans[2].ID != unbrewed.ID || beans[2].BrewCount != 0 {
		t.Errorf("expected unbrewed bean last with 0, got %+v", beans[2])
	}

	// Limit truncates the ranking.
	beans, _ = db.TopBeans(ctx, 1, 1)
	if len(beans) != 1 || beans[0].Name != "Geisha" {
		t.Errorf("expected only the top bean, got %+v", beans)
	}
}

func TestDistinctBrewDays(t *testing.T) {
	db := New()
	ctx := context.Background()

	bean := seedBean(t, db, 1, "Kenya AA")
	now := time.Now()
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, BrewedAt: now})
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, BrewedAt: now.Add(-time.Hour)})
	seedBrew(t, db, &domain.Brew{UserID: 1, BeanID: bean.ID, Method: domain.MethodV60, BrewedAt: now.AddDate(0, 0, -2)})

	days, err := db.DistinctBrewDays(ctx, 1, domain.StreakLookbackDays)
	if err != nil {
		t.Fatalf("DistinctBrewDays: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 distinct days, got %v", days)
	}
	if days[0] != now.In(time.Local).Format(domain.DayFormat) {
		t.Errorf("expected most recent day first, got %v", days)
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "bob@example.com", "Bob", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	u2, err := db.GetByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u2 == nil || u2.ID != u.ID {
		t.Error("failed to retrieve user")
	}

	if _, err := db.Create(ctx, "bob@example.com", "Bob", "hash"); err == nil {
		t.Error("expected duplicate email to fail")
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	err := repo.Create(ctx, 1, "token123", "agent", "127.0.0.1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	sess, err := repo.GetByToken(ctx, "token123")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserAgent != "agent" {
		t.Errorf("expected session with user agent, got %v", sess)
	}

	_ = repo.Delete(ctx, "token123")
	sess, _ = repo.GetByToken(ctx, "token123")
	if sess != nil {
		t.Error("expected nil (deleted)")
	}
}
