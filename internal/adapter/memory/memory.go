// Package memory implements in-memory repositories for development and
// testing. Behavior mirrors the postgres adapter, including owner
// scoping and soft-delete filtering.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

// DB implements the persistence ports backed by in-memory slices.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	sessions map[string]*domain.Session
	beans    []domain.Bean
	grinders []domain.Grinder
	brews    []domain.Brew

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)
var _ domain.BeanRepository = (*DB)(nil)
var _ domain.GrinderRepository = (*DB)(nil)
var _ domain.BrewRepository = (*DB)(nil)
var _ domain.StatsRepository = (*DB)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, email, name, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// --- BeanRepository ---

// CreateBean adds a bean to the user's inventory.
func (db *DB) CreateBean(ctx context.Context, b *domain.Bean) (*domain.Bean, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	bean := *b
	bean.ID = uuid.New()
	bean.CreatedAt = time.Now().UTC()
	db.beans = append(db.beans, bean)

	created := bean
	return &created, nil
}

// GetBean returns one bean owned by userID, or nil.
func (db *DB) GetBean(ctx context.Context, userID int64, id uuid.UUID) (*domain.Bean, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.beans {
		if db.beans[i].ID == id && db.beans[i].UserID == userID {
			bean := db.beans[i]
			return &bean, nil
		}
	}
	return nil, nil
}

// ListBeans returns the user's beans, newest first.
func (db *DB) ListBeans(ctx context.Context, userID int64) ([]domain.Bean, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Bean
	for _, b := range db.beans {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateBean stores changes to a bean owned by its UserID.
func (db *DB) UpdateBean(ctx context.Context, b *domain.Bean) (*domain.Bean, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.beans {
		if db.beans[i].ID == b.ID && db.beans[i].UserID == b.UserID {
			updated := *b
			updated.CreatedAt = db.beans[i].CreatedAt
			db.beans[i] = updated
			bean := updated
			return &bean, nil
		}
	}
	return nil, nil
}

// DeleteBean removes a bean unless non-deleted brews still reference it.
func (db *DB) DeleteBean(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, brew := range db.brews {
		if brew.BeanID == id && brew.DeletedAt == nil {
			return false, domain.ErrBeanInUse
		}
	}

	for i := range db.beans {
		if db.beans[i].ID == id && db.beans[i].UserID == userID {
			db.beans = append(db.beans[:i], db.beans[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- GrinderRepository ---

// CreateGrinder adds a grinder to the user's equipment list.
func (db *DB) CreateGrinder(ctx context.Context, g *domain.Grinder) (*domain.Grinder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	grinder := *g
	grinder.ID = uuid.New()
	grinder.CreatedAt = time.Now().UTC()
	db.grinders = append(db.grinders, grinder)

	created := grinder
	return &created, nil
}

// GetGrinder returns one grinder owned by userID, or nil.
func (db *DB) GetGrinder(ctx context.Context, userID int64, id uuid.UUID) (*domain.Grinder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.grinders {
		if db.grinders[i].ID == id && db.grinders[i].UserID == userID {
			grinder := db.grinders[i]
			return &grinder, nil
		}
	}
	return nil, nil
}

// ListGrinders returns the user's grinders ordered by display name.
func (db *DB) ListGrinders(ctx context.Context, userID int64, activeOnly bool) ([]domain.Grinder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Grinder
	for _, g := range db.grinders {
		if g.UserID != userID {
			continue
		}
		if activeOnly && !g.IsActive {
			continue
		}
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DisplayName < result[j].DisplayName
	})
	return result, nil
}

// UpdateGrinder stores changes to a grinder owned by its UserID.
func (db *DB) UpdateGrinder(ctx context.Context, g *domain.Grinder) (*domain.Grinder, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.grinders {
		if db.grinders[i].ID == g.ID && db.grinders[i].UserID == g.UserID {
			updated := *g
			updated.CreatedAt = db.grinders[i].CreatedAt
			db.grinders[i] = updated
			grinder := updated
			return &grinder, nil
		}
	}
	return nil, nil
}

// --- BrewRepository ---

// CreateBrew records a brew.
func (db *DB) CreateBrew(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	brew := *b
	brew.ID = uuid.New()
	now := time.Now().UTC()
	brew.CreatedAt = now
	brew.UpdatedAt = now
	db.brews = append(db.brews, brew)

	created := brew
	return &created, nil
}

// GetBrew returns one non-deleted brew owned by userID, or nil.
func (db *DB) GetBrew(ctx context.Context, userID int64, id uuid.UUID) (*domain.Brew, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.brews {
		b := &db.brews[i]
		if b.ID == id && b.UserID == userID && b.DeletedAt == nil {
			brew := *b
			return &brew, nil
		}
	}
	return nil, nil
}

// ListBrews returns the user's non-deleted brews with bean display
// fields, newest first, narrowed by the filter.
func (db *DB) ListBrews(ctx context.Context, userID int64, f domain.BrewFilter) ([]domain.BrewWithBean, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.BrewWithBean
	for _, b := range db.brews {
		if b.UserID != userID || b.DeletedAt != nil {
			continue
		}
		if !matchesFilter(&b, f) {
			continue
		}
		result = append(result, db.withBean(b))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].BrewedAt.After(result[j].BrewedAt)
	})

	limit, offset := f.Window()
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func matchesFilter(b *domain.Brew, f domain.BrewFilter) bool {
	if f.Method != nil && b.Method != *f.Method {
		return false
	}
	if f.BeanID != nil && b.BeanID != *f.BeanID {
		return false
	}
	if f.GrinderID != nil && (b.GrinderID == nil || *b.GrinderID != *f.GrinderID) {
		return false
	}
	if f.Search != nil {
		needle := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(b.Notes), needle) &&
			!strings.Contains(strings.ToLower(b.FlavorNotes), needle) {
			return false
		}
	}
	if f.From != nil && b.BrewedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !b.BrewedAt.Before(*f.To) {
		return false
	}
	return true
}

func (db *DB) withBean(b domain.Brew) domain.BrewWithBean {
	wb := domain.BrewWithBean{Brew: b}
	for i := range db.beans {
		if db.beans[i].ID == b.BeanID {
			wb.BeanName = db.beans[i].Name
			wb.BeanRoaster = db.beans[i].Roaster
			break
		}
	}
	return wb
}

// UpdateBrew stores changes to a non-deleted brew owned by its UserID.
func (db *DB) UpdateBrew(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.brews {
		cur := &db.brews[i]
		if cur.ID == b.ID && cur.UserID == b.UserID && cur.DeletedAt == nil {
			updated := *b
			updated.CreatedAt = cur.CreatedAt
			updated.UpdatedAt = time.Now().UTC()
			db.brews[i] = updated
			brew := updated
			return &brew, nil
		}
	}
	return nil, nil
}

// SoftDeleteBrew marks a brew deleted. The row stays in the slice but is
// filtered out of every read path.
func (db *DB) SoftDeleteBrew(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.brews {
		b := &db.brews[i]
		if b.ID == id && b.UserID == userID && b.DeletedAt == nil {
			now := time.Now().UTC()
			b.DeletedAt = &now
			return true, nil
		}
	}
	return false, nil
}

// SetBrewPublic toggles the share flag on a non-deleted brew.
func (db *DB) SetBrewPublic(ctx context.Context, userID int64, id uuid.UUID, public bool) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.brews {
		b := &db.brews[i]
		if b.ID == id && b.UserID == userID && b.DeletedAt == nil {
			b.IsPublic = public
			b.UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

// GetSharedBrew returns a public, non-deleted brew regardless of owner.
func (db *DB) GetSharedBrew(ctx context.Context, id uuid.UUID) (*domain.BrewWithBean, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, b := range db.brews {
		if b.ID == id && b.IsPublic && b.DeletedAt == nil {
			wb := db.withBean(b)
			return &wb, nil
		}
	}
	return nil, nil
}

// --- StatsRepository ---

// TodayBrewCount counts brews on the given local calendar day.
func (db *DB) TodayBrewCount(ctx context.Context, userID int64, localDay string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, err := time.ParseInLocation(domain.DayFormat, localDay, time.Local)
	if err != nil {
		return 0, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	count := 0
	for _, b := range db.brews {
		if b.UserID != userID || b.DeletedAt != nil {
			continue
		}
		if !b.BrewedAt.Before(dayStart.UTC()) && b.BrewedAt.Before(dayEnd.UTC()) {
			count++
		}
	}
	return count, nil
}

// WeeklyAverageRating averages ratings over the trailing 7 days. No
// qualifying rows means 0.
func (db *DB) WeeklyAverageRating(ctx context.Context, userID int64) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -7)
	var sum, n float64
	for _, b := range db.brews {
		if b.UserID != userID || b.DeletedAt != nil || b.Rating == nil {
			continue
		}
		if b.BrewedAt.Before(cutoff) {
			continue
		}
		sum += float64(*b.Rating)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / n, nil
}

// FavoriteMethods ranks methods by brew count, descending, ties broken
// alphabetically.
func (db *DB) FavoriteMethods(ctx context.Context, userID int64, limit int) ([]domain.MethodCount, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	counts := make(map[domain.BrewMethod]int)
	for _, b := range db.brews {
		if b.UserID == userID && b.DeletedAt == nil {
			counts[b.Method]++
		}
	}

	result := make([]domain.MethodCount, 0, len(counts))
	for m, c := range counts {
		result = append(result, domain.MethodCount{Method: m, BrewCount: c})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BrewCount != result[j].BrewCount {
			return result[i].BrewCount > result[j].BrewCount
		}
		return result[i].Method < result[j].Method
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// BeanStats aggregates brew history for one bean.
func (db *DB) BeanStats(ctx context.Context, userID int64, beanID uuid.UUID) (*domain.BeanStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var stats domain.BeanStats
	var ratingSum, ratingN float64
	for _, b := range db.brews {
		if b.UserID != userID || b.BeanID != beanID || b.DeletedAt != nil {
			continue
		}
		stats.TotalBrews++
		if b.Rating != nil {
			ratingSum += float64(*b.Rating)
			ratingN++
		}
		brewedAt := b.BrewedAt
		if stats.FirstBrewedAt == nil || brewedAt.Before(*stats.FirstBrewedAt) {
			stats.FirstBrewedAt = &brewedAt
		}
		if stats.LastBrewedAt == nil || brewedAt.After(*stats.LastBrewedAt) {
			stats.LastBrewedAt = &brewedAt
		}
	}
	if ratingN > 0 {
		avg := ratingSum / ratingN
		stats.AverageRating = &avg
	}
	return &stats, nil
}

// BeanCount counts the beans in the user's inventory.
func (db *DB) BeanCount(ctx context.Context, userID int64) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	count := 0
	for _, b := range db.beans {
		if b.UserID == userID {
			count++
		}
	}
	return count, nil
}

// TopBeans ranks the user's beans by non-deleted brew count, descending,
// ties broken alphabetically. Unbrewed beans rank last with zero.
func (db *DB) TopBeans(ctx context.Context, userID int64, limit int) ([]domain.BeanWithCount, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	counts := make(map[uuid.UUID]int)
	for _, b := range db.brews {
		if b.UserID == userID && b.DeletedAt == nil {
			counts[b.BeanID]++
		}
	}

	var result []domain.BeanWithCount
	for _, b := range db.beans {
		if b.UserID == userID {
			result = append(result, domain.BeanWithCount{Bean: b, BrewCount: counts[b.ID]})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BrewCount != result[j].BrewCount {
			return result[i].BrewCount > result[j].BrewCount
		}
		return result[i].Name < result[j].Name
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DistinctBrewDays returns the distinct local calendar days with at
// least one brew, most recent first, within the lookback window.
func (db *DB) DistinctBrewDays(ctx context.Context, userID int64, lookbackDays int) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -lookbackDays)
	seen := make(map[string]bool)
	var days []string
	for _, b := range db.brews {
		if b.UserID != userID || b.DeletedAt != nil || b.BrewedAt.Before(cutoff) {
			continue
		}
		day := b.BrewedAt.In(time.Local).Format(domain.DayFormat)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days, nil
}
