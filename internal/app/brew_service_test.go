package app

import (
	"context"
	"errors"
	"testing"

	"brewlog/internal/domain"

	"github.com/google/uuid"
)

type mockBrewRepo struct {
	createBrewFn     func(ctx context.Context, b *domain.Brew) (*domain.Brew, error)
	getBrewFn        func(ctx context.Context, userID int64, id uuid.UUID) (*domain.Brew, error)
	listBrewsFn      func(ctx context.Context, userID int64, f domain.BrewFilter) ([]domain.BrewWithBean, error)
	updateBrewFn     func(ctx context.Context, b *domain.Brew) (*domain.Brew, error)
	softDeleteBrewFn func(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
	setBrewPublicFn  func(ctx context.Context, userID int64, id uuid.UUID, public bool) (bool, error)
	getSharedBrewFn  func(ctx context.Context, id uuid.UUID) (*domain.BrewWithBean, error)
}

func (m *mockBrewRepo) CreateBrew(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
	if m.createBrewFn != nil {
		return m.createBrewFn(ctx, b)
	}
	created := *b
	created.ID = uuid.New()
	return &created, nil
}

func (m *mockBrewRepo) GetBrew(ctx context.Context, userID int64, id uuid.UUID) (*domain.Brew, error) {
	if m.getBrewFn != nil {
		return m.getBrewFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockBrewRepo) ListBrews(ctx context.Context, userID int64, f domain.BrewFilter) ([]domain.BrewWithBean, error) {
	if m.listBrewsFn != nil {
		return m.listBrewsFn(ctx, userID, f)
	}
	return nil, nil
}

func (m *mockBrewRepo) UpdateBrew(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
	if m.updateBrewFn != nil {
		return m.updateBrewFn(ctx, b)
	}
	return nil, nil
}

func (m *mockBrewRepo) SoftDeleteBrew(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	if m.softDeleteBrewFn != nil {
		return m.softDeleteBrewFn(ctx, userID, id)
	}
	return false, nil
}

func (m *mockBrewRepo) SetBrewPublic(ctx context.Context, userID int64, id uuid.UUID, public bool) (bool, error) {
	if m.setBrewPublicFn != nil {
		return m.setBrewPublicFn(ctx, userID, id, public)
	}
	return false, nil
}

func (m *mockBrewRepo) GetSharedBrew(ctx context.Context, id uuid.UUID) (*domain.BrewWithBean, error) {
	if m.getSharedBrewFn != nil {
		return m.getSharedBrewFn(ctx, id)
	}
	return nil, nil
}

// beanRepoWith returns a bean repo that knows exactly one bean.
func beanRepoWith(beanID uuid.UUID) *mockBeanRepo {
	return &mockBeanRepo{
		getBeanFn: func(ctx context.Context, userID int64, id uuid.UUID) (*domain.Bean, error) {
			if id == beanID {
				return &domain.Bean{ID: id, UserID: userID, Name: "Kenya"}, nil
			}
			return nil, nil
		},
	}
}

func TestBrewService_Record_Success(t *testing.T) {
	beanID := uuid.New()
	brews := &mockBrewRepo{
		createBrewFn: func(ctx context.Context, b *domain.Brew) (*domain.Brew, error) {
			if b.UserID != 1 {
				t.Errorf("expected userID 1, got %d", b.UserID)
			}
			if b.BeanID != beanID {
				t.Errorf("expected bean %s, got %s", beanID, b.BeanID)
			}
			if b.BrewedAt.IsZero() {
				t.Error("expected brewedAt to default to now")
			}
			created := *b
			created.ID = uuid.New()
			return &created, nil
		},
	}

	svc := NewBrewService(brews, beanRepoWith(beanID))
	dose := 18.0
	rating := 4
	brew, err := svc.Record(context.Background(), 1, BrewInput{
		BeanID:    beanID.String(),
		Method:    "v60",
		DoseGrams: &dose,
		Rating:    &rating,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if brew.Method != domain.MethodV60 {
		t.Errorf("expected v60, got %s", brew.Method)
	}
}

func TestBrewService_Record_RequiresBean(t *testing.T) {
	svc := NewBrewService(&mockBrewRepo{}, &mockBeanRepo{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, 1, BrewInput{BeanID: "not-a-uuid", Method: "v60"}); err == nil {
		t.Error("expected error for malformed bean id")
	}
	// Well-formed but unknown bean id (the mock knows none).
	if _, err := svc.Record(ctx, 1, BrewInput{BeanID: uuid.New().String(), Method: "v60"}); err == nil {
		t.Error("expected error for missing bean")
	}
}

func TestBrewService_Record_Validation(t *testing.T) {
	beanID := uuid.New()
	svc := NewBrewService(&mockBrewRepo{}, beanRepoWith(beanID))
	ctx := context.Background()
	base := BrewInput{BeanID: beanID.String(), Method: "v60"}

	in := base
	in.Method = "percolator"
	if _, err := svc.Record(ctx, 1, in); err == nil {
		t.Error("expected error for unknown method")
	}

	in = base
	rating := 6
	in.Rating = &rating
	if _, err := svc.Record(ctx, 1, in); err == nil {
		t.Error("expected error for rating out of range")
	}

	in = base
	dose := -1.0
	in.DoseGrams = &dose
	if _, err := svc.Record(ctx, 1, in); err == nil {
		t.Error("expected error for non-positive dose")
	}

	in = base
	temp := 120
	in.WaterTempCelsius = &temp
	if _, err := svc.Record(ctx, 1, in); err == nil {
		t.Error("expected error for water temperature out of range")
	}

	in = base
	in.GrinderID = "not-a-uuid"
	if _, err := svc.Record(ctx, 1, in); err == nil {
		t.Error("expected error for malformed grinder id")
	}
}

func TestBrewService_Get_MalformedID(t *testing.T) {
	svc := NewBrewService(&mockBrewRepo{}, &mockBeanRepo{})

	_, err := svc.Get(context.Background(), 1, "not-a-uuid")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBrewService_Delete_NotFound(t *testing.T) {
	svc := NewBrewService(&mockBrewRepo{}, &mockBeanRepo{})

	err := svc.Delete(context.Background(), 1, uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBrewService_SetPublic(t *testing.T) {
	var gotPublic bool
	brews := &mockBrewRepo{
		setBrewPublicFn: func(ctx context.Context, userID int64, id uuid.UUID, public bool) (bool, error) {
			gotPublic = public
			return true, nil
		},
	}
	svc := NewBrewService(brews, &mockBeanRepo{})

	if err := svc.SetPublic(context.Background(), 1, uuid.New().String(), true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !gotPublic {
		t.Error("expected public flag to be passed through")
	}
}

func TestBrewService_Shared_NotFound(t *testing.T) {
	svc := NewBrewService(&mockBrewRepo{}, &mockBeanRepo{})

	_, err := svc.Shared(context.Background(), uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for private or missing brew, got %v", err)
	}
}

func TestBrewService_Shared_Public(t *testing.T) {
	brewID := uuid.New()
	brews := &mockBrewRepo{
		getSharedBrewFn: func(ctx context.Context, id uuid.UUID) (*domain.BrewWithBean, error) {
			return &domain.BrewWithBean{
				Brew:     domain.Brew{ID: id, Method: domain.MethodV60, IsPublic: true},
				BeanName: "Kenya",
			}, nil
		},
	}
	svc := NewBrewService(brews, &mockBeanRepo{})

	brew, err := svc.Shared(context.Background(), brewID.String())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if brew.BeanName != "Kenya" {
		t.Errorf("expected bean name, got %q", brew.BeanName)
	}
}
