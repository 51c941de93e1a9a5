package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
	"github.com/utafrali/glamstore/internal/session"
	"github.com/utafrali/glamstore/internal/storage"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// --- Mock Storage ---

type mockImageStorage struct {
	mock.Mock
}

func (m *mockImageStorage) Save(ctx context.Context, originalName string, r io.Reader) (*storage.StoredImage, error) {
	args := m.Called(ctx, originalName, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredImage), args.Error(1)
}

func (m *mockImageStorage) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *mockImageStorage) URL(filename string) string {
	if filename == "" {
		return ""
	}
	return "/uploads/" + filename
}

// --- Fake Session Store ---

// fakeSessionStore is an in-memory session.Store with real version
// semantics, so conflict paths can be exercised without Redis.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]session.Session)}
}

func copySession(s session.Session) session.Session {
	cart := make(domain.Cart, len(s.Cart))
	for k, v := range s.Cart {
		cart[k] = v
	}
	s.Cart = cart
	return s
}

func (f *fakeSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}

	copied := copySession(stored)
	return &copied, nil
}

func (f *fakeSessionStore) Save(ctx context.Context, s *session.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s.Version++
	s.UpdatedAt = time.Now().UTC()
	f.sessions[s.ID] = copySession(*s)
	return nil
}

func (f *fakeSessionStore) SaveIfVersion(ctx context.Context, s *session.Session, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.sessions[s.ID]
	if !ok {
		if expectedVersion != 0 {
			return apperrors.Conflict("session was modified concurrently")
		}
	} else if stored.Version != expectedVersion {
		return apperrors.Conflict("session was modified concurrently")
	}

	s.Version = expectedVersion + 1
	s.UpdatedAt = time.Now().UTC()
	f.sessions[s.ID] = copySession(*s)
	return nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, id)
	return nil
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	return session.New("sess-test", time.Now().UTC())
}

func newSignedInSession(t *testing.T) *session.Session {
	t.Helper()

	sess := session.New("sess-test", time.Now().UTC())
	sess.UserID = "user-1"
	sess.UserName = "Ada"
	sess.Role = domain.RoleCustomer
	return sess
}

func sampleProduct(id string, priceCents int64) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:          id,
		Name:        "Radiance Serum",
		Description: "Brightening vitamin C serum",
		PriceCents:  priceCents,
		Category:    "skincare",
		Image:       "serum.png",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
