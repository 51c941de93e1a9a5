package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/repository"
	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/session"
	sessionredis "github.com/utafrali/glamstore/internal/session/redis"
	"github.com/utafrali/glamstore/internal/storage/local"
	"github.com/utafrali/glamstore/pkg/health"
	"github.com/utafrali/glamstore/pkg/middleware"
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

// --- Test Environment ---

type testEnv struct {
	router   http.Handler
	sessions session.Store
	tokens   *session.TokenManager

	productRepo *mockProductRepository
	userRepo    *mockUserRepository
	orderRepo   *mockOrderRepository
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupEnv builds the full router over a miniredis session store, with
// repositories mocked out.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	log := newTestLogger()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := sessionredis.NewStore(client, time.Hour)
	tokens := session.NewTokenManager("test-secret", time.Hour, false)

	uploadDir := t.TempDir()
	images, err := local.New(uploadDir, "/uploads", log)
	require.NoError(t, err)

	productRepo := new(mockProductRepository)
	userRepo := new(mockUserRepository)
	orderRepo := new(mockOrderRepository)

	router := NewRouter(RouterDeps{
		AuthService:     service.NewAuthService(userRepo, sessions, log),
		CatalogService:  service.NewCatalogService(productRepo, images, log),
		CartService:     service.NewCartService(productRepo, sessions, log),
		CheckoutService: service.NewCheckoutService(orderRepo, sessions, log),
		SessionStore:    sessions,
		Tokens:          tokens,
		Images:          images,
		HealthHandler:   health.NewHandler("glamstore"),
		Logger:          log,
		UploadDir:       uploadDir,
		CORS:            middleware.DefaultCORSConfig(),
	})

	return &testEnv{
		router:      router,
		sessions:    sessions,
		tokens:      tokens,
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
	}
}

// do performs a request against the router, carrying the given cookies.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie creates a pre-populated session and returns its cookie.
func (e *testEnv) sessionCookie(t *testing.T, mutate func(*session.Session)) *http.Cookie {
	t.Helper()

	sess := session.New("sess-fixture", time.Now().UTC())
	if mutate != nil {
		mutate(sess)
	}
	require.NoError(t, e.sessions.Save(context.Background(), sess))

	token, err := e.tokens.Sign(sess.ID)
	require.NoError(t, err)

	return &http.Cookie{Name: session.CookieName, Value: token}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func sampleProduct(id string, priceCents int64) *domain.Product {
	now := time.Now().UTC()
	return &domain.Product{
		ID:          id,
		Name:        "Radiance Serum",
		Description: "Brightening vitamin C serum",
		PriceCents:  priceCents,
		Category:    "skincare",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
