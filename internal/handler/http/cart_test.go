package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/session"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

func TestCartRequiresLoginEndpoints(t *testing.T) {
	env := setupEnv(t)

	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/v1/cart", nil},
		{http.MethodPost, "/api/v1/cart/items", AddItemRequest{ProductID: "prod-1", Quantity: 1}},
		{http.MethodPut, "/api/v1/cart/items/prod-1", UpdateQuantityRequest{Quantity: 2}},
		{http.MethodDelete, "/api/v1/cart/items/prod-1", nil},
	} {
		rec := env.do(t, tc.method, tc.path, tc.body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, rec))
	}

	env.productRepo.AssertNotCalled(t, "GetByID")
}

func TestCartCountOpenToGuests(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cart/count", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var count map[string]int
	decodeData(t, rec, &count)
	assert.Equal(t, 0, count["count"])

	// A fresh visitor still gets a session cookie.
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestGetCartEmpty(t *testing.T) {
	env := setupEnv(t)

	cookie := authenticatedCookie(t, env, false)

	rec := env.do(t, http.MethodGet, "/api/v1/cart", nil, []*http.Cookie{cookie})

	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
	assert.Equal(t, int64(0), cart.TotalCents)
}

func TestAddItemFlow(t *testing.T) {
	env := setupEnv(t)

	env.productRepo.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct("prod-1", 10305), nil)

	cookie := authenticatedCookie(t, env, false)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 1}, []*http.Cookie{cookie})

	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-1", cart.Items[0].ProductID)
	assert.Equal(t, int64(10305), cart.Items[0].PriceCents)
	assert.Equal(t, 1, cart.ItemCount)
	assert.Equal(t, int64(10305), cart.TotalCents)

	// Count endpoint sees the same session state.
	rec = env.do(t, http.MethodGet, "/api/v1/cart/count", nil, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	var count map[string]int
	decodeData(t, rec, &count)
	assert.Equal(t, 1, count["count"])
}

func TestAddItemScenarioTotals(t *testing.T) {
	env := setupEnv(t)

	serum := sampleProduct("prod-1", 10305)
	lipstick := sampleProduct("prod-2", 5000)
	lipstick.Name = "Velvet Lipstick"

	env.productRepo.On("GetByID", mock.Anything, "prod-1").Return(serum, nil)
	env.productRepo.On("GetByID", mock.Anything, "prod-2").Return(lipstick, nil)

	cookie := authenticatedCookie(t, env, false)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 1}, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-2", Quantity: 2}, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, int64(20305), cart.TotalCents)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "prod-1", cart.Items[0].ProductID)
	assert.Equal(t, "prod-2", cart.Items[1].ProductID)
	assert.Equal(t, int64(10000), cart.Items[1].SubtotalCents)
}

func TestAddItemZeroQuantity(t *testing.T) {
	env := setupEnv(t)

	cookie := authenticatedCookie(t, env, false)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 0}, []*http.Cookie{cookie})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env.productRepo.AssertNotCalled(t, "GetByID")
}

func TestAddItemUnknownProduct(t *testing.T) {
	env := setupEnv(t)

	env.productRepo.On("GetByID", mock.Anything, "ghost").
		Return(nil, apperrors.NotFound("product", "ghost"))

	cookie := authenticatedCookie(t, env, false)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "ghost", Quantity: 1}, []*http.Cookie{cookie})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	env := setupEnv(t)

	cookie := env.sessionCookie(t, func(s *session.Session) {
		s.UserID = "user-1"
		s.UserName = "Ada"
		s.Role = domain.RoleCustomer
		s.Cart["prod-1"] = domain.CartLine{ProductID: "prod-1", Name: "Radiance Serum", PriceCents: 10305, Quantity: 1}
	})

	rec := env.do(t, http.MethodPut, "/api/v1/cart/items/prod-1",
		UpdateQuantityRequest{Quantity: 4}, []*http.Cookie{cookie})

	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	assert.Equal(t, 4, cart.ItemCount)
	assert.Equal(t, int64(4*10305), cart.TotalCents)
}

func TestUpdateQuantityZeroRemovesLineEndpoint(t *testing.T) {
	env := setupEnv(t)

	cookie := env.sessionCookie(t, func(s *session.Session) {
		s.UserID = "user-1"
		s.UserName = "Ada"
		s.Role = domain.RoleCustomer
		s.Cart["prod-1"] = domain.CartLine{ProductID: "prod-1", Name: "Radiance Serum", PriceCents: 10305, Quantity: 2}
	})

	rec := env.do(t, http.MethodPut, "/api/v1/cart/items/prod-1",
		UpdateQuantityRequest{Quantity: 0}, []*http.Cookie{cookie})

	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)

	// The line is gone on the next read too.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

func TestRemoveItemEndpoint(t *testing.T) {
	env := setupEnv(t)

	cookie := env.sessionCookie(t, func(s *session.Session) {
		s.UserID = "user-1"
		s.UserName = "Ada"
		s.Role = domain.RoleCustomer
		s.Cart["prod-1"] = domain.CartLine{ProductID: "prod-1", Name: "Radiance Serum", PriceCents: 10305, Quantity: 2}
	})

	rec := env.do(t, http.MethodDelete, "/api/v1/cart/items/prod-1", nil, []*http.Cookie{cookie})

	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestCartSurvivesAcrossRequests(t *testing.T) {
	env := setupEnv(t)

	env.productRepo.On("GetByID", mock.Anything, "prod-1").Return(sampleProduct("prod-1", 10305), nil)

	cookie := authenticatedCookie(t, env, false)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items",
		AddItemRequest{ProductID: "prod-1", Quantity: 2}, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart CartResponse
	decodeData(t, rec, &cart)
	assert.Equal(t, 2, cart.ItemCount)
}
