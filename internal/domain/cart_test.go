package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleCart() Cart {
	return Cart{
		"prod-1": {ProductID: "prod-1", Name: "Radiance Serum", PriceCents: 10305, Quantity: 1},
		"prod-2": {ProductID: "prod-2", Name: "Velvet Lipstick", PriceCents: 5000, Quantity: 2},
	}
}

func TestCartItemCount(t *testing.T) {
	cart := sampleCart()
	assert.Equal(t, 3, cart.ItemCount())

	assert.Equal(t, 0, Cart{}.ItemCount())
}

func TestCartTotalCents(t *testing.T) {
	cart := sampleCart()
	assert.Equal(t, int64(20305), cart.TotalCents())

	assert.Equal(t, int64(0), Cart{}.TotalCents())
}

func TestCartIsEmpty(t *testing.T) {
	assert.True(t, Cart{}.IsEmpty())
	assert.False(t, sampleCart().IsEmpty())
}

func TestNewOrderFromCart(t *testing.T) {
	cart := sampleCart()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	order := NewOrderFromCart("order-1", "user-1", "Ada", cart, now)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "Ada", order.UserName)
	assert.Equal(t, OrderStatusCompleted, order.Status)
	assert.Equal(t, int64(20305), order.TotalCents)
	assert.Equal(t, now, order.CreatedAt)

	// Items sorted by product ID, each with its persisted subtotal.
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "prod-1", order.Items[0].ProductID)
	assert.Equal(t, int64(10305), order.Items[0].SubtotalCents)
	assert.Equal(t, "prod-2", order.Items[1].ProductID)
	assert.Equal(t, 2, order.Items[1].Quantity)
	assert.Equal(t, int64(10000), order.Items[1].SubtotalCents)
}

func TestUserIsAdmin(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	customer := &User{Role: RoleCustomer}

	assert.True(t, admin.IsAdmin())
	assert.False(t, customer.IsAdmin())
}
