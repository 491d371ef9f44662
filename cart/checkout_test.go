package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/models"
	"go-storefront/payment"
)

func TestPlaceOrderValidation(t *testing.T) {
	ctx := context.Background()
	filled := models.Cart{
		Items: []models.CartItem{{ID: "1", ProductID: "p1", Name: "Mug", Price: 10, Quantity: 2}},
		Total: 20,
	}

	tests := []struct {
		name    string
		authed  bool
		address string
		cart    models.Cart
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unauthenticated",
			authed:  false,
			address: "12 Main St",
			cart:    filled,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAuthRequired)
			},
		},
		{
			name:    "blank address",
			authed:  true,
			address: "   ",
			cart:    filled,
			check: func(t *testing.T, err error) {
				assert.True(t, IsValidation(err), "want ValidationError, got %v", err)
			},
		},
		{
			name:    "empty cart",
			authed:  true,
			address: "12 Main St",
			cart:    models.EmptyCart(),
			check: func(t *testing.T, err error) {
				assert.True(t, IsValidation(err), "want ValidationError, got %v", err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, srv, _ := newTestRepo(t, tt.authed)

			orderID, err := repo.PlaceOrder(ctx, tt.address, tt.cart)

			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, orderID)
			assert.Zero(t, srv.TotalRequests(), "precondition failures must not reach the network")
		})
	}
}

func TestPlaceOrderSubmitsSnapshotsAndClears(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	orderID, err := repo.PlaceOrder(ctx, "12 Main St", c)

	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)

	orders := srv.Orders()
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "p1", orders[0].Items[0].ProductID, "snapshot carries the product id, not the line id")
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
	assert.Equal(t, 10.0, orders[0].Items[0].Price)
	assert.Equal(t, "12 Main St", orders[0].ShippingAddress)

	assert.Zero(t, srv.CartSize(), "server cart cleared after the order")
	local, err := repo.local.Get(ctx)
	require.NoError(t, err)
	assert.True(t, local.IsEmpty(), "local cache cleared after the order")
}

func TestPlaceOrderRetriesClearOnce(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	srv.FailNext("DELETE", "/cart/clear", 1, 500, "transient failure")

	orderID, err := repo.PlaceOrder(ctx, "12 Main St", c)

	require.NoError(t, err, "one clear failure is absorbed by the retry")
	assert.Equal(t, "order-1", orderID)
	assert.Equal(t, 2, srv.RequestCount("DELETE", "/cart/clear"))
	assert.Zero(t, srv.CartSize())
}

func TestPlaceOrderReportsClearFailureWithOrderID(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	srv.FailNext("DELETE", "/cart/clear", 2, 500, "clear keeps failing")

	orderID, err := repo.PlaceOrder(ctx, "12 Main St", c)

	require.Error(t, err)
	var clearErr *ClearFailedError
	require.ErrorAs(t, err, &clearErr)
	assert.Equal(t, "order-1", clearErr.OrderID)
	assert.Equal(t, "order-1", orderID, "the order stands even though the clear failed")
	require.Len(t, srv.Orders(), 1)
}

func TestPlaceOrderFailureLeavesCartAlone(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	srv.FailNext("POST", "/orders/create", 1, 500, "order service down")

	orderID, err := repo.PlaceOrder(ctx, "12 Main St", c)

	require.Error(t, err)
	assert.Empty(t, orderID)
	assert.Equal(t, 1, srv.CartSize(), "a failed order must not clear the cart")
	assert.Zero(t, srv.RequestCount("DELETE", "/cart/clear"))
}

func TestPayRequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, false)

	_, err := repo.Pay(ctx, "pm_1")

	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Zero(t, srv.TotalRequests())
}

func TestPayValidatesPaymentMethod(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)

	_, err := repo.Pay(ctx, "")

	assert.True(t, IsValidation(err), "want ValidationError, got %v", err)
	assert.Zero(t, srv.TotalRequests())
}

func TestPaySettlesDirectSuccess(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)

	intent, err := repo.Pay(ctx, "pm_1")

	require.NoError(t, err)
	assert.True(t, intent.Succeeded())
	assert.Equal(t, 1, srv.RequestCount("POST", "/cart/payment"))
	assert.Zero(t, srv.RequestCount("POST", "/cart/payment/confirm"))
}

func TestPayConfirmsRequiresAction(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	srv.ScriptPaymentStatuses(payment.StatusRequiresAction, payment.StatusSucceeded)

	intent, err := repo.Pay(ctx, "pm_1")

	require.NoError(t, err)
	assert.True(t, intent.Succeeded())
	assert.Equal(t, 1, srv.RequestCount("POST", "/cart/payment/confirm"))
}

func TestPayReturnsTerminalFailureStatus(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	srv.ScriptPaymentStatuses("canceled")

	intent, err := repo.Pay(ctx, "pm_1")

	require.NoError(t, err)
	assert.False(t, intent.Succeeded())
	assert.Equal(t, "canceled", intent.Status)
}
