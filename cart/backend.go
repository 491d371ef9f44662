// Package cart is the reconciliation core of the storefront client. It
// presents one Cart abstraction whose backing store depends on
// authentication state: the device-local store for anonymous shoppers, the
// remote cart service once a session exists. Mutations are atomic from the
// caller's point of view and the cart total is always consistent with its
// items when an operation returns.
package cart

import (
	"context"

	"go-storefront/models"
)

// Backend is one backing store for a cart. Every mutation returns the
// resulting cart so callers never observe an intermediate state.
//
// Add merges by item ID: adding an ID that already has a line increments its
// quantity. Remove is idempotent. Clear always yields the empty cart.
type Backend interface {
	Get(ctx context.Context) (models.Cart, error)
	Add(ctx context.Context, item models.CartItem) (models.Cart, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (models.Cart, error)
	Remove(ctx context.Context, itemID string) (models.Cart, error)
	Clear(ctx context.Context) (models.Cart, error)
}
