package cart

import (
	"context"
	"strings"

	"go-storefront/api"
	"go-storefront/models"
	"go-storefront/payment"
)

// PlaceOrder submits an order for the given cart and then clears the cart.
// Preconditions are checked before anything touches the network: the session
// must be authenticated, the cart non-empty and the shipping address
// non-blank.
//
// Order submission and cart clearing are two separate calls. When the order
// is placed but the clear fails even after a retry, the order still stands:
// the returned error is a *ClearFailedError carrying the order ID, so
// callers can tell "placed, cart stale" from "nothing happened".
func (r *Repository) PlaceOrder(ctx context.Context, shippingAddress string, c models.Cart) (string, error) {
	if !r.auth.IsAuthenticated() {
		return "", ErrAuthRequired
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return "", &ValidationError{Reason: "shipping address is required"}
	}
	if c.IsEmpty() {
		return "", &ValidationError{Reason: "cart is empty"}
	}

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, models.OrderItem{
			ProductID:   item.ProductRef(),
			Quantity:    item.Quantity,
			Price:       item.Price,
			ProductName: item.Name,
		})
	}

	order, err := r.orders.CreateOrder(ctx, api.CreateOrderRequest{
		Items:           items,
		ShippingAddress: shippingAddress,
	})
	if err != nil {
		return "", err
	}
	r.log.WithField("order_id", order.ID).Info("order placed")

	// The order is already placed; clearing the cart is a compensating step
	// that gets one retry and must never be mistaken for order failure.
	if err := r.clearAfterOrder(ctx); err != nil {
		return order.ID, &ClearFailedError{OrderID: order.ID, Err: err}
	}
	return order.ID, nil
}

func (r *Repository) clearAfterOrder(ctx context.Context) error {
	_, err := r.ClearCart(ctx)
	if err == nil {
		return nil
	}
	r.log.WithError(err).Warn("cart clear after order failed, retrying once")
	_, err = r.ClearCart(ctx)
	return err
}

// Pay settles a payment for the current cart through the gateway's two-phase
// protocol. The returned intent's status is the answer; requires_action that
// never resolves or a transport failure comes back as an error.
func (r *Repository) Pay(ctx context.Context, paymentMethodID string) (payment.Intent, error) {
	if !r.auth.IsAuthenticated() {
		return payment.Intent{}, ErrAuthRequired
	}
	if paymentMethodID == "" {
		return payment.Intent{}, &ValidationError{Reason: "payment method id is required"}
	}
	return payment.Settle(ctx, r.gateway, paymentMethodID)
}
