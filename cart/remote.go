package cart

import (
	"context"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"go-storefront/api"
	"go-storefront/models"
)

// unknownProductName is displayed when the server item carries no product
// snapshot to resolve a name from
const unknownProductName = "Unknown Product"

// RemoteBackend drives the server-side cart over the REST API. Mutations
// re-fetch the full server cart afterwards so the result reflects any
// server-side changes, prices included.
type RemoteBackend struct {
	client *api.Client
	log    *logrus.Entry
}

// NewRemoteBackend creates a RemoteBackend over the given API client
func NewRemoteBackend(client *api.Client) *RemoteBackend {
	return &RemoteBackend{
		client: client,
		log:    logrus.WithField("component", "cart.remote"),
	}
}

// Get fetches and maps the server cart
func (b *RemoteBackend) Get(ctx context.Context) (models.Cart, error) {
	serverCart, err := b.client.GetCart(ctx)
	if err != nil {
		return models.Cart{}, err
	}
	return b.mapServerCart(serverCart)
}

// Add sends the add to the server, then re-fetches the cart. item.ID is the
// product ID; the server assigns its own line IDs.
func (b *RemoteBackend) Add(ctx context.Context, item models.CartItem) (models.Cart, error) {
	if _, err := b.client.AddCartItem(ctx, item.ID, item.Quantity); err != nil {
		return models.Cart{}, err
	}
	return b.Get(ctx)
}

// UpdateQuantity sets a line's quantity on the server, then re-fetches.
// Quantities below 1 are a no-op, same as the local backend.
func (b *RemoteBackend) UpdateQuantity(ctx context.Context, itemID string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return b.Get(ctx)
	}
	id, err := parseItemID(itemID)
	if err != nil {
		return models.Cart{}, err
	}
	if _, err := b.client.UpdateCartItem(ctx, id, quantity); err != nil {
		return models.Cart{}, err
	}
	return b.Get(ctx)
}

// Remove deletes a line on the server, then re-fetches. The server treats
// deleting an absent line as a success, so removal stays idempotent.
func (b *RemoteBackend) Remove(ctx context.Context, itemID string) (models.Cart, error) {
	id, err := parseItemID(itemID)
	if err != nil {
		return models.Cart{}, err
	}
	if err := b.client.RemoveCartItem(ctx, id); err != nil {
		return models.Cart{}, err
	}
	return b.Get(ctx)
}

// Clear empties the server cart
func (b *RemoteBackend) Clear(ctx context.Context) (models.Cart, error) {
	if err := b.client.ClearCart(ctx); err != nil {
		return models.Cart{}, err
	}
	return models.EmptyCart(), nil
}

// parseItemID normalizes a string item ID back to the numeric ID the server
// uses for cart lines
func parseItemID(itemID string) (int64, error) {
	id, err := strconv.ParseInt(itemID, 10, 64)
	if err != nil {
		return 0, &ValidationError{Reason: "item id " + strconv.Quote(itemID) + " is not a server cart line id"}
	}
	return id, nil
}

// mapServerCart turns the wire cart into the display cart: numeric line IDs
// become strings, names and images are resolved from the embedded product
// snapshot with placeholders when the snapshot is absent, and the total is
// recomputed from the mapped lines. A line whose price cannot be resolved at
// all is a malformed response, not a zero-priced item: defaulting it would
// corrupt the total.
func (b *RemoteBackend) mapServerCart(serverCart *api.ServerCart) (models.Cart, error) {
	cart := models.EmptyCart()
	for _, line := range serverCart.CartItems {
		item := models.CartItem{
			ID:        strconv.FormatInt(line.ID, 10),
			ProductID: line.ProductID,
			Name:      unknownProductName,
			Quantity:  line.Quantity,
		}
		switch {
		case line.Price != nil && *line.Price >= 0:
			item.Price = *line.Price
		case line.ProductDetails != nil && line.ProductDetails.Price >= 0:
			item.Price = line.ProductDetails.Price
		default:
			return models.Cart{}, &api.MalformedResponseError{
				Reason: "cart item " + item.ID + " has no usable price",
			}
		}
		if line.ProductDetails != nil {
			if line.ProductDetails.Name != "" {
				item.Name = line.ProductDetails.Name
			}
			item.Image = line.ProductDetails.ImageURL
		}
		cart.Items = append(cart.Items, item)
	}

	cart.RecalculateTotal()
	if diff := math.Abs(cart.Total - serverCart.TotalAmount); diff > 0.005 {
		// The recomputed figure wins; the mismatch is only worth a warning
		b.log.WithFields(logrus.Fields{
			"server_total":     serverCart.TotalAmount,
			"recomputed_total": cart.Total,
		}).Warn("server cart total disagrees with item lines")
	}
	return cart, nil
}

var (
	_ Backend = (*LocalBackend)(nil)
	_ Backend = (*RemoteBackend)(nil)
)
