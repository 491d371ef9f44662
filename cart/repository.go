package cart

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"go-storefront/api"
	"go-storefront/localstore"
	"go-storefront/models"
	"go-storefront/payment"
)

// AuthState tells the repository which backend owns the cart right now
type AuthState interface {
	IsAuthenticated() bool
}

// Catalog resolves products for display enrichment of locally-added items
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// OrderService places orders. *api.Client satisfies it.
type OrderService interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*models.Order, error)
}

// MergePolicy decides what happens to an anonymous local cart when the
// session becomes authenticated
type MergePolicy int

const (
	// MergeAdditive replays the local lines into the server cart, so a
	// product present in both accumulates quantity
	MergeAdditive MergePolicy = iota
	// MergeDiscard adopts the server cart and drops the local one
	MergeDiscard
)

// Repository is the single cart abstraction callers talk to. It selects the
// local or remote backend per call from the injected AuthState, mirrors
// every successful result into the local store as a fallback cache, and
// keeps the total invariant: the returned cart's Total always equals the sum
// of its line totals.
type Repository struct {
	auth    AuthState
	local   *LocalBackend
	remote  *RemoteBackend
	catalog Catalog
	orders  OrderService
	gateway payment.Gateway
	policy  MergePolicy
	log     *logrus.Entry
}

// NewRepository wires a Repository from the API client and the device-local
// store. The default merge policy is MergeAdditive.
func NewRepository(authState AuthState, client *api.Client, store localstore.Store) *Repository {
	return &Repository{
		auth:    authState,
		local:   NewLocalBackend(store),
		remote:  NewRemoteBackend(client),
		catalog: client,
		orders:  client,
		gateway: payment.NewRESTGateway(client),
		policy:  MergeAdditive,
		log:     logrus.WithField("component", "cart"),
	}
}

// SetMergePolicy changes what Reconcile does with the local cart on login
func (r *Repository) SetMergePolicy(policy MergePolicy) {
	r.policy = policy
}

// GetCart returns the current cart. Authenticated reads come from the remote
// service; any remote failure falls back to the locally cached cart so a
// flaky network never blocks cart viewing. This is the only operation with a
// silent-fallback policy.
func (r *Repository) GetCart(ctx context.Context) (models.Cart, error) {
	if !r.auth.IsAuthenticated() {
		return r.local.Get(ctx)
	}

	cart, err := r.remote.Get(ctx)
	if err != nil {
		r.log.WithError(err).Warn("remote cart fetch failed, serving local cache")
		return r.local.Get(ctx)
	}
	r.mirror(ctx, cart)
	return cart, nil
}

// AddItem adds quantity of a product to the cart. For anonymous sessions the
// product's name, price and image are resolved from the catalog first; the
// authenticated path lets the server do the resolving. Adding a product that
// is already in the cart increments its line instead of duplicating it.
func (r *Repository) AddItem(ctx context.Context, productID string, quantity int) (models.Cart, error) {
	if productID == "" {
		return models.Cart{}, &ValidationError{Reason: "product id is required"}
	}
	if quantity < 1 {
		return models.Cart{}, &ValidationError{Reason: "quantity must be at least 1"}
	}

	if r.auth.IsAuthenticated() {
		cart, err := r.remote.Add(ctx, models.CartItem{ID: productID, Quantity: quantity})
		if err != nil {
			return models.Cart{}, err
		}
		r.mirror(ctx, cart)
		return cart, nil
	}

	product, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		return models.Cart{}, errors.WithMessage(err, "resolving product for cart")
	}
	item := models.CartItem{
		ID:        productID,
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Image:     product.ImageURL,
	}
	return r.local.Add(ctx, item)
}

// UpdateQuantity sets an item's quantity. A quantity below 1 is a documented
// no-op returning the current cart; callers wanting the line gone should
// call RemoveItem.
func (r *Repository) UpdateQuantity(ctx context.Context, itemID string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return r.GetCart(ctx)
	}
	if r.auth.IsAuthenticated() {
		cart, err := r.remote.UpdateQuantity(ctx, itemID, quantity)
		if err != nil {
			return models.Cart{}, err
		}
		r.mirror(ctx, cart)
		return cart, nil
	}
	return r.local.UpdateQuantity(ctx, itemID, quantity)
}

// RemoveItem drops a line from the cart. Removing an absent ID is not an
// error and returns the unchanged cart.
func (r *Repository) RemoveItem(ctx context.Context, itemID string) (models.Cart, error) {
	if r.auth.IsAuthenticated() {
		cart, err := r.remote.Remove(ctx, itemID)
		if err != nil {
			return models.Cart{}, err
		}
		r.mirror(ctx, cart)
		return cart, nil
	}
	return r.local.Remove(ctx, itemID)
}

// ClearCart resets the cart to empty, remotely when authenticated and always
// locally. Once the remote clear has gone through, a failure to clear the
// local copy only leaves a stale fallback cache behind, so it is logged and
// the call still succeeds; an error from the authenticated path always means
// the server cart is untouched.
func (r *Repository) ClearCart(ctx context.Context) (models.Cart, error) {
	if r.auth.IsAuthenticated() {
		if _, err := r.remote.Clear(ctx); err != nil {
			return models.Cart{}, err
		}
		if _, err := r.local.Clear(ctx); err != nil {
			r.log.WithError(err).Warn("failed to clear local cart cache")
		}
		return models.EmptyCart(), nil
	}
	return r.local.Clear(ctx)
}

// Reconcile runs once when an anonymous session becomes authenticated and
// resolves the two carts per the configured policy. MergeDiscard adopts the
// server cart; MergeAdditive replays each local line into the server cart
// through the normal add path, then adopts the merged result. Either way the
// local store ends up mirroring the server cart.
func (r *Repository) Reconcile(ctx context.Context) (models.Cart, error) {
	if !r.auth.IsAuthenticated() {
		return models.Cart{}, ErrAuthRequired
	}

	if r.policy == MergeAdditive {
		localCart, err := r.local.Get(ctx)
		if err != nil {
			return models.Cart{}, err
		}
		for _, item := range localCart.Items {
			line := models.CartItem{ID: item.ProductRef(), Quantity: item.Quantity}
			if _, err := r.remote.Add(ctx, line); err != nil {
				return models.Cart{}, errors.WithMessagef(err, "merging local item %s into server cart", item.ProductRef())
			}
		}
	}

	cart, err := r.remote.Get(ctx)
	if err != nil {
		return models.Cart{}, err
	}
	if err := r.local.Replace(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// mirror best-effort copies a server cart into the local fallback cache. A
// failed mirror only degrades the offline view, so it is logged, not
// returned.
func (r *Repository) mirror(ctx context.Context, cart models.Cart) {
	if err := r.local.Replace(ctx, cart); err != nil {
		r.log.WithError(err).Warn("failed to mirror server cart into local cache")
	}
}
