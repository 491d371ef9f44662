package cart

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"go-storefront/localstore"
	"go-storefront/models"
)

// StorageKey is the well-known local-store key the cart record lives under
const StorageKey = "shopping_cart"

// LocalBackend keeps the cart in the device-local store. Every mutation is a
// read-modify-write of the whole record; an absent record reads as the empty
// cart, never as an error.
type LocalBackend struct {
	store localstore.Store
	key   string
}

// NewLocalBackend creates a LocalBackend over the given store
func NewLocalBackend(store localstore.Store) *LocalBackend {
	return &LocalBackend{store: store, key: StorageKey}
}

func (b *LocalBackend) load(ctx context.Context) (models.Cart, error) {
	data, err := b.store.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return models.EmptyCart(), nil
		}
		return models.Cart{}, errors.Wrap(err, "reading local cart")
	}
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return models.Cart{}, errors.Wrap(err, "decoding local cart")
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

func (b *LocalBackend) save(ctx context.Context, cart models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "encoding local cart")
	}
	return errors.Wrap(b.store.Set(ctx, b.key, data), "writing local cart")
}

// Get returns the stored cart, or the empty cart when none has been saved
func (b *LocalBackend) Get(ctx context.Context) (models.Cart, error) {
	cart, err := b.load(ctx)
	if err != nil {
		return models.Cart{}, err
	}
	cart.RecalculateTotal()
	return cart, nil
}

// Add appends the item, or increments quantity when a line with the same ID
// already exists
func (b *LocalBackend) Add(ctx context.Context, item models.CartItem) (models.Cart, error) {
	cart, err := b.load(ctx)
	if err != nil {
		return models.Cart{}, err
	}

	if i := cart.Find(item.ID); i >= 0 {
		cart.Items[i].Quantity += item.Quantity
	} else {
		cart.Items = append(cart.Items, item)
	}

	cart.RecalculateTotal()
	if err := b.save(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1
// is a no-op: removal is an explicit, separate operation. Updating an absent
// ID leaves the cart unchanged.
func (b *LocalBackend) UpdateQuantity(ctx context.Context, itemID string, quantity int) (models.Cart, error) {
	cart, err := b.load(ctx)
	if err != nil {
		return models.Cart{}, err
	}

	i := cart.Find(itemID)
	if quantity < 1 || i < 0 {
		cart.RecalculateTotal()
		return cart, nil
	}

	cart.Items[i].Quantity = quantity
	cart.RecalculateTotal()
	if err := b.save(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// Remove drops the line with the given ID. Removing an absent ID returns the
// cart unchanged.
func (b *LocalBackend) Remove(ctx context.Context, itemID string) (models.Cart, error) {
	cart, err := b.load(ctx)
	if err != nil {
		return models.Cart{}, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(cart.Items) {
		cart.RecalculateTotal()
		return cart, nil
	}
	cart.Items = kept

	cart.RecalculateTotal()
	if err := b.save(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// Clear resets the stored cart to empty
func (b *LocalBackend) Clear(ctx context.Context) (models.Cart, error) {
	empty := models.EmptyCart()
	if err := b.save(ctx, empty); err != nil {
		return models.Cart{}, err
	}
	return empty, nil
}

// Replace overwrites the stored cart wholesale. The repository uses it to
// mirror the server cart into the local fallback cache.
func (b *LocalBackend) Replace(ctx context.Context, cart models.Cart) error {
	cart.RecalculateTotal()
	return b.save(ctx, cart)
}
