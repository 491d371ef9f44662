package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/localstore"
	"go-storefront/models"
)

func mugItem(quantity int) models.CartItem {
	return models.CartItem{
		ID:        "p1",
		ProductID: "p1",
		Name:      "Mug",
		Price:     10,
		Quantity:  quantity,
	}
}

func TestLocalBackendGetAbsentReturnsEmptyCart(t *testing.T) {
	ctx := context.Background()
	backend := NewLocalBackend(localstore.NewMemoryStore())

	c, err := backend.Get(ctx)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Total)
}

func TestLocalBackendAddAccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	backend := NewLocalBackend(localstore.NewMemoryStore())

	c, err := backend.Add(ctx, mugItem(2))
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 20.0, c.Total)

	c, err = backend.Add(ctx, mugItem(1))
	require.NoError(t, err)
	require.Len(t, c.Items, 1, "same product must merge, not duplicate")
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 30.0, c.Total)

	c, err = backend.Remove(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Total)
}

func TestLocalBackendKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	backend := NewLocalBackend(localstore.NewMemoryStore())

	_, err := backend.Add(ctx, models.CartItem{ID: "b", Price: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = backend.Add(ctx, models.CartItem{ID: "a", Price: 1, Quantity: 1})
	require.NoError(t, err)
	c, err := backend.Add(ctx, models.CartItem{ID: "b", Price: 1, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "b", c.Items[0].ID)
	assert.Equal(t, "a", c.Items[1].ID)
}

func TestLocalBackendRemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	backend := NewLocalBackend(localstore.NewMemoryStore())

	before, err := backend.Add(ctx, mugItem(2))
	require.NoError(t, err)

	after, err := backend.Remove(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLocalBackendUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		quantity     int
		wantQuantity int
		wantTotal    float64
	}{
		{name: "sets quantity", quantity: 5, wantQuantity: 5, wantTotal: 50},
		{name: "zero is a no-op", quantity: 0, wantQuantity: 2, wantTotal: 20},
		{name: "negative is a no-op", quantity: -3, wantQuantity: 2, wantTotal: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewLocalBackend(localstore.NewMemoryStore())
			_, err := backend.Add(ctx, mugItem(2))
			require.NoError(t, err)

			c, err := backend.UpdateQuantity(ctx, "p1", tt.quantity)
			require.NoError(t, err)
			require.Len(t, c.Items, 1)
			assert.Equal(t, tt.wantQuantity, c.Items[0].Quantity)
			assert.Equal(t, tt.wantTotal, c.Total)
		})
	}
}

func TestLocalBackendUpdateAbsentIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	backend := NewLocalBackend(localstore.NewMemoryStore())

	before, err := backend.Add(ctx, mugItem(2))
	require.NoError(t, err)

	after, err := backend.UpdateQuantity(ctx, "ghost", 7)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLocalBackendClear(t *testing.T) {
	ctx := context.Background()
	backend := NewLocalBackend(localstore.NewMemoryStore())

	_, err := backend.Add(ctx, mugItem(4))
	require.NoError(t, err)

	c, err := backend.Clear(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Total)

	// And the cleared state is what a fresh read sees
	c, err = backend.Get(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestLocalBackendPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()

	first := NewLocalBackend(store)
	_, err := first.Add(ctx, mugItem(2))
	require.NoError(t, err)

	second := NewLocalBackend(store)
	c, err := second.Get(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 20.0, c.Total)
}

func TestLocalBackendCorruptRecordIsAnError(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, StorageKey, []byte("{corrupt")))

	backend := NewLocalBackend(store)
	_, err := backend.Get(ctx)
	assert.Error(t, err)
}
