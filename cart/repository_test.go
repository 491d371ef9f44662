package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/api"
	"go-storefront/api/apitest"
	"go-storefront/localstore"
	"go-storefront/models"
)

// fakeAuth lets tests flip the session state mid-test, the way logging in
// does for the real repository
type fakeAuth struct {
	authed bool
}

func (a *fakeAuth) IsAuthenticated() bool { return a.authed }

type testToken struct{}

func (testToken) Token() string { return "test-token" }

func newTestRepo(t *testing.T, authed bool) (*Repository, *apitest.Server, *fakeAuth) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL(), 0, testToken{})
	authState := &fakeAuth{authed: authed}
	repo := NewRepository(authState, client, localstore.NewMemoryStore())
	return repo, srv, authState
}

func seedMug(srv *apitest.Server) {
	srv.SeedProduct(models.Product{ID: "p1", Name: "Mug", Price: 10, Stock: 100, ImageURL: "/img/mug.png"})
}

func TestAddItemAnonymousResolvesFromCatalog(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, false)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "Mug", c.Items[0].Name)
	assert.Equal(t, 10.0, c.Items[0].Price)
	assert.Equal(t, "/img/mug.png", c.Items[0].Image)
	assert.Equal(t, 20.0, c.Total)

	assert.Equal(t, 1, srv.RequestCount("GET", "/products/{id}"))
	assert.Zero(t, srv.RequestCount("POST", "/cart/items"), "anonymous adds must not touch the server cart")
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		productID string
		quantity  int
	}{
		{name: "zero quantity", productID: "p1", quantity: 0},
		{name: "negative quantity", productID: "p1", quantity: -2},
		{name: "missing product id", productID: "", quantity: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, srv, _ := newTestRepo(t, false)
			seedMug(srv)

			_, err := repo.AddItem(ctx, tt.productID, tt.quantity)

			assert.True(t, IsValidation(err), "want ValidationError, got %v", err)
			assert.Zero(t, srv.TotalRequests(), "validation failures must not reach the network")
		})
	}
}

func TestAddItemAuthenticatedMergesOnServer(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, c.Total)

	c, err = repo.AddItem(ctx, "p1", 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1, "server merges duplicate products into one line")
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 30.0, c.Total)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, "1", c.Items[0].ID, "line id comes from the server, normalized to a string")
}

func TestAddItemPropagatesServerRejection(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	srv.SeedProduct(models.Product{ID: "p1", Name: "Mug", Price: 10, Stock: 1})

	_, err := repo.AddItem(ctx, "p1", 5)

	require.Error(t, err)
	assert.True(t, api.IsServerRejected(err))
	var rejected *api.ServerRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Message, "Insufficient stock")
}

func TestGetCartAnonymousAbsentIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, false)

	c, err := repo.GetCart(ctx)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Zero(t, srv.TotalRequests())
}

func TestGetCartFallsBackToLocalCache(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	_, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	// Take the network away; the cached cart must still be served
	srv.Close()

	c, err := repo.GetCart(ctx)
	require.NoError(t, err, "a flaky network must never block cart viewing")
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 20.0, c.Total)
}

func TestUpdateQuantityZeroIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	before, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	after, err := repo.UpdateQuantity(ctx, before.Items[0].ID, 0)

	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Zero(t, srv.RequestCount("PUT", "/cart/items/{id}"), "a no-op must not issue an update")
}

func TestUpdateQuantityAuthenticated(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	c, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	c, err = repo.UpdateQuantity(ctx, c.Items[0].ID, 5)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 50.0, c.Total)
	assert.Equal(t, 1, srv.RequestCount("PUT", "/cart/items/{id}"))
}

func TestRemoveItemIdempotent(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		repo, srv, _ := newTestRepo(t, false)
		seedMug(srv)

		before, err := repo.AddItem(ctx, "p1", 2)
		require.NoError(t, err)

		after, err := repo.RemoveItem(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("authenticated", func(t *testing.T) {
		repo, srv, _ := newTestRepo(t, true)
		seedMug(srv)

		before, err := repo.AddItem(ctx, "p1", 2)
		require.NoError(t, err)

		after, err := repo.RemoveItem(ctx, "999")
		require.NoError(t, err)
		assert.Equal(t, before.Items, after.Items)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	repo, srv, _ := newTestRepo(t, true)
	seedMug(srv)

	_, err := repo.AddItem(ctx, "p1", 3)
	require.NoError(t, err)

	c, err := repo.ClearCart(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Total)
	assert.Zero(t, srv.CartSize(), "server cart must be cleared too")

	// Local cache is cleared as well
	local, err := repo.local.Get(ctx)
	require.NoError(t, err)
	assert.True(t, local.IsEmpty())
}

func TestReconcileAdditiveMergesLocalIntoServer(t *testing.T) {
	ctx := context.Background()
	repo, srv, authState := newTestRepo(t, false)
	seedMug(srv)

	// Anonymous shopper fills a local cart while the server cart already
	// holds one of the same product from an earlier session
	_, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)
	srv.SeedCartLine("p1", 1)

	authState.authed = true
	c, err := repo.Reconcile(ctx)

	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 30.0, c.Total)

	local, err := repo.local.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, local, "local store mirrors the merged server cart")
}

func TestReconcileDiscardDropsLocalCart(t *testing.T) {
	ctx := context.Background()
	repo, srv, authState := newTestRepo(t, false)
	seedMug(srv)

	_, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	authState.authed = true
	repo.SetMergePolicy(MergeDiscard)
	c, err := repo.Reconcile(ctx)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "server cart was empty and wins under discard")
	assert.Zero(t, srv.RequestCount("POST", "/cart/items"))

	local, err := repo.local.Get(ctx)
	require.NoError(t, err)
	assert.True(t, local.IsEmpty())
}

func TestReconcileRequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newTestRepo(t, false)

	_, err := repo.Reconcile(ctx)

	assert.ErrorIs(t, err, ErrAuthRequired)
}

// brokenWriteStore starts working and stops accepting writes when failWrites
// is flipped, standing in for a full disk
type brokenWriteStore struct {
	localstore.Store
	failWrites bool
}

func (s *brokenWriteStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failWrites {
		return assert.AnError
	}
	return s.Store.Set(ctx, key, value)
}

func TestClearCartSucceedsWhenOnlyTheCacheFails(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	seedMug(srv)

	store := &brokenWriteStore{Store: localstore.NewMemoryStore()}
	repo := NewRepository(&fakeAuth{authed: true}, api.NewClient(srv.URL(), 0, testToken{}), store)

	_, err := repo.AddItem(ctx, "p1", 2)
	require.NoError(t, err)

	// The server clear goes through; only the local cache write fails
	store.failWrites = true

	c, err := repo.ClearCart(ctx)
	require.NoError(t, err, "a stale cache must not read as a failed clear")
	assert.True(t, c.IsEmpty())
	assert.Zero(t, srv.CartSize())
}

func TestClearCartAnonymousReportsStoreFailure(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	store := &brokenWriteStore{Store: localstore.NewMemoryStore(), failWrites: true}
	repo := NewRepository(&fakeAuth{authed: false}, api.NewClient(srv.URL(), 0, testToken{}), store)

	_, err := repo.ClearCart(ctx)
	assert.Error(t, err, "the local store is the cart for anonymous sessions")
}

func TestRemoteBackendRejectsUnpricedLine(t *testing.T) {
	ctx := context.Background()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	// A line for a product the catalog no longer knows has no price; mapping
	// it to zero would corrupt the total
	srv.SeedCartLine("ghost-product", 2)

	backend := NewRemoteBackend(api.NewClient(srv.URL(), 0, testToken{}))
	_, err := backend.Get(ctx)

	require.Error(t, err)
	assert.True(t, api.IsMalformed(err))
}
