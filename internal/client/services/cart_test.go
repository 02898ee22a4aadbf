package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/cart"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shop wires every local service over one in-memory database.
type shop struct {
	api       *fakeAPI
	meta      metadata.Repository
	cart      CartService
	wishlist  WishlistService
	vouchers  VoucherService
	addresses AddressService
	checkout  *checkoutService
}

func newShop(t *testing.T) *shop {
	t.Helper()
	db := setupDB(t)
	api := &fakeAPI{ProductRet: map[int64]models.Product{
		1: {ID: 1, Name: "Áo thun", Price: decimal.NewFromInt(200000), Discount: decimal.NewFromInt(10), Status: models.ProductActive},
		2: {ID: 2, Name: "Mũ", Price: decimal.NewFromInt(50000)},
	}}
	meta := metadata.NewSQLiteRepository(db)
	products := NewCatalogService(api, catalog.NewSQLiteRepository(db), logging.Nop())
	carts := NewCartService(cart.NewSQLiteRepository(db), products)
	vouchers := NewVoucherService(api, carts, meta)
	addresses := NewAddressService(api)
	co := NewCheckoutService(api, carts, vouchers, addresses).(*checkoutService)
	co.newKey = func() string { return "key-1" }

	return &shop{
		api:       api,
		meta:      meta,
		cart:      carts,
		wishlist:  NewWishlistService(cart.NewSQLiteRepository(db), products, carts),
		vouchers:  vouchers,
		addresses: addresses,
		checkout:  co,
	}
}

func TestCart_AddUsesDiscountedPrice(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	item, err := s.cart.Add(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(180000).Equal(item.DiscountedPrice), item.DiscountedPrice.String())

	_, err = s.cart.Add(ctx, 1, 1)
	require.NoError(t, err)
	_, err = s.cart.Add(ctx, 2, 1)
	require.NoError(t, err)

	items, err := s.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	sub, err := s.cart.Subtotal(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3*180000+50000).Equal(sub), sub.String())
}

func TestCart_Validation(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	_, err := s.cart.Add(ctx, 1, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	require.ErrorIs(t, s.cart.SetQuantity(ctx, 1, 0), ErrInvalidQuantity)

	_, err = s.cart.Add(ctx, 42, 1)
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestCart_SetQuantityRemoveClear(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	_, err := s.cart.Add(ctx, 1, 1)
	require.NoError(t, err)
	_, err = s.cart.Add(ctx, 2, 1)
	require.NoError(t, err)

	require.NoError(t, s.cart.SetQuantity(ctx, 2, 4))
	require.NoError(t, s.cart.Remove(ctx, 1))

	items, err := s.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	require.NoError(t, s.cart.Clear(ctx))
	sub, err := s.cart.Subtotal(ctx)
	require.NoError(t, err)
	assert.True(t, sub.IsZero())
}

func TestWishlist_MoveToCart(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	w, err := s.wishlist.Add(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ProductActive, w.Status)

	item, err := s.wishlist.MoveToCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	wl, err := s.wishlist.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, wl)

	items, err := s.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
}

func TestWishlist_RemoveClear(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	_, err := s.wishlist.Add(ctx, 1)
	require.NoError(t, err)
	_, err = s.wishlist.Add(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, s.wishlist.Remove(ctx, 1))

	wl, err := s.wishlist.Items(ctx)
	require.NoError(t, err)
	require.Len(t, wl, 1)

	require.NoError(t, s.wishlist.Clear(ctx))
	wl, err = s.wishlist.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, wl)
}
