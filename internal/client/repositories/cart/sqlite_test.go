package cart

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/migrations"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(context.Background(), db))

	r := NewSQLiteRepository(db)
	var tick int64
	r.now = func() time.Time {
		tick++
		return time.Unix(0, tick)
	}
	return r, db
}

func item(id int64, price, discounted int64, qty int) models.CartItem {
	return models.CartItem{
		ProductID:       id,
		Name:            "p",
		Price:           decimal.NewFromInt(price),
		DiscountedPrice: decimal.NewFromInt(discounted),
		Quantity:        qty,
	}
}

func TestAdd_ExistingProductIncreasesQuantity(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, item(1, 100, 90, 1)))
	require.NoError(t, r.Add(ctx, item(2, 50, 50, 1)))
	require.NoError(t, r.Add(ctx, item(1, 100, 90, 2)))

	items, err := r.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].DiscountedPrice.Equal(decimal.NewFromInt(90)))
	assert.True(t, models.Subtotal(items).Equal(decimal.NewFromInt(320)))
}

func TestSetQuantity(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, item(1, 100, 100, 1)))

	require.NoError(t, r.SetQuantity(ctx, 1, 5))
	items, err := r.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	require.ErrorIs(t, r.SetQuantity(ctx, 99, 2), ErrNotInCart)

	require.NoError(t, r.SetQuantity(ctx, 1, 0))
	items, err = r.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveAndClear(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, item(1, 10, 10, 1)))
	require.NoError(t, r.Add(ctx, item(2, 10, 10, 1)))

	require.NoError(t, r.Remove(ctx, 1))
	items, err := r.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)

	require.NoError(t, r.Clear(ctx))
	items, err = r.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReplace_IsAtomic(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, item(1, 10, 10, 1)))

	require.NoError(t, r.Replace(ctx, []models.CartItem{item(3, 30, 30, 2), item(4, 40, 40, 1)}))
	items, err := r.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ProductID)

	// a failing insert in the middle rolls back the whole replace
	_, err = r.db.ExecContext(ctx, `CREATE TRIGGER reject_five BEFORE INSERT ON cart_items
		WHEN NEW.product_id = 5 BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	err = r.Replace(ctx, []models.CartItem{item(6, 1, 1, 1), item(5, 10, 10, 1)})
	require.Error(t, err)

	items, err = r.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ProductID)
}

func TestWishlist(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	w := models.WishlistItem{ProductID: 7, Name: "hat", Price: decimal.NewFromInt(100), DiscountedPrice: decimal.NewFromInt(80), Status: models.ProductActive}
	require.NoError(t, r.AddToWishlist(ctx, w))
	require.NoError(t, r.AddToWishlist(ctx, w))

	list, err := r.Wishlist(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ProductActive, list[0].Status)
	assert.True(t, list[0].DiscountedPrice.Equal(decimal.NewFromInt(80)))

	require.NoError(t, r.RemoveFromWishlist(ctx, 7))
	list, err = r.Wishlist(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, r.AddToWishlist(ctx, w))
	require.NoError(t, r.ClearWishlist(ctx))
	list, err = r.Wishlist(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestErrorsAreWrapped(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Items(ctx)
	require.ErrorContains(t, err, "failed to select cart items")
	require.ErrorContains(t, r.Add(ctx, item(1, 1, 1, 1)), "failed to add cart item 1")
	require.ErrorContains(t, r.ClearWishlist(ctx), "failed to clear wishlist")
}
