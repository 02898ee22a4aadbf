// Package cart persists the shopping cart and the wishlist locally. The
// backend has no cart resource; these lines only reach it inside an order.
package cart

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

type Repository interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	// Add inserts the line or, when the product is already in the cart,
	// increases its quantity.
	Add(ctx context.Context, item models.CartItem) error
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	Remove(ctx context.Context, productID int64) error
	Replace(ctx context.Context, items []models.CartItem) error
	Clear(ctx context.Context) error

	Wishlist(ctx context.Context) ([]models.WishlistItem, error)
	AddToWishlist(ctx context.Context, item models.WishlistItem) error
	RemoveFromWishlist(ctx context.Context, productID int64) error
	ClearWishlist(ctx context.Context) error
}
