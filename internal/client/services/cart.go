package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/cart"
	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned for a quantity below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ProductLookup resolves a product by id, from the backend or the cache.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (models.Product, bool, error)
}

// CartService manages the local cart. Prices are snapshotted when a product
// is added; the backend reprices the order when it is placed.
type CartService interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Add(ctx context.Context, productID int64, quantity int) (models.CartItem, error)
	AddProduct(ctx context.Context, p models.Product, quantity int) (models.CartItem, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
	Subtotal(ctx context.Context) (decimal.Decimal, error)
}

type cartService struct {
	repo     cart.Repository
	products ProductLookup
}

func NewCartService(repo cart.Repository, products ProductLookup) CartService {
	return &cartService{repo: repo, products: products}
}

func (s *cartService) Items(ctx context.Context) ([]models.CartItem, error) {
	return s.repo.Items(ctx)
}

func (s *cartService) Add(ctx context.Context, productID int64, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, ErrInvalidQuantity
	}
	p, _, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return models.CartItem{}, fmt.Errorf("product %d error: %w", productID, err)
	}
	return s.AddProduct(ctx, p, quantity)
}

func (s *cartService) AddProduct(ctx context.Context, p models.Product, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, ErrInvalidQuantity
	}
	item := models.CartItemFromProduct(p, quantity)
	if err := s.repo.Add(ctx, item); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

func (s *cartService) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.repo.SetQuantity(ctx, productID, quantity)
}

func (s *cartService) Remove(ctx context.Context, productID int64) error {
	return s.repo.Remove(ctx, productID)
}

func (s *cartService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *cartService) Subtotal(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return models.Subtotal(items), nil
}

// WishlistService manages the local wishlist.
type WishlistService interface {
	Items(ctx context.Context) ([]models.WishlistItem, error)
	Add(ctx context.Context, productID int64) (models.WishlistItem, error)
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
	MoveToCart(ctx context.Context, productID int64) (models.CartItem, error)
}

type wishlistService struct {
	repo     cart.Repository
	products ProductLookup
	cart     CartService
}

func NewWishlistService(repo cart.Repository, products ProductLookup, cart CartService) WishlistService {
	return &wishlistService{repo: repo, products: products, cart: cart}
}

func (s *wishlistService) Items(ctx context.Context) ([]models.WishlistItem, error) {
	return s.repo.Wishlist(ctx)
}

func (s *wishlistService) Add(ctx context.Context, productID int64) (models.WishlistItem, error) {
	p, _, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return models.WishlistItem{}, fmt.Errorf("product %d error: %w", productID, err)
	}
	item := models.WishlistItemFromProduct(p)
	if err := s.repo.AddToWishlist(ctx, item); err != nil {
		return models.WishlistItem{}, err
	}
	return item, nil
}

func (s *wishlistService) Remove(ctx context.Context, productID int64) error {
	return s.repo.RemoveFromWishlist(ctx, productID)
}

func (s *wishlistService) Clear(ctx context.Context) error {
	return s.repo.ClearWishlist(ctx)
}

// MoveToCart adds one unit of a wishlisted product to the cart and drops it
// from the wishlist.
func (s *wishlistService) MoveToCart(ctx context.Context, productID int64) (models.CartItem, error) {
	item, err := s.cart.Add(ctx, productID, 1)
	if err != nil {
		return models.CartItem{}, err
	}
	if err := s.repo.RemoveFromWishlist(ctx, productID); err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}
