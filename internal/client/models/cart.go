package models

import "github.com/shopspring/decimal"

// CartItem is a product line held in the local cart.
type CartItem struct {
	ProductID       int64
	Name            string
	Image           string
	Price           decimal.Decimal
	DiscountedPrice decimal.Decimal
	Quantity        int
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.DiscountedPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartItemFromProduct snapshots a product into a cart line.
func CartItemFromProduct(p Product, quantity int) CartItem {
	return CartItem{
		ProductID:       p.ID,
		Name:            p.Name,
		Image:           p.Image,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice(),
		Quantity:        quantity,
	}
}

// Subtotal sums discounted line totals.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

type WishlistItem struct {
	ProductID       int64
	Name            string
	Image           string
	Price           decimal.Decimal
	DiscountedPrice decimal.Decimal
	Status          ProductStatus
}

func WishlistItemFromProduct(p Product) WishlistItem {
	return WishlistItem{
		ProductID:       p.ID,
		Name:            p.Name,
		Image:           p.Image,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice(),
		Status:          p.Status,
	}
}
