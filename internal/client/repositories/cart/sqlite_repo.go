package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/dbx"
	"github.com/shopspring/decimal"
)

var ErrNotInCart = errors.New("product is not in the cart")

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Items(ctx context.Context) ([]models.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, image, price, discounted_price, quantity
		FROM cart_items ORDER BY added_at, product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select cart items: %w", err)
	}
	defer rows.Close()

	var result []models.CartItem
	for rows.Next() {
		var (
			item              models.CartItem
			price, discounted string
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Image, &price, &discounted, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("cart item %d price: %w", item.ProductID, err)
		}
		if item.DiscountedPrice, err = decimal.NewFromString(discounted); err != nil {
			return nil, fmt.Errorf("cart item %d discounted price: %w", item.ProductID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Add(ctx context.Context, item models.CartItem) error {
	return addItem(ctx, r.db, item, r.now())
}

func addItem(ctx context.Context, db dbx.DBTX, item models.CartItem, at time.Time) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO cart_items (product_id, name, image, price, discounted_price, quantity, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			name = excluded.name,
			image = excluded.image,
			price = excluded.price,
			discounted_price = excluded.discounted_price,
			quantity = cart_items.quantity + excluded.quantity
	`, item.ProductID, item.Name, item.Image, item.Price.String(), item.DiscountedPrice.String(), item.Quantity, at.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to add cart item %d: %w", item.ProductID, err)
	}
	return nil
}

// SetQuantity overwrites the quantity of a line; zero or less removes it.
func (r *SQLiteRepository) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return r.Remove(ctx, productID)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity = ? WHERE product_id = ?`, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to update cart item %d: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotInCart
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, productID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", productID, err)
	}
	return nil
}

// Replace swaps the whole cart atomically.
func (r *SQLiteRepository) Replace(ctx context.Context, items []models.CartItem) error {
	at := r.now()
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		for i, item := range items {
			if err := addItem(ctx, tx, item, at.Add(time.Duration(i))); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Wishlist(ctx context.Context) ([]models.WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, image, price, discounted_price, status
		FROM wishlist_items ORDER BY added_at, product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select wishlist items: %w", err)
	}
	defer rows.Close()

	var result []models.WishlistItem
	for rows.Next() {
		var (
			item              models.WishlistItem
			price, discounted string
			status            string
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Image, &price, &discounted, &status); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		item.Status = models.ProductStatus(status)
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("wishlist item %d price: %w", item.ProductID, err)
		}
		if item.DiscountedPrice, err = decimal.NewFromString(discounted); err != nil {
			return nil, fmt.Errorf("wishlist item %d discounted price: %w", item.ProductID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlist items: %w", err)
	}
	return result, nil
}

// AddToWishlist keeps a single line per product; adding again refreshes it.
func (r *SQLiteRepository) AddToWishlist(ctx context.Context, item models.WishlistItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (product_id, name, image, price, discounted_price, status, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			name = excluded.name,
			image = excluded.image,
			price = excluded.price,
			discounted_price = excluded.discounted_price,
			status = excluded.status
	`, item.ProductID, item.Name, item.Image, item.Price.String(), item.DiscountedPrice.String(), string(item.Status), r.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to add wishlist item %d: %w", item.ProductID, err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveFromWishlist(ctx context.Context, productID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("failed to remove wishlist item %d: %w", productID, err)
	}
	return nil
}

func (r *SQLiteRepository) ClearWishlist(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items`); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
