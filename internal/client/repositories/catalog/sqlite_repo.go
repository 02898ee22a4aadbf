package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/dbx"
)

const defaultLimit = 12

var productOrder = map[models.ProductSort]string{
	models.SortPriceAsc:  "price ASC",
	models.SortPriceDesc: "price DESC",
	models.SortNameAsc:   "name ASC",
	models.SortNameDesc:  "name DESC",
	models.SortNewest:    "created_at DESC",
	models.SortOldest:    "created_at ASC",
	models.SortRating:    "rating DESC",
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) SaveProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	at := r.now().Unix()
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, p := range products {
			data, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("failed to encode product %d: %w", p.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO products (id, name, category_id, price, rating, created_at, data, cached_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					category_id = excluded.category_id,
					price = excluded.price,
					rating = excluded.rating,
					created_at = excluded.created_at,
					data = excluded.data,
					cached_at = excluded.cached_at
			`, p.ID, p.Name, p.CategoryID, p.Price.InexactFloat64(), p.Rating.InexactFloat64(), p.CreatedAt.Unix(), data, at)
			if err != nil {
				return fmt.Errorf("failed to cache product %d: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Products(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}
	if f.CategoryID != 0 {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	order, ok := productOrder[f.Sort]
	if !ok {
		order = "id ASC"
	}

	var page models.Page[models.Product]
	err := r.page(ctx, "products", where, args, order, f.Page, f.Limit, &page.Pagination, func(data []byte) error {
		var p models.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to decode cached product: %w", err)
		}
		page.Items = append(page.Items, p)
		return nil
	})
	return page, err
}

func (r *SQLiteRepository) Product(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	ok, err := r.one(ctx, `SELECT data FROM products WHERE id = ?`, id, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) SaveCategories(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	at := r.now().Unix()
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		for _, c := range categories {
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("failed to encode category %d: %w", c.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO categories (id, name, data, cached_at) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					data = excluded.data,
					cached_at = excluded.cached_at
			`, c.ID, c.Name, data, at)
			if err != nil {
				return fmt.Errorf("failed to cache category %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Categories(ctx context.Context, f models.CategoryFilters) (models.Page[models.Category], error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	var page models.Page[models.Category]
	err := r.page(ctx, "categories", where, args, "name ASC", f.Page, f.Limit, &page.Pagination, func(data []byte) error {
		var c models.Category
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("failed to decode cached category: %w", err)
		}
		page.Items = append(page.Items, c)
		return nil
	})
	return page, err
}

func (r *SQLiteRepository) Category(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	ok, err := r.one(ctx, `SELECT data FROM categories WHERE id = ?`, id, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
			return fmt.Errorf("failed to clear categories: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) one(ctx context.Context, query string, id int64, v any) (bool, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %d: %w", id, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %d: %w", id, err)
	}
	return true, nil
}

// page runs a counted, paginated query over a cache table and feeds every
// data blob to scan. Table and order come from constants only.
func (r *SQLiteRepository) page(ctx context.Context, table string, where []string, args []any, order string, page, limit int, p *models.Pagination, scan func([]byte) error) error {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+cond, args...).Scan(&total); err != nil {
		return fmt.Errorf("failed to count cached %s: %w", table, err)
	}

	q := "SELECT data FROM " + table + cond + " ORDER BY " + order + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return fmt.Errorf("failed to select cached %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("failed to scan cached %s: %w", table, err)
		}
		if err := scan(data); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate cached %s: %w", table, err)
	}

	totalPages := (total + limit - 1) / limit
	*p = models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	return nil
}
