// Package catalog caches products and categories fetched from the backend so
// the client can keep browsing while offline.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

type Repository interface {
	SaveProducts(ctx context.Context, products []models.Product) error
	// Products returns a page of cached products matching the filters.
	Products(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], error)
	// Product returns nil, nil when the product is not cached.
	Product(ctx context.Context, id int64) (*models.Product, error)

	SaveCategories(ctx context.Context, categories []models.Category) error
	Categories(ctx context.Context, f models.CategoryFilters) (models.Page[models.Category], error)
	Category(ctx context.Context, id int64) (*models.Category, error)

	Clear(ctx context.Context) error
}
