package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/gophershop/internal/logging"
)

// CatalogService browses products and categories. Every successful answer
// is cached; while the backend is unreachable the cache answers instead and
// the result is flagged offline.
type CatalogService interface {
	ListProducts(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], bool, error)
	GetProduct(ctx context.Context, id int64) (models.Product, bool, error)
	ListCategories(ctx context.Context, f models.CategoryFilters) (models.Page[models.Category], bool, error)
	GetCategory(ctx context.Context, id int64) (models.Category, bool, error)
}

type catalogService struct {
	client client.CatalogAPI
	cache  catalog.Repository
	log    logging.Logger
}

func NewCatalogService(c client.CatalogAPI, cache catalog.Repository, log logging.Logger) CatalogService {
	return &catalogService{client: c, cache: cache, log: log}
}

func (s *catalogService) ListProducts(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], bool, error) {
	page, err := s.client.Products(ctx, f)
	if err == nil {
		if cerr := s.cache.SaveProducts(ctx, page.Items); cerr != nil {
			s.log.Warn(ctx, "product cache write failed", "error", cerr)
		}
		return page, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return models.Page[models.Product]{}, false, err
	}

	cached, cerr := s.cache.Products(ctx, f)
	if cerr != nil {
		return models.Page[models.Product]{}, false, fmt.Errorf("product cache read error: %w", cerr)
	}
	if len(cached.Items) == 0 {
		return models.Page[models.Product]{}, true, client.ErrLocalDataNotAvailable
	}
	return cached, true, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (models.Product, bool, error) {
	p, err := s.client.Product(ctx, id)
	if err == nil {
		if cerr := s.cache.SaveProducts(ctx, []models.Product{p}); cerr != nil {
			s.log.Warn(ctx, "product cache write failed", "error", cerr)
		}
		return p, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return models.Product{}, false, err
	}

	cached, cerr := s.cache.Product(ctx, id)
	if cerr != nil {
		return models.Product{}, false, fmt.Errorf("product cache read error: %w", cerr)
	}
	if cached == nil {
		return models.Product{}, true, client.ErrLocalDataNotAvailable
	}
	return *cached, true, nil
}

func (s *catalogService) ListCategories(ctx context.Context, f models.CategoryFilters) (models.Page[models.Category], bool, error) {
	page, err := s.client.Categories(ctx, f)
	if err == nil {
		if cerr := s.cache.SaveCategories(ctx, page.Items); cerr != nil {
			s.log.Warn(ctx, "category cache write failed", "error", cerr)
		}
		return page, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return models.Page[models.Category]{}, false, err
	}

	cached, cerr := s.cache.Categories(ctx, f)
	if cerr != nil {
		return models.Page[models.Category]{}, false, fmt.Errorf("category cache read error: %w", cerr)
	}
	if len(cached.Items) == 0 {
		return models.Page[models.Category]{}, true, client.ErrLocalDataNotAvailable
	}
	return cached, true, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (models.Category, bool, error) {
	c, err := s.client.Category(ctx, id)
	if err == nil {
		if cerr := s.cache.SaveCategories(ctx, []models.Category{c}); cerr != nil {
			s.log.Warn(ctx, "category cache write failed", "error", cerr)
		}
		return c, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return models.Category{}, false, err
	}

	cached, cerr := s.cache.Category(ctx, id)
	if cerr != nil {
		return models.Category{}, false, fmt.Errorf("category cache read error: %w", cerr)
	}
	if cached == nil {
		return models.Category{}, true, client.ErrLocalDataNotAvailable
	}
	return *cached, true, nil
}
