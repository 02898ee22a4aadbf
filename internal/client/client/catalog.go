package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func (c *HTTPClient) Products(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], error) {
	r := newRequest(http.MethodGet, pathProducts)
	r.query = f.Values()
	return callList[models.Product](ctx, c, r, "products")
}

func (c *HTTPClient) Product(ctx context.Context, id int64) (models.Product, error) {
	env, err := call[models.Product](ctx, c, newRequest(http.MethodGet, pathProductDetails+strconv.FormatInt(id, 10)))
	if err != nil {
		return models.Product{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) Categories(ctx context.Context, f models.CategoryFilters) (models.Page[models.Category], error) {
	r := newRequest(http.MethodGet, pathCategories)
	r.query = f.Values()
	return callList[models.Category](ctx, c, r, "categories")
}

func (c *HTTPClient) Category(ctx context.Context, id int64) (models.Category, error) {
	env, err := call[models.Category](ctx, c, newRequest(http.MethodGet, pathCategories+"/"+strconv.FormatInt(id, 10)))
	if err != nil {
		return models.Category{}, err
	}
	return env.Data, nil
}
