package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// CreateOrder places an order. The idempotency key stays the same on the
// retry after a token refresh, so the backend can drop the duplicate.
func (c *HTTPClient) CreateOrder(ctx context.Context, payload models.CreateOrderPayload, idempotencyKey string) (models.CreateOrderResponse, error) {
	r, err := jsonRequest(http.MethodPost, pathOrders, payload)
	if err != nil {
		return models.CreateOrderResponse{}, err
	}
	if idempotencyKey != "" {
		r.header.Set(headerIdempotency, idempotencyKey)
	}
	env, err := call[models.CreateOrderResponse](ctx, c, r)
	if err != nil {
		return models.CreateOrderResponse{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) MyOrders(ctx context.Context, f models.OrderFilters) (models.Page[models.Order], error) {
	r := newRequest(http.MethodGet, pathMyOrders)
	r.query = f.Values()
	return callList[models.Order](ctx, c, r, "orders")
}

func (c *HTTPClient) OrderDetails(ctx context.Context, id string) (models.Order, error) {
	env, err := call[models.Order](ctx, c, newRequest(http.MethodGet, pathOrderDetails+url.PathEscape(id)))
	if err != nil {
		return models.Order{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) CancelOrder(ctx context.Context, id string) (models.Order, error) {
	env, err := call[models.Order](ctx, c, newRequest(http.MethodPost, pathOrderCancel+url.PathEscape(id)))
	if err != nil {
		return models.Order{}, err
	}
	return env.Data, nil
}
