package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func addressPath(id int64) string {
	return pathAddresses + "/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) Addresses(ctx context.Context) ([]models.ShippingAddress, error) {
	page, err := callList[models.ShippingAddress](ctx, c, newRequest(http.MethodGet, pathAddresses), "addresses")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *HTTPClient) CreateAddress(ctx context.Context, payload models.CreateShippingAddressPayload) (models.ShippingAddress, error) {
	r, err := jsonRequest(http.MethodPost, pathAddresses, payload)
	if err != nil {
		return models.ShippingAddress{}, err
	}
	env, err := call[models.ShippingAddress](ctx, c, r)
	if err != nil {
		return models.ShippingAddress{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) UpdateAddress(ctx context.Context, id int64, payload models.UpdateShippingAddressPayload) (models.ShippingAddress, error) {
	r, err := jsonRequest(http.MethodPut, addressPath(id), payload)
	if err != nil {
		return models.ShippingAddress{}, err
	}
	env, err := call[models.ShippingAddress](ctx, c, r)
	if err != nil {
		return models.ShippingAddress{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) DeleteAddress(ctx context.Context, id int64) error {
	_, err := c.do(ctx, newRequest(http.MethodDelete, addressPath(id)))
	return err
}

func (c *HTTPClient) SetDefaultAddress(ctx context.Context, id int64) (models.ShippingAddress, error) {
	env, err := call[models.ShippingAddress](ctx, c, newRequest(http.MethodPatch, addressPath(id)+"/default"))
	if err != nil {
		return models.ShippingAddress{}, err
	}
	return env.Data, nil
}
