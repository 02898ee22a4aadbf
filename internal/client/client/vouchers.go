package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func (c *HTTPClient) VerifyVoucher(ctx context.Context, payload models.VerifyVoucherPayload) (models.VerifyVoucherResult, error) {
	r, err := jsonRequest(http.MethodPost, pathVoucherVerify, payload)
	if err != nil {
		return models.VerifyVoucherResult{}, err
	}
	env, err := call[models.VerifyVoucherResult](ctx, c, r)
	if err != nil {
		return models.VerifyVoucherResult{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) ActiveVouchers(ctx context.Context, limit int) ([]models.Voucher, error) {
	r := newRequest(http.MethodGet, pathVouchersActive)
	if limit > 0 {
		r.query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	page, err := callList[models.Voucher](ctx, c, r, "vouchers")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
