package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"
	"github.com/shopspring/decimal"
)

// AppliedVoucher is the voucher kept for the next checkout, with the cart
// subtotal it was verified against.
type AppliedVoucher struct {
	Code       string                     `json:"code"`
	OrderTotal decimal.Decimal            `json:"orderTotal"`
	Result     models.VerifyVoucherResult `json:"result"`
}

// VoucherService verifies voucher codes against the current cart.
type VoucherService interface {
	Verify(ctx context.Context, code string) (AppliedVoucher, error)
	Applied(ctx context.Context) (*AppliedVoucher, error)
	ListActive(ctx context.Context, limit int) ([]models.Voucher, error)
	Reset(ctx context.Context) error
}

type voucherService struct {
	client client.VoucherAPI
	cart   CartService
	meta   metadata.Repository
}

func NewVoucherService(c client.VoucherAPI, cart CartService, meta metadata.Repository) VoucherService {
	return &voucherService{client: c, cart: cart, meta: meta}
}

func (s *voucherService) Verify(ctx context.Context, code string) (AppliedVoucher, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return AppliedVoucher{}, fmt.Errorf("voucher code is empty")
	}

	subtotal, err := s.cart.Subtotal(ctx)
	if err != nil {
		return AppliedVoucher{}, err
	}
	if subtotal.IsZero() {
		return AppliedVoucher{}, client.ErrEmptyCart
	}

	res, err := s.client.VerifyVoucher(ctx, models.VerifyVoucherPayload{Code: code, OrderTotal: subtotal.Round(0).IntPart()})
	if err != nil {
		return AppliedVoucher{}, fmt.Errorf("verify voucher error: %w", err)
	}

	applied := AppliedVoucher{Code: code, OrderTotal: subtotal, Result: res}
	if err := metadata.SetJSON(ctx, s.meta, metadata.KeyVoucher, applied); err != nil {
		return AppliedVoucher{}, fmt.Errorf("voucher saving error: %w", err)
	}
	return applied, nil
}

func (s *voucherService) Applied(ctx context.Context) (*AppliedVoucher, error) {
	var v AppliedVoucher
	ok, err := metadata.GetJSON(ctx, s.meta, metadata.KeyVoucher, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (s *voucherService) ListActive(ctx context.Context, limit int) ([]models.Voucher, error) {
	return s.client.ActiveVouchers(ctx, limit)
}

func (s *voucherService) Reset(ctx context.Context) error {
	return s.meta.Delete(ctx, metadata.KeyVoucher)
}
