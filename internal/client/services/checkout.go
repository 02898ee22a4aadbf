package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingFee is charged on every order. Delivery is currently free.
var ShippingFee = decimal.Zero

// Summary is the price breakdown shown before an order is placed.
type Summary struct {
	Items       []models.CartItem
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Discount    decimal.Decimal
	Payable     decimal.Decimal
	VoucherCode string
	// VoucherStale is set when the cart changed after the voucher was
	// verified; its discount is then left out until it is verified again.
	VoucherStale bool
}

// Payable computes subtotal + shipping - discount, never below zero.
func Payable(subtotal, shipping, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, subtotal.Add(shipping).Sub(discount))
}

// CheckoutRequest selects how the cart is turned into an order. A zero
// AddressID with no Address uses the default saved address.
type CheckoutRequest struct {
	AddressID     int64
	Address       *models.ShippingAddress
	PaymentMethod models.PaymentMethod
}

type CheckoutService interface {
	Summary(ctx context.Context) (Summary, error)
	PlaceOrder(ctx context.Context, req CheckoutRequest) (models.CreateOrderResponse, error)
}

type checkoutService struct {
	orders    client.OrderAPI
	cart      CartService
	vouchers  VoucherService
	addresses AddressService
	newKey    func() string
}

func NewCheckoutService(orders client.OrderAPI, cart CartService, vouchers VoucherService, addresses AddressService) CheckoutService {
	return &checkoutService{orders: orders, cart: cart, vouchers: vouchers, addresses: addresses, newKey: uuid.NewString}
}

func (s *checkoutService) Summary(ctx context.Context) (Summary, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Items:       items,
		Subtotal:    models.Subtotal(items),
		ShippingFee: ShippingFee,
		Discount:    decimal.Zero,
	}

	applied, err := s.vouchers.Applied(ctx)
	if err != nil {
		return Summary{}, err
	}
	if applied != nil {
		sum.VoucherCode = applied.Code
		if applied.OrderTotal.Equal(sum.Subtotal) {
			sum.Discount = applied.Result.Discount
		} else {
			sum.VoucherStale = true
		}
	}

	sum.Payable = Payable(sum.Subtotal, sum.ShippingFee, sum.Discount)
	return sum, nil
}

func (s *checkoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (models.CreateOrderResponse, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return models.CreateOrderResponse{}, err
	}
	if len(sum.Items) == 0 {
		return models.CreateOrderResponse{}, client.ErrEmptyCart
	}

	addr, err := s.resolveAddress(ctx, req)
	if err != nil {
		return models.CreateOrderResponse{}, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentCOD
	}
	if !method.Valid() {
		return models.CreateOrderResponse{}, fmt.Errorf("unsupported payment method %q", method)
	}

	payload := models.CreateOrderPayload{
		ShippingAddress: addr.OrderAddress(),
		VoucherCode:     sum.VoucherCode,
		ShippingFee:     sum.ShippingFee.IntPart(),
		PaymentMethod:   method,
	}
	for _, it := range sum.Items {
		payload.Items = append(payload.Items, models.CreateOrderItem{ProductID: models.IDFromInt(it.ProductID), Quantity: it.Quantity})
	}

	resp, err := s.orders.CreateOrder(ctx, payload, s.newKey())
	if err != nil {
		return models.CreateOrderResponse{}, fmt.Errorf("place order error: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		return resp, fmt.Errorf("order %s placed, cart clearing error: %w", resp.OrderCode, err)
	}
	if err := s.vouchers.Reset(ctx); err != nil {
		return resp, fmt.Errorf("order %s placed, voucher reset error: %w", resp.OrderCode, err)
	}
	return resp, nil
}

func (s *checkoutService) resolveAddress(ctx context.Context, req CheckoutRequest) (models.ShippingAddress, error) {
	if req.Address != nil {
		if !req.Address.Complete() {
			return models.ShippingAddress{}, client.ErrMissingAddress
		}
		return *req.Address, nil
	}

	var (
		addr *models.ShippingAddress
		err  error
	)
	if req.AddressID != 0 {
		addr, err = s.addresses.Find(ctx, req.AddressID)
	} else {
		addr, err = s.addresses.Default(ctx)
	}
	if err != nil {
		return models.ShippingAddress{}, err
	}
	if addr == nil || !addr.Complete() {
		return models.ShippingAddress{}, client.ErrMissingAddress
	}
	return *addr, nil
}
