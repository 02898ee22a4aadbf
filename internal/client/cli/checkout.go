package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/services"
)

const defaultVoucherLimit = 10

func (a *App) Vouchers(ctx context.Context, args []string) error {
	limit := defaultVoucherLimit
	if len(args) > 1 {
		return usageError("vouchers [limit]")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return usageError("vouchers [limit]")
		}
		limit = n
	}

	list, err := a.svc.Vouchers.ListActive(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No active vouchers.\n")
		return nil
	}
	for _, v := range list {
		a.printf("%-10s %s\n", v.Code, voucherTerms(v))
	}
	return nil
}

func voucherTerms(v models.Voucher) string {
	var b strings.Builder
	if v.Type == models.VoucherPercent {
		b.WriteString(v.Amount.String() + "% off")
		if v.MaxDiscount != nil {
			b.WriteString(", up to " + models.FormatVND(*v.MaxDiscount))
		}
	} else {
		b.WriteString(models.FormatVND(v.Amount) + " off")
	}
	if v.MinOrderValue != nil && v.MinOrderValue.IsPositive() {
		b.WriteString(", orders from " + models.FormatVND(*v.MinOrderValue))
	}
	if v.Description != "" {
		b.WriteString(" - " + v.Description)
	}
	return b.String()
}

func (a *App) ApplyVoucher(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("voucher <code>")
	}
	applied, err := a.svc.Vouchers.Verify(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Voucher %s applied: -%s\n", applied.Code, models.FormatVND(applied.Result.Discount))
	return nil
}

func (a *App) Summary(ctx context.Context, _ []string) error {
	sum, err := a.svc.Checkout.Summary(ctx)
	if err != nil {
		return err
	}
	if len(sum.Items) == 0 {
		a.printf("Your cart is empty.\n")
		return nil
	}
	printSummary(a, sum)
	return nil
}

func printSummary(a *App, sum services.Summary) {
	printCartItems(a, sum.Items)
	a.printf("Subtotal:  %s\n", models.FormatVND(sum.Subtotal))
	a.printf("Shipping:  %s\n", models.FormatVND(sum.ShippingFee))
	switch {
	case sum.VoucherStale:
		a.printf("Voucher:   %s no longer matches the cart, apply it again\n", sum.VoucherCode)
	case sum.VoucherCode != "":
		a.printf("Voucher:   %s -%s\n", sum.VoucherCode, models.FormatVND(sum.Discount))
	}
	a.printf("Payable:   %s\n", models.FormatVND(sum.Payable))
}

// Checkout places an order for the whole cart. Without address= the
// default saved address is used; pay= defaults to cash on delivery.
func (a *App) Checkout(ctx context.Context, args []string) error {
	const usage = "checkout [address=<id>] [pay=<method>]"
	opts, rest := parseOptions(args)
	if len(rest) > 0 {
		return usageError(usage)
	}

	var req services.CheckoutRequest
	if v := opts["address"]; v != "" {
		id, err := parseID(v)
		if err != nil {
			return err
		}
		req.AddressID = id
	}
	req.PaymentMethod = models.PaymentMethod(strings.ToUpper(opts["pay"]))

	resp, err := a.svc.Checkout.PlaceOrder(ctx, req)
	if err != nil {
		return err
	}
	a.printf("Order %s placed: %s, %s\n", resp.OrderCode, resp.Status.Label(), models.FormatVND(resp.Totals.Payable))
	return nil
}
