package cli

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// Orders lists my orders, newest first. Options: page, size and status.
func (a *App) Orders(ctx context.Context, args []string) error {
	opts, rest := parseOptions(args)
	if len(rest) > 0 {
		return usageError("orders [page= size= status=]")
	}

	var (
		f   models.OrderFilters
		err error
	)
	if f.Page, err = intOption(opts, "page"); err != nil {
		return err
	}
	if f.ItemsPerPage, err = intOption(opts, "size"); err != nil {
		return err
	}
	f.Status = models.OrderStatus(strings.ToUpper(opts["status"]))

	page, err := a.svc.Orders.ListMine(ctx, f)
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		a.printf("No orders yet.\n")
		return nil
	}
	for _, o := range page.Items {
		a.printf("%-16s %s  %-16s %s\n", o.OrderCode, o.CreatedAt.Local().Format(time.DateOnly), o.Status.Label(), models.FormatVND(o.Totals.Payable))
	}
	printPagination(a, page.Pagination)
	return nil
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("order <code>")
	}
	o, err := a.svc.Orders.Details(ctx, args[0])
	if err != nil {
		return err
	}
	printOrder(a, o)
	return nil
}

func (a *App) CancelOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("cancel <code>")
	}
	o, err := a.svc.Orders.Cancel(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Order %s is now %s.\n", o.OrderCode, o.Status.Label())
	return nil
}

func printOrder(a *App, o models.Order) {
	a.printf("Order %s, placed %s\n", o.OrderCode, o.CreatedAt.Local().Format(time.DateTime))
	a.printf("Status:   %s\n", o.Status.Label())
	if o.PaymentStatus != "" {
		a.printf("Payment:  %s\n", o.PaymentStatus.Label())
	}
	for _, p := range o.Payments {
		a.printf("          %s %s\n", p.PaymentMethod.Label(), models.FormatVND(p.Value))
	}
	addr := o.ShippingAddress
	a.printf("Ship to:  %s, %s\n          %s, %s, %s\n", addr.Name, addr.Phone, addr.Address, addr.City, addr.Province)

	a.printf("\n")
	for _, it := range o.Items {
		a.printf("  %-32s %3d x %-14s %s\n", it.Name, it.Quantity, models.FormatVND(it.UnitPrice), models.FormatVND(it.LineTotal))
	}
	a.printf("\nSubtotal: %s\n", models.FormatVND(o.Totals.Subtotal))
	a.printf("Shipping: %s\n", models.FormatVND(o.Totals.ShippingFee))
	for _, v := range o.Vouchers {
		a.printf("Voucher:  %s -%s\n", v.Code, models.FormatVND(v.DiscountApplied))
	}
	a.printf("Payable:  %s\n", models.FormatVND(o.Totals.Payable))
	if o.Status.Cancellable() {
		a.printf("\nThis order can still be cancelled with 'cancel %s'.\n", o.OrderCode)
	}
}
