package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func (a *App) Cart(ctx context.Context, _ []string) error {
	items, err := a.svc.Cart.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("Your cart is empty.\n")
		return nil
	}
	printCartItems(a, items)
	a.printf("Subtotal: %s\n", models.FormatVND(models.Subtotal(items)))
	return nil
}

func (a *App) AddToCart(ctx context.Context, args []string) error {
	const usage = "add <productId> [qty]"
	if len(args) < 1 || len(args) > 2 {
		return usageError(usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty := 1
	if len(args) == 2 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return usageError(usage)
		}
	}

	item, err := a.svc.Cart.Add(ctx, id, qty)
	if err != nil {
		return err
	}
	a.printf("%s is in your cart (x%d).\n", item.Name, item.Quantity)
	return nil
}

func (a *App) SetQuantity(ctx context.Context, args []string) error {
	const usage = "qty <productId> <qty>"
	if len(args) != 2 {
		return usageError(usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError(usage)
	}
	if err := a.svc.Cart.SetQuantity(ctx, id, qty); err != nil {
		return err
	}
	return a.Cart(ctx, nil)
}

func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	id, err := oneID(args, "remove <productId>")
	if err != nil {
		return err
	}
	if err := a.svc.Cart.Remove(ctx, id); err != nil {
		return err
	}
	return a.Cart(ctx, nil)
}

func (a *App) ClearCart(ctx context.Context, _ []string) error {
	if err := a.svc.Cart.Clear(ctx); err != nil {
		return err
	}
	a.printf("Cart cleared.\n")
	return nil
}

func (a *App) Wishlist(ctx context.Context, _ []string) error {
	items, err := a.svc.Wishlist.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("Your wishlist is empty.\n")
		return nil
	}
	for _, it := range items {
		a.printf("%4d  %-32s %s\n", it.ProductID, it.Name, models.FormatVND(it.DiscountedPrice))
	}
	return nil
}

func (a *App) Wish(ctx context.Context, args []string) error {
	id, err := oneID(args, "wish <productId>")
	if err != nil {
		return err
	}
	item, err := a.svc.Wishlist.Add(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s added to your wishlist.\n", item.Name)
	return nil
}

func (a *App) Unwish(ctx context.Context, args []string) error {
	id, err := oneID(args, "unwish <productId>")
	if err != nil {
		return err
	}
	return a.svc.Wishlist.Remove(ctx, id)
}

func (a *App) MoveToCart(ctx context.Context, args []string) error {
	id, err := oneID(args, "movetocart <productId>")
	if err != nil {
		return err
	}
	item, err := a.svc.Wishlist.MoveToCart(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s moved to your cart (x%d).\n", item.Name, item.Quantity)
	return nil
}

func (a *App) ClearWishlist(ctx context.Context, _ []string) error {
	if err := a.svc.Wishlist.Clear(ctx); err != nil {
		return err
	}
	a.printf("Wishlist cleared.\n")
	return nil
}

func printCartItems(a *App, items []models.CartItem) {
	for _, it := range items {
		a.printf("%4d  %-32s %3d x %-14s %s\n", it.ProductID, it.Name, it.Quantity,
			models.FormatVND(it.DiscountedPrice), models.FormatVND(it.LineTotal()))
	}
}
