package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// Products lists a page of products. Options: page, limit, q (search),
// cat (category id) and sort.
func (a *App) Products(ctx context.Context, args []string) error {
	opts, rest := parseOptions(args)
	if len(rest) > 0 {
		return usageError("products [page= limit= q= cat= sort=]")
	}

	var (
		f   models.ProductFilters
		err error
	)
	if f.Page, err = intOption(opts, "page"); err != nil {
		return err
	}
	if f.Limit, err = intOption(opts, "limit"); err != nil {
		return err
	}
	f.Search = opts["q"]
	if cat := opts["cat"]; cat != "" {
		if f.CategoryID, err = parseID(cat); err != nil {
			return err
		}
	}
	f.Sort = models.ProductSort(opts["sort"])

	page, offline, err := a.svc.Catalog.ListProducts(ctx, f)
	if err != nil {
		return err
	}
	if offline {
		a.printf("(offline, showing cached products)\n")
	}
	if len(page.Items) == 0 {
		a.printf("No products found.\n")
		return nil
	}
	for _, p := range page.Items {
		printProductLine(a, p)
	}
	printPagination(a, page.Pagination)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	id, err := oneID(args, "product <id>")
	if err != nil {
		return err
	}
	p, offline, err := a.svc.Catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if offline {
		a.printf("(offline, showing cached product)\n")
	}
	printProduct(a, p)
	return nil
}

func (a *App) Categories(ctx context.Context, args []string) error {
	opts, rest := parseOptions(args)
	if len(rest) > 0 {
		return usageError("categories [page= limit= q=]")
	}

	var (
		f   models.CategoryFilters
		err error
	)
	if f.Page, err = intOption(opts, "page"); err != nil {
		return err
	}
	if f.Limit, err = intOption(opts, "limit"); err != nil {
		return err
	}
	f.Search = opts["q"]

	page, offline, err := a.svc.Catalog.ListCategories(ctx, f)
	if err != nil {
		return err
	}
	if offline {
		a.printf("(offline, showing cached categories)\n")
	}
	for _, c := range page.Items {
		a.printf("%4d  %s%s\n", c.ID, c.Name, productCount(c))
	}
	printPagination(a, page.Pagination)
	return nil
}

func (a *App) Category(ctx context.Context, args []string) error {
	id, err := oneID(args, "category <id>")
	if err != nil {
		return err
	}
	c, _, err := a.svc.Catalog.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s%s\n", c.Name, productCount(c))
	if c.Description != "" {
		a.printf("%s\n", c.Description)
	}
	a.printf("Browse it with 'products cat=%d'\n", c.ID)
	return nil
}

func productCount(c models.Category) string {
	if c.Count == nil {
		return ""
	}
	return " (" + strconv.Itoa(c.Count.Products) + " products)"
}

func printProductLine(a *App, p models.Product) {
	price := models.FormatVND(p.DiscountedPrice())
	if p.Discount.IsPositive() {
		price += " (-" + p.Discount.String() + "%)"
	}
	var notes []string
	if p.Stock <= 0 {
		notes = append(notes, "out of stock")
	}
	if p.Status == models.ProductInactive {
		notes = append(notes, "unavailable")
	}
	line := price
	if len(notes) > 0 {
		line += "  [" + strings.Join(notes, ", ") + "]"
	}
	a.printf("%4d  %-32s %s\n", p.ID, p.Name, line)
}

func printProduct(a *App, p models.Product) {
	a.printf("%s (#%d)\n", p.Name, p.ID)
	if p.Discount.IsPositive() {
		a.printf("Price:    %s, was %s (-%s%%)\n", models.FormatVND(p.DiscountedPrice()), models.FormatVND(p.Price), p.Discount.String())
	} else {
		a.printf("Price:    %s\n", models.FormatVND(p.Price))
	}
	if p.Category != nil {
		a.printf("Category: %s\n", p.Category.Name)
	}
	a.printf("Stock:    %d, sold %d\n", p.Stock, p.Sold)
	a.printf("Rating:   %s (%d reviews)\n", p.Rating.StringFixed(1), p.Reviews)
	if p.Description != "" {
		a.printf("\n%s\n", p.Description)
	}
}

func printPagination(a *App, p models.Pagination) {
	if p.TotalPages <= 1 && !p.HasNextPage() {
		return
	}
	a.printf("Page %d of %d, %d total", p.Page, p.TotalPages, p.Total)
	if p.HasNextPage() {
		a.printf(", next: page=%d", p.Page+1)
	}
	a.printf("\n")
}
