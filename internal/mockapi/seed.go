package mockapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Demo credentials of the seeded customer.
const (
	DemoEmail    = "demo@gophershop.local"
	DemoPassword = "demo1234"
)

type seedProduct struct {
	name     string
	category int
	price    int64
	discount int64
	stock    int
	rating   string
	sold     int
}

var seedCategories = []string{"Áo", "Quần", "Giày dép", "Phụ kiện"}

var seedProducts = []seedProduct{
	{"Áo thun cotton basic", 0, 199000, 10, 120, "4.5", 340},
	{"Áo sơ mi oxford", 0, 459000, 0, 40, "4.7", 85},
	{"Áo khoác gió", 0, 699000, 25, 15, "4.2", 60},
	{"Quần jean slim fit", 1, 549000, 15, 70, "4.4", 210},
	{"Quần short kaki", 1, 299000, 0, 0, "4.0", 150},
	{"Giày sneaker trắng", 2, 899000, 20, 30, "4.8", 400},
	{"Dép quai ngang", 2, 149000, 0, 200, "3.9", 95},
	{"Mũ lưỡi trai", 3, 129000, 5, 90, "4.1", 75},
	{"Balo du lịch 30L", 3, 799000, 30, 12, "4.6", 48},
	{"Thắt lưng da", 3, 349000, 0, 55, "4.3", 33},
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// seed fills the catalog, the vouchers and one demo customer.
func (s *store) seed(now time.Time, cost int) error {
	for _, name := range seedCategories {
		s.categories = append(s.categories, models.Category{
			ID: s.id(), Name: name, Slug: slugify(name), CreatedAt: now, UpdatedAt: now,
		})
	}

	for i, p := range seedProducts {
		cat := &s.categories[p.category]
		id := s.id()
		s.products = append(s.products, models.Product{
			ID:          id,
			Name:        p.name,
			Slug:        slugify(p.name),
			Image:       fmt.Sprintf("https://cdn.gophershop.local/products/%d.jpg", id),
			Images:      []models.ProductImage{{ID: id, ProductID: id, Image: fmt.Sprintf("https://cdn.gophershop.local/products/%d-1.jpg", id)}},
			Description: p.name + " chính hãng.",
			Price:       decimal.NewFromInt(p.price),
			Stock:       p.stock,
			Rating:      decimal.RequireFromString(p.rating),
			Sold:        p.sold,
			Discount:    decimal.NewFromInt(p.discount),
			CategoryID:  cat.ID,
			Status:      models.ProductActive,
			// Spread creation times so newest/oldest sorting is stable.
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
			UpdatedAt: now,
		})
		if cat.Count == nil {
			cat.Count = &models.CategoryCount{}
		}
		cat.Count.Products++
	}

	dec := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }
	limit := 100
	past := now.Add(-24 * time.Hour)
	s.vouchers = []models.Voucher{
		{ID: s.id(), Code: "SALE10", Type: models.VoucherPercent, Amount: decimal.NewFromInt(10),
			MaxDiscount: dec(50000), MinOrderValue: dec(100000), UsageLimit: &limit, IsActive: true,
			Description: "Giảm 10% tối đa 50.000 ₫ cho đơn từ 100.000 ₫", CreatedAt: now, UpdatedAt: now},
		{ID: s.id(), Code: "GIAM30K", Type: models.VoucherFixed, Amount: decimal.NewFromInt(30000),
			MinOrderValue: dec(300000), IsActive: true,
			Description: "Giảm 30.000 ₫ cho đơn từ 300.000 ₫", CreatedAt: now, UpdatedAt: now},
		{ID: s.id(), Code: "HETHAN", Type: models.VoucherPercent, Amount: decimal.NewFromInt(50),
			EndDate: &past, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return err
	}
	demo := &account{
		User:         models.User{ID: s.id(), Name: "Khách Demo", Email: DemoEmail, Role: "customer", CreatedAt: now, UpdatedAt: now},
		passwordHash: hash,
		verified:     true,
	}
	s.accounts[demo.ID] = demo
	s.byEmail[DemoEmail] = demo.ID
	return nil
}
