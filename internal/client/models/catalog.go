package models

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

type ProductSort string

const (
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNameAsc   ProductSort = "name_asc"
	SortNameDesc  ProductSort = "name_desc"
	SortNewest    ProductSort = "newest"
	SortOldest    ProductSort = "oldest"
	SortRating    ProductSort = "rating"
)

func (s ProductSort) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest, SortOldest, SortRating:
		return true
	}
	return false
}

type ProductImage struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type CategoryCount struct {
	Products int `json:"products"`
}

type Category struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Image       string         `json:"image,omitempty"`
	Description string         `json:"description,omitempty"`
	Count       *CategoryCount `json:"_count,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Image       string          `json:"image"`
	Images      []ProductImage  `json:"images"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Rating      decimal.Decimal `json:"rating"`
	Reviews     int             `json:"reviews,omitempty"`
	Sold        int             `json:"selled"`
	Discount    decimal.Decimal `json:"discount"`
	CategoryID  int64           `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
	Status      ProductStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DiscountedPrice is the unit price after the product's percentage discount.
func (p Product) DiscountedPrice() decimal.Decimal {
	return DiscountedPrice(p.Price, p.Discount)
}

type ProductFilters struct {
	Page       int
	Limit      int
	Search     string
	CategoryID int64
	Sort       ProductSort
}

// Values encodes the filters as query parameters, omitting zero values.
func (f ProductFilters) Values() url.Values {
	v := url.Values{}
	setPaging(v, f.Page, f.Limit, "limit")
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.CategoryID != 0 {
		v.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Sort != "" {
		v.Set("sort", string(f.Sort))
	}
	return v
}

type CategoryFilters struct {
	Page   int
	Limit  int
	Search string
}

func (f CategoryFilters) Values() url.Values {
	v := url.Values{}
	setPaging(v, f.Page, f.Limit, "limit")
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}

func setPaging(v url.Values, page, size int, sizeKey string) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		v.Set(sizeKey, strconv.Itoa(size))
	}
}
