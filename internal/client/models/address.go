package models

import "time"

// MaxShippingAddresses is the number of saved addresses a customer may keep.
const MaxShippingAddresses = 10

type ShippingAddress struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	PostalCode *string   `json:"postalCode"`
	IsDefault  bool      `json:"isDefault"`
	IsActive   *bool     `json:"isActive,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Complete reports whether the fields required to ship an order are set.
func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Phone != "" && a.Address != "" && a.City != "" && a.Province != ""
}

// OrderAddress converts a saved address into the order payload shape.
func (a ShippingAddress) OrderAddress() CreateOrderAddress {
	out := CreateOrderAddress{
		Name:     a.FullName,
		Phone:    a.Phone,
		Address:  a.Address,
		City:     a.City,
		Province: a.Province,
	}
	if a.PostalCode != nil {
		out.PostalCode = *a.PostalCode
	}
	return out
}

type CreateShippingAddressPayload struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode,omitempty"`
	IsDefault  bool   `json:"isDefault,omitempty"`
}

// UpdateShippingAddressPayload carries only the fields to change.
type UpdateShippingAddressPayload struct {
	FullName   *string `json:"fullName,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	IsDefault  *bool   `json:"isDefault,omitempty"`
}
