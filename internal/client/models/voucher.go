package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherType string

const (
	VoucherPercent VoucherType = "percent"
	VoucherFixed   VoucherType = "fixed"
)

type Voucher struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	Type          VoucherType      `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue"`
	UsageLimit    *int             `json:"usageLimit"`
	UsedCount     int              `json:"usedCount"`
	StartDate     *time.Time       `json:"startDate"`
	EndDate       *time.Time       `json:"endDate"`
	IsActive      bool             `json:"isActive"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type VerifyVoucherPayload struct {
	Code       string `json:"code"`
	OrderTotal int64  `json:"orderTotal"`
}

type VerifyVoucherResult struct {
	Voucher  Voucher         `json:"voucher"`
	Discount decimal.Decimal `json:"discount"`
	Payable  decimal.Decimal `json:"payable"`
}
