package models

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipping   OrderStatus = "SHIPPING"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderPending:    "Chờ xác nhận",
	OrderConfirmed:  "Đã xác nhận",
	OrderProcessing: "Đang xử lý",
	OrderShipping:   "Đang giao hàng",
	OrderDelivered:  "Đã giao hàng",
	OrderCancelled:  "Đã hủy",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the display name, or the raw value for unknown statuses.
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Cancellable reports whether the customer may still cancel the order.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentPaid       PaymentStatus = "PAID"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
)

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentPending:    "Chưa thanh toán",
	PaymentProcessing: "Đang xử lý",
	PaymentPaid:       "Đã thanh toán",
	PaymentFailed:     "Thất bại",
	PaymentRefunded:   "Đã hoàn tiền",
	PaymentCancelled:  "Đã hủy",
}

func (s PaymentStatus) Label() string {
	if l, ok := paymentStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "COD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMomo         PaymentMethod = "MOMO"
	PaymentVNPay        PaymentMethod = "VNPAY"
	PaymentZaloPay      PaymentMethod = "ZALOPAY"
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentCOD:          "Thanh toán khi nhận hàng",
	PaymentBankTransfer: "Chuyển khoản ngân hàng",
	PaymentMomo:         "Ví MoMo",
	PaymentVNPay:        "VNPay",
	PaymentZaloPay:      "ZaloPay",
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

type OrderItem struct {
	ProductID ID              `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// OrderShippingAddress is the address snapshot stored on an order.
type OrderShippingAddress struct {
	ID         ID     `json:"id,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode,omitempty"`
	IsDefault  bool   `json:"isDefault,omitempty"`
}

type OrderVoucher struct {
	VoucherID       ID              `json:"voucherId,omitempty"`
	Code            string          `json:"code"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	MaxDiscount     decimal.Decimal `json:"maxDiscount,omitempty"`
	DiscountApplied decimal.Decimal `json:"discountApplied"`
}

type OrderTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Payable     decimal.Decimal `json:"payable"`
}

type LogEntry struct {
	ID                int64          `json:"id,omitempty"`
	Action            string         `json:"action"`
	PerformedByID     *int64         `json:"performedById,omitempty"`
	PerformedByRole   string         `json:"performedByRole,omitempty"`
	At                time.Time      `json:"at"`
	Note              string         `json:"note,omitempty"`
	FromStatus        OrderStatus    `json:"fromStatus,omitempty"`
	ToStatus          OrderStatus    `json:"toStatus,omitempty"`
	FromPaymentStatus PaymentStatus  `json:"fromPaymentStatus,omitempty"`
	ToPaymentStatus   PaymentStatus  `json:"toPaymentStatus,omitempty"`
	Meta              map[string]any `json:"meta,omitempty"`
}

type Payment struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"orderId"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	TransactionID string          `json:"transactionId,omitempty"`
	Value         decimal.Decimal `json:"value"`
	Status        PaymentStatus   `json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Order struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"userId"`
	OrderCode       string               `json:"orderCode"`
	Items           []OrderItem          `json:"items"`
	ShippingAddress OrderShippingAddress `json:"shippingAddress"`
	Vouchers        []OrderVoucher       `json:"vouchers,omitempty"`
	Totals          OrderTotals          `json:"totals"`
	Status          OrderStatus          `json:"status"`
	PaymentStatus   PaymentStatus        `json:"paymentStatus,omitempty"`
	Payments        []Payment            `json:"payments"`
	Logs            []LogEntry           `json:"logs"`
	DeliveredAt     *time.Time           `json:"deliveredAt"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type CreateOrderItem struct {
	ProductID ID  `json:"productId"`
	Quantity  int `json:"quantity"`
}

type CreateOrderAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode,omitempty"`
}

type CreateOrderPayload struct {
	Items           []CreateOrderItem  `json:"items"`
	ShippingAddress CreateOrderAddress `json:"shippingAddress"`
	VoucherCode     string             `json:"voucherCode,omitempty"`
	ShippingFee     int64              `json:"shippingFee"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod,omitempty"`
}

type CreateOrderResponse struct {
	OrderCode     string        `json:"orderCode"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Totals        OrderTotals   `json:"totals"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type OrderFilters struct {
	Page         int
	ItemsPerPage int
	Status       OrderStatus
}

func (f OrderFilters) Values() url.Values {
	v := url.Values{}
	setPaging(v, f.Page, f.ItemsPerPage, "itemsPerPage")
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	return v
}
