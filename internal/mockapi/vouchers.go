package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/shopspring/decimal"
)

var (
	errVoucherNotFound = errors.New("voucher not found")
	errVoucherExpired  = errors.New("voucher not active")
	errVoucherUsedUp   = errors.New("voucher usage limit reached")
	errVoucherMinOrder = errors.New("order total below voucher minimum")
)

var voucherMessages = map[error]string{
	errVoucherNotFound: "Voucher not found!",
	errVoucherExpired:  "Voucher is expired or not active yet!",
	errVoucherUsedUp:   "Voucher usage limit reached!",
	errVoucherMinOrder: "Order total does not reach the voucher minimum!",
}

func voucherLive(v *models.Voucher, now time.Time) bool {
	if !v.IsActive {
		return false
	}
	if v.StartDate != nil && now.Before(*v.StartDate) {
		return false
	}
	if v.EndDate != nil && now.After(*v.EndDate) {
		return false
	}
	return true
}

// discountFor checks code against an order total and returns the voucher
// with the discount it grants. Must be called with mu held.
func (s *store) discountFor(code string, total decimal.Decimal, now time.Time) (*models.Voucher, decimal.Decimal, error) {
	v := s.voucher(code)
	if v == nil {
		return nil, decimal.Zero, errVoucherNotFound
	}
	if !voucherLive(v, now) {
		return nil, decimal.Zero, errVoucherExpired
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return nil, decimal.Zero, errVoucherUsedUp
	}
	if v.MinOrderValue != nil && total.LessThan(*v.MinOrderValue) {
		return nil, decimal.Zero, errVoucherMinOrder
	}

	var discount decimal.Decimal
	switch v.Type {
	case models.VoucherPercent:
		discount = total.Mul(v.Amount).Div(decimal.NewFromInt(100)).Round(0)
		if v.MaxDiscount != nil && discount.GreaterThan(*v.MaxDiscount) {
			discount = *v.MaxDiscount
		}
	default:
		discount = v.Amount
	}
	return v, decimal.Min(discount, total), nil
}

func failVoucher(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, errVoucherNotFound) {
		status = http.StatusNotFound
	}
	fail(w, status, voucherMessages[err])
}

func (s *Server) verifyVoucher(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyVoucherPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code == "" {
		invalid(w, "Voucher code is required", map[string][]string{"code": {"Voucher code is required"}})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	total := decimal.NewFromInt(req.OrderTotal)
	v, discount, err := s.store.discountFor(req.Code, total, s.now())
	if err != nil {
		failVoucher(w, err)
		return
	}
	ok(w, http.StatusOK, "Voucher is valid!", models.VerifyVoucherResult{
		Voucher:  *v,
		Discount: discount,
		Payable:  total.Sub(discount),
	})
}

// activeVouchers answers with a bare array in data.
func (s *Server) activeVouchers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.now()
	list := []models.Voucher{}
	for i := range s.store.vouchers {
		if voucherLive(&s.store.vouchers[i], now) {
			list = append(list, s.store.vouchers[i])
		}
		if limit > 0 && len(list) == limit {
			break
		}
	}
	ok(w, http.StatusOK, "Get active vouchers successfully!", list)
}
