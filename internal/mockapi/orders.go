package mockapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const defaultOrdersPerPage = 10

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		invalid(w, "Order has no items", map[string][]string{"items": {"At least one item is required"}})
		return
	}
	addr := req.ShippingAddress
	if fields := requireFields(map[string]string{
		"shippingAddress.name": addr.Name, "shippingAddress.phone": addr.Phone,
		"shippingAddress.address": addr.Address, "shippingAddress.city": addr.City,
		"shippingAddress.province": addr.Province,
	}); len(fields) > 0 {
		invalid(w, "Shipping address is incomplete", fields)
		return
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentCOD
	}
	if !method.Valid() {
		invalid(w, "Unsupported payment method", map[string][]string{"paymentMethod": {"Unsupported payment method"}})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := userID(r)
	idemKey := ""
	if k := r.Header.Get("Idempotency-Key"); k != "" {
		idemKey = strconv.FormatInt(uid, 10) + "|" + k
		if prev, seen := s.store.idempotent[idemKey]; seen {
			ok(w, http.StatusCreated, "Create order successfully!", prev)
			return
		}
	}

	now := s.now()
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	products := make([]*models.Product, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := strconv.ParseInt(string(it.ProductID), 10, 64)
		p := s.store.product(pid)
		if err != nil || p == nil {
			fail(w, http.StatusNotFound, fmt.Sprintf("Product %s not found!", it.ProductID))
			return
		}
		if it.Quantity < 1 {
			invalid(w, "Invalid quantity", map[string][]string{"items.quantity": {"Quantity must be at least 1"}})
			return
		}
		if p.Status != models.ProductActive {
			fail(w, http.StatusBadRequest, p.Name+" is not available!")
			return
		}
		if p.Stock < it.Quantity {
			fail(w, http.StatusConflict, p.Name+" is out of stock!")
			return
		}
		unit := p.DiscountedPrice()
		line := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
		items = append(items, models.OrderItem{
			ProductID: models.IDFromInt(p.ID), Name: p.Name, Image: p.Image,
			UnitPrice: unit, Discount: p.Discount, Quantity: it.Quantity, LineTotal: line,
		})
		products = append(products, p)
	}

	discount := decimal.Zero
	var vouchers []models.OrderVoucher
	var used *models.Voucher
	if req.VoucherCode != "" {
		v, d, err := s.store.discountFor(req.VoucherCode, subtotal, now)
		if err != nil {
			failVoucher(w, err)
			return
		}
		used, discount = v, d
		ov := models.OrderVoucher{VoucherID: models.IDFromInt(v.ID), Code: v.Code, Type: string(v.Type), Amount: v.Amount, DiscountApplied: d}
		if v.MaxDiscount != nil {
			ov.MaxDiscount = *v.MaxDiscount
		}
		vouchers = append(vouchers, ov)
	}

	shipping := decimal.NewFromInt(req.ShippingFee)
	totals := models.OrderTotals{
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: shipping,
		Payable:     decimal.Max(decimal.Zero, subtotal.Add(shipping).Sub(discount)),
	}

	for i, p := range products {
		p.Stock -= items[i].Quantity
		p.Sold += items[i].Quantity
	}
	if used != nil {
		used.UsedCount++
	}

	id := s.store.id()
	o := &models.Order{
		ID:        id,
		UserID:    uid,
		OrderCode: fmt.Sprintf("GS%s%04d", now.Format("060102"), id),
		Items:     items,
		ShippingAddress: models.OrderShippingAddress{
			Name: addr.Name, Phone: addr.Phone, Address: addr.Address,
			City: addr.City, Province: addr.Province, PostalCode: addr.PostalCode,
		},
		Vouchers:      vouchers,
		Totals:        totals,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		Payments: []models.Payment{{
			ID: s.store.id(), OrderID: id, PaymentMethod: method,
			Value: totals.Payable, Status: models.PaymentPending, CreatedAt: now,
		}},
		Logs:      []models.LogEntry{{Action: "CREATE", At: now, ToStatus: models.OrderPending, ToPaymentStatus: models.PaymentPending}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.orders = append(s.store.orders, o)

	resp := models.CreateOrderResponse{
		OrderCode: o.OrderCode, Status: o.Status, PaymentStatus: o.PaymentStatus,
		Totals: o.Totals, CreatedAt: o.CreatedAt,
	}
	if idemKey != "" {
		s.store.idempotent[idemKey] = resp
	}
	ok(w, http.StatusCreated, "Create order successfully!", resp)
}

func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		invalid(w, "Invalid status", map[string][]string{"status": {"Unknown order status"}})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid := userID(r)
	mine := []models.Order{}
	for i := len(s.store.orders) - 1; i >= 0; i-- {
		o := s.store.orders[i]
		if o.UserID == uid && (status == "" || o.Status == status) {
			mine = append(mine, *o)
		}
	}

	items, page := paginate(mine, queryInt(r, "page"), queryInt(r, "itemsPerPage"), defaultOrdersPerPage)
	ok(w, http.StatusOK, "Get orders successfully!", map[string]any{
		"orders":     items,
		"pagination": page,
	})
}

// order must be called with mu held.
func (s *store) order(uid int64, code string) *models.Order {
	for _, o := range s.orders {
		if o.UserID == uid && o.OrderCode == code {
			return o
		}
	}
	return nil
}

func (s *Server) orderDetails(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	o := s.store.order(userID(r), chi.URLParam(r, "code"))
	if o == nil {
		fail(w, http.StatusNotFound, "Order not found!")
		return
	}
	ok(w, http.StatusOK, "Get order successfully!", *o)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	o := s.store.order(userID(r), chi.URLParam(r, "code"))
	if o == nil {
		fail(w, http.StatusNotFound, "Order not found!")
		return
	}
	if !o.Status.Cancellable() {
		fail(w, http.StatusConflict, "Order can no longer be cancelled!")
		return
	}

	now := s.now()
	for _, it := range o.Items {
		pid, _ := strconv.ParseInt(string(it.ProductID), 10, 64)
		if p := s.store.product(pid); p != nil {
			p.Stock += it.Quantity
			p.Sold -= it.Quantity
		}
	}
	uid := userID(r)
	o.Logs = append(o.Logs, models.LogEntry{
		Action: "CANCEL", PerformedByID: &uid, PerformedByRole: "customer", At: now,
		FromStatus: o.Status, ToStatus: models.OrderCancelled,
		FromPaymentStatus: o.PaymentStatus, ToPaymentStatus: models.PaymentCancelled,
	})
	o.Status = models.OrderCancelled
	o.PaymentStatus = models.PaymentCancelled
	for i := range o.Payments {
		o.Payments[i].Status = models.PaymentCancelled
	}
	o.UpdatedAt = now
	ok(w, http.StatusOK, "Cancel order successfully!", *o)
}
