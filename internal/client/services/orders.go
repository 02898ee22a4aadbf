package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

const defaultOrdersPerPage = 10

type OrderService interface {
	ListMine(ctx context.Context, f models.OrderFilters) (models.Page[models.Order], error)
	Details(ctx context.Context, id string) (models.Order, error)
	Cancel(ctx context.Context, id string) (models.Order, error)
}

type orderService struct {
	client client.OrderAPI
}

func NewOrderService(c client.OrderAPI) OrderService {
	return &orderService{client: c}
}

func (s *orderService) ListMine(ctx context.Context, f models.OrderFilters) (models.Page[models.Order], error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.ItemsPerPage < 1 {
		f.ItemsPerPage = defaultOrdersPerPage
	}
	if f.Status != "" && !f.Status.Valid() {
		return models.Page[models.Order]{}, fmt.Errorf("unknown order status %q", f.Status)
	}
	return s.client.MyOrders(ctx, f)
}

func (s *orderService) Details(ctx context.Context, id string) (models.Order, error) {
	return s.client.OrderDetails(ctx, strings.TrimSpace(id))
}

func (s *orderService) Cancel(ctx context.Context, id string) (models.Order, error) {
	o, err := s.client.CancelOrder(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Order{}, fmt.Errorf("cancel order error: %w", err)
	}
	return o, nil
}
