package mockapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*client.HTTPClient, *clock, *Server) {
	t.Helper()
	s, clk := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	c, err := client.NewHTTPClient(ts.URL+"/V1", client.WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c, clk, s
}

func TestClientAgainstMockAPI_ShoppingFlow(t *testing.T) {
	c, clk, _ := newClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, models.LoginRequest{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, client.Authenticated, c.State())

	info, err := c.Token()
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, info.Email)

	products, err := c.Products(ctx, models.ProductFilters{Limit: 4})
	require.NoError(t, err)
	assert.Len(t, products.Items, 4)
	assert.Equal(t, len(seedProducts), products.Pagination.Total)
	assert.True(t, products.Pagination.HasNextPage())

	cats, err := c.Categories(ctx, models.CategoryFilters{})
	require.NoError(t, err)
	assert.Len(t, cats.Items, len(seedCategories))
	assert.Equal(t, 1, cats.Pagination.TotalPages)

	// Let the access token expire: the next call refreshes and retries.
	clk.advance(2 * time.Minute)

	addr, err := c.CreateAddress(ctx, models.CreateShippingAddressPayload{
		FullName: "Khách Demo", Phone: "0900000000", Address: "1 Lê Lợi", City: "Quận 1", Province: "Hồ Chí Minh",
	})
	require.NoError(t, err)
	assert.True(t, addr.IsDefault)
	assert.Equal(t, client.Authenticated, c.State())

	list, err := c.Addresses(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	vouchers, err := c.ActiveVouchers(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, vouchers, 2)

	p := products.Items[0]
	total := p.DiscountedPrice().Mul(decimal.NewFromInt(2))
	res, err := c.VerifyVoucher(ctx, models.VerifyVoucherPayload{Code: "SALE10", OrderTotal: total.IntPart()})
	require.NoError(t, err)
	assert.True(t, res.Discount.IsPositive())

	payload := models.CreateOrderPayload{
		Items:           []models.CreateOrderItem{{ProductID: models.IDFromInt(p.ID), Quantity: 2}},
		ShippingAddress: addr.OrderAddress(),
		VoucherCode:     "SALE10",
		PaymentMethod:   models.PaymentCOD,
	}
	first, err := c.CreateOrder(ctx, payload, "key-1")
	require.NoError(t, err)
	again, err := c.CreateOrder(ctx, payload, "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.OrderCode, again.OrderCode)
	assert.True(t, first.Totals.Payable.Equal(total.Sub(res.Discount)))

	after, err := c.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Stock-2, after.Stock, "idempotent retry must not reserve stock twice")

	orders, err := c.MyOrders(ctx, models.OrderFilters{Page: 1, ItemsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, orders.Items, 1)

	cancelled, err := c.CancelOrder(ctx, first.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	_, err = c.CancelOrder(ctx, first.OrderCode)
	require.ErrorIs(t, err, client.ErrConflict)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, client.LoggedOut, c.State())

	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestClientAgainstMockAPI_ExpiredRefreshLogsOut(t *testing.T) {
	c, clk, _ := newClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, models.LoginRequest{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)

	clk.advance(2 * time.Hour)
	_, err = c.MyOrders(ctx, models.OrderFilters{})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, client.LoggedOut, c.State())
}

func TestClientAgainstMockAPI_ConcurrentExpiry(t *testing.T) {
	c, clk, s := newClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, models.LoginRequest{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)
	clk.advance(2 * time.Minute)

	errs := make(chan error, 5)
	for range 5 {
		go func() {
			_, err := c.Profile(ctx)
			errs <- err
		}()
	}
	for range 5 {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, client.Authenticated, c.State())

	// Rotation leaves exactly one live refresh token for the session.
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	assert.Len(t, s.store.refresh, 1)
}

func TestClientAgainstMockAPI_ProfileAndSessions(t *testing.T) {
	c, _, _ := newClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, models.LoginRequest{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)

	u, err := c.UpdateProfile(ctx, models.UpdateProfileRequest{Name: "Demo mới", Phone: "0911"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Demo mới", u.Name)

	err = c.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.NotEmpty(t, apiErr.FieldError("currentPassword"))

	sessions, err := c.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Current)

	require.NoError(t, c.RevokeSession(ctx, sessions[0].SessionID))
	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}
