package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_NestedPagination(t *testing.T) {
	b := newBackend(t)
	b.router.Get("/V1/products/getAll", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "price_desc", r.URL.Query().Get("sort"))
		writeJSON(w, http.StatusOK, ok(map[string]any{
			"products": []map[string]any{
				{"id": 1, "name": "Shirt", "price": "150000", "discount": 10},
				{"id": 2, "name": "Hat", "price": 90000, "discount": 0},
			},
			"pagination": map[string]any{"page": 2, "limit": 2, "total": 5, "totalPages": 3, "hasNext": true, "hasPrev": true},
		}))
	})

	c, _ := newTestClient(t, b, &recorder{})
	page, err := c.Products(context.Background(), models.ProductFilters{Page: 2, Limit: 2, Sort: models.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].DiscountedPrice().Equal(decimal.NewFromInt(135000)))
	assert.True(t, page.Items[1].Price.Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage())
}

func TestAddresses_PlainArray(t *testing.T) {
	b := newBackend(t)
	b.router.Get("/V1/shipping-addresses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok([]map[string]any{
			{"id": 1, "fullName": "An", "isDefault": true},
			{"id": 2, "fullName": "Binh", "isDefault": false},
		}))
	})
	b.router.Patch("/V1/shipping-addresses/{id}/default", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(map[string]any{"id": 2, "fullName": "Binh", "isDefault": true}))
	})
	b.router.Delete("/V1/shipping-addresses/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(nil))
	})

	c, _ := newTestClient(t, b, &recorder{})
	ctx := context.Background()

	list, err := c.Addresses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsDefault)

	a, err := c.SetDefaultAddress(ctx, 2)
	require.NoError(t, err)
	assert.True(t, a.IsDefault)

	require.NoError(t, c.DeleteAddress(ctx, 1))
}

func TestCreateOrder_SendsIdempotencyKeyAndPayload(t *testing.T) {
	b := newBackend(t)
	b.router.Post("/V1/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get(headerIdempotency))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p models.CreateOrderPayload
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&p)) {
			return
		}
		assert.Equal(t, models.ID("5"), p.Items[0].ProductID)
		assert.Equal(t, models.PaymentCOD, p.PaymentMethod)

		writeJSON(w, http.StatusCreated, ok(map[string]any{
			"orderCode": "OD42", "status": "PENDING", "paymentStatus": "PENDING",
			"totals": map[string]any{"subtotal": 100, "discount": 0, "shippingFee": 0, "payable": 100},
		}))
	})

	c, _ := newTestClient(t, b, &recorder{})
	resp, err := c.CreateOrder(context.Background(), models.CreateOrderPayload{
		Items:         []models.CreateOrderItem{{ProductID: models.IDFromInt(5), Quantity: 1}},
		PaymentMethod: models.PaymentCOD,
	}, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "OD42", resp.OrderCode)
	assert.True(t, resp.Totals.Payable.Equal(decimal.NewFromInt(100)))
}

func TestUpdateProfile_MultipartWithAvatar(t *testing.T) {
	b := newBackend(t)
	b.router.Put("/V1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "An", r.FormValue("name"))

		f, hdr, err := r.FormFile("avatar")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "me.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(body))

		writeJSON(w, http.StatusOK, ok(map[string]any{"id": 1, "name": "An", "avatar": "/img/me.png"}))
	})

	c, _ := newTestClient(t, b, &recorder{})
	u, err := c.UpdateProfile(context.Background(), models.UpdateProfileRequest{Name: "An"},
		&Upload{Filename: "/tmp/me.png", Content: strings.NewReader("PNGDATA")})
	require.NoError(t, err)
	assert.Equal(t, "/img/me.png", u.Avatar)
}

func TestVouchers(t *testing.T) {
	b := newBackend(t)
	b.router.Post("/V1/vouchers/verify", func(w http.ResponseWriter, r *http.Request) {
		var p models.VerifyVoucherPayload
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&p)) {
			return
		}
		assert.Equal(t, int64(500000), p.OrderTotal)
		writeJSON(w, http.StatusOK, ok(map[string]any{
			"voucher":  map[string]any{"id": 1, "code": p.Code, "type": "percent", "amount": 10},
			"discount": 50000,
			"payable":  450000,
		}))
	})
	b.router.Get("/V1/vouchers/active", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, ok(map[string]any{
			"vouchers":   []map[string]any{{"id": 1, "code": "SALE10"}},
			"pagination": map[string]any{},
		}))
	})

	c, _ := newTestClient(t, b, &recorder{})
	res, err := c.VerifyVoucher(context.Background(), models.VerifyVoucherPayload{Code: "SALE10", OrderTotal: 500000})
	require.NoError(t, err)
	assert.True(t, res.Discount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, models.VoucherPercent, res.Voucher.Type)

	list, err := c.ActiveVouchers(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SALE10", list[0].Code)
}

func TestLogin_AuthenticatesAndLogoutClears(t *testing.T) {
	b := newBackend(t)
	b.router.Post("/V1/users/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: AccessTokenCookie, Value: "a", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: RefreshTokenCookie, Value: "r", Path: "/"})
		writeJSON(w, http.StatusOK, ok(map[string]any{"user": map[string]any{"id": 1, "email": "an@example.com"}}))
	})
	b.router.Post("/V1/users/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(nil))
	})

	rec := &recorder{}
	c, _ := newTestClient(t, b, rec)
	ctx := context.Background()

	resp, err := c.Login(ctx, models.LoginRequest{Email: "an@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", resp.User.Email)
	assert.Equal(t, Authenticated, c.State())
	assert.Len(t, c.Jar().Export(c.BaseURL()), 2)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, LoggedOut, c.State())
	assert.Empty(t, c.Jar().Export(c.BaseURL()))
	assert.Equal(t, int32(1), rec.logouts.Load())
	assert.Equal(t, int32(0), rec.redirects.Load())
}

func TestVerifyAccount_Query(t *testing.T) {
	b := newBackend(t)
	b.router.Get("/V1/users/verify-account", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "an@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "tok", r.URL.Query().Get("token"))
		writeJSON(w, http.StatusOK, ok(nil))
	})

	c, _ := newTestClient(t, b, &recorder{})
	require.NoError(t, c.VerifyAccount(context.Background(), models.VerifyAccountRequest{Email: "an@example.com", Token: "tok"}))
}

func TestOAuthURL(t *testing.T) {
	c, err := NewHTTPClient("http://localhost:8017/V1/")
	require.NoError(t, err)

	u, err := c.OAuthURL(models.OAuthGoogle)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8017/V1/users/auth/google", u)

	_, err = c.OAuthURL("github")
	require.Error(t, err)
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "42",
		"email": "an@example.com",
		"exp":   exp.Unix(),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	info, err := InspectToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.Equal(t, "an@example.com", info.Email)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))

	_, err = InspectToken("not-a-jwt")
	require.Error(t, err)

	c, err := NewHTTPClient("http://localhost:8017/V1")
	require.NoError(t, err)
	_, err = c.Token()
	require.ErrorIs(t, err, ErrNoToken)
	signIn(c, raw)
	info, err = c.Token()
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
}

func TestJar_ExportImport(t *testing.T) {
	c, err := NewHTTPClient("http://shop.example.com/V1")
	require.NoError(t, err)
	signIn(c, "abc")

	saved := c.Jar().Export(c.BaseURL())
	require.Equal(t, []SavedCookie{{Name: AccessTokenCookie, Value: "abc"}}, saved)

	c.Jar().Reset()
	assert.Empty(t, c.Jar().Export(c.BaseURL()))

	c.Jar().Import(c.BaseURL(), saved)
	assert.Equal(t, saved, c.Jar().Export(c.BaseURL()))
}
