package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/migrations"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(context.Background(), db))
	return db
}

// ---- fake client ----

// fakeAPI implements every backend API interface used by the services.
type fakeAPI struct {
	RegisterRet models.User
	RegisterErr error
	LoginRet    models.AuthResponse
	LoginErr    error
	LogoutErr   error
	ProfileRet  models.User
	ProfileErr  error
	PingErr     error
	VerifyErr   error

	state   client.State
	cookies []client.SavedCookie
	cleared int

	UpdateProfileRet models.User
	UpdateProfileErr error
	UploadAvatarRet  models.UploadAvatarResponse
	SessionsRet      []models.SessionInfo

	ProductsRet   models.Page[models.Product]
	ProductsErr   error
	ProductRet    map[int64]models.Product
	ProductErr    error
	CategoriesRet models.Page[models.Category]
	CategoriesErr error

	CreateOrderRet models.CreateOrderResponse
	CreateOrderErr error
	MyOrdersRet    models.Page[models.Order]
	CancelRet      models.Order

	AddressesRet     []models.ShippingAddress
	AddressesErr     error
	CreateAddressRet models.ShippingAddress
	UpdateAddressRet models.ShippingAddress
	SetDefaultRet    models.ShippingAddress

	VerifyVoucherRet models.VerifyVoucherResult
	VerifyVoucherErr error
	ActiveRet        []models.Voucher

	// captured arguments
	LastLogin          models.LoginRequest
	LastAvatar         *client.Upload
	LastAvatarBody     string
	LastOrderPayload   models.CreateOrderPayload
	LastIdempotencyKey string
	LastOrderFilters   models.OrderFilters
	LastVoucher        models.VerifyVoucherPayload
	AddressesCalls     int
	CreateOrderCalls   int
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAPI) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	f.LastLogin = req
	if f.LoginErr != nil {
		return models.AuthResponse{}, f.LoginErr
	}
	f.state = client.Authenticated
	f.cookies = []client.SavedCookie{{Name: client.AccessTokenCookie, Value: "a"}, {Name: client.RefreshTokenCookie, Value: "r"}}
	return f.LoginRet, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.ClearSession(ctx)
	return f.LogoutErr
}

func (f *fakeAPI) SendVerificationEmail(ctx context.Context, email string) (models.SendVerificationEmailResponse, error) {
	return models.SendVerificationEmailResponse{Email: email}, nil
}

func (f *fakeAPI) VerifyAccount(ctx context.Context, req models.VerifyAccountRequest) error {
	return f.VerifyErr
}

func (f *fakeAPI) OAuthURL(provider models.OAuthProvider) (string, error) {
	return "http://backend/users/auth/" + string(provider), nil
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeAPI) Profile(ctx context.Context) (models.User, error) {
	if f.ProfileErr != nil {
		if errors.Is(f.ProfileErr, client.ErrUnauthorized) {
			f.ClearSession(ctx)
		}
		return models.User{}, f.ProfileErr
	}
	f.state = client.Authenticated
	return f.ProfileRet, nil
}

func (f *fakeAPI) State() client.State { return f.state }

func (f *fakeAPI) ResumeSession() { f.state = client.Authenticated }

func (f *fakeAPI) ClearSession(ctx context.Context) {
	f.state = client.LoggedOut
	f.cookies = nil
	f.cleared++
}

func (f *fakeAPI) Token() (client.TokenInfo, error) {
	if len(f.cookies) == 0 {
		return client.TokenInfo{}, client.ErrNoToken
	}
	return client.TokenInfo{Subject: "1"}, nil
}

func (f *fakeAPI) SessionCookies() []client.SavedCookie { return f.cookies }

func (f *fakeAPI) RestoreCookies(saved []client.SavedCookie) { f.cookies = saved }

func (f *fakeAPI) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest, avatar *client.Upload) (models.User, error) {
	f.LastAvatar = avatar
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return nil
}

func (f *fakeAPI) UploadAvatar(ctx context.Context, avatar client.Upload) (models.UploadAvatarResponse, error) {
	f.LastAvatar = &avatar
	return f.UploadAvatarRet, nil
}

func (f *fakeAPI) Sessions(ctx context.Context) ([]models.SessionInfo, error) {
	return f.SessionsRet, nil
}

func (f *fakeAPI) RevokeSession(ctx context.Context, sessionID string) error { return nil }

func (f *fakeAPI) Products(ctx context.Context, fl models.ProductFilters) (models.Page[models.Product], error) {
	return f.ProductsRet, f.ProductsErr
}

func (f *fakeAPI) Product(ctx context.Context, id int64) (models.Product, error) {
	if f.ProductErr != nil {
		return models.Product{}, f.ProductErr
	}
	p, ok := f.ProductRet[id]
	if !ok {
		return models.Product{}, &client.APIError{StatusCode: 404, Message: "Product not found"}
	}
	return p, nil
}

func (f *fakeAPI) Categories(ctx context.Context, fl models.CategoryFilters) (models.Page[models.Category], error) {
	return f.CategoriesRet, f.CategoriesErr
}

func (f *fakeAPI) Category(ctx context.Context, id int64) (models.Category, error) {
	if f.CategoriesErr != nil {
		return models.Category{}, f.CategoriesErr
	}
	for _, c := range f.CategoriesRet.Items {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, client.ErrNotFound
}

func (f *fakeAPI) CreateOrder(ctx context.Context, payload models.CreateOrderPayload, key string) (models.CreateOrderResponse, error) {
	f.CreateOrderCalls++
	f.LastOrderPayload = payload
	f.LastIdempotencyKey = key
	return f.CreateOrderRet, f.CreateOrderErr
}

func (f *fakeAPI) MyOrders(ctx context.Context, fl models.OrderFilters) (models.Page[models.Order], error) {
	f.LastOrderFilters = fl
	return f.MyOrdersRet, nil
}

func (f *fakeAPI) OrderDetails(ctx context.Context, id string) (models.Order, error) {
	return models.Order{OrderCode: id}, nil
}

func (f *fakeAPI) CancelOrder(ctx context.Context, id string) (models.Order, error) {
	return f.CancelRet, nil
}

func (f *fakeAPI) Addresses(ctx context.Context) ([]models.ShippingAddress, error) {
	f.AddressesCalls++
	return append([]models.ShippingAddress(nil), f.AddressesRet...), f.AddressesErr
}

func (f *fakeAPI) CreateAddress(ctx context.Context, payload models.CreateShippingAddressPayload) (models.ShippingAddress, error) {
	return f.CreateAddressRet, nil
}

func (f *fakeAPI) UpdateAddress(ctx context.Context, id int64, payload models.UpdateShippingAddressPayload) (models.ShippingAddress, error) {
	return f.UpdateAddressRet, nil
}

func (f *fakeAPI) DeleteAddress(ctx context.Context, id int64) error { return nil }

func (f *fakeAPI) SetDefaultAddress(ctx context.Context, id int64) (models.ShippingAddress, error) {
	return f.SetDefaultRet, nil
}

func (f *fakeAPI) VerifyVoucher(ctx context.Context, payload models.VerifyVoucherPayload) (models.VerifyVoucherResult, error) {
	f.LastVoucher = payload
	return f.VerifyVoucherRet, f.VerifyVoucherErr
}

func (f *fakeAPI) ActiveVouchers(ctx context.Context, limit int) ([]models.Voucher, error) {
	return f.ActiveRet, nil
}
