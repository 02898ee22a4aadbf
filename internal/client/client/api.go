package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Logout(ctx context.Context) error
	SendVerificationEmail(ctx context.Context, email string) (models.SendVerificationEmailResponse, error)
	VerifyAccount(ctx context.Context, req models.VerifyAccountRequest) error
	OAuthURL(provider models.OAuthProvider) (string, error)
	Ping(ctx context.Context) error
}

type AccountAPI interface {
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest, avatar *Upload) (models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, avatar Upload) (models.UploadAvatarResponse, error)
	Sessions(ctx context.Context) ([]models.SessionInfo, error)
	RevokeSession(ctx context.Context, sessionID string) error
}

type CatalogAPI interface {
	Products(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], error)
	Product(ctx context.Context, id int64) (models.Product, error)
	Categories(ctx context.Context, f models.CategoryFilters) (models.Page[models.Category], error)
	Category(ctx context.Context, id int64) (models.Category, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, payload models.CreateOrderPayload, idempotencyKey string) (models.CreateOrderResponse, error)
	MyOrders(ctx context.Context, f models.OrderFilters) (models.Page[models.Order], error)
	OrderDetails(ctx context.Context, id string) (models.Order, error)
	CancelOrder(ctx context.Context, id string) (models.Order, error)
}

type AddressAPI interface {
	Addresses(ctx context.Context) ([]models.ShippingAddress, error)
	CreateAddress(ctx context.Context, payload models.CreateShippingAddressPayload) (models.ShippingAddress, error)
	UpdateAddress(ctx context.Context, id int64, payload models.UpdateShippingAddressPayload) (models.ShippingAddress, error)
	DeleteAddress(ctx context.Context, id int64) error
	SetDefaultAddress(ctx context.Context, id int64) (models.ShippingAddress, error)
}

type VoucherAPI interface {
	VerifyVoucher(ctx context.Context, payload models.VerifyVoucherPayload) (models.VerifyVoucherResult, error)
	ActiveVouchers(ctx context.Context, limit int) ([]models.Voucher, error)
}

// Client is the whole backend API as exposed to the services.
type Client interface {
	AuthAPI
	AccountAPI
	CatalogAPI
	OrderAPI
	AddressAPI
	VoucherAPI

	State() State
	ResumeSession()
	ClearSession(ctx context.Context)
	Token() (TokenInfo, error)
	SessionCookies() []SavedCookie
	RestoreCookies(saved []SavedCookie)
}

// Upload is a file sent in a multipart body.
type Upload struct {
	Filename string
	Content  io.Reader
}

var _ Client = (*HTTPClient)(nil)
