package client

// Backend routes, relative to the base URL.
const (
	pathRegister        = "/users/register"
	pathLogin           = "/users/login"
	pathLogout          = "/users/logout"
	pathRefreshToken    = "/users/refresh-token"
	pathSendVerify      = "/users/send-verification-email"
	pathVerifyAccount   = "/users/verify-account"
	pathOAuth           = "/users/auth/"
	pathProfile         = "/users/me"
	pathChangePassword  = "/users/me/password"
	pathAvatar          = "/users/me/avatar"
	pathMySessions      = "/users/my-sessions"
	pathRevokeSession   = "/users/revoke-my-session"
	pathProducts        = "/products/getAll"
	pathProductDetails  = "/products/details/"
	pathCategories      = "/categories"
	pathOrders          = "/orders"
	pathMyOrders        = "/orders/my-orders"
	pathOrderDetails    = "/orders/details/"
	pathOrderCancel     = "/orders/cancel/"
	pathAddresses       = "/shipping-addresses"
	pathVoucherVerify   = "/vouchers/verify"
	pathVouchersActive  = "/vouchers/active"
	headerRequestID     = "X-Request-ID"
	headerIdempotency   = "Idempotency-Key"
)
