// Package metadata stores small key/value records of the local client:
// the signed-in user, persisted session cookies and the applied voucher.
package metadata

import (
	"context"
)

const (
	KeyCurrentUser = "current_user"
	KeyCookies     = "session_cookies"
	KeyVoucher     = "applied_voucher"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
