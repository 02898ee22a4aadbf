// Package mockapi is an in-memory stand-in for the storefront backend.
//
// It serves the same routes and response envelopes the client expects,
// mounted under /V1:
//
//   - users: register, login, logout, refresh-token, verification, OAuth
//     entry points, profile, password, avatar and session management;
//   - catalog: products and categories with paging, search and sorting;
//   - orders: create (idempotent per Idempotency-Key), list, details, cancel;
//   - shipping-addresses and vouchers.
//
// Sessions use two cookies. accessToken is an HS256 JWT with a short
// lifetime; refreshToken is an opaque value rotated on every refresh. A
// protected route answers 401 when the access token is missing, invalid or
// belongs to a revoked session, and 410 when it has expired.
//
// All state lives in memory and is lost on exit. The server is meant for
// local runs of the CLI and for end-to-end tests.
package mockapi
