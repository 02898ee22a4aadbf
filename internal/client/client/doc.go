// Package client contains the client-side building blocks of gophershop.
//
// # Overview
//
// The package provides:
//  1. The backend API contract, split per domain (AuthAPI, AccountAPI,
//     CatalogAPI, OrderAPI, AddressAPI, VoucherAPI) and combined in Client.
//  2. HTTPClient, the concrete implementation. It keeps server-issued
//     session cookies in a Jar, tags every call with an X-Request-ID and
//     applies the session rules to every response:
//     - 401 clears the session and redirects to sign-in unless the call
//     opted out;
//     - 410 runs one token refresh shared by every concurrent caller, then
//     re-issues the call once; a second 410 counts as 401;
//     - other failures are shown through the Notifier and returned as
//     *APIError or ErrUnavailable.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     NewRepositories) for the SQLite store.
//
// # Error Handling
//
// Backend failures are *APIError values. They match the sentinels with
// errors.Is: ErrUnauthorized, ErrNotFound, ErrValidation, ErrConflict.
// Transport failures match ErrUnavailable.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call takes a context; a
// token refresh already in flight is not cancelled when one of its waiters
// gives up.
package client
