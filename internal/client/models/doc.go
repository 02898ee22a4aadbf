// Package models defines the storefront data transfer objects exchanged with
// the backend API and the records kept in the local store.
//
// Field names mirror the backend JSON contract; this package does not enforce
// business invariants, the backend does. Money is carried as decimal.Decimal
// because the backend emits prices both as JSON numbers and as strings.
package models
