// Package cli provides the interactive gophershop terminal storefront.
//
// It stands in for the browser front end: one REPL drives every storefront
// service (catalog, cart, wishlist, vouchers, checkout, orders, addresses
// and the account). A background watcher pings the backend and flips the
// prompt between online and offline mode; while offline the catalog is
// served from the local cache.
//
// The App doubles as the API client's Notifier and Navigator, so backend
// errors show up as "! message" lines and an ended session drops the
// signed-in user and asks for a new sign-in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
