package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/config"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/services"
	"github.com/dmitrijs2005/gophershop/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe of the watcher.
const pingTimeout = 3 * time.Second

// Services are the storefront services the commands drive.
type Services struct {
	Auth      services.AuthService
	Account   services.AccountService
	Catalog   services.CatalogService
	Cart      services.CartService
	Wishlist  services.WishlistService
	Vouchers  services.VoucherService
	Checkout  services.CheckoutService
	Orders    services.OrderService
	Addresses services.AddressService
}

// NewServices builds every storefront service over one API client and the
// local store.
func NewServices(api *client.HTTPClient, repos *client.Repositories, log logging.Logger) Services {
	catalog := services.NewCatalogService(api, repos.Catalog, log)
	cart := services.NewCartService(repos.Cart, catalog)
	vouchers := services.NewVoucherService(api, cart, repos.Metadata)
	addresses := services.NewAddressService(api)

	return Services{
		Auth:      services.NewAuthService(api, repos.Metadata),
		Account:   services.NewAccountService(api, repos.Metadata),
		Catalog:   catalog,
		Cart:      cart,
		Wishlist:  services.NewWishlistService(repos.Cart, catalog, cart),
		Vouchers:  vouchers,
		Checkout:  services.NewCheckoutService(api, cart, vouchers, addresses),
		Orders:    services.NewOrderService(api),
		Addresses: addresses,
	}
}

type App struct {
	config *config.Config
	svc    Services
	log    logging.Logger
	reader *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	mu   sync.Mutex
	user *models.User
	mode Mode
}

// NewApp creates the terminal front end. Services are attached with Bind
// once the API client, which reports back to the App, has been built.
func NewApp(c *config.Config, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{config: c, log: log, reader: bufio.NewReader(in), out: out}
}

func (a *App) Bind(svc Services) {
	a.svc = svc
}

// Notify implements client.Notifier.
func (a *App) Notify(message string) {
	a.printf("! %s\n", message)
}

// RedirectToSignIn implements client.Navigator.
func (a *App) RedirectToSignIn() {
	a.setUser(nil)
	a.printf("Your session has ended. Sign in again with 'login' or 'oauth'.\n")
}

// SessionEnded is the API client's logout hook. It forgets the persisted
// session and the per-user caches.
func (a *App) SessionEnded(ctx context.Context) {
	if err := a.svc.Auth.ForgetSession(ctx); err != nil {
		a.log.Error(ctx, "session clearing failed", "error", err)
	}
	a.svc.Addresses.Reset()
	a.setUser(nil)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) status() string {
	s := ""
	if u := a.currentUser(); u != nil {
		s = u.Email + " "
	}
	s += string(a.Mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run restores the previous session, starts the online watcher and blocks
// in the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to gophershop (type 'help' for commands)\n")

	a.checkOnline(ctx)
	a.restoreSession(ctx)

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, a.reader)

	if a.isLoggedIn() {
		if err := a.svc.Auth.SaveSession(ctx); err != nil {
			a.log.Error(ctx, "session saving failed", "error", err)
		}
	}
}

func (a *App) restoreSession(ctx context.Context) {
	u, err := a.svc.Auth.RestoreSession(ctx)
	if err != nil {
		a.log.Error(ctx, "session restore failed", "error", err)
		return
	}
	if u == nil {
		return
	}
	a.setUser(u)
	a.printf("Welcome back, %s\n", displayName(*u))
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.svc.Auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher probes the backend every interval until ctx is
// done and switches the mode when reachability changes.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
