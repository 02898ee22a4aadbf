package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/config"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/mockapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ------------ helpers ------------

type harness struct {
	ts    *httptest.Server
	repos *client.Repositories
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s, err := mockapi.New(mockapi.Options{Secret: []byte("cli-test"), BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := &harness{ts: ts, repos: client.NewRepositories(db), out: &bytes.Buffer{}}

	origPrint, origPassword := printlnFn, readPassword
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(h.out, a...) }
	readPassword = func(int) ([]byte, error) { return []byte(mockapi.DemoPassword), nil }
	t.Cleanup(func() {
		printlnFn = origPrint
		readPassword = origPassword
	})
	return h
}

// app builds a front end wired like cmd/cli, reading the given input lines.
func (h *harness) app(t *testing.T, lines ...string) *App {
	t.Helper()
	cfg := &config.Config{OnlineCheckInterval: time.Hour}
	a := NewApp(cfg, strings.NewReader(strings.Join(lines, "\n")+"\n"), h.out, logging.Nop())

	api, err := client.NewHTTPClient(h.ts.URL+"/V1",
		client.WithTimeout(5*time.Second),
		client.WithNotifier(a),
		client.WithNavigator(a),
		client.WithOnLogout(a.SessionEnded),
	)
	require.NoError(t, err)
	a.Bind(NewServices(api, h.repos, logging.Nop()))
	return a
}

// ------------ tests ------------

func TestApp_ShoppingSession(t *testing.T) {
	h := newHarness(t)
	a := h.app(t,
		"products limit=3",
		"add 5 2",
		"checkout",
		"login "+mockapi.DemoEmail,
		"addaddress", "Khách Demo", "0900000000", "1 Lê Lợi", "Quận 1", "Hồ Chí Minh", "", "y",
		"voucher sale10",
		"summary",
		"checkout",
		"cart",
		"orders",
		"logout",
		"orders",
		"exit",
	)

	a.Run(context.Background())
	out := h.out.String()

	assert.Contains(t, out, "Áo thun cotton basic")
	assert.Contains(t, out, "Page 1 of 4, 10 total, next: page=2")
	assert.Contains(t, out, "Áo thun cotton basic is in your cart (x2).")
	assert.NotContains(t, out, "not found")
	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, "Signed in as Khách Demo")
	assert.Contains(t, out, "Voucher SALE10 applied: -35.820 ₫")
	assert.Contains(t, out, "Payable:   322.380 ₫")
	assert.Contains(t, out, "Order GS")
	assert.Contains(t, out, "Your cart is empty.")
	assert.Contains(t, out, "Signed out.")
	assert.Equal(t, 2, strings.Count(out, "Please login first"))
	assert.Contains(t, out, "Bye!")
}

func TestApp_RunRestoresSavedSession(t *testing.T) {
	h := newHarness(t)

	h.app(t, "login "+mockapi.DemoEmail, "exit").Run(context.Background())
	h.out.Reset()

	next := h.app(t, "whoami", "exit")
	next.Run(context.Background())

	assert.Contains(t, h.out.String(), "Welcome back, Khách Demo")
	assert.Contains(t, h.out.String(), "Khách Demo <"+mockapi.DemoEmail+">")
	assert.True(t, next.isLoggedIn())
}

func TestApp_ValidationErrorsArePrinted(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "login "+mockapi.DemoEmail, "addaddress", "", "", "", "", "", "", "n", "exit")

	a.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "! Validation failed")
	assert.Contains(t, out, "Error: address: address is required;")
	assert.Contains(t, out, "fullName: fullName is required")
}

func TestApp_NotifyAndRedirect(t *testing.T) {
	var out bytes.Buffer
	a := NewApp(&config.Config{}, strings.NewReader(""), &out, logging.Nop())
	a.setUser(&models.User{Email: "a@b.c"})

	a.Notify("Something went wrong")
	a.RedirectToSignIn()

	assert.Equal(t, "! Something went wrong\nYour session has ended. Sign in again with 'login' or 'oauth'.\n", out.String())
	assert.False(t, a.isLoggedIn())
}

func TestApp_Status(t *testing.T) {
	a := NewApp(&config.Config{}, strings.NewReader(""), &bytes.Buffer{}, logging.Nop())
	assert.Equal(t, "", a.status())

	a.setMode(ModeOnline)
	assert.Equal(t, "(online)", a.status())

	a.setUser(&models.User{Email: "a@b.c"})
	assert.Equal(t, "(a@b.c online)", a.status())
}

func TestApp_OnlineWatcherSwitchesMode(t *testing.T) {
	h := newHarness(t)
	a := h.app(t)

	a.checkOnline(context.Background())
	require.Equal(t, ModeOnline, a.Mode())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	h.ts.Close()
	require.Eventually(t, func() bool { return a.Mode() == ModeOffline }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.Contains(t, h.out.String(), "Switched to offline mode")
}

func TestApp_OfflineCatalogUsesCache(t *testing.T) {
	h := newHarness(t)
	a := h.app(t, "products", "product 6", "exit")

	require.NoError(t, a.Products(context.Background(), nil))
	h.ts.Close()
	h.out.Reset()

	runREPL(context.Background(), a, a.status, a.reader)

	out := h.out.String()
	assert.Contains(t, out, "(offline, showing cached products)")
	assert.Contains(t, out, "(offline, showing cached product)\n")
	assert.Contains(t, out, "Áo sơ mi oxford (#6)")
}
