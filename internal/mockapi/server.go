package mockapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/crypto/bcrypt"
)

// Cookie names, matching what the client looks for.
const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

type Options struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Now defaults to time.Now. Tests move it forward to expire tokens.
	Now    func() time.Time
	Logger logging.Logger
}

type Server struct {
	store      *store
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	cost       int
	now        func() time.Time
	logger     logging.Logger
	router     chi.Router
}

// New builds a server with seeded state.
func New(opts Options) (*Server, error) {
	s := &Server{
		store:      newStore(),
		secret:     opts.Secret,
		accessTTL:  opts.AccessTTL,
		refreshTTL: opts.RefreshTTL,
		cost:       opts.BcryptCost,
		now:        opts.Now,
		logger:     opts.Logger,
	}
	if len(s.secret) == 0 {
		s.secret = []byte(newOpaqueToken(32))
	}
	if s.accessTTL <= 0 {
		s.accessTTL = 15 * time.Minute
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = 7 * 24 * time.Hour
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	s.logger = s.logger.With("module", "mockapi")

	if err := s.store.seed(s.now(), s.cost); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/V1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)
			r.Post("/refresh-token", s.refreshToken)
			r.Post("/send-verification-email", s.sendVerificationEmail)
			r.Get("/verify-account", s.verifyAccount)
			r.Get("/auth/{provider}", s.oauth)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.profile)
				r.Put("/me", s.updateProfile)
				r.Put("/me/password", s.changePassword)
				r.Post("/me/avatar", s.uploadAvatar)
				r.Get("/my-sessions", s.mySessions)
				r.Post("/revoke-my-session", s.revokeSession)
			})
		})

		r.Get("/products/getAll", s.listProducts)
		r.Get("/products/details/{id}", s.productDetails)
		r.Get("/categories", s.listCategories)
		r.Get("/categories/{id}", s.categoryDetails)
		r.Get("/vouchers/active", s.activeVouchers)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/orders", s.createOrder)
			r.Get("/orders/my-orders", s.myOrders)
			r.Get("/orders/details/{code}", s.orderDetails)
			r.Post("/orders/cancel/{code}", s.cancelOrder)

			r.Get("/shipping-addresses", s.listAddresses)
			r.Post("/shipping-addresses", s.createAddress)
			r.Put("/shipping-addresses/{id}", s.updateAddress)
			r.Delete("/shipping-addresses/{id}", s.deleteAddress)
			r.Patch("/shipping-addresses/{id}/default", s.setDefaultAddress)

			r.Post("/vouchers/verify", s.verifyVoucher)
		})
	})
	return r
}

// Handler returns the router wrapped with tracing.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "mockapi",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// Run serves on address until ctx is cancelled.
func (s *Server) Run(ctx context.Context, address string) error {
	listen, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping mock API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting mock API server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
