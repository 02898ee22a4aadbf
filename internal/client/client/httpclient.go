package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every call, including the token refresh.
const DefaultTimeout = 10 * time.Second

const maxResponseBody = 8 << 20

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string)
}

// Navigator sends the user to the sign-in entry point.
type Navigator interface {
	RedirectToSignIn()
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

type NavigatorFunc func()

func (f NavigatorFunc) RedirectToSignIn() { f() }

type Option func(*HTTPClient)

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithNotifier(n Notifier) Option { return func(c *HTTPClient) { c.notifier = n } }

func WithNavigator(n Navigator) Option { return func(c *HTTPClient) { c.navigator = n } }

// WithOnLogout registers a hook run once every time the session is cleared.
func WithOnLogout(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onLogout = fn }
}

func WithMetrics(m *Metrics) Option { return func(c *HTTPClient) { c.metrics = m } }

func WithLogger(l logging.Logger) Option { return func(c *HTTPClient) { c.log = l } }

// WithTransport replaces the base round tripper; it is still wrapped for
// tracing.
func WithTransport(rt http.RoundTripper) Option { return func(c *HTTPClient) { c.transport = rt } }

// HTTPClient talks to the storefront backend. One instance is shared by the
// whole process; it is safe for concurrent use.
type HTTPClient struct {
	baseURL   *url.URL
	timeout   time.Duration
	transport http.RoundTripper
	http      *http.Client
	jar       *Jar
	session   *session

	notifier  Notifier
	navigator Navigator
	onLogout  func(ctx context.Context)
	metrics   *Metrics
	log       logging.Logger
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:   u,
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
		jar:       NewJar(),
		notifier:  NotifierFunc(func(string) {}),
		navigator: NavigatorFunc(func() {}),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}

	c.http = &http.Client{
		Timeout:   c.timeout,
		Jar:       c.jar,
		Transport: otelhttp.NewTransport(c.transport),
	}
	c.session = &session{
		refresh:  c.refreshToken,
		onLogout: c.clearSession,
	}
	return c, nil
}

func (c *HTTPClient) BaseURL() *url.URL { return c.baseURL }

func (c *HTTPClient) Jar() *Jar { return c.jar }

func (c *HTTPClient) State() State { return c.session.State() }

// ResumeSession marks the session authenticated, e.g. after restoring
// persisted cookies.
func (c *HTTPClient) ResumeSession() { c.session.authenticate() }

// ClearSession logs the session out locally without a redirect.
func (c *HTTPClient) ClearSession(ctx context.Context) {
	c.session.logout(ctx, reasonUser)
}

// SessionCookies returns the session cookies for persisting between runs.
func (c *HTTPClient) SessionCookies() []SavedCookie { return c.jar.Export(c.baseURL) }

// RestoreCookies puts persisted session cookies back into the jar.
func (c *HTTPClient) RestoreCookies(saved []SavedCookie) { c.jar.Import(c.baseURL, saved) }

// Token reports the claims of the current access token cookie.
func (c *HTTPClient) Token() (TokenInfo, error) { return tokenFromJar(c.jar, c.baseURL) }

// request is one logical API call. The body is kept as bytes so the call can
// be re-issued after a token refresh.
type request struct {
	method       string
	path         string
	query        url.Values
	body         []byte
	contentType  string
	header       http.Header
	skipRedirect bool
	quiet        bool
	retried      bool
	requestID    string
}

func newRequest(method, path string) *request {
	return &request{method: method, path: path, header: http.Header{}}
}

func jsonRequest(method, path string, v any) (*request, error) {
	r := newRequest(method, path)
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	r.body = b
	r.contentType = "application/json"
	return r, nil
}

// do runs the request through the session rules and returns the raw body of
// a successful response.
func (c *HTTPClient) do(ctx context.Context, r *request) ([]byte, error) {
	if r.requestID == "" {
		r.requestID = uuid.NewString()
	}
	gen := c.session.generation()

	status, body, err := c.send(ctx, r)
	if err != nil {
		c.metrics.request(r.method, 0)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Debug(ctx, "request failed", "request_id", r.requestID, "method", r.method, "path", r.path, "error", err)
		c.notify(r, DefaultErrorMessage)
		if errors.Is(err, ErrResponseTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	c.metrics.request(r.method, status)
	c.log.Debug(ctx, "request done", "request_id", r.requestID, "method", r.method, "path", r.path, "status", status, "retried", r.retried)

	switch {
	case status == http.StatusUnauthorized:
		c.deny(ctx, r, reasonUnauthorized, nil)
		return nil, decodeAPIError(status, body, r.requestID)

	case status == http.StatusGone && r.retried:
		c.deny(ctx, r, reasonExpiredRetry, nil)
		return nil, decodeAPIError(status, body, r.requestID)

	case status == http.StatusGone:
		if d, err := c.session.recover(ctx, gen); err != nil {
			if errors.Is(err, ErrUnauthorized) {
				c.deny(ctx, r, reasonRefreshFailed, d)
				return nil, fmt.Errorf("session expired: %w", err)
			}
			return nil, err
		}
		r.retried = true
		return c.do(ctx, r)

	case status >= http.StatusBadRequest:
		apiErr := decodeAPIError(status, body, r.requestID)
		c.notify(r, apiErr.Message)
		return nil, apiErr
	}
	return body, nil
}

func (c *HTTPClient) send(ctx context.Context, r *request) (int, []byte, error) {
	u := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range r.header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set(headerRequestID, r.requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	if len(b) > maxResponseBody {
		return resp.StatusCode, nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBody)
	}
	return resp.StatusCode, b, nil
}

// refreshToken calls the refresh endpoint directly, outside the session
// rules: its own 401 or 410 is a plain failure.
func (c *HTTPClient) refreshToken(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	r := newRequest(http.MethodPost, pathRefreshToken)
	r.requestID = uuid.NewString()

	status, body, err := c.send(ctx, r)
	switch {
	case err != nil:
		c.metrics.Refresh.WithLabelValues("error").Inc()
		c.log.Warn(ctx, "token refresh failed", "request_id", r.requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case status >= http.StatusMultipleChoices:
		c.metrics.Refresh.WithLabelValues("rejected").Inc()
		c.log.Warn(ctx, "token refresh rejected", "request_id", r.requestID, "status", status)
		return decodeAPIError(status, body, r.requestID)
	}
	c.metrics.Refresh.WithLabelValues("ok").Inc()
	c.log.Debug(ctx, "token refreshed", "request_id", r.requestID)
	return nil
}

func (c *HTTPClient) clearSession(ctx context.Context, reason string) {
	c.jar.Reset()
	c.metrics.Logouts.WithLabelValues(reason).Inc()
	c.log.Info(ctx, "session cleared", "reason", reason)
	if c.onLogout != nil {
		c.onLogout(ctx)
	}
}

// deny handles an authorization-denied response. The session is logged out
// once; the redirect follows every denied request that did not suppress it,
// also when the session was already logged out.
func (c *HTTPClient) deny(ctx context.Context, r *request, reason string, d *denial) {
	if !c.session.logout(ctx, reason) {
		c.jar.Reset()
	}
	if r.skipRedirect {
		return
	}
	d.do(c.navigator.RedirectToSignIn)
}

func (c *HTTPClient) notify(r *request, message string) {
	if r.quiet {
		return
	}
	c.notifier.Notify(message)
}

// call runs r and decodes the envelope data into T.
func call[T any](ctx context.Context, c *HTTPClient, r *request) (Envelope[T], error) {
	body, err := c.do(ctx, r)
	if err != nil {
		return Envelope[T]{}, err
	}
	return decodeEnvelope[T](body)
}

// callList runs r and decodes a list that arrives either as a bare array or
// as an object holding the array under key next to its pagination.
func callList[T any](ctx context.Context, c *HTTPClient, r *request, key string) (models.Page[T], error) {
	env, err := call[json.RawMessage](ctx, c, r)
	if err != nil {
		return models.Page[T]{}, err
	}

	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return pageOf[T](nil, nil, env.Pagination), nil
	}
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return models.Page[T]{}, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		return pageOf(items, nil, env.Pagination), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return models.Page[T]{}, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	var items []T
	if v, ok := obj[key]; ok {
		if err := json.Unmarshal(v, &items); err != nil {
			return models.Page[T]{}, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}
	var nested *models.Pagination
	if v, ok := obj["pagination"]; ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		nested = &models.Pagination{}
		if err := json.Unmarshal(v, nested); err != nil {
			return models.Page[T]{}, fmt.Errorf("failed to decode pagination: %w", err)
		}
	}
	return pageOf(items, nested, env.Pagination), nil
}
