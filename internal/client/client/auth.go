package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	r, err := jsonRequest(http.MethodPost, pathRegister, req)
	if err != nil {
		return models.User{}, err
	}
	env, err := call[models.User](ctx, c, r)
	if err != nil {
		return models.User{}, err
	}
	return env.Data, nil
}

// Login signs in with email and password. The backend answers with session
// cookies, which the jar keeps.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	r, err := jsonRequest(http.MethodPost, pathLogin, req)
	if err != nil {
		return models.AuthResponse{}, err
	}
	r.skipRedirect = true

	env, err := call[models.AuthResponse](ctx, c, r)
	if err != nil {
		return models.AuthResponse{}, err
	}
	c.session.authenticate()
	return env.Data, nil
}

// Logout ends the session on the backend, then clears it locally whatever
// the backend answered.
func (c *HTTPClient) Logout(ctx context.Context) error {
	r := newRequest(http.MethodPost, pathLogout)
	r.skipRedirect = true
	r.quiet = true

	_, err := c.do(ctx, r)
	c.ClearSession(ctx)
	return err
}

func (c *HTTPClient) SendVerificationEmail(ctx context.Context, email string) (models.SendVerificationEmailResponse, error) {
	r, err := jsonRequest(http.MethodPost, pathSendVerify, models.SendVerificationEmailRequest{Email: email})
	if err != nil {
		return models.SendVerificationEmailResponse{}, err
	}
	env, err := call[models.SendVerificationEmailResponse](ctx, c, r)
	if err != nil {
		return models.SendVerificationEmailResponse{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) VerifyAccount(ctx context.Context, req models.VerifyAccountRequest) error {
	r := newRequest(http.MethodGet, pathVerifyAccount)
	r.query = url.Values{"email": {req.Email}, "token": {req.Token}}
	_, err := c.do(ctx, r)
	return err
}

// OAuthURL returns the address a browser must open to sign in with a social
// provider. The backend sets the session cookies on its callback.
func (c *HTTPClient) OAuthURL(provider models.OAuthProvider) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("unsupported oauth provider %q", provider)
	}
	return c.baseURL.JoinPath(pathOAuth + string(provider)).String(), nil
}

// Ping probes reachability with the cheapest public endpoint. Failures are
// not shown to the user.
func (c *HTTPClient) Ping(ctx context.Context) error {
	r := newRequest(http.MethodGet, pathCategories)
	r.query = url.Values{"limit": {"1"}}
	r.quiet = true
	r.skipRedirect = true

	_, err := c.do(ctx, r)
	return err
}
