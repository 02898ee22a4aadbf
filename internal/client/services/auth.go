// Package services contains the application services of the gophershop
// client. Each service combines calls to the backend API with the local
// store; none of them holds business rules the backend owns.
//
// This file defines the authentication service: password and OAuth sign-in,
// registration, account verification, the persisted session and the
// cached current user.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: sign in, cache the user and persist the session cookies.
//   - Logout: end the session on the backend when reachable, always clear
//     it locally.
//   - FetchProfile: ask the backend who is signed in; success refreshes the
//     cached user, failure forgets it.
//   - CompleteOAuth: adopt the cookies a browser sign-in produced.
//   - RestoreSession: reload persisted cookies at startup.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) (models.User, error)
	SendVerificationEmail(ctx context.Context, email string) (models.SendVerificationEmailResponse, error)
	VerifyAccount(ctx context.Context, email, token string) error
	OAuthURL(provider models.OAuthProvider) (string, error)
	CompleteOAuth(ctx context.Context, accessToken, refreshToken string) (models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	RestoreSession(ctx context.Context) (*models.User, error)
	SaveSession(ctx context.Context) error
	ForgetSession(ctx context.Context) error
	Session() (client.State, client.TokenInfo)
	Ping(ctx context.Context) error
}

// AuthClient is the part of the API client the auth service needs.
type AuthClient interface {
	client.AuthAPI
	Profile(ctx context.Context) (models.User, error)
	State() client.State
	ResumeSession()
	ClearSession(ctx context.Context)
	Token() (client.TokenInfo, error)
	SessionCookies() []client.SavedCookie
	RestoreCookies(saved []client.SavedCookie)
}

type authService struct {
	client AuthClient
	meta   metadata.Repository
}

func NewAuthService(c AuthClient, meta metadata.Repository) AuthService {
	return &authService{client: c, meta: meta}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	u, err := a.client.Register(ctx, req)
	if err != nil {
		return models.User{}, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

// Login signs in with a password. The backend keeps the session in cookies,
// so the user record and the cookies are both saved locally.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	resp, err := a.client.Login(ctx, models.LoginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return models.User{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.remember(ctx, resp.User); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

// Logout is best effort on the backend; a failed remote call still
// leaves the client signed out.
func (a *authService) Logout(ctx context.Context) error {
	remoteErr := a.client.Logout(ctx)
	if err := a.ForgetSession(ctx); err != nil {
		return err
	}
	if remoteErr != nil && !errors.Is(remoteErr, client.ErrUnauthorized) {
		return fmt.Errorf("remote logout error: %w", remoteErr)
	}
	return nil
}

func (a *authService) FetchProfile(ctx context.Context) (models.User, error) {
	u, err := a.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if ferr := a.ForgetSession(ctx); ferr != nil {
				return models.User{}, ferr
			}
		}
		return models.User{}, fmt.Errorf("profile error: %w", err)
	}
	if err := a.remember(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (a *authService) SendVerificationEmail(ctx context.Context, email string) (models.SendVerificationEmailResponse, error) {
	return a.client.SendVerificationEmail(ctx, strings.TrimSpace(email))
}

func (a *authService) VerifyAccount(ctx context.Context, email, token string) error {
	return a.client.VerifyAccount(ctx, models.VerifyAccountRequest{Email: strings.TrimSpace(email), Token: strings.TrimSpace(token)})
}

func (a *authService) OAuthURL(provider models.OAuthProvider) (string, error) {
	return a.client.OAuthURL(provider)
}

// CompleteOAuth finishes a social sign-in done in a browser: the cookies the
// backend set there are copied into the client and checked with a profile
// fetch.
func (a *authService) CompleteOAuth(ctx context.Context, accessToken, refreshToken string) (models.User, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return models.User{}, fmt.Errorf("oauth error: %w", client.ErrNoToken)
	}
	saved := []client.SavedCookie{{Name: client.AccessTokenCookie, Value: accessToken}}
	if rt := strings.TrimSpace(refreshToken); rt != "" {
		saved = append(saved, client.SavedCookie{Name: client.RefreshTokenCookie, Value: rt})
	}
	a.client.RestoreCookies(saved)
	return a.FetchProfile(ctx)
}

// CurrentUser returns the cached user, or nil when nobody is signed in.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	ok, err := metadata.GetJSON(ctx, a.meta, metadata.KeyCurrentUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

// RestoreSession reloads the cookies saved by a previous run. The session
// is optimistically considered authenticated; the first denied call will
// correct that.
func (a *authService) RestoreSession(ctx context.Context) (*models.User, error) {
	var saved []client.SavedCookie
	ok, err := metadata.GetJSON(ctx, a.meta, metadata.KeyCookies, &saved)
	if err != nil {
		return nil, err
	}
	if !ok || len(saved) == 0 {
		return nil, nil
	}
	a.client.RestoreCookies(saved)
	a.client.ResumeSession()
	return a.CurrentUser(ctx)
}

func (a *authService) SaveSession(ctx context.Context) error {
	cookies := a.client.SessionCookies()
	if len(cookies) == 0 {
		return a.meta.Delete(ctx, metadata.KeyCookies)
	}
	return metadata.SetJSON(ctx, a.meta, metadata.KeyCookies, cookies)
}

// ForgetSession drops the locally persisted user and cookies. The API client
// calls it as its logout hook.
func (a *authService) ForgetSession(ctx context.Context) error {
	if err := a.meta.Delete(ctx, metadata.KeyCurrentUser); err != nil {
		return err
	}
	return a.meta.Delete(ctx, metadata.KeyCookies)
}

func (a *authService) Session() (client.State, client.TokenInfo) {
	info, _ := a.client.Token()
	return a.client.State(), info
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) remember(ctx context.Context, u models.User) error {
	if err := metadata.SetJSON(ctx, a.meta, metadata.KeyCurrentUser, u); err != nil {
		return fmt.Errorf("user saving error: %w", err)
	}
	if err := a.SaveSession(ctx); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}
