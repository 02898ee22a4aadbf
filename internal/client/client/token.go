package client

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenCookie is the name of the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// RefreshTokenCookie is the name of the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// TokenInfo is what the client can read from its access token.
type TokenInfo struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

var ErrNoToken = errors.New("no access token")

// InspectToken decodes a JWT access token without verifying its signature.
// The backend is the only party able to verify it; the client only reads
// claims for display.
func InspectToken(raw string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	return info, nil
}

func tokenFromJar(j *Jar, u *url.URL) (TokenInfo, error) {
	for _, c := range j.Cookies(u) {
		if c.Name == AccessTokenCookie {
			return InspectToken(c.Value)
		}
	}
	return TokenInfo{}, ErrNoToken
}
