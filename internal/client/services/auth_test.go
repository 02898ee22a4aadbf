package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (AuthService, *fakeAPI, metadata.Repository) {
	t.Helper()
	api := &fakeAPI{}
	meta := metadata.NewSQLiteRepository(setupDB(t))
	return NewAuthService(api, meta), api, meta
}

func TestLogin_StoresUserAndCookies(t *testing.T) {
	svc, api, meta := newAuth(t)
	ctx := context.Background()
	api.LoginRet = models.AuthResponse{User: models.User{ID: 1, Email: "an@example.com"}}

	u, err := svc.Login(ctx, "  an@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", u.Email)
	assert.Equal(t, "an@example.com", api.LastLogin.Email)

	cur, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, int64(1), cur.ID)

	var saved []client.SavedCookie
	ok, err := metadata.GetJSON(ctx, meta, metadata.KeyCookies, &saved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, saved, 2)
}

func TestLogin_ErrorIsWrapped(t *testing.T) {
	svc, api, _ := newAuth(t)
	api.LoginErr = &client.APIError{StatusCode: 401, Message: "Wrong password"}

	_, err := svc.Login(context.Background(), "an@example.com", "bad")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, err.Error(), "login error")

	cur, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLogout_ClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	svc, api, _ := newAuth(t)
	ctx := context.Background()
	api.LoginRet = models.AuthResponse{User: models.User{ID: 1}}
	_, err := svc.Login(ctx, "a", "b")
	require.NoError(t, err)

	api.LogoutErr = client.ErrUnavailable
	err = svc.Logout(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)

	cur, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
	assert.Equal(t, client.LoggedOut, api.State())

	restored, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestLogout_DeniedRemoteIsNotAnError(t *testing.T) {
	svc, api, _ := newAuth(t)
	api.LogoutErr = &client.APIError{StatusCode: 401}
	require.NoError(t, svc.Logout(context.Background()))
}

func TestFetchProfile(t *testing.T) {
	svc, api, meta := newAuth(t)
	ctx := context.Background()

	api.ProfileRet = models.User{ID: 5, Name: "Binh"}
	u, err := svc.FetchProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Binh", u.Name)
	assert.Equal(t, client.Authenticated, api.State())

	api.ProfileErr = &client.APIError{StatusCode: 401}
	_, err = svc.FetchProfile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	raw, err := meta.Get(ctx, metadata.KeyCurrentUser)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestFetchProfile_UnavailableKeepsCachedUser(t *testing.T) {
	svc, api, meta := newAuth(t)
	ctx := context.Background()
	require.NoError(t, metadata.SetJSON(ctx, meta, metadata.KeyCurrentUser, models.User{ID: 2}))

	api.ProfileErr = client.ErrUnavailable
	_, err := svc.FetchProfile(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)

	cur, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, int64(2), cur.ID)
}

func TestRestoreSession(t *testing.T) {
	svc, api, meta := newAuth(t)
	ctx := context.Background()

	u, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, client.LoggedOut, api.State())

	require.NoError(t, metadata.SetJSON(ctx, meta, metadata.KeyCookies, []client.SavedCookie{{Name: "accessToken", Value: "x"}}))
	require.NoError(t, metadata.SetJSON(ctx, meta, metadata.KeyCurrentUser, models.User{ID: 9}))

	u, err = svc.RestoreSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, client.Authenticated, api.State())
	assert.Equal(t, []client.SavedCookie{{Name: "accessToken", Value: "x"}}, api.SessionCookies())

	state, info := svc.Session()
	assert.Equal(t, client.Authenticated, state)
	assert.Equal(t, "1", info.Subject)
}

func TestCompleteOAuth(t *testing.T) {
	svc, api, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.CompleteOAuth(ctx, " ", "")
	require.ErrorIs(t, err, client.ErrNoToken)

	api.ProfileRet = models.User{ID: 3, Email: "g@example.com"}
	u, err := svc.CompleteOAuth(ctx, "acc", "ref")
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", u.Email)
	assert.Equal(t, []client.SavedCookie{
		{Name: client.AccessTokenCookie, Value: "acc"},
		{Name: client.RefreshTokenCookie, Value: "ref"},
	}, api.SessionCookies())
}

func TestPingAndPassthroughs(t *testing.T) {
	svc, api, _ := newAuth(t)
	ctx := context.Background()

	require.NoError(t, svc.Ping(ctx))
	api.PingErr = client.ErrUnavailable
	require.True(t, errors.Is(svc.Ping(ctx), client.ErrUnavailable))

	url, err := svc.OAuthURL(models.OAuthFacebook)
	require.NoError(t, err)
	assert.Contains(t, url, "facebook")

	resp, err := svc.SendVerificationEmail(ctx, " an@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", resp.Email)

	api.RegisterRet = models.User{ID: 11}
	u, err := svc.Register(ctx, models.RegisterRequest{Email: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), u.ID)
}
