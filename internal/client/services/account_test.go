package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile_WithAvatarCachesUser(t *testing.T) {
	api := &fakeAPI{UpdateProfileRet: models.User{ID: 1, Name: "An"}}
	meta := metadata.NewSQLiteRepository(setupDB(t))
	svc := NewAccountService(api, meta)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	u, err := svc.UpdateProfile(ctx, models.UpdateProfileRequest{Name: "An", AvatarPath: path})
	require.NoError(t, err)
	assert.Equal(t, "An", u.Name)
	require.NotNil(t, api.LastAvatar)
	assert.Equal(t, path, api.LastAvatar.Filename)

	var cached models.User
	ok, err := metadata.GetJSON(ctx, meta, metadata.KeyCurrentUser, &cached)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "An", cached.Name)
}

func TestUpdateProfile_MissingAvatar(t *testing.T) {
	api := &fakeAPI{}
	svc := NewAccountService(api, metadata.NewSQLiteRepository(setupDB(t)))

	_, err := svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{AvatarPath: filepath.Join(t.TempDir(), "none.png")})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, api.LastAvatar)
}

func TestUploadAvatar_UpdatesCachedUser(t *testing.T) {
	api := &fakeAPI{UploadAvatarRet: models.UploadAvatarResponse{Avatar: "http://cdn/a.png"}}
	meta := metadata.NewSQLiteRepository(setupDB(t))
	svc := NewAccountService(api, meta)
	ctx := context.Background()
	require.NoError(t, metadata.SetJSON(ctx, meta, metadata.KeyCurrentUser, models.User{ID: 1}))

	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))

	url, err := svc.UploadAvatar(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/a.png", url)

	var cached models.User
	_, err = metadata.GetJSON(ctx, meta, metadata.KeyCurrentUser, &cached)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/a.png", cached.Avatar)
}

func TestSessions(t *testing.T) {
	api := &fakeAPI{SessionsRet: []models.SessionInfo{{SessionID: "s1", Current: true}}}
	svc := NewAccountService(api, metadata.NewSQLiteRepository(setupDB(t)))

	list, err := svc.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Current)
	require.NoError(t, svc.RevokeSession(context.Background(), "s1"))
	require.NoError(t, svc.ChangePassword(context.Background(), models.ChangePasswordRequest{}))
}
