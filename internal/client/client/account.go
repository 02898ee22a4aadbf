package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// Profile fetches the signed-in user. A denied answer clears the session
// without redirecting, so it doubles as a "am I signed in" probe.
func (c *HTTPClient) Profile(ctx context.Context) (models.User, error) {
	r := newRequest(http.MethodGet, pathProfile)
	r.skipRedirect = true

	env, err := call[models.User](ctx, c, r)
	if err != nil {
		return models.User{}, err
	}
	c.session.authenticate()
	return env.Data, nil
}

// UpdateProfile sends JSON, or a multipart form when an avatar is attached.
func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest, avatar *Upload) (models.User, error) {
	var (
		r   *request
		err error
	)
	if avatar != nil {
		r, err = multipartRequest(http.MethodPut, pathProfile, req.FormFields(), "avatar", avatar)
	} else {
		r, err = jsonRequest(http.MethodPut, pathProfile, req)
	}
	if err != nil {
		return models.User{}, err
	}

	env, err := call[models.User](ctx, c, r)
	if err != nil {
		return models.User{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	r, err := jsonRequest(http.MethodPut, pathChangePassword, req)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, r)
	return err
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, avatar Upload) (models.UploadAvatarResponse, error) {
	r, err := multipartRequest(http.MethodPost, pathAvatar, nil, "avatar", &avatar)
	if err != nil {
		return models.UploadAvatarResponse{}, err
	}
	env, err := call[models.UploadAvatarResponse](ctx, c, r)
	if err != nil {
		return models.UploadAvatarResponse{}, err
	}
	return env.Data, nil
}

func (c *HTTPClient) Sessions(ctx context.Context) ([]models.SessionInfo, error) {
	page, err := callList[models.SessionInfo](ctx, c, newRequest(http.MethodGet, pathMySessions), "sessions")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *HTTPClient) RevokeSession(ctx context.Context, sessionID string) error {
	r, err := jsonRequest(http.MethodPost, pathRevokeSession, models.RevokeSessionRequest{SessionID: sessionID})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, r)
	return err
}

// multipartRequest buffers the whole form so the request can be replayed.
func multipartRequest(method, path string, fields map[string]string, fileField string, file *Upload) (*request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(fileField, filepath.Base(file.Filename))
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	r := newRequest(method, path)
	r.body = buf.Bytes()
	r.contentType = w.FormDataContentType()
	return r, nil
}
