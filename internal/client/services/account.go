package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/dmitrijs2005/gophershop/internal/client/repositories/metadata"
)

// AccountService manages the signed-in user's profile and sessions.
type AccountService interface {
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, path string) (string, error)
	Sessions(ctx context.Context) ([]models.SessionInfo, error)
	RevokeSession(ctx context.Context, sessionID string) error
}

type accountService struct {
	client client.AccountAPI
	meta   metadata.Repository
}

func NewAccountService(c client.AccountAPI, meta metadata.Repository) AccountService {
	return &accountService{client: c, meta: meta}
}

// UpdateProfile sends a multipart form when req.AvatarPath names a file.
func (s *accountService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	var avatar *client.Upload
	if req.AvatarPath != "" {
		f, err := os.Open(req.AvatarPath)
		if err != nil {
			return models.User{}, fmt.Errorf("avatar error: %w", err)
		}
		defer f.Close()
		avatar = &client.Upload{Filename: req.AvatarPath, Content: f}
	}

	u, err := s.client.UpdateProfile(ctx, req, avatar)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile error: %w", err)
	}
	if err := metadata.SetJSON(ctx, s.meta, metadata.KeyCurrentUser, u); err != nil {
		return models.User{}, fmt.Errorf("user saving error: %w", err)
	}
	return u, nil
}

func (s *accountService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := s.client.ChangePassword(ctx, req); err != nil {
		return fmt.Errorf("change password error: %w", err)
	}
	return nil
}

// UploadAvatar uploads the file at path and returns the stored avatar URL.
func (s *accountService) UploadAvatar(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("avatar error: %w", err)
	}
	defer f.Close()

	resp, err := s.client.UploadAvatar(ctx, client.Upload{Filename: path, Content: f})
	if err != nil {
		return "", fmt.Errorf("upload avatar error: %w", err)
	}

	var u models.User
	ok, err := metadata.GetJSON(ctx, s.meta, metadata.KeyCurrentUser, &u)
	if err == nil && ok {
		u.Avatar = resp.Avatar
		if err := metadata.SetJSON(ctx, s.meta, metadata.KeyCurrentUser, u); err != nil {
			return "", fmt.Errorf("user saving error: %w", err)
		}
	}
	return resp.Avatar, nil
}

func (s *accountService) Sessions(ctx context.Context) ([]models.SessionInfo, error) {
	return s.client.Sessions(ctx)
}

func (s *accountService) RevokeSession(ctx context.Context, sessionID string) error {
	return s.client.RevokeSession(ctx, sessionID)
}
