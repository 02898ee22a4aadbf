package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// EditProfile prompts for every profile field, keeping the current value
// on an empty answer. An avatar file may be attached in the same request.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	cur := models.User{}
	if u := a.currentUser(); u != nil {
		cur = *u
	}

	var (
		req models.UpdateProfileRequest
		err error
	)
	if req.Name, err = GetTextOrKeep(a.reader, "Name", cur.Name, a.out); err != nil {
		return err
	}
	if req.Phone, err = GetTextOrKeep(a.reader, "Phone", cur.Phone, a.out); err != nil {
		return err
	}
	if req.Address, err = GetTextOrKeep(a.reader, "Address", cur.Address, a.out); err != nil {
		return err
	}
	if req.DateOfBirth, err = getSimpleText(a.reader, "Date of birth, YYYY-MM-DD (optional)", a.out); err != nil {
		return err
	}
	gender, err := getSimpleText(a.reader, "Gender: male, female or other (optional)", a.out)
	if err != nil {
		return err
	}
	req.Gender = models.Gender(gender)
	if req.AvatarPath, err = getSimpleText(a.reader, "Avatar file (optional)", a.out); err != nil {
		return err
	}

	u, err := a.svc.Account.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	a.setUser(&u)
	a.printf("Profile updated.\n")
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("avatar <file>")
	}
	url, err := a.svc.Account.UploadAvatar(ctx, args[0])
	if err != nil {
		return err
	}
	if u := a.currentUser(); u != nil {
		updated := *u
		updated.Avatar = url
		a.setUser(&updated)
	}
	a.printf("Avatar uploaded: %s\n", url)
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}

	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next, ConfirmPassword: confirm}
	if err := a.svc.Account.ChangePassword(ctx, req); err != nil {
		return err
	}
	a.printf("Password changed. Other devices have been signed out.\n")
	return nil
}

func (a *App) Sessions(ctx context.Context, _ []string) error {
	list, err := a.svc.Account.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No active sessions.\n")
		return nil
	}
	for _, s := range list {
		marker := " "
		if s.Current {
			marker = "*"
		}
		a.printf("%s %s  %-20s %-15s %s\n", marker, s.SessionID, s.DeviceName, s.IPAddress, s.CreatedAt.Local().Format(time.DateTime))
	}
	return nil
}

func (a *App) Revoke(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("revoke <sessionId>")
	}
	if err := a.svc.Account.RevokeSession(ctx, args[0]); err != nil {
		return err
	}
	a.printf("Session %s revoked.\n", args[0])
	return nil
}

func printUser(a *App, u models.User) {
	a.printf("%s <%s>\n", displayName(u), u.Email)
	if u.Phone != "" {
		a.printf("Phone:   %s\n", u.Phone)
	}
	if u.Address != "" {
		a.printf("Address: %s\n", u.Address)
	}
	if u.Avatar != "" {
		a.printf("Avatar:  %s\n", u.Avatar)
	}
}
