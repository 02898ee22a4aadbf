package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

// Register prompts for the account fields and creates the account. The
// backend mails a verification token that `verify` consumes.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	u, err := a.svc.Auth.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password, ConfirmPassword: confirm})
	if err != nil {
		return err
	}
	a.printf("Account %s created. Enter the token from the verification email with 'verify %s <token>'.\n", u.Email, u.Email)
	return nil
}

// Login signs in with email and password. The email may be given as an
// argument; the password is always read from the terminal.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		v, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
		email = v
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	u, err := a.svc.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.setUser(&u)
	a.printf("Signed in as %s\n", displayName(u))
	return nil
}

// OAuth prints the provider sign-in address for a browser, then adopts the
// session cookies the browser received.
func (a *App) OAuth(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("oauth <google|facebook>")
	}
	url, err := a.svc.Auth.OAuthURL(models.OAuthProvider(args[0]))
	if err != nil {
		return err
	}
	a.printf("Open this address in a browser and sign in:\n  %s\n", url)

	access, err := getSimpleText(a.reader, "Paste the accessToken cookie value", a.out)
	if err != nil {
		return err
	}
	refresh, err := getSimpleText(a.reader, "Paste the refreshToken cookie value (optional)", a.out)
	if err != nil {
		return err
	}

	u, err := a.svc.Auth.CompleteOAuth(ctx, access, refresh)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.printf("The backend did not accept these cookies.\n")
			return nil
		}
		return err
	}
	a.setUser(&u)
	a.printf("Signed in as %s\n", displayName(u))
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("verify <email> <token>")
	}
	if err := a.svc.Auth.VerifyAccount(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.printf("Account verified, you can login now.\n")
	return nil
}

func (a *App) Resend(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("resend <email>")
	}
	resp, err := a.svc.Auth.SendVerificationEmail(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Verification email sent to %s, valid for %s.\n", resp.Email, resp.ExpiresIn)
	return nil
}

// WhoAmI asks the backend who is signed in. A denied session is reported
// here instead of through the sign-in redirect.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.svc.Auth.FetchProfile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.setUser(nil)
			a.printf("Not signed in.\n")
			return nil
		}
		if errors.Is(err, client.ErrUnavailable) {
			if cached := a.currentUser(); cached != nil {
				printUser(a, *cached)
			}
		}
		return err
	}
	a.setUser(&u)
	printUser(a, u)
	return nil
}

func (a *App) Session(_ context.Context, _ []string) error {
	state, info := a.svc.Auth.Session()
	a.printf("State: %s\n", state)
	if !info.ExpiresAt.IsZero() {
		left := time.Until(info.ExpiresAt).Round(time.Second)
		if info.Expired(time.Now()) {
			a.printf("Access token expired at %s (refreshed on next request)\n", info.ExpiresAt.Format(time.DateTime))
		} else {
			a.printf("Access token valid until %s (%s left)\n", info.ExpiresAt.Format(time.DateTime), left)
		}
	}
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.svc.Auth.Logout(ctx)
	a.setUser(nil)
	if err != nil {
		return err
	}
	a.printf("Signed out.\n")
	return nil
}
