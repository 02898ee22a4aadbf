package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// AuthResponse is returned by login. Tokens normally travel as http-only
// cookies; the body fields are only populated by backends that echo them.
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateProfileRequest is sent as JSON, or as a multipart form when
// AvatarPath names a file to upload alongside the fields.
type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      Gender `json:"gender,omitempty"`
	AvatarPath  string `json:"-"`
}

// FormFields returns the non-empty text fields for a multipart body.
func (r UpdateProfileRequest) FormFields() map[string]string {
	fields := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			fields[k] = v
		}
	}
	set("name", r.Name)
	set("phone", r.Phone)
	set("address", r.Address)
	set("dateOfBirth", r.DateOfBirth)
	set("gender", string(r.Gender))
	return fields
}

type SendVerificationEmailRequest struct {
	Email string `json:"email"`
}

type SendVerificationEmailResponse struct {
	Email     string `json:"email"`
	ExpiresIn string `json:"expiresIn"`
}

type VerifyAccountRequest struct {
	Email string
	Token string
}

type RevokeSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type SessionInfo struct {
	SessionID  string    `json:"sessionId"`
	DeviceName string    `json:"deviceName,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	Current    bool      `json:"isCurrent,omitempty"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

type UploadAvatarResponse struct {
	Avatar string `json:"avatar"`
}

// OAuthProvider names a social sign-in provider supported by the backend.
type OAuthProvider string

const (
	OAuthGoogle   OAuthProvider = "google"
	OAuthFacebook OAuthProvider = "facebook"
)

func (p OAuthProvider) Valid() bool {
	return p == OAuthGoogle || p == OAuthFacebook
}
