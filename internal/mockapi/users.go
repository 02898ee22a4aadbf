package mockapi

import (
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func (s *Server) setSessionCookies(w http.ResponseWriter, access, refresh string) {
	// The access cookie outlives its token so an expired token still reaches
	// the server and is answered with 410 rather than 401.
	maxAge := int(s.refreshTTL.Seconds())
	for name, value := range map[string]string{accessCookie: access, refreshCookie: refresh} {
		http.SetCookie(w, &http.Cookie{
			Name: name, Value: value, Path: "/", MaxAge: maxAge,
			HttpOnly: true, SameSite: http.SameSiteLaxMode,
		})
	}
}

func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{accessCookie, refreshCookie} {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
}

// issueSession opens a session for acc and mints its token pair. Must be
// called with mu held.
func (s *Server) issueSession(r *http.Request, acc *account) (models.AuthResponse, error) {
	now := s.now()
	sess := &session{
		id:        newOpaqueToken(12),
		userID:    acc.ID,
		device:    r.UserAgent(),
		ip:        r.RemoteAddr,
		createdAt: now,
	}
	s.store.sessions[sess.id] = sess
	return s.mintTokens(acc, sess.id)
}

// mintTokens must be called with mu held.
func (s *Server) mintTokens(acc *account, sessionID string) (models.AuthResponse, error) {
	now := s.now()
	access, err := GenerateToken(acc.ID, acc.Email, sessionID, s.secret, s.accessTTL, now)
	if err != nil {
		return models.AuthResponse{}, err
	}
	refresh := newOpaqueToken(32)
	s.store.refresh[refresh] = refreshToken{userID: acc.ID, sessionID: sessionID, expires: now.Add(s.refreshTTL)}
	return models.AuthResponse{User: acc.User, AccessToken: access, RefreshToken: refresh, SessionID: sessionID}, nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = append(fields["name"], "Name is required")
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = append(fields["email"], "Email is invalid")
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = append(fields["password"], "Password must be at least 6 characters")
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		fields["confirmPassword"] = append(fields["confirmPassword"], "Passwords do not match")
	}
	if len(fields) > 0 {
		invalid(w, "Validation failed", fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.store.mu.Lock()
	if s.store.accountByEmail(req.Email) != nil {
		s.store.mu.Unlock()
		fail(w, http.StatusConflict, "Email already exists!")
		return
	}
	now := s.now()
	acc := &account{
		User: models.User{
			ID: s.store.id(), Name: strings.TrimSpace(req.Name), Email: normalizeEmail(req.Email),
			Phone: req.Phone, Address: req.Address, Role: "customer", CreatedAt: now, UpdatedAt: now,
		},
		passwordHash: hash,
		verifyToken:  newOpaqueToken(16),
	}
	s.store.accounts[acc.ID] = acc
	s.store.byEmail[acc.Email] = acc.ID
	user, token := acc.User, acc.verifyToken
	s.store.mu.Unlock()

	s.logger.Info(r.Context(), "verification token issued", "email", user.Email, "token", token)
	ok(w, http.StatusCreated, "Register successfully! Please verify your email.", user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accountByEmail(req.Email)
	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
		fail(w, http.StatusUnauthorized, "Your email or password is incorrect!")
		return
	}
	if !acc.verified {
		fail(w, http.StatusForbidden, "Your account is not active! Please verify your email.")
		return
	}

	resp, err := s.issueSession(r, acc)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.setSessionCookies(w, resp.AccessToken, resp.RefreshToken)
	ok(w, http.StatusOK, "Login successfully!", resp)
}

// logout ends the session named by either cookie. It never fails, so a
// client with a stale session can still sign out.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	if c, err := r.Cookie(refreshCookie); err == nil {
		if rt, found := s.store.refresh[c.Value]; found {
			s.store.dropSession(rt.sessionID)
		}
	}
	if c, err := r.Cookie(accessCookie); err == nil {
		// An expired token still names its session.
		if claims, err := ParseToken(c.Value, s.secret, s.now); err == nil {
			s.store.dropSession(claims.SessionID)
		}
	}
	s.store.mu.Unlock()

	clearSessionCookies(w)
	ok(w, http.StatusOK, "Logout successfully!", nil)
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil || c.Value == "" {
		fail(w, http.StatusUnauthorized, "Refresh token not found. Please login.")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	rt, found := s.store.refresh[c.Value]
	if !found {
		fail(w, http.StatusUnauthorized, "Refresh token is invalid. Please login.")
		return
	}
	delete(s.store.refresh, c.Value)
	if rt.expires.Before(s.now()) {
		s.store.dropSession(rt.sessionID)
		fail(w, http.StatusUnauthorized, "Refresh token expired. Please login.")
		return
	}
	acc := s.store.accounts[rt.userID]
	if _, live := s.store.sessions[rt.sessionID]; !live || acc == nil {
		fail(w, http.StatusUnauthorized, "Session has been revoked.")
		return
	}

	resp, err := s.mintTokens(acc, rt.sessionID)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.setSessionCookies(w, resp.AccessToken, resp.RefreshToken)
	ok(w, http.StatusOK, "Refresh token successfully!", map[string]string{"accessToken": resp.AccessToken})
}

func (s *Server) sendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req models.SendVerificationEmailRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	acc := s.store.accountByEmail(req.Email)
	if acc == nil {
		s.store.mu.Unlock()
		fail(w, http.StatusNotFound, "Account not found!")
		return
	}
	if acc.verified {
		s.store.mu.Unlock()
		fail(w, http.StatusConflict, "Your account is already active!")
		return
	}
	acc.verifyToken = newOpaqueToken(16)
	email, token := acc.Email, acc.verifyToken
	s.store.mu.Unlock()

	s.logger.Info(r.Context(), "verification token issued", "email", email, "token", token)
	ok(w, http.StatusOK, "Verification email sent!", models.SendVerificationEmailResponse{Email: email, ExpiresIn: "15m"})
}

func (s *Server) verifyAccount(w http.ResponseWriter, r *http.Request) {
	email, token := r.URL.Query().Get("email"), r.URL.Query().Get("token")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accountByEmail(email)
	if acc == nil {
		fail(w, http.StatusNotFound, "Account not found!")
		return
	}
	if acc.verified {
		ok(w, http.StatusOK, "Your account is already active!", nil)
		return
	}
	if token == "" || token != acc.verifyToken {
		fail(w, http.StatusBadRequest, "Verification token is invalid!")
		return
	}
	acc.verified = true
	acc.verifyToken = ""
	ok(w, http.StatusOK, "Verify account successfully!", nil)
}

// oauth stands in for the provider round trip: it signs in a per-provider
// demo account straight away and shows the tokens so they can be pasted
// into the CLI.
func (s *Server) oauth(w http.ResponseWriter, r *http.Request) {
	provider := models.OAuthProvider(chi.URLParam(r, "provider"))
	if !provider.Valid() {
		fail(w, http.StatusNotFound, "Unknown provider")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	email := string(provider) + ".user@gophershop.local"
	acc := s.store.accountByEmail(email)
	if acc == nil {
		now := s.now()
		acc = &account{
			User:     models.User{ID: s.store.id(), Name: "OAuth " + string(provider), Email: email, Role: "customer", CreatedAt: now, UpdatedAt: now},
			verified: true,
		}
		s.store.accounts[acc.ID] = acc
		s.store.byEmail[email] = acc.ID
	}

	resp, err := s.issueSession(r, acc)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.setSessionCookies(w, resp.AccessToken, resp.RefreshToken)
	ok(w, http.StatusOK, "Login successfully!", resp)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accounts[userID(r)]
	if acc == nil {
		fail(w, http.StatusNotFound, "Account not found!")
		return
	}
	ok(w, http.StatusOK, "Get profile successfully!", acc.User)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var (
		req    models.UpdateProfileRequest
		avatar string
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			fail(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		req.Name = r.FormValue("name")
		req.Phone = r.FormValue("phone")
		req.Address = r.FormValue("address")
		req.DateOfBirth = r.FormValue("dateOfBirth")
		req.Gender = models.Gender(r.FormValue("gender"))
		if _, hdr, err := r.FormFile("avatar"); err == nil {
			avatar = avatarURL(hdr.Filename)
		}
	} else if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accounts[userID(r)]
	if acc == nil {
		fail(w, http.StatusNotFound, "Account not found!")
		return
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&acc.Name, strings.TrimSpace(req.Name))
	set(&acc.Phone, req.Phone)
	set(&acc.Address, req.Address)
	set(&acc.Avatar, avatar)
	acc.UpdatedAt = s.now()
	ok(w, http.StatusOK, "Update profile successfully!", acc.User)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fields := map[string][]string{}
	if len(req.NewPassword) < minPasswordLength {
		fields["newPassword"] = []string{"Password must be at least 6 characters"}
	}
	if req.ConfirmPassword != req.NewPassword {
		fields["confirmPassword"] = []string{"Passwords do not match"}
	}
	if len(fields) > 0 {
		invalid(w, "Validation failed", fields)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accounts[userID(r)]
	if acc == nil {
		fail(w, http.StatusNotFound, "Account not found!")
		return
	}
	if acc.passwordHash != nil && bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.CurrentPassword)) != nil {
		invalid(w, "Current password is incorrect!", map[string][]string{"currentPassword": {"Current password is incorrect"}})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	acc.passwordHash = hash

	// Other devices have to sign in again.
	current := sessionID(r)
	for id, sess := range s.store.sessions {
		if sess.userID == acc.ID && id != current {
			s.store.dropSession(id)
		}
	}
	ok(w, http.StatusOK, "Change password successfully!", nil)
}

func (s *Server) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	_, hdr, err := r.FormFile("avatar")
	if err != nil {
		invalid(w, "Avatar is required", map[string][]string{"avatar": {"Avatar is required"}})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accounts[userID(r)]
	if acc == nil {
		fail(w, http.StatusNotFound, "Account not found!")
		return
	}
	acc.Avatar = avatarURL(hdr.Filename)
	acc.UpdatedAt = s.now()
	ok(w, http.StatusOK, "Upload avatar successfully!", models.UploadAvatarResponse{Avatar: acc.Avatar})
}

func avatarURL(filename string) string {
	return "https://cdn.gophershop.local/avatars/" + newOpaqueToken(4) + "-" + filepath.Base(filename)
}

func (s *Server) mySessions(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	uid, current := userID(r), sessionID(r)
	list := []models.SessionInfo{}
	for _, sess := range s.store.sessions {
		if sess.userID != uid {
			continue
		}
		list = append(list, models.SessionInfo{
			SessionID:  sess.id,
			DeviceName: sess.device,
			IPAddress:  sess.ip,
			CreatedAt:  sess.createdAt,
			Current:    sess.id == current,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	ok(w, http.StatusOK, "Get sessions successfully!", models.SessionsResponse{Sessions: list})
}

func (s *Server) revokeSession(w http.ResponseWriter, r *http.Request) {
	var req models.RevokeSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sess, found := s.store.sessions[req.SessionID]
	if !found || sess.userID != userID(r) {
		fail(w, http.StatusNotFound, "Session not found!")
		return
	}
	s.store.dropSession(sess.id)
	ok(w, http.StatusOK, "Revoke session successfully!", nil)
}
