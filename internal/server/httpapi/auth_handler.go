package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkalinins/commportal/internal/logging"
	"github.com/mkalinins/commportal/internal/portal"
	"github.com/mkalinins/commportal/internal/server/auth"
)

// AuthService is the slice of the auth service the handlers need.
type AuthService interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
	Verify2FA(ctx context.Context, code string) (string, portal.User, error)
	Verify(ctx context.Context, token string) (portal.User, error)
}

type AuthHandler struct {
	service AuthService
	log     logging.Logger
}

func NewAuthHandler(service AuthService, log logging.Logger) *AuthHandler {
	if log == nil {
		log = logging.NewNop()
	}
	return &AuthHandler{service: service, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Requires2FA bool         `json:"requires2FA"`
	Token       string       `json:"token,omitempty"`
	User        *portal.User `json:"user,omitempty"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.log.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := loginResponse{Requires2FA: result.Requires2FA}
	if !result.Requires2FA {
		resp.Token = result.Token
		user := result.User
		resp.User = &user
	}
	writeJSON(w, http.StatusOK, resp)
}

type verify2FARequest struct {
	Code string `json:"code"`
}

type verify2FAResponse struct {
	Token string      `json:"token"`
	User  portal.User `json:"user"`
}

// Verify2FA handles POST /api/auth/verify-2fa.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req verify2FARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.service.Verify2FA(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCode) {
			writeError(w, http.StatusUnauthorized, "invalid verification code")
			return
		}
		h.log.Error(r.Context(), "2fa verification failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, verify2FAResponse{Token: token, User: user})
}

// Verify handles GET /api/auth/verify. It runs behind RequireAuth, so the
// user is already resolved.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so there is
// nothing to revoke; the endpoint exists so clients can announce sign-out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := UserFromContext(r.Context()); ok {
		h.log.Info(r.Context(), "user signed out", "email", user.Email)
	}
	w.WriteHeader(http.StatusNoContent)
}
