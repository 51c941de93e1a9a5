// Package http contains the storefront's HTTP handlers and router.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/utafrali/glamstore/internal/domain"
	"github.com/utafrali/glamstore/internal/service"
	"github.com/utafrali/glamstore/internal/session"
	"github.com/utafrali/glamstore/pkg/httputil"
	"github.com/utafrali/glamstore/pkg/validator"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	service *service.AuthService
	tokens  *session.TokenManager
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, tokens *session.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		tokens:  tokens,
		logger:  logger,
	}
}

// RegisterRequest is the JSON request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=5,max=32"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the JSON request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account. Phone is only known when
// the full account record is at hand, so session-derived views omit it.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sess := SessionFromContext(r.Context())

	user, err := h.service.Register(r.Context(), sess, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sess := SessionFromContext(r.Context())

	user, err := h.service.Login(r.Context(), sess, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	if err := h.service.Logout(r.Context(), sess); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.tokens.ClearCookie(w)

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	httputil.WriteJSON(w, http.StatusOK, UserResponse{
		ID:   sess.UserID,
		Name: sess.UserName,
		Role: sess.Role,
	})
}
