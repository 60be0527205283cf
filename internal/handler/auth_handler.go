package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"noteful-server/internal/domain"
	"noteful-server/internal/service"
	"noteful-server/pkg/response"
	"noteful-server/pkg/token"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Login verifies credentials and returns the identity without issuing a
// token. The failure response is the same whether the username or the
// password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Verify(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid username or password")
			return
		}
		response.InternalError(w, "authentication failed")
		return
	}

	response.Success(w, user)
}

// CreateSession verifies credentials and returns a signed bearer token.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := h.authService.CreateSession(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid username or password")
			return
		}
		response.InternalError(w, "authentication failed")
		return
	}

	response.Success(w, session)
}

// RefreshSession exchanges a still-valid bearer token for a fresh one with a
// later expiry.
func (h *AuthHandler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(w, "missing bearer token")
		return
	}

	tokenResp, err := h.authService.RefreshSession(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			response.Unauthorized(w, "token expired")
		case errors.Is(err, token.ErrMalformed):
			response.Unauthorized(w, "malformed token")
		case errors.Is(err, token.ErrBadSignature):
			response.Unauthorized(w, "invalid token")
		default:
			response.InternalError(w, "failed to refresh session")
		}
		return
	}

	response.Success(w, tokenResp)
}

func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (*domain.CredentialsRequest, bool) {
	var req domain.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return nil, false
	}

	return &req, true
}
