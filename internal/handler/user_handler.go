package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"noteful-server/internal/domain"
	"noteful-server/internal/middleware"
	"noteful-server/internal/service"
	"noteful-server/pkg/response"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// Register creates a new identity. Field-shape problems are 422s so the
// client can tell a malformed registration from a taken username (400).
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	username, ok := h.requireString(w, "username", req.Username)
	if !ok {
		return
	}
	password, ok := h.requireString(w, "password", req.Password)
	if !ok {
		return
	}

	fullName := ""
	if req.FullName != nil {
		if err := json.Unmarshal(req.FullName, &fullName); err != nil {
			response.UnprocessableEntity(w, "'fullname' must be a string")
			return
		}
		fullName = strings.TrimSpace(fullName)
	}

	if len(username) < 1 {
		response.UnprocessableEntity(w, "'username' must be at least 1 character long")
		return
	}
	if len(password) < 8 {
		response.UnprocessableEntity(w, "'password' must be at least 8 characters long")
		return
	}
	if len(password) > 72 {
		response.UnprocessableEntity(w, "'password' must be at most 72 characters long")
		return
	}

	user, err := h.authService.Register(username, password, fullName)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.BadRequest(w, "username already exists")
			return
		}
		response.InternalError(w, "failed to register user")
		return
	}

	response.CreatedAt(w, fmt.Sprintf("/users/%s", user.ID), user)
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		response.NotFound(w, "user not found")
		return
	}

	response.Success(w, user)
}

// requireString enforces presence, string-ness, and the no-edge-whitespace
// rule for a credential field.
func (h *UserHandler) requireString(w http.ResponseWriter, field string, raw json.RawMessage) (string, bool) {
	if raw == nil {
		response.UnprocessableEntity(w, fmt.Sprintf("Missing '%s' in request body", field))
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		response.UnprocessableEntity(w, fmt.Sprintf("'%s' must be a string", field))
		return "", false
	}

	if value != strings.TrimSpace(value) {
		response.UnprocessableEntity(w, fmt.Sprintf("'%s' cannot start or end with whitespace", field))
		return "", false
	}

	return value, true
}
