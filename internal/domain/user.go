package domain

import (
	"encoding/json"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullname,omitempty"`
	// Digest is stored but must be cleared before the user is written to any
	// response.
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest keeps its fields raw so the handler can tell a missing
// field from a non-string one and answer 422 accordingly.
type RegisterRequest struct {
	Username json.RawMessage `json:"username"`
	Password json.RawMessage `json:"password"`
	FullName json.RawMessage `json:"fullname"`
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
