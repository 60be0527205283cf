package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrBadSignature = errors.New("token signature is invalid")
	ErrExpired      = errors.New("token is expired")
	ErrMalformed    = errors.New("token is malformed")
)

// Identity is the snapshot of a user embedded in every token. Verification
// trusts this snapshot as it was at issuance time; it is never re-read from
// the store, so record changes do not invalidate tokens already in flight.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullname,omitempty"`
}

type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Issue signs a time-bounded HS256 token carrying the identity snapshot.
// The subject is the login username.
func Issue(identity Identity, expiration time.Duration, secret string) (string, error) {
	now := time.Now()

	claims := &Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
// Failures are distinguished: ErrExpired, ErrBadSignature, ErrMalformed.
func Validate(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}

	return claims, nil
}

// Refresh re-issues a token for the same identity snapshot with a fresh
// issued-at/expires-at pair. The supplied token must still be valid; this is
// a sliding-session extension, not re-authentication.
func Refresh(tokenString string, expiration time.Duration, secret string) (string, error) {
	claims, err := Validate(tokenString, secret)
	if err != nil {
		return "", err
	}

	return Issue(claims.User, expiration, secret)
}
