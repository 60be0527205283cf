package service

import (
	"errors"
	"fmt"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"
	"noteful-server/pkg/hash"
	"noteful-server/pkg/token"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo        repository.UserRepository
	tokenSecret     string
	tokenExpiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokenSecret string, tokenExp time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokenSecret:     tokenSecret,
		tokenExpiration: tokenExp,
	}
}

// Register creates a new identity with a bcrypt digest. Length and
// whitespace rules are enforced at the handler; this layer owns uniqueness
// and hashing.
func (s *AuthService) Register(username, password, fullName string) (*domain.User, error) {
	usernameExists, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if usernameExists {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := hash.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		FullName:  fullName,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Password = ""
	return user, nil
}

// Verify confirms a username/password pair and returns the identity with
// the digest stripped. Unknown username and wrong password both come back
// as ErrInvalidCredentials.
func (s *AuthService) Verify(username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := hash.Compare(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

// CreateSession verifies credentials and issues a signed token embedding the
// identity snapshot.
func (s *AuthService) CreateSession(username, password string) (*domain.SessionResponse, error) {
	user, err := s.Verify(username, password)
	if err != nil {
		return nil, err
	}

	signed, err := token.Issue(snapshot(user), s.tokenExpiration, s.tokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.SessionResponse{
		User:      user,
		Token:     signed,
		ExpiresIn: int64(s.tokenExpiration.Seconds()),
	}, nil
}

// RefreshSession re-issues a token for the same identity snapshot without
// re-checking the password. The old token must still be valid.
func (s *AuthService) RefreshSession(tokenString string) (*domain.TokenResponse, error) {
	signed, err := token.Refresh(tokenString, s.tokenExpiration, s.tokenSecret)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		Token:     signed,
		ExpiresIn: int64(s.tokenExpiration.Seconds()),
	}, nil
}

func snapshot(user *domain.User) token.Identity {
	return token.Identity{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
	}
}
