package service

import (
	"errors"
	"testing"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/pkg/hash"
	"noteful-server/pkg/token"
)

func TestAuthService_Register(t *testing.T) {
	repo := newMockUserRepository()
	service := NewAuthService(repo, "test-secret", 15*time.Minute)

	tests := []struct {
		name     string
		username string
		password string
		fullName string
		wantErr  error
		setup    func()
	}{
		{
			name:     "successful registration",
			username: "newuser",
			password: "Password123!",
			fullName: "New User",
			setup:    func() {},
		},
		{
			name:     "duplicate username",
			username: "takenuser",
			password: "Password123!",
			wantErr:  ErrUsernameTaken,
			setup: func() {
				hashed, _ := hash.Hash("ExistingPass123!")
				repo.Create(&domain.User{
					ID:       "taken-id",
					Username: "takenuser",
					Password: hashed,
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.users = make(map[string]*domain.User)
			tt.setup()

			user, err := service.Register(tt.username, tt.password, tt.fullName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Register() unexpected error = %v", err)
				return
			}

			if user.Password != "" {
				t.Error("Register() returned user with digest")
			}

			stored, err := repo.FindByUsername(tt.username)
			if err != nil {
				t.Fatal("Register() user not created in repository")
			}
			if stored.Password == tt.password {
				t.Error("Register() stored the plaintext password")
			}
			if err := hash.Compare(stored.Password, tt.password); err != nil {
				t.Errorf("Register() stored digest does not verify: %v", err)
			}
		})
	}
}

func TestAuthService_Verify(t *testing.T) {
	repo := newMockUserRepository()
	service := NewAuthService(repo, "test-secret-key", 15*time.Minute)

	password := "UserPassword123!"
	hashedPassword, _ := hash.Hash(password)

	repo.Create(&domain.User{
		ID:       "test-user-id",
		Username: "alice",
		FullName: "Alice Example",
		Password: hashedPassword,
	})

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{
			name:     "correct credentials",
			username: "alice",
			password: password,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "WrongPassword",
			wantErr:  true,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: password,
			wantErr:  true,
		},
		{
			name:     "empty password",
			username: "alice",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Verify(tt.username, tt.password)

			if tt.wantErr {
				// Unknown username and wrong password must be the same
				// error, so neither factor leaks.
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("Verify() error = %v, want %v", err, ErrInvalidCredentials)
				}
				return
			}

			if err != nil {
				t.Errorf("Verify() unexpected error = %v", err)
				return
			}

			if user.Username != tt.username {
				t.Errorf("Verify() username = %q, want %q", user.Username, tt.username)
			}

			if user.Password != "" {
				t.Error("Verify() returned identity with digest")
			}
		})
	}
}

func TestAuthService_CreateSession(t *testing.T) {
	repo := newMockUserRepository()
	secret := "session-test-secret"
	service := NewAuthService(repo, secret, 15*time.Minute)

	password := "password123"
	hashedPassword, _ := hash.Hash(password)

	repo.Create(&domain.User{
		ID:       "session-user-id",
		Username: "alice",
		Password: hashedPassword,
	})

	session, err := service.CreateSession("alice", password)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if session.Token == "" {
		t.Fatal("CreateSession() returned empty token")
	}

	if session.ExpiresIn != int64(15*time.Minute.Seconds()) {
		t.Errorf("CreateSession() expiresIn = %v, want %v", session.ExpiresIn, 15*60)
	}

	if session.User.Password != "" {
		t.Error("CreateSession() returned user with digest")
	}

	claims, err := token.Validate(session.Token, secret)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}

	if claims.Subject != "alice" {
		t.Errorf("token subject = %q, want %q", claims.Subject, "alice")
	}

	if claims.User.ID != "session-user-id" {
		t.Errorf("token identity id = %q, want %q", claims.User.ID, "session-user-id")
	}

	if _, err := service.CreateSession("alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CreateSession() with bad password error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestAuthService_RefreshSession(t *testing.T) {
	repo := newMockUserRepository()
	secret := "refresh-test-secret"
	service := NewAuthService(repo, secret, 15*time.Minute)

	identity := token.Identity{ID: "refresh-user-id", Username: "alice"}

	valid, _ := token.Issue(identity, 15*time.Minute, secret)
	expired, _ := token.Issue(identity, -1*time.Hour, secret)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:  "valid token",
			token: valid,
		},
		{
			name:    "expired token",
			token:   expired,
			wantErr: token.ErrExpired,
		},
		{
			name:    "malformed token",
			token:   "invalid.token.here",
			wantErr: token.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.RefreshSession(tt.token)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RefreshSession() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("RefreshSession() unexpected error = %v", err)
				return
			}

			claims, err := token.Validate(resp.Token, secret)
			if err != nil {
				t.Fatalf("refreshed token does not validate: %v", err)
			}

			if claims.User != identity {
				t.Errorf("refreshed identity = %+v, want %+v", claims.User, identity)
			}
		})
	}
}
