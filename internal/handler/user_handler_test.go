package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"
	"noteful-server/internal/service"
)

type stubUserRepository struct {
	users map[string]*domain.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[string]*domain.User)}
}

// Create and the finders copy, like a store that serializes documents:
// callers mutating what they passed in or got back must not touch the
// stored record.
func (s *stubUserRepository) Create(user *domain.User) error {
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *stubUserRepository) FindByID(id string) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		found := *user
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) FindByUsername(username string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepository) UsernameExists(username string) (bool, error) {
	_, err := s.FindByUsername(username)
	return err == nil, nil
}

func newRegisterFixture() (*UserHandler, *stubUserRepository) {
	repo := newStubUserRepository()
	authService := service.NewAuthService(repo, "handler-test-secret", 15*time.Minute)
	userService := service.NewUserService(repo)
	return NewUserHandler(authService, userService), repo
}

func postUsers(h *UserHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	return rec
}

func TestRegisterFieldValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid registration",
			body:       `{"username":"alice","password":"password123","fullname":"Alice Example"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing username",
			body:       `{"password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing password",
			body:       `{"username":"alice"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "non-string username",
			body:       `{"username":1231231,"password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "non-string password",
			body:       `{"username":"alice","password":12345678}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "username with leading whitespace",
			body:       `{"username":" alice","password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "password with trailing whitespace",
			body:       `{"username":"alice","password":"password123 "}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "empty username",
			body:       `{"username":"","password":"password123"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "seven character password",
			body:       `{"username":"alice","password":"1234567"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "eight character password",
			body:       `{"username":"alice","password":"12345678"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "seventy-two character password",
			body:       `{"username":"alice","password":"` + strings.Repeat("a", 72) + `"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "seventy-three character password",
			body:       `{"username":"alice","password":"` + strings.Repeat("a", 73) + `"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newRegisterFixture()
			rec := postUsers(h, tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRegisterSuccessResponse(t *testing.T) {
	h, repo := newRegisterFixture()

	rec := postUsers(h, `{"username":"alice","password":"password123","fullname":"Alice Example"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/users/") {
		t.Errorf("Location = %q, want /users/{id}", loc)
	}

	if strings.Contains(rec.Body.String(), "password") {
		t.Error("registration response leaks the digest field")
	}

	stored, err := repo.FindByUsername("alice")
	if err != nil {
		t.Fatal("user was not stored")
	}
	if stored.Password == "password123" {
		t.Error("stored password is plaintext")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, _ := newRegisterFixture()

	if rec := postUsers(h, `{"username":"alice","password":"password123"}`); rec.Code != http.StatusCreated {
		t.Fatalf("first registration status = %d", rec.Code)
	}

	rec := postUsers(h, `{"username":"alice","password":"different456"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate registration status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
