// Package session holds the signed-in user for one browsing session.
package session

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"unitrade_backend/internal/apiclient"
	"unitrade_backend/internal/storage"
	"unitrade_backend/models"
)

// TokenKey is the storage key of the bearer token.
const TokenKey = "auth_token"

// MinPasswordLength is the local password policy applied before registering.
const MinPasswordLength = 8

var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRequestFailed      = errors.New("an error occurred, please try again")
	ErrNotAuthenticated   = errors.New("sign in required")
)

// API is the remote credential check.
type API interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

type Session struct {
	api   API
	store storage.Store

	mu    sync.RWMutex
	user  *models.User
	token string
}

func New(api API, store storage.Store) *Session {
	return &Session{api: api, store: store}
}

// User returns the signed-in user, or nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.User() != nil
}

// Restore loads the stored token and resolves its user.
// A missing, rejected or unverifiable token leaves the session anonymous.
func (s *Session) Restore(ctx context.Context) {
	raw, ok, err := s.store.Get(TokenKey)
	if err != nil {
		log.Printf("Failed to read stored token: %v", err)
		return
	}
	token := strings.TrimSpace(string(raw))
	if !ok || token == "" {
		return
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		log.Printf("Stored token rejected: %v", err)
		s.clear()
		return
	}
	s.set(user, token)
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingFields
	}

	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return ErrInvalidCredentials
		}
		log.Printf("Login request failed: %v", err)
		return ErrRequestFailed
	}

	if err := s.store.Set(TokenKey, []byte(resp.Token)); err != nil {
		log.Printf("Failed to persist token: %v", err)
	}
	user := resp.User
	s.set(&user, resp.Token)
	return nil
}

// Register validates the input locally, creates the account and signs in.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := ValidateRegistration(name, email, password); err != nil {
		return err
	}

	_, err := s.api.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest &&
			strings.Contains(strings.ToLower(apiErr.Message), "already registered") {
			return ErrEmailTaken
		}
		log.Printf("Register request failed: %v", err)
		return ErrRequestFailed
	}
	return s.Login(ctx, email, password)
}

func (s *Session) Logout() {
	s.clear()
}

// ValidateRegistration applies the local sign-up rules.
func ValidateRegistration(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func (s *Session) set(user *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
}

func (s *Session) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(TokenKey); err != nil {
		log.Printf("Failed to clear stored token: %v", err)
	}
}
