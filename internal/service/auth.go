// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/kpom/kpom/internal/auth"
	"github.com/kpom/kpom/internal/metrics"
	"github.com/kpom/kpom/internal/model"
	"github.com/kpom/kpom/internal/repository"
)

// Auth service errors.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrEmailTaken    = errors.New("email already registered")
	// ErrInvalidCredentials covers wrong email and wrong password
	// alike so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the credential store the auth service depends on.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
}

// AuthService handles registration, login and credential changes.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenManager
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenManager, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and mints a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	if input.Name == "" {
		return nil, "", ErrNameRequired
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if err := validateNewPassword(input.Password); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Mint(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to mint token: %w", err)
	}

	s.metrics.IncSignup()
	return user, token, nil
}

// Login verifies credentials and mints a token. Wrong email and wrong
// password both yield ErrInvalidCredentials, with no distinction.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin("failure")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.metrics.IncLogin("failure")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to mint token: %w", err)
	}

	s.metrics.IncLogin("success")
	return user, token, nil
}

// ChangePassword verifies the current password before overwriting the
// credential with a fresh hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdateUserPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.metrics.IncPasswordChange()
	return nil
}

// ResetPassword overwrites the credential for the given email if it
// exists. It reports success whether or not the email is registered;
// an unknown email is not an error. This hides account existence from
// unauthenticated callers and is a deliberate contract, not a bug.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.metrics.IncPasswordReset()
	return nil
}

// validateNewPassword enforces bcrypt's input limits on new credentials.
func validateNewPassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return auth.ErrPasswordTooLong
	}
	return nil
}
