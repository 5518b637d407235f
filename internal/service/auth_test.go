package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kpom/kpom/internal/auth"
	"github.com/kpom/kpom/internal/model"
	"github.com/kpom/kpom/internal/repository"
)

// fakeUserStore is an in-memory UserStore for unit tests.
type fakeUserStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
	failAll bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

var errStoreDown = errors.New("store unavailable")

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	if f.failAll {
		return errStoreDown
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	u := *user
	f.byID[u.ID] = &u
	f.byEmail[u.Email] = &u
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateUserPassword(_ context.Context, userID, hash string) error {
	if f.failAll {
		return errStoreDown
	}
	u, ok := f.byID[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	return NewAuthService(store, auth.NewTokenManager("test-secret", "kpom-test"), nil)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token on registration")
	}
	if user.PasswordHash == "hunter2hunter2" {
		t.Fatal("password must not be stored in plaintext")
	}

	_, token, err = svc.Login(ctx, "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token on login")
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "longenough"}, ErrNameRequired},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "longenough"}, ErrInvalidEmail},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Password: "short"}, ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter2hunter2"}
	if _, _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, _, err := svc.Register(ctx, input)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_LoginNoEnumeration(t *testing.T) {
	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter2hunter2",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "alice@example.com", "wrong-password")
	_, _, wrongEmail := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")

	// Wrong email and wrong password must be indistinguishable.
	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(wrongEmail, ErrInvalidCredentials) {
		t.Errorf("wrong email: expected ErrInvalidCredentials, got %v", wrongEmail)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong current password is rejected.
	err = svc.ChangePassword(ctx, user.ID, "wrong-current", "new-password-1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	// Correct current password succeeds and the new one works.
	if err := svc.ChangePassword(ctx, user.ID, "hunter2hunter2", "new-password-1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "new-password-1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password should no longer work, got %v", err)
	}
}

func TestAuthService_ResetPassword_NoEnumeration(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter2hunter2",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Registered email: succeeds and actually rotates the credential.
	if err := svc.ResetPassword(ctx, "alice@example.com", "fresh-password"); err != nil {
		t.Fatalf("reset for registered email failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "fresh-password"); err != nil {
		t.Errorf("login after reset failed: %v", err)
	}

	// Unregistered email: identical outcome, no error.
	if err := svc.ResetPassword(ctx, "nobody@example.com", "fresh-password"); err != nil {
		t.Errorf("reset for unknown email must not error, got %v", err)
	}
}

func TestAuthService_StoreFailureSurfaces(t *testing.T) {
	store := newFakeUserStore()
	store.failAll = true
	svc := newAuthService(store)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "whatever-pass")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("infrastructure failure must not masquerade as bad credentials, got %v", err)
	}
}
