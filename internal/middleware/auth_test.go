package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kpom/kpom/internal/auth"
)

const testSecret = "middleware-test-secret"

func newAuthMiddleware() func(http.Handler) http.Handler {
	return Auth(AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens: auth.NewTokenManager(testSecret, "kpom-test"),
	})
}

// identityEcho writes the authenticated user id, or "none".
var identityEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		userID = "none"
	}
	_, _ = w.Write([]byte(userID))
})

func TestAuth_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, "kpom-test")
	token, err := tokens.Mint("user-42", "bob@example.com")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/progress/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newAuthMiddleware()(identityEcho).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "user-42" {
		t.Errorf("expected user id in context, got %q", rec.Body.String())
	}
}

func TestAuth_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/progress/summary", nil)
	rec := httptest.NewRecorder()

	newAuthMiddleware()(identityEcho).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing token, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	// Craft a token that expired an hour ago, signed with the right secret.
	claims := jwt.MapClaims{
		"user_id": "user-42",
		"email":   "bob@example.com",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/progress/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newAuthMiddleware()(identityEcho).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuth_NonBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/progress/summary", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	newAuthMiddleware()(identityEcho).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-bearer auth, got %d", rec.Code)
	}
}
