//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type tokenResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	ID           string `json:"id"`
	MethodID     string `json:"methodId"`
	FocusMinutes int    `json:"focusMinutes"`
}

type summaryResponse struct {
	Streak         int     `json:"streak"`
	TodayMinutes   int     `json:"todayMinutes"`
	WeekAvgMinutes float64 `json:"weekAvgMinutes"`
	WeekHistory    []struct {
		Day          string `json:"day"`
		TotalMinutes int    `json:"totalMinutes"`
	} `json:"weekHistory"`
	YearHistory []struct {
		Period       string `json:"period"`
		TotalMinutes int    `json:"totalMinutes"`
	} `json:"yearHistory"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("KPOM_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	password := "e2e-password-1"

	// Signup issues a usable token
	var signup tokenResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/auth/signup", "", map[string]any{
		"name":     "E2E User",
		"email":    email,
		"password": password,
	}, &signup)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from signup, got %d", status)
	}
	if signup.Token == "" {
		t.Fatal("signup response missing token")
	}

	// Record two focus sessions
	for i := 0; i < 2; i++ {
		var session sessionResponse
		status = doJSON(t, http.MethodPost, baseURL+"/api/progress/session", signup.Token, map[string]any{
			"methodId":     "pomodoro",
			"focusMinutes": 25,
		}, &session)
		if status != http.StatusCreated {
			t.Fatalf("expected 201 from session write, got %d", status)
		}
		if session.ID == "" {
			t.Fatal("session response missing id")
		}
	}

	// Summary reflects both writes
	var summary summaryResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/progress/summary", signup.Token, nil, &summary)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from summary, got %d", status)
	}
	if summary.TodayMinutes != 50 {
		t.Errorf("expected todayMinutes 50, got %d", summary.TodayMinutes)
	}
	if summary.Streak < 1 {
		t.Errorf("expected streak >= 1, got %d", summary.Streak)
	}
	if len(summary.YearHistory) != 12 {
		t.Errorf("expected 12 year buckets, got %d", len(summary.YearHistory))
	}

	// Change password, then the old one must stop working
	newPassword := "e2e-password-2"
	status = doJSON(t, http.MethodPost, baseURL+"/api/auth/change-password", signup.Token, map[string]any{
		"currentPassword": password,
		"newPassword":     newPassword,
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from change-password, got %d", status)
	}

	status = doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 logging in with old password, got %d", status)
	}

	var relogin tokenResponse
	status = doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]any{
		"email":    email,
		"password": newPassword,
	}, &relogin)
	if status != http.StatusOK {
		t.Fatalf("expected 200 logging in with new password, got %d", status)
	}
	if relogin.Token == "" {
		t.Fatal("login response missing token")
	}
}

// TestE2EForgotPasswordHidesAccounts verifies that the reset endpoint
// answers identically for registered and unknown emails.
func TestE2EForgotPasswordHidesAccounts(t *testing.T) {
	baseURL := envOrDefault("KPOM_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-reset-%d@example.com", time.Now().UnixNano())
	status := doJSON(t, http.MethodPost, baseURL+"/api/auth/signup", "", map[string]any{
		"name":     "E2E Reset User",
		"email":    email,
		"password": "e2e-password-1",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from signup, got %d", status)
	}

	var registered, unknown messageResponse
	status = doJSON(t, http.MethodPost, baseURL+"/api/auth/forgot-password", "", map[string]any{
		"email":       email,
		"newPassword": "e2e-password-3",
	}, &registered)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for registered email, got %d", status)
	}

	status = doJSON(t, http.MethodPost, baseURL+"/api/auth/forgot-password", "", map[string]any{
		"email":       fmt.Sprintf("e2e-unknown-%d@example.com", time.Now().UnixNano()),
		"newPassword": "e2e-password-3",
	}, &unknown)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for unknown email, got %d", status)
	}

	if registered.Message != unknown.Message {
		t.Errorf("reset messages differ:\nregistered: %q\nunknown:    %q",
			registered.Message, unknown.Message)
	}
}

// TestE2EAuthRequired verifies the progress endpoints reject missing
// and malformed tokens.
func TestE2EAuthRequired(t *testing.T) {
	baseURL := envOrDefault("KPOM_BASE_URL", "http://localhost:8080")

	status := doJSON(t, http.MethodGet, baseURL+"/api/progress/summary", "", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", status)
	}

	status = doJSON(t, http.MethodGet, baseURL+"/api/progress/summary", "not-a-token", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 with garbage token, got %d", status)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}
