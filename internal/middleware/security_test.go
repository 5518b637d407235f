package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func applySecurity(t *testing.T, cfg SecurityConfig) http.Header {
	t.Helper()

	h := Security(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/progress/summary", nil))
	return rec.Header()
}

func TestSecurity_ProductionHeaders(t *testing.T) {
	headers := applySecurity(t, SecurityConfig{IsDevelopment: false})

	want := map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              "DENY",
		"Referrer-Policy":              "strict-origin-when-cross-origin",
		"Content-Security-Policy":      "default-src 'none'; frame-ancestors 'none'",
		"Strict-Transport-Security":    "max-age=31536000; includeSubDomains; preload",
		"Cache-Control":                "no-store",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Cross-Origin-Resource-Policy": "same-origin",
	}

	for name, value := range want {
		if got := headers.Get(name); got != value {
			t.Errorf("%s = %q, want %q", name, got, value)
		}
	}
}

func TestSecurity_NoHSTSInDevelopment(t *testing.T) {
	headers := applySecurity(t, SecurityConfig{IsDevelopment: true})

	if got := headers.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Strict-Transport-Security = %q in development, want unset", got)
	}
	if got := headers.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestMaxBodySize(t *testing.T) {
	drain := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("body within limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/progress/session", strings.NewReader(`{"methodId":"pomodoro"}`))
		rec := httptest.NewRecorder()

		MaxBodySize(1024)(drain).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("declared length over limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/progress/session", strings.NewReader(strings.Repeat("x", 64)))
		req.ContentLength = 64
		rec := httptest.NewRecorder()

		MaxBodySize(16)(drain).ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
	})
}
