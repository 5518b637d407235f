package timer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	clientTimeout         = 30 * time.Second
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 15 * time.Second
)

// newHTTPClient creates an HTTP client tuned for short API calls.
// It does not follow redirects.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// HTTPRecorder posts completed sessions to the Kpom API.
type HTTPRecorder struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPRecorder creates a recorder targeting the API at baseURL,
// authenticating with the given bearer token.
func NewHTTPRecorder(baseURL, token string) *HTTPRecorder {
	return &HTTPRecorder{
		baseURL: baseURL,
		token:   token,
		client:  newHTTPClient(),
	}
}

// RecordSession posts one completed focus session.
func (r *HTTPRecorder) RecordSession(ctx context.Context, methodID string, focusMinutes int) error {
	payload, err := json.Marshal(map[string]any{
		"methodId":     methodID,
		"focusMinutes": focusMinutes,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/api/progress/session", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("User-Agent", "Kpom-Timer/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post session: unexpected status %d", resp.StatusCode)
	}
	return nil
}
