package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/meetverdict/errors"
)

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/bot/abc/" {
			t.Errorf("expected /api/v1/bot/abc/, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token secret" {
			t.Errorf("expected token auth, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "meetverdict/") {
			t.Errorf("expected default user agent, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/", Auth: TokenAuth("secret")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/v1/bot/abc/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "abc") {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["meeting_url"] != "https://meet.google.com/abc-defg-hij" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "bot",
		Body:   map[string]string{"meeting_url": "https://meet.google.com/abc-defg-hij"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestClient_Do_AbsoluteURLAndNoAuthOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		if r.URL.Query().Get("sig") != "x" {
			t.Errorf("expected signed query to survive, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: "https://provider.invalid", Auth: TokenAuth("secret")})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL + "/t.json?sig=x", Auth: NoAuth()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "[]" {
		t.Errorf("unexpected body %q", resp.Body)
	}
}

func TestClient_Do_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusUnauthorized, ErrCodeAuth},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusBadRequest, ErrCodeClient},
		{http.StatusBadGateway, ErrCodeServer},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer srv.Close()

			c, _ := New(Config{BaseURL: srv.URL})
			resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			if resp == nil || resp.StatusCode != tc.status {
				t.Fatalf("expected response with status %d, got %+v", tc.status, resp)
			}
			e, ok := AsError(err)
			if !ok {
				t.Fatalf("expected *Error, got %v", err)
			}
			if e.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, e.Code)
			}
			if !IsStatus(err) {
				t.Error("expected IsStatus to be true")
			}
		})
	}
}

func TestClient_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(Config{BaseURL: url})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	e, ok := AsError(err)
	if !ok || e.Code != ErrCodeConnection {
		t.Fatalf("expected connection error, got %v", err)
	}
	if IsStatus(err) {
		t.Error("connection errors carry no status")
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestError_AppError(t *testing.T) {
	upstream := ClassifyStatusCode(http.StatusUnauthorized, []byte(`{"detail":"bad token"}`)).AppError("recall")
	if upstream.Code != apperrors.ErrCodeUpstream || upstream.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("unexpected app error %+v", upstream)
	}
	body, ok := upstream.Details["body"].(map[string]any)
	if !ok || body["detail"] != "bad token" {
		t.Errorf("expected parsed json body, got %v", upstream.Details["body"])
	}

	text := ClassifyStatusCode(http.StatusInternalServerError, []byte("oops")).AppError("recall")
	if text.Details["body"] != "oops" {
		t.Errorf("expected text body, got %v", text.Details["body"])
	}

	timeout := NewTimeoutError(context.DeadlineExceeded).AppError("recall")
	if timeout.Code != apperrors.ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", timeout.Code)
	}
}

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected zero timeout to be invalid")
	}
}

func TestBodyValue(t *testing.T) {
	if BodyValue(nil) != nil {
		t.Error("expected nil for empty body")
	}
	if BodyValue([]byte("plain")) != "plain" {
		t.Error("expected text fallback")
	}
	if _, ok := BodyValue([]byte(`[1]`)).([]any); !ok {
		t.Error("expected decoded array")
	}
}
