package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/invoke" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInvoke_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"summary_text":"stable","risk_score":12}`)
	c := NewClient(Config{BaseURL: srv.URL})

	result, err := c.Invoke(context.Background(), "summarize", Schema{
		Type:     "object",
		Required: []string{"summary_text"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["summary_text"] != "stable" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestInvoke_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `{}`)
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Invoke(context.Background(), "summarize", Schema{Type: "object"})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestInvoke_TransportError(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	_, err := c.Invoke(context.Background(), "summarize", Schema{Type: "object"})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestInvoke_MissingRequiredProperty(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"summary_text":"stable"}`)
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Invoke(context.Background(), "summarize", Schema{
		Type:     "object",
		Required: []string{"summary_text", "risk_score"},
	})
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestInvoke_NotJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `not json`)
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Invoke(context.Background(), "summarize", Schema{Type: "object"})
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestInvoke_ClientError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"error":"bad prompt"}`)
	c := NewClient(Config{BaseURL: srv.URL})

	_, err := c.Invoke(context.Background(), "summarize", Schema{Type: "object"})
	if err == nil {
		t.Fatal("expected error for 4xx status")
	}
	if errors.Is(err, ErrServiceUnavailable) {
		t.Error("4xx should not map to ErrServiceUnavailable")
	}
}
