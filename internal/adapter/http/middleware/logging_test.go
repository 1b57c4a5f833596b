package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestLoggingMiddlewareEmitsRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := NewLoggingMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/a1", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line struct {
		RequestID string `json:"request_id"`
		Method    string `json:"method"`
		Path      string `json:"path"`
		Status    int    `json:"status"`
		Bytes     int    `json:"bytes"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}

	if line.Message != "request completed" {
		t.Fatalf("unexpected message: %q", line.Message)
	}

	if line.RequestID != "req-42" {
		t.Fatalf("expected request id to be carried, got %q", line.RequestID)
	}

	if line.Method != http.MethodGet || line.Path != "/api/v1/accounts/a1" {
		t.Fatalf("unexpected method/path: %s %s", line.Method, line.Path)
	}

	if line.Status != http.StatusNotFound {
		t.Fatalf("expected recorded status 404, got %d", line.Status)
	}

	if want := len(`{"error":"not found"}`); line.Bytes != want {
		t.Fatalf("expected %d bytes written, got %d", want, line.Bytes)
	}
}
