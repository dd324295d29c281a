package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &GeminiClient{
		apiKey:  "test-key",
		model:   "gemini-2.0-flash",
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func TestGeminiClient_Generate(t *testing.T) {
	t.Run("returns candidate text", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
				t.Errorf("Expected api key header, got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Dear Asha, ..."}]}}]}`))
		})

		out, err := client.Generate(context.Background(), "write an email")
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if out != "Dear Asha, ..." {
			t.Errorf("Unexpected output: %q", out)
		}
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		calls := 0
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"bad prompt","status":"INVALID_ARGUMENT"}}`))
		})

		if _, err := client.Generate(context.Background(), "x"); err == nil {
			t.Fatal("Expected error for 400 response")
		}
		if calls != 1 {
			t.Errorf("Expected a single attempt for a client error, got %d", calls)
		}
	})

	t.Run("server errors are retried", func(t *testing.T) {
		calls := 0
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
		})
		// Shrink the backoff so the retry path stays fast under test.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		out, err := client.Generate(ctx, "x")
		if err != nil {
			t.Fatalf("Expected success after retry, got %v", err)
		}
		if out != "ok" || calls != 2 {
			t.Errorf("Expected second attempt to succeed, out=%q calls=%d", out, calls)
		}
	})

	t.Run("no candidates is an error", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})
		if _, err := client.Generate(context.Background(), "x"); err == nil {
			t.Fatal("Expected error when the model returns no candidates")
		}
	})

	t.Run("missing api key fails fast", func(t *testing.T) {
		client := &GeminiClient{client: http.DefaultClient}
		if _, err := client.Generate(context.Background(), "x"); err == nil {
			t.Fatal("Expected error when no api key is configured")
		}
	})
}
