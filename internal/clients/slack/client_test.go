package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

func newTestNotifier(t *testing.T, url string, maxRetries int) Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := New(log, Config{
		WebhookURL: url,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestPostRetriesAfter429(t *testing.T) {
	var calls int32
	var gotText atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotText.Store(payload.Text)

		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestNotifier(t, srv.URL, 3)

	start := time.Now()
	if err := c.Post(context.Background(), "New signup from Alex"); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 requests, got %d", n)
	}
	// Retry-After said 1s; the jittered sleep stays within 20%.
	if elapsed := time.Since(start); elapsed < 800*time.Millisecond {
		t.Fatalf("retry ignored Retry-After, slept only %v", elapsed)
	}
	if gotText.Load() != "New signup from Alex" {
		t.Fatalf("unexpected payload text: %v", gotText.Load())
	}
}

func TestPostGivesUpAtMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestNotifier(t, srv.URL, 1)

	err := c.Post(context.Background(), "hello")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected http 500 error, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected initial try plus 1 retry, got %d requests", n)
	}
}

func TestPostDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestNotifier(t, srv.URL, 3)

	err := c.Post(context.Background(), "hello")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected http 400 error, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("400 must not be retried, got %d requests", n)
	}
}
