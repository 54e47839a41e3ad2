package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/gamedex/internal/shared"
)

// newTokenServer returns an httptest server acting as the Twitch token
// endpoint, plus a pointer to its request counter.
func newTokenServer(t *testing.T, expiresIn int, delay time.Duration) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if delay > 0 {
			time.Sleep(delay)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test_token",
			"token_type":   "bearer",
			"expires_in":   expiresIn,
		})
	}))

	return server, &calls
}

func TestTokenSource(t *testing.T) {
	t.Run("Caches Token Across Calls", func(t *testing.T) {
		server, calls := newTokenServer(t, 3600, 0)
		defer server.Close()

		tokens := NewTokenSource("id", "secret", server.URL, nil)

		for i := 0; i < 3; i++ {
			tok, err := tokens.Token(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tok != "test_token" {
				t.Errorf("expected test_token, got %s", tok)
			}
		}

		if got := calls.Load(); got != 1 {
			t.Errorf("expected 1 token request, got %d", got)
		}
	})

	t.Run("Single Flight Under Concurrent Cold Start", func(t *testing.T) {
		server, calls := newTokenServer(t, 3600, 30*time.Millisecond)
		defer server.Close()

		tokens := NewTokenSource("id", "secret", server.URL, nil)

		var wg sync.WaitGroup
		errs := make([]error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, errs[n] = tokens.Token(context.Background())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if got := calls.Load(); got != 1 {
			t.Errorf("expected exactly 1 underlying token request, got %d", got)
		}
	})

	t.Run("Refreshes Inside Expiry Margin", func(t *testing.T) {
		// expires_in below the 60s margin, so every call refreshes.
		server, calls := newTokenServer(t, 30, 0)
		defer server.Close()

		tokens := NewTokenSource("id", "secret", server.URL, nil)

		for i := 0; i < 2; i++ {
			if _, err := tokens.Token(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if got := calls.Load(); got != 2 {
			t.Errorf("expected 2 token requests, got %d", got)
		}
	})

	t.Run("Refresh Failure Evicts And Propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"invalid client"}`, http.StatusForbidden)
		}))
		defer server.Close()

		tokens := NewTokenSource("id", "bad_secret", server.URL, nil)

		_, err := tokens.Token(context.Background())
		if err == nil {
			t.Fatal("expected error from rejected credentials")
		}
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}

		if _, ok := tokens.cached(); ok {
			t.Error("failed refresh should leave no cached credential")
		}
	})

	t.Run("ForceRefresh Replaces Cached Token", func(t *testing.T) {
		server, calls := newTokenServer(t, 3600, 0)
		defer server.Close()

		tokens := NewTokenSource("id", "secret", server.URL, nil)

		if _, err := tokens.Token(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := tokens.ForceRefresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := calls.Load(); got != 2 {
			t.Errorf("expected 2 token requests after forced refresh, got %d", got)
		}
	})
}
