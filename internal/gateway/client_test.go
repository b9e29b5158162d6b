// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/models"
	"github.com/cinelog/cinelog/internal/token"
)

// newTestClient builds a gateway client pointed at the given test server
// with an in-memory token store pre-seeded with a credential pair.
func newTestClient(serverURL string) (*Client, token.Store) {
	tokens := token.NewMemoryStore()
	_ = tokens.SetTokens("access-1", "refresh-1")
	client := NewClient(config.APIConfig{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	}, tokens)
	return client, tokens
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestClientAttachesBearerAndHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer access-1" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer access-1")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"user": map[string]any{"username": "alice"}})
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.User.Username != "alice" {
		t.Errorf("username = %q, want alice", profile.User.Username)
	}
}

func TestClientOmitsBearerWhenAnonymous(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"access": "a", "refresh": "r"})
	}))
	defer server.Close()

	tokens := token.NewMemoryStore()
	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, tokens)

	if _, err := client.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestClientErrorNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "server error with error field",
			status:      http.StatusInternalServerError,
			body:        `{"error": "database unavailable"}`,
			wantKind:    KindServer,
			wantStatus:  500,
			wantMessage: "database unavailable",
		},
		{
			name:        "server error with message field",
			status:      http.StatusBadRequest,
			body:        `{"message": "invalid filter"}`,
			wantKind:    KindServer,
			wantStatus:  400,
			wantMessage: "invalid filter",
		},
		{
			name:        "server error with unparseable body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantKind:    KindServer,
			wantStatus:  502,
			wantMessage: genericErrMessage,
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"error": "movie not found"}`,
			wantKind:    KindServer,
			wantStatus:  404,
			wantMessage: "movie not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := newTestClient(server.URL)
			_, err := client.Genres(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", apiErr.Kind, tt.wantKind)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	t.Parallel()

	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.Genres(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != networkErrMessage {
		t.Errorf("Message = %q, want fixed connectivity message", apiErr.Message)
	}
}

func TestClientDecodeFailureIsClientError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"username": truncated`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.Profile(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindClient {
		t.Fatalf("expected client error, got %v", err)
	}
}

func TestClientRefreshRetryOn401(t *testing.T) {
	t.Parallel()

	var refreshCalls, profileCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode refresh body: %v", err)
		}
		if body["refresh"] != "refresh-1" {
			t.Errorf("refresh body token = %q, want refresh-1", body["refresh"])
		}
		writeJSON(t, w, http.StatusOK, map[string]string{"access": "access-2", "refresh": "refresh-2"})
	})
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		profileCalls.Add(1)
		if r.Header.Get("Authorization") == "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer access-2" {
			t.Errorf("retry Authorization = %q, want Bearer access-2", got)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"user": map[string]any{"username": "alice"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, tokens := newTestClient(server.URL)
	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.User.Username != "alice" {
		t.Errorf("username = %q", profile.User.Username)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if got := profileCalls.Load(); got != 2 {
		t.Errorf("profile calls = %d, want 2 (original + retry)", got)
	}
	if tokens.Access() != "access-2" || tokens.Refresh() != "refresh-2" {
		t.Errorf("tokens = (%q, %q), want rotated pair", tokens.Access(), tokens.Refresh())
	}
}

func TestClientRefreshFailureClearsSession(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "refresh token expired"})
	})
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, tokens := newTestClient(server.URL)
	var expired atomic.Bool
	client.OnSessionExpired(func() { expired.Store(true) })

	_, err := client.Profile(context.Background())
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if tokens.Access() != "" || tokens.Refresh() != "" {
		t.Error("tokens not cleared after failed refresh")
	}
	if !expired.Load() {
		t.Error("session-expired hook not invoked")
	}
}

func TestClientSecond401IsFinal(t *testing.T) {
	t.Parallel()

	var profileCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"access": "access-2", "refresh": "refresh-2"})
	})
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		profileCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.Profile(context.Background())

	// The retried request's 401 surfaces as a server error, never a loop.
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected server error with status 401, got %v", err)
	}
	if got := profileCalls.Load(); got != 2 {
		t.Errorf("profile calls = %d, want exactly 2", got)
	}
}

func TestClientLogin401DoesNotTriggerRefresh(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]string{"access": "a", "refresh": "r"})
	})
	mux.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.Login(context.Background(), "alice", "wrong-password")

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		t.Fatalf("expected server error for bad credentials, got %v", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if got := refreshCalls.Load(); got != 0 {
		t.Errorf("refresh calls = %d, want 0", got)
	}
}

func TestClientConcurrent401sShareOneRefresh(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond) // hold the exchange open
		writeJSON(t, w, http.StatusOK, map[string]string{"access": "access-2", "refresh": "refresh-2"})
	})
	mux.HandleFunc("/profile/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"user": map[string]any{"username": "alice"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, _ := newTestClient(server.URL)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Profile(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d: %v", i, err)
		}
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
}

func TestClientValidationRejectsBadRequests(t *testing.T) {
	t.Parallel()

	// Validation fails locally before any request is sent.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "login without password",
			call: func() error {
				_, err := client.Login(ctx, "alice", "")
				return err
			},
		},
		{
			name: "register with short password",
			call: func() error {
				_, err := client.Register(ctx, RegisterRequest{
					Username: "alice", Email: "alice@example.com", Password: "short",
				})
				return err
			},
		},
		{
			name: "rating above scale",
			call: func() error {
				_, err := client.AddRating(ctx, RatingRequest{MovieID: 1, Rating: 11})
				return err
			},
		},
		{
			name: "review without text",
			call: func() error {
				_, err := client.AddReview(ctx, ReviewRequest{MovieID: 1})
				return err
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.call()
			var apiErr *Error
			if !errors.As(err, &apiErr) || apiErr.Kind != KindClient {
				t.Fatalf("expected client error, got %v", err)
			}
		})
	}
}

func TestClientSearchOmitsZeroFilters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("query"); got != "inception" {
			t.Errorf("query = %q", got)
		}
		if got := query.Get("year"); got != "2010" {
			t.Errorf("year = %q", got)
		}
		for _, absent := range []string{"genre", "min_rating", "max_runtime", "page"} {
			if query.Has(absent) {
				t.Errorf("zero-valued filter %q present in query string", absent)
			}
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"results": []any{}})
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	_, err := client.SearchMovies(context.Background(), models.SearchFilters{Query: "inception", Year: 2010})
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}
}
