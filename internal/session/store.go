// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

// Package session owns the authentication state machine of the running
// client: anonymous, authenticating, authenticated. It is the only writer
// of the credential pair and the serialized user in durable storage; the
// gateway reads tokens and rotates them through the refresh exchange.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cinelog/cinelog/internal/gateway"
	"github.com/cinelog/cinelog/internal/logging"
	"github.com/cinelog/cinelog/internal/models"
	"github.com/cinelog/cinelog/internal/token"
)

// State is the authentication state of the client.
type State string

// Session states. Authenticating is transient while a login or register
// round-trip is in flight.
const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Store is the session store. Constructed once at startup and shared by
// reference; safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	api    gateway.API
	tokens token.Store
	state  State
	user   *models.User
}

// New creates an anonymous session store. Call CheckAuth afterwards to
// restore a persisted session, and register HandleSessionExpired as the
// gateway's session-expired hook so forced logouts converge here.
func New(api gateway.API, tokens token.Store) *Store {
	return &Store{
		api:    api,
		tokens: tokens,
		state:  StateAnonymous,
	}
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the authenticated user, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether the session invariant holds: user and
// both tokens present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	user := s.user
	state := s.state
	s.mu.RUnlock()
	return state == StateAuthenticated && user != nil &&
		s.tokens.Access() != "" && s.tokens.Refresh() != ""
}

// Login exchanges credentials for a token pair, fetches the account profile
// and transitions the session to authenticated. On failure no session state
// survives beyond clearing the in-flight flag, and the gateway error is
// returned for the caller to display.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.setState(StateAuthenticating)

	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.setState(StateAnonymous)
		return err
	}

	if err := s.tokens.SetTokens(pair.Access, pair.Refresh); err != nil {
		s.setState(StateAnonymous)
		return fmt.Errorf("persist tokens: %w", err)
	}

	profile, err := s.api.Profile(ctx)
	if err != nil {
		// Half a session is worse than none: roll back to anonymous.
		_ = s.tokens.Clear()
		s.setState(StateAnonymous)
		return err
	}

	data, err := json.Marshal(profile.User)
	if err != nil {
		_ = s.tokens.Clear()
		s.setState(StateAnonymous)
		return fmt.Errorf("serialize user: %w", err)
	}
	if err := s.tokens.SetUser(data); err != nil {
		logging.Warn().Err(err).Msg("failed to persist user, session will not survive restart")
	}

	s.mu.Lock()
	user := profile.User
	s.user = &user
	s.state = StateAuthenticated
	s.mu.Unlock()

	logging.Info().Str("username", user.Username).Msg("logged in")
	return nil
}

// Register creates an account. Registration does not log the caller in;
// the created user is returned and the session stays anonymous.
func (s *Store) Register(ctx context.Context, req gateway.RegisterRequest) (*models.User, error) {
	s.setState(StateAuthenticating)
	user, err := s.api.Register(ctx, req)
	s.setState(StateAnonymous)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("username", user.Username).Msg("account registered")
	return user, nil
}

// Logout clears tokens, user and durable storage and returns the session
// to anonymous.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		logging.Warn().Err(err).Msg("failed to clear credentials on logout")
	}
	s.mu.Lock()
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()
	logging.Info().Msg("logged out")
}

// Refresh explicitly exchanges the refresh token for a new pair. It shares
// the gateway's serialized exchange, so an explicit refresh and a transparent
// 401-triggered one converge on the same token store mutation.
func (s *Store) Refresh(ctx context.Context) error {
	err := s.api.RefreshCredentials(ctx)
	if gateway.IsAuth(err) {
		s.HandleSessionExpired()
	}
	return err
}

// CheckAuth restores a persisted session at startup without a network
// round-trip. A stored token with a corrupt serialized user is treated as a
// non-fatal error resolved by a clean logout, never a crash.
func (s *Store) CheckAuth() {
	access := s.tokens.Access()
	data := s.tokens.User()

	if access == "" || len(data) == 0 {
		if access != "" || len(data) != 0 {
			// One half without the other is corrupt state.
			s.Logout()
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		logging.Warn().Err(err).Msg("stored user is corrupt, forcing logout")
		s.Logout()
		return
	}

	s.mu.Lock()
	s.user = &user
	s.state = StateAuthenticated
	s.mu.Unlock()
	logging.Debug().Str("username", user.Username).Msg("session restored from storage")
}

// HandleSessionExpired resets in-memory session state after the gateway has
// cleared the credentials. Register it as the gateway's session-expired hook.
func (s *Store) HandleSessionExpired() {
	s.mu.Lock()
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()
	logging.Info().Msg("session expired, please log in again")
}

// TokenExpiresSoon reports whether the access token expires within the given
// window. The token is parsed without signature verification; expiry is a
// refresh hint, not a trust decision. Unreadable tokens report true so the
// caller refreshes proactively.
func (s *Store) TokenExpiresSoon(window time.Duration) bool {
	access := s.tokens.Access()
	if access == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(access, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < window
}

// setState updates the session state under lock.
func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
