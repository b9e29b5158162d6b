// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

// Package token holds the access/refresh credential pair and the serialized
// user in durable client storage. It carries no business logic beyond
// get/set/clear; the session store owns the credential lifecycle and the
// gateway reads tokens on every authenticated call.
package token

import "sync"

// Store is the credential storage contract. Reads never fail: when a value
// is unset or the underlying storage is unavailable, reads yield absent
// (empty string / nil) rather than an error.
type Store interface {
	// Access returns the access token, or empty when absent.
	Access() string

	// Refresh returns the refresh token, or empty when absent.
	Refresh() string

	// User returns the serialized user, or nil when absent.
	User() []byte

	// SetTokens stores a new credential pair. Both values are written
	// atomically so a concurrent reader never observes a half-written pair.
	SetTokens(access, refresh string) error

	// SetUser stores the serialized user.
	SetUser(data []byte) error

	// Clear removes tokens and user from storage.
	Clear() error
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    []byte
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Access returns the stored access token.
func (s *MemoryStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// Refresh returns the stored refresh token.
func (s *MemoryStore) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// User returns the stored serialized user.
func (s *MemoryStore) User() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetTokens stores a new credential pair.
func (s *MemoryStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

// SetUser stores the serialized user.
func (s *MemoryStore) SetUser(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = data
	return nil
}

// Clear removes all stored credentials.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.user = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
