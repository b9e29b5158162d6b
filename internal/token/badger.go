// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package token

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinelog/cinelog/internal/logging"
)

// Key prefixes for BadgerDB storage.
const (
	accessKey  = "auth:access"
	refreshKey = "auth:refresh"
	userKey    = "auth:user"
)

// BadgerStore implements Store using BadgerDB for durable storage, so a
// session survives process restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a BadgerDB-backed credential store. The db handle
// is shared with other stores; the caller owns its lifecycle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

var _ Store = (*BadgerStore)(nil)

// Access returns the access token, or empty when absent or unreadable.
func (s *BadgerStore) Access() string {
	return string(s.read(accessKey))
}

// Refresh returns the refresh token, or empty when absent or unreadable.
func (s *BadgerStore) Refresh() string {
	return string(s.read(refreshKey))
}

// User returns the serialized user, or nil when absent or unreadable.
func (s *BadgerStore) User() []byte {
	return s.read(userKey)
}

// read fetches a single key. Storage failures yield absent rather than an
// error; the caller treats a missing credential as "not logged in".
func (s *BadgerStore) read(key string) []byte {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		logging.Warn().Err(err).Str("key", key).Msg("credential read failed, treating as absent")
	}
	if err != nil {
		return nil
	}
	return out
}

// SetTokens stores both tokens in one transaction so a reader never observes
// a half-written pair.
func (s *BadgerStore) SetTokens(access, refresh string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(accessKey), []byte(access)); err != nil {
			return err
		}
		return txn.Set([]byte(refreshKey), []byte(refresh))
	})
}

// SetUser stores the serialized user.
func (s *BadgerStore) SetUser(data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKey), data)
	})
}

// Clear removes tokens and user in one transaction.
func (s *BadgerStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{accessKey, refreshKey, userKey} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
}
