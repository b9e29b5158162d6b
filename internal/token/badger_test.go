// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package token

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(newTestDB(t))

	if store.Access() != "" || store.Refresh() != "" || store.User() != nil {
		t.Fatal("fresh store should have no credentials")
	}

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if err := store.SetUser([]byte(`{"username":"alice"}`)); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	if got := store.Access(); got != "access-1" {
		t.Errorf("Access = %q", got)
	}
	if got := store.Refresh(); got != "refresh-1" {
		t.Errorf("Refresh = %q", got)
	}
	if got := string(store.User()); got != `{"username":"alice"}` {
		t.Errorf("User = %q", got)
	}
}

func TestBadgerStoreOverwrite(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(newTestDB(t))

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if err := store.SetTokens("access-2", "refresh-2"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	if got := store.Access(); got != "access-2" {
		t.Errorf("Access = %q, want rotated token", got)
	}
	if got := store.Refresh(); got != "refresh-2" {
		t.Errorf("Refresh = %q, want rotated token", got)
	}
}

func TestBadgerStoreClear(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(newTestDB(t))

	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if err := store.SetUser([]byte("user")); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Access() != "" || store.Refresh() != "" || store.User() != nil {
		t.Error("credentials survive Clear")
	}

	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on empty store: %v", err)
	}
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := badger.DefaultOptions(dir).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	store := NewBadgerStore(db)
	if err := store.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close badger: %v", err)
	}

	db, err = badger.Open(opts)
	if err != nil {
		t.Fatalf("reopen badger: %v", err)
	}
	defer func() { _ = db.Close() }()

	reopened := NewBadgerStore(db)
	if got := reopened.Access(); got != "access-1" {
		t.Errorf("Access after reopen = %q, want access-1", got)
	}
}
