// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

// Package collections owns the four user-relevant movie collections:
// favorites (server-synced cache), watchlist (local-only), recently viewed
// (local-only, capped) and search history (local-only, capped). Local-only
// collections persist to durable client storage and rehydrate at startup;
// favorites are always reloaded from the server.
package collections

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cinelog/cinelog/internal/gateway"
	"github.com/cinelog/cinelog/internal/logging"
	"github.com/cinelog/cinelog/internal/models"
)

// Collection caps. Oldest entries are evicted beyond these.
const (
	MaxRecentlyViewed = 50
	MaxSearchHistory  = 20
)

// Durable storage keys for the persisted collections. Favorites are
// deliberately absent: the server is their source of truth.
const (
	watchlistKey = "collections:watchlist"
	recentKey    = "collections:recently_viewed"
	historyKey   = "collections:search_history"
)

// Store is the collection store. Constructed once at startup; safe for
// concurrent use. A nil db keeps the local collections ephemeral.
type Store struct {
	mu  sync.RWMutex
	api gateway.API
	db  *badger.DB

	favorites      []models.FavoriteEntry
	watchlist      []models.WatchlistEntry
	recentlyViewed []models.RecentlyViewedEntry
	searchHistory  []string

	// suggestions indexes search history for prefix autocomplete.
	suggestions *SuggestionIndex
}

// New creates a collection store and rehydrates the persisted collections
// from durable storage.
func New(api gateway.API, db *badger.DB) *Store {
	s := &Store{
		api:         api,
		db:          db,
		suggestions: NewSuggestionIndex(),
	}
	s.load()
	return s
}

// LoadFavorites fetches the full favorites list from the server and
// replaces the local cache wholesale. Stale local entries not present
// server-side are dropped.
func (s *Store) LoadFavorites(ctx context.Context) error {
	favorites, err := s.api.Favorites(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.favorites = favorites
	s.mu.Unlock()
	return nil
}

// AddToFavorites adds a movie to the server favorites. The local cache is
// mutated only after the server confirms, so cache and server never diverge
// on failure; the original error is re-raised for the caller to display.
func (s *Store) AddToFavorites(ctx context.Context, movie models.MovieSummary) error {
	entry, err := s.api.AddFavorite(ctx, movie)
	if err != nil {
		logging.Warn().Err(err).Int("movie_id", movie.ID).Msg("could not add favorite")
		return err
	}
	s.mu.Lock()
	s.favorites = append(s.favorites, *entry)
	s.mu.Unlock()
	return nil
}

// RemoveFromFavorites removes a movie from the server favorites. A movie id
// absent from the cache is a safe no-op: no network call, no error.
func (s *Store) RemoveFromFavorites(ctx context.Context, movieID int) error {
	s.mu.RLock()
	favoriteID := 0
	found := false
	for i := range s.favorites {
		if s.favorites[i].MovieID == movieID {
			favoriteID = s.favorites[i].ID
			found = true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		return nil
	}

	if err := s.api.RemoveFavorite(ctx, favoriteID); err != nil {
		logging.Warn().Err(err).Int("movie_id", movieID).Msg("could not remove favorite")
		return err
	}

	s.mu.Lock()
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.MovieID != movieID {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
	s.mu.Unlock()
	return nil
}

// IsFavorite reports whether the movie is in the cached favorites list.
// It never touches the network, so presentation code can call it per-row.
func (s *Store) IsFavorite(movieID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.favorites {
		if s.favorites[i].MovieID == movieID {
			return true
		}
	}
	return false
}

// Favorites returns a copy of the cached favorites list.
func (s *Store) Favorites() []models.FavoriteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FavoriteEntry(nil), s.favorites...)
}

// AddToWatchlist adds a movie to the local watchlist. Adding a movie that
// is already present is a no-op; the return value distinguishes "added"
// from "already present" so callers can phrase their feedback.
func (s *Store) AddToWatchlist(movie models.MovieSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.watchlist {
		if s.watchlist[i].MovieID == movie.ID {
			return false
		}
	}

	s.watchlist = append(s.watchlist, models.WatchlistEntry{
		MovieID:     movie.ID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		AddedAt:     time.Now(),
	})
	s.persist(watchlistKey, s.watchlist)
	return true
}

// RemoveFromWatchlist removes a movie from the local watchlist.
func (s *Store) RemoveFromWatchlist(movieID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.watchlist[:0]
	for _, w := range s.watchlist {
		if w.MovieID != movieID {
			kept = append(kept, w)
		}
	}
	s.watchlist = kept
	s.persist(watchlistKey, s.watchlist)
}

// Watchlist returns a copy of the local watchlist.
func (s *Store) Watchlist() []models.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.WatchlistEntry(nil), s.watchlist...)
}

// AddToRecentlyViewed records a movie detail visit: any prior occurrence is
// removed, the movie is front-inserted, and the sequence is truncated to the
// most recent MaxRecentlyViewed entries.
func (s *Store) AddToRecentlyViewed(movie models.MovieSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.RecentlyViewedEntry, 0, len(s.recentlyViewed)+1)
	kept = append(kept, models.RecentlyViewedEntry{
		MovieID:     movie.ID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseDate: movie.ReleaseDate,
		ViewedAt:    time.Now(),
	})
	for _, r := range s.recentlyViewed {
		if r.MovieID != movie.ID {
			kept = append(kept, r)
		}
	}
	if len(kept) > MaxRecentlyViewed {
		kept = kept[:MaxRecentlyViewed]
	}
	s.recentlyViewed = kept
	s.persist(recentKey, s.recentlyViewed)
}

// RecentlyViewed returns a copy of the recently-viewed sequence,
// most recent first.
func (s *Store) RecentlyViewed() []models.RecentlyViewedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RecentlyViewedEntry(nil), s.recentlyViewed...)
}

// AddToSearchHistory records a search query: blank input is ignored, a prior
// identical entry is removed, the query is front-inserted and the sequence
// truncated to MaxSearchHistory entries.
func (s *Store) AddToSearchHistory(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, len(s.searchHistory)+1)
	kept = append(kept, query)
	for _, q := range s.searchHistory {
		if q != query {
			kept = append(kept, q)
		}
	}
	if len(kept) > MaxSearchHistory {
		evicted := kept[MaxSearchHistory:]
		for _, q := range evicted {
			s.suggestions.Delete(q)
		}
		kept = kept[:MaxSearchHistory]
	}
	s.searchHistory = kept
	s.suggestions.Insert(query)
	s.persist(historyKey, s.searchHistory)
}

// SearchHistory returns a copy of the search history, most recent first.
func (s *Store) SearchHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.searchHistory...)
}

// SuggestSearches returns past queries matching the given prefix, most
// frequently searched first.
func (s *Store) SuggestSearches(prefix string, limit int) []string {
	return s.suggestions.Autocomplete(prefix, limit)
}

// ClearAll resets all four collections and removes their durable-storage
// representation.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = nil
	s.watchlist = nil
	s.recentlyViewed = nil
	s.searchHistory = nil
	s.suggestions.Clear()

	if s.db == nil {
		return
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{watchlistKey, recentKey, historyKey} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Msg("failed to clear persisted collections")
	}
}

// persist serializes one collection to durable storage. Persistence
// failures are logged, not raised: the in-memory copy stays authoritative
// for local-only collections. Callers hold s.mu.
func (s *Store) persist(key string, value any) {
	if s.db == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("failed to serialize collection")
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("failed to persist collection")
	}
}

// load rehydrates the persisted collections at startup. Corrupt or missing
// entries leave the corresponding collection empty.
func (s *Store) load() {
	if s.db == nil {
		return
	}
	s.loadKey(watchlistKey, &s.watchlist)
	s.loadKey(recentKey, &s.recentlyViewed)
	s.loadKey(historyKey, &s.searchHistory)
	for i := len(s.searchHistory) - 1; i >= 0; i-- {
		s.suggestions.Insert(s.searchHistory[i])
	}
}

func (s *Store) loadKey(key string, out any) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		logging.Warn().Err(err).Str("key", key).Msg("failed to load collection, starting empty")
	}
}
