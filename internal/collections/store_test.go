// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package collections

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinelog/cinelog/internal/gateway"
	"github.com/cinelog/cinelog/internal/models"
)

// fakeAPI satisfies gateway.API for the favorites calls the store makes.
type fakeAPI struct {
	gateway.API

	favorites    []models.FavoriteEntry
	favoritesErr error

	addResult *models.FavoriteEntry
	addErr    error
	addCalls  int

	removeErr   error
	removeCalls int
	removedID   int

	nextID int
}

func (f *fakeAPI) Favorites(ctx context.Context) ([]models.FavoriteEntry, error) {
	return f.favorites, f.favoritesErr
}

func (f *fakeAPI) AddFavorite(ctx context.Context, movie models.MovieSummary) (*models.FavoriteEntry, error) {
	f.addCalls++
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.addResult != nil {
		return f.addResult, nil
	}
	f.nextID++
	return &models.FavoriteEntry{ID: f.nextID, MovieID: movie.ID, Title: movie.Title}, nil
}

func (f *fakeAPI) RemoveFavorite(ctx context.Context, favoriteID int) error {
	f.removeCalls++
	f.removedID = favoriteID
	return f.removeErr
}

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

func movie(id int, title string) models.MovieSummary {
	return models.MovieSummary{ID: id, Title: title}
}

func TestLoadFavoritesReplacesCacheWholesale(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	store := New(api, nil)

	// Seed a stale local entry through a confirmed add.
	if err := store.AddToFavorites(context.Background(), movie(1, "Alien")); err != nil {
		t.Fatalf("AddToFavorites: %v", err)
	}

	api.favorites = []models.FavoriteEntry{{ID: 7, MovieID: 2, Title: "Heat"}}
	if err := store.LoadFavorites(context.Background()); err != nil {
		t.Fatalf("LoadFavorites: %v", err)
	}

	if store.IsFavorite(1) {
		t.Error("stale entry survived wholesale reload")
	}
	if !store.IsFavorite(2) {
		t.Error("server entry missing after reload")
	}
}

func TestAddToFavoritesConfirmedOnly(t *testing.T) {
	t.Parallel()

	t.Run("server confirms", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{addResult: &models.FavoriteEntry{ID: 9, MovieID: 3, Title: "Ran"}}
		store := New(api, nil)

		if err := store.AddToFavorites(context.Background(), movie(3, "Ran")); err != nil {
			t.Fatalf("AddToFavorites: %v", err)
		}
		if !store.IsFavorite(3) {
			t.Error("confirmed favorite missing from cache")
		}
		favs := store.Favorites()
		if len(favs) != 1 || favs[0].ID != 9 {
			t.Errorf("favorites = %v, want server-assigned id 9", favs)
		}
	})

	t.Run("server rejects", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{addErr: &gateway.Error{Kind: gateway.KindNetwork, Message: "down"}}
		store := New(api, nil)

		err := store.AddToFavorites(context.Background(), movie(3, "Ran"))
		if !gateway.IsNetwork(err) {
			t.Fatalf("error = %v, want the network error re-raised", err)
		}
		if store.IsFavorite(3) {
			t.Error("cache mutated despite server rejection")
		}
	})
}

func TestRemoveFromFavorites(t *testing.T) {
	t.Parallel()

	t.Run("removes by server-assigned id", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{addResult: &models.FavoriteEntry{ID: 42, MovieID: 5, Title: "Seven"}}
		store := New(api, nil)
		ctx := context.Background()

		if err := store.AddToFavorites(ctx, movie(5, "Seven")); err != nil {
			t.Fatalf("AddToFavorites: %v", err)
		}
		if err := store.RemoveFromFavorites(ctx, 5); err != nil {
			t.Fatalf("RemoveFromFavorites: %v", err)
		}
		if api.removedID != 42 {
			t.Errorf("removed favorite id = %d, want 42", api.removedID)
		}
		if store.IsFavorite(5) {
			t.Error("entry survives confirmed removal")
		}
	})

	t.Run("removes an entry with row id zero", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		store := New(api, nil)
		ctx := context.Background()

		api.favorites = []models.FavoriteEntry{{ID: 0, MovieID: 8, Title: "Stalker"}}
		if err := store.LoadFavorites(ctx); err != nil {
			t.Fatalf("LoadFavorites: %v", err)
		}
		if err := store.RemoveFromFavorites(ctx, 8); err != nil {
			t.Fatalf("RemoveFromFavorites: %v", err)
		}
		if api.removeCalls != 1 {
			t.Errorf("remove calls = %d, want 1", api.removeCalls)
		}
		if store.IsFavorite(8) {
			t.Error("entry with row id zero survives removal")
		}
	})

	t.Run("absent movie is a no-op without network", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		store := New(api, nil)

		if err := store.RemoveFromFavorites(context.Background(), 99); err != nil {
			t.Fatalf("RemoveFromFavorites: %v", err)
		}
		if api.removeCalls != 0 {
			t.Errorf("remove calls = %d, want 0", api.removeCalls)
		}
	})

	t.Run("server failure keeps the entry", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{
			addResult: &models.FavoriteEntry{ID: 1, MovieID: 5, Title: "Seven"},
			removeErr: &gateway.Error{Kind: gateway.KindServer, Status: 500, Message: "boom"},
		}
		store := New(api, nil)
		ctx := context.Background()

		if err := store.AddToFavorites(ctx, movie(5, "Seven")); err != nil {
			t.Fatalf("AddToFavorites: %v", err)
		}
		if err := store.RemoveFromFavorites(ctx, 5); err == nil {
			t.Fatal("expected error")
		}
		if !store.IsFavorite(5) {
			t.Error("cache mutated despite server rejection")
		}
	})
}

func TestWatchlistIdempotentAdd(t *testing.T) {
	t.Parallel()

	store := New(&fakeAPI{}, nil)

	if !store.AddToWatchlist(movie(1, "Alien")) {
		t.Error("first add should report added")
	}
	if store.AddToWatchlist(movie(1, "Alien")) {
		t.Error("second add should report already present")
	}
	if got := len(store.Watchlist()); got != 1 {
		t.Errorf("watchlist length = %d, want 1", got)
	}

	store.RemoveFromWatchlist(1)
	if got := len(store.Watchlist()); got != 0 {
		t.Errorf("watchlist length after remove = %d, want 0", got)
	}
	// Removing an absent movie is fine.
	store.RemoveFromWatchlist(1)
}

func TestRecentlyViewedDedupAndCap(t *testing.T) {
	t.Parallel()

	store := New(&fakeAPI{}, nil)

	store.AddToRecentlyViewed(movie(1, "Alien"))
	store.AddToRecentlyViewed(movie(2, "Heat"))
	store.AddToRecentlyViewed(movie(1, "Alien")) // revisit moves it to the front

	recent := store.RecentlyViewed()
	if len(recent) != 2 {
		t.Fatalf("length = %d, want 2", len(recent))
	}
	if recent[0].MovieID != 1 || recent[1].MovieID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", recent[0].MovieID, recent[1].MovieID)
	}

	for i := 0; i < MaxRecentlyViewed+10; i++ {
		store.AddToRecentlyViewed(movie(100+i, fmt.Sprintf("Movie %d", i)))
	}
	recent = store.RecentlyViewed()
	if len(recent) != MaxRecentlyViewed {
		t.Errorf("length = %d, want cap %d", len(recent), MaxRecentlyViewed)
	}
	if recent[0].MovieID != 100+MaxRecentlyViewed+9 {
		t.Errorf("most recent = %d, want last inserted", recent[0].MovieID)
	}
}

func TestSearchHistory(t *testing.T) {
	t.Parallel()

	store := New(&fakeAPI{}, nil)

	store.AddToSearchHistory("alien")
	store.AddToSearchHistory("heat")
	store.AddToSearchHistory("alien") // repeat moves to front
	store.AddToSearchHistory("   ")   // blank is ignored
	store.AddToSearchHistory("")

	history := store.SearchHistory()
	if len(history) != 2 {
		t.Fatalf("length = %d, want 2", len(history))
	}
	if history[0] != "alien" || history[1] != "heat" {
		t.Errorf("order = %v, want [alien heat]", history)
	}

	for i := 0; i < MaxSearchHistory+5; i++ {
		store.AddToSearchHistory(fmt.Sprintf("query %d", i))
	}
	history = store.SearchHistory()
	if len(history) != MaxSearchHistory {
		t.Errorf("length = %d, want cap %d", len(history), MaxSearchHistory)
	}
	if history[0] != fmt.Sprintf("query %d", MaxSearchHistory+4) {
		t.Errorf("most recent = %q, want last inserted", history[0])
	}
}

func TestSuggestSearches(t *testing.T) {
	t.Parallel()

	store := New(&fakeAPI{}, nil)

	store.AddToSearchHistory("alien")
	store.AddToSearchHistory("aliens")
	store.AddToSearchHistory("alien") // raises its rank
	store.AddToSearchHistory("heat")

	got := store.SuggestSearches("ali", 10)
	if len(got) != 2 {
		t.Fatalf("suggestions = %v, want 2", got)
	}
	if got[0] != "alien" {
		t.Errorf("top suggestion = %q, want the most-searched query", got[0])
	}

	if got := store.SuggestSearches("zzz", 10); len(got) != 0 {
		t.Errorf("suggestions for unknown prefix = %v, want none", got)
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	store := New(api, newTestDB(t))
	ctx := context.Background()

	if err := store.AddToFavorites(ctx, movie(1, "Alien")); err != nil {
		t.Fatalf("AddToFavorites: %v", err)
	}
	store.AddToWatchlist(movie(2, "Heat"))
	store.AddToRecentlyViewed(movie(3, "Ran"))
	store.AddToSearchHistory("alien")

	store.ClearAll()

	if len(store.Favorites()) != 0 || len(store.Watchlist()) != 0 ||
		len(store.RecentlyViewed()) != 0 || len(store.SearchHistory()) != 0 {
		t.Error("collections survive ClearAll")
	}
	if got := store.SuggestSearches("a", 10); len(got) != 0 {
		t.Errorf("suggestions survive ClearAll: %v", got)
	}
}

func TestPersistenceAcrossRestart(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	api := &fakeAPI{}

	store := New(api, db)
	store.AddToWatchlist(movie(1, "Alien"))
	store.AddToRecentlyViewed(movie(2, "Heat"))
	store.AddToSearchHistory("kurosawa")

	// A second store over the same db simulates a restart.
	reopened := New(api, db)

	if got := reopened.Watchlist(); len(got) != 1 || got[0].MovieID != 1 {
		t.Errorf("watchlist = %v", got)
	}
	if got := reopened.RecentlyViewed(); len(got) != 1 || got[0].MovieID != 2 {
		t.Errorf("recently viewed = %v", got)
	}
	if got := reopened.SearchHistory(); len(got) != 1 || got[0] != "kurosawa" {
		t.Errorf("search history = %v", got)
	}
	if got := reopened.SuggestSearches("kuro", 5); len(got) != 1 {
		t.Errorf("suggestion index not rebuilt: %v", got)
	}
}

func TestFavoritesNeverPersisted(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	api := &fakeAPI{}

	store := New(api, db)
	if err := store.AddToFavorites(context.Background(), movie(1, "Alien")); err != nil {
		t.Fatalf("AddToFavorites: %v", err)
	}

	reopened := New(api, db)
	if len(reopened.Favorites()) != 0 {
		t.Error("favorites leaked into durable storage; the server is their source of truth")
	}
}
