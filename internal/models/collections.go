// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package models

import "time"

// FavoriteEntry is a server-owned favorites row. The server assigns ID and
// AddedAt; the local favorites list is a cache of these rows synchronized on
// each mutation and on explicit reload.
type FavoriteEntry struct {
	ID          int       `json:"id"`
	MovieID     int       `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// WatchlistEntry is a local-only watchlist row, never sent to the server.
type WatchlistEntry struct {
	MovieID     int       `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// RecentlyViewedEntry is a local-only record of a movie detail visit.
type RecentlyViewedEntry struct {
	MovieID     int       `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	ViewedAt    time.Time `json:"viewed_at"`
}

// ServerWatchlistEntry is a row from the backend's /watchlist/ endpoints.
// The Collection Store keeps its watchlist local-only; these rows only appear
// when a caller talks to the server watchlist directly through the gateway.
type ServerWatchlistEntry struct {
	ID          int       `json:"id"`
	MovieID     int       `json:"movie_id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}
