// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

/*
Package models defines data structures for the Cinelog client.

This package contains all data models exchanged with the backend API and held
by the client-side stores. It serves as the single source of truth for data
structure definitions.

Model Categories:

 1. Auth Models:
    - User: account identity returned by the backend
    - AuthTokens: access/refresh bearer credential pair

 2. Movie Models:
    - MovieSummary: list-item shape used by search, trending and collections
    - MovieDetail: full metadata for the detail page
    - Genre, Person: supporting metadata entities

 3. User-Data Models:
    - FavoriteEntry: server-owned favorite row (the local list is a cache)
    - WatchlistEntry, RecentlyViewedEntry: local-only collection entries
    - Rating, Review: user feedback persisted server-side

 4. Query Models:
    - SearchFilters: multi-field movie search filter with falsy-field omission
    - TimeWindow, Strategy: enumerated query parameters
*/
package models
