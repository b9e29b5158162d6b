// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cinelog/cinelog/internal/models"
)

// API is the full backend surface. Stores depend on this interface rather
// than *Client so tests can inject fakes and the circuit breaker can wrap
// the whole surface transparently.
type API interface {
	// Auth
	Login(ctx context.Context, username, password string) (*models.AuthTokens, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	RefreshCredentials(ctx context.Context) error

	// Profile and dashboard
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)

	// Movie metadata
	Trending(ctx context.Context, window models.TimeWindow) (*models.MovieList, error)
	MovieDetail(ctx context.Context, movieID int) (*models.MovieDetail, error)
	SearchMovies(ctx context.Context, filters models.SearchFilters) (*models.MovieList, error)
	Genres(ctx context.Context) ([]models.Genre, error)
	MovieRecommendations(ctx context.Context, movieID, limit int) (*models.MovieList, error)
	Person(ctx context.Context, personID int) (*models.Person, error)

	// User data
	Favorites(ctx context.Context) ([]models.FavoriteEntry, error)
	AddFavorite(ctx context.Context, movie models.MovieSummary) (*models.FavoriteEntry, error)
	RemoveFavorite(ctx context.Context, favoriteID int) error
	Ratings(ctx context.Context) ([]models.Rating, error)
	AddRating(ctx context.Context, req RatingRequest) (*models.Rating, error)
	Reviews(ctx context.Context, movieID int) ([]models.Review, error)
	AddReview(ctx context.Context, req ReviewRequest) (*models.Review, error)
	Recommendations(ctx context.Context, strategy models.Strategy, limit int) (*models.MovieList, error)
	ServerWatchlist(ctx context.Context) ([]models.ServerWatchlistEntry, error)
	AddServerWatchlist(ctx context.Context, movie models.MovieSummary) (*models.ServerWatchlistEntry, error)
	RemoveServerWatchlist(ctx context.Context, entryID int) error
}

// Ensure Client implements the full API surface.
var _ API = (*Client)(nil)

// Login exchanges credentials for a token pair via POST /token/.
// It does not store the pair; the session store owns that transition.
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthTokens, error) {
	req := LoginRequest{Username: username, Password: password}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	var pair models.AuthTokens
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/token/",
		body:     req,
		endpoint: "login",
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account via POST /register/ and returns the created
// user. Callers log in afterwards; registration issues no tokens.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	var user models.User
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/register/",
		body:     req,
		endpoint: "register",
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RefreshCredentials explicitly exchanges the refresh token for a new pair.
// It converges on the same serialized exchange the 401 interceptor uses.
func (c *Client) RefreshCredentials(ctx context.Context) error {
	return c.refreshTokens(ctx, c.tokens.Access())
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/profile/",
		auth:     true,
		endpoint: "profile",
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update via PATCH /profile/.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	err := c.do(ctx, request{
		method:   http.MethodPatch,
		path:     "/profile/",
		body:     update,
		auth:     true,
		endpoint: "update_profile",
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Dashboard fetches the personalized landing-page payload.
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var dashboard models.Dashboard
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/dashboard/",
		auth:     true,
		endpoint: "dashboard",
	}, &dashboard)
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Trending fetches trending movies for the given time window.
func (c *Client) Trending(ctx context.Context, window models.TimeWindow) (*models.MovieList, error) {
	query := url.Values{}
	query.Set("time_window", string(window))
	var list models.MovieList
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/movies/trending/",
		query:    query,
		auth:     true,
		endpoint: "trending",
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// MovieDetail fetches full metadata for one movie.
func (c *Client) MovieDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/movies/%d/", movieID),
		auth:     true,
		endpoint: "movie_detail",
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// SearchMovies runs a multi-field filtered search. Zero-valued filter fields
// are omitted from the query string.
func (c *Client) SearchMovies(ctx context.Context, filters models.SearchFilters) (*models.MovieList, error) {
	var list models.MovieList
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/movies/search/",
		query:    filters.Values(),
		auth:     true,
		endpoint: "search",
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Genres fetches the genre list.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/movies/genres/",
		auth:     true,
		endpoint: "genres",
	}, &genres)
	if err != nil {
		return nil, err
	}
	return genres, nil
}

// MovieRecommendations fetches movies similar to the given one.
func (c *Client) MovieRecommendations(ctx context.Context, movieID, limit int) (*models.MovieList, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var list models.MovieList
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/movies/%d/recommendations/", movieID),
		query:    query,
		auth:     true,
		endpoint: "movie_recommendations",
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Person fetches an actor or crew member record.
func (c *Client) Person(ctx context.Context, personID int) (*models.Person, error) {
	var person models.Person
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/actors/%d/", personID),
		auth:     true,
		endpoint: "person",
	}, &person)
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// Favorites fetches the full favorites list. The server is the source of
// truth; the collection store replaces its cache with this result wholesale.
func (c *Client) Favorites(ctx context.Context) ([]models.FavoriteEntry, error) {
	var favorites []models.FavoriteEntry
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/favorites/",
		auth:     true,
		endpoint: "favorites",
	}, &favorites)
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite creates a favorites row server-side and returns it with the
// server-assigned ID.
func (c *Client) AddFavorite(ctx context.Context, movie models.MovieSummary) (*models.FavoriteEntry, error) {
	body := map[string]any{
		"movie_id":     movie.ID,
		"title":        movie.Title,
		"poster_path":  movie.PosterPath,
		"release_date": movie.ReleaseDate,
	}
	var entry models.FavoriteEntry
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/favorites/",
		body:     body,
		auth:     true,
		endpoint: "add_favorite",
	}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveFavorite deletes a favorites row by its server-assigned ID.
func (c *Client) RemoveFavorite(ctx context.Context, favoriteID int) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/favorites/%d/", favoriteID),
		auth:     true,
		endpoint: "remove_favorite",
	}, nil)
}

// Ratings fetches the user's ratings.
func (c *Client) Ratings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/ratings/",
		auth:     true,
		endpoint: "ratings",
	}, &ratings)
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// AddRating submits a rating for a movie.
func (c *Client) AddRating(ctx context.Context, req RatingRequest) (*models.Rating, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	var rating models.Rating
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/ratings/",
		body:     req,
		auth:     true,
		endpoint: "add_rating",
	}, &rating)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Reviews fetches reviews, optionally scoped to one movie (movieID > 0).
func (c *Client) Reviews(ctx context.Context, movieID int) ([]models.Review, error) {
	query := url.Values{}
	if movieID > 0 {
		query.Set("movie_id", strconv.Itoa(movieID))
	}
	var reviews []models.Review
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/reviews/",
		query:    query,
		auth:     true,
		endpoint: "reviews",
	}, &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AddReview submits a written review.
func (c *Client) AddReview(ctx context.Context, req ReviewRequest) (*models.Review, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	var review models.Review
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/reviews/",
		body:     req,
		auth:     true,
		endpoint: "add_review",
	}, &review)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Recommendations fetches personalized recommendations computed server-side
// by the given strategy.
func (c *Client) Recommendations(ctx context.Context, strategy models.Strategy, limit int) (*models.MovieList, error) {
	query := url.Values{}
	query.Set("type", string(strategy))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var list models.MovieList
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/recommendations/",
		query:    query,
		auth:     true,
		endpoint: "recommendations",
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ServerWatchlist fetches the server-side watchlist. The collection store's
// watchlist is local-only; this surface exists for callers that opt into the
// server copy.
func (c *Client) ServerWatchlist(ctx context.Context) ([]models.ServerWatchlistEntry, error) {
	var entries []models.ServerWatchlistEntry
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/watchlist/",
		auth:     true,
		endpoint: "server_watchlist",
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AddServerWatchlist creates a server-side watchlist row.
func (c *Client) AddServerWatchlist(ctx context.Context, movie models.MovieSummary) (*models.ServerWatchlistEntry, error) {
	body := map[string]any{
		"movie_id":     movie.ID,
		"title":        movie.Title,
		"poster_path":  movie.PosterPath,
		"release_date": movie.ReleaseDate,
	}
	var entry models.ServerWatchlistEntry
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/watchlist/",
		body:     body,
		auth:     true,
		endpoint: "add_server_watchlist",
	}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveServerWatchlist deletes a server-side watchlist row by ID.
func (c *Client) RemoveServerWatchlist(ctx context.Context, entryID int) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/watchlist/%d/", entryID),
		auth:     true,
		endpoint: "remove_server_watchlist",
	}, nil)
}
