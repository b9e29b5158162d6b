// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/cinelog/cinelog/internal/logging"
	"github.com/cinelog/cinelog/internal/metrics"
	"github.com/cinelog/cinelog/internal/models"
)

// BreakerClient wraps the gateway with a circuit breaker so a degraded
// backend stops eating every caller's timeout budget. The breaker uses real
// time for its interval and timeout; unit tests target the wrapped client.
type BreakerClient struct {
	api  API
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

var _ API = (*BreakerClient)(nil)

// NewBreakerClient decorates an API with a circuit breaker.
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(api API) *BreakerClient {
	cbName := "cinelog-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening api circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := breakerStateString(from)
			toStr := breakerStateString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("api circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		// Auth and client errors are the caller's fault, not backend
		// health; they must not trip the circuit.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *Error
			if errors.As(err, &apiErr) {
				return apiErr.Kind == KindClient || apiErr.Kind == KindAuth ||
					(apiErr.Kind == KindServer && apiErr.Status < 500)
			}
			return false
		},
	})

	return &BreakerClient{api: api, cb: cb, name: cbName}
}

// execute wraps an API call with circuit breaker protection, recording the
// outcome and converting breaker rejections into network errors so callers
// still see the uniform taxonomy.
func (b *BreakerClient) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("api request rejected by open circuit")
			return nil, networkError()
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// castResult type-casts the breaker result with error checking.
func castResult[T any](result any, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// castSlice type-casts a slice-valued breaker result with error checking.
func castSlice[T any](result any, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.([]T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func breakerStateFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func breakerStateString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Login exchanges credentials with circuit breaker protection.
func (b *BreakerClient) Login(ctx context.Context, username, password string) (*models.AuthTokens, error) {
	return castResult[models.AuthTokens](b.execute(func() (any, error) {
		return b.api.Login(ctx, username, password)
	}))
}

// Register creates an account with circuit breaker protection.
func (b *BreakerClient) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	return castResult[models.User](b.execute(func() (any, error) {
		return b.api.Register(ctx, req)
	}))
}

// RefreshCredentials refreshes the token pair with circuit breaker protection.
func (b *BreakerClient) RefreshCredentials(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.api.RefreshCredentials(ctx)
	})
	return err
}

// Profile fetches the profile with circuit breaker protection.
func (b *BreakerClient) Profile(ctx context.Context) (*models.Profile, error) {
	return castResult[models.Profile](b.execute(func() (any, error) {
		return b.api.Profile(ctx)
	}))
}

// UpdateProfile updates the profile with circuit breaker protection.
func (b *BreakerClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	return castResult[models.Profile](b.execute(func() (any, error) {
		return b.api.UpdateProfile(ctx, update)
	}))
}

// Dashboard fetches the dashboard with circuit breaker protection.
func (b *BreakerClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return castResult[models.Dashboard](b.execute(func() (any, error) {
		return b.api.Dashboard(ctx)
	}))
}

// Trending fetches trending movies with circuit breaker protection.
func (b *BreakerClient) Trending(ctx context.Context, window models.TimeWindow) (*models.MovieList, error) {
	return castResult[models.MovieList](b.execute(func() (any, error) {
		return b.api.Trending(ctx, window)
	}))
}

// MovieDetail fetches movie metadata with circuit breaker protection.
func (b *BreakerClient) MovieDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	return castResult[models.MovieDetail](b.execute(func() (any, error) {
		return b.api.MovieDetail(ctx, movieID)
	}))
}

// SearchMovies searches with circuit breaker protection.
func (b *BreakerClient) SearchMovies(ctx context.Context, filters models.SearchFilters) (*models.MovieList, error) {
	return castResult[models.MovieList](b.execute(func() (any, error) {
		return b.api.SearchMovies(ctx, filters)
	}))
}

// Genres fetches the genre list with circuit breaker protection.
func (b *BreakerClient) Genres(ctx context.Context) ([]models.Genre, error) {
	return castSlice[models.Genre](b.execute(func() (any, error) {
		return b.api.Genres(ctx)
	}))
}

// MovieRecommendations fetches similar movies with circuit breaker protection.
func (b *BreakerClient) MovieRecommendations(ctx context.Context, movieID, limit int) (*models.MovieList, error) {
	return castResult[models.MovieList](b.execute(func() (any, error) {
		return b.api.MovieRecommendations(ctx, movieID, limit)
	}))
}

// Person fetches a person record with circuit breaker protection.
func (b *BreakerClient) Person(ctx context.Context, personID int) (*models.Person, error) {
	return castResult[models.Person](b.execute(func() (any, error) {
		return b.api.Person(ctx, personID)
	}))
}

// Favorites fetches the favorites list with circuit breaker protection.
func (b *BreakerClient) Favorites(ctx context.Context) ([]models.FavoriteEntry, error) {
	return castSlice[models.FavoriteEntry](b.execute(func() (any, error) {
		return b.api.Favorites(ctx)
	}))
}

// AddFavorite adds a favorite with circuit breaker protection.
func (b *BreakerClient) AddFavorite(ctx context.Context, movie models.MovieSummary) (*models.FavoriteEntry, error) {
	return castResult[models.FavoriteEntry](b.execute(func() (any, error) {
		return b.api.AddFavorite(ctx, movie)
	}))
}

// RemoveFavorite removes a favorite with circuit breaker protection.
func (b *BreakerClient) RemoveFavorite(ctx context.Context, favoriteID int) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.api.RemoveFavorite(ctx, favoriteID)
	})
	return err
}

// Ratings fetches ratings with circuit breaker protection.
func (b *BreakerClient) Ratings(ctx context.Context) ([]models.Rating, error) {
	return castSlice[models.Rating](b.execute(func() (any, error) {
		return b.api.Ratings(ctx)
	}))
}

// AddRating submits a rating with circuit breaker protection.
func (b *BreakerClient) AddRating(ctx context.Context, req RatingRequest) (*models.Rating, error) {
	return castResult[models.Rating](b.execute(func() (any, error) {
		return b.api.AddRating(ctx, req)
	}))
}

// Reviews fetches reviews with circuit breaker protection.
func (b *BreakerClient) Reviews(ctx context.Context, movieID int) ([]models.Review, error) {
	return castSlice[models.Review](b.execute(func() (any, error) {
		return b.api.Reviews(ctx, movieID)
	}))
}

// AddReview submits a review with circuit breaker protection.
func (b *BreakerClient) AddReview(ctx context.Context, req ReviewRequest) (*models.Review, error) {
	return castResult[models.Review](b.execute(func() (any, error) {
		return b.api.AddReview(ctx, req)
	}))
}

// Recommendations fetches personalized picks with circuit breaker protection.
func (b *BreakerClient) Recommendations(ctx context.Context, strategy models.Strategy, limit int) (*models.MovieList, error) {
	return castResult[models.MovieList](b.execute(func() (any, error) {
		return b.api.Recommendations(ctx, strategy, limit)
	}))
}

// ServerWatchlist fetches the server watchlist with circuit breaker protection.
func (b *BreakerClient) ServerWatchlist(ctx context.Context) ([]models.ServerWatchlistEntry, error) {
	return castSlice[models.ServerWatchlistEntry](b.execute(func() (any, error) {
		return b.api.ServerWatchlist(ctx)
	}))
}

// AddServerWatchlist adds a server watchlist row with circuit breaker protection.
func (b *BreakerClient) AddServerWatchlist(ctx context.Context, movie models.MovieSummary) (*models.ServerWatchlistEntry, error) {
	return castResult[models.ServerWatchlistEntry](b.execute(func() (any, error) {
		return b.api.AddServerWatchlist(ctx, movie)
	}))
}

// RemoveServerWatchlist removes a server watchlist row with circuit breaker protection.
func (b *BreakerClient) RemoveServerWatchlist(ctx context.Context, entryID int) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.api.RemoveServerWatchlist(ctx, entryID)
	})
	return err
}
