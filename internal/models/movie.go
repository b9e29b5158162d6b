// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package models

import "time"

// MovieSummary is the list-item shape returned by search, trending,
// recommendation and collection endpoints.
type MovieSummary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	VoteCount    int     `json:"vote_count,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// MovieDetail is the full metadata record for a single movie.
type MovieDetail struct {
	MovieSummary
	Tagline       string       `json:"tagline,omitempty"`
	Runtime       int          `json:"runtime,omitempty"`
	Budget        int64        `json:"budget,omitempty"`
	Revenue       int64        `json:"revenue,omitempty"`
	Language      string       `json:"original_language,omitempty"`
	Certification string       `json:"certification,omitempty"`
	Genres        []Genre      `json:"genres,omitempty"`
	Cast          []CastMember `json:"cast,omitempty"`
	Crew          []CrewMember `json:"crew,omitempty"`
	Keywords      []string     `json:"keywords,omitempty"`
	Companies     []string     `json:"production_companies,omitempty"`
}

// Genre is a movie genre as returned by /movies/genres/.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is an acting credit on a movie.
type CastMember struct {
	PersonID    int    `json:"person_id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// CrewMember is a production credit on a movie.
type CrewMember struct {
	PersonID    int    `json:"person_id"`
	Name        string `json:"name"`
	Job         string `json:"job,omitempty"`
	Department  string `json:"department,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Person is the full record for an actor or crew member from /actors/{id}/.
type Person struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Biography    string         `json:"biography,omitempty"`
	Birthday     string         `json:"birthday,omitempty"`
	Deathday     string         `json:"deathday,omitempty"`
	PlaceOfBirth string         `json:"place_of_birth,omitempty"`
	ProfilePath  string         `json:"profile_path,omitempty"`
	KnownFor     []MovieSummary `json:"known_for,omitempty"`
}

// MovieList is the paged envelope the backend wraps list responses in.
type MovieList struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []MovieSummary `json:"results"`
}

// Dashboard aggregates the personalized landing-page payload.
type Dashboard struct {
	RecommendedForYou []MovieSummary `json:"recommended_for_you,omitempty"`
	Trending          []MovieSummary `json:"trending,omitempty"`
	RecentRatings     []Rating       `json:"recent_ratings,omitempty"`
	RecentReviews     []Review       `json:"recent_reviews,omitempty"`
	FavoriteCount     int            `json:"favorite_count"`
	RatingCount       int            `json:"rating_count"`
}

// Rating is a user's numeric rating of a movie.
type Rating struct {
	ID        int       `json:"id,omitempty"`
	MovieID   int       `json:"movie_id"`
	Rating    float64   `json:"rating"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Review is a user's written review of a movie.
type Review struct {
	ID         int       `json:"id,omitempty"`
	MovieID    int       `json:"movie_id"`
	ReviewText string    `json:"review_text"`
	IsSpoiler  bool      `json:"is_spoiler"`
	Username   string    `json:"username,omitempty"`
	Title      string    `json:"title,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
