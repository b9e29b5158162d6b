// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cinelog/cinelog/internal/gateway"
	"github.com/cinelog/cinelog/internal/models"
)

func newSearchCommand() *cobra.Command {
	var filters models.SearchFilters

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search movies with optional filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filters.Query = args[0]
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.api.SearchMovies(cmd.Context(), filters)
			if err != nil {
				return err
			}
			a.collections.AddToSearchHistory(filters.Query)
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&filters.Genre, "genre", "", "Genre name or id")
	cmd.Flags().IntVar(&filters.Year, "year", 0, "Release year")
	cmd.Flags().StringVar(&filters.Language, "language", "", "Original language code")
	cmd.Flags().Float64Var(&filters.MinRating, "min-rating", 0, "Minimum vote average")
	cmd.Flags().Float64Var(&filters.MaxRating, "max-rating", 0, "Maximum vote average")
	cmd.Flags().IntVar(&filters.MinRuntime, "min-runtime", 0, "Minimum runtime in minutes")
	cmd.Flags().IntVar(&filters.MaxRuntime, "max-runtime", 0, "Maximum runtime in minutes")
	cmd.Flags().StringVar(&filters.WithCast, "cast", "", "Filter by cast member")
	cmd.Flags().StringVar(&filters.WithCrew, "crew", "", "Filter by crew member")
	cmd.Flags().StringVar(&filters.SortBy, "sort", "", "Sort order, e.g. popularity.desc")
	cmd.Flags().IntVar(&filters.Page, "page", 0, "Result page")
	return cmd
}

func newTrendingCommand() *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.api.Trending(cmd.Context(), models.TimeWindow(window))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&window, "window", string(models.TimeWindowWeek), "Time window: day or week")
	return cmd
}

func newMovieCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "movie <id>",
		Short: "Show full details for one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			detail, err := a.api.MovieDetail(cmd.Context(), movieID)
			if err != nil {
				return err
			}
			a.collections.AddToRecentlyViewed(detail.MovieSummary)
			return printJSON(cmd.OutOrStdout(), struct {
				*models.MovieDetail
				PosterURL   string `json:"poster_url"`
				BackdropURL string `json:"backdrop_url"`
			}{
				MovieDetail: detail,
				PosterURL:   a.images.PosterURL(detail.PosterPath, gateway.PosterW500),
				BackdropURL: a.images.BackdropURL(detail.BackdropPath, gateway.BackdropW1280),
			})
		},
	}
}

func newPersonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "person <id>",
		Short: "Show an actor or crew member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			person, err := a.api.Person(cmd.Context(), personID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), person)
		},
	}
}

func newRecommendCommand() *cobra.Command {
	var (
		strategy string
		movieID  int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show personalized or per-movie recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var (
				list *models.MovieList
				err2 error
			)
			if movieID > 0 {
				list, err2 = a.api.MovieRecommendations(cmd.Context(), movieID, limit)
			} else {
				list, err2 = a.api.Recommendations(cmd.Context(), models.Strategy(strategy), limit)
			}
			if err2 != nil {
				return err2
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", string(models.StrategyHybrid), "Strategy: hybrid, collaborative, content or trending")
	cmd.Flags().IntVar(&movieID, "movie", 0, "Recommend movies similar to this movie id")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of results")
	return cmd
}

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the personalized dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			dashboard, err := a.api.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dashboard)
		},
	}
}

func newProfileCommand() *cobra.Command {
	var (
		bio       string
		email     string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			update := models.ProfileUpdate{}
			changed := false
			if cmd.Flags().Changed("bio") {
				update.Bio = &bio
				changed = true
			}
			if cmd.Flags().Changed("email") {
				update.Email = &email
				changed = true
			}
			if cmd.Flags().Changed("first-name") {
				update.FirstName = &firstName
				changed = true
			}
			if cmd.Flags().Changed("last-name") {
				update.LastName = &lastName
				changed = true
			}

			var (
				profile *models.Profile
				err2    error
			)
			if changed {
				profile, err2 = a.api.UpdateProfile(cmd.Context(), update)
			} else {
				profile, err2 = a.api.Profile(cmd.Context())
			}
			if err2 != nil {
				return err2
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}

	cmd.Flags().StringVar(&bio, "bio", "", "Set the profile bio")
	cmd.Flags().StringVar(&email, "email", "", "Set the account email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "Set the first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Set the last name")
	return cmd
}

func newRateCommand() *cobra.Command {
	var rating float64

	cmd := &cobra.Command{
		Use:   "rate <movie-id>",
		Short: "Rate a movie from 0.5 to 10",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.api.AddRating(cmd.Context(), gateway.RatingRequest{
				MovieID: movieID,
				Rating:  rating,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating value from 0.5 to 10")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newReviewCommand() *cobra.Command {
	var (
		text    string
		spoiler bool
	)

	cmd := &cobra.Command{
		Use:   "review <movie-id>",
		Short: "Write a review for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.api.AddReview(cmd.Context(), gateway.ReviewRequest{
				MovieID:    movieID,
				ReviewText: text,
				IsSpoiler:  spoiler,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Review text")
	cmd.Flags().BoolVar(&spoiler, "spoiler", false, "Mark the review as containing spoilers")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
