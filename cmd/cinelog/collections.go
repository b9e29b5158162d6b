// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newFavoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage server-synced favorites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newFavoritesListCommand())
	cmd.AddCommand(newFavoritesAddCommand())
	cmd.AddCommand(newFavoritesRemoveCommand())
	return cmd
}

func newFavoritesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.collections.LoadFavorites(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.collections.Favorites())
		},
	}
}

func newFavoritesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <movie-id>",
		Short: "Add a movie to favorites",
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
			if err := a.collections.AddToFavorites(cmd.Context(), detail.MovieSummary); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q to favorites\n", detail.Title)
			return nil
		},
	}
}

func newFavoritesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <movie-id>",
		Short: "Remove a movie from favorites",
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

			if err := a.collections.LoadFavorites(cmd.Context()); err != nil {
				return err
			}
			if err := a.collections.RemoveFromFavorites(cmd.Context(), movieID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed from favorites")
			return nil
		},
	}
}

func newWatchlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the local watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List watchlist entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(cmd.OutOrStdout(), a.collections.Watchlist())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <movie-id>",
		Short: "Add a movie to the watchlist",
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
			if a.collections.AddToWatchlist(detail.MovieSummary) {
				fmt.Fprintf(cmd.OutOrStdout(), "added %q to watchlist\n", detail.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q is already on the watchlist\n", detail.Title)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <movie-id>",
		Short: "Remove a movie from the watchlist",
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

			a.collections.RemoveFromWatchlist(movieID)
			fmt.Fprintln(cmd.OutOrStdout(), "removed from watchlist")
			return nil
		},
	})

	return cmd
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect search history and recently viewed movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "searches",
		Short: "List past search queries, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(cmd.OutOrStdout(), a.collections.SearchHistory())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "viewed",
		Short: "List recently viewed movies, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(cmd.OutOrStdout(), a.collections.RecentlyViewed())
		},
	})

	var limit int
	suggest := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Suggest past queries matching a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(cmd.OutOrStdout(), a.collections.SuggestSearches(args[0], limit))
		},
	}
	suggest.Flags().IntVar(&limit, "limit", 10, "Maximum number of suggestions")
	cmd.AddCommand(suggest)

	return cmd
}
