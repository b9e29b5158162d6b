// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

// Command cinelog is the movie-discovery client CLI. It talks to the Cinelog
// backend through the authenticated gateway and keeps tokens and local
// collections in per-user durable storage.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cinelog",
		Short:         "Movie discovery client for the Cinelog backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newRegisterCommand())
	cmd.AddCommand(newWhoamiCommand())
	cmd.AddCommand(newProfileCommand())
	cmd.AddCommand(newDashboardCommand())
	cmd.AddCommand(newSearchCommand())
	cmd.AddCommand(newTrendingCommand())
	cmd.AddCommand(newMovieCommand())
	cmd.AddCommand(newPersonCommand())
	cmd.AddCommand(newRecommendCommand())
	cmd.AddCommand(newFavoritesCommand())
	cmd.AddCommand(newWatchlistCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newRateCommand())
	cmd.AddCommand(newReviewCommand())
	return cmd
}
