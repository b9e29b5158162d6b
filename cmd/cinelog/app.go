// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cinelog/cinelog/internal/collections"
	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/gateway"
	"github.com/cinelog/cinelog/internal/logging"
	"github.com/cinelog/cinelog/internal/session"
	"github.com/cinelog/cinelog/internal/token"
)

// app wires configuration, storage, the gateway and both stores together.
// Every command builds one, uses it, and closes it.
type app struct {
	cfg         *config.Config
	db          *badger.DB
	tokens      token.Store
	api         gateway.API
	images      gateway.Images
	session     *session.Store
	collections *collections.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	db, err := openStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	tokens := token.NewBadgerStore(db)
	client := gateway.NewClient(cfg.API, tokens)

	var api gateway.API = client
	if cfg.API.BreakerEnabled {
		api = gateway.NewBreakerClient(client)
	}

	a := &app{
		cfg:         cfg,
		db:          db,
		tokens:      tokens,
		api:         api,
		images:      gateway.NewImages(cfg.Images),
		session:     session.New(api, tokens),
		collections: collections.New(api, db),
	}

	// A failed transparent refresh means the session is gone: reset the
	// in-memory session so subsequent commands see the anonymous state.
	client.OnSessionExpired(func() {
		a.session.HandleSessionExpired()
		logging.Warn().Msg("session expired, please log in again")
	})

	a.session.CheckAuth()
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close storage")
		}
	}
}

func openStorage(cfg config.StorageConfig) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	return badger.Open(opts)
}

// printJSON renders a command result as indented JSON on the given writer.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
