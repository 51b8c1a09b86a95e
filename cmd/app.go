// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/config"
	"travelgo/cli/internal/keychain"
	"travelgo/cli/internal/logging"
	"travelgo/cli/internal/repository"
	"travelgo/cli/internal/session"
)

// openPersister opens the durable token storage. Tests swap it for an in-memory keyring.
var openPersister = func() (session.Persister, error) {
	return keychain.Open()
}

// app is everything a command needs, created once per invocation.
type app struct {
	cfg    config.Config
	logger *pterm.Logger
	store  *session.Store
	api    *backend.HTTP
	users  *repository.UserRepository
	travel *repository.TravelRepository
}

func resolveConfig() (config.Config, error) {
	return config.Resolve(config.Overrides{BaseURL: baseURLFlag, Verbose: verboseFlag})
}

func newApp() (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)

	persister, err := openPersister()
	if err != nil {
		return nil, fmt.Errorf("open keychain: %w", err)
	}
	store, err := session.Open(persister)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	bc := cfg.Backend()
	bc.Logger = logger
	bc.UserAgent = userAgent()
	api, err := backend.Build(bc, store)
	if err != nil {
		return nil, err
	}
	logger.Debug("backend ready", logger.Args("base_url", api.BaseURL(), "session", store.Authenticated()))

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		api:    api,
		users:  repository.NewUserRepository(api, logger),
		travel: repository.NewTravelRepository(api, store, logger),
	}, nil
}
