package main

import (
	"fmt"
	"os"

	"fleet-workhours/internal/api"
	"fleet-workhours/internal/config"
	"fleet-workhours/internal/logging"
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/services"
	"fleet-workhours/internal/validation"
)

// openBusinessAPI opens the configured store and builds the business API over
// it. The sqlite directory is created on first use.
func openBusinessAPI(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	if cfg.Database.Driver == config.DriverSQLite && cfg.Database.DSN == "" {
		if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logging.Debugf("opening %s store at %s\n", cfg.Database.Driver, cfg.DataSourceName())
	store, err := sqlstore.Open(cfg.Database.Driver, cfg.DataSourceName(), sqlstore.WithQueryTimeout(cfg.Database.QueryTimeout))
	if err != nil {
		return nil, nil, err
	}

	calc, err := cfg.Calculator()
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	v := validation.NewValidatorWithConfig(cfg)
	container := services.NewServiceContainer(store, calc, v, nil)
	return api.NewBusinessAPI(container, calc, v), store.Close, nil
}
