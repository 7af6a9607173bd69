package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"postlikes/app/config"
	"postlikes/app/repositories"
	"postlikes/app/repositories/postgres"

	"github.com/spf13/cobra"
)

var errBadgerOnly = errors.New("this command only supports the badger store")

// openStore opens the store selected by cfg. PostgreSQL stores are
// migrated before use.
func openStore(cfg *config.Config, logger *slog.Logger) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		store, err := postgres.Open(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	default:
		return openBadger(cfg, logger)
	}
}

func openBadger(cfg *config.Config, logger *slog.Logger) (*repositories.BadgerStore, error) {
	if cfg.Store.Driver != config.DriverBadger {
		return nil, errBadgerOnly
	}
	if err := os.MkdirAll(cfg.Store.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return repositories.NewBadgerStore(cfg.Store.DataDir, logger)
}

func dataDirExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.Store.DataDir)
	return err == nil
}

// confirm asks a yes/no question on the command's streams. Anything but
// y or Y is a no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	return response == "y" || response == "Y"
}
