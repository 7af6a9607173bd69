package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"postlikes/app/config"
	"postlikes/app/repositories/postgres"

	"github.com/spf13/cobra"
)

func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.Store.Driver == config.DriverBadger && dataDirExists(a.cfg) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}

			store, err := openStore(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer store.Close()

			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.Store.Driver != config.DriverBadger {
				return errBadgerOnly
			}
			if !dataDirExists(a.cfg) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if err := os.RemoveAll(a.cfg.Store.DataDir); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newBackupCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.Store.Driver != config.DriverBadger {
				return errBadgerOnly
			}
			if !dataDirExists(a.cfg) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}

			if output == "" {
				if err := os.MkdirAll(a.cfg.Store.BackupDir, 0755); err != nil {
					return fmt.Errorf("failed to create backup directory: %w", err)
				}
				output = filepath.Join(a.cfg.Store.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
			}

			store, err := openBadger(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			version, err := store.Backup(f)
			if err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}
			a.logger.Debug("backup written", "file", output, "version", version)
			fmt.Fprintf(out, "Database backed up successfully to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "backup file (default <backup_dir>/backup_<unix>.db)")
	return cmd
}

func newRestoreCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			backupFile := args[0]
			if a.cfg.Store.Driver != config.DriverBadger {
				return errBadgerOnly
			}

			fi, err := os.Stat(backupFile)
			if err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if dataDirExists(a.cfg) {
				if !yes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(a.cfg.Store.DataDir); err != nil {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}

			store, err := openBadger(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Open(backupFile)
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			if err := store.Restore(f); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}
			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate requires the postgres store, configured store is %q", a.cfg.Store.Driver)
			}
			store, err := postgres.Open(a.cfg.Store.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
