// Package service holds the postlikes command line: the HTTP server and
// the database maintenance commands.
package service

import (
	"fmt"
	"io"
	"log/slog"

	"postlikes/app/config"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCommand builds the postlikes command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "postlikes",
		Short:         "Posts with a like/unlike toggle and like rosters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg)
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/postlikes/config.yaml)")

	root.AddCommand(
		newServeCommand(a),
		newInitCommand(a),
		newCleanCommand(a),
		newBackupCommand(a),
		newRestoreCommand(a),
		newMigrateCommand(a),
		newVersionCommand(),
	)
	return root
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postlikes version %s\n", Version)
		},
	}
}
