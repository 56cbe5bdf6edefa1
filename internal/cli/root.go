package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory/internal/app"
	"inventory/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format       string // "json" | "text"
	DatabasePath string // overrides DATABASE_PATH when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the inventory CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Inventory - track products, stock and suppliers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DatabasePath, "db", "", "database file (defaults to $DATABASE_PATH)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddDummyCommand(opts))
	cmd.AddCommand(NewDeleteAllCommand(opts))
	cmd.AddCommand(NewSellCommand(opts))
	cmd.AddCommand(NewTypeCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the environment and applies flag overrides.
func (o *RootOptions) loadConfig() config.Config {
	cfg := config.Load()
	if o.DatabasePath != "" {
		cfg.DatabasePath = o.DatabasePath
	}
	return cfg
}

// openApp builds the application for a one-shot command.
func (o *RootOptions) openApp() (*app.App, error) {
	return app.New(o.loadConfig())
}
