package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory/internal/services"
)

// NewTokenCommand issues a bearer token for the HTTP API.
func NewTokenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue an API token signed with AUTH_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.loadConfig()
			if cfg.AuthSecret == "" {
				return fmt.Errorf("AUTH_SECRET is not set")
			}

			token, err := services.NewAuthService(cfg.AuthSecret).IssueToken(args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, map[string]any{"token": token}, token)
		},
	}
}
