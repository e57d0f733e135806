package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the GotHub API key",
	}

	cmd.AddCommand(newAuthSetKeyCmd(app), newAuthRemoveKeyCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthSetKeyCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store the GotHub API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.keys.SetAPIKey(cmd.Context(), application.SetAPIKeyCommand{Value: value}); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "api key stored")
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "API key from your GotHub account page")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newAuthRemoveKeyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-key",
		Short: "Remove the stored GotHub API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.keys.RemoveAPIKey(cmd.Context())
		},
	}
}

func newAuthStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := app.keys.APIKey(cmd.Context())
			if errors.Is(err, domain.ErrCredentialMissing) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "api key: not configured")
				return err
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "api key: %s\n", maskKey(key))
			return err
		},
	}
}

func maskKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
