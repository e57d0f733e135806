package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect the GotHub account behind the API key",
	}

	cmd.AddCommand(
		newAccountWhoAmICmd(app),
	)

	return cmd
}

func newAccountWhoAmICmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the account record the server returns for the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gothub, err := app.gothubClient(cmd.Context())
			if err != nil {
				return err
			}

			account, err := gothub.WhoAmI(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch account: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(account)
		},
	}
}
