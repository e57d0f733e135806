package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/bnema/gothub-kernel/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kernel configuration file",
	}

	cmd.AddCommand(newConfigInitCmd(app), newConfigPathCmd(app))

	return cmd
}

func newConfigInitCmd(app *app) *cobra.Command {
	var serverURL string
	var firebaseAPIKey string
	var ledgerBackend string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		// The file being written may not exist yet, so skip loading it.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.configPath
			if path == "" {
				dir, err := config.DefaultDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.toml")
			}

			file := config.DefaultFile()
			file.Server.URL = serverURL
			file.Firebase.APIKey = firebaseAPIKey
			switch config.LedgerBackend(ledgerBackend) {
			case "":
			case config.LedgerFirestore, config.LedgerSQLite, config.LedgerTOML:
				file.Ledger.Backend = ledgerBackend
			default:
				return fmt.Errorf("unknown ledger backend %q", ledgerBackend)
			}

			if err := config.WriteFile(path, file, force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "GotHub server base URL")
	cmd.Flags().StringVar(&firebaseAPIKey, "firebase-api-key", "", "Firebase web API key")
	cmd.Flags().StringVar(&ledgerBackend, "ledger", "", "Usage ledger backend (firestore|sqlite|toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigPathCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.cfg.File
			if path == "" {
				path = app.cfg.DefaultConfigFile() + " (not created)"
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
