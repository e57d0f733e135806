package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/gothub-kernel/internal/adapters/render/status"
	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/spf13/cobra"
)

func newUsageCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "usage",
		Aliases: []string{"status"},
		Short:   "Show chat and image usage against your quota",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUsage(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type usageOutput struct {
	UserID string                    `json:"user_id"`
	Name   string                    `json:"name"`
	Email  string                    `json:"email"`
	Usage  []application.UsageStatus `json:"usage"`
}

func runUsage(cmd *cobra.Command, app *app, asJSON bool) error {
	model, err := app.selectedModel()
	if err != nil {
		return err
	}

	var report statusadapter.Report
	fetch := func(ctx context.Context) error {
		s, err := app.openSession(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = s.close() }()

		usage, err := s.ledger.Status(ctx, s.UserID)
		if err != nil {
			return err
		}

		report = statusadapter.Report{
			UserID: s.UserID,
			Name:   s.Name,
			Email:  s.Email,
			Model:  model,
			Usage:  usage,
		}
		return nil
	}

	if asJSON {
		if err := fetch(cmd.Context()); err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(usageOutput{UserID: report.UserID, Name: report.Name, Email: report.Email, Usage: report.Usage})
	}

	if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in and reading usage...", fetch); err != nil {
		return err
	}

	rendered, err := app.statusRenderer(report, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render usage: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
