package cmd

import (
	"strings"

	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/spf13/cobra"
)

func newAskCmd(app *app) *cobra.Command {
	var req application.AskRequest
	var plain bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one question outside any conversation",
		Long:  "ask sends a system prompt and a single user message to the selected model (--model, or the configured default) and streams the answer. It is billed like a chat cell.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Question = strings.Join(args, " ")
			if err := req.Validate(); err != nil {
				return err
			}

			out, err := newTerminalOutput(cmd, plain)
			if err != nil {
				return err
			}

			return app.withKernel(cmd.Context(), func(kernel *application.Kernel) error {
				if _, err := kernel.Ask(cmd.Context(), req, out); err != nil {
					return err
				}
				return out.EndCell()
			})
		},
	}

	cmd.Flags().StringVar(&req.SystemPrompt, "system", "", "System prompt sent before the question")
	cmd.Flags().StringVar(&req.Prompt, "prompt", "", "User message, instead of the question argument")
	cmd.Flags().BoolVar(&plain, "plain", false, "Render markdown without terminal styling, even on a terminal")

	return cmd
}
