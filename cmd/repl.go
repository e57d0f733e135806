package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const historyFile = "history"

func newReplCmd(app *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive kernel session",
		Long:  "repl reads cells from the terminal. End a line with \\ to continue the cell on the next line. Ctrl-D exits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := newTerminalOutput(cmd, plain)
			if err != nil {
				return err
			}

			return app.withKernel(cmd.Context(), func(kernel *application.Kernel) error {
				line := liner.NewLiner()
				defer line.Close()
				line.SetCtrlCAborts(true)

				historyPath := filepath.Join(app.cfg.Dir, historyFile)
				loadHistory(line, historyPath)
				defer saveHistory(app, line, historyPath)

				session := kernel.Session()
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "signed in as %s, model %s\n", session.Email, kernel.Model())

				for {
					cell, err := readCell(line, kernel.ExecutionCount()+1)
					if errors.Is(err, liner.ErrPromptAborted) {
						continue
					}
					if errors.Is(err, io.EOF) {
						return nil
					}
					if err != nil {
						return fmt.Errorf("read cell: %w", err)
					}
					if strings.TrimSpace(cell) == "" {
						continue
					}

					line.AppendHistory(cell)
					// Ctrl-C while a cell runs cancels that cell only.
					cellCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
					kernel.Execute(cellCtx, application.ExecuteRequest{Code: cell}, out)
					stop()
					if err := out.EndCell(); err != nil {
						return err
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Render markdown without terminal styling, even on a terminal")

	return cmd
}

// readCell joins continuation lines ending in a backslash.
func readCell(line *liner.State, count int) (string, error) {
	prompt := fmt.Sprintf("In [%d]: ", count)
	continuation := strings.Repeat(" ", len(prompt)-5) + "...: "

	var parts []string
	for {
		text, err := line.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if !strings.HasSuffix(text, "\\") {
			parts = append(parts, text)
			return strings.Join(parts, "\n"), nil
		}
		parts = append(parts, strings.TrimSuffix(text, "\\"))
		prompt = continuation
	}
}

func loadHistory(line *liner.State, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.ReadHistory(f)
}

func saveHistory(app *app, line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		app.logger.Warn("save repl history", "error", err)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		app.logger.Warn("save repl history", "error", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		app.logger.Warn("save repl history", "error", err)
	}
}
