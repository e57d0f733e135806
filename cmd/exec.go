package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	terminaloutput "github.com/bnema/gothub-kernel/internal/adapters/render/terminal"
	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const cellSeparator = "---"

func newExecCmd(app *app) *cobra.Command {
	var file string
	var plain bool

	cmd := &cobra.Command{
		Use:   "exec [cell...]",
		Short: "Run cells in one kernel session",
		Long:  "exec runs each argument as a cell, in order, sharing one conversation. With --file, cells are read from a file (- for stdin) and separated by lines containing only ---.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells := args
			if file != "" {
				fromFile, err := readCells(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				cells = append(cells, fromFile...)
			}
			if len(cells) == 0 {
				return fmt.Errorf("exec requires at least one cell")
			}

			out, err := newTerminalOutput(cmd, plain)
			if err != nil {
				return err
			}

			return app.withKernel(cmd.Context(), func(kernel *application.Kernel) error {
				failed := 0
				for _, cell := range cells {
					reply := kernel.Execute(cmd.Context(), application.ExecuteRequest{Code: cell}, out)
					if err := out.EndCell(); err != nil {
						return err
					}
					if reply.Status == application.ReplyError {
						failed++
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d cells failed", failed, len(cells))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read cells from a file (- for stdin)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Render markdown without terminal styling, even on a terminal")

	return cmd
}

// newTerminalOutput styles markdown only when stdout is a terminal.
func newTerminalOutput(cmd *cobra.Command, plain bool) (*terminaloutput.Output, error) {
	var opts []terminaloutput.Option
	if plain || !isTerminal(cmd.OutOrStdout()) {
		opts = append(opts, terminaloutput.WithStyle("notty"))
	}
	return terminaloutput.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func readCells(stdin io.Reader, path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read cells: %w", err)
	}

	return splitCells(string(data)), nil
}

// splitCells cuts text on separator lines and drops cells that are only
// whitespace.
func splitCells(text string) []string {
	var cells []string
	var current []string
	flush := func() {
		cell := strings.Join(current, "\n")
		if strings.TrimSpace(cell) != "" {
			cells = append(cells, strings.Trim(cell, "\n"))
		}
		current = current[:0]
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == cellSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return cells
}
