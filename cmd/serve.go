package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"

	jsonloutput "github.com/bnema/gothub-kernel/internal/adapters/render/jsonl"
	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const maxRequestSize = 4 << 20

// executeRequest is one line read by serve.
type executeRequest struct {
	CellID string `json:"cell_id"`
	Code   string `json:"code"`
	Silent bool   `json:"silent"`
}

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run cells read as JSON lines from stdin",
		Long:  "serve reads {\"cell_id\", \"code\", \"silent\"} objects, one per line, and writes stream, display_data, error and execute_reply messages as JSON lines to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withKernel(cmd.Context(), func(kernel *application.Kernel) error {
				writer := jsonloutput.NewWriter(cmd.OutOrStdout())

				scanner := bufio.NewScanner(cmd.InOrStdin())
				scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
				for scanner.Scan() {
					if len(scanner.Bytes()) == 0 {
						continue
					}

					var req executeRequest
					if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
						if err := rejectRequest(writer, kernel.ExecutionCount(), err); err != nil {
							return err
						}
						continue
					}
					if req.CellID == "" {
						req.CellID = uuid.NewString()
					}

					writer.SetCell(req.CellID)
					reply := kernel.Execute(cmd.Context(), application.ExecuteRequest{Code: req.Code, Silent: req.Silent}, writer)
					if err := writer.Reply(string(reply.Status), reply.ExecutionCount); err != nil {
						return err
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read requests: %w", err)
				}
				return nil
			})
		},
	}
}

// rejectRequest answers a line that is not a valid request without ending
// the session.
func rejectRequest(writer *jsonloutput.Writer, executionCount int, err error) error {
	writer.SetCell("")
	if err := writer.ReportError(&domain.ExecutionError{Name: "RequestError", Value: fmt.Sprintf("decode request: %v", err)}); err != nil {
		return err
	}
	return writer.Reply(string(application.ReplyError), executionCount)
}
