package ports

import (
	"context"

	"github.com/bnema/gothub-kernel/internal/domain"
)

// Output is the host side of a running cell.
type Output interface {
	Stream(name domain.StreamName, text string) error
	Display(data domain.DisplayData) error
	ReportError(err *domain.ExecutionError) error
}

type InterpreterResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type Interpreter interface {
	Execute(ctx context.Context, code string) (InterpreterResult, error)
}
