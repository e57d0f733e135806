// Package exec runs passthrough cells with an external interpreter such as
// python3 -c.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"time"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

// waitDelay bounds how long output copying may outlive a killed process.
const waitDelay = 2 * time.Second

// Interpreter appends the cell source as the last argument of Command.
type Interpreter struct {
	Command []string
	Dir     string
}

var _ ports.Interpreter = (*Interpreter)(nil)

func New(command []string, dir string) *Interpreter {
	return &Interpreter{Command: append([]string(nil), command...), Dir: dir}
}

// Execute reports a nonzero exit through ExitCode, not as an error. Errors
// mean the interpreter could not run at all.
func (i *Interpreter) Execute(ctx context.Context, code string) (ports.InterpreterResult, error) {
	if len(i.Command) == 0 {
		return ports.InterpreterResult{}, fmt.Errorf("interpreter command is empty: %w", domain.ErrInterpreter)
	}

	path, err := osexec.LookPath(i.Command[0])
	if err != nil {
		return ports.InterpreterResult{}, fmt.Errorf("locate %s: %w", i.Command[0], errors.Join(domain.ErrInterpreter, err))
	}

	args := append(append([]string(nil), i.Command[1:]...), code)
	cmd := osexec.CommandContext(ctx, path, args...)
	cmd.Dir = i.Dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := ports.InterpreterResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, fmt.Errorf("run %s: %w", i.Command[0], errors.Join(domain.ErrInterpreter, err))
}
