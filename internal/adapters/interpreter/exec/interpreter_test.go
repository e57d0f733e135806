package exec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
)

func TestExecuteCapturesStreams(t *testing.T) {
	t.Parallel()

	interp := New([]string{"sh", "-c"}, "")

	result, err := interp.Execute(context.Background(), "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
	assert.Zero(t, result.ExitCode)
}

func TestExecuteReportsExitCode(t *testing.T) {
	t.Parallel()

	interp := New([]string{"sh", "-c"}, "")

	result, err := interp.Execute(context.Background(), "echo partial; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "partial\n", result.Stdout)
}

func TestExecuteMissingBinary(t *testing.T) {
	t.Parallel()

	interp := New([]string{"gothub-no-such-interpreter"}, "")

	_, err := interp.Execute(context.Background(), "print(1)")
	require.ErrorIs(t, err, domain.ErrInterpreter)
}

func TestExecuteEmptyCommand(t *testing.T) {
	t.Parallel()

	_, err := New(nil, "").Execute(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrInterpreter)
}

func TestExecuteHonorsDeadline(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New([]string{"sh", "-c"}, "").Execute(ctx, "sleep 5")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
