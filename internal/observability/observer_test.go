package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	events []observability.Event
}

func (r *recordingObserver) OnEvent(_ context.Context, event observability.Event) {
	r.events = append(r.events, event)
}

func TestLevelMapping(t *testing.T) {
	tests := []struct {
		level observability.Level
		text  string
		slog  slog.Level
	}{
		{level: observability.LevelVerbose, text: "DEBUG", slog: slog.LevelDebug},
		{level: observability.LevelInfo, text: "INFO", slog: slog.LevelInfo},
		{level: observability.LevelWarning, text: "WARN", slog: slog.LevelWarn},
		{level: observability.LevelError, text: "ERROR", slog: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.level.String())
			assert.Equal(t, tt.slog, tt.level.SlogLevel())
		})
	}
}

func TestSlogObserverWritesTypeAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := observability.NewSlogObserver(logger)

	observability.Emit(context.Background(), obs, "kernel", observability.EventGenerateComplete, observability.LevelInfo, map[string]any{
		"model": "gpt-4",
	})

	out := buf.String()
	assert.Contains(t, out, "kernel.generate.complete")
	assert.Contains(t, out, "source=kernel")
	assert.Contains(t, out, "model=gpt-4")
}

func TestNewLoggerHidesDebugUnlessVerbose(t *testing.T) {
	var quiet, verbose bytes.Buffer

	observability.NewLogger(&quiet, false).Debug("hidden")
	observability.NewLogger(&verbose, true).Debug("shown")

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "shown")
}

func TestEmitStampsSourceAndTime(t *testing.T) {
	obs := &recordingObserver{}

	observability.Emit(context.Background(), obs, "ledger", observability.EventLedgerIncrement, observability.LevelVerbose, nil)

	assert.Len(t, obs.events, 1)
	assert.Equal(t, observability.EventLedgerIncrement, obs.events[0].Type)
	assert.Equal(t, "ledger", obs.events[0].Source)
	assert.False(t, obs.events[0].Timestamp.IsZero())
}

func TestEmitWithNilObserverIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.Emit(context.Background(), nil, "kernel", observability.EventExecuteStart, observability.LevelInfo, nil)
	})
}
