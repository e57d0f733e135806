package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const (
	diagnosticFrame   = `<iframe src="https://wikipedia.com/"></iframe>`
	diagnosticMessage = "super king debug"

	DefaultDiagnosticTimeout = 30 * time.Second
)

// Diagnostics drives the debug side channel. It is display only: nothing it
// does touches the conversation or the ledger.
type Diagnostics struct {
	channel  ports.DiagnosticChannel
	realtime ports.RealtimeSubscriber
	timeout  time.Duration
	observer observability.Observer
}

func NewDiagnostics(channel ports.DiagnosticChannel, realtime ports.RealtimeSubscriber, timeout time.Duration, observer observability.Observer) *Diagnostics {
	if timeout <= 0 {
		timeout = DefaultDiagnosticTimeout
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	return &Diagnostics{
		channel:  channel,
		realtime: realtime,
		timeout:  timeout,
		observer: observer,
	}
}

func (d *Diagnostics) Run(ctx context.Context, session domain.Session, out ports.Output) error {
	if err := out.Display(domain.HTMLDisplay(diagnosticFrame)); err != nil {
		return fmt.Errorf("display diagnostic frame: %w", err)
	}
	if d == nil || d.channel == nil {
		return nil
	}

	refPath, err := d.channel.PostChat(ctx, session.UserID, []domain.Message{
		domain.NewMessage(domain.RoleUser, diagnosticMessage),
	})
	if err != nil {
		return fmt.Errorf("post diagnostic chat: %w", err)
	}
	if err := out.Stream(domain.StreamStdout, refPath+"\n"); err != nil {
		return err
	}
	if d.realtime == nil || refPath == "" {
		return nil
	}

	streamCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err = d.realtime.Subscribe(streamCtx, refPath, func(event domain.RealtimeEvent) error {
		observability.Emit(ctx, d.observer, "diagnostic", observability.EventDiagnosticEvent, observability.LevelVerbose, map[string]any{
			"type": event.Type,
			"path": event.Path,
		})
		return out.Stream(domain.StreamStdout, formatRealtimeEvent(event))
	})
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(streamCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("stream diagnostic events: %w", err)
	}
	return nil
}

func formatRealtimeEvent(event domain.RealtimeEvent) string {
	return fmt.Sprintf("%s %s %s\n", event.Type, event.Path, event.Data)
}
