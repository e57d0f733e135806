// Package observability carries typed kernel events to logs. Levels follow
// the OpenTelemetry severity number ranges.
package observability

import (
	"context"
	"log/slog"
	"time"
)

type Level int

const (
	LevelVerbose Level = 5
	LevelInfo    Level = 9
	LevelWarning Level = 13
	LevelError   Level = 17
)

func (l Level) String() string {
	switch {
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	default:
		return "ERROR"
	}
}

func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

type EventType string

const (
	EventBootstrapAttempt    EventType = "bootstrap.attempt"
	EventBootstrapRetry      EventType = "bootstrap.retry"
	EventBootstrapComplete   EventType = "bootstrap.complete"
	EventExecuteStart        EventType = "kernel.execute.start"
	EventExecuteComplete     EventType = "kernel.execute.complete"
	EventExecuteError        EventType = "kernel.execute.error"
	EventCommandParsed       EventType = "kernel.command.parsed"
	EventConversationReset   EventType = "kernel.conversation.reset"
	EventGenerateStart       EventType = "kernel.generate.start"
	EventGenerateComplete    EventType = "kernel.generate.complete"
	EventLedgerCreated       EventType = "ledger.record.created"
	EventLedgerIncrement     EventType = "ledger.increment"
	EventLedgerIncrementFail EventType = "ledger.increment.failed"
	EventQuotaExceeded       EventType = "ledger.quota.exceeded"
	EventDiagnosticEvent     EventType = "diagnostic.event"
)

// Event maps onto an OTel LogRecord: Type is the event name and Data the
// attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emit stamps and sends an event. A nil observer drops it.
func Emit(ctx context.Context, obs Observer, source string, typ EventType, level Level, data map[string]any) {
	if obs == nil {
		return
	}

	obs.OnEvent(ctx, Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Data:      data,
	})
}
