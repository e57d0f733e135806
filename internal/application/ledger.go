package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const DefaultMaxCalls int64 = 1000

// Ledger enforces the per-user call ceiling on top of a UsageStore.
type Ledger struct {
	store    ports.UsageStore
	clock    ports.Clock
	maxCalls int64
	observer observability.Observer
}

func NewLedger(store ports.UsageStore, clock ports.Clock, maxCalls int64, observer observability.Observer) *Ledger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if maxCalls <= 0 {
		maxCalls = DefaultMaxCalls
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	return &Ledger{
		store:    store,
		clock:    clock,
		maxCalls: maxCalls,
		observer: observer,
	}
}

func (l *Ledger) MaxCalls() int64 {
	return l.maxCalls
}

// GetOrCreate reads the record for key, creating a zeroed one when the store
// reports it missing. Any other store error is returned unchanged.
func (l *Ledger) GetOrCreate(ctx context.Context, key domain.UsageKey) (domain.UsageRecord, error) {
	record, err := l.store.Get(ctx, key)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return domain.UsageRecord{}, err
	}

	now := l.clock.Now()
	record = domain.UsageRecord{CreatedAt: now, UpdatedAt: now}
	if err := l.store.Create(ctx, key, record); err != nil {
		return domain.UsageRecord{}, fmt.Errorf("create usage record %s: %w", key, err)
	}

	observability.Emit(ctx, l.observer, "ledger", observability.EventLedgerCreated, observability.LevelInfo, map[string]any{
		"key": key.String(),
	})
	return record, nil
}

// CheckQuota fails with domain.ErrQuotaExceeded once the record has reached
// the call ceiling. It never writes counters.
func (l *Ledger) CheckQuota(ctx context.Context, key domain.UsageKey) (domain.UsageRecord, error) {
	record, err := l.GetOrCreate(ctx, key)
	if err != nil {
		return domain.UsageRecord{}, fmt.Errorf("read usage record: %w", err)
	}

	if record.Chats >= l.maxCalls {
		observability.Emit(ctx, l.observer, "ledger", observability.EventQuotaExceeded, observability.LevelWarning, map[string]any{
			"key":       key.String(),
			"chats":     record.Chats,
			"max_calls": l.maxCalls,
		})
		return record, fmt.Errorf("%d of %d calls used: %w", record.Chats, l.maxCalls, domain.ErrQuotaExceeded)
	}

	return record, nil
}

func (l *Ledger) Increment(ctx context.Context, key domain.UsageKey, delta domain.UsageDelta) error {
	if delta.IsZero() {
		return nil
	}

	if err := l.store.Increment(ctx, key, delta); err != nil {
		return fmt.Errorf("increment usage record %s: %w", key, err)
	}

	observability.Emit(ctx, l.observer, "ledger", observability.EventLedgerIncrement, observability.LevelVerbose, map[string]any{
		"key":            key.String(),
		"chats":          delta.Chats,
		"characters_in":  delta.CharactersIn,
		"characters_out": delta.CharactersOut,
		"images":         delta.Images,
	})
	return nil
}
