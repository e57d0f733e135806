package application

import (
	"context"
	"fmt"

	"github.com/bnema/gothub-kernel/internal/domain"
)

type UsageStatus struct {
	Capability  domain.Capability
	Record      domain.UsageRecord
	MaxCalls    int64
	UsedPercent float64
}

// Status reads (creating if needed) the chat and image records for userID.
func (l *Ledger) Status(ctx context.Context, userID string) ([]UsageStatus, error) {
	capabilities := []domain.Capability{domain.CapabilityChat, domain.CapabilityImage}
	statuses := make([]UsageStatus, 0, len(capabilities))

	for _, capability := range capabilities {
		key := domain.UsageKey{UserID: userID, Capability: capability}
		record, err := l.GetOrCreate(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read usage %s: %w", key, err)
		}

		statuses = append(statuses, UsageStatus{
			Capability:  capability,
			Record:      record,
			MaxCalls:    l.maxCalls,
			UsedPercent: record.UsedPercent(l.maxCalls),
		})
	}

	return statuses, nil
}
