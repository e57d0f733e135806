package ports

import (
	"context"

	"github.com/bnema/gothub-kernel/internal/domain"
)

// UsageStore persists one usage record per user and capability. Get returns
// domain.ErrRecordNotFound when the record does not exist yet.
type UsageStore interface {
	Get(ctx context.Context, key domain.UsageKey) (domain.UsageRecord, error)
	Create(ctx context.Context, key domain.UsageKey, record domain.UsageRecord) error
	Increment(ctx context.Context, key domain.UsageKey, delta domain.UsageDelta) error
}
