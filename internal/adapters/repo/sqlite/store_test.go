package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
	portmocks "github.com/bnema/gothub-kernel/internal/ports/mocks"
)

var fixedNow = time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	clock := portmocks.NewMockClock(t)
	clock.EXPECT().Now().Return(fixedNow).Maybe()

	path := filepath.Join(t.TempDir(), "usage.db")
	store, err := Open(path, clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestOpenSetsSchemaVersion(t *testing.T) {
	store, _ := openTestStore(t)

	version, err := userVersion(store.db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	var journalMode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}

func TestOpenIsIdempotent(t *testing.T) {
	store, path := openTestStore(t)
	key := domain.UsageKey{UserID: "user-1", Capability: domain.CapabilityChat}
	require.NoError(t, store.Increment(context.Background(), key, domain.UsageDelta{Chats: 2}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	record, err := reopened.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.Chats)
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Get(context.Background(), domain.UsageKey{UserID: "nobody", Capability: domain.CapabilityChat})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStoreCreateAndIncrement(t *testing.T) {
	store, _ := openTestStore(t)
	key := domain.UsageKey{UserID: "user-1", Capability: domain.CapabilityImage}
	created := fixedNow.Add(-time.Hour)

	require.NoError(t, store.Create(context.Background(), key, domain.UsageRecord{CreatedAt: created, UpdatedAt: created}))
	require.NoError(t, store.Increment(context.Background(), key, domain.UsageDelta{Images: 1, CharactersOut: 12}))
	require.NoError(t, store.Increment(context.Background(), key, domain.UsageDelta{Images: 1, CharactersOut: 3}))

	record, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, domain.UsageRecord{
		CreatedAt:     created,
		UpdatedAt:     fixedNow,
		Images:        2,
		CharactersOut: 15,
	}, record)

	_, err = store.Get(context.Background(), domain.UsageKey{UserID: "user-1", Capability: domain.CapabilityChat})
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}
