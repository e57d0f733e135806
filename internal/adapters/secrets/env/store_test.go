package env

import (
	"context"
	"testing"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableName(t *testing.T) {
	assert.Equal(t, "GOTHUB_API_KEY", VariableName("gothub/api_key"))
	assert.Equal(t, "GOTHUB_API_KEY", VariableName(" gothub.api-key "))
}

func TestStoreGetReadsVariable(t *testing.T) {
	store := &Store{lookup: func(name string) (string, bool) {
		assert.Equal(t, "GOTHUB_API_KEY", name)
		return " key-123\n", true
	}}

	value, err := store.Get(context.Background(), "gothub/api_key")
	require.NoError(t, err)
	assert.Equal(t, "key-123", value)
}

func TestStoreGetMissingOrBlankIsNotFound(t *testing.T) {
	missing := &Store{lookup: func(string) (string, bool) { return "", false }}
	blank := &Store{lookup: func(string) (string, bool) { return "  ", true }}

	_, err := missing.Get(context.Background(), "gothub/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)

	_, err = blank.Get(context.Background(), "gothub/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreIsReadOnly(t *testing.T) {
	store := NewStore()

	require.ErrorIs(t, store.Put(context.Background(), "gothub/api_key", "x"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(context.Background(), "gothub/api_key"), ErrReadOnly)
}
