package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/gothub-kernel/internal/adapters/secrets/env"
	filestore "github.com/bnema/gothub-kernel/internal/adapters/secrets/file"
	passstore "github.com/bnema/gothub-kernel/internal/adapters/secrets/pass"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

// Store tries its backends in order. Reads return the first hit; writes go to
// the first backend that accepts them.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret store chain has no backends")

func NewStore(backends ...ports.SecretStore) *Store {
	store, err := NewStoreChecked(backends...)
	if err != nil {
		panic(err)
	}
	return store
}

func NewStoreChecked(backends ...ports.SecretStore) (*Store, error) {
	filtered := make([]ports.SecretStore, 0, len(backends))
	for _, backend := range backends {
		if backend != nil {
			filtered = append(filtered, backend)
		}
	}
	if len(filtered) == 0 {
		return nil, errNoBackends
	}
	return &Store{backends: filtered}, nil
}

// NewDefault reads the environment first, then pass, then files under fileRoot.
func NewDefault(fileRoot string) (*Store, error) {
	return NewStoreChecked(envstore.NewStore(), passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("backend %d get: %w", i, err))
	}

	if allNotFound(errs) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", errors.Join(errs...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		if errors.Is(err, envstore.ErrReadOnly) {
			continue
		}
		errs = append(errs, fmt.Errorf("backend %d put: %w", i, err))
	}

	if len(errs) == 0 {
		return fmt.Errorf("put secret %q: no writable backend", key)
	}
	return errors.Join(errs...)
}

// Delete removes key from every writable backend so a stale copy cannot
// shadow a later write.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if shouldStop(err) {
			return err
		}
		if errors.Is(err, envstore.ErrReadOnly) || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		errs = append(errs, fmt.Errorf("backend %d delete: %w", i, err))
	}

	if deleted && len(errs) == 0 {
		return nil
	}
	if len(errs) == 0 {
		return fmt.Errorf("delete secret %q: no writable backend", key)
	}
	return errors.Join(errs...)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func allNotFound(errs []error) bool {
	for _, err := range errs {
		if !errors.Is(err, domain.ErrSecretNotFound) && !errors.Is(err, passstore.ErrUnavailable) {
			return false
		}
	}
	return true
}
