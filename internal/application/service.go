package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

// APIKeySecret is the secret store key holding the GotHub API key.
const APIKeySecret = "gothub/api_key"

// KeyService manages the GotHub API key in the secret store.
type KeyService struct {
	store ports.SecretStore
}

func NewKeyService(store ports.SecretStore) *KeyService {
	return &KeyService{store: store}
}

// APIKey returns the stored key, or domain.ErrCredentialMissing when none is
// set.
func (s *KeyService) APIKey(ctx context.Context) (string, error) {
	value, err := s.store.Get(ctx, APIKeySecret)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("gothub api key: %w", domain.ErrCredentialMissing)
		}
		return "", fmt.Errorf("get api key: %w", err)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("gothub api key: %w", domain.ErrCredentialMissing)
	}
	return value, nil
}

// SetAPIKey stores a new key and reads it back. When the read-back does not
// match, the previous key is restored.
func (s *KeyService) SetAPIKey(ctx context.Context, cmd SetAPIKeyCommand) error {
	value := strings.TrimSpace(cmd.Value)
	if value == "" {
		return errors.New("api key is required")
	}

	previous, err := s.store.Get(ctx, APIKeySecret)
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			return fmt.Errorf("get previous api key: %w", err)
		}
		previous = ""
	}

	if err := s.store.Put(ctx, APIKeySecret, value); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	stored, err := s.store.Get(ctx, APIKeySecret)
	if err == nil && stored == value {
		return nil
	}
	if err == nil {
		err = errors.New("stored api key does not match")
	}

	if rollbackErr := s.restore(ctx, previous); rollbackErr != nil {
		return fmt.Errorf("verify api key and rollback: %w", errors.Join(err, rollbackErr))
	}
	return fmt.Errorf("verify api key: %w", err)
}

func (s *KeyService) RemoveAPIKey(ctx context.Context) error {
	if err := s.store.Delete(ctx, APIKeySecret); err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("delete api key: %w", err)
	}
	return nil
}

func (s *KeyService) restore(ctx context.Context, previous string) error {
	if previous == "" {
		return s.store.Delete(ctx, APIKeySecret)
	}
	return s.store.Put(ctx, APIKeySecret, previous)
}
