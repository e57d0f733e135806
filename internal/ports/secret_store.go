package ports

import "context"

// SecretStore keeps credentials such as the GotHub API key out of the config
// file. Get wraps domain.ErrSecretNotFound when key is absent.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
