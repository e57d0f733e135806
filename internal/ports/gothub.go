package ports

import (
	"context"

	"github.com/bnema/gothub-kernel/internal/domain"
)

// CredentialExchanger trades the configured GotHub API key for the caller's
// identity and provider keys.
type CredentialExchanger interface {
	FetchCredentials(ctx context.Context) (domain.Credentials, error)
}

type PasswordSigner interface {
	SignIn(ctx context.Context, email, password string) (domain.SignInResult, error)
}

// IdentityService returns the caller's identity record as the server sends it.
type IdentityService interface {
	WhoAmI(ctx context.Context) (map[string]any, error)
}

// DiagnosticChannel posts a chat for server-side processing and returns the
// realtime path where results are published.
type DiagnosticChannel interface {
	PostChat(ctx context.Context, userID string, messages []domain.Message) (string, error)
}

type RealtimeSubscriber interface {
	Subscribe(ctx context.Context, path string, handle func(domain.RealtimeEvent) error) error
}
