package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const DefaultLoginAttempts = 3

// Bootstrapper establishes the kernel session: it exchanges the API key for
// credentials, retrying only timeouts, then signs in with the returned
// password.
type Bootstrapper struct {
	exchanger ports.CredentialExchanger
	signer    ports.PasswordSigner
	attempts  int
	observer  observability.Observer
}

func NewBootstrapper(exchanger ports.CredentialExchanger, signer ports.PasswordSigner, attempts int, observer observability.Observer) *Bootstrapper {
	if attempts <= 0 {
		attempts = DefaultLoginAttempts
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	return &Bootstrapper{
		exchanger: exchanger,
		signer:    signer,
		attempts:  attempts,
		observer:  observer,
	}
}

func (b *Bootstrapper) Bootstrap(ctx context.Context) (domain.Session, error) {
	creds, err := b.fetchCredentials(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	signIn, err := b.signer.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign in %s: %w", creds.Email, err)
	}

	userID := creds.UserID
	if userID == "" {
		userID = signIn.UserID
	}

	observability.Emit(ctx, b.observer, "bootstrap", observability.EventBootstrapComplete, observability.LevelInfo, map[string]any{
		"user_id": userID,
	})

	return domain.Session{
		UserID:       userID,
		Name:         creds.Name,
		Email:        creds.Email,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
		Keys:         creds.Keys,
	}, nil
}

func (b *Bootstrapper) fetchCredentials(ctx context.Context) (domain.Credentials, error) {
	var lastErr error
	for attempt := 1; attempt <= b.attempts; attempt++ {
		observability.Emit(ctx, b.observer, "bootstrap", observability.EventBootstrapAttempt, observability.LevelVerbose, map[string]any{
			"attempt": attempt,
		})

		creds, err := b.exchanger.FetchCredentials(ctx)
		if err == nil {
			return creds, nil
		}
		if !errors.Is(err, domain.ErrTimeout) {
			return domain.Credentials{}, fmt.Errorf("fetch credentials: %w", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Credentials{}, fmt.Errorf("fetch credentials: %w", ctxErr)
		}

		lastErr = err
		observability.Emit(ctx, b.observer, "bootstrap", observability.EventBootstrapRetry, observability.LevelWarning, map[string]any{
			"attempt": attempt,
			"error":   err.Error(),
		})
	}

	return domain.Credentials{}, fmt.Errorf("fetch credentials after %d attempts: %w", b.attempts, errors.Join(domain.ErrAuthUnavailable, lastErr))
}
