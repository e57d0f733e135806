package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports/mocks"
)

var testCredentials = domain.Credentials{
	UserID:   "user-1",
	Name:     "Ada",
	Email:    "ada@example.com",
	Password: "pw",
	Keys:     domain.ProviderKeys{OpenAI: "sk-1", Together: "tg-1", Replicate: "r8-1"},
}

func TestBootstrapBuildsSession(t *testing.T) {
	exchanger := mocks.NewMockCredentialExchanger(t)
	signer := mocks.NewMockPasswordSigner(t)

	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(testCredentials, nil).Once()
	signer.EXPECT().SignIn(mockAnyContext(), "ada@example.com", "pw").
		Return(domain.SignInResult{UserID: "firebase-uid", IDToken: "id-token", RefreshToken: "refresh"}, nil)

	session, err := NewBootstrapper(exchanger, signer, 0, nil).Bootstrap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Session{
		UserID:       "user-1",
		Name:         "Ada",
		Email:        "ada@example.com",
		Token:        "id-token",
		RefreshToken: "refresh",
		Keys:         testCredentials.Keys,
	}, session)
}

func TestBootstrapFallsBackToSignInUserID(t *testing.T) {
	exchanger := mocks.NewMockCredentialExchanger(t)
	signer := mocks.NewMockPasswordSigner(t)
	creds := testCredentials
	creds.UserID = ""

	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(creds, nil)
	signer.EXPECT().SignIn(mockAnyContext(), "ada@example.com", "pw").Return(domain.SignInResult{UserID: "firebase-uid", IDToken: "t"}, nil)

	session, err := NewBootstrapper(exchanger, signer, 1, nil).Bootstrap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", session.UserID)
}

func TestBootstrapRetriesTimeouts(t *testing.T) {
	exchanger := mocks.NewMockCredentialExchanger(t)
	signer := mocks.NewMockPasswordSigner(t)
	timeout := fmt.Errorf("GET my-firebase-password: %w", domain.ErrTimeout)

	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(domain.Credentials{}, timeout).Twice()
	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(testCredentials, nil).Once()
	signer.EXPECT().SignIn(mockAnyContext(), "ada@example.com", "pw").Return(domain.SignInResult{IDToken: "t"}, nil)

	_, err := NewBootstrapper(exchanger, signer, 3, nil).Bootstrap(context.Background())
	require.NoError(t, err)
}

func TestBootstrapFailsFastAfterAttempts(t *testing.T) {
	exchanger := mocks.NewMockCredentialExchanger(t)
	signer := mocks.NewMockPasswordSigner(t)

	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(domain.Credentials{}, domain.ErrTimeout).Times(3)

	_, err := NewBootstrapper(exchanger, signer, 3, nil).Bootstrap(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthUnavailable)
	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.ErrorContains(t, err, "after 3 attempts")
}

func TestBootstrapDoesNotRetryRejection(t *testing.T) {
	exchanger := mocks.NewMockCredentialExchanger(t)
	signer := mocks.NewMockPasswordSigner(t)

	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(domain.Credentials{}, domain.ErrAuthRejected).Once()

	_, err := NewBootstrapper(exchanger, signer, 3, nil).Bootstrap(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthRejected)
}

func TestBootstrapSignInFailure(t *testing.T) {
	exchanger := mocks.NewMockCredentialExchanger(t)
	signer := mocks.NewMockPasswordSigner(t)
	rejected := errors.Join(errors.New("INVALID_PASSWORD"), domain.ErrAuthRejected)

	exchanger.EXPECT().FetchCredentials(mockAnyContext()).Return(testCredentials, nil)
	signer.EXPECT().SignIn(mockAnyContext(), "ada@example.com", "pw").Return(domain.SignInResult{}, rejected)

	_, err := NewBootstrapper(exchanger, signer, 3, nil).Bootstrap(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthRejected)
}
