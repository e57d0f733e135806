package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/gothub-kernel/internal/adapters/httpapi"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const signInPath = "v1/accounts:signInWithPassword"

// PasswordSignIn exchanges an email and password for a Firebase ID token
// through the Identity Toolkit REST API.
type PasswordSignIn struct {
	BaseURL        string
	APIKey         string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.PasswordSigner = PasswordSignIn{}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s PasswordSignIn) SignIn(ctx context.Context, email, password string) (domain.SignInResult, error) {
	if s.APIKey == "" {
		return domain.SignInResult{}, fmt.Errorf("firebase api key: %w", domain.ErrConfigMissing)
	}

	endpoint, err := httpapi.BuildURL(s.BaseURL, signInPath)
	if err != nil {
		return domain.SignInResult{}, err
	}
	endpoint += "?key=" + url.QueryEscape(s.APIKey)

	var payload signInResponse
	err = httpapi.Requester{Client: s.HTTPClient, Timeout: s.RequestTimeout}.DoJSON(ctx, http.MethodPost, endpoint, nil, signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &payload)
	if err != nil {
		if rejectedCredentials(err) {
			err = errors.Join(err, domain.ErrAuthRejected)
		}
		return domain.SignInResult{}, fmt.Errorf("sign in with password: %w", err)
	}
	if payload.IDToken == "" {
		return domain.SignInResult{}, fmt.Errorf("sign in response missing id token: %w", domain.ErrAuthRejected)
	}

	return domain.SignInResult{
		UserID:       payload.LocalID,
		IDToken:      payload.IDToken,
		RefreshToken: payload.RefreshToken,
	}, nil
}

// rejectedCredentials spots Identity Toolkit 400 responses that mean the
// email or password was refused.
func rejectedCredentials(err error) bool {
	if errors.Is(err, domain.ErrAuthRejected) {
		return false
	}
	message := err.Error()
	for _, code := range []string{"INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED"} {
		if strings.Contains(message, code) {
			return true
		}
	}
	return false
}
