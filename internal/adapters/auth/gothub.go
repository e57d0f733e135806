package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/gothub-kernel/internal/adapters/httpapi"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const apiKeyHeader = "GotHub-API-Key"

type GotHubAPI struct {
	BaseURL        string
	CredentialPath string
	WhoAmIPath     string
	ChatPath       string
}

func DefaultGotHubAPI(baseURL string) GotHubAPI {
	return GotHubAPI{
		BaseURL:        baseURL,
		CredentialPath: "my-firebase-password",
		WhoAmIPath:     "whoami",
		ChatPath:       "chat",
	}
}

// GotHubClient talks to the GotHub server on behalf of one API key.
type GotHubClient struct {
	API            GotHubAPI
	APIKey         string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var (
	_ ports.CredentialExchanger = GotHubClient{}
	_ ports.IdentityService     = GotHubClient{}
	_ ports.DiagnosticChannel   = GotHubClient{}
)

type credentialsResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	OpenAIKey      string `json:"OPENAI_API_KEY"`
	TogetherKey    string `json:"TOGETHER_API_KEY"`
	ReplicateToken string `json:"REPLICATE_API_TOKEN"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	UserID   string        `json:"user_id"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	RefPath string `json:"ref_path"`
}

func (c GotHubClient) FetchCredentials(ctx context.Context) (domain.Credentials, error) {
	var payload credentialsResponse
	if err := c.get(ctx, c.API.CredentialPath, &payload); err != nil {
		return domain.Credentials{}, fmt.Errorf("request credentials: %w", err)
	}
	if payload.Email == "" || payload.Password == "" {
		return domain.Credentials{}, fmt.Errorf("credentials response missing email or password: %w", domain.ErrAuthRejected)
	}

	return domain.Credentials{
		UserID:   payload.ID,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Keys: domain.ProviderKeys{
			OpenAI:    payload.OpenAIKey,
			Together:  payload.TogetherKey,
			Replicate: payload.ReplicateToken,
		},
	}, nil
}

func (c GotHubClient) WhoAmI(ctx context.Context) (map[string]any, error) {
	var payload map[string]any
	if err := c.get(ctx, c.API.WhoAmIPath, &payload); err != nil {
		return nil, fmt.Errorf("request whoami: %w", err)
	}
	return payload, nil
}

func (c GotHubClient) PostChat(ctx context.Context, userID string, messages []domain.Message) (string, error) {
	if err := c.checkKey(); err != nil {
		return "", err
	}
	endpoint, err := httpapi.BuildURL(c.API.BaseURL, c.API.ChatPath)
	if err != nil {
		return "", err
	}

	body := chatRequest{UserID: userID, Messages: make([]chatMessage, 0, len(messages))}
	for _, msg := range messages {
		body.Messages = append(body.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	var payload chatResponse
	if err := c.requester().DoJSON(ctx, http.MethodPost, endpoint, c.header(), body, &payload); err != nil {
		return "", fmt.Errorf("post chat: %w", err)
	}
	return payload.RefPath, nil
}

func (c GotHubClient) get(ctx context.Context, path string, out any) error {
	if err := c.checkKey(); err != nil {
		return err
	}
	endpoint, err := httpapi.BuildURL(c.API.BaseURL, path)
	if err != nil {
		return err
	}
	return c.requester().DoJSON(ctx, http.MethodGet, endpoint, c.header(), nil, out)
}

func (c GotHubClient) checkKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("gothub api key: %w", domain.ErrCredentialMissing)
	}
	return nil
}

func (c GotHubClient) header() http.Header {
	header := http.Header{}
	header.Set(apiKeyHeader, c.APIKey)
	return header
}

func (c GotHubClient) requester() httpapi.Requester {
	return httpapi.Requester{Client: c.HTTPClient, Timeout: c.RequestTimeout}
}
