// Package openai adapts OpenAI-compatible HTTP APIs. The same client serves
// OpenAI itself and Together, which only differ by base URL and key.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/bnema/gothub-kernel/internal/adapters/httpapi"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

type Client struct {
	name   string
	apiKey string
	client *goopenai.Client
}

var (
	_ ports.ChatProvider  = (*Client)(nil)
	_ ports.ImageProvider = (*Client)(nil)
)

// NewClient returns a client for the API at baseURL. name only labels errors.
// An empty apiKey yields a client whose calls fail with
// domain.ErrCredentialMissing.
func NewClient(name, baseURL, apiKey string, httpClient *http.Client) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &Client{name: name, apiKey: apiKey, client: goopenai.NewClientWithConfig(cfg)}
}

func (c *Client) StreamChat(ctx context.Context, req ports.ChatRequest, onChunk func(chunk string) error) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s api key: %w", c.name, domain.ErrCredentialMissing)
	}

	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, goopenai.ChatCompletionRequest{
		Model:     string(req.Model),
		Messages:  messages,
		MaxTokens: req.MaxTokens,
		Stop:      req.Stop,
		Stream:    true,
	})
	if err != nil {
		return "", c.wrap("start chat stream", err)
	}
	defer func() { _ = stream.Close() }()

	var reply strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return reply.String(), nil
		}
		if err != nil {
			return reply.String(), c.wrap("read chat stream", err)
		}

		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			reply.WriteString(choice.Delta.Content)
			if onChunk != nil {
				if err := onChunk(choice.Delta.Content); err != nil {
					return reply.String(), err
				}
			}
		}
	}
}

func (c *Client) GenerateImages(ctx context.Context, req ports.ImageRequest) (domain.ImageBatch, error) {
	if c.apiKey == "" {
		return domain.ImageBatch{}, fmt.Errorf("%s api key: %w", c.name, domain.ErrCredentialMissing)
	}

	count := req.Count
	if count <= 0 {
		count = 1
	}
	size := req.Size
	if size == "" {
		size = goopenai.CreateImageSize1024x1024
	}

	resp, err := c.client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          string(req.Model),
		N:              count,
		Size:           size,
		ResponseFormat: goopenai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return domain.ImageBatch{}, c.wrap("generate images", err)
	}

	batch := domain.ImageBatch{Images: make([]domain.ImageRef, 0, len(resp.Data))}
	for _, image := range resp.Data {
		if image.URL == "" {
			continue
		}
		batch.Images = append(batch.Images, domain.ImageRef{URL: image.URL, Caption: image.RevisedPrompt})
	}
	if len(batch.Images) == 0 {
		return domain.ImageBatch{}, fmt.Errorf("%s generate images: empty response: %w", c.name, domain.ErrProvider)
	}
	return batch, nil
}

func (c *Client) wrap(action string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if httpapi.IsTimeout(err) {
		return fmt.Errorf("%s %s: %w", c.name, action, errors.Join(domain.ErrTimeout, err))
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s %s: status %d: %s: %w", c.name, action, apiErr.HTTPStatusCode, apiErr.Message, domain.ErrProvider)
	}
	return fmt.Errorf("%s %s: %w", c.name, action, errors.Join(domain.ErrProvider, err))
}
