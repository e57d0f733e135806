// Package replicate runs image models hosted on Replicate.
package replicate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	replicatego "github.com/replicate/replicate-go"

	"github.com/bnema/gothub-kernel/internal/adapters/httpapi"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

type runFunc func(ctx context.Context, identifier string, input replicatego.PredictionInput) (replicatego.PredictionOutput, error)

type Client struct {
	run runFunc
}

var _ ports.ImageProvider = (*Client)(nil)

// NewClient builds a Replicate client. An empty token yields a client whose
// calls fail with domain.ErrCredentialMissing.
func NewClient(baseURL, token string, httpClient *http.Client) (*Client, error) {
	if token == "" {
		return &Client{run: func(context.Context, string, replicatego.PredictionInput) (replicatego.PredictionOutput, error) {
			return nil, fmt.Errorf("replicate api token: %w", domain.ErrCredentialMissing)
		}}, nil
	}

	opts := []replicatego.ClientOption{replicatego.WithToken(token)}
	if baseURL != "" {
		opts = append(opts, replicatego.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	if httpClient != nil {
		opts = append(opts, replicatego.WithHTTPClient(httpClient))
	}

	client, err := replicatego.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create replicate client: %w", err)
	}

	return &Client{run: func(ctx context.Context, identifier string, input replicatego.PredictionInput) (replicatego.PredictionOutput, error) {
		return client.Run(ctx, identifier, input, nil)
	}}, nil
}

func (c *Client) GenerateImages(ctx context.Context, req ports.ImageRequest) (domain.ImageBatch, error) {
	input := replicatego.PredictionInput{"prompt": req.Prompt}
	if width, height, ok := parseSize(req.Size); ok {
		input["width"] = width
		input["height"] = height
	}
	if req.Count > 1 {
		input["num_outputs"] = req.Count
	}

	output, err := c.run(ctx, string(req.Model), input)
	if err != nil {
		return domain.ImageBatch{}, wrap(err)
	}

	urls := outputURLs(output)
	if len(urls) == 0 {
		return domain.ImageBatch{}, fmt.Errorf("replicate run %s: no image in output: %w", req.Model, domain.ErrProvider)
	}

	batch := domain.ImageBatch{Images: make([]domain.ImageRef, 0, len(urls))}
	for _, url := range urls {
		batch.Images = append(batch.Images, domain.ImageRef{URL: url})
	}
	return batch, nil
}

// outputURLs flattens the shapes image models return: a single URL or a list
// of them.
func outputURLs(output replicatego.PredictionOutput) []string {
	switch v := any(output).(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				urls = append(urls, s)
			}
		}
		return urls
	default:
		return nil
	}
}

func parseSize(size string) (int, int, bool) {
	var width, height int
	if _, err := fmt.Sscanf(size, "%dx%d", &width, &height); err != nil || width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

func wrap(err error) error {
	if errors.Is(err, domain.ErrCredentialMissing) || errors.Is(err, context.Canceled) {
		return err
	}
	if httpapi.IsTimeout(err) {
		return fmt.Errorf("replicate run: %w", errors.Join(domain.ErrTimeout, err))
	}
	return fmt.Errorf("replicate run: %w", errors.Join(domain.ErrProvider, err))
}
