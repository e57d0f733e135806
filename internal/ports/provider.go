package ports

import (
	"context"

	"github.com/bnema/gothub-kernel/internal/domain"
)

type ChatRequest struct {
	Model     domain.ModelID
	Messages  []domain.Message
	MaxTokens int
	Stop      []string
}

// ChatProvider streams a chat completion. onChunk receives every partial text
// as soon as it arrives; the full concatenated text is returned.
type ChatProvider interface {
	StreamChat(ctx context.Context, req ChatRequest, onChunk func(chunk string) error) (string, error)
}

type ImageRequest struct {
	Model  domain.ModelID
	Prompt string
	Size   string
	Count  int
}

type ImageProvider interface {
	GenerateImages(ctx context.Context, req ImageRequest) (domain.ImageBatch, error)
}
