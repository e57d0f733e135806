package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
)

var (
	ErrAskEmpty    = errors.New("at least one of question, system prompt or prompt is required")
	ErrAskConflict = errors.New("only one of question or prompt can be given")
)

// AskRequest is a one-shot chat outside the conversation. Question and
// Prompt are two spellings of the user message. An empty Model means the
// kernel's current model.
type AskRequest struct {
	Question     string
	SystemPrompt string
	Prompt       string
	Model        domain.ModelID
}

func (r AskRequest) Validate() error {
	if r.Question == "" && r.SystemPrompt == "" && r.Prompt == "" {
		return ErrAskEmpty
	}
	if r.Question != "" && r.Prompt != "" {
		return ErrAskConflict
	}
	return nil
}

func (r AskRequest) userPrompt() string {
	if r.Question != "" {
		return r.Question
	}
	return r.Prompt
}

// Ask streams a single system + user exchange to out and returns the reply.
// The conversation and the model selection are left untouched; the call is
// quota-checked and billed like a chat cell.
func (k *Kernel) Ask(ctx context.Context, req AskRequest, out ports.Output) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = k.selection.Current()
	}
	route, err := k.dispatcher.Resolve(model)
	if err != nil {
		return "", err
	}
	client, err := k.dispatcher.ChatClient(route)
	if err != nil {
		return "", err
	}

	key := domain.UsageKey{UserID: k.session.UserID, Capability: route.Capability}
	if _, err := k.ledger.CheckQuota(ctx, key); err != nil {
		return "", err
	}

	if err := out.Display(domain.MarkdownDisplay(fmt.Sprintf("**%s:**", route.DisplayName))); err != nil {
		return "", err
	}

	prompt := req.userPrompt()
	reply, err := client.StreamChat(ctx, ports.ChatRequest{
		Model: route.Model,
		Messages: []domain.Message{
			domain.NewMessage(domain.RoleSystem, req.SystemPrompt),
			domain.NewMessage(domain.RoleUser, prompt),
		},
		MaxTokens: route.Params.MaxTokens,
		Stop:      route.Params.Stop,
	}, func(chunk string) error {
		if chunk == "" {
			return nil
		}
		return out.Stream(domain.StreamStdout, chunk)
	})
	if err != nil {
		return "", fmt.Errorf("ask %s: %w", route.Model, err)
	}

	delta := domain.UsageDelta{
		Chats:         1,
		CharactersIn:  domain.CharCount(prompt),
		CharactersOut: domain.CharCount(reply),
	}
	if err := k.ledger.Increment(ctx, key, delta); err != nil {
		observability.Emit(ctx, k.observer, "kernel", observability.EventLedgerIncrementFail, observability.LevelWarning, map[string]any{
			"key":   key.String(),
			"error": err.Error(),
		})
	}
	return reply, nil
}
