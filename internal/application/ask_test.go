package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

func TestAskRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     AskRequest
		wantErr error
	}{
		{name: "empty", req: AskRequest{}, wantErr: ErrAskEmpty},
		{name: "question and prompt", req: AskRequest{Question: "q", Prompt: "p"}, wantErr: ErrAskConflict},
		{name: "question", req: AskRequest{Question: "q"}},
		{name: "prompt with system", req: AskRequest{SystemPrompt: "s", Prompt: "p"}},
		{name: "system only", req: AskRequest{SystemPrompt: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKernelAskRejectsInvalidRequestWithoutCalls(t *testing.T) {
	f := newKernelFixture(t)

	_, err := f.kernel.Ask(context.Background(), AskRequest{}, &recordingOutput{})
	assert.ErrorIs(t, err, ErrAskEmpty)

	_, err = f.kernel.Ask(context.Background(), AskRequest{Question: "q", Prompt: "p"}, &recordingOutput{})
	assert.ErrorIs(t, err, ErrAskConflict)
}

func TestKernelAskSendsTwoMessagesAndKeepsConversation(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}
	f.kernel.conversation.Append(domain.NewMessage(domain.RoleUser, "earlier"))
	before := f.kernel.Conversation()

	f.allowQuota(domain.CapabilityChat, 0)
	f.chat.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req ports.ChatRequest, onChunk func(string) error) (string, error) {
			assert.Equal(t, domain.ModelGPT35, req.Model)
			assert.Equal(t, []domain.Message{
				{Role: domain.RoleSystem, Content: "Answer in French."},
				{Role: domain.RoleUser, Content: "hello"},
			}, req.Messages)
			return streamReply("Bon", "jour")(ctx, req, onChunk)
		}).Once()
	f.store.EXPECT().Increment(mock.Anything, domain.UsageKey{UserID: "user-1", Capability: domain.CapabilityChat}, domain.UsageDelta{
		Chats:         1,
		CharactersIn:  5,
		CharactersOut: 7,
	}).Return(nil).Once()

	reply, err := f.kernel.Ask(context.Background(), AskRequest{
		Question:     "hello",
		SystemPrompt: "Answer in French.",
		Model:        domain.ModelGPT35,
	}, out)

	require.NoError(t, err)
	assert.Equal(t, "Bonjour", reply)
	assert.Equal(t, "Bonjour", out.stdout())
	require.Len(t, out.displays, 1)
	assert.Equal(t, "**ChatGPT gpt-3.5-turbo:**", out.displays[0][domain.MIMEMarkdown])
	assert.Equal(t, before, f.kernel.Conversation())
	assert.Equal(t, domain.DefaultModel, f.kernel.Model())
	assert.Zero(t, f.kernel.ExecutionCount())
}

func TestKernelAskDefaultsToCurrentModel(t *testing.T) {
	f := newKernelFixture(t)

	f.allowQuota(domain.CapabilityChat, 0)
	f.store.EXPECT().Increment(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.chat.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req ports.ChatRequest, onChunk func(string) error) (string, error) {
			assert.Equal(t, domain.DefaultModel, req.Model)
			assert.Equal(t, []domain.Message{
				{Role: domain.RoleSystem, Content: ""},
				{Role: domain.RoleUser, Content: "a prompt"},
			}, req.Messages)
			return streamReply("ok")(ctx, req, onChunk)
		}).Once()

	_, err := f.kernel.Ask(context.Background(), AskRequest{Prompt: "a prompt"}, &recordingOutput{})
	require.NoError(t, err)
}

func TestKernelAskRejectsImageModel(t *testing.T) {
	f := newKernelFixture(t)

	_, err := f.kernel.Ask(context.Background(), AskRequest{Question: "a cat", Model: domain.ModelDallE3}, &recordingOutput{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedModel)
}

func TestKernelAskQuotaExceeded(t *testing.T) {
	f := newKernelFixture(t)

	f.allowQuota(domain.CapabilityChat, 1000)

	_, err := f.kernel.Ask(context.Background(), AskRequest{Question: "hi"}, &recordingOutput{})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}
