package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
	"github.com/bnema/gothub-kernel/internal/ports/mocks"
)

const testSystemPrompt = "You are a helpful assistant."

type kernelFixture struct {
	kernel      *Kernel
	store       *mocks.MockUsageStore
	chat        *mocks.MockChatProvider
	together    *mocks.MockChatProvider
	image       *mocks.MockImageProvider
	identity    *mocks.MockIdentityService
	interpreter *mocks.MockInterpreter
}

func newKernelFixture(t *testing.T) kernelFixture {
	t.Helper()

	f := kernelFixture{
		store:       mocks.NewMockUsageStore(t),
		chat:        mocks.NewMockChatProvider(t),
		together:    mocks.NewMockChatProvider(t),
		image:       mocks.NewMockImageProvider(t),
		identity:    mocks.NewMockIdentityService(t),
		interpreter: mocks.NewMockInterpreter(t),
	}

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)).Maybe()

	dispatcher := NewDispatcher(Providers{
		Chat: map[domain.ProviderKind]ports.ChatProvider{
			domain.ProviderOpenAI:   f.chat,
			domain.ProviderTogether: f.together,
		},
		Image: map[domain.ProviderKind]ports.ImageProvider{
			domain.ProviderOpenAI: f.image,
		},
	})

	f.kernel = NewKernel(
		domain.Session{UserID: "user-1", Email: "ada@example.com"},
		dispatcher,
		NewLedger(f.store, clock, 1000, nil),
		WithSystemPrompt(testSystemPrompt),
		WithIdentity(f.identity),
		WithInterpreter(f.interpreter),
	)
	return f
}

func (f kernelFixture) allowQuota(capability domain.Capability, chats int64) {
	f.store.EXPECT().Get(mock.Anything, domain.UsageKey{UserID: "user-1", Capability: capability}).
		Return(domain.UsageRecord{Chats: chats}, nil)
}

// streamReply answers a chat request by streaming chunks one at a time.
func streamReply(chunks ...string) func(context.Context, ports.ChatRequest, func(string) error) (string, error) {
	return func(_ context.Context, _ ports.ChatRequest, onChunk func(string) error) (string, error) {
		var reply string
		for _, chunk := range chunks {
			if err := onChunk(chunk); err != nil {
				return reply, err
			}
			reply += chunk
		}
		return reply, nil
	}
}

func TestKernelPassthroughSkipsProviders(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.interpreter.EXPECT().Execute(mock.Anything, " print(1)\n").
		Return(ports.InterpreterResult{Stdout: "1\n", Stderr: "warning\n"}, nil).Once()

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "as code: print(1)\n"}, out)

	assert.Equal(t, ReplyOK, reply.Status)
	assert.Equal(t, []streamWrite{
		{name: domain.StreamStdout, text: "1\n"},
		{name: domain.StreamStderr, text: "warning\n"},
	}, out.streams)
}

func TestKernelPassthroughNonzeroExit(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.interpreter.EXPECT().Execute(mock.Anything, "raise SystemExit(2)").
		Return(ports.InterpreterResult{ExitCode: 2}, nil)

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "as python\nraise SystemExit(2)"}, out)

	assert.Equal(t, ReplyError, reply.Status)
	require.Len(t, out.errors, 1)
	assert.Equal(t, "InterpreterError", out.errors[0].Name)
}

func TestKernelOverrideEndToEnd(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.allowQuota(domain.CapabilityChat, 3)
	f.chat.EXPECT().StreamChat(mock.Anything, ports.ChatRequest{
		Model: domain.ModelGPT35,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: testSystemPrompt},
			{Role: domain.RoleUser, Content: "hello"},
		},
	}, mock.Anything).RunAndReturn(streamReply("Hi", " there", "!")).Once()
	f.store.EXPECT().Increment(mock.Anything, domain.UsageKey{UserID: "user-1", Capability: domain.CapabilityChat}, domain.UsageDelta{
		Chats:         1,
		CharactersIn:  5,
		CharactersOut: 9,
	}).Return(nil).Once()

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "with gpt-3.5: hello"}, out)

	assert.Equal(t, ReplyOK, reply.Status)
	assert.Equal(t, 1, reply.ExecutionCount)
	assert.Equal(t, domain.DefaultModel, f.kernel.StickyModel())
	assert.Equal(t, domain.DefaultModel, f.kernel.Model())
	assert.Equal(t, "Hi there!", out.stdout())
	assert.Len(t, out.streams, 3)
	require.Len(t, out.displays, 1)
	assert.Equal(t, "**ChatGPT gpt-3.5-turbo:**", out.displays[0][domain.MIMEMarkdown])
	assert.Equal(t, []domain.Message{
		{Role: domain.RoleSystem, Content: testSystemPrompt},
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "Hi there!"},
	}, f.kernel.Conversation())
}

func TestKernelOverrideRestoresSelectionOnError(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.allowQuota(domain.CapabilityChat, 0)
	f.together.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.Join(domain.ErrProvider, errors.New("upstream 502")))

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "with mixtral: hi"}, out)

	assert.Equal(t, ReplyError, reply.Status)
	require.Len(t, out.errors, 1)
	assert.Equal(t, "ProviderError", out.errors[0].Name)
	assert.Contains(t, out.errors[0].Value, "upstream 502")
	assert.Equal(t, domain.DefaultModel, f.kernel.Model())
	assert.Len(t, f.kernel.Conversation(), 1)
}

func TestKernelOverrideRestoresSelectionOnPanic(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.allowQuota(domain.CapabilityChat, 0)
	f.chat.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, ports.ChatRequest, func(string) error) (string, error) {
			panic("nil map write")
		})

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "with gpt-3.5: hi"}, out)

	assert.Equal(t, ReplyError, reply.Status)
	require.Len(t, out.errors, 1)
	assert.Equal(t, "KernelError", out.errors[0].Name)
	assert.Equal(t, domain.DefaultModel, f.kernel.Model())
}

func TestKernelNewChatSendsOnlyFreshHistory(t *testing.T) {
	f := newKernelFixture(t)

	f.allowQuota(domain.CapabilityChat, 0)
	f.store.EXPECT().Increment(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.chat.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(streamReply("ok")).Once()

	first := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "first question"}, &recordingOutput{})
	require.Equal(t, ReplyOK, first.Status)
	require.Len(t, f.kernel.Conversation(), 3)

	f.chat.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, req ports.ChatRequest, _ func(string) error) (string, error) {
			assert.Equal(t, []domain.Message{
				{Role: domain.RoleSystem, Content: testSystemPrompt},
				{Role: domain.RoleUser, Content: "second question"},
			}, req.Messages)
			return "fine", nil
		}).Once()

	second := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "as new chat: second question"}, &recordingOutput{})
	assert.Equal(t, ReplyOK, second.Status)
	assert.Equal(t, 2, second.ExecutionCount)
}

type eventRecorder struct {
	events []observability.Event
}

func (r *eventRecorder) OnEvent(_ context.Context, event observability.Event) {
	r.events = append(r.events, event)
}

func TestKernelNewChatAloneIsNoOp(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}
	events := &eventRecorder{}
	f.kernel.observer = events
	f.kernel.conversation.Append(
		domain.NewMessage(domain.RoleUser, "old"),
		domain.NewMessage(domain.RoleAssistant, "older"),
	)

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "as new chat"}, out)

	assert.Equal(t, ReplyOK, reply.Status)
	assert.Equal(t, []domain.Message{{Role: domain.RoleSystem, Content: testSystemPrompt}}, f.kernel.Conversation())
	assert.Empty(t, out.streams)
	assert.Empty(t, out.displays)

	var reset []observability.Event
	for _, event := range events.events {
		if event.Type == observability.EventConversationReset {
			reset = append(reset, event)
		}
	}
	require.Len(t, reset, 1)
	assert.Equal(t, 2, reset[0].Data["dropped_messages"])
}

func TestKernelQuotaAtCeiling(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.allowQuota(domain.CapabilityChat, 1000)

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "hello"}, out)

	assert.Equal(t, ReplyError, reply.Status)
	require.Len(t, out.errors, 1)
	assert.Equal(t, "QuotaExceeded", out.errors[0].Name)
	assert.Contains(t, out.errors[0].Value, "please upgrade your plan")
	f.store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestKernelPrintAccount(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}

	f.identity.EXPECT().WhoAmI(mock.Anything).Return(map[string]any{"email": "ada@example.com"}, nil).Once()

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "print account"}, out)

	assert.Equal(t, ReplyOK, reply.Status)
	require.Len(t, out.displays, 1)
	assert.Equal(t, "```json\n{\n    \"email\": \"ada@example.com\"\n}\n```", out.displays[0][domain.MIMEMarkdown])
}

func TestKernelImageGeneration(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}
	f.kernel.selection = domain.NewModelSelection(domain.ModelDallE3)
	imageKey := domain.UsageKey{UserID: "user-1", Capability: domain.CapabilityImage}

	f.store.EXPECT().Get(mock.Anything, imageKey).Return(domain.UsageRecord{}, domain.ErrRecordNotFound)
	f.store.EXPECT().Create(mock.Anything, imageKey, mock.Anything).Return(nil)
	f.image.EXPECT().GenerateImages(mock.Anything, ports.ImageRequest{
		Model:  domain.ModelDallE3,
		Prompt: "a red fox",
		Size:   "1024x1024",
		Count:  1,
	}).Return(domain.ImageBatch{Images: []domain.ImageRef{{URL: "https://img.example.com/fox.png", Caption: "A red fox"}}}, nil)
	f.store.EXPECT().Increment(mock.Anything, imageKey, domain.UsageDelta{
		Chats:         1,
		CharactersIn:  9,
		CharactersOut: 9,
		Images:        1,
	}).Return(nil)

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "a red fox"}, out)

	assert.Equal(t, ReplyOK, reply.Status)
	require.Len(t, out.displays, 2)
	assert.Equal(t, "**DALL-E 3:**", out.displays[0][domain.MIMEMarkdown])
	assert.Equal(t, "![image](https://img.example.com/fox.png)", out.displays[1][domain.MIMEMarkdown])
	assert.Equal(t, `<img src="https://img.example.com/fox.png"/>`, out.displays[1][domain.MIMEHTML])
	assert.Equal(t, "A red fox\n", out.stdout())
}

func TestKernelLedgerFailureDoesNotFailCell(t *testing.T) {
	f := newKernelFixture(t)

	f.allowQuota(domain.CapabilityChat, 0)
	f.chat.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(streamReply("ok"))
	f.store.EXPECT().Increment(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("firestore unavailable"))

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "hi"}, &recordingOutput{})

	assert.Equal(t, ReplyOK, reply.Status)
}

func TestKernelUnsupportedStickyModel(t *testing.T) {
	f := newKernelFixture(t)
	out := &recordingOutput{}
	f.kernel.selection = domain.NewModelSelection("gpt-99")

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "hi"}, out)

	assert.Equal(t, ReplyError, reply.Status)
	require.Len(t, out.errors, 1)
	assert.Equal(t, "UnsupportedModel", out.errors[0].Name)
}

func TestKernelSilentCellDoesNotGenerate(t *testing.T) {
	f := newKernelFixture(t)

	reply := f.kernel.Execute(context.Background(), ExecuteRequest{Code: "hello", Silent: true}, &recordingOutput{})

	assert.Equal(t, ReplyOK, reply.Status)
	assert.Equal(t, 1, f.kernel.ExecutionCount())
}
