package application

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
)

// Kernel routes cells to the interpreter, the diagnostic channel or a model.
// It is not safe for concurrent use: hosts run one cell at a time.
type Kernel struct {
	session      domain.Session
	conversation *domain.Conversation
	selection    *domain.ModelSelection
	dispatcher   *Dispatcher
	ledger       *Ledger
	identity     ports.IdentityService
	interpreter  ports.Interpreter
	diagnostics  *Diagnostics
	observer     observability.Observer

	systemPrompt   string
	stickyModel    domain.ModelID
	executionCount int
}

type Option func(*Kernel)

func WithObserver(observer observability.Observer) Option {
	return func(k *Kernel) {
		if observer != nil {
			k.observer = observer
		}
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(k *Kernel) {
		k.systemPrompt = prompt
	}
}

// WithModel sets the sticky model used when no override is active.
func WithModel(model domain.ModelID) Option {
	return func(k *Kernel) {
		k.stickyModel = model
	}
}

func WithIdentity(identity ports.IdentityService) Option {
	return func(k *Kernel) {
		k.identity = identity
	}
}

func WithInterpreter(interpreter ports.Interpreter) Option {
	return func(k *Kernel) {
		k.interpreter = interpreter
	}
}

func WithDiagnostics(diagnostics *Diagnostics) Option {
	return func(k *Kernel) {
		k.diagnostics = diagnostics
	}
}

func NewKernel(session domain.Session, dispatcher *Dispatcher, ledger *Ledger, opts ...Option) *Kernel {
	k := &Kernel{
		session:    session,
		dispatcher: dispatcher,
		ledger:     ledger,
		observer:   observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(k)
	}

	k.conversation = domain.NewConversation(k.systemPrompt)
	k.selection = domain.NewModelSelection(k.stickyModel)
	return k
}

func (k *Kernel) Session() domain.Session {
	return k.session
}

func (k *Kernel) Model() domain.ModelID {
	return k.selection.Current()
}

func (k *Kernel) StickyModel() domain.ModelID {
	return k.selection.Sticky()
}

// Conversation exposes the chat history for inspection.
func (k *Kernel) Conversation() []domain.Message {
	return k.conversation.Messages()
}

func (k *Kernel) ExecutionCount() int {
	return k.executionCount
}

// Execute runs one cell. Every failure, including a panic, is reported once
// through out.ReportError and turned into an error reply.
func (k *Kernel) Execute(ctx context.Context, req ExecuteRequest, out ports.Output) ExecuteReply {
	k.executionCount++
	cellID := ulid.Make().String()

	observability.Emit(ctx, k.observer, "kernel", observability.EventExecuteStart, observability.LevelVerbose, map[string]any{
		"cell_id":         cellID,
		"execution_count": k.executionCount,
		"silent":          req.Silent,
	})

	if err := k.runSafely(ctx, req.Code, req.Silent, out); err != nil {
		execErr := domain.ClassifyError(err)
		observability.Emit(ctx, k.observer, "kernel", observability.EventExecuteError, observability.LevelError, map[string]any{
			"cell_id": cellID,
			"error":   execErr.Name,
			"detail":  execErr.Value,
		})
		if reportErr := out.ReportError(execErr); reportErr != nil {
			observability.Emit(ctx, k.observer, "kernel", observability.EventExecuteError, observability.LevelError, map[string]any{
				"cell_id": cellID,
				"error":   "report error",
				"detail":  reportErr.Error(),
			})
		}
		return ExecuteReply{Status: ReplyError, ExecutionCount: k.executionCount, Error: execErr}
	}

	observability.Emit(ctx, k.observer, "kernel", observability.EventExecuteComplete, observability.LevelVerbose, map[string]any{
		"cell_id": cellID,
	})
	return ExecuteReply{Status: ReplyOK, ExecutionCount: k.executionCount}
}

func (k *Kernel) runSafely(ctx context.Context, code string, silent bool, out ports.Output) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("kernel panic: %v", r)
		}
	}()
	return k.run(ctx, code, silent, out)
}

func (k *Kernel) run(ctx context.Context, code string, silent bool, out ports.Output) error {
	cmd := ParseCommand(code)
	observability.Emit(ctx, k.observer, "kernel", observability.EventCommandParsed, observability.LevelVerbose, map[string]any{
		"command": fmt.Sprintf("%T", cmd),
	})

	switch c := cmd.(type) {
	case domain.NoOpCommand:
		return nil
	case domain.PrintAccountCommand:
		return k.printAccount(ctx, out)
	case domain.DebugCommand:
		return k.diagnostics.Run(ctx, k.session, out)
	case domain.PassthroughCommand:
		return k.passthrough(ctx, c.Code, out)
	case domain.NewChatCommand:
		dropped := k.conversation.Len() - 1
		k.conversation.Reset()
		observability.Emit(ctx, k.observer, "kernel", observability.EventConversationReset, observability.LevelInfo, map[string]any{
			"conversation_id":  k.conversation.ID(),
			"dropped_messages": dropped,
		})
		return k.run(ctx, c.Rest, silent, out)
	case domain.OverrideCommand:
		restore := k.selection.Override(c.Model)
		defer restore()
		return k.run(ctx, c.Rest, silent, out)
	case domain.GenerateCommand:
		if silent {
			return nil
		}
		return k.generate(ctx, c.Prompt, out)
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

func (k *Kernel) printAccount(ctx context.Context, out ports.Output) error {
	if k.identity == nil {
		return fmt.Errorf("print account: %w", domain.ErrConfigMissing)
	}

	identity, err := k.identity.WhoAmI(ctx)
	if err != nil {
		return fmt.Errorf("fetch identity: %w", err)
	}

	pretty, err := json.MarshalIndent(identity, "", "    ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	return out.Display(domain.MarkdownDisplay("```json\n" + string(pretty) + "\n```"))
}

func (k *Kernel) passthrough(ctx context.Context, code string, out ports.Output) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	if k.interpreter == nil {
		return fmt.Errorf("no interpreter configured: %w", domain.ErrInterpreter)
	}

	result, err := k.interpreter.Execute(ctx, code)
	if err != nil {
		return fmt.Errorf("run code: %w", err)
	}

	if result.Stdout != "" {
		if err := out.Stream(domain.StreamStdout, result.Stdout); err != nil {
			return err
		}
	}
	if result.Stderr != "" {
		if err := out.Stream(domain.StreamStderr, result.Stderr); err != nil {
			return err
		}
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("exit status %d: %w", result.ExitCode, domain.ErrInterpreter)
	}
	return nil
}

func (k *Kernel) generate(ctx context.Context, prompt string, out ports.Output) error {
	route, err := k.dispatcher.Resolve(k.selection.Current())
	if err != nil {
		return err
	}

	key := domain.UsageKey{UserID: k.session.UserID, Capability: route.Capability}
	if _, err := k.ledger.CheckQuota(ctx, key); err != nil {
		return err
	}

	observability.Emit(ctx, k.observer, "kernel", observability.EventGenerateStart, observability.LevelInfo, map[string]any{
		"model":      string(route.Model),
		"capability": string(route.Capability),
	})

	var delta domain.UsageDelta
	switch route.Capability {
	case domain.CapabilityChat:
		delta, err = k.chat(ctx, route, prompt, out)
	case domain.CapabilityImage:
		delta, err = k.image(ctx, route, prompt, out)
	default:
		err = fmt.Errorf("capability %q: %w", route.Capability, domain.ErrUnsupportedModel)
	}
	if err != nil {
		return err
	}

	observability.Emit(ctx, k.observer, "kernel", observability.EventGenerateComplete, observability.LevelInfo, map[string]any{
		"model":          string(route.Model),
		"characters_in":  delta.CharactersIn,
		"characters_out": delta.CharactersOut,
		"images":         delta.Images,
	})

	if err := k.ledger.Increment(ctx, key, delta); err != nil {
		observability.Emit(ctx, k.observer, "kernel", observability.EventLedgerIncrementFail, observability.LevelWarning, map[string]any{
			"key":   key.String(),
			"error": err.Error(),
		})
	}
	return nil
}

func (k *Kernel) chat(ctx context.Context, route Route, prompt string, out ports.Output) (domain.UsageDelta, error) {
	client, err := k.dispatcher.ChatClient(route)
	if err != nil {
		return domain.UsageDelta{}, err
	}

	if err := out.Display(domain.MarkdownDisplay(fmt.Sprintf("**%s:**", route.DisplayName))); err != nil {
		return domain.UsageDelta{}, err
	}

	userMessage := domain.NewMessage(domain.RoleUser, prompt)
	reply, err := client.StreamChat(ctx, ports.ChatRequest{
		Model:     route.Model,
		Messages:  k.conversation.With(userMessage),
		MaxTokens: route.Params.MaxTokens,
		Stop:      route.Params.Stop,
	}, func(chunk string) error {
		if chunk == "" {
			return nil
		}
		return out.Stream(domain.StreamStdout, chunk)
	})
	if err != nil {
		return domain.UsageDelta{}, fmt.Errorf("chat with %s: %w", route.Model, err)
	}

	k.conversation.Append(userMessage, domain.NewMessage(domain.RoleAssistant, reply))

	return domain.UsageDelta{
		Chats:         1,
		CharactersIn:  domain.CharCount(prompt),
		CharactersOut: domain.CharCount(reply),
	}, nil
}

func (k *Kernel) image(ctx context.Context, route Route, prompt string, out ports.Output) (domain.UsageDelta, error) {
	client, err := k.dispatcher.ImageClient(route)
	if err != nil {
		return domain.UsageDelta{}, err
	}

	if err := out.Display(domain.MarkdownDisplay(fmt.Sprintf("**%s:**", route.DisplayName))); err != nil {
		return domain.UsageDelta{}, err
	}

	batch, err := client.GenerateImages(ctx, ports.ImageRequest{
		Model:  route.Model,
		Prompt: prompt,
		Size:   route.Params.Size,
		Count:  route.Params.Count,
	})
	if err != nil {
		return domain.UsageDelta{}, fmt.Errorf("generate image with %s: %w", route.Model, err)
	}

	for _, img := range batch.Images {
		if err := out.Display(imageDisplay(img)); err != nil {
			return domain.UsageDelta{}, err
		}
		if img.Caption != "" {
			if err := out.Stream(domain.StreamStdout, img.Caption+"\n"); err != nil {
				return domain.UsageDelta{}, err
			}
		}
	}

	return domain.UsageDelta{
		Chats:         1,
		CharactersIn:  domain.CharCount(prompt),
		CharactersOut: batch.CaptionLength(),
		Images:        int64(len(batch.Images)),
	}, nil
}

func imageDisplay(img domain.ImageRef) domain.DisplayData {
	return domain.DisplayData{
		domain.MIMEMarkdown: fmt.Sprintf("![image](%s)", img.URL),
		domain.MIMEHTML:     fmt.Sprintf(`<img src="%s"/>`, html.EscapeString(img.URL)),
	}
}
