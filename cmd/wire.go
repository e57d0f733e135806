package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/bnema/gothub-kernel/internal/adapters/auth"
	"github.com/bnema/gothub-kernel/internal/adapters/firebase"
	execinterp "github.com/bnema/gothub-kernel/internal/adapters/interpreter/exec"
	openaiprovider "github.com/bnema/gothub-kernel/internal/adapters/providers/openai"
	replicateprovider "github.com/bnema/gothub-kernel/internal/adapters/providers/replicate"
	statusadapter "github.com/bnema/gothub-kernel/internal/adapters/render/status"
	sqliterepo "github.com/bnema/gothub-kernel/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/gothub-kernel/internal/adapters/repo/toml"
	chainstore "github.com/bnema/gothub-kernel/internal/adapters/secrets/chain"
	"github.com/bnema/gothub-kernel/internal/application"
	"github.com/bnema/gothub-kernel/internal/config"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/observability"
	"github.com/bnema/gothub-kernel/internal/ports"
	"github.com/spf13/viper"
)

// app holds what every command shares. Anything that needs a signed-in
// session is built on demand by openSession so that offline commands work
// without a server.
type app struct {
	configPath string
	verbose    bool
	model      string

	cfg            config.Config
	logger         *slog.Logger
	observer       observability.Observer
	keys           *application.KeyService
	statusRenderer func(statusadapter.Report, statusadapter.RenderOptions) (string, error)
	httpClient     *http.Client
	clock          ports.Clock
	now            func() time.Time
}

func wireApp() *app {
	return &app{
		statusRenderer: statusadapter.Render,
		httpClient:     &http.Client{},
		clock:          ports.SystemClock{},
		now:            time.Now,
	}
}

// load reads configuration and wires the offline dependencies. It runs before
// every subcommand once flags are parsed.
func (a *app) load(stderr io.Writer) error {
	cfg, err := config.Load(viper.New(), a.configPath)
	if err != nil {
		return err
	}

	secretStore, err := chainstore.NewDefault(cfg.SecretsDir())
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	a.cfg = cfg
	a.logger = observability.NewLogger(stderr, a.verbose)
	a.observer = observability.NewSlogObserver(a.logger)
	a.keys = application.NewKeyService(secretStore)
	return nil
}

// selectedModel is the --model flag, an alias or model id, falling back to
// the configured default.
func (a *app) selectedModel() (domain.ModelID, error) {
	model := application.ResolveModelAlias(a.model)
	if model == "" {
		model = a.cfg.Kernel.DefaultModel
	}
	if model == "" {
		return domain.DefaultModel, nil
	}
	if !slices.Contains(application.Models(), model) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedModel, model)
	}
	return model, nil
}

func (a *app) gothubClient(ctx context.Context) (auth.GotHubClient, error) {
	if err := a.cfg.RequireServer(); err != nil {
		return auth.GotHubClient{}, err
	}

	apiKey, err := a.keys.APIKey(ctx)
	if err != nil {
		return auth.GotHubClient{}, fmt.Errorf("%w (run `gotk auth set-key` or set GOTHUB_API_KEY)", err)
	}

	return auth.GotHubClient{
		API:            auth.DefaultGotHubAPI(a.cfg.Server.URL),
		APIKey:         apiKey,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.Server.Timeout,
	}, nil
}

// session is a signed-in kernel identity plus the ledger backing it.
type session struct {
	domain.Session
	gothub auth.GotHubClient
	ledger *application.Ledger
	close  func() error
}

func (a *app) openSession(ctx context.Context) (*session, error) {
	gothub, err := a.gothubClient(ctx)
	if err != nil {
		return nil, err
	}

	signer := auth.PasswordSignIn{
		BaseURL:        a.cfg.Firebase.AuthURL,
		APIKey:         a.cfg.Firebase.APIKey,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.Server.Timeout,
	}

	bootstrapper := application.NewBootstrapper(gothub, signer, a.cfg.Server.LoginAttempts, a.observer)
	identity, err := bootstrapper.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	store, closeStore, err := a.usageStore(identity)
	if err != nil {
		return nil, err
	}

	return &session{
		Session: identity,
		gothub:  gothub,
		ledger:  application.NewLedger(store, a.clock, a.cfg.Quota.MaxCalls, a.observer),
		close:   closeStore,
	}, nil
}

func (a *app) usageStore(identity domain.Session) (ports.UsageStore, func() error, error) {
	noClose := func() error { return nil }

	switch a.cfg.Ledger.Backend {
	case config.LedgerSQLite:
		store, err := sqliterepo.Open(a.cfg.LedgerPath(), a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("wire usage ledger: %w", err)
		}
		return store, store.Close, nil
	case config.LedgerTOML:
		store, err := tomlrepo.NewStore(a.cfg.LedgerPath(), a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("wire usage ledger: %w", err)
		}
		return store, noClose, nil
	default:
		return &firebase.Firestore{
			BaseURL:        a.cfg.Firebase.FirestoreURL,
			ProjectID:      a.cfg.Firebase.ProjectID,
			IDToken:        identity.Token,
			HTTPClient:     a.httpClient,
			RequestTimeout: a.cfg.Server.Timeout,
		}, noClose, nil
	}
}

func (a *app) newKernel(s *session, model domain.ModelID) (*application.Kernel, error) {
	replicate, err := replicateprovider.NewClient(a.cfg.Providers.ReplicateBaseURL, s.Keys.Replicate, a.httpClient)
	if err != nil {
		return nil, err
	}
	openai := openaiprovider.NewClient("openai", a.cfg.Providers.OpenAIBaseURL, s.Keys.OpenAI, a.httpClient)
	together := openaiprovider.NewClient("together", a.cfg.Providers.TogetherBaseURL, s.Keys.Together, a.httpClient)

	dispatcher := application.NewDispatcher(application.Providers{
		Chat: map[domain.ProviderKind]ports.ChatProvider{
			domain.ProviderOpenAI:   openai,
			domain.ProviderTogether: together,
		},
		Image: map[domain.ProviderKind]ports.ImageProvider{
			domain.ProviderOpenAI:    openai,
			domain.ProviderReplicate: replicate,
		},
	})

	realtime := &firebase.Realtime{
		DatabaseURL: a.cfg.Firebase.DatabaseURL,
		IDToken:     s.Token,
		HTTPClient:  a.httpClient,
	}

	return application.NewKernel(s.Session, dispatcher, s.ledger,
		application.WithObserver(a.observer),
		application.WithSystemPrompt(a.cfg.Kernel.SystemPrompt),
		application.WithModel(model),
		application.WithIdentity(s.gothub),
		application.WithInterpreter(execinterp.New(a.cfg.Interpreter.Command, "")),
		application.WithDiagnostics(application.NewDiagnostics(s.gothub, realtime, a.cfg.Diagnostic.Timeout, a.observer)),
	), nil
}

// withKernel opens a session, builds a kernel on it and runs fn.
func (a *app) withKernel(ctx context.Context, fn func(*application.Kernel) error) error {
	model, err := a.selectedModel()
	if err != nil {
		return err
	}

	s, err := a.openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.close(); err != nil {
			a.logger.Warn("close usage ledger", "error", err)
		}
	}()

	kernel, err := a.newKernel(s, model)
	if err != nil {
		return err
	}
	return fn(kernel)
}
