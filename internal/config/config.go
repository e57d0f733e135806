// Package config loads kernel settings from ~/.gothub/config.toml and
// GOTHUB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/gothub-kernel/internal/domain"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".gothub"
	envPrefix  = "GOTHUB"
)

const (
	KeyServerURL           = "server.url"
	KeyServerTimeout       = "server.timeout"
	KeyServerLoginAttempts = "server.login_attempts"
	KeyFirebaseAPIKey      = "firebase.api_key"
	KeyFirebaseProjectID   = "firebase.project_id"
	KeyFirebaseDatabaseURL = "firebase.database_url"
	KeyFirebaseAuthURL     = "firebase.auth_url"
	KeyFirebaseFirestore   = "firebase.firestore_url"
	KeyKernelDefaultModel  = "kernel.default_model"
	KeyKernelSystemPrompt  = "kernel.system_prompt"
	KeyQuotaMaxCalls       = "quota.max_calls"
	KeyLedgerBackend       = "ledger.backend"
	KeyLedgerPath          = "ledger.path"
	KeyInterpreterCommand  = "interpreter.command"
	KeyDiagnosticTimeout   = "diagnostic.timeout"
	KeyOpenAIBaseURL       = "providers.openai_base_url"
	KeyTogetherBaseURL     = "providers.together_base_url"
	KeyReplicateBaseURL    = "providers.replicate_base_url"
)

type LedgerBackend string

const (
	LedgerFirestore LedgerBackend = "firestore"
	LedgerSQLite    LedgerBackend = "sqlite"
	LedgerTOML      LedgerBackend = "toml"
)

type Config struct {
	// File is the config file that was read, empty when none was found.
	File string
	Dir  string

	Server      ServerConfig
	Firebase    FirebaseConfig
	Kernel      KernelConfig
	Quota       QuotaConfig
	Ledger      LedgerConfig
	Interpreter InterpreterConfig
	Diagnostic  DiagnosticConfig
	Providers   ProvidersConfig
}

type ServerConfig struct {
	URL           string
	Timeout       time.Duration
	LoginAttempts int
}

type FirebaseConfig struct {
	APIKey       string
	ProjectID    string
	DatabaseURL  string
	AuthURL      string
	FirestoreURL string
}

type KernelConfig struct {
	DefaultModel domain.ModelID
	SystemPrompt string
}

type QuotaConfig struct {
	MaxCalls int64
}

type LedgerConfig struct {
	Backend LedgerBackend
	Path    string
}

type InterpreterConfig struct {
	Command []string
}

type DiagnosticConfig struct {
	Timeout time.Duration
}

type ProvidersConfig struct {
	OpenAIBaseURL    string
	TogetherBaseURL  string
	ReplicateBaseURL string
}

// Load reads configuration into v. An explicit path must exist; otherwise a
// missing ~/.gothub/config.toml just leaves the defaults in place.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		File: v.ConfigFileUsed(),
		Dir:  dir,
		Server: ServerConfig{
			URL:           strings.TrimRight(v.GetString(KeyServerURL), "/"),
			Timeout:       v.GetDuration(KeyServerTimeout),
			LoginAttempts: v.GetInt(KeyServerLoginAttempts),
		},
		Firebase: FirebaseConfig{
			APIKey:       v.GetString(KeyFirebaseAPIKey),
			ProjectID:    v.GetString(KeyFirebaseProjectID),
			DatabaseURL:  v.GetString(KeyFirebaseDatabaseURL),
			AuthURL:      v.GetString(KeyFirebaseAuthURL),
			FirestoreURL: v.GetString(KeyFirebaseFirestore),
		},
		Kernel: KernelConfig{
			DefaultModel: domain.ModelID(v.GetString(KeyKernelDefaultModel)),
			SystemPrompt: v.GetString(KeyKernelSystemPrompt),
		},
		Quota: QuotaConfig{MaxCalls: v.GetInt64(KeyQuotaMaxCalls)},
		Ledger: LedgerConfig{
			Backend: LedgerBackend(strings.ToLower(v.GetString(KeyLedgerBackend))),
			Path:    v.GetString(KeyLedgerPath),
		},
		Interpreter: InterpreterConfig{Command: v.GetStringSlice(KeyInterpreterCommand)},
		Diagnostic:  DiagnosticConfig{Timeout: v.GetDuration(KeyDiagnosticTimeout)},
		Providers: ProvidersConfig{
			OpenAIBaseURL:    v.GetString(KeyOpenAIBaseURL),
			TogetherBaseURL:  v.GetString(KeyTogetherBaseURL),
			ReplicateBaseURL: v.GetString(KeyReplicateBaseURL),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func SetDefaults(v *viper.Viper) {
	defaults := DefaultFile()
	v.SetDefault(KeyServerURL, defaults.Server.URL)
	v.SetDefault(KeyServerTimeout, defaults.Server.Timeout)
	v.SetDefault(KeyServerLoginAttempts, defaults.Server.LoginAttempts)
	v.SetDefault(KeyFirebaseAPIKey, defaults.Firebase.APIKey)
	v.SetDefault(KeyFirebaseProjectID, defaults.Firebase.ProjectID)
	v.SetDefault(KeyFirebaseDatabaseURL, defaults.Firebase.DatabaseURL)
	v.SetDefault(KeyFirebaseAuthURL, defaults.Firebase.AuthURL)
	v.SetDefault(KeyFirebaseFirestore, defaults.Firebase.FirestoreURL)
	v.SetDefault(KeyKernelDefaultModel, defaults.Kernel.DefaultModel)
	v.SetDefault(KeyKernelSystemPrompt, defaults.Kernel.SystemPrompt)
	v.SetDefault(KeyQuotaMaxCalls, defaults.Quota.MaxCalls)
	v.SetDefault(KeyLedgerBackend, defaults.Ledger.Backend)
	v.SetDefault(KeyLedgerPath, defaults.Ledger.Path)
	v.SetDefault(KeyInterpreterCommand, defaults.Interpreter.Command)
	v.SetDefault(KeyDiagnosticTimeout, defaults.Diagnostic.Timeout)
	v.SetDefault(KeyOpenAIBaseURL, defaults.Providers.OpenAIBaseURL)
	v.SetDefault(KeyTogetherBaseURL, defaults.Providers.TogetherBaseURL)
	v.SetDefault(KeyReplicateBaseURL, defaults.Providers.ReplicateBaseURL)
}

func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func (c Config) validate() error {
	switch c.Ledger.Backend {
	case LedgerFirestore, LedgerSQLite, LedgerTOML:
	default:
		return fmt.Errorf("unknown ledger backend %q", c.Ledger.Backend)
	}
	if len(c.Interpreter.Command) == 0 {
		return fmt.Errorf("%s is empty", KeyInterpreterCommand)
	}
	return nil
}

// RequireServer checks the settings needed to open a session.
func (c Config) RequireServer() error {
	if c.Server.URL == "" {
		return fmt.Errorf("%s is not set: %w", KeyServerURL, domain.ErrConfigMissing)
	}
	if c.Firebase.APIKey == "" {
		return fmt.Errorf("%s is not set: %w", KeyFirebaseAPIKey, domain.ErrConfigMissing)
	}
	return nil
}

// LedgerPath is the local ledger file, defaulting by backend.
func (c Config) LedgerPath() string {
	if c.Ledger.Path != "" {
		return c.Ledger.Path
	}
	if c.Ledger.Backend == LedgerTOML {
		return filepath.Join(c.Dir, "usage.toml")
	}
	return filepath.Join(c.Dir, "usage.db")
}

func (c Config) SecretsDir() string {
	return filepath.Join(c.Dir, "secrets")
}

// DefaultConfigFile is where `config init` writes when no path is given.
func (c Config) DefaultConfigFile() string {
	return filepath.Join(c.Dir, configName+"."+configType)
}
