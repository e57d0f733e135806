package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/gothub-kernel/internal/domain"
)

const (
	currentSchemaVersion = 1
	fileMode             = 0o600
	dirMode              = 0o700
	tempFilePattern      = ".config-*.toml.tmp"
)

var ErrFileExists = errors.New("config file already exists")

// File is the on-disk layout of config.toml.
type File struct {
	Version     int               `toml:"version"`
	Server      serverSchema      `toml:"server"`
	Firebase    firebaseSchema    `toml:"firebase"`
	Kernel      kernelSchema      `toml:"kernel"`
	Quota       quotaSchema       `toml:"quota"`
	Ledger      ledgerSchema      `toml:"ledger"`
	Interpreter interpreterSchema `toml:"interpreter"`
	Diagnostic  diagnosticSchema  `toml:"diagnostic"`
	Providers   providersSchema   `toml:"providers"`
}

type serverSchema struct {
	URL           string `toml:"url"`
	Timeout       string `toml:"timeout"`
	LoginAttempts int    `toml:"login_attempts"`
}

type firebaseSchema struct {
	APIKey       string `toml:"api_key"`
	ProjectID    string `toml:"project_id"`
	DatabaseURL  string `toml:"database_url"`
	AuthURL      string `toml:"auth_url"`
	FirestoreURL string `toml:"firestore_url"`
}

type kernelSchema struct {
	DefaultModel string `toml:"default_model"`
	SystemPrompt string `toml:"system_prompt"`
}

type quotaSchema struct {
	MaxCalls int64 `toml:"max_calls"`
}

type ledgerSchema struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type interpreterSchema struct {
	Command []string `toml:"command"`
}

type diagnosticSchema struct {
	Timeout string `toml:"timeout"`
}

type providersSchema struct {
	OpenAIBaseURL    string `toml:"openai_base_url"`
	TogetherBaseURL  string `toml:"together_base_url"`
	ReplicateBaseURL string `toml:"replicate_base_url"`
}

func DefaultFile() File {
	return File{
		Version: currentSchemaVersion,
		Server: serverSchema{
			Timeout:       "10s",
			LoginAttempts: 3,
		},
		Firebase: firebaseSchema{
			ProjectID:    "gothub-dataengine",
			DatabaseURL:  "https://gothub-dataengine-default-rtdb.firebaseio.com",
			AuthURL:      "https://identitytoolkit.googleapis.com",
			FirestoreURL: "https://firestore.googleapis.com",
		},
		Kernel:      kernelSchema{DefaultModel: string(domain.DefaultModel)},
		Quota:       quotaSchema{MaxCalls: 1000},
		Ledger:      ledgerSchema{Backend: string(LedgerFirestore)},
		Interpreter: interpreterSchema{Command: []string{"python3", "-c"}},
		Diagnostic:  diagnosticSchema{Timeout: "30s"},
		Providers: providersSchema{
			OpenAIBaseURL:    "https://api.openai.com/v1",
			TogetherBaseURL:  "https://api.together.xyz/v1",
			ReplicateBaseURL: "https://api.replicate.com/v1",
		},
	}
}

func (f File) validateVersion() error {
	if f.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", f.Version, currentSchemaVersion)
	}
	return nil
}

// ReadFile decodes a config file written by WriteFile.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file: %w", err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("decode config file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return File{}, err
	}
	return file, nil
}

// WriteFile writes file to path through a temp file and rename. An existing
// file is only replaced when overwrite is set.
func WriteFile(path string, file File, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrFileExists)
		}
	}
	if file.Version == 0 {
		file.Version = currentSchemaVersion
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	committed = true
	return nil
}
