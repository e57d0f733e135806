// Package toml keeps usage records in a local TOML file, for running the
// kernel without a Firestore project.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const (
	usageFileMode   = 0o600
	usageDirMode    = 0o700
	tempFilePattern = ".usage-*.toml.tmp"
)

type Store struct {
	path  string
	clock ports.Clock
	mu    *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.UsageStore = (*Store)(nil)

func NewStore(path string, clock ports.Clock) (*Store, error) {
	if path == "" {
		return nil, errors.New("usage file path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve usage path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Store{path: absPath, clock: clock, mu: lockForPath(absPath)}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(ctx context.Context, key domain.UsageKey) (domain.UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.UsageRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.UsageRecord{}, err
	}

	entry := file.find(key.Capability.Collection(), key.UserID)
	if entry == nil {
		return domain.UsageRecord{}, fmt.Errorf("get %s: %w", key, domain.ErrRecordNotFound)
	}
	return fromSchema(*entry), nil
}

// Create replaces any record already stored under key.
func (s *Store) Create(ctx context.Context, key domain.UsageKey, record domain.UsageRecord) error {
	return s.update(ctx, key, func(file *fileSchema, entry *recordSchema) {
		encoded := toSchema(key, record)
		if entry != nil {
			*entry = encoded
			return
		}
		file.Records = append(file.Records, encoded)
	})
}

// Increment adds delta to the stored record, creating it when missing.
func (s *Store) Increment(ctx context.Context, key domain.UsageKey, delta domain.UsageDelta) error {
	now := s.clock.Now()
	return s.update(ctx, key, func(file *fileSchema, entry *recordSchema) {
		if entry == nil {
			file.Records = append(file.Records, toSchema(key, domain.UsageRecord{CreatedAt: now}.Apply(delta, now)))
			return
		}
		*entry = toSchema(key, fromSchema(*entry).Apply(delta, now))
	})
}

func (s *Store) update(ctx context.Context, key domain.UsageKey, apply func(*fileSchema, *recordSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key.UserID == "" {
		return errors.New("usage key user id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	apply(&file, file.find(key.Capability.Collection(), key.UserID))

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeSchema(file)
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read usage file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode usage file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), usageDirMode); err != nil {
		return fmt.Errorf("create usage directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode usage file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp usage file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp usage file: %w", err)
	}
	if err := tempFile.Chmod(usageFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp usage file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp usage file: %w", err)
	}
	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace usage file: %w", err)
	}

	cleanup = false
	return nil
}

// lockForPath shares one mutex between every Store opened on the same file.
func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(key domain.UsageKey, record domain.UsageRecord) recordSchema {
	return recordSchema{
		Collection:    key.Capability.Collection(),
		UserID:        key.UserID,
		CreatedAt:     formatTime(record.CreatedAt),
		UpdatedAt:     formatTime(record.UpdatedAt),
		Chats:         record.Chats,
		CharactersIn:  record.CharactersIn,
		CharactersOut: record.CharactersOut,
		Images:        record.Images,
	}
}

func fromSchema(entry recordSchema) domain.UsageRecord {
	return domain.UsageRecord{
		CreatedAt:     parseTime(entry.CreatedAt),
		UpdatedAt:     parseTime(entry.UpdatedAt),
		Chats:         entry.Chats,
		CharactersIn:  entry.CharactersIn,
		CharactersOut: entry.CharactersOut,
		Images:        entry.Images,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
