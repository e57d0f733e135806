// Package sqlite keeps usage records in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

// CurrentSchemaVersion is the latest schema version. Bump it when adding a
// migration.
const CurrentSchemaVersion = 1

type Store struct {
	db    *sql.DB
	clock ports.Clock
}

var _ ports.UsageStore = (*Store)(nil)

// Open creates or migrates the database at path in WAL mode.
func Open(path string, clock ports.Clock) (*Store, error) {
	if path == "" {
		return nil, errors.New("usage database path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create usage database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open usage database: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	_ = os.Chmod(path, 0o600)

	return &Store{db: db, clock: clock}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key domain.UsageKey) (domain.UsageRecord, error) {
	var record domain.UsageRecord
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, `
		SELECT created_at, updated_at, num_chats, num_characters_in, num_characters_out, num_images
		FROM usage_records
		WHERE collection = ? AND user_id = ?`,
		key.Capability.Collection(), key.UserID,
	).Scan(&createdAt, &updatedAt, &record.Chats, &record.CharactersIn, &record.CharactersOut, &record.Images)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UsageRecord{}, fmt.Errorf("get %s: %w", key, domain.ErrRecordNotFound)
	}
	if err != nil {
		return domain.UsageRecord{}, fmt.Errorf("get %s: %w", key, err)
	}

	record.CreatedAt = fromUnix(createdAt)
	record.UpdatedAt = fromUnix(updatedAt)
	return record, nil
}

// Create replaces any record already stored under key.
func (s *Store) Create(ctx context.Context, key domain.UsageKey, record domain.UsageRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO usage_records
		  (collection, user_id, created_at, updated_at, num_chats, num_characters_in, num_characters_out, num_images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key.Capability.Collection(), key.UserID,
		toUnix(record.CreatedAt), toUnix(record.UpdatedAt),
		record.Chats, record.CharactersIn, record.CharactersOut, record.Images,
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	return nil
}

// Increment adds delta in a single upsert, creating the record when missing.
func (s *Store) Increment(ctx context.Context, key domain.UsageKey, delta domain.UsageDelta) error {
	now := toUnix(s.clock.Now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_records
		  (collection, user_id, created_at, updated_at, num_chats, num_characters_in, num_characters_out, num_images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, user_id) DO UPDATE SET
		  updated_at         = excluded.updated_at,
		  num_chats          = num_chats + excluded.num_chats,
		  num_characters_in  = num_characters_in + excluded.num_characters_in,
		  num_characters_out = num_characters_out + excluded.num_characters_out,
		  num_images         = num_images + excluded.num_images`,
		key.Capability.Collection(), key.UserID, now, now,
		delta.Chats, delta.CharactersIn, delta.CharactersOut, delta.Images,
	)
	if err != nil {
		return fmt.Errorf("increment %s: %w", key, err)
	}
	return nil
}

func migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS usage_records (
		  collection         TEXT NOT NULL,
		  user_id            TEXT NOT NULL,
		  created_at         INTEGER NOT NULL,
		  updated_at         INTEGER NOT NULL,
		  num_chats          INTEGER NOT NULL DEFAULT 0,
		  num_characters_in  INTEGER NOT NULL DEFAULT 0,
		  num_characters_out INTEGER NOT NULL DEFAULT 0,
		  num_images         INTEGER NOT NULL DEFAULT 0,
		  PRIMARY KEY (collection, user_id)
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if _, err := db.Exec("PRAGMA user_version=1"); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}

	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, v).UTC()
}
