package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"prompt_generator_server/internal/types"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

// SQLiteStore keeps the saved list in a key/value table of a SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the database at path and its kv table.
func Open(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "sqlite-store", "path", path)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers; the list is small.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	logger.Info("store opened")
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) types.SavedResultList {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, SavedPromptsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return types.SavedResultList{}
	}
	if err != nil {
		s.logger.Error("failed to read saved list", "error", err)
		return types.SavedResultList{}
	}
	return decodeList(s.logger, []byte(value))
}

func (s *SQLiteStore) Save(ctx context.Context, list types.SavedResultList) {
	data, err := encodeList(list)
	if err != nil {
		s.logger.Error("failed to encode saved list", "error", err)
		return
	}
	if err := s.put(ctx, SavedPromptsKey, string(data)); err != nil {
		s.logger.Error("failed to write saved list", "error", err, "entries", len(list))
	}
}

func (s *SQLiteStore) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}
