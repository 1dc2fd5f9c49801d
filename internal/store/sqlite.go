package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-device-license-go/model"
	_ "modernc.org/sqlite"
)

const activationKey = "activation"

// SQLiteStore implements RecordStore on a single-file SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger log.Logger
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, logger log.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Debugf("Local license store initialized at %s", path)

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS license_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`

	_, err := s.db.Exec(schema)

	return err
}

// Load reads the activation record.
func (s *SQLiteStore) Load(ctx context.Context) (*model.ActivationRecord, error) {
	var raw string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM license_state WHERE key = ?`, activationKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("load activation record: %w", err)
	}

	var record model.ActivationRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decode activation record: %w", err)
	}

	return &record, nil
}

// Save replaces the activation record.
func (s *SQLiteStore) Save(ctx context.Context, record *model.ActivationRecord) error {
	if record == nil {
		return errors.New("activation record is nil")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode activation record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO license_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, activationKey, string(data))
	if err != nil {
		return fmt.Errorf("save activation record: %w", err)
	}

	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
