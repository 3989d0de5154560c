// Package sqlite provides a ports.MachineStore backed by a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS machines (
	id         TEXT PRIMARY KEY,
	definition TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// Store implements ports.MachineStore on SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (and creates if needed) a SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts the definition of machineID.
func (s *Store) Save(ctx context.Context, machineID string, def *definition.Definition) error {
	if strings.TrimSpace(machineID) == "" {
		return fmt.Errorf("machine id is required")
	}
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO machines (id, definition, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET definition = excluded.definition, updated_at = excluded.updated_at`,
		machineID, string(data), s.now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("save machine %s: %w", machineID, err)
	}
	return nil
}

// Load reads the definition of machineID.
func (s *Store) Load(ctx context.Context, machineID string) (*definition.Definition, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT definition FROM machines WHERE id = ?`, machineID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMachineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load machine %s: %w", machineID, err)
	}

	var def definition.Definition
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		return nil, fmt.Errorf("unmarshal definition: %w", err)
	}
	return &def, nil
}

// Delete removes machineID.
func (s *Store) Delete(ctx context.Context, machineID string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM machines WHERE id = ?`, machineID); err != nil {
		return fmt.Errorf("delete machine %s: %w", machineID, err)
	}
	return nil
}

// List returns the stored IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id FROM machines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan machine id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
