// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/buttonpad/store.go
// Summary: SQLite-backed pad session state (toggle values, click counts).

package buttonpad

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite schema for pad session state
const sessionSchema = `
CREATE TABLE IF NOT EXISTS pad_state (
    button_id TEXT PRIMARY KEY,
    toggled   INTEGER NOT NULL DEFAULT 0,
    clicks    INTEGER NOT NULL DEFAULT 0,
    updated   INTEGER NOT NULL      -- UnixNano of last change
);
`

// SessionStore persists per-button state across runs so a pad comes
// back up the way it was left.
type SessionStore struct {
	db *sql.DB
}

// OpenSessionStore opens (or creates) the session database.
func OpenSessionStore(dbPath string) (*SessionStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with pragmas for concurrency
	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SessionStore{db: db}, nil
}

// SaveToggle records a button's toggle state.
func (s *SessionStore) SaveToggle(buttonID string, on bool) error {
	toggled := 0
	if on {
		toggled = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO pad_state (button_id, toggled, clicks, updated) VALUES (?, ?, 0, ?)
		ON CONFLICT(button_id) DO UPDATE SET toggled = excluded.toggled, updated = excluded.updated`,
		buttonID, toggled, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save toggle: %w", err)
	}
	return nil
}

// RecordClick bumps a button's click counter and returns the new total.
func (s *SessionStore) RecordClick(buttonID string) (int64, error) {
	_, err := s.db.Exec(`
		INSERT INTO pad_state (button_id, toggled, clicks, updated) VALUES (?, 0, 1, ?)
		ON CONFLICT(button_id) DO UPDATE SET clicks = clicks + 1, updated = excluded.updated`,
		buttonID, time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to record click: %w", err)
	}

	var clicks int64
	err = s.db.QueryRow("SELECT clicks FROM pad_state WHERE button_id = ?", buttonID).Scan(&clicks)
	if err != nil {
		return 0, fmt.Errorf("failed to read click count: %w", err)
	}
	return clicks, nil
}

// ToggleStates returns the saved toggle state of every button that has
// one recorded.
func (s *SessionStore) ToggleStates() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT button_id, toggled FROM pad_state WHERE toggled != 0")
	if err != nil {
		return nil, fmt.Errorf("failed to query toggle states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]bool)
	for rows.Next() {
		var id string
		var toggled int
		if err := rows.Scan(&id, &toggled); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		states[id] = toggled != 0
	}
	return states, rows.Err()
}

// ClickCount returns a button's persisted click total.
func (s *SessionStore) ClickCount(buttonID string) (int64, error) {
	var clicks int64
	err := s.db.QueryRow("SELECT clicks FROM pad_state WHERE button_id = ?", buttonID).Scan(&clicks)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read click count: %w", err)
	}
	return clicks, nil
}

// Forget drops state for buttons no longer in the pad definition.
func (s *SessionStore) Forget(keep map[string]bool) error {
	rows, err := s.db.Query("SELECT button_id FROM pad_state")
	if err != nil {
		return fmt.Errorf("failed to list state: %w", err)
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan row: %w", err)
		}
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range stale {
		if _, err := s.db.Exec("DELETE FROM pad_state WHERE button_id = ?", id); err != nil {
			return fmt.Errorf("failed to drop state for %q: %w", id, err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
