// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cachestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "profscan.db"

// SQLiteStore keeps all cache entries in a single SQLite database at
// root/profscan.db, one row per (namespace, key) with the record stored as
// JSON text. Useful when the author cache grows into thousands of small
// files.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the cache database and its schema.
func NewSQLiteStore(root string) (*SQLiteStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", root, err)
	}

	dbPath := filepath.Join(root, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		ns TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (ns, key)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads and unmarshals the record at ns/key into v.
func (s *SQLiteStore) Load(ns, key string, v any) (bool, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM entries WHERE ns = ? AND key = ?`, ns, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache entry %s/%s: %w", ns, key, err)
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return false, fmt.Errorf("parsing cache entry %s/%s: %w", ns, key, err)
	}
	return true, nil
}

// Save upserts the record at ns/key.
func (s *SQLiteStore) Save(ns, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling cache entry %s/%s: %w", ns, key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO entries (ns, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(ns, key) DO UPDATE SET value=excluded.value`,
		ns, key, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s/%s: %w", ns, key, err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
