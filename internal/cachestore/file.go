// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cachestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON document per key under root/namespace/key.json.
// The layout matches the cache directories the pipeline has always used
// (conferences/, authors/), so existing caches remain readable.
type FileStore struct {
	root string
}

// NewFileStore creates the cache root and namespace directories.
func NewFileStore(root string) (*FileStore, error) {
	for _, dir := range []string{
		root,
		filepath.Join(root, NamespaceConferences),
		filepath.Join(root, NamespaceAuthors),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
		}
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(ns, key string) string {
	if ns == "" {
		return filepath.Join(s.root, key+".json")
	}
	return filepath.Join(s.root, ns, key+".json")
}

// Load reads and unmarshals the record at ns/key into v. A missing file is
// not an error; a corrupt file is.
func (s *FileStore) Load(ns, key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(ns, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading cache entry %s/%s: %w", ns, key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing cache entry %s/%s: %w", ns, key, err)
	}
	return true, nil
}

// Save marshals v and writes it via a temporary file renamed into place, so
// a crash mid-write never leaves a truncated entry behind.
func (s *FileStore) Save(ns, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache entry %s/%s: %w", ns, key, err)
	}

	destPath := s.path(ns, key)
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry %s/%s: %w", ns, key, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
