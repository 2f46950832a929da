// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cachestore persists pipeline records across runs. Records are
// JSON-serializable values keyed by string within a namespace; there is no
// eviction and no TTL — entries live until manually deleted.
package cachestore

import (
	"fmt"

	"github.com/pdiddy/profscan/pkg/types"
)

// Namespaces used by the pipeline. The empty namespace addresses root-level
// snapshot keys such as "all_papers".
const (
	NamespaceConferences = "conferences"
	NamespaceAuthors     = "authors"
)

// Snapshot keys.
const (
	KeyAllPapers           = "all_papers"
	KeyProfessorPapers     = "professor_papers"
	KeyProfessorPaperCount = "professor_paper_counts"
)

// Store is durable key-value persistence for pipeline records. Load never
// fails on absence: the destination is left untouched and found is false,
// so callers start from a fresh empty record. Save overwrites the full
// record; a Save failure must be treated as fatal by the caller, since
// silent partial persistence would corrupt the skip-if-cached invariants.
type Store interface {
	Load(ns, key string, v any) (found bool, err error)
	Save(ns, key string, v any) error
	Close() error
}

// New opens the store selected by cfg.Backend. An empty backend defaults
// to file-per-key JSON documents.
func New(cfg types.CacheConfig) (Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "cache"
	}
	switch cfg.Backend {
	case types.StoreFiles, "":
		return NewFileStore(dir)
	case types.StoreSQLite:
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
