// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "profscan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PolitenessConfig bounds the jittered delay inserted between successful,
// non-cached external calls in a bulk loop. Distinct from 429 backoff: the
// point is to avoid triggering rate limiting in the first place.
type PolitenessConfig struct {
	// MinDelay is the lower bound of the politeness delay (default 2s).
	MinDelay time.Duration `json:"min_delay" yaml:"min_delay"`

	// MaxDelay is the upper bound of the politeness delay (default 5s).
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay"`
}

// StoreBackend identifies the cache store implementation.
type StoreBackend string

const (
	StoreFiles  StoreBackend = "files"
	StoreSQLite StoreBackend = "sqlite"
)

// CacheConfig holds settings for the durable cache store.
type CacheConfig struct {
	// Backend selects the store implementation: files or sqlite.
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// Dir is the cache root directory (contains conferences/, authors/).
	Dir string `json:"dir" yaml:"dir"`
}

// CollectConfig holds settings for the conference paper collector.
type CollectConfig struct {
	HTTPConfig       `yaml:",inline"`
	PolitenessConfig `yaml:",inline"`

	// Keyword is the topical search term matched against paper titles.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Venues lists the conference names to query (e.g. ["NeurIPS", "DAC"]).
	Venues []string `json:"venues" yaml:"venues"`

	// YearFrom and YearTo bound the inclusive year range of the grid.
	YearFrom int `json:"year_from" yaml:"year_from"`
	YearTo   int `json:"year_to" yaml:"year_to"`

	// MaxResults is the per-query result cap (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SignalName identifies an author classification strategy.
type SignalName string

const (
	SignalPublicationCount SignalName = "pubcount"
	SignalSearchKeyword    SignalName = "websearch"
	SignalCitationIndex    SignalName = "hindex"
)

// SignalPolicy selects how multiple signal verdicts are composed.
type SignalPolicy string

const (
	// PolicyFirstDecided takes the first conclusive verdict in signal order.
	PolicyFirstDecided SignalPolicy = "first"

	// PolicyMajority takes the majority of conclusive verdicts.
	PolicyMajority SignalPolicy = "majority"
)

// ClassifyConfig holds settings for the author classifier.
type ClassifyConfig struct {
	HTTPConfig       `yaml:",inline"`
	PolitenessConfig `yaml:",inline"`

	// ProfessorThreshold is the publication-count cutoff (default 20).
	// Source material used both 20 and 15; neither is authoritative, so
	// the cutoff is configuration, not a constant.
	ProfessorThreshold int `json:"professor_threshold" yaml:"professor_threshold"`

	// HIndexThreshold is the citation-index cutoff (default 20).
	HIndexThreshold int `json:"hindex_threshold" yaml:"hindex_threshold"`

	// SearchResultLimit caps how many web search result titles the keyword
	// signal scans (default 20).
	SearchResultLimit int `json:"search_result_limit" yaml:"search_result_limit"`

	// Signals orders the strategies to evaluate (default [pubcount]).
	Signals []SignalName `json:"signals" yaml:"signals"`

	// Policy composes multiple signal verdicts (default first).
	Policy SignalPolicy `json:"policy" yaml:"policy"`
}

// ReportMode selects the report shape.
type ReportMode string

const (
	// ReportPapers maps each professor to (conference, title) pairs.
	ReportPapers ReportMode = "papers"

	// ReportCounts maps each professor to per-conference paper counts.
	ReportCounts ReportMode = "counts"
)

// ReportConfig holds settings for the aggregation and report stage.
type ReportConfig struct {
	// Mode selects the report shape: papers or counts.
	Mode ReportMode `json:"mode" yaml:"mode"`

	// OutputDir is the directory for rendered reports and snapshots.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Collect  CollectConfig  `json:"collect" yaml:"collect"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Report   ReportConfig   `json:"report" yaml:"report"`
}
