// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"strings"

	"github.com/pdiddy/profscan/pkg/types"
)

// defaultSearchResultLimit caps how many result titles the keyword signal scans.
const defaultSearchResultLimit = 20

// ScholarSource is the slice of the scraping fetcher the web-search and
// citation-index signals need.
type ScholarSource interface {
	SearchTitles(ctx context.Context, name string, limit int) ([]string, error)
	FindProfile(ctx context.Context, name string) (string, error)
	HIndex(ctx context.Context, profileURL string) (int, error)
}

// SearchKeywordSignal classifies an author by scanning web search result
// titles for faculty vocabulary.
type SearchKeywordSignal struct {
	Search ScholarSource
	Limit  int
}

// Name returns the signal identifier.
func (s *SearchKeywordSignal) Name() types.SignalName { return types.SignalSearchKeyword }

// Evaluate fetches the top result titles and looks for the literal
// substrings "professor" or "faculty". An empty result page is
// inconclusive — it usually means the search was blocked, not that the
// author is unknown.
func (s *SearchKeywordSignal) Evaluate(ctx context.Context, author string, _ *types.AuthorRecord) (Verdict, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = defaultSearchResultLimit
	}

	titles, err := s.Search.SearchTitles(ctx, author, limit)
	if err != nil {
		return Inconclusive, err
	}
	if len(titles) == 0 {
		return Inconclusive, nil
	}

	for _, title := range titles {
		lower := strings.ToLower(title)
		if strings.Contains(lower, "professor") || strings.Contains(lower, "faculty") {
			return Verdict{Decided: true, IsProfessor: true}, nil
		}
	}
	return Verdict{Decided: true, IsProfessor: false}, nil
}
