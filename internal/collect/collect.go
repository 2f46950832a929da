// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect fetches conference papers across a venue/year grid,
// consulting and populating the conference cache so a repeated run costs no
// network calls.
package collect

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/internal/httputil"
	"github.com/pdiddy/profscan/pkg/types"
)

// Searcher is the slice of the fetcher the collector needs.
type Searcher interface {
	SearchPublications(ctx context.Context, keyword, venue string, year, limit int) ([]types.PublicationHit, error)
}

// Result holds the outcome of one collection run.
type Result struct {
	Fetched int
	Cached  int
	Failed  int
	Papers  []types.Paper
}

// Total returns the number of grid cells processed.
func (r Result) Total() int {
	return r.Fetched + r.Cached + r.Failed
}

// ConferenceID derives the cache key for a venue/year pair.
func ConferenceID(venue string, year int) string {
	return fmt.Sprintf("%s%d", venue, year)
}

// Run walks the venues × years grid. Cached cells are used without network
// access; fresh cells go through the searcher, are attributed with venue and
// year, and are persisted — including legitimately empty results, which the
// Fetched marker keeps from being re-queried. Per-cell fetch failures are
// logged and skipped (nothing is cached, so the cell is retried next run);
// a cache write failure aborts the run. A politeness delay follows each real
// fetch, never a cache hit.
func Run(ctx context.Context, searcher Searcher, store cachestore.Store, cfg types.CollectConfig, w io.Writer) (Result, error) {
	var result Result

	for _, venue := range cfg.Venues {
		for year := cfg.YearFrom; year <= cfg.YearTo; year++ {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			id := ConferenceID(venue, year)

			var entry types.ConferenceEntry
			found, err := store.Load(cachestore.NamespaceConferences, id, &entry)
			if err != nil {
				return result, fmt.Errorf("loading conference cache %s: %w", id, err)
			}
			if found && entry.Fetched {
				fmt.Fprintf(w, "cached:  %s (%d papers)\n", id, len(entry.Papers))
				result.Cached++
				result.Papers = append(result.Papers, entry.Papers...)
				continue
			}

			fmt.Fprintf(w, "querying %s...\n", id)
			hits, err := searcher.SearchPublications(ctx, cfg.Keyword, venue, year, cfg.MaxResults)
			if err != nil {
				if errors.Is(err, httputil.ErrRateLimited) {
					fmt.Fprintf(w, "failed:  %s (still rate limited, giving up this run)\n", id)
				} else {
					fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
				}
				result.Failed++
				continue
			}

			papers := attribute(hits, venue, year)
			entry = types.ConferenceEntry{Fetched: true, Papers: papers}
			if err := store.Save(cachestore.NamespaceConferences, id, entry); err != nil {
				return result, fmt.Errorf("caching conference %s: %w", id, err)
			}

			fmt.Fprintf(w, "fetched: %s (%d papers)\n", id, len(papers))
			result.Fetched++
			result.Papers = append(result.Papers, papers...)

			httputil.PolitenessDelay(cfg.PolitenessConfig)
		}
	}

	// Snapshot the flat list for inspection; later stages work from the
	// in-memory copy.
	if err := store.Save("", cachestore.KeyAllPapers, result.Papers); err != nil {
		return result, fmt.Errorf("saving all-papers snapshot: %w", err)
	}

	fmt.Fprintf(w, "\nCollection summary: %d fetched, %d cached, %d failed (total: %d), %d papers\n",
		result.Fetched, result.Cached, result.Failed, result.Total(), len(result.Papers))
	return result, nil
}

// attribute maps raw hits to Papers carrying their venue, year, and
// conference id.
func attribute(hits []types.PublicationHit, venue string, year int) []types.Paper {
	papers := make([]types.Paper, 0, len(hits))
	for _, h := range hits {
		papers = append(papers, types.Paper{
			Title:        h.Title,
			Authors:      h.Authors,
			Venue:        venue,
			Year:         year,
			ConferenceID: ConferenceID(venue, year),
		})
	}
	return papers
}
