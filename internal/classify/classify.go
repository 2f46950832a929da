// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/internal/httputil"
	"github.com/pdiddy/profscan/pkg/types"
)

// AffiliationResolver fetches an affiliation for a resolved profile.
type AffiliationResolver interface {
	Affiliation(ctx context.Context, profileURL string) (string, error)
}

// Classifier enriches the author cache with classification verdicts.
type Classifier struct {
	Store        cachestore.Store
	Signals      []AuthorSignal
	Affiliations AffiliationResolver
	Config       types.ClassifyConfig
}

// Summary holds the outcome of one classification run.
type Summary struct {
	Classified int
	Skipped    int
	Abandoned  int
}

// Total returns the number of distinct authors processed.
func (s Summary) Total() int {
	return s.Classified + s.Skipped + s.Abandoned
}

// Run classifies every distinct author across papers. Finalized records are
// skipped without any network access — politeness toward the rate-limited
// source is deliberately traded against staleness. Inconclusive authors keep
// whatever enrichment the signals produced and are retried next run. Cache
// write failures abort the run.
func (c *Classifier) Run(ctx context.Context, papers []types.Paper, w io.Writer) (Summary, error) {
	authors := types.DistinctAuthors(papers)
	fmt.Fprintf(w, "Found %d unique authors.\n", len(authors))

	var summary Summary
	for i, author := range authors {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		fmt.Fprintf(w, "author %s (%d/%d)\n", author, i+1, len(authors))
		key := types.AuthorKey(author)

		var rec types.AuthorRecord
		if _, err := c.Store.Load(cachestore.NamespaceAuthors, key, &rec); err != nil {
			return summary, fmt.Errorf("loading author cache %s: %w", key, err)
		}
		if rec.Finalized() {
			fmt.Fprintf(w, "  cached, skipping\n")
			summary.Skipped++
			continue
		}

		before := rec
		verdict := c.evaluate(ctx, author, &rec, w)

		if !verdict.Decided {
			// Keep partial enrichment (e.g. a resolved profile) so the
			// next run starts further along.
			if !reflect.DeepEqual(before, rec) {
				if err := c.Store.Save(cachestore.NamespaceAuthors, key, rec); err != nil {
					return summary, fmt.Errorf("caching author %s: %w", key, err)
				}
			}
			fmt.Fprintf(w, "  inconclusive, will retry next run\n")
			summary.Abandoned++
			httputil.PolitenessDelay(c.Config.PolitenessConfig)
			continue
		}

		isProfessor := verdict.IsProfessor
		rec.IsProfessor = &isProfessor
		if isProfessor {
			rec.Affiliation = c.resolveAffiliation(ctx, rec, w)
		} else if rec.Affiliation == "" {
			// Not worth a network call for non-professors.
			rec.Affiliation = types.UnknownAffiliation
		}

		if err := c.Store.Save(cachestore.NamespaceAuthors, key, rec); err != nil {
			return summary, fmt.Errorf("caching author %s: %w", key, err)
		}

		fmt.Fprintf(w, "  is_professor=%v\n", isProfessor)
		summary.Classified++
		httputil.PolitenessDelay(c.Config.PolitenessConfig)
	}

	fmt.Fprintf(w, "\nClassification summary: %d classified, %d skipped, %d abandoned (total: %d)\n",
		summary.Classified, summary.Skipped, summary.Abandoned, summary.Total())
	return summary, nil
}

// evaluate runs the signals per the configured policy. Signal errors are
// logged and count as inconclusive; with the first-decided policy later
// signals only run while no verdict has been reached.
func (c *Classifier) evaluate(ctx context.Context, author string, rec *types.AuthorRecord, w io.Writer) Verdict {
	policy := c.Config.Policy
	if policy == "" {
		policy = types.PolicyFirstDecided
	}

	var verdicts []Verdict
	for _, signal := range c.Signals {
		v, err := signal.Evaluate(ctx, author, rec)
		if err != nil {
			if errors.Is(err, httputil.ErrRateLimited) {
				fmt.Fprintf(w, "  %s: still rate limited, giving up this run\n", signal.Name())
			} else {
				fmt.Fprintf(w, "  %s: %v\n", signal.Name(), err)
			}
			v = Inconclusive
		}
		verdicts = append(verdicts, v)
		if policy == types.PolicyFirstDecided && v.Decided {
			break
		}
	}
	return Compose(policy, verdicts)
}

// resolveAffiliation fetches the affiliation for a newly-identified
// professor. Fetch failures degrade to the Unknown sentinel; the verdict
// still finalizes.
func (c *Classifier) resolveAffiliation(ctx context.Context, rec types.AuthorRecord, w io.Writer) string {
	if rec.ProfileURL == nil || c.Affiliations == nil {
		return types.UnknownAffiliation
	}
	affiliation, err := c.Affiliations.Affiliation(ctx, *rec.ProfileURL)
	if err != nil {
		fmt.Fprintf(w, "  affiliation fetch failed: %v\n", err)
		return types.UnknownAffiliation
	}
	return affiliation
}
