// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"

	"github.com/pdiddy/profscan/pkg/types"
)

// DefaultHIndexThreshold is the citation-index cutoff used when the
// configuration does not set one.
const DefaultHIndexThreshold = 20

// CitationIndexSignal classifies an author by the h-index on their scholar
// profile: at or above the threshold counts as faculty.
type CitationIndexSignal struct {
	Scholar   ScholarSource
	Threshold int
}

// Name returns the signal identifier.
func (s *CitationIndexSignal) Name() types.SignalName { return types.SignalCitationIndex }

// Evaluate resolves a scholar profile and its h-index. Missing profiles or
// unreadable citation tables are inconclusive. The profile URL is kept on
// the record when no bibliographic profile was resolved earlier.
func (s *CitationIndexSignal) Evaluate(ctx context.Context, author string, rec *types.AuthorRecord) (Verdict, error) {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultHIndexThreshold
	}

	profileURL, err := s.Scholar.FindProfile(ctx, author)
	if err != nil {
		return Inconclusive, err
	}
	if profileURL == "" {
		return Inconclusive, nil
	}
	if rec.ProfileURL == nil {
		rec.ProfileURL = &profileURL
	}

	hIndex, err := s.Scholar.HIndex(ctx, profileURL)
	if err != nil {
		return Inconclusive, err
	}
	if hIndex < 0 {
		return Inconclusive, nil
	}

	return Verdict{Decided: true, IsProfessor: hIndex >= threshold}, nil
}
