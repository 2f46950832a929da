// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"

	"github.com/pdiddy/profscan/pkg/types"
)

// DefaultProfessorThreshold is the publication-count cutoff used when the
// configuration does not set one.
const DefaultProfessorThreshold = 20

// AuthorProfiler is the slice of the bibliographic fetcher the
// publication-count signal needs.
type AuthorProfiler interface {
	SearchAuthor(ctx context.Context, name string) (string, error)
	PublicationCount(ctx context.Context, profileURL string) (int, error)
}

// PublicationCountSignal classifies an author by the size of their
// bibliographic profile: at or above the threshold counts as faculty.
type PublicationCountSignal struct {
	Profiles  AuthorProfiler
	Threshold int
}

// Name returns the signal identifier.
func (s *PublicationCountSignal) Name() types.SignalName { return types.SignalPublicationCount }

// Evaluate resolves the author's profile and publication count, reusing
// values already on the record so a partially-enriched author never repeats
// a fetch. A name with no profile match is inconclusive.
func (s *PublicationCountSignal) Evaluate(ctx context.Context, author string, rec *types.AuthorRecord) (Verdict, error) {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultProfessorThreshold
	}

	if rec.ProfileURL == nil {
		url, err := s.Profiles.SearchAuthor(ctx, author)
		if err != nil {
			return Inconclusive, err
		}
		if url == "" {
			return Inconclusive, nil
		}
		rec.ProfileURL = &url
	}

	if rec.PubCount == nil {
		count, err := s.Profiles.PublicationCount(ctx, *rec.ProfileURL)
		if err != nil {
			return Inconclusive, err
		}
		rec.PubCount = &count
	}

	return Verdict{Decided: true, IsProfessor: *rec.PubCount >= threshold}, nil
}
