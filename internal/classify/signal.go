// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides which authors are likely faculty. Several
// heuristic signals share one strategy interface; a policy composes their
// verdicts into the cached classification.
package classify

import (
	"context"
	"fmt"

	"github.com/pdiddy/profscan/pkg/types"
)

// Verdict is one signal's conclusion about an author. An inconclusive
// verdict (Decided false) abandons the author for this run; the record
// stays unfinalized and is retried next run.
type Verdict struct {
	Decided     bool
	IsProfessor bool
}

// Inconclusive is the zero Verdict, named for readability at return sites.
var Inconclusive = Verdict{}

// AuthorSignal evaluates one classification heuristic for a name. Signals
// may enrich the record in place (profile URL, publication count) so the
// enrichment is persisted even when the verdict is inconclusive.
type AuthorSignal interface {
	Name() types.SignalName
	Evaluate(ctx context.Context, author string, rec *types.AuthorRecord) (Verdict, error)
}

// Compose folds signal verdicts per the policy. With PolicyFirstDecided the
// first conclusive verdict wins; with PolicyMajority every conclusive
// verdict votes and ties resolve to not-professor.
func Compose(policy types.SignalPolicy, verdicts []Verdict) Verdict {
	switch policy {
	case types.PolicyMajority:
		yes, no := 0, 0
		for _, v := range verdicts {
			if !v.Decided {
				continue
			}
			if v.IsProfessor {
				yes++
			} else {
				no++
			}
		}
		if yes+no == 0 {
			return Inconclusive
		}
		return Verdict{Decided: true, IsProfessor: yes > no}
	default:
		for _, v := range verdicts {
			if v.Decided {
				return v
			}
		}
		return Inconclusive
	}
}

// BuildSignals instantiates the configured strategies in order. The zero
// configuration yields the publication-count signal alone.
func BuildSignals(cfg types.ClassifyConfig, profiles AuthorProfiler, scholar ScholarSource) ([]AuthorSignal, error) {
	names := cfg.Signals
	if len(names) == 0 {
		names = []types.SignalName{types.SignalPublicationCount}
	}

	var signals []AuthorSignal
	for _, name := range names {
		switch name {
		case types.SignalPublicationCount:
			signals = append(signals, &PublicationCountSignal{
				Profiles:  profiles,
				Threshold: cfg.ProfessorThreshold,
			})
		case types.SignalSearchKeyword:
			signals = append(signals, &SearchKeywordSignal{
				Search: scholar,
				Limit:  cfg.SearchResultLimit,
			})
		case types.SignalCitationIndex:
			signals = append(signals, &CitationIndexSignal{
				Scholar:   scholar,
				Threshold: cfg.HIndexThreshold,
			})
		default:
			return nil, fmt.Errorf("unknown author signal %q", name)
		}
	}
	return signals, nil
}
