// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report joins collected papers with cached author verdicts and
// renders the professor activity report. The aggregation is rebuilt from
// scratch every run; only the snapshot persisted before rendering is durable.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/pkg/types"
)

// PaperRef locates one paper inside a professor's publication list.
type PaperRef struct {
	ConferenceID string `json:"conference" yaml:"conference"`
	Title        string `json:"title" yaml:"title"`
}

// Aggregation maps professor keys ("name, affiliation") to their collected
// activity. Papers is populated in papers mode, Counts in counts mode;
// ProfileURLs carries the resolved profile for either mode.
type Aggregation struct {
	Papers      map[string][]PaperRef     `json:"papers,omitempty" yaml:"papers,omitempty"`
	Counts      map[string]map[string]int `json:"counts,omitempty" yaml:"counts,omitempty"`
	ProfileURLs map[string]string         `json:"profile_urls" yaml:"profile_urls"`
}

// BuildKey derives the report key for a professor. A missing affiliation
// falls back to the Unknown sentinel.
func BuildKey(name, affiliation string) string {
	if affiliation == "" {
		affiliation = types.UnknownAffiliation
	}
	return name + ", " + affiliation
}

// SplitKey recovers name and affiliation from a report key. Only the first
// comma splits, so affiliations containing commas survive the round trip.
func SplitKey(key string) (name, affiliation string) {
	name, affiliation, found := strings.Cut(key, ", ")
	if !found {
		return key, types.UnknownAffiliation
	}
	return name, affiliation
}

// Aggregate walks every author of every paper and folds the ones with a
// positive cached verdict into the professor mapping. Authors without a
// finalized record are ignored; a classify run fills them in later.
func Aggregate(store cachestore.Store, papers []types.Paper, mode types.ReportMode) (*Aggregation, error) {
	agg := &Aggregation{
		ProfileURLs: make(map[string]string),
	}
	if mode == types.ReportPapers {
		agg.Papers = make(map[string][]PaperRef)
	} else {
		agg.Counts = make(map[string]map[string]int)
	}

	records := make(map[string]*types.AuthorRecord)
	for _, paper := range papers {
		for _, author := range paper.Authors {
			rec, ok := records[author]
			if !ok {
				var loaded types.AuthorRecord
				if _, err := store.Load(cachestore.NamespaceAuthors, types.AuthorKey(author), &loaded); err != nil {
					return nil, fmt.Errorf("loading author %s: %w", author, err)
				}
				rec = &loaded
				records[author] = rec
			}
			if !rec.Professor() {
				continue
			}

			key := BuildKey(author, rec.Affiliation)
			if rec.ProfileURL != nil {
				agg.ProfileURLs[key] = *rec.ProfileURL
			}
			if mode == types.ReportPapers {
				agg.Papers[key] = append(agg.Papers[key], PaperRef{
					ConferenceID: paper.ConferenceID,
					Title:        paper.Title,
				})
			} else {
				if agg.Counts[key] == nil {
					agg.Counts[key] = make(map[string]int)
				}
				agg.Counts[key][paper.ConferenceID]++
			}
		}
	}
	return agg, nil
}

// Keys returns the professor keys in sorted order for deterministic output.
func (a *Aggregation) Keys() []string {
	var keys []string
	if a.Papers != nil {
		for k := range a.Papers {
			keys = append(keys, k)
		}
	} else {
		for k := range a.Counts {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// snapshotKey returns the durable snapshot key for the report mode.
func snapshotKey(mode types.ReportMode) string {
	if mode == types.ReportPapers {
		return cachestore.KeyProfessorPapers
	}
	return cachestore.KeyProfessorPaperCount
}
