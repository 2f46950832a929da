// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the profscan pipeline.
package types

import "strings"

// Paper is one publication returned by a conference search. Immutable once
// fetched; Authors preserves source order.
type Paper struct {
	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the conference name (e.g. "DAC").
	Venue string `json:"venue" yaml:"venue"`

	// Year is the conference year.
	Year int `json:"year" yaml:"year"`

	// ConferenceID is Venue immediately followed by Year (e.g. "DAC2021").
	ConferenceID string `json:"conference" yaml:"conference"`
}

// PublicationHit is a raw search result before venue/year attribution.
type PublicationHit struct {
	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`
}

// AuthorRecord accumulates classification state for one author. Fields are
// only ever added or overwritten, never removed. Pointer fields distinguish
// "absent" from zero values so partially-enriched records survive reloads.
type AuthorRecord struct {
	// ProfileURL is the author's bibliographic profile URL. Set once
	// resolved and cached permanently.
	ProfileURL *string `json:"profile_url,omitempty" yaml:"profile_url,omitempty"`

	// PubCount is the number of publications on the author's profile.
	PubCount *int `json:"pub_count,omitempty" yaml:"pub_count,omitempty"`

	// Affiliation is only resolved for authors over the professor
	// threshold; everyone else stays "Unknown" to save a network call.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// IsProfessor is the completion marker: once present the record is
	// finalized and the classifier skips it on later runs.
	IsProfessor *bool `json:"is_professor,omitempty" yaml:"is_professor,omitempty"`
}

// Finalized reports whether the record carries a classification verdict.
func (r AuthorRecord) Finalized() bool {
	return r.IsProfessor != nil
}

// Professor reports whether the record is finalized with a positive verdict.
func (r AuthorRecord) Professor() bool {
	return r.IsProfessor != nil && *r.IsProfessor
}

// ConferenceEntry is the cached value for one venue/year key. The Fetched
// marker distinguishes "never queried" from "queried, legitimately empty",
// so an empty conference is not re-fetched every run.
type ConferenceEntry struct {
	Fetched bool    `json:"fetched" yaml:"fetched"`
	Papers  []Paper `json:"papers" yaml:"papers"`
}

// UnknownAffiliation is the sentinel used when no affiliation was resolved.
const UnknownAffiliation = "Unknown"

// DistinctAuthors returns the set of author names across papers, in first-seen
// order. Uniqueness is by exact string match; no alias resolution.
func DistinctAuthors(papers []Paper) []string {
	seen := make(map[string]struct{})
	var authors []string
	for _, p := range papers {
		for _, a := range p.Authors {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			authors = append(authors, a)
		}
	}
	return authors
}

// AuthorKey normalizes an author name into a cache-safe key token by
// replacing whitespace runs with underscores.
func AuthorKey(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
