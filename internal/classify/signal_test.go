// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/profscan/pkg/types"
)

func TestComposeFirstDecided(t *testing.T) {
	tests := []struct {
		name     string
		verdicts []Verdict
		want     Verdict
	}{
		{"empty", nil, Inconclusive},
		{"all inconclusive", []Verdict{Inconclusive, Inconclusive}, Inconclusive},
		{"first decides", []Verdict{{Decided: true, IsProfessor: true}, {Decided: true}}, Verdict{Decided: true, IsProfessor: true}},
		{"skips inconclusive", []Verdict{Inconclusive, {Decided: true}}, Verdict{Decided: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(types.PolicyFirstDecided, tt.verdicts))
		})
	}
}

func TestComposeMajority(t *testing.T) {
	yes := Verdict{Decided: true, IsProfessor: true}
	no := Verdict{Decided: true}

	tests := []struct {
		name     string
		verdicts []Verdict
		want     Verdict
	}{
		{"no votes", []Verdict{Inconclusive}, Inconclusive},
		{"two to one", []Verdict{yes, no, yes}, yes},
		{"tie resolves to not professor", []Verdict{yes, no}, no},
		{"inconclusive does not vote", []Verdict{Inconclusive, yes}, yes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(types.PolicyMajority, tt.verdicts))
		})
	}
}

// stubScholar returns fixed answers for every lookup.
type stubScholar struct {
	titles     []string
	profileURL string
	hIndex     int
}

func (s *stubScholar) SearchTitles(_ context.Context, _ string, limit int) ([]string, error) {
	if limit < len(s.titles) {
		return s.titles[:limit], nil
	}
	return s.titles, nil
}

func (s *stubScholar) FindProfile(_ context.Context, _ string) (string, error) {
	return s.profileURL, nil
}

func (s *stubScholar) HIndex(_ context.Context, _ string) (int, error) {
	return s.hIndex, nil
}

func TestBuildSignalsDefault(t *testing.T) {
	signals, err := BuildSignals(types.ClassifyConfig{}, &mockProfiler{}, &stubScholar{})
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, types.SignalPublicationCount, signals[0].Name())
}

func TestBuildSignalsOrder(t *testing.T) {
	cfg := types.ClassifyConfig{
		Signals: []types.SignalName{
			types.SignalSearchKeyword,
			types.SignalCitationIndex,
			types.SignalPublicationCount,
		},
	}
	signals, err := BuildSignals(cfg, &mockProfiler{}, &stubScholar{})
	require.NoError(t, err)
	require.Len(t, signals, 3)
	assert.Equal(t, types.SignalSearchKeyword, signals[0].Name())
	assert.Equal(t, types.SignalCitationIndex, signals[1].Name())
	assert.Equal(t, types.SignalPublicationCount, signals[2].Name())
}

func TestBuildSignalsUnknownName(t *testing.T) {
	_, err := BuildSignals(types.ClassifyConfig{
		Signals: []types.SignalName{"oracle"},
	}, &mockProfiler{}, &stubScholar{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestSearchKeywordSignal(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   Verdict
	}{
		{"blocked search is inconclusive", nil, Inconclusive},
		{"faculty vocabulary decides yes", []string{"Jane Doe - Professor of CS"}, Verdict{Decided: true, IsProfessor: true}},
		{"case insensitive", []string{"FACULTY page for Jane Doe"}, Verdict{Decided: true, IsProfessor: true}},
		{"plain results decide no", []string{"Jane Doe | LinkedIn"}, Verdict{Decided: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := &SearchKeywordSignal{Search: &stubScholar{titles: tt.titles}}
			var rec types.AuthorRecord
			got, err := signal.Evaluate(context.Background(), "Jane Doe", &rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCitationIndexSignal(t *testing.T) {
	tests := []struct {
		name       string
		profileURL string
		hIndex     int
		want       Verdict
	}{
		{"no profile", "", 0, Inconclusive},
		{"unreadable table", "https://scholar.google.com/citations?user=x", -1, Inconclusive},
		{"below threshold", "https://scholar.google.com/citations?user=x", 19, Verdict{Decided: true}},
		{"at threshold", "https://scholar.google.com/citations?user=x", 20, Verdict{Decided: true, IsProfessor: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := &CitationIndexSignal{Scholar: &stubScholar{profileURL: tt.profileURL, hIndex: tt.hIndex}}
			var rec types.AuthorRecord
			got, err := signal.Evaluate(context.Background(), "Jane Doe", &rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.profileURL != "" {
				require.NotNil(t, rec.ProfileURL)
				assert.Equal(t, tt.profileURL, *rec.ProfileURL)
			}
		})
	}
}

func TestPublicationCountSignalReusesEnrichment(t *testing.T) {
	profiler := &mockProfiler{
		counts: map[string]int{"https://dblp.org/pid/00/1": 25},
	}
	url := "https://dblp.org/pid/00/1"
	count := 25
	rec := types.AuthorRecord{ProfileURL: &url, PubCount: &count}

	signal := &PublicationCountSignal{Profiles: profiler, Threshold: 20}
	got, err := signal.Evaluate(context.Background(), "A. Smith", &rec)
	require.NoError(t, err)
	assert.Equal(t, Verdict{Decided: true, IsProfessor: true}, got)
	assert.Zero(t, profiler.searchCalls)
	assert.Zero(t, profiler.countCalls)
}
