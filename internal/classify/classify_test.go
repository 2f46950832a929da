// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/internal/httputil"
	"github.com/pdiddy/profscan/pkg/types"
)

func init() {
	httputil.Sleep = func(time.Duration) {}
}

// mockProfiler serves canned profiles and counts network-equivalent calls.
type mockProfiler struct {
	searchCalls int
	countCalls  int
	profiles    map[string]string
	counts      map[string]int
	err         error
}

func (m *mockProfiler) SearchAuthor(_ context.Context, name string) (string, error) {
	m.searchCalls++
	if m.err != nil {
		return "", m.err
	}
	return m.profiles[name], nil
}

func (m *mockProfiler) PublicationCount(_ context.Context, profileURL string) (int, error) {
	m.countCalls++
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[profileURL], nil
}

// mockAffiliations counts affiliation lookups.
type mockAffiliations struct {
	calls       int
	affiliation string
	err         error
}

func (m *mockAffiliations) Affiliation(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.affiliation, nil
}

func testStore(t *testing.T) cachestore.Store {
	t.Helper()
	store, err := cachestore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func paperBy(author string) []types.Paper {
	return []types.Paper{{Title: "P", Authors: []string{author}, ConferenceID: "DAC2021"}}
}

func newClassifier(store cachestore.Store, profiler *mockProfiler, affiliations *mockAffiliations) *Classifier {
	return &Classifier{
		Store: store,
		Signals: []AuthorSignal{
			&PublicationCountSignal{Profiles: profiler, Threshold: 20},
		},
		Affiliations: affiliations,
	}
}

func loadRecord(t *testing.T, store cachestore.Store, author string) types.AuthorRecord {
	t.Helper()
	var rec types.AuthorRecord
	_, err := store.Load(cachestore.NamespaceAuthors, types.AuthorKey(author), &rec)
	require.NoError(t, err)
	return rec
}

func TestThresholdBoundary(t *testing.T) {
	tests := []struct {
		name             string
		pubCount         int
		wantProfessor    bool
		wantAffiliations int
	}{
		{"below threshold", 19, false, 0},
		{"at threshold", 20, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testStore(t)
			profiler := &mockProfiler{
				profiles: map[string]string{"A. Smith": "https://dblp.org/pid/00/1"},
				counts:   map[string]int{"https://dblp.org/pid/00/1": tt.pubCount},
			}
			affiliations := &mockAffiliations{affiliation: "X University"}

			var out bytes.Buffer
			summary, err := newClassifier(store, profiler, affiliations).Run(context.Background(), paperBy("A. Smith"), &out)
			require.NoError(t, err)
			assert.Equal(t, 1, summary.Classified)

			rec := loadRecord(t, store, "A. Smith")
			require.True(t, rec.Finalized())
			assert.Equal(t, tt.wantProfessor, rec.Professor())
			assert.Equal(t, tt.wantAffiliations, affiliations.calls)
			if tt.wantProfessor {
				assert.Equal(t, "X University", rec.Affiliation)
			} else {
				assert.Equal(t, types.UnknownAffiliation, rec.Affiliation)
			}
		})
	}
}

func TestFinalizedRecordSkippedWithoutNetworkCalls(t *testing.T) {
	store := testStore(t)
	profiler := &mockProfiler{
		profiles: map[string]string{"A. Smith": "https://dblp.org/pid/00/1"},
		counts:   map[string]int{"https://dblp.org/pid/00/1": 25},
	}
	affiliations := &mockAffiliations{affiliation: "X University"}
	classifier := newClassifier(store, profiler, affiliations)

	var out bytes.Buffer
	_, err := classifier.Run(context.Background(), paperBy("A. Smith"), &out)
	require.NoError(t, err)
	first := loadRecord(t, store, "A. Smith")

	searchCalls, countCalls, affCalls := profiler.searchCalls, profiler.countCalls, affiliations.calls

	summary, err := classifier.Run(context.Background(), paperBy("A. Smith"), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, searchCalls, profiler.searchCalls)
	assert.Equal(t, countCalls, profiler.countCalls)
	assert.Equal(t, affCalls, affiliations.calls)
	assert.Equal(t, first, loadRecord(t, store, "A. Smith"))
}

func TestNoProfileMatchAbandonsForThisRun(t *testing.T) {
	store := testStore(t)
	profiler := &mockProfiler{profiles: map[string]string{}}

	var out bytes.Buffer
	summary, err := newClassifier(store, profiler, &mockAffiliations{}).Run(context.Background(), paperBy("Nobody"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Abandoned)

	rec := loadRecord(t, store, "Nobody")
	assert.False(t, rec.Finalized())

	// Next run retries from scratch.
	profiler.profiles["Nobody"] = "https://dblp.org/pid/00/9"
	profiler.counts = map[string]int{"https://dblp.org/pid/00/9": 30}
	summary, err = newClassifier(store, profiler, &mockAffiliations{affiliation: "Y"}).Run(context.Background(), paperBy("Nobody"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Classified)
}

func TestCountFetchFailureAbandons(t *testing.T) {
	store := testStore(t)
	profiler := &countFailsProfiler{
		profileURL: "https://dblp.org/pid/00/1",
	}

	var out bytes.Buffer
	classifier := &Classifier{
		Store:        store,
		Signals:      []AuthorSignal{&PublicationCountSignal{Profiles: profiler, Threshold: 20}},
		Affiliations: &mockAffiliations{},
	}
	summary, err := classifier.Run(context.Background(), paperBy("A. Smith"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Abandoned)

	// The resolved profile URL survives the failed run.
	rec := loadRecord(t, store, "A. Smith")
	require.NotNil(t, rec.ProfileURL)
	assert.Equal(t, "https://dblp.org/pid/00/1", *rec.ProfileURL)
	assert.False(t, rec.Finalized())
}

// countFailsProfiler resolves profiles but fails every count fetch.
type countFailsProfiler struct {
	profileURL string
}

func (p *countFailsProfiler) SearchAuthor(_ context.Context, _ string) (string, error) {
	return p.profileURL, nil
}

func (p *countFailsProfiler) PublicationCount(_ context.Context, _ string) (int, error) {
	return 0, errors.New("HTTP 503")
}

func TestAffiliationFailureStillFinalizes(t *testing.T) {
	store := testStore(t)
	profiler := &mockProfiler{
		profiles: map[string]string{"A. Smith": "https://dblp.org/pid/00/1"},
		counts:   map[string]int{"https://dblp.org/pid/00/1": 25},
	}
	affiliations := &mockAffiliations{err: errors.New("HTTP 500")}

	var out bytes.Buffer
	summary, err := newClassifier(store, profiler, affiliations).Run(context.Background(), paperBy("A. Smith"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Classified)

	rec := loadRecord(t, store, "A. Smith")
	assert.True(t, rec.Professor())
	assert.Equal(t, types.UnknownAffiliation, rec.Affiliation)
}

func TestRateLimitedSignalLogsDistinctly(t *testing.T) {
	store := testStore(t)
	profiler := &mockProfiler{err: httputil.ErrRateLimited}

	var out bytes.Buffer
	summary, err := newClassifier(store, profiler, &mockAffiliations{}).Run(context.Background(), paperBy("A. Smith"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Abandoned)
	assert.Contains(t, out.String(), "still rate limited")
}
