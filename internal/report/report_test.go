// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/pkg/types"
)

func TestFormatCountToken(t *testing.T) {
	tests := []struct {
		conferenceID string
		count        int
		want         string
	}{
		{"NeurIPS2023", 3, "NeurIPS(23):3"},
		{"DAC2021", 1, "DAC(21):1"},
		{"ICCAD99", 2, "ICCAD(99):2"},
		{"Workshop", 4, "Workshop:4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCountToken(tt.conferenceID, tt.count))
	}
}

func TestFormatCountsOrderedAndJoined(t *testing.T) {
	got := FormatCounts(map[string]int{
		"DAC2022": 1,
		"DAC2021": 1,
	})
	assert.Equal(t, "DAC(21):1; DAC(22):1", got)
}

func TestSplitKeyFirstCommaOnly(t *testing.T) {
	name, affiliation := SplitKey("Jane Doe, MIT, CSAIL")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "MIT, CSAIL", affiliation)
}

func TestBuildKeyDefaultsAffiliation(t *testing.T) {
	assert.Equal(t, "A. Smith, Unknown", BuildKey("A. Smith", ""))
	assert.Equal(t, "A. Smith, X University", BuildKey("A. Smith", "X University"))
}

func testStore(t *testing.T) cachestore.Store {
	t.Helper()
	store, err := cachestore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func saveAuthor(t *testing.T, store cachestore.Store, name string, rec types.AuthorRecord) {
	t.Helper()
	require.NoError(t, store.Save(cachestore.NamespaceAuthors, types.AuthorKey(name), rec))
}

func professorRecord(profileURL, affiliation string, pubCount int) types.AuthorRecord {
	yes := true
	return types.AuthorRecord{
		ProfileURL:  &profileURL,
		PubCount:    &pubCount,
		Affiliation: affiliation,
		IsProfessor: &yes,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestCountsReportEndToEnd(t *testing.T) {
	store := testStore(t)
	saveAuthor(t, store, "A. Smith", professorRecord("https://dblp.org/pid/00/1", "X University", 25))

	no := false
	saveAuthor(t, store, "B. Jones", types.AuthorRecord{IsProfessor: &no, Affiliation: types.UnknownAffiliation})

	papers := []types.Paper{
		{Title: "Paper One", Authors: []string{"A. Smith", "B. Jones"}, Venue: "DAC", Year: 2021, ConferenceID: "DAC2021"},
		{Title: "Paper Two", Authors: []string{"A. Smith"}, Venue: "DAC", Year: 2022, ConferenceID: "DAC2022"},
	}

	reporter := &Reporter{
		Store:  store,
		Config: types.ReportConfig{OutputDir: t.TempDir()},
	}

	var out bytes.Buffer
	path, err := reporter.Run(papers, &out)
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Professor Name", "Affiliation", "Paper Counts", "Author URL"}, records[0])
	assert.Equal(t, []string{"A. Smith", "X University", "DAC(21):1; DAC(22):1", "https://dblp.org/pid/00/1"}, records[1])
}

func TestSnapshotPersistedBeforeRendering(t *testing.T) {
	store := testStore(t)
	saveAuthor(t, store, "A. Smith", professorRecord("https://dblp.org/pid/00/1", "X University", 25))

	papers := []types.Paper{
		{Title: "Paper One", Authors: []string{"A. Smith"}, ConferenceID: "DAC2021"},
	}
	reporter := &Reporter{
		Store:  store,
		Config: types.ReportConfig{OutputDir: t.TempDir()},
	}

	var out bytes.Buffer
	_, err := reporter.Run(papers, &out)
	require.NoError(t, err)

	var snapshot Aggregation
	found, err := store.Load("", cachestore.KeyProfessorPaperCount, &snapshot)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, snapshot.Counts["A. Smith, X University"]["DAC2021"])
}

func TestPapersModeListsEveryPaper(t *testing.T) {
	store := testStore(t)
	saveAuthor(t, store, "A. Smith", professorRecord("https://dblp.org/pid/00/1", "X University", 25))

	papers := []types.Paper{
		{Title: "Paper One", Authors: []string{"A. Smith"}, ConferenceID: "DAC2021"},
		{Title: "Paper Two", Authors: []string{"A. Smith"}, ConferenceID: "DAC2022"},
	}
	reporter := &Reporter{
		Store:  store,
		Config: types.ReportConfig{Mode: types.ReportPapers, OutputDir: t.TempDir()},
	}

	var out bytes.Buffer
	path, err := reporter.Run(papers, &out)
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"A. Smith", "X University", "DAC2021", "Paper One"}, records[1])
	assert.Equal(t, []string{"A. Smith", "X University", "DAC2022", "Paper Two"}, records[2])
}

func TestUnclassifiedAuthorsExcluded(t *testing.T) {
	store := testStore(t)

	papers := []types.Paper{
		{Title: "Paper One", Authors: []string{"Nobody Known"}, ConferenceID: "DAC2021"},
	}
	agg, err := Aggregate(store, papers, types.ReportCounts)
	require.NoError(t, err)
	assert.Empty(t, agg.Counts)
}

func TestExportYAMLAndJSON(t *testing.T) {
	store := testStore(t)
	saveAuthor(t, store, "A. Smith", professorRecord("https://dblp.org/pid/00/1", "X University", 25))

	papers := []types.Paper{
		{Title: "Paper One", Authors: []string{"A. Smith"}, ConferenceID: "DAC2021"},
	}
	outDir := t.TempDir()
	reporter := &Reporter{
		Store:  store,
		Config: types.ReportConfig{OutputDir: outDir},
	}

	require.NoError(t, reporter.ExportYAML(papers))
	require.NoError(t, reporter.ExportJSON(papers))

	yamlData, err := os.ReadFile(filepath.Join(outDir, "export.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "A. Smith, X University")

	jsonData, err := os.ReadFile(filepath.Join(outDir, "export.json"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), "DAC2021")
}

func TestCleanCSVDropsEmptyRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "professors.csv")
	content := "Professor Name,Affiliation,Paper Counts,Author URL\n" +
		"A. Smith,X University,DAC(21):1,https://dblp.org/pid/00/1\n" +
		",,,\n" +
		"B. Lee,Y University,DAC(21):2,https://dblp.org/pid/00/2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	dropped, err := CleanCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, "A. Smith", records[1][0])
	assert.Equal(t, "B. Lee", records[2][0])
}
