// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/pkg/types"
)

// CountsFileName is the rendered counts report.
const CountsFileName = "professors.csv"

// PapersFileName is the rendered per-paper report.
const PapersFileName = "professor_papers.csv"

// FormatCountToken renders one per-conference count as "venue(YY):count",
// e.g. "NeurIPS(23):3". A conference id without a year suffix degrades to
// "id:count".
func FormatCountToken(conferenceID string, count int) string {
	i := len(conferenceID)
	for i > 0 && conferenceID[i-1] >= '0' && conferenceID[i-1] <= '9' {
		i--
	}
	year := conferenceID[i:]
	if year == "" {
		return fmt.Sprintf("%s:%d", conferenceID, count)
	}
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return fmt.Sprintf("%s(%s):%d", conferenceID[:i], year, count)
}

// FormatCounts joins the per-conference tokens with "; ", ordered by
// conference id so output is stable across runs.
func FormatCounts(counts map[string]int) string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = FormatCountToken(id, counts[id])
	}
	return strings.Join(tokens, "; ")
}

// Reporter builds the professor aggregation and renders it to CSV. The
// aggregation snapshot is persisted to the store before rendering so the
// report can be regenerated without re-running classification.
type Reporter struct {
	Store  cachestore.Store
	Config types.ReportConfig
}

// Run aggregates papers against the enriched author cache, persists the
// snapshot, and writes the CSV report. Returns the rendered file path.
func (r *Reporter) Run(papers []types.Paper, w io.Writer) (string, error) {
	mode := r.Config.Mode
	if mode == "" {
		mode = types.ReportCounts
	}

	agg, err := Aggregate(r.Store, papers, mode)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Found %d professors across %d papers.\n", len(agg.Keys()), len(papers))

	if err := r.Store.Save("", snapshotKey(mode), agg); err != nil {
		return "", fmt.Errorf("persisting report snapshot: %w", err)
	}

	outDir := r.Config.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	var path string
	if mode == types.ReportPapers {
		path = filepath.Join(outDir, PapersFileName)
		err = writeCSV(path, [][]string{{"Professor Name", "Affiliation", "Conference", "Title"}}, papersRows(agg))
	} else {
		path = filepath.Join(outDir, CountsFileName)
		err = writeCSV(path, [][]string{{"Professor Name", "Affiliation", "Paper Counts", "Author URL"}}, countsRows(agg))
	}
	if err != nil {
		return "", err
	}

	fmt.Fprintf(w, "Report written to %s\n", path)
	return path, nil
}

func countsRows(agg *Aggregation) [][]string {
	var rows [][]string
	for _, key := range agg.Keys() {
		name, affiliation := SplitKey(key)
		rows = append(rows, []string{
			name,
			affiliation,
			FormatCounts(agg.Counts[key]),
			agg.ProfileURLs[key],
		})
	}
	return rows
}

func papersRows(agg *Aggregation) [][]string {
	var rows [][]string
	for _, key := range agg.Keys() {
		name, affiliation := SplitKey(key)
		for _, ref := range agg.Papers[key] {
			rows = append(rows, []string{name, affiliation, ref.ConferenceID, ref.Title})
		}
	}
	return rows
}

// writeCSV writes header+rows atomically: temp file in the target directory,
// then rename.
func writeCSV(path string, header, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp report: %w", err)
	}
	defer os.Remove(tmp.Name())

	cw := csv.NewWriter(tmp)
	if err := cw.WriteAll(append(header, rows...)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing report rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming report into place: %w", err)
	}
	return nil
}
