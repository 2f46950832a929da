// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/profscan/pkg/types"
)

// ExportYAML regenerates the aggregation from papers and the author cache
// and writes it to export.yaml in the output directory.
func (r *Reporter) ExportYAML(papers []types.Paper) error {
	agg, outDir, err := r.exportAggregation(papers)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(agg)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "export.yaml"), data, 0o644)
}

// ExportJSON regenerates the aggregation and writes it to export.json in the
// output directory.
func (r *Reporter) ExportJSON(papers []types.Paper) error {
	agg, outDir, err := r.exportAggregation(papers)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "export.json"), data, 0o644)
}

func (r *Reporter) exportAggregation(papers []types.Paper) (*Aggregation, string, error) {
	mode := r.Config.Mode
	if mode == "" {
		mode = types.ReportCounts
	}
	agg, err := Aggregate(r.Store, papers, mode)
	if err != nil {
		return nil, "", err
	}

	outDir := r.Config.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output directory: %w", err)
	}
	return agg, outDir, nil
}
