package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profscan/internal/classify"
	"github.com/pdiddy/profscan/internal/collect"
	"github.com/pdiddy/profscan/internal/dblp"
	"github.com/pdiddy/profscan/internal/report"
	"github.com/pdiddy/profscan/internal/scholar"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect, classify, report",
	Long: `Run chains the three stages end to end. Every stage works from the
shared cache, so a rerun after an interruption or rate-limit give-up picks up
where the previous run stopped.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("keyword", "", "topical search term matched against paper titles")
	runCmd.Flags().StringSlice("venues", nil, "conference names to query (e.g. NeurIPS,DAC)")
	runCmd.Flags().Int("year-from", 0, "first year of the grid (inclusive)")
	runCmd.Flags().Int("year-to", 0, "last year of the grid (inclusive)")
	runCmd.Flags().Int("max-results", 0, "per-query result cap (default 50)")
	runCmd.Flags().Int("professor-threshold", 0, "publication-count cutoff (default 20)")
	runCmd.Flags().Int("hindex-threshold", 0, "h-index cutoff (default 20)")
	runCmd.Flags().Int("search-result-limit", 0, "web search titles scanned (default 20)")
	runCmd.Flags().StringSlice("signals", nil, "signals to evaluate in order (default pubcount)")
	runCmd.Flags().String("policy", "", "verdict composition policy: first or majority")
	runCmd.Flags().String("mode", "", "report shape: counts or papers (default counts)")
	runCmd.Flags().String("output-dir", "", "directory for rendered reports (default output)")
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	runCmd.Flags().Duration("politeness-min", 2*time.Second, "minimum delay between fetches")
	runCmd.Flags().Duration("politeness-max", 5*time.Second, "maximum delay between fetches")
	runCmd.Flags().Int("max-retries", 0, "429 backoff retry ceiling (default 5)")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	collectCfg := collectConfig()
	if collectCfg.Keyword == "" {
		return fmt.Errorf("a search keyword is required (--keyword or config)")
	}
	if len(collectCfg.Venues) == 0 {
		return fmt.Errorf("at least one venue is required (--venues or config)")
	}
	if collectCfg.YearFrom == 0 || collectCfg.YearTo == 0 || collectCfg.YearFrom > collectCfg.YearTo {
		return fmt.Errorf("a valid year range is required (--year-from / --year-to)")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	classifyCfg := classifyConfig()
	profiles := dblp.NewClient(collectCfg.HTTPConfig, maxRetries())
	scraper := scholar.NewClient(classifyCfg.HTTPConfig, maxRetries())

	fmt.Fprintln(os.Stdout, "=== collect ===")
	result, err := collect.Run(cmd.Context(), profiles, store, collectCfg, os.Stdout)
	if err != nil {
		return err
	}

	signals, err := classify.BuildSignals(classifyCfg, profiles, scraper)
	if err != nil {
		return err
	}
	classifier := &classify.Classifier{
		Store:        store,
		Signals:      signals,
		Affiliations: profiles,
		Config:       classifyCfg,
	}

	fmt.Fprintln(os.Stdout, "\n=== classify ===")
	if _, err := classifier.Run(cmd.Context(), result.Papers, os.Stdout); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "\n=== report ===")
	reporter := &report.Reporter{Store: store, Config: reportConfig()}
	if _, err := reporter.Run(result.Papers, os.Stdout); err != nil {
		return err
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d conference(s) failed; rerun to retry them", result.Failed)
	}
	return nil
}
