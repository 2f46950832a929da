package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profscan/internal/collect"
	"github.com/pdiddy/profscan/internal/dblp"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch conference papers for the venue/year grid",
	Long: `Collect queries DBLP for papers matching the configured keyword across
every venue and year in the grid. Fetched conferences are cached, so a repeated
run only queries cells that previously failed.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().String("keyword", "", "topical search term matched against paper titles")
	collectCmd.Flags().StringSlice("venues", nil, "conference names to query (e.g. NeurIPS,DAC)")
	collectCmd.Flags().Int("year-from", 0, "first year of the grid (inclusive)")
	collectCmd.Flags().Int("year-to", 0, "last year of the grid (inclusive)")
	collectCmd.Flags().Int("max-results", 0, "per-query result cap (default 50)")
	collectCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	collectCmd.Flags().Duration("politeness-min", 2*time.Second, "minimum delay between fetches")
	collectCmd.Flags().Duration("politeness-max", 5*time.Second, "maximum delay between fetches")
	collectCmd.Flags().Int("max-retries", 0, "429 backoff retry ceiling (default 5)")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	cfg := collectConfig()
	if cfg.Keyword == "" {
		return fmt.Errorf("a search keyword is required (--keyword or config)")
	}
	if len(cfg.Venues) == 0 {
		return fmt.Errorf("at least one venue is required (--venues or config)")
	}
	if cfg.YearFrom == 0 || cfg.YearTo == 0 || cfg.YearFrom > cfg.YearTo {
		return fmt.Errorf("a valid year range is required (--year-from / --year-to)")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	client := dblp.NewClient(cfg.HTTPConfig, maxRetries())
	result, err := collect.Run(cmd.Context(), client, store, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d conference(s) failed; rerun to retry them", result.Failed)
	}
	return nil
}
