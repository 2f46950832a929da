package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profscan/internal/classify"
	"github.com/pdiddy/profscan/internal/dblp"
	"github.com/pdiddy/profscan/internal/scholar"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify collected authors as likely faculty",
	Long: `Classify evaluates every distinct author across the collected papers
through the configured signals (publication count, web-search keywords,
h-index) and caches the verdicts. Already-classified authors are skipped, so
an interrupted run resumes where it stopped.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().Int("professor-threshold", 0, "publication-count cutoff (default 20)")
	classifyCmd.Flags().Int("hindex-threshold", 0, "h-index cutoff (default 20)")
	classifyCmd.Flags().Int("search-result-limit", 0, "web search titles scanned (default 20)")
	classifyCmd.Flags().StringSlice("signals", nil, "signals to evaluate in order: pubcount,websearch,hindex (default pubcount)")
	classifyCmd.Flags().String("policy", "", "verdict composition policy: first or majority (default first)")
	classifyCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	classifyCmd.Flags().Duration("politeness-min", 2*time.Second, "minimum delay between authors")
	classifyCmd.Flags().Duration("politeness-max", 5*time.Second, "maximum delay between authors")
	classifyCmd.Flags().Int("max-retries", 0, "429 backoff retry ceiling (default 5)")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := loadPapers(store)
	if err != nil {
		return err
	}

	cfg := classifyConfig()
	profiles := dblp.NewClient(cfg.HTTPConfig, maxRetries())
	scraper := scholar.NewClient(cfg.HTTPConfig, maxRetries())

	signals, err := classify.BuildSignals(cfg, profiles, scraper)
	if err != nil {
		return err
	}

	classifier := &classify.Classifier{
		Store:        store,
		Signals:      signals,
		Affiliations: profiles,
		Config:       cfg,
	}
	_, err = classifier.Run(cmd.Context(), papers, os.Stdout)
	return err
}
