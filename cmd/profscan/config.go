// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profscan/internal/cachestore"
	"github.com/pdiddy/profscan/pkg/types"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultUserAgent  = "profscan/0.1"
	defaultMaxResults = 50
)

// bindFlags merges the command's flags into viper so precedence is
// flags > environment > config file > flag defaults.
func bindFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return viper.BindPFlags(rootCmd.PersistentFlags())
}

func httpConfig() types.HTTPConfig {
	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := viper.GetString("user-agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}
}

func politenessConfig() types.PolitenessConfig {
	return types.PolitenessConfig{
		MinDelay: viper.GetDuration("politeness-min"),
		MaxDelay: viper.GetDuration("politeness-max"),
	}
}

func cacheConfig() types.CacheConfig {
	return types.CacheConfig{
		Backend: types.StoreBackend(viper.GetString("cache-backend")),
		Dir:     viper.GetString("cache-dir"),
	}
}

func collectConfig() types.CollectConfig {
	maxResults := viper.GetInt("max-results")
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}
	return types.CollectConfig{
		HTTPConfig:       httpConfig(),
		PolitenessConfig: politenessConfig(),
		Keyword:          viper.GetString("keyword"),
		Venues:           viper.GetStringSlice("venues"),
		YearFrom:         viper.GetInt("year-from"),
		YearTo:           viper.GetInt("year-to"),
		MaxResults:       maxResults,
	}
}

func classifyConfig() types.ClassifyConfig {
	var signals []types.SignalName
	for _, s := range viper.GetStringSlice("signals") {
		signals = append(signals, types.SignalName(s))
	}
	return types.ClassifyConfig{
		HTTPConfig:         httpConfig(),
		PolitenessConfig:   politenessConfig(),
		ProfessorThreshold: viper.GetInt("professor-threshold"),
		HIndexThreshold:    viper.GetInt("hindex-threshold"),
		SearchResultLimit:  viper.GetInt("search-result-limit"),
		Signals:            signals,
		Policy:             types.SignalPolicy(viper.GetString("policy")),
	}
}

func reportConfig() types.ReportConfig {
	return types.ReportConfig{
		Mode:      types.ReportMode(viper.GetString("mode")),
		OutputDir: viper.GetString("output-dir"),
	}
}

func maxRetries() int {
	return viper.GetInt("max-retries")
}

func openStore() (cachestore.Store, error) {
	store, err := cachestore.New(cacheConfig())
	if err != nil {
		return nil, fmt.Errorf("opening cache store: %w", err)
	}
	return store, nil
}

// loadPapers reads the all-papers snapshot written by the collect stage.
func loadPapers(store cachestore.Store) ([]types.Paper, error) {
	var papers []types.Paper
	found, err := store.Load("", cachestore.KeyAllPapers, &papers)
	if err != nil {
		return nil, fmt.Errorf("loading papers snapshot: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no collected papers found; run 'profscan collect' first")
	}
	return papers, nil
}
