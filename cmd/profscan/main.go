// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the profscan CLI. Each pipeline stage
// is a subcommand: collect, classify, report; run chains all three.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the profscan CLI.
var rootCmd = &cobra.Command{
	Use:   "profscan",
	Short: "Scan conference papers and identify faculty authors",
	Long: `profscan collects conference papers for a venue/year grid from DBLP,
classifies authors as likely faculty via configurable signals, and renders a
professor activity report.

Each stage is a subcommand: collect, classify, and report. All stages share a
durable cache, so interrupted runs resume where they left off. The run
subcommand chains all three.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./profscan.yaml or ~/.config/profscan/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache root directory (default cache)")
	rootCmd.PersistentFlags().String("cache-backend", "", "cache backend: files or sqlite (default files)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("profscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "profscan"))
		}
	}

	viper.SetEnvPrefix("PROFSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
