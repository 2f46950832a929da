package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profscan/internal/report"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [report.csv]",
	Short: "Remove fully-empty rows from a rendered report",
	Long: `Clean rewrites a report CSV in place with fully-empty rows removed.
Such rows appear after manual edits in spreadsheet tools. Without an argument
the default counts report is cleaned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("output-dir", "", "directory of the rendered report (default output)")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		outDir := reportConfig().OutputDir
		if outDir == "" {
			outDir = "output"
		}
		path = filepath.Join(outDir, report.CountsFileName)
	}

	dropped, err := report.CleanCSV(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Removed %d empty row(s) from %s\n", dropped, path)
	return nil
}
