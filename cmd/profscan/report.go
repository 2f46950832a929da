package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profscan/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the professor activity report",
	Long: `Report joins the collected papers with the cached author verdicts and
renders the professor activity report as CSV. The aggregation snapshot is
persisted to the cache before rendering, so the report can be regenerated
without re-running classification.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("mode", "", "report shape: counts or papers (default counts)")
	reportCmd.Flags().String("output-dir", "", "directory for rendered reports (default output)")
	reportCmd.Flags().Bool("export-yaml", false, "also write the aggregation as export.yaml")
	reportCmd.Flags().Bool("export-json", false, "also write the aggregation as export.json")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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

	reporter := &report.Reporter{Store: store, Config: reportConfig()}
	if _, err := reporter.Run(papers, os.Stdout); err != nil {
		return err
	}

	if exportYAML, _ := cmd.Flags().GetBool("export-yaml"); exportYAML {
		if err := reporter.ExportYAML(papers); err != nil {
			return err
		}
	}
	if exportJSON, _ := cmd.Flags().GetBool("export-json"); exportJSON {
		if err := reporter.ExportJSON(papers); err != nil {
			return err
		}
	}
	return nil
}
