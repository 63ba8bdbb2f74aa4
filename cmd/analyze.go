package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/report"
)

var (
	analyzeOutDir string
	analyzeNoSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source.csv|source.xlsx>",
	Short: "Run the full liquidation analysis over a source log",
	Long:  "Transforms the long-format event log into per-order records, mines execution patterns, computes check statistics, and writes the markdown report, wide CSV export, and YAML summary.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		source := args[0]

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		var runID string
		if !analyzeNoSave {
			run, err := st.CreateRun(ctx, source)
			if err != nil {
				return err
			}
			runID = run.ID
		}

		res, err := runAnalysis(ctx, source)
		if err != nil {
			if runID != "" {
				if ferr := st.FailRun(ctx, runID, err.Error()); ferr != nil {
					zap.L().Error("record run failure", zap.Error(ferr))
				}
			}
			return err
		}

		summary := report.BuildSummary(res)
		if runID != "" {
			if err := st.CompleteRun(ctx, runID, &summary); err != nil {
				return err
			}
			if err := st.SaveFindings(ctx, runID, res.Findings); err != nil {
				return err
			}
		}

		if err := os.MkdirAll(analyzeOutDir, 0o755); err != nil {
			return eris.Wrap(err, "create output dir")
		}

		reportPath := filepath.Join(analyzeOutDir, "report.md")
		if err := os.WriteFile(reportPath, []byte(report.FormatReport(res, cfg.Analysis)), 0o644); err != nil {
			return eris.Wrap(err, "write report")
		}

		csvPath := filepath.Join(analyzeOutDir, "orders_wide.csv")
		csvFile, err := os.Create(csvPath)
		if err != nil {
			return eris.Wrap(err, "create csv export")
		}
		if err := report.WriteWideCSV(csvFile, res); err != nil {
			csvFile.Close()
			return err
		}
		if err := csvFile.Close(); err != nil {
			return eris.Wrap(err, "close csv export")
		}

		yamlPath := filepath.Join(analyzeOutDir, "summary.yaml")
		yamlFile, err := os.Create(yamlPath)
		if err != nil {
			return eris.Wrap(err, "create summary")
		}
		if err := report.WriteSummaryYAML(yamlFile, source, summary); err != nil {
			yamlFile.Close()
			return err
		}
		if err := yamlFile.Close(); err != nil {
			return eris.Wrap(err, "close summary")
		}

		fmt.Printf("Analyzed %d orders (%d liquidated, %d sellable) across %d check columns\n",
			summary.Orders, summary.Liquidated, summary.Sellable, summary.CheckColumns)
		fmt.Printf("Total value lost: $%.2f, potential recovery: $%.2f\n",
			summary.TotalValueLost, summary.PotentialRecovery)
		fmt.Printf("Findings: %d\n", summary.FindingCount)
		if runID != "" {
			fmt.Printf("Run: %s\n", runID)
		}
		fmt.Printf("Wrote %s, %s, %s\n", reportPath, csvPath, yamlPath)

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out", "o", "analysis", "output directory")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "skip persisting the run to the store")
	rootCmd.AddCommand(analyzeCmd)
}
