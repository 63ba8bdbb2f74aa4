package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <source.csv|source.xlsx>",
	Short: "Export the wide one-row-per-order dataset as CSV",
	Long:  "Transforms a source log into the pivoted per-order dataset, one column per discovered check, and writes it as CSV without persisting a run or rendering reports.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runAnalysis(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if exportOut == "" || exportOut == "-" {
			return report.WriteWideCSV(cmd.OutOrStdout(), res)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return eris.Wrap(err, "create export file")
		}
		if err := report.WriteWideCSV(f, res); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return eris.Wrap(err, "close export file")
		}

		zap.L().Info("exported wide dataset",
			zap.String("path", exportOut),
			zap.Int("orders", len(res.Records)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
