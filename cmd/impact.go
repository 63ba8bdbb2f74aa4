package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/liquidation-cli/internal/model"
)

var impactCmd = &cobra.Command{
	Use:   "impact <source.csv|source.xlsx>",
	Short: "Show the financial cost of liquidation and recovery scenarios",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runAnalysis(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		imp := res.Impact
		fmt.Printf("Liquidated: %d orders, $%.2f lost (avg $%.2f)\n\n",
			imp.LiquidatedCount, imp.TotalValueLost, imp.AvgValueLost)

		printDimension("By category", imp.ByCategory)
		byProduct := imp.ByProduct
		if len(byProduct) > 10 {
			byProduct = byProduct[:10]
		}
		printDimension("By product (top 10)", byProduct)
		printDimension("By repair reason", imp.ByReason)
		printDimension("By cost bucket", imp.ByBin)

		fmt.Println("Recovery scenarios:")
		for _, s := range imp.Scenarios {
			fmt.Printf("  %-35s %4d orders  $%12.2f  %s\n", s.Name, s.Count, s.Value, s.Description)
		}
		fmt.Printf("\nTotal potential recovery: $%.2f\n", imp.TotalPotentialRecovery)

		return nil
	},
}

func printDimension(title string, rows []model.DimensionRow) {
	fmt.Printf("%s:\n", title)
	for _, r := range rows {
		fmt.Printf("  %-40s %4d orders  $%12.2f total  $%10.2f avg\n", r.Key, r.Count, r.TotalValue, r.AvgValue)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(impactCmd)
}
