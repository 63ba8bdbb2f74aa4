package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/liquidation-cli/internal/model"
	"github.com/sells-group/liquidation-cli/internal/pipeline"
)

var patternsTop int

var patternsCmd = &cobra.Command{
	Use:   "patterns <source.csv|source.xlsx>",
	Short: "Show execution patterns and decision paths",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runAnalysis(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		top := patternsTop
		if top <= 0 {
			top = cfg.Analysis.TopPatterns
		}

		fmt.Printf("%d distinct key-check sequences over %d orders\n\n", len(res.Patterns), len(res.Records))
		printPatternList("Most common patterns", res.Patterns, top)
		printPatternList("Top liquidation patterns",
			pipeline.TopPatternsByDisposition(res.Patterns, model.DispositionLiquidated, top), top)
		printPatternList("Top sellable patterns",
			pipeline.TopPatternsByDisposition(res.Patterns, model.DispositionSellable, top), top)

		fmt.Println("Decision paths:")
		for _, p := range res.Paths {
			fmt.Printf("  %-60s %4d orders, %5.1f%% liquidated\n", p.Description, p.Total, p.LiquidationRate)
		}

		return nil
	},
}

func printPatternList(title string, groups []model.PatternGroup, top int) {
	fmt.Printf("%s:\n", title)
	for i, g := range groups {
		if i == top {
			break
		}
		key := g.Key
		if key == "" {
			key = "(no key checks)"
		}
		fmt.Printf("  %4d orders (%5.1f%% liquidated)  %s\n", g.Count, g.LiquidationRate*100, key)
	}
	fmt.Println()
}

func init() {
	patternsCmd.Flags().IntVar(&patternsTop, "top", 0, "patterns to show per list (default from config)")
	rootCmd.AddCommand(patternsCmd)
}
