package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/liquidation-cli/internal/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats <source.csv|source.xlsx>",
	Short: "Show per-check failure statistics and disposition tests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runAnalysis(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println("Checks ranked by correlation with liquidation:")
		fmt.Printf("  %-50s %5s %12s %12s %12s\n", "check", "n", "fail%(liq)", "fail%(sell)", "corr")
		for _, cs := range res.CheckStats {
			fmt.Printf("  %-50s %5d %12s %12s %12s\n",
				cs.Slug, cs.N,
				fmtStatPct(cs.FailRateLiquidated),
				fmtStatPct(cs.FailRateSellable),
				fmtStatVal(cs.Correlation),
			)
		}
		fmt.Println()

		agg := res.Aggregates
		for _, d := range []model.Disposition{model.DispositionLiquidated, model.DispositionSellable} {
			g := agg.COGSByDisposition[d]
			fmt.Printf("%s: n=%d mean COGS %s median %s\n", d, g.N, fmtStatMoney(g.Mean), fmtStatMoney(g.Median))
		}
		if t := agg.COGSTTest; t != nil {
			fmt.Printf("COGS t-test: t=%.3f p=%.4f d=%.3f (%s)\n", t.T, t.P, t.CohensD, t.EffectSize)
		}
		if z := agg.FailureRateZTest; z != nil {
			fmt.Printf("Failure-rate z-test: %.1f%% vs %.1f%% z=%.3f p=%.4f\n",
				z.RateLiquidated*100, z.RateSellable*100, z.Z, z.P)
		}
		if c := agg.BinChiSquare; c != nil {
			fmt.Printf("Cost bucket chi-square: chi2=%.3f p=%.4f V=%.3f (%s)\n", c.Chi2, c.P, c.CramersV, c.EffectSize)
		}

		return nil
	},
}

func fmtStatPct(s model.StatValue) string {
	if !s.Defined {
		return fmt.Sprintf("n/a(n=%d)", s.N)
	}
	return fmt.Sprintf("%.1f%%", s.Value*100)
}

func fmtStatVal(s model.StatValue) string {
	if !s.Defined {
		return fmt.Sprintf("n/a(n=%d)", s.N)
	}
	return fmt.Sprintf("%.3f", s.Value)
}

func fmtStatMoney(s model.StatValue) string {
	if !s.Defined {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", s.Value)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
