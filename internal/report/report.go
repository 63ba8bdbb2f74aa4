// Package report renders analysis results as a markdown report, a wide-format
// CSV export, and a YAML run summary.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
	"github.com/sells-group/liquidation-cli/internal/pipeline"
)

// FormatReport renders the full analysis as markdown.
func FormatReport(res *pipeline.Result, cfg config.AnalysisConfig) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	writeSummary(&b, p, res)
	writeCheckStats(&b, res.CheckStats)
	writeAggregates(&b, p, res.Aggregates)
	writePatterns(&b, res, cfg.TopPatterns)
	writePaths(&b, res.Paths)
	writeImpact(&b, p, res.Impact)
	writeFindings(&b, res.Findings)

	return b.String()
}

func writeSummary(b *strings.Builder, p *message.Printer, res *pipeline.Result) {
	var liq, sell, unknown int
	for _, r := range res.Records {
		switch r.Disposition {
		case model.DispositionLiquidated:
			liq++
		case model.DispositionSellable:
			sell++
		default:
			unknown++
		}
	}

	b.WriteString("# Liquidation Analysis\n\n")
	b.WriteString("## Batch Summary\n\n")
	fmt.Fprintf(b, "- Orders: %d (%d liquidated, %d sellable", len(res.Records), liq, sell)
	if unknown > 0 {
		fmt.Fprintf(b, ", %d unrecognized disposition", unknown)
	}
	b.WriteString(")\n")
	fmt.Fprintf(b, "- Check columns discovered: %d\n", res.Registry.Len())
	fmt.Fprintf(b, "- Check rows: %d human-executed kept, %d automatic dropped\n",
		res.Audit.CheckRowsKept, res.Audit.CheckRowsDropped)
	p.Fprintf(b, "- Total value lost to liquidation: $%.2f\n", res.Impact.TotalValueLost)
	p.Fprintf(b, "- Potential recovery: $%.2f\n", res.Impact.TotalPotentialRecovery)
	b.WriteString("\n")
}

func writeCheckStats(b *strings.Builder, stats []model.CheckStats) {
	b.WriteString("## Check Failure Analysis\n\n")
	b.WriteString("Checks ranked by correlation between failure and liquidation.\n\n")
	b.WriteString("| Check | n | Fail% (Liq) | Fail% (Sell) | Diff | Correlation |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, cs := range stats {
		fmt.Fprintf(b, "| %s | %d | %s | %s | %s | %s |\n",
			cs.Slug, cs.N,
			fmtPercent(cs.FailRateLiquidated),
			fmtPercent(cs.FailRateSellable),
			fmtPercent(cs.Difference),
			fmtStat(cs.Correlation, "%.3f"),
		)
	}
	b.WriteString("\n")
}

func writeAggregates(b *strings.Builder, p *message.Printer, agg model.AggregateStats) {
	b.WriteString("## Disposition Comparison\n\n")

	for _, d := range []model.Disposition{model.DispositionLiquidated, model.DispositionSellable} {
		g := agg.COGSByDisposition[d]
		fmt.Fprintf(b, "- %s (n=%d): mean COGS %s, median %s, mean processing days %s\n",
			d, g.N,
			fmtMoney(p, g.Mean),
			fmtMoney(p, g.Median),
			fmtStat(agg.ProcessingDaysByDisposition[d], "%.1f"),
		)
	}
	b.WriteString("\n")

	if t := agg.COGSTTest; t != nil {
		fmt.Fprintf(b, "- COGS t-test: t=%.3f df=%.0f p=%.4f, Cohen's d=%.3f (%s)\n",
			t.T, t.DF, t.P, t.CohensD, t.EffectSize)
	}
	if z := agg.FailureRateZTest; z != nil {
		fmt.Fprintf(b, "- Failure-rate z-test: %.1f%% vs %.1f%%, z=%.3f p=%.4f\n",
			z.RateLiquidated*100, z.RateSellable*100, z.Z, z.P)
	}
	if c := agg.BinChiSquare; c != nil {
		fmt.Fprintf(b, "- Cost bucket vs disposition: chi2=%.3f df=%d p=%.4f, Cramér's V=%.3f (%s)\n",
			c.Chi2, c.DF, c.P, c.CramersV, c.EffectSize)
	}
	b.WriteString("\n")
}

func writePatterns(b *strings.Builder, res *pipeline.Result, top int) {
	b.WriteString("## Execution Patterns\n\n")
	fmt.Fprintf(b, "%d distinct key-check sequences. Top %d by frequency:\n\n", len(res.Patterns), top)
	b.WriteString("| Pattern | Orders | Liquidated | Sellable | Liq. Rate |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for i, g := range res.Patterns {
		if i == top {
			break
		}
		key := g.Key
		if key == "" {
			key = "(no key checks)"
		}
		fmt.Fprintf(b, "| %s | %d | %d | %d | %.1f%% |\n",
			key, g.Count, g.Liquidated, g.Sellable, g.LiquidationRate*100)
	}
	b.WriteString("\n")
}

func writePaths(b *strings.Builder, paths []model.DecisionPath) {
	if len(paths) == 0 {
		return
	}
	b.WriteString("## Decision Paths\n\n")
	b.WriteString("| Path | Orders | Liquidated | Sellable | Liq. Rate |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, p := range paths {
		fmt.Fprintf(b, "| %s | %d | %d | %d | %.1f%% |\n",
			p.Description, p.Total, p.Liquidated, p.Sellable, p.LiquidationRate)
	}
	b.WriteString("\n")
}

func writeImpact(b *strings.Builder, p *message.Printer, imp model.Impact) {
	b.WriteString("## Financial Impact\n\n")
	p.Fprintf(b, "- Liquidated orders: %d, total value lost $%.2f (avg $%.2f)\n\n",
		imp.LiquidatedCount, imp.TotalValueLost, imp.AvgValueLost)

	writeDimension(b, p, "By Category", imp.ByCategory)
	writeDimension(b, p, "By Product (top 10)", topRows(imp.ByProduct, 10))
	writeDimension(b, p, "By Repair Reason", imp.ByReason)
	writeDimension(b, p, "By Cost Bucket", imp.ByBin)

	b.WriteString("### Recovery Scenarios\n\n")
	for _, s := range imp.Scenarios {
		p.Fprintf(b, "- %s: %d orders, $%.2f — %s\n", s.Name, s.Count, s.Value, s.Description)
	}
	p.Fprintf(b, "\nTotal potential recovery: $%.2f\n\n", imp.TotalPotentialRecovery)
}

// topRows caps a high-cardinality dimension for display.
func topRows(rows []model.DimensionRow, n int) []model.DimensionRow {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func writeDimension(b *strings.Builder, p *message.Printer, title string, rows []model.DimensionRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	b.WriteString("| Key | Orders | Total Lost | Avg Lost |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range rows {
		p.Fprintf(b, "| %s | %d | $%.2f | $%.2f |\n", r.Key, r.Count, r.TotalValue, r.AvgValue)
	}
	b.WriteString("\n")
}

func writeFindings(b *strings.Builder, findings []model.Finding) {
	b.WriteString("## Data Quality Findings\n\n")
	if len(findings) == 0 {
		b.WriteString("None.\n")
		return
	}
	fmt.Fprintf(b, "%d findings:\n\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(b, "- %s\n", f)
	}
	b.WriteString("\n")
}

func fmtStat(s model.StatValue, format string) string {
	if !s.Defined {
		return fmt.Sprintf("undefined (n=%d)", s.N)
	}
	return fmt.Sprintf(format, s.Value)
}

func fmtPercent(s model.StatValue) string {
	if !s.Defined {
		return fmt.Sprintf("undefined (n=%d)", s.N)
	}
	return fmt.Sprintf("%.1f%%", s.Value*100)
}

func fmtMoney(p *message.Printer, s model.StatValue) string {
	if !s.Defined {
		return fmt.Sprintf("undefined (n=%d)", s.N)
	}
	return p.Sprintf("$%.2f", s.Value)
}
