package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// ScenarioPredicate selects the liquidated orders a recovery scenario
// applies to.
type ScenarioPredicate func(model.WideOrderRecord) bool

// NamedScenario is a caller-supplied recovery lever evaluated over the
// liquidated set alongside the built-in scenarios. Its value is the full
// COGS of the matching orders; it does not feed the combined recovery
// headline.
type NamedScenario struct {
	Name        string
	Description string
	Match       ScenarioPredicate
}

// scenarioSpec is one what-if recovery lever over the liquidated set.
type scenarioSpec struct {
	Name        string
	Description string
	Match       ScenarioPredicate
	// Rate scales the recoverable value; partial recovery levers use < 1.
	Rate float64
	// HalfCount halves the reported order count for levers that assume only
	// a share of matching orders were misrouted.
	HalfCount bool
}

func scenarioSpecs(cfg config.AnalysisConfig) []scenarioSpec {
	return []scenarioSpec{
		{
			Name:        "recover_working_items",
			Description: "Resell liquidated items whose functional check passed",
			Match:       func(r model.WideOrderRecord) bool { return r.WorksPassed == 1 },
			Rate:        1,
		},
		{
			Name:        "high_cogs_exception",
			Description: "Manual review before liquidating high-cost items",
			Match:       func(r model.WideOrderRecord) bool { return r.COGS >= cfg.HighCOGSThreshold },
			Rate:        1,
		},
		{
			Name:        "reduce_cosmetic_false_positives",
			Description: "Recover half the value of items liquidated on cosmetic damage alone",
			Match:       func(r model.WideOrderRecord) bool { return r.CosmeticFailed == 1 },
			Rate:        cfg.CosmeticRecoveryRate,
			HalfCount:   true,
		},
	}
}

// ComputeImpact aggregates the financial cost of liquidation: total and
// average value lost, loss grouped by category, product, repair reason, and
// cost bucket, plus the what-if recovery scenarios. Callers may append
// their own NamedScenario levers, evaluated over the same liquidated set.
// Only liquidated orders contribute; the total potential recovery combines
// the working-item and high-cost levers without the speculative cosmetic
// lever.
func ComputeImpact(records []model.WideOrderRecord, cfg config.AnalysisConfig, extra ...NamedScenario) model.Impact {
	var liq []model.WideOrderRecord
	for _, r := range records {
		if r.Disposition == model.DispositionLiquidated {
			liq = append(liq, r)
		}
	}

	imp := model.Impact{LiquidatedCount: len(liq)}
	for _, r := range liq {
		imp.TotalValueLost += r.ValueLost
	}
	if len(liq) > 0 {
		imp.AvgValueLost = imp.TotalValueLost / float64(len(liq))
	}

	imp.ByCategory = groupLoss(liq, func(r model.WideOrderRecord) string { return r.CategoryGroup })
	imp.ByProduct = groupLoss(liq, func(r model.WideOrderRecord) string { return r.Product })
	imp.ByReason = groupLoss(liq, func(r model.WideOrderRecord) string { return r.RepairReason })
	imp.ByBin = groupLoss(liq, func(r model.WideOrderRecord) string { return r.COGSBin })

	var working, highCost float64
	for _, spec := range scenarioSpecs(cfg) {
		s := model.Scenario{Name: spec.Name, Description: spec.Description}
		for _, r := range liq {
			if !spec.Match(r) {
				continue
			}
			s.Count++
			s.Value += r.COGS * spec.Rate
		}
		if spec.HalfCount {
			s.Count /= 2
		}
		switch spec.Name {
		case "recover_working_items":
			working = s.Value
		case "high_cogs_exception":
			highCost = s.Value
		}
		imp.Scenarios = append(imp.Scenarios, s)
	}

	for _, ns := range extra {
		s := model.Scenario{Name: ns.Name, Description: ns.Description}
		for _, r := range liq {
			if ns.Match == nil || !ns.Match(r) {
				continue
			}
			s.Count++
			s.Value += r.COGS
		}
		imp.Scenarios = append(imp.Scenarios, s)
	}

	// The high-cost lever overlaps the working-item lever, so only half its
	// value counts toward the combined headline number.
	imp.TotalPotentialRecovery = working + 0.5*highCost

	zap.L().Info("impact: aggregated liquidation cost",
		zap.Int("liquidated", imp.LiquidatedCount),
		zap.Float64("total_value_lost", imp.TotalValueLost),
		zap.Float64("potential_recovery", imp.TotalPotentialRecovery),
	)

	return imp
}

// groupLoss sums value lost per key, sorted by total descending then key for
// determinism. Empty keys group under "(unknown)".
func groupLoss(liq []model.WideOrderRecord, keyOf func(model.WideOrderRecord) string) []model.DimensionRow {
	byKey := make(map[string]*model.DimensionRow)
	for _, r := range liq {
		key := keyOf(r)
		if key == "" {
			key = "(unknown)"
		}
		row, ok := byKey[key]
		if !ok {
			row = &model.DimensionRow{Key: key}
			byKey[key] = row
		}
		row.Count++
		row.TotalValue += r.ValueLost
	}

	out := make([]model.DimensionRow, 0, len(byKey))
	for _, row := range byKey {
		row.AvgValue = row.TotalValue / float64(row.Count)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].Key < out[j].Key
	})
	return out
}
