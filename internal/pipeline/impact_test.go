package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/liquidation-cli/internal/model"
)

func impactRecord(id string, cogs float64, d model.Disposition) model.WideOrderRecord {
	rec := model.WideOrderRecord{OrderID: id, COGS: cogs, Disposition: d, Checks: map[string]model.CheckOutcome{}}
	if d == model.DispositionLiquidated {
		rec.IsLiquidated = 1
		rec.ValueLost = cogs
	}
	return rec
}

func TestComputeImpact_Totals(t *testing.T) {
	t.Parallel()

	records := []model.WideOrderRecord{
		impactRecord("LPN001", 1000, model.DispositionLiquidated),
		impactRecord("LPN002", 3000, model.DispositionLiquidated),
		impactRecord("LPN003", 500, model.DispositionSellable),
	}

	imp := ComputeImpact(records, testAnalysisConfig())

	assert.Equal(t, 2, imp.LiquidatedCount)
	assert.Equal(t, 4000.0, imp.TotalValueLost)
	assert.Equal(t, 2000.0, imp.AvgValueLost)
}

func TestComputeImpact_Dimensions(t *testing.T) {
	t.Parallel()

	a := impactRecord("LPN001", 1000, model.DispositionLiquidated)
	a.CategoryGroup = "Laptops"
	b := impactRecord("LPN002", 3000, model.DispositionLiquidated)
	b.CategoryGroup = "Phones"
	c := impactRecord("LPN003", 500, model.DispositionLiquidated)
	c.CategoryGroup = "Laptops"

	imp := ComputeImpact([]model.WideOrderRecord{a, b, c}, testAnalysisConfig())

	require.Len(t, imp.ByCategory, 2)
	// Sorted by total lost descending.
	assert.Equal(t, "Phones", imp.ByCategory[0].Key)
	assert.Equal(t, 3000.0, imp.ByCategory[0].TotalValue)
	assert.Equal(t, "Laptops", imp.ByCategory[1].Key)
	assert.Equal(t, 1500.0, imp.ByCategory[1].TotalValue)
	assert.Equal(t, 2, imp.ByCategory[1].Count)
	assert.Equal(t, 750.0, imp.ByCategory[1].AvgValue)
}

func TestComputeImpact_EmptyKeyGroupsUnderUnknown(t *testing.T) {
	t.Parallel()

	rec := impactRecord("LPN001", 1000, model.DispositionLiquidated)

	imp := ComputeImpact([]model.WideOrderRecord{rec}, testAnalysisConfig())

	require.Len(t, imp.ByReason, 1)
	assert.Equal(t, "(unknown)", imp.ByReason[0].Key)
}

func TestComputeImpact_Scenarios(t *testing.T) {
	t.Parallel()

	working := impactRecord("LPN001", 2000, model.DispositionLiquidated)
	working.WorksPassed = 1
	broken := impactRecord("LPN002", 2500, model.DispositionLiquidated)
	cosmetic := impactRecord("LPN003", 1000, model.DispositionLiquidated)
	cosmetic.CosmeticFailed = 1

	imp := ComputeImpact([]model.WideOrderRecord{working, broken, cosmetic}, testAnalysisConfig())

	byName := make(map[string]model.Scenario)
	for _, s := range imp.Scenarios {
		byName[s.Name] = s
	}

	w := byName["recover_working_items"]
	assert.Equal(t, 1, w.Count)
	assert.Equal(t, 2000.0, w.Value)

	// Both the working $2000 item and the broken $2500 item clear the
	// high-cost threshold.
	h := byName["high_cogs_exception"]
	assert.Equal(t, 2, h.Count)
	assert.Equal(t, 4500.0, h.Value)

	cos := byName["reduce_cosmetic_false_positives"]
	assert.Equal(t, 0, cos.Count, "count halves")
	assert.Equal(t, 500.0, cos.Value, "half the cosmetic value")

	assert.Equal(t, 2000.0+0.5*4500.0, imp.TotalPotentialRecovery)
}

func TestComputeImpact_CallerScenario(t *testing.T) {
	t.Parallel()

	a := impactRecord("LPN001", 900, model.DispositionLiquidated)
	a.RepairReason = "Customer Damaged"
	b := impactRecord("LPN002", 2500, model.DispositionLiquidated)
	c := impactRecord("LPN003", 700, model.DispositionSellable)
	c.RepairReason = "Customer Damaged"

	imp := ComputeImpact([]model.WideOrderRecord{a, b, c}, testAnalysisConfig(), NamedScenario{
		Name:        "customer_damage_review",
		Description: "Re-inspect items liquidated as customer damaged",
		Match:       func(r model.WideOrderRecord) bool { return r.RepairReason == "Customer Damaged" },
	})

	byName := make(map[string]model.Scenario)
	for _, s := range imp.Scenarios {
		byName[s.Name] = s
	}
	require.Contains(t, byName, "customer_damage_review")
	s := byName["customer_damage_review"]
	// Only the liquidated customer-damage order counts; the sellable one is
	// outside the recovery universe.
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 900.0, s.Value)

	// Caller scenarios report value only; the headline stays the built-in
	// levers (here just the high-cost item at half weight).
	assert.Equal(t, 0.5*2500.0, imp.TotalPotentialRecovery)
}

func TestComputeImpact_SellableOnlyBatch(t *testing.T) {
	t.Parallel()

	records := []model.WideOrderRecord{
		impactRecord("LPN001", 1000, model.DispositionSellable),
	}

	imp := ComputeImpact(records, testAnalysisConfig())

	assert.Zero(t, imp.LiquidatedCount)
	assert.Zero(t, imp.TotalValueLost)
	assert.Zero(t, imp.AvgValueLost)
	assert.Empty(t, imp.ByCategory)
	assert.Zero(t, imp.TotalPotentialRecovery)
}
