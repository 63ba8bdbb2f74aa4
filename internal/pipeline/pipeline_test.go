package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/liquidation-cli/internal/model"
)

// sampleBatch builds a small but complete event log: three orders, mixed
// dispositions, one automatic check row, one unrecognized status.
func sampleBatch() []model.RawEventRow {
	c1, c2, c3 := 2000.0, 1200.0, 800.0
	return []model.RawEventRow{
		{Index: 0, OrderID: "LPN001", COGS: &c1, DispositionRaw: "Liquidated", Product: "Laptop X", Category: "Electronics/Laptops", RepairReason: "Customer Damaged"},
		{Index: 1, CheckTitle: "Is it Fraud?", CheckStatusRaw: "Failed"},
		{Index: 2, CheckTitle: "Does the item work?", CheckStatusRaw: "Passed"},
		{Index: 3, CheckTitle: "Scratches or Dents?", CheckStatusRaw: "Passed"},
		{Index: 4, OrderID: "LPN002", COGS: &c2, DispositionRaw: "Liquidated", Product: "Tablet Y", Category: "Electronics/Tablets", RepairReason: "Defective"},
		{Index: 5, CheckTitle: "Is it Fraud?", CheckStatusRaw: "Failed"},
		{Index: 6, CheckTitle: "Does the item work?", CheckStatusRaw: "Failed"},
		{Index: 7, CheckTitle: "Is it IOG?", CheckStatusRaw: "Passed", AutoDecided: true},
		{Index: 8, OrderID: "LPN003", COGS: &c3, DispositionRaw: "Sellable", Product: "Phone Z", Category: "Electronics/Phones", RepairReason: "No Defect"},
		{Index: 9, CheckTitle: "Is it Fraud?", CheckStatusRaw: "Failed"},
		{Index: 10, CheckTitle: "Does the item work?", CheckStatusRaw: "Pending"},
	}
}

func TestEngineRun(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testAnalysisConfig())
	res, err := engine.Run(context.Background(), sampleBatch())
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, "LPN001", res.Records[0].OrderID)

	// Automatic IOG row was filtered before registry discovery.
	assert.False(t, res.Registry.Has("Is_it_IOG"))
	assert.Equal(t, 3, res.Registry.Len())
	assert.Equal(t, 1, res.Audit.CheckRowsDropped)
	assert.Equal(t, 7, res.Audit.CheckRowsKept)

	// LPN001: working but liquidated, so its full cost is recoverable.
	assert.Equal(t, 2000.0, res.Records[0].RecoveryPotential)
	assert.Equal(t, 3200.0, res.Impact.TotalValueLost)

	// The unparseable "Pending" status surfaced as a finding.
	var kinds []model.FindingKind
	for _, f := range res.Findings {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, model.FindingUnknownCheckStatus)

	assert.NotEmpty(t, res.Patterns)
	assert.NotEmpty(t, res.CheckStats)
}

func TestEngineRun_Deterministic(t *testing.T) {
	t.Parallel()

	engine := NewEngine(testAnalysisConfig())

	first, err := engine.Run(context.Background(), sampleBatch())
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), sampleBatch())
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Patterns, second.Patterns)
	assert.Equal(t, first.CheckStats, second.CheckStats)
	assert.Equal(t, first.Impact, second.Impact)
}

func TestEngineRun_OrphanRowFails(t *testing.T) {
	t.Parallel()

	rows := []model.RawEventRow{
		{Index: 0, CheckTitle: "Does the item work?", CheckStatusRaw: "Passed"},
	}

	_, err := NewEngine(testAnalysisConfig()).Run(context.Background(), rows)
	require.Error(t, err)

	var orphan *OrphanRowError
	assert.ErrorAs(t, err, &orphan)
}

func TestEngineRun_EmptyBatch(t *testing.T) {
	t.Parallel()

	res, err := NewEngine(testAnalysisConfig()).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, res.Records)
	assert.Zero(t, res.Registry.Len())
	assert.Zero(t, res.Impact.TotalValueLost)
}
