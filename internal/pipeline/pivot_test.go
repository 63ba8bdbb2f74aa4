package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/liquidation-cli/internal/model"
)

func orderCheck(index int, orderID, title, status string) model.RawEventRow {
	return model.RawEventRow{Index: index, OrderID: orderID, CheckTitle: title, CheckStatusRaw: status}
}

func TestPivot(t *testing.T) {
	t.Parallel()

	cogs1, cogs2 := 1200.0, 800.0
	p := Partition{
		Headers: []model.RawEventRow{
			{Index: 0, OrderID: "LPN002", COGS: &cogs2, DispositionRaw: " Sellable "},
			{Index: 3, OrderID: "LPN001", COGS: &cogs1, DispositionRaw: "Liquidated"},
		},
		Checks: []model.RawEventRow{
			orderCheck(1, "LPN002", "Does the item work?", "Passed"),
			orderCheck(4, "LPN001", "Does the item work?", "Failed"),
			orderCheck(5, "LPN001", "Is it Fraud?", "Failed"),
		},
	}

	f := &Findings{}
	records, err := Pivot(p, f)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Sorted by order id regardless of source order.
	assert.Equal(t, "LPN001", records[0].OrderID)
	assert.Equal(t, "LPN002", records[1].OrderID)

	assert.Equal(t, 1200.0, records[0].COGS)
	assert.Equal(t, "Sellable", records[1].DispositionRaw, "disposition text is trimmed")

	assert.Equal(t, model.OutcomeFailed, records[0].Outcome("Does_the_item_work"))
	assert.Equal(t, model.OutcomeFailed, records[0].Outcome("Is_it_Fraud"))
	assert.Equal(t, model.OutcomePassed, records[1].Outcome("Does_the_item_work"))
	assert.Equal(t, model.OutcomeAbsent, records[1].Outcome("Is_it_Fraud"))

	assert.Zero(t, f.Count())
}

func TestPivot_DuplicateHeaderKeepsFirst(t *testing.T) {
	t.Parallel()

	cogs1, cogs2 := 1200.0, 999.0
	p := Partition{
		Headers: []model.RawEventRow{
			{Index: 0, OrderID: "LPN001", COGS: &cogs1},
			{Index: 5, OrderID: "LPN001", COGS: &cogs2},
		},
	}

	f := &Findings{}
	records, err := Pivot(p, f)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1200.0, records[0].COGS)

	findings := f.All()
	// One duplicate-header finding plus one order-without-checks finding.
	require.Len(t, findings, 2)
	assert.Equal(t, model.FindingDuplicateHeader, findings[0].Kind)
	assert.Equal(t, "LPN001", findings[0].OrderID)
}

func TestPivot_ConflictingDuplicateCheckLastWins(t *testing.T) {
	t.Parallel()

	cogs := 1000.0
	p := Partition{
		Headers: []model.RawEventRow{{Index: 0, OrderID: "LPN001", COGS: &cogs}},
		Checks: []model.RawEventRow{
			orderCheck(1, "LPN001", "Does the item work?", "Passed"),
			orderCheck(2, "LPN001", "Does the item work?", "Failed"),
		},
	}

	f := &Findings{}
	records, err := Pivot(p, f)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFailed, records[0].Outcome("Does_the_item_work"))

	findings := f.All()
	require.Len(t, findings, 1)
	assert.Equal(t, model.FindingDuplicateCheckConflict, findings[0].Kind)
	assert.Equal(t, "Does_the_item_work", findings[0].Check)
}

func TestPivot_AgreeingDuplicateIsSilent(t *testing.T) {
	t.Parallel()

	cogs := 1000.0
	p := Partition{
		Headers: []model.RawEventRow{{Index: 0, OrderID: "LPN001", COGS: &cogs}},
		Checks: []model.RawEventRow{
			orderCheck(1, "LPN001", "Does the item work?", "Passed"),
			orderCheck(2, "LPN001", "Does the item work?", "Passed"),
		},
	}

	f := &Findings{}
	_, err := Pivot(p, f)
	require.NoError(t, err)
	assert.Zero(t, f.Count())
}

func TestPivot_MissingHeaderIsFatal(t *testing.T) {
	t.Parallel()

	cogs := 1000.0
	p := Partition{
		Headers: []model.RawEventRow{{Index: 0, OrderID: "LPN001", COGS: &cogs}},
		Checks: []model.RawEventRow{
			orderCheck(1, "LPN404", "Does the item work?", "Passed"),
		},
	}

	_, err := Pivot(p, &Findings{})
	require.Error(t, err)

	var missing *MissingHeaderError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "LPN404", missing.OrderID)
}

func TestPivot_UnknownStatusSkipped(t *testing.T) {
	t.Parallel()

	cogs := 1000.0
	p := Partition{
		Headers: []model.RawEventRow{{Index: 0, OrderID: "LPN001", COGS: &cogs}},
		Checks: []model.RawEventRow{
			orderCheck(1, "LPN001", "Does the item work?", "Pending"),
		},
	}

	f := &Findings{}
	records, err := Pivot(p, f)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeAbsent, records[0].Outcome("Does_the_item_work"))

	kinds := findingKinds(f)
	assert.Contains(t, kinds, model.FindingUnknownCheckStatus)
	assert.Contains(t, kinds, model.FindingOrderWithoutChecks)
}

func findingKinds(f *Findings) []model.FindingKind {
	var kinds []model.FindingKind
	for _, fd := range f.All() {
		kinds = append(kinds, fd.Kind)
	}
	return kinds
}
