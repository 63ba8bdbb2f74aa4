package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want CheckOutcome
		ok   bool
	}{
		{"Passed", OutcomePassed, true},
		{"passed", OutcomePassed, true},
		{"PASS", OutcomePassed, true},
		{" Failed ", OutcomeFailed, true},
		{"fail", OutcomeFailed, true},
		{"Pending", OutcomeAbsent, false},
		{"", OutcomeAbsent, false},
	}
	for _, tt := range tests {
		got, ok := ParseOutcome(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestRowKind(t *testing.T) {
	t.Parallel()

	cogs := 100.0
	header := RawEventRow{OrderID: "LPN001", COGS: &cogs}
	assert.True(t, header.IsHeader())
	assert.False(t, header.IsCheck())

	check := RawEventRow{CheckTitle: "Does the item work?"}
	assert.False(t, check.IsHeader())
	assert.True(t, check.IsCheck())

	blank := RawEventRow{}
	assert.False(t, blank.IsHeader())
	assert.False(t, blank.IsCheck())
}

func TestOutcomeAccessor(t *testing.T) {
	t.Parallel()

	rec := WideOrderRecord{Checks: map[string]CheckOutcome{"Is_it_Fraud": OutcomeFailed}}
	assert.Equal(t, OutcomeFailed, rec.Outcome("Is_it_Fraud"))
	assert.Equal(t, OutcomeAbsent, rec.Outcome("Does_the_item_work"))
}

func TestFindingString(t *testing.T) {
	t.Parallel()

	f := Finding{Kind: FindingDuplicateCheckConflict, OrderID: "LPN001", Check: "Is_it_Fraud", Detail: "conflicting outcomes"}
	s := f.String()
	assert.Contains(t, s, "duplicate_check_conflict")
	assert.Contains(t, s, "LPN001")
	assert.Contains(t, s, "Is_it_Fraud")
	assert.Contains(t, s, "conflicting outcomes")
}
