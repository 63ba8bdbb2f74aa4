package model

import "strings"

// PatternStep is one (check, outcome) element of an execution pattern,
// labeled with the configured short name of the key check.
type PatternStep struct {
	Label   string       `json:"label"`
	Outcome CheckOutcome `json:"outcome"`
}

// PatternGroup collects the orders that experienced an identical ordered
// sequence of key-check outcomes. Groups partition the batch: every order
// belongs to exactly one group (orders touching no key check share the
// empty-sequence group).
type PatternGroup struct {
	Key             string        `json:"key"` // e.g. "Works:P -> Repairable:F"
	Sequence        []PatternStep `json:"sequence"`
	Count           int           `json:"count"`
	Liquidated      int           `json:"liquidated"`
	Sellable        int           `json:"sellable"`
	Unknown         int           `json:"unknown"` // unrecognized dispositions
	LiquidationRate float64       `json:"liquidation_rate"`
	Orders          []string      `json:"orders"`
}

// PatternKey renders the canonical grouping key for a step sequence. The
// fixed delimiter form keeps the key hashable and stable across runs.
func PatternKey(steps []PatternStep) string {
	if len(steps) == 0 {
		return ""
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		letter := "F"
		if s.Outcome == OutcomePassed {
			letter = "P"
		}
		parts[i] = s.Label + ":" + letter
	}
	return strings.Join(parts, " -> ")
}

// DecisionPath summarizes one named routing path from the repair decision
// tree (e.g. "Does it Work? -> No -> Liquidation") over the batch.
type DecisionPath struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Total           int     `json:"total"`
	Liquidated      int     `json:"liquidated"`
	Sellable        int     `json:"sellable"`
	LiquidationRate float64 `json:"liquidation_rate"` // percent over known dispositions
}
