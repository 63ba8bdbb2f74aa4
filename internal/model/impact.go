package model

// DimensionRow is one aggregation bucket in a value-lost breakdown.
type DimensionRow struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
	AvgValue   float64 `json:"avg_value"`
}

// Scenario is a named recovery scenario: the value recoverable if the
// orders matching its predicate had not been liquidated.
type Scenario struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Value       float64 `json:"value"`
}

// Impact rolls up financial value lost to liquidation by dimension, plus
// the recovery scenarios.
type Impact struct {
	LiquidatedCount        int            `json:"liquidated_count"`
	TotalValueLost         float64        `json:"total_value_lost"`
	AvgValueLost           float64        `json:"avg_value_lost"`
	ByCategory             []DimensionRow `json:"by_category"`
	ByProduct              []DimensionRow `json:"by_product"`
	ByReason               []DimensionRow `json:"by_reason"`
	ByBin                  []DimensionRow `json:"by_bin"`
	Scenarios              []Scenario     `json:"scenarios"`
	TotalPotentialRecovery float64        `json:"total_potential_recovery"`
}
