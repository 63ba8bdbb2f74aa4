package model

import "time"

// WideOrderRecord is the order-centric unit of analysis: one row per LPN
// with one entry per discovered check column plus derived features. Records
// are immutable after the pivot and derive stages complete.
type WideOrderRecord struct {
	OrderID        string      `json:"order_id"`
	COGS           float64     `json:"cogs"`
	DispositionRaw string      `json:"disposition_raw"`
	Disposition    Disposition `json:"disposition"`
	Product        string      `json:"product"`
	Category       string      `json:"category"`
	CategoryGroup  string      `json:"category_group"` // last segment of the category path
	RepairReason   string      `json:"repair_reason"`
	StartedAt      *time.Time  `json:"started_at,omitempty"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
	ScheduledAt    *time.Time  `json:"scheduled_at,omitempty"`
	ShippedAt      *time.Time  `json:"shipped_at,omitempty"`

	// Checks holds the recorded outcome per check slug. Only Passed and
	// Failed are stored; a missing slug means Absent.
	Checks map[string]CheckOutcome `json:"checks"`

	// Derived features.
	IsLiquidated      int     `json:"is_liquidated"`
	COGSBin           string  `json:"cogs_bin"`
	ProcessingDays    *int    `json:"processing_days,omitempty"` // completed - started
	DaysToShip        *int    `json:"days_to_ship,omitempty"`    // shipped - scheduled
	TotalChecks       int     `json:"total_checks"`
	PassedChecks      int     `json:"passed_checks_count"`
	FailedChecks      int     `json:"failed_checks_count"`
	FailureRate       float64 `json:"failure_rate"`
	CheckEfficiency   float64 `json:"check_efficiency"`
	HighValue         int     `json:"high_value_flag"`
	ValueLost         float64 `json:"value_lost"`
	RecoveryPotential float64 `json:"recovery_potential"`

	// Keyword check flags, discovered from the batch's check slugs.
	WorksPassed         int `json:"works_check_passed"`
	FraudFailed         int `json:"fraud_check_failed"`
	CosmeticFailed      int `json:"cosmetic_check_failed"`
	RepairableFailed    int `json:"repairable_check_failed"`
	FactorySealedPassed int `json:"factory_sealed_check_passed"`
}

// Outcome returns the recorded outcome for a check slug, or OutcomeAbsent
// when the check was not human-executed for this order.
func (w *WideOrderRecord) Outcome(slug string) CheckOutcome {
	if o, ok := w.Checks[slug]; ok {
		return o
	}
	return OutcomeAbsent
}
