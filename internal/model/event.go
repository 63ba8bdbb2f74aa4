// Package model defines the data types shared across the liquidation
// analysis pipeline: raw event rows, reconstructed orders, pattern groups,
// statistics, and data-quality findings.
package model

import (
	"strings"
	"time"
)

// CheckOutcome is the recorded result of a quality check for one order.
type CheckOutcome string

const (
	OutcomePassed CheckOutcome = "Passed"
	OutcomeFailed CheckOutcome = "Failed"
	OutcomeAbsent CheckOutcome = "Absent" // check never human-executed for this order
)

// ParseOutcome normalizes free-text check status to a CheckOutcome.
// Returns false when the text matches neither Passed nor Failed.
func ParseOutcome(raw string) (CheckOutcome, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "passed", "pass":
		return OutcomePassed, true
	case "failed", "fail":
		return OutcomeFailed, true
	}
	return OutcomeAbsent, false
}

// Disposition is the terminal routing outcome of a repair order.
type Disposition string

const (
	DispositionLiquidated Disposition = "Liquidated"
	DispositionSellable   Disposition = "Sellable"
	DispositionUnknown    Disposition = "" // unrecognized free text; excluded from disposition splits
)

// RawEventRow is one line of the source repair-order log. Order-level
// attributes are populated only on header rows; check-level attributes only
// on check rows. OrderID is stamped once per order on the header row and
// inherited by subsequent check rows during forward-fill.
type RawEventRow struct {
	Index          int        `json:"index"` // zero-based position in the source log
	OrderID        string     `json:"order_id,omitempty"`
	COGS           *float64   `json:"cogs,omitempty"` // non-nil marks a header row
	DispositionRaw string     `json:"disposition_raw,omitempty"`
	Product        string     `json:"product,omitempty"`
	Category       string     `json:"category,omitempty"`
	RepairReason   string     `json:"repair_reason,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	CheckTitle     string     `json:"check_title,omitempty"`
	CheckStatusRaw string     `json:"check_status_raw,omitempty"`
	AutoDecided    bool       `json:"auto_decided,omitempty"` // outcome produced by decision logic, not a person
}

// IsHeader reports whether the row is an order header. Header rows carry a
// non-null cost of goods; check rows never do.
func (r RawEventRow) IsHeader() bool {
	return r.COGS != nil
}

// IsCheck reports whether the row is a check-event row.
func (r RawEventRow) IsCheck() bool {
	return r.COGS == nil && r.CheckTitle != ""
}
