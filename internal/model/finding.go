package model

import "fmt"

// FindingKind classifies a non-fatal data-quality condition observed during
// a batch run. Fatal conditions abort the run and are plain errors instead.
type FindingKind string

const (
	FindingDuplicateHeader         FindingKind = "duplicate_header"
	FindingDuplicateCheckConflict  FindingKind = "duplicate_check_conflict"
	FindingUnknownCheckStatus      FindingKind = "unknown_check_status"
	FindingOrderWithoutChecks      FindingKind = "order_without_checks"
	FindingUnrecognizedDisposition FindingKind = "unrecognized_disposition"
	FindingUndefinedStatistic      FindingKind = "undefined_statistic"
)

// Finding is one entry of the structured data-quality audit trail returned
// alongside successful output. A batch never silently drops data without a
// corresponding finding.
type Finding struct {
	Kind    FindingKind `json:"kind"`
	OrderID string      `json:"order_id,omitempty"`
	Check   string      `json:"check,omitempty"`
	Detail  string      `json:"detail"`
}

func (f Finding) String() string {
	s := string(f.Kind)
	if f.OrderID != "" {
		s += " order=" + f.OrderID
	}
	if f.Check != "" {
		s += " check=" + f.Check
	}
	return fmt.Sprintf("%s: %s", s, f.Detail)
}
