// Package pipeline implements the repair-order transformation and
// pattern-mining engine: forward-fill normalization, header/check
// classification, wide-format pivoting, feature derivation, execution
// pattern extraction, per-check statistics, and financial impact rollups.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/sells-group/liquidation-cli/internal/model"
)

// OrphanRowError is fatal: a check row appeared before any order header,
// so it has no order id to inherit. The log ordering is malformed.
type OrphanRowError struct {
	RowIndex int
}

func (e *OrphanRowError) Error() string {
	return fmt.Sprintf("pipeline: row %d precedes any order header and has no order id to inherit", e.RowIndex)
}

// MissingHeaderError is fatal: a check row references an order id that was
// never declared by a header row.
type MissingHeaderError struct {
	OrderID  string
	RowIndex int
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("pipeline: check row %d references order %s with no header row", e.RowIndex, e.OrderID)
}

// Findings accumulates non-fatal data-quality conditions during a run.
// Safe for concurrent use by the parallel analysis stages.
type Findings struct {
	mu   sync.Mutex
	list []model.Finding
}

// Add appends a finding.
func (f *Findings) Add(kind model.FindingKind, orderID, check, format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = append(f.list, model.Finding{
		Kind:    kind,
		OrderID: orderID,
		Check:   check,
		Detail:  fmt.Sprintf(format, args...),
	})
}

// All returns the accumulated findings in insertion order.
func (f *Findings) All() []model.Finding {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Finding, len(f.list))
	copy(out, f.list)
	return out
}

// Count returns the number of accumulated findings.
func (f *Findings) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.list)
}
