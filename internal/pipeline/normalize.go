package pipeline

import (
	"github.com/sells-group/liquidation-cli/internal/model"
)

// ForwardFill returns a copy of rows with OrderID populated on every row by
// carrying forward the last explicitly stamped order id. The fill is an
// explicit fold over the row sequence; no state survives outside the loop.
// Returns an OrphanRowError when a row precedes every stamped order id.
func ForwardFill(rows []model.RawEventRow) ([]model.RawEventRow, error) {
	out := make([]model.RawEventRow, len(rows))
	current := ""
	for i, r := range rows {
		if r.OrderID != "" {
			current = r.OrderID
		}
		if current == "" {
			return nil, &OrphanRowError{RowIndex: r.Index}
		}
		r.OrderID = current
		out[i] = r
	}
	return out, nil
}
