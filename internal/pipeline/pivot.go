package pipeline

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/model"
)

// Pivot folds the partitioned rows into one WideOrderRecord per order. The
// record carries the header attributes of the first header row for that
// order and the recorded outcome per check slug; slugs an order never
// touched are simply missing from its Checks map (Absent).
//
// Duplicate header rows keep the first occurrence. Duplicate check outcomes
// for the same order+slug resolve last-wins; a conflicting duplicate is
// recorded as a DuplicateCheckConflict finding. A check row whose order id
// has no header row is a fatal MissingHeaderError.
func Pivot(p Partition, f *Findings) ([]model.WideOrderRecord, error) {
	byOrder := make(map[string]*model.WideOrderRecord, len(p.Headers))
	order := make([]string, 0, len(p.Headers))

	for _, h := range p.Headers {
		if _, ok := byOrder[h.OrderID]; ok {
			f.Add(model.FindingDuplicateHeader, h.OrderID, "",
				"duplicate header at row %d dropped, first occurrence kept", h.Index)
			continue
		}
		byOrder[h.OrderID] = &model.WideOrderRecord{
			OrderID:        h.OrderID,
			COGS:           *h.COGS,
			DispositionRaw: strings.TrimSpace(h.DispositionRaw),
			Product:        h.Product,
			Category:       h.Category,
			RepairReason:   h.RepairReason,
			StartedAt:      h.StartedAt,
			CompletedAt:    h.CompletedAt,
			ScheduledAt:    h.ScheduledAt,
			ShippedAt:      h.ShippedAt,
			Checks:         make(map[string]model.CheckOutcome),
		}
		order = append(order, h.OrderID)
	}

	for _, c := range p.Checks {
		rec, ok := byOrder[c.OrderID]
		if !ok {
			return nil, &MissingHeaderError{OrderID: c.OrderID, RowIndex: c.Index}
		}

		slug := SlugCheckName(c.CheckTitle)
		if slug == "" {
			continue
		}

		outcome, ok := model.ParseOutcome(c.CheckStatusRaw)
		if !ok {
			f.Add(model.FindingUnknownCheckStatus, c.OrderID, slug,
				"unparseable check status %q at row %d skipped", c.CheckStatusRaw, c.Index)
			continue
		}

		if prev, dup := rec.Checks[slug]; dup && prev != outcome {
			f.Add(model.FindingDuplicateCheckConflict, c.OrderID, slug,
				"conflicting outcomes %s then %s, later occurrence wins", prev, outcome)
		}
		rec.Checks[slug] = outcome
	}

	records := make([]model.WideOrderRecord, 0, len(order))
	for _, id := range order {
		rec := byOrder[id]
		if len(rec.Checks) == 0 {
			f.Add(model.FindingOrderWithoutChecks, id, "", "order has no human-executed checks")
		}
		records = append(records, *rec)
	}
	// Stable output order by order id: source order of headers is already
	// deterministic, but sorting makes re-runs byte-identical regardless of
	// upstream shuffling.
	sort.Slice(records, func(i, j int) bool { return records[i].OrderID < records[j].OrderID })

	zap.L().Info("pivot: built wide records",
		zap.Int("orders", len(records)),
		zap.Int("check_rows", len(p.Checks)),
	)

	return records, nil
}
