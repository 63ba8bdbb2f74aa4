package pipeline

import (
	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/model"
)

// Partition separates normalized rows into order headers and human-executed
// check rows, with counts of what the automatic-decision filter dropped.
type Partition struct {
	Headers []model.RawEventRow
	Checks  []model.RawEventRow // human-executed only

	CheckRowsTotal   int
	CheckRowsKept    int
	CheckRowsDropped int
	OtherRows        int // neither header nor check (blank filler rows)
}

// Classify partitions rows by kind and filters out automatically-decided
// check events. Automatic outcomes are produced by upstream decision logic
// rather than a person and would bias the correlation analysis, so they are
// excluded from every downstream stage and only counted here for audit.
func Classify(rows []model.RawEventRow) Partition {
	var p Partition
	for _, r := range rows {
		switch {
		case r.IsHeader():
			p.Headers = append(p.Headers, r)
		case r.IsCheck():
			p.CheckRowsTotal++
			if r.AutoDecided {
				p.CheckRowsDropped++
				continue
			}
			p.CheckRowsKept++
			p.Checks = append(p.Checks, r)
		default:
			p.OtherRows++
		}
	}

	zap.L().Info("classify: partitioned rows",
		zap.Int("headers", len(p.Headers)),
		zap.Int("check_rows_total", p.CheckRowsTotal),
		zap.Int("check_rows_kept", p.CheckRowsKept),
		zap.Int("check_rows_dropped", p.CheckRowsDropped),
		zap.Int("other_rows", p.OtherRows),
	)

	return p
}
