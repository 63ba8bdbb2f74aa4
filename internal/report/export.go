package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/liquidation-cli/internal/model"
	"github.com/sells-group/liquidation-cli/internal/pipeline"
)

// wideBaseColumns are the order-attribute columns preceding the dynamic
// check columns in the wide CSV export.
var wideBaseColumns = []string{
	"order_id", "cogs", "disposition", "product", "category", "category_group",
	"repair_reason", "started_at", "completed_at", "scheduled_at", "shipped_at",
}

// wideDerivedColumns follow the dynamic check columns.
var wideDerivedColumns = []string{
	"is_liquidated", "cogs_bin", "processing_days", "days_to_ship",
	"total_checks", "passed_checks_count", "failed_checks_count",
	"failure_rate", "check_efficiency", "high_value_flag",
	"value_lost", "recovery_potential",
	"works_check_passed", "fraud_check_failed", "cosmetic_check_failed",
	"repairable_check_failed", "factory_sealed_check_passed",
}

// WriteWideCSV writes the wide one-row-per-order table: order attributes,
// one column per discovered check in canonical order (key checks first),
// then the derived features. Absent outcomes export as empty cells.
func WriteWideCSV(w io.Writer, res *pipeline.Result) error {
	slugs := res.Registry.OrderedSlugs(res.KeyChecks)

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(wideBaseColumns)+len(slugs)+len(wideDerivedColumns))
	header = append(header, wideBaseColumns...)
	header = append(header, slugs...)
	header = append(header, wideDerivedColumns...)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}

	for i := range res.Records {
		if err := cw.Write(wideRow(&res.Records[i], slugs)); err != nil {
			return eris.Wrapf(err, "report: write csv row for order %s", res.Records[i].OrderID)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

func wideRow(r *model.WideOrderRecord, slugs []string) []string {
	row := []string{
		r.OrderID,
		strconv.FormatFloat(r.COGS, 'f', 2, 64),
		string(r.Disposition),
		r.Product,
		r.Category,
		r.CategoryGroup,
		r.RepairReason,
		fmtTime(r.StartedAt),
		fmtTime(r.CompletedAt),
		fmtTime(r.ScheduledAt),
		fmtTime(r.ShippedAt),
	}
	for _, s := range slugs {
		switch r.Outcome(s) {
		case model.OutcomeAbsent:
			row = append(row, "")
		default:
			row = append(row, string(r.Outcome(s)))
		}
	}
	row = append(row,
		strconv.Itoa(r.IsLiquidated),
		r.COGSBin,
		fmtIntPtr(r.ProcessingDays),
		fmtIntPtr(r.DaysToShip),
		strconv.Itoa(r.TotalChecks),
		strconv.Itoa(r.PassedChecks),
		strconv.Itoa(r.FailedChecks),
		fmt.Sprintf("%.4f", r.FailureRate),
		fmt.Sprintf("%.4f", r.CheckEfficiency),
		strconv.Itoa(r.HighValue),
		strconv.FormatFloat(r.ValueLost, 'f', 2, 64),
		strconv.FormatFloat(r.RecoveryPotential, 'f', 2, 64),
		strconv.Itoa(r.WorksPassed),
		strconv.Itoa(r.FraudFailed),
		strconv.Itoa(r.CosmeticFailed),
		strconv.Itoa(r.RepairableFailed),
		strconv.Itoa(r.FactorySealedPassed),
	)
	return row
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
