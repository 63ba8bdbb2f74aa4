package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// checkFlagKeywords maps each keyword-discovered flag to the substrings that
// identify its check columns among the discovered slugs. Matching is
// case-insensitive; entries within a group are OR'd, words within an entry
// (space-separated) are AND'd.
var checkFlagKeywords = map[string][]string{
	"fraud":          {"fraud"},
	"cosmetic":       {"scratches", "dents", "cosmetic"},
	"repairable":     {"repairable"},
	"works":          {"does work"},
	"factory_sealed": {"factory sealed"},
}

// flagColumns resolves one keyword group to the matching slugs.
func flagColumns(reg *CheckRegistry, keywords []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range keywords {
		words := strings.Fields(strings.ToLower(kw))
		for _, slug := range reg.Slugs() {
			lower := strings.ToLower(slug)
			all := true
			for _, w := range words {
				if !strings.Contains(lower, w) {
					all = false
					break
				}
			}
			if all && !seen[slug] {
				seen[slug] = true
				out = append(out, slug)
			}
		}
	}
	return out
}

// DeriveFeatures computes the derived per-order fields on a pivoted batch:
// binary liquidation flag, cost bucket, elapsed-time metrics, check-count
// aggregates, keyword check flags, and the value-lost/recovery metrics.
// Unrecognized dispositions are skip-and-report: the order keeps
// DispositionUnknown, a finding is emitted, and disposition-dependent
// aggregates exclude it downstream.
func DeriveFeatures(records []model.WideOrderRecord, reg *CheckRegistry, cfg config.AnalysisConfig, f *Findings) []model.WideOrderRecord {
	synonyms := normalizeSynonyms(cfg.DispositionSynonyms)
	labels := binLabels(cfg.COGSBins)
	highThreshold := highValueThreshold(records)

	fraudCols := flagColumns(reg, checkFlagKeywords["fraud"])
	cosmeticCols := flagColumns(reg, checkFlagKeywords["cosmetic"])
	repairableCols := flagColumns(reg, checkFlagKeywords["repairable"])
	worksCols := flagColumns(reg, checkFlagKeywords["works"])
	sealedCols := flagColumns(reg, checkFlagKeywords["factory_sealed"])

	out := make([]model.WideOrderRecord, len(records))
	for i, rec := range records {
		rec.Disposition = resolveDisposition(rec.DispositionRaw, synonyms)
		if rec.Disposition == model.DispositionUnknown {
			f.Add(model.FindingUnrecognizedDisposition, rec.OrderID, "",
				"disposition %q matches no recognized synonym; order excluded from disposition splits", rec.DispositionRaw)
		}
		if rec.Disposition == model.DispositionLiquidated {
			rec.IsLiquidated = 1
		}

		rec.CategoryGroup = categoryGroup(rec.Category)
		rec.COGSBin = binFor(rec.COGS, cfg.COGSBins, labels)
		rec.ProcessingDays = daysBetween(rec.StartedAt, rec.CompletedAt)
		rec.DaysToShip = daysBetween(rec.ScheduledAt, rec.ShippedAt)

		for _, o := range rec.Checks {
			rec.TotalChecks++
			switch o {
			case model.OutcomePassed:
				rec.PassedChecks++
			case model.OutcomeFailed:
				rec.FailedChecks++
			}
		}
		if rec.TotalChecks > 0 {
			rec.FailureRate = float64(rec.FailedChecks) / float64(rec.TotalChecks)
			rec.CheckEfficiency = float64(rec.PassedChecks) / float64(rec.TotalChecks)
		}

		if rec.COGS > highThreshold {
			rec.HighValue = 1
		}

		rec.FraudFailed = anyOutcome(&rec, fraudCols, model.OutcomeFailed)
		rec.CosmeticFailed = anyOutcome(&rec, cosmeticCols, model.OutcomeFailed)
		rec.RepairableFailed = anyOutcome(&rec, repairableCols, model.OutcomeFailed)
		rec.WorksPassed = anyOutcome(&rec, worksCols, model.OutcomePassed)
		rec.FactorySealedPassed = anyOutcome(&rec, sealedCols, model.OutcomePassed)

		if rec.IsLiquidated == 1 {
			rec.ValueLost = rec.COGS
			if rec.WorksPassed == 1 {
				rec.RecoveryPotential = rec.COGS
			}
		}

		out[i] = rec
	}
	return out
}

func anyOutcome(rec *model.WideOrderRecord, slugs []string, want model.CheckOutcome) int {
	for _, s := range slugs {
		if rec.Outcome(s) == want {
			return 1
		}
	}
	return 0
}

func normalizeSynonyms(raw map[string]string) map[string]model.Disposition {
	out := make(map[string]model.Disposition, len(raw))
	for k, v := range raw {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "liquidated", "liquidate":
			out[strings.ToLower(strings.TrimSpace(k))] = model.DispositionLiquidated
		case "sellable", "sell":
			out[strings.ToLower(strings.TrimSpace(k))] = model.DispositionSellable
		}
	}
	return out
}

func resolveDisposition(raw string, synonyms map[string]model.Disposition) model.Disposition {
	if d, ok := synonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return d
	}
	return model.DispositionUnknown
}

// categoryGroup extracts the last segment of a slash-separated category path.
func categoryGroup(category string) string {
	parts := strings.Split(category, "/")
	return strings.TrimSpace(parts[len(parts)-1])
}

func daysBetween(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	d := int(to.Sub(*from).Hours() / 24)
	return &d
}

// binLabels derives the human-readable bucket labels from the configured
// boundaries: "<$1K", "$1K-$1.5K", ..., "$3K+".
func binLabels(bins []float64) []string {
	if len(bins) == 0 {
		return []string{"all"}
	}
	labels := make([]string, 0, len(bins)+1)
	labels = append(labels, "<"+dollarK(bins[0]))
	for i := 1; i < len(bins); i++ {
		labels = append(labels, dollarK(bins[i-1])+"-"+dollarK(bins[i]))
	}
	labels = append(labels, dollarK(bins[len(bins)-1])+"+")
	return labels
}

func dollarK(v float64) string {
	return fmt.Sprintf("$%gK", v/1000)
}

// binFor assigns a cost to its bucket. Intervals are half-open [low, high)
// with an inclusive lower bound, so a cost exactly on a boundary falls in
// the higher bucket; the final bucket is open-ended.
func binFor(cogs float64, bins []float64, labels []string) string {
	for i, b := range bins {
		if cogs < b {
			return labels[i]
		}
	}
	return labels[len(labels)-1]
}

// highValueThreshold computes the outlier boundary Q3 + 1.5*IQR over the
// batch's cost distribution.
func highValueThreshold(records []model.WideOrderRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	cogs := make([]float64, len(records))
	for i, r := range records {
		cogs[i] = r.COGS
	}
	sort.Float64s(cogs)
	q25 := stat.Quantile(0.25, stat.Empirical, cogs, nil)
	q75 := stat.Quantile(0.75, stat.Empirical, cogs, nil)
	return q75 + 1.5*(q75-q25)
}
