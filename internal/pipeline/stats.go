package pipeline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// minSampleSize is the smallest group a rate or correlation may be computed
// on. Below it the statistic is reported as undefined, never as a number.
const minSampleSize = 2

// PerCheckStats computes, for every discovered check column, the failure
// rates split by disposition, their signed difference, and the
// point-biserial correlation between failure (Failed=1, Passed=0, Absent
// excluded) and liquidation. Orders with unrecognized dispositions are
// excluded. Statistics on fewer than two samples are reported undefined
// with an UndefinedStatistic finding. Results are ranked by correlation
// strength, undefined correlations last.
func PerCheckStats(records []model.WideOrderRecord, reg *CheckRegistry, f *Findings) []model.CheckStats {
	out := make([]model.CheckStats, 0, reg.Len())

	for _, slug := range reg.Slugs() {
		cs := model.CheckStats{Slug: slug, Title: reg.Title(slug)}

		var xs, ys []float64
		var liqN, liqFailed, sellN, sellFailed int
		for i := range records {
			rec := &records[i]
			if rec.Disposition == model.DispositionUnknown {
				continue
			}
			o := rec.Outcome(slug)
			if o == model.OutcomeAbsent {
				continue
			}
			failed := 0.0
			if o == model.OutcomeFailed {
				failed = 1
			}
			xs = append(xs, failed)
			ys = append(ys, float64(rec.IsLiquidated))
			if rec.Disposition == model.DispositionLiquidated {
				liqN++
				liqFailed += int(failed)
			} else {
				sellN++
				sellFailed += int(failed)
			}
		}
		cs.N = liqN + sellN

		cs.FailRateLiquidated = rateStat(liqFailed, liqN, slug, "liquidated failure rate", f)
		cs.FailRateSellable = rateStat(sellFailed, sellN, slug, "sellable failure rate", f)
		if cs.FailRateLiquidated.Defined && cs.FailRateSellable.Defined {
			cs.Difference = model.DefinedStat(cs.FailRateLiquidated.Value-cs.FailRateSellable.Value, cs.N)
		} else {
			cs.Difference = model.UndefinedStat(cs.N)
		}

		cs.Correlation = correlationStat(xs, ys, slug, f)

		out = append(out, cs)
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Correlation.Defined, out[j].Correlation.Defined
		if di != dj {
			return di
		}
		if di && dj {
			ai, aj := math.Abs(out[i].Correlation.Value), math.Abs(out[j].Correlation.Value)
			if ai != aj {
				return ai > aj
			}
		}
		return out[i].Slug < out[j].Slug
	})

	return out
}

func rateStat(failed, n int, slug, what string, f *Findings) model.StatValue {
	if n < minSampleSize {
		f.Add(model.FindingUndefinedStatistic, "", slug, "%s undefined: n=%d < %d", what, n, minSampleSize)
		return model.UndefinedStat(n)
	}
	return model.DefinedStat(float64(failed)/float64(n), n)
}

func correlationStat(xs, ys []float64, slug string, f *Findings) model.StatValue {
	n := len(xs)
	if n < minSampleSize {
		f.Add(model.FindingUndefinedStatistic, "", slug, "correlation undefined: n=%d < %d", n, minSampleSize)
		return model.UndefinedStat(n)
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Zero variance on either side: every order agrees, nothing to correlate.
		f.Add(model.FindingUndefinedStatistic, "", slug, "correlation undefined: zero variance over n=%d", n)
		return model.UndefinedStat(n)
	}
	return model.DefinedStat(r, n)
}

// Aggregates computes the batch-level disposition comparisons: cost and
// processing-time summaries per disposition, the pooled t-test on cost, the
// two-proportion z-test on aggregate failure rates, and the chi-square
// independence test over cost bucket and liquidation. Tests whose groups
// are too small are nil with a finding, never fabricated.
func Aggregates(records []model.WideOrderRecord, cfg config.AnalysisConfig, f *Findings) model.AggregateStats {
	agg := model.AggregateStats{
		COGSByDisposition:           make(map[model.Disposition]model.GroupSummary),
		ProcessingDaysByDisposition: make(map[model.Disposition]model.StatValue),
	}

	var liq, sell []model.WideOrderRecord
	for _, r := range records {
		switch r.Disposition {
		case model.DispositionLiquidated:
			liq = append(liq, r)
		case model.DispositionSellable:
			sell = append(sell, r)
		}
	}

	agg.COGSByDisposition[model.DispositionLiquidated] = cogsSummary(liq)
	agg.COGSByDisposition[model.DispositionSellable] = cogsSummary(sell)
	agg.ProcessingDaysByDisposition[model.DispositionLiquidated] = meanProcessingDays(liq)
	agg.ProcessingDaysByDisposition[model.DispositionSellable] = meanProcessingDays(sell)

	agg.COGSTTest = cogsTTest(liq, sell, f)
	agg.FailureRateZTest = failureRateZTest(liq, sell, f)
	agg.BinChiSquare = binChiSquare(records, cfg.COGSBins, f)

	return agg
}

func cogsSummary(group []model.WideOrderRecord) model.GroupSummary {
	n := len(group)
	if n == 0 {
		return model.GroupSummary{Mean: model.UndefinedStat(0), Median: model.UndefinedStat(0)}
	}
	cogs := make([]float64, n)
	for i, r := range group {
		cogs[i] = r.COGS
	}
	sort.Float64s(cogs)
	return model.GroupSummary{
		N:      n,
		Mean:   model.DefinedStat(stat.Mean(cogs, nil), n),
		Median: model.DefinedStat(stat.Quantile(0.5, stat.Empirical, cogs, nil), n),
	}
}

func meanProcessingDays(group []model.WideOrderRecord) model.StatValue {
	var days []float64
	for _, r := range group {
		if r.ProcessingDays != nil {
			days = append(days, float64(*r.ProcessingDays))
		}
	}
	if len(days) == 0 {
		return model.UndefinedStat(0)
	}
	return model.DefinedStat(stat.Mean(days, nil), len(days))
}

func cogsTTest(liq, sell []model.WideOrderRecord, f *Findings) *model.TTestResult {
	n1, n2 := len(liq), len(sell)
	if n1 < minSampleSize || n2 < minSampleSize {
		f.Add(model.FindingUndefinedStatistic, "", "", "cogs t-test undefined: group sizes %d and %d", n1, n2)
		return nil
	}

	a := make([]float64, n1)
	for i, r := range liq {
		a[i] = r.COGS
	}
	b := make([]float64, n2)
	for i, r := range sell {
		b[i] = r.COGS
	}

	m1, v1 := stat.MeanVariance(a, nil)
	m2, v2 := stat.MeanVariance(b, nil)

	df := float64(n1 + n2 - 2)
	pooledVar := (float64(n1-1)*v1 + float64(n2-1)*v2) / df
	if pooledVar == 0 {
		f.Add(model.FindingUndefinedStatistic, "", "", "cogs t-test undefined: zero pooled variance")
		return nil
	}

	t := (m1 - m2) / math.Sqrt(pooledVar*(1/float64(n1)+1/float64(n2)))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))

	d := (m1 - m2) / math.Sqrt(pooledVar)

	return &model.TTestResult{
		T:          t,
		DF:         df,
		P:          p,
		CohensD:    d,
		EffectSize: cohenLabel(math.Abs(d)),
	}
}

func failureRateZTest(liq, sell []model.WideOrderRecord, f *Findings) *model.ZTestResult {
	n1, n2 := len(liq), len(sell)
	if n1 < minSampleSize || n2 < minSampleSize {
		f.Add(model.FindingUndefinedStatistic, "", "", "failure-rate z-test undefined: group sizes %d and %d", n1, n2)
		return nil
	}

	var r1, r2 []float64
	var failed1, total1, failed2, total2 int
	for _, r := range liq {
		r1 = append(r1, r.FailureRate)
		failed1 += r.FailedChecks
		total1 += r.TotalChecks
	}
	for _, r := range sell {
		r2 = append(r2, r.FailureRate)
		failed2 += r.FailedChecks
		total2 += r.TotalChecks
	}
	if total1+total2 == 0 {
		f.Add(model.FindingUndefinedStatistic, "", "", "failure-rate z-test undefined: no checks recorded")
		return nil
	}

	p1 := stat.Mean(r1, nil)
	p2 := stat.Mean(r2, nil)
	pool := float64(failed1+failed2) / float64(total1+total2)
	se := math.Sqrt(pool * (1 - pool) * (1/float64(n1) + 1/float64(n2)))
	if se == 0 {
		f.Add(model.FindingUndefinedStatistic, "", "", "failure-rate z-test undefined: zero standard error")
		return nil
	}

	z := (p1 - p2) / se
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))

	return &model.ZTestResult{
		RateLiquidated: p1,
		RateSellable:   p2,
		Difference:     p1 - p2,
		Z:              z,
		P:              p,
	}
}

func binChiSquare(records []model.WideOrderRecord, bins []float64, f *Findings) *model.ChiSquareResult {
	labels := binLabels(bins)

	// Contingency counts: bin x {sellable, liquidated}, known dispositions only.
	counts := make(map[string][2]float64, len(labels))
	n := 0.0
	for _, r := range records {
		if r.Disposition == model.DispositionUnknown {
			continue
		}
		row := counts[r.COGSBin]
		row[r.IsLiquidated]++
		counts[r.COGSBin] = row
		n++
	}

	// Keep only populated rows, in bucket order.
	var rows [][2]float64
	for _, label := range labels {
		if row, ok := counts[label]; ok {
			rows = append(rows, row)
		}
	}
	if len(rows) < 2 || n < float64(2*minSampleSize) {
		f.Add(model.FindingUndefinedStatistic, "", "", "cogs-bin chi-square undefined: %d populated buckets over n=%.0f", len(rows), n)
		return nil
	}

	colTotals := [2]float64{}
	rowTotals := make([]float64, len(rows))
	for i, row := range rows {
		rowTotals[i] = row[0] + row[1]
		colTotals[0] += row[0]
		colTotals[1] += row[1]
	}

	chi2 := 0.0
	for i, row := range rows {
		for j := 0; j < 2; j++ {
			expected := rowTotals[i] * colTotals[j] / n
			if expected == 0 {
				continue
			}
			diff := row[j] - expected
			chi2 += diff * diff / expected
		}
	}

	dof := len(rows) - 1 // (rows-1) * (cols-1), cols == 2
	p := 1 - distuv.ChiSquared{K: float64(dof)}.CDF(chi2)
	v := math.Sqrt(chi2 / n) // Cramér's V with min(r,c)-1 == 1

	return &model.ChiSquareResult{
		Chi2:       chi2,
		DF:         dof,
		P:          p,
		CramersV:   v,
		EffectSize: cramersLabel(v),
	}
}

func cohenLabel(d float64) string {
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

func cramersLabel(v float64) string {
	switch {
	case v < 0.1:
		return "negligible"
	case v < 0.3:
		return "small"
	case v < 0.5:
		return "medium"
	default:
		return "large"
	}
}
