package model

// StatValue is a statistic with its sample size. Defined is false when the
// sample was too small (n < 2) or the statistic is otherwise not computable;
// the value is then meaningless and must not be read.
type StatValue struct {
	Value   float64 `json:"value"`
	N       int     `json:"n"`
	Defined bool    `json:"defined"`
}

// DefinedStat builds a defined StatValue.
func DefinedStat(v float64, n int) StatValue {
	return StatValue{Value: v, N: n, Defined: true}
}

// UndefinedStat builds an undefined StatValue carrying only the sample size.
func UndefinedStat(n int) StatValue {
	return StatValue{N: n}
}

// CheckStats holds the disposition signal of one check column: failure rates
// split by disposition, their signed difference, and the point-biserial
// correlation between failure and liquidation over non-Absent orders.
type CheckStats struct {
	Slug               string    `json:"slug"`
	Title              string    `json:"title"`
	N                  int       `json:"n"` // non-Absent orders with known disposition
	FailRateLiquidated StatValue `json:"fail_rate_liquidated"`
	FailRateSellable   StatValue `json:"fail_rate_sellable"`
	Difference         StatValue `json:"difference"`
	Correlation        StatValue `json:"correlation"`
}

// GroupSummary describes a numeric variable within one disposition group.
type GroupSummary struct {
	N      int       `json:"n"`
	Mean   StatValue `json:"mean"`
	Median StatValue `json:"median"`
}

// TTestResult is a pooled two-sample t-test with Cohen's d effect size.
type TTestResult struct {
	T          float64 `json:"t_statistic"`
	DF         float64 `json:"degrees_of_freedom"`
	P          float64 `json:"p_value"`
	CohensD    float64 `json:"cohens_d"`
	EffectSize string  `json:"effect_size"`
}

// ZTestResult is a two-proportion z-test on aggregate check failure rates.
type ZTestResult struct {
	RateLiquidated float64 `json:"liquidated_rate"`
	RateSellable   float64 `json:"sellable_rate"`
	Difference     float64 `json:"difference"`
	Z              float64 `json:"z_statistic"`
	P              float64 `json:"p_value"`
}

// ChiSquareResult is a chi-square independence test over cost bucket and
// liquidation, with Cramér's V effect size.
type ChiSquareResult struct {
	Chi2       float64 `json:"chi2_statistic"`
	DF         int     `json:"degrees_of_freedom"`
	P          float64 `json:"p_value"`
	CramersV   float64 `json:"cramers_v"`
	EffectSize string  `json:"effect_size"`
}

// AggregateStats holds the batch-level comparisons between dispositions.
// Test pointers are nil when either group was too small to test.
type AggregateStats struct {
	COGSByDisposition           map[Disposition]GroupSummary `json:"cogs_by_disposition"`
	ProcessingDaysByDisposition map[Disposition]StatValue    `json:"processing_days_by_disposition"`
	COGSTTest                   *TTestResult                 `json:"cogs_t_test,omitempty"`
	FailureRateZTest            *ZTestResult                 `json:"failure_rate_z_test,omitempty"`
	BinChiSquare                *ChiSquareResult             `json:"bin_chi_square,omitempty"`
}
