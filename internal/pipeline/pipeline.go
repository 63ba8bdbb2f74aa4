package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// Engine runs the full analysis over one batch of raw event rows.
type Engine struct {
	cfg config.AnalysisConfig
}

// NewEngine returns an Engine configured for one analysis policy.
func NewEngine(cfg config.AnalysisConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Audit carries the row-accounting counters from the classification stage.
type Audit struct {
	Headers          int
	CheckRowsTotal   int
	CheckRowsKept    int
	CheckRowsDropped int
	OtherRows        int
}

// Result is the complete output of one analysis run.
type Result struct {
	Records    []model.WideOrderRecord
	Registry   *CheckRegistry
	KeyChecks  []ResolvedKeyCheck
	Patterns   []model.PatternGroup
	Paths      []model.DecisionPath
	CheckStats []model.CheckStats
	Aggregates model.AggregateStats
	Impact     model.Impact
	Findings   []model.Finding
	Audit      Audit
}

// Run executes the staged pipeline: forward-fill, classify, pivot, derive,
// then the three independent analyses (patterns, statistics, impact) in
// parallel. The transformation stages are sequential because each consumes
// the previous stage's output; the analyses all read the same immutable
// record slice and can fan out. Fatal structural errors abort the run;
// recoverable data-quality conditions accumulate as findings.
func (e *Engine) Run(ctx context.Context, rows []model.RawEventRow) (*Result, error) {
	findings := &Findings{}

	filled, err := ForwardFill(rows)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: normalize rows")
	}

	part := Classify(filled)
	reg := BuildRegistry(part.Checks)

	records, err := Pivot(part, findings)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: pivot rows")
	}
	records = DeriveFeatures(records, reg, e.cfg, findings)

	res := &Result{
		Records:  records,
		Registry: reg,
		Audit: Audit{
			Headers:          len(part.Headers),
			CheckRowsTotal:   part.CheckRowsTotal,
			CheckRowsKept:    part.CheckRowsKept,
			CheckRowsDropped: part.CheckRowsDropped,
			OtherRows:        part.OtherRows,
		},
	}
	res.KeyChecks = ResolveKeyChecks(e.cfg.KeyChecks, reg)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Patterns = ExtractPatterns(records, res.KeyChecks)
		res.Paths = DecisionPaths(records, res.KeyChecks)
		return nil
	})
	g.Go(func() error {
		res.CheckStats = PerCheckStats(records, reg, findings)
		res.Aggregates = Aggregates(records, e.cfg, findings)
		return nil
	})
	g.Go(func() error {
		res.Impact = ComputeImpact(records, e.cfg)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: analysis stages")
	}

	res.Findings = findings.All()

	zap.L().Info("pipeline: run complete",
		zap.Int("orders", len(res.Records)),
		zap.Int("check_columns", reg.Len()),
		zap.Int("pattern_groups", len(res.Patterns)),
		zap.Int("findings", len(res.Findings)),
	)

	return res, nil
}
