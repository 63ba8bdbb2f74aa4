package report

import (
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/liquidation-cli/internal/model"
	"github.com/sells-group/liquidation-cli/internal/pipeline"
)

// BuildSummary digests a pipeline result into the persisted run summary.
func BuildSummary(res *pipeline.Result) model.RunSummary {
	var liq, sell, unknown int
	for _, r := range res.Records {
		switch r.Disposition {
		case model.DispositionLiquidated:
			liq++
		case model.DispositionSellable:
			sell++
		default:
			unknown++
		}
	}
	return model.RunSummary{
		Orders:             len(res.Records),
		Liquidated:         liq,
		Sellable:           sell,
		UnknownDisposition: unknown,
		CheckColumns:       res.Registry.Len(),
		CheckRowsKept:      res.Audit.CheckRowsKept,
		CheckRowsDropped:   res.Audit.CheckRowsDropped,
		PatternGroups:      len(res.Patterns),
		TotalValueLost:     res.Impact.TotalValueLost,
		PotentialRecovery:  res.Impact.TotalPotentialRecovery,
		FindingCount:       len(res.Findings),
	}
}

// summaryDoc is the YAML shape of the run summary file.
type summaryDoc struct {
	Source  string           `yaml:"source"`
	Summary model.RunSummary `yaml:"summary"`
}

// WriteSummaryYAML writes the run summary as YAML.
func WriteSummaryYAML(w io.Writer, source string, s model.RunSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summaryDoc{Source: source, Summary: s}); err != nil {
		return eris.Wrap(err, "report: encode summary yaml")
	}
	return eris.Wrap(enc.Close(), "report: close summary encoder")
}
