package pipeline

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// ResolvedKeyCheck binds a configured key check to the slug it matched in
// the batch, preserving its position in the canonical priority ordering.
type ResolvedKeyCheck struct {
	Label string
	Slug  string
	Pos   int
}

// ResolveKeyChecks maps the configured priority list onto the discovered
// check columns. A key check whose matcher finds no slug is dropped; the
// canonical relative order of the rest is preserved.
func ResolveKeyChecks(keys []config.KeyCheck, reg *CheckRegistry) []ResolvedKeyCheck {
	var out []ResolvedKeyCheck
	used := make(map[string]bool)
	for i, k := range keys {
		matches := reg.MatchSlugs(k.Match)
		var slug string
		for _, m := range matches {
			if !used[m] {
				slug = m
				break
			}
		}
		if slug == "" {
			continue
		}
		used[slug] = true
		out = append(out, ResolvedKeyCheck{Label: k.Label, Slug: slug, Pos: i})
	}
	zap.L().Debug("pattern: resolved key checks",
		zap.Int("configured", len(keys)),
		zap.Int("resolved", len(out)),
	)
	return out
}

// ExtractPatterns groups orders by their ordered key-check outcome sequence
// and ranks the groups by frequency. Two orders share a group iff their
// subsequences are list-equal: same checks, same outcomes, same order. The
// groups partition the batch; orders touching no key check share the
// empty-sequence group. Ties in frequency break on the canonical sequence
// (priority position, then outcome) for determinism.
func ExtractPatterns(records []model.WideOrderRecord, keys []ResolvedKeyCheck) []model.PatternGroup {
	groups := make(map[string]*model.PatternGroup)

	for i := range records {
		rec := &records[i]
		steps := keySequence(rec, keys)
		key := model.PatternKey(steps)

		g, ok := groups[key]
		if !ok {
			g = &model.PatternGroup{Key: key, Sequence: steps}
			groups[key] = g
		}
		g.Count++
		g.Orders = append(g.Orders, rec.OrderID)
		switch rec.Disposition {
		case model.DispositionLiquidated:
			g.Liquidated++
		case model.DispositionSellable:
			g.Sellable++
		default:
			g.Unknown++
		}
	}

	out := make([]model.PatternGroup, 0, len(groups))
	for _, g := range groups {
		if known := g.Liquidated + g.Sellable; known > 0 {
			g.LiquidationRate = float64(g.Liquidated) / float64(known)
		}
		sort.Strings(g.Orders)
		out = append(out, *g)
	}

	posOf := make(map[string]int, len(keys))
	for _, k := range keys {
		posOf[k.Label] = k.Pos
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return sequenceLess(out[i].Sequence, out[j].Sequence, posOf)
	})

	return out
}

// keySequence builds the ordered subsequence of non-Absent key-check
// outcomes for one order, preserving the canonical relative order.
func keySequence(rec *model.WideOrderRecord, keys []ResolvedKeyCheck) []model.PatternStep {
	var steps []model.PatternStep
	for _, k := range keys {
		o := rec.Outcome(k.Slug)
		if o == model.OutcomeAbsent {
			continue
		}
		steps = append(steps, model.PatternStep{Label: k.Label, Outcome: o})
	}
	return steps
}

// sequenceLess orders sequences lexicographically by canonical check
// position, then outcome; a strict prefix sorts first.
func sequenceLess(a, b []model.PatternStep, posOf map[string]int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		pa, pb := posOf[a[i].Label], posOf[b[i].Label]
		if pa != pb {
			return pa < pb
		}
		if a[i].Outcome != b[i].Outcome {
			return a[i].Outcome == model.OutcomeFailed
		}
	}
	return len(a) < len(b)
}

// decisionPathSpec names a routing path from the repair decision tree.
type decisionPathSpec struct {
	Name        string
	Label       string
	Outcome     model.CheckOutcome
	Description string
}

// decisionPathSpecs mirrors the routing branches of the repair process:
// the question phrasing means a Passed "Is it Fraud?" is a yes.
var decisionPathSpecs = []decisionPathSpec{
	{"empty_box", "Something_in_Box", model.OutcomeFailed, "Is there something in the box? -> No -> Liquidation"},
	{"non_repairable", "Repairable", model.OutcomeFailed, "Is the item Repairable? -> No -> Liquidation"},
	{"fraud_yes", "Fraud", model.OutcomePassed, "Is it Fraud? -> Yes -> Liquidation"},
	{"fraud_no", "Fraud", model.OutcomeFailed, "Is it Fraud? -> No -> Continue"},
	{"factory_sealed", "Factory_Sealed", model.OutcomePassed, "Is the item Factory Sealed? -> Yes -> Sellable"},
	{"destroy", "Destroy", model.OutcomePassed, "Does the item need to be Destroyed? -> Yes -> Liquidation"},
	{"scratches_dents", "Scratches_Dents", model.OutcomePassed, "Does the item have scratches or dents? -> Yes -> Liquidation"},
	{"works_passed", "Works", model.OutcomePassed, "Does the item work? -> Yes -> Sellable"},
	{"works_failed", "Works", model.OutcomeFailed, "Does the item work? -> No -> Liquidation"},
	{"iog", "IOG", model.OutcomeFailed, "Is it IOG? -> No -> Problem Solve"},
}

// DecisionPaths computes the disposition split for each named routing path
// whose key check resolved in this batch.
func DecisionPaths(records []model.WideOrderRecord, keys []ResolvedKeyCheck) []model.DecisionPath {
	slugOf := make(map[string]string, len(keys))
	for _, k := range keys {
		slugOf[k.Label] = k.Slug
	}

	var out []model.DecisionPath
	for _, spec := range decisionPathSpecs {
		slug, ok := slugOf[spec.Label]
		if !ok {
			continue
		}
		p := model.DecisionPath{Name: spec.Name, Description: spec.Description}
		for i := range records {
			if records[i].Outcome(slug) != spec.Outcome {
				continue
			}
			p.Total++
			switch records[i].Disposition {
			case model.DispositionLiquidated:
				p.Liquidated++
			case model.DispositionSellable:
				p.Sellable++
			}
		}
		if known := p.Liquidated + p.Sellable; known > 0 {
			p.LiquidationRate = float64(p.Liquidated) / float64(known) * 100
		}
		out = append(out, p)
	}
	return out
}

// TopPatternsByDisposition filters ranked groups to those whose members are
// predominantly the given disposition, keeping at most n.
func TopPatternsByDisposition(groups []model.PatternGroup, d model.Disposition, n int) []model.PatternGroup {
	var out []model.PatternGroup
	for _, g := range groups {
		dominant := model.DispositionSellable
		if g.Liquidated > g.Sellable {
			dominant = model.DispositionLiquidated
		}
		if g.Liquidated+g.Sellable == 0 || dominant != d {
			continue
		}
		out = append(out, g)
		if len(out) == n {
			break
		}
	}
	return out
}

// FormatSequence renders a step sequence for display.
func FormatSequence(steps []model.PatternStep) string {
	if len(steps) == 0 {
		return "(no key checks)"
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.Label + ":" + string(s.Outcome)
	}
	return strings.Join(parts, " -> ")
}
