package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/liquidation-cli/internal/model"
)

const maxSlugLen = 50

var (
	slugSpecialRe  = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	slugCollapseRe = regexp.MustCompile(`[\s_]+`)
)

// SlugCheckName converts a free-text check title into its canonical column
// slug: special characters become underscores, runs collapse to one, and
// the result is trimmed and capped at 50 characters. The slug is the
// identity of a check column for the whole batch.
func SlugCheckName(title string) string {
	s := slugSpecialRe.ReplaceAllString(title, "_")
	s = slugCollapseRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}

// CheckRegistry is the dynamic field registry of check columns discovered
// from the batch. The column universe is the union across all orders; it is
// built once from the filtered check rows before pivoting, never assumed in
// advance.
type CheckRegistry struct {
	slugs  []string          // lexicographically sorted
	titles map[string]string // slug -> first-seen source title
}

// BuildRegistry discovers the check column universe from filtered check rows.
func BuildRegistry(checks []model.RawEventRow) *CheckRegistry {
	titles := make(map[string]string)
	for _, r := range checks {
		slug := SlugCheckName(r.CheckTitle)
		if slug == "" {
			continue
		}
		if _, ok := titles[slug]; !ok {
			titles[slug] = r.CheckTitle
		}
	}
	slugs := make([]string, 0, len(titles))
	for s := range titles {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return &CheckRegistry{slugs: slugs, titles: titles}
}

// Len returns the number of discovered check columns.
func (r *CheckRegistry) Len() int { return len(r.slugs) }

// Slugs returns the discovered slugs in lexicographic order.
func (r *CheckRegistry) Slugs() []string {
	out := make([]string, len(r.slugs))
	copy(out, r.slugs)
	return out
}

// Title returns the first-seen source title for a slug.
func (r *CheckRegistry) Title(slug string) string { return r.titles[slug] }

// Has reports whether the slug was discovered in the batch.
func (r *CheckRegistry) Has(slug string) bool {
	_, ok := r.titles[slug]
	return ok
}

// MatchSlugs returns the slugs containing the given case-insensitive
// substring, in registry order. Used for keyword-discovered check flags.
func (r *CheckRegistry) MatchSlugs(substr string) []string {
	needle := strings.ToLower(substr)
	var out []string
	for _, s := range r.slugs {
		if strings.Contains(strings.ToLower(s), needle) {
			out = append(out, s)
		}
	}
	return out
}

// OrderedSlugs returns all slugs in canonical report order: resolved key
// checks first in priority order, then the remaining slugs lexicographically.
func (r *CheckRegistry) OrderedSlugs(keys []ResolvedKeyCheck) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(r.slugs))
	for _, k := range keys {
		if r.Has(k.Slug) && !seen[k.Slug] {
			seen[k.Slug] = true
			out = append(out, k.Slug)
		}
	}
	for _, s := range r.slugs {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
