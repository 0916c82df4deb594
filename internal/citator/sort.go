// Package citator orders the case list the way the bound reporter prints it:
// ascending volume, then ascending starting page.
package citator

import (
	"sort"

	"github.com/krabzholder/mayflower-reporter/internal/reporter"
)

// Sorted returns a copy of cases in citation order. Ties beyond
// (volume, page_start) keep their source order. A record carrying neither
// number is keyed by the volume and page parsed out of its reporter cite;
// failing that it sorts with the zero values, so the ordering stays total
// and deterministic. The input slice is left untouched.
func Sorted(cases []reporter.Case) []reporter.Case {
	out := make([]reporter.Case, len(cases))
	copy(out, cases)
	sort.SliceStable(out, func(i, j int) bool {
		vi, pi := sortKeys(out[i])
		vj, pj := sortKeys(out[j])
		if vi != vj {
			return vi < vj
		}
		return pi < pj
	})
	return out
}

// sortKeys prefers the record's own numeric fields, falling back to the
// citation text only when both are absent.
func sortKeys(c reporter.Case) (volume, pageStart int) {
	if c.Volume == 0 && c.PageStart == 0 {
		if v, p, ok := reporter.ParseReporterCite(c.ReporterCite); ok {
			return v, p
		}
	}
	return c.Volume, c.PageStart
}
