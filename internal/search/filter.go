// Package search implements the case-index filter: a stable, case-insensitive
// substring match over the title, reporter citation, judge, and docket fields
// of the published case list.
package search

import (
	"strings"

	"github.com/krabzholder/mayflower-reporter/internal/reporter"
)

// MaxResults caps how many matches a single query returns. Matches past the
// cap are dropped silently.
const MaxResults = 100

// State distinguishes an intentionally cleared result area from a query that
// matched nothing.
type State int

const (
	// StateCleared means the trimmed query was empty: render nothing.
	StateCleared State = iota
	// StateNoMatch means a non-empty query matched zero cases.
	StateNoMatch
	// StateMatched means at least one case matched.
	StateMatched
)

// Result is the outcome of one filter run.
type Result struct {
	State State
	// Cases holds up to MaxResults matches in the original list order.
	Cases []reporter.Case
	// Truncated reports whether matches were dropped by the cap. It feeds
	// the metrics counter only; nothing about truncation is rendered.
	Truncated bool
}

// Filter runs the query against cases. The query is whitespace-trimmed and
// matched case-insensitively as a substring of any of the four searchable
// fields. The output preserves the input order; there is no ranking. Absent
// fields are empty strings and never match a non-empty query.
func Filter(cases []reporter.Case, rawQuery string) Result {
	q := strings.ToLower(strings.TrimSpace(rawQuery))
	if q == "" {
		return Result{State: StateCleared, Cases: []reporter.Case{}}
	}

	out := make([]reporter.Case, 0, MaxResults)
	truncated := false
	for _, c := range cases {
		if !matches(c, q) {
			continue
		}
		if len(out) == MaxResults {
			truncated = true
			break
		}
		out = append(out, c)
	}

	if len(out) == 0 {
		return Result{State: StateNoMatch, Cases: out}
	}
	return Result{State: StateMatched, Cases: out, Truncated: truncated}
}

// matches reports whether q (already lower-cased and non-empty) occurs in any
// searchable field of c.
func matches(c reporter.Case, q string) bool {
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.ReporterCite), q) ||
		strings.Contains(strings.ToLower(c.Judge), q) ||
		strings.Contains(strings.ToLower(c.Docket), q)
}
