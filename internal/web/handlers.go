package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/krabzholder/mayflower-reporter/internal/citator"
	"github.com/krabzholder/mayflower-reporter/internal/metrics"
	"github.com/krabzholder/mayflower-reporter/internal/reporter"
	"github.com/krabzholder/mayflower-reporter/internal/search"
)

// caseRow is one rendered result line. Field values land in markup through
// template escaping only.
type caseRow struct {
	URL          string
	DisplayTitle string
	DisplayCite  string
	ReporterCite string
	Judge        string
	Docket       string
}

// searchView feeds the search page and the results fragment.
type searchView struct {
	Query string
	State string
	Court string
	Cases []caseRow
}

// citatorView feeds the citator listing.
type citatorView struct {
	Court string
	Cases []caseRow
}

// row builds one rendered line. The citation label comes from the record
// itself (published or rebuilt via reporter.Case.Cite); a record with no
// title and nothing to cite by renders an empty label, never the URL path.
func (s *Server) row(c reporter.Case) caseRow {
	cite := c.Cite()
	title := c.Title
	if title == "" {
		title = cite
	}
	return caseRow{
		URL:          s.caseURL(c.PagePath()),
		DisplayTitle: title,
		DisplayCite:  cite,
		ReporterCite: c.ReporterCite,
		Judge:        c.Judge,
		Docket:       c.Docket,
	}
}

func stateLabel(st search.State) string {
	switch st {
	case search.StateNoMatch:
		return metrics.StateNoMatch
	case search.StateMatched:
		return metrics.StateMatched
	}
	return metrics.StateCleared
}

func (s *Server) runSearch(rawQuery string) searchView {
	start := time.Now()
	res := search.Filter(s.snap.Cases(), rawQuery)
	view := searchView{Query: rawQuery, State: stateLabel(res.State), Court: reporter.CourtName}
	view.Cases = make([]caseRow, 0, len(res.Cases))
	for _, c := range res.Cases {
		view.Cases = append(view.Cases, s.row(c))
	}
	if s.metrics != nil {
		s.metrics.ObserveSearch(view.State, res.Truncated, time.Since(start).Seconds())
	}
	return view
}

// handleSearchPage serves GET /: the query input plus the results container,
// pre-filled from the q parameter.
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	view := s.runSearch(r.URL.Query().Get("q"))
	s.render(w, "search", view)
}

// handleSearchFragment serves GET /search/results: just the results
// container content, refetched on every keystroke. An empty trimmed query
// clears the container; zero matches render the literal "No matches."
func (s *Server) handleSearchFragment(w http.ResponseWriter, r *http.Request) {
	view := s.runSearch(r.URL.Query().Get("q"))
	s.render(w, "results", view)
}

// handleCitatorPage serves GET /citator: every case in citation order, or
// "No cases yet." when the index is empty or failed to load.
func (s *Server) handleCitatorPage(w http.ResponseWriter, r *http.Request) {
	sorted := citator.Sorted(s.snap.Cases())
	view := citatorView{Court: reporter.CourtName, Cases: make([]caseRow, 0, len(sorted))}
	for _, c := range sorted {
		view.Cases = append(view.Cases, s.row(c))
	}
	s.render(w, "citator", view)
}

// handleAPISearch serves GET /api/search?q= with the same filter semantics
// as the pages.
func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("q")
	start := time.Now()
	res := search.Filter(s.snap.Cases(), rawQuery)
	if s.metrics != nil {
		s.metrics.ObserveSearch(stateLabel(res.State), res.Truncated, time.Since(start).Seconds())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query": rawQuery,
		"state": stateLabel(res.State),
		"count": len(res.Cases),
		"cases": res.Cases,
	})
}

// handleAPICases serves the current snapshot in source order.
func (s *Server) handleAPICases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snap.Cases())
}

// handleRefresh reloads the index wholesale. The snapshot is swapped even on
// failure (to the empty fallback), so the views keep their degrade-to-empty
// behavior; the operator still gets the error here.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	err := s.snap.Load(ctx)
	if s.metrics != nil {
		s.metrics.ObserveIndexLoad(err, len(s.snap.Cases()))
	}
	if err != nil {
		s.log.Warn("refresh failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cases":     len(s.snap.Cases()),
		"loaded_at": s.snap.LoadedAt().Format(time.RFC3339),
	})
}

// handleHealth reports liveness and snapshot freshness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"ok":    true,
		"time":  time.Now().Format(time.RFC3339),
		"cases": len(s.snap.Cases()),
	}
	if t := s.snap.LoadedAt(); !t.IsZero() {
		out["loaded_at"] = t.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("render failed", zap.String("template", name), zap.Error(err))
	}
}

// writeJSON encodes the response as JSON with status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
