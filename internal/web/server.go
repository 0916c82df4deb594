// Package web serves the reporter's search and citator pages plus the JSON
// API. Handlers stay thin: they read the current index snapshot, run the
// pure filter/sort cores, and render templates. Every record field goes
// through html/template escaping on its way into markup.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/krabzholder/mayflower-reporter/internal/index"
	"github.com/krabzholder/mayflower-reporter/internal/metrics"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Server owns the HTTP surface and its dependencies.
type Server struct {
	snap     *index.Snapshot
	siteBase string
	log      *zap.Logger
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	tmpl     *template.Template
}

// New builds a Server around the shared index snapshot. siteBase is the
// published site's base URL, used to resolve the relative case paths in the
// index into absolute links.
func New(snap *index.Snapshot, siteBase string, log *zap.Logger, m *metrics.Metrics, reg *prometheus.Registry) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		snap:     snap,
		siteBase: strings.TrimRight(siteBase, "/"),
		log:      log,
		metrics:  m,
		registry: reg,
		tmpl:     tmpl,
	}, nil
}

// Router wires all routes with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleSearchPage)
	r.Get("/search/results", s.handleSearchFragment)
	r.Get("/citator", s.handleCitatorPage)

	r.Get("/api/search", s.handleAPISearch)
	r.Get("/api/cases.json", s.handleAPICases)
	r.Post("/api/refresh", s.handleRefresh)
	r.Get("/api/health", s.handleHealth)

	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// caseURL resolves a record's relative path against the published site.
func (s *Server) caseURL(path string) string {
	return s.siteBase + "/" + strings.TrimLeft(path, "/")
}
