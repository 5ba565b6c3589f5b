// Package web serves the catalog dashboard: an HTML page with summary
// metrics, four charts, and the latest-version table, plus a JSON API.
//
// Each request runs its own fetch → parse → summarize pipeline; the only
// shared state is the on-disk cached XML file, overwritten on every fetch.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/addonscope/addonscope/pkg/catalog"
	"github.com/addonscope/addonscope/pkg/pipeline"
	"github.com/addonscope/addonscope/pkg/report"
)

//go:embed templates/index.html
var templateFS embed.FS

// Pipeline abstracts the analysis pipeline so handlers can be tested with a
// stub runner.
type Pipeline interface {
	Execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	runner     Pipeline
	logger     *log.Logger
	defaultURL string
	cachePath  string
	timeout    time.Duration
	tmpl       *template.Template
}

// NewServer creates a dashboard server. defaultURL and cachePath may be
// empty to use the pipeline defaults; a nil logger falls back to
// log.Default().
func NewServer(runner Pipeline, logger *log.Logger, defaultURL, cachePath string, timeout time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if defaultURL == "" {
		defaultURL = pipeline.DefaultURL
	}
	return &Server{
		runner:     runner,
		logger:     logger,
		defaultURL: defaultURL,
		cachePath:  cachePath,
		timeout:    timeout,
		tmpl:       template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// Routes builds the dashboard router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.accessLog)
	r.Get("/", s.handleDashboard)
	r.Get("/api/summary", s.handleSummary)
	return r
}

// ListenAndServe serves the dashboard until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Routes()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("serving dashboard", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// accessLog logs one line per request with a generated request ID.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start).Round(time.Millisecond))
	})
}

// sourceURL resolves the catalog URL for a request: the ?url= query
// parameter when present, the configured default otherwise.
func (s *Server) sourceURL(r *http.Request) string {
	if u := strings.TrimSpace(r.URL.Query().Get("url")); u != "" {
		return u
	}
	return s.defaultURL
}

func (s *Server) run(r *http.Request) (*pipeline.Result, string, error) {
	url := s.sourceURL(r)
	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		URL:       url,
		CachePath: s.cachePath,
		Timeout:   s.timeout,
	})
	return result, url, err
}

// filterSet holds the latest-version table filters from the query string.
// An empty set matches everything; each parameter may repeat.
type filterSet struct {
	Platforms     []string
	OSTypes       []string
	Architectures []string
}

func filtersFromQuery(q url.Values) filterSet {
	return filterSet{
		Platforms:     nonEmpty(q["platform"]),
		OSTypes:       nonEmpty(q["os_type"]),
		Architectures: nonEmpty(q["architecture"]),
	}
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// matches reports whether an addon passes every active filter. The platform
// and OS type filters match when any of the addon's values is selected; the
// architecture filter compares the single architecture field.
func (f filterSet) matches(a catalog.Addon) bool {
	if len(f.Platforms) > 0 && !anySelected(a.Platforms, f.Platforms) {
		return false
	}
	if len(f.OSTypes) > 0 && !anySelected(a.OSTypes, f.OSTypes) {
		return false
	}
	if len(f.Architectures) > 0 && !slices.Contains(f.Architectures, a.Architecture) {
		return false
	}
	return true
}

func anySelected(values, selected []string) bool {
	for _, v := range values {
		if slices.Contains(selected, v) {
			return true
		}
	}
	return false
}

// filterOption is one entry of a filter <select>, marked when the request
// carried it.
type filterOption struct {
	Value    string
	Selected bool
}

func filterOptions(values, selected []string) []filterOption {
	opts := make([]filterOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, filterOption{Value: v, Selected: slices.Contains(selected, v)})
	}
	return opts
}

// tableRow is one rendered latest-version table row. Fields mirror the
// header columns one to one so the template cannot drop or shift a column.
type tableRow struct {
	Description  string
	Version      string
	OS           string
	Architecture string
	ReleaseDate  string
}

type pageData struct {
	URL                 string
	Error               string
	HasSummary          bool
	Total               int
	CatalogPath         string
	Platforms           []string
	OSTypes             []string
	Architectures       []string
	PlatformOptions     []filterOption
	OSTypeOptions       []filterOption
	ArchitectureOptions []filterOption
	Rows                []tableRow
	FilteredCount       int
	GroupCount          int
	ChartJSON           template.JS
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, url, err := s.run(r)
	filters := filtersFromQuery(r.URL.Query())

	data := pageData{URL: url, ChartJSON: template.JS("null")}
	if err != nil {
		data.Error = err.Error()
	} else {
		chartJSON, merr := report.ChartsJSON(result.Summary)
		if merr != nil {
			http.Error(w, merr.Error(), http.StatusInternalServerError)
			return
		}
		data.HasSummary = true
		data.Total = result.Summary.Total
		data.CatalogPath = result.CatalogPath
		data.Platforms = result.Summary.Platforms
		data.OSTypes = result.Summary.OSTypes
		data.Architectures = result.Summary.Architectures
		data.PlatformOptions = filterOptions(result.Summary.Platforms, filters.Platforms)
		data.OSTypeOptions = filterOptions(result.Summary.OSTypes, filters.OSTypes)
		data.ArchitectureOptions = filterOptions(result.Summary.Architectures, filters.Architectures)
		data.Rows = tableRows(result.Summary, filters)
		data.FilteredCount = len(data.Rows)
		data.GroupCount = len(result.Summary.Latest)
		data.ChartJSON = template.JS(chartJSON)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("render dashboard", "err", err)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result, url, err := s.run(r)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, err, url)
		return
	}

	body, err := report.JSON(result.Summary, report.WithCatalogPath(result.CatalogPath), report.WithSourceURL(url))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err, url)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func writeJSONError(w http.ResponseWriter, status int, err error, url string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error(), "url": url})
}

// tableRows flattens the latest-version entries passing the filters for the
// template. Every row has all five columns populated from the addon's own
// fields, with "—" as the placeholder for genuinely absent values.
func tableRows(s catalog.Summary, filters filterSet) []tableRow {
	rows := make([]tableRow, 0, len(s.Latest))
	for _, entry := range s.Latest {
		addon := entry.Addon
		if !filters.matches(addon) {
			continue
		}
		row := tableRow{
			Description:  entry.Key,
			Version:      orDash(addon.Version),
			OS:           orDash(strings.Join(addon.OSVersions, ", ")),
			Architecture: orDash(addon.Architecture),
			ReleaseDate:  "—",
		}
		if addon.ReleaseDate != nil {
			row.ReleaseDate = addon.ReleaseDate.Format("2006-01-02")
		}
		rows = append(rows, row)
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
