package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/addonscope/addonscope/pkg/catalog"
	"github.com/addonscope/addonscope/pkg/fetch"
)

// Runner executes the analysis pipeline. It is stateless between runs and
// safe to reuse for independent requests; each Execute call performs its own
// fetch, so concurrent calls only share the overwritten cache file
// (last-writer-wins).
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a Runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger}
}

// Execute runs fetch → parse → summarize for one catalog request.
// Options are validated and defaulted before use. Errors from the fetch and
// parse stages abort the run; summarize never fails.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	path, err := fetch.New(opts.Timeout).Fetch(ctx, opts.URL, opts.CachePath)
	if err != nil {
		return nil, err
	}
	result.CatalogPath = path
	result.Stats.FetchTime = time.Since(start)
	r.logger.Debug("fetched catalog", "url", opts.URL, "path", path, "took", result.Stats.FetchTime.Round(time.Millisecond))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	result.Stats.Bytes = len(data)

	start = time.Now()
	addons, err := catalog.Parse(string(data))
	if err != nil {
		return nil, err
	}
	result.Addons = addons
	result.Stats.ParseTime = time.Since(start)
	r.logger.Debug("parsed catalog", "addons", len(addons), "took", result.Stats.ParseTime.Round(time.Millisecond))

	start = time.Now()
	result.Summary = catalog.Summarize(addons)
	result.Stats.AnalyzeTime = time.Since(start)
	r.logger.Debug("summarized catalog", "groups", len(result.Summary.Latest), "took", result.Stats.AnalyzeTime.Round(time.Millisecond))

	return result, nil
}
