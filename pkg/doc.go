// Package pkg provides the core libraries for addonscope catalog analysis.
//
// # Overview
//
// Addonscope turns a vendor add-on catalog (an XML document listing
// downloadable packages and their metadata) into descriptive statistics.
// The pkg directory is organized by pipeline stage:
//
//  1. [fetch] - Retrieve the catalog XML from a URL or local file into the
//     flat cache file
//  2. [catalog] - Parse the XML into Addon records and summarize them
//     (totals, distinct platforms/OS types/architectures, latest version per
//     add-on)
//  3. [report] - Render a summary as text, JSON, or chart datasets
//  4. [pipeline] - Orchestration (fetch → parse → summarize) shared by the
//     CLI and the web dashboard
//
// # Quick Start
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{URL: catalogURL})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(report.Text(result.Summary, result.CatalogPath))
//
// [fetch]: https://pkg.go.dev/github.com/addonscope/addonscope/pkg/fetch
// [catalog]: https://pkg.go.dev/github.com/addonscope/addonscope/pkg/catalog
// [report]: https://pkg.go.dev/github.com/addonscope/addonscope/pkg/report
// [pipeline]: https://pkg.go.dev/github.com/addonscope/addonscope/pkg/pipeline
package pkg
