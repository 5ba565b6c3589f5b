// Package pipeline provides the core analysis pipeline for addonscope.
//
// This package implements the complete fetch → parse → summarize sequence
// shared by the CLI report and the web dashboard. Centralizing it ensures
// both surfaces produce identical statistics for the same catalog.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: download the catalog XML to the flat cache file
//  2. Parse: translate the XML into Addon records
//  3. Summarize: compute the deterministic catalog summary
//
// Each run is one-shot, sequential, and stateless apart from the cached XML
// file, which is simply overwritten on every fetch.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{URL: catalogURL}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/addonscope/addonscope/pkg/catalog"
)

const (
	// DefaultURL is the production catalog location.
	DefaultURL = "https://ftp.hp.com/pub/tcimages/EasyUpdate/Images/addoncatalog.xml"

	// DefaultCachePath is where the fetched XML is stored between runs.
	DefaultCachePath = ".cache/addon_catalog.xml"
)

// Options configures one pipeline run.
type Options struct {
	// URL is the catalog source: an HTTP(S) URL or a local file path.
	URL string `json:"url"`

	// CachePath is the destination for the fetched XML.
	CachePath string `json:"cache_path,omitempty"`

	// Timeout bounds the fetch stage. Zero means fetch.DefaultTimeout.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// ValidateAndSetDefaults fills in unset options and rejects unusable ones.
func (o *Options) ValidateAndSetDefaults() error {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.CachePath == "" {
		o.CachePath = DefaultCachePath
	}
	if o.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %v", o.Timeout)
	}
	if strings.Contains(o.URL, "://") {
		u, err := url.Parse(o.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid catalog URL: %q", o.URL)
		}
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Addons are the parsed catalog entries in document order.
	Addons []catalog.Addon

	// Summary is the computed catalog summary.
	Summary catalog.Summary

	// CatalogPath is where the fetched XML was written.
	CatalogPath string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FetchTime   time.Duration
	ParseTime   time.Duration
	AnalyzeTime time.Duration
	Bytes       int
}
