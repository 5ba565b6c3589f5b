// Package report renders catalog summaries for the CLI and the dashboard.
//
// All machine-readable output is marshaled from tagged structs, never
// assembled by string concatenation, so every payload is well-formed by
// construction.
package report

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/addonscope/addonscope/pkg/catalog"
)

// dateLayout is the ISO date format used in rendered output.
const dateLayout = "2006-01-02"

// JSONOption configures JSON rendering via [JSON].
type JSONOption func(*jsonDocument)

// WithCatalogPath records where the fetched XML was cached.
func WithCatalogPath(path string) JSONOption {
	return func(d *jsonDocument) { d.CatalogPath = path }
}

// WithSourceURL records the catalog source URL.
func WithSourceURL(url string) JSONOption {
	return func(d *jsonDocument) { d.URL = url }
}

type jsonDocument struct {
	Total         int          `json:"total"`
	Platforms     []string     `json:"platforms"`
	OSTypes       []string     `json:"os_types"`
	Architectures []string     `json:"architectures"`
	Latest        []jsonLatest `json:"latest"`
	CatalogPath   string       `json:"catalog_path,omitempty"`
	URL           string       `json:"url,omitempty"`
}

type jsonLatest struct {
	Description  string `json:"description"`
	Version      string `json:"version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	ReleaseDate  string `json:"release_date"`
}

// JSON renders a summary as an indented JSON document. List-valued addon
// fields are joined with ", "; absent dates render as empty strings.
func JSON(s catalog.Summary, opts ...JSONOption) ([]byte, error) {
	doc := jsonDocument{
		Total:         s.Total,
		Platforms:     emptyIfNil(s.Platforms),
		OSTypes:       emptyIfNil(s.OSTypes),
		Architectures: emptyIfNil(s.Architectures),
		Latest:        make([]jsonLatest, 0, len(s.Latest)),
	}
	for _, entry := range s.Latest {
		doc.Latest = append(doc.Latest, jsonLatest{
			Description:  entry.Key,
			Version:      entry.Addon.Version,
			OS:           strings.Join(entry.Addon.OSVersions, ", "),
			Architecture: entry.Addon.Architecture,
			ReleaseDate:  formatDate(entry.Addon.ReleaseDate),
		})
	}
	for _, opt := range opts {
		opt(&doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
