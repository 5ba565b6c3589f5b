package report

import (
	"encoding/json"
	"sort"

	"github.com/addonscope/addonscope/pkg/catalog"
)

// Dataset is one label/value series consumed by the dashboard's client-side
// chart rendering.
type Dataset struct {
	Labels []string `json:"labels"`
	Values []int   `json:"values"`
}

// ChartPayload carries the four dashboard chart series.
type ChartPayload struct {
	Platforms     Dataset `json:"platforms"`
	OSTypes       Dataset `json:"os_types"`
	Architectures Dataset `json:"architectures"`
	Years         Dataset `json:"years"`
}

// Charts builds the chart payload from a summary. Labels are sorted so the
// payload is deterministic for identical summaries.
func Charts(s catalog.Summary) ChartPayload {
	return ChartPayload{
		Platforms:     dataset(s.PlatformCounts),
		OSTypes:       dataset(s.OSTypeCounts),
		Architectures: dataset(s.ArchitectureCounts),
		Years:         dataset(s.YearCounts),
	}
}

// ChartsJSON marshals the chart payload for embedding in the dashboard page.
func ChartsJSON(s catalog.Summary) ([]byte, error) {
	return json.Marshal(Charts(s))
}

func dataset(counts map[string]int) Dataset {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]int, len(labels))
	for i, label := range labels {
		values[i] = counts[label]
	}
	return Dataset{Labels: labels, Values: values}
}
