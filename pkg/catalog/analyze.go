package catalog

import (
	"sort"
	"strconv"
)

// Summary holds the descriptive statistics computed from a parsed catalog.
// It is produced fresh on every Summarize call and never mutated afterward.
type Summary struct {
	// Total is the number of addon entries in the input, including entries
	// whose categorical fields are empty.
	Total int

	// Sorted distinct non-empty values across all entries.
	Platforms     []string
	OSTypes       []string
	Architectures []string

	// Occurrence counts backing the dashboard charts.
	PlatformCounts     map[string]int
	OSTypeCounts       map[string]int
	ArchitectureCounts map[string]int

	// YearCounts maps release year ("2025") to the number of addons
	// released that year. Entries without a release date are not counted.
	YearCounts map[string]int

	// Latest holds the most recent addon per group key, ordered by key.
	Latest []LatestEntry
}

// LatestEntry is the winning addon for one description group.
type LatestEntry struct {
	Key   string
	Addon Addon
}

// Summarize computes a Summary from a sequence of addons. It is a pure
// function of its input: identical input always yields an identical summary,
// regardless of wall-clock time, and the latest-version selection does not
// depend on input order. An empty input produces a valid zero-metrics
// summary.
func Summarize(addons []Addon) Summary {
	platformCounts := map[string]int{}
	osTypeCounts := map[string]int{}
	archCounts := map[string]int{}
	yearCounts := map[string]int{}
	latest := map[string]Addon{}

	for _, addon := range addons {
		for _, p := range addon.Platforms {
			if p != "" {
				platformCounts[p]++
			}
		}
		for _, t := range addon.OSTypes {
			if t != "" {
				osTypeCounts[t]++
			}
		}
		if addon.Architecture != "" {
			archCounts[addon.Architecture]++
		}
		if addon.ReleaseDate != nil {
			yearCounts[strconv.Itoa(addon.ReleaseDate.Year())]++
		}

		key := addon.GroupKey()
		if current, ok := latest[key]; !ok || newer(addon, current) {
			latest[key] = addon
		}
	}

	entries := make([]LatestEntry, 0, len(latest))
	for key, addon := range latest {
		entries = append(entries, LatestEntry{Key: key, Addon: addon})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	return Summary{
		Total:              len(addons),
		Platforms:          sortedKeys(platformCounts),
		OSTypes:            sortedKeys(osTypeCounts),
		Architectures:      sortedKeys(archCounts),
		PlatformCounts:     platformCounts,
		OSTypeCounts:       osTypeCounts,
		ArchitectureCounts: archCounts,
		YearCounts:         yearCounts,
		Latest:             entries,
	}
}

// newer reports whether candidate should replace current as the latest
// release of a group. A later release date wins; a dated addon beats an
// undated one; equal dates (including both absent) fall back to the
// lexicographically greater version string.
func newer(candidate, current Addon) bool {
	cd, cu := candidate.ReleaseDate, current.ReleaseDate
	switch {
	case cd != nil && cu == nil:
		return true
	case cd == nil && cu != nil:
		return false
	case cd != nil && cu != nil && !cd.Equal(*cu):
		return cd.After(*cu)
	}
	return candidate.Version > current.Version
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
