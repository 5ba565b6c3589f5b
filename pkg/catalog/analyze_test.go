package catalog

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testAddon(desc, version string, released *time.Time) Addon {
	return Addon{
		ID:           desc + "-" + version,
		Description:  desc,
		Version:      version,
		ReleaseDate:  released,
		Platforms:    []string{"mt440"},
		OSVersions:   []string{"Win11-64"},
		OSTypes:      []string{"Windows"},
		Architecture: "x64",
		Files:        []FileEntry{},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 {
		t.Errorf("Total = %d, want 0", s.Total)
	}
	if len(s.Platforms) != 0 || len(s.OSTypes) != 0 || len(s.Architectures) != 0 {
		t.Errorf("distinct sets should be empty: %+v", s)
	}
	if len(s.Latest) != 0 {
		t.Errorf("Latest should be empty, got %v", s.Latest)
	}
}

func TestSummarizeCountsAndSets(t *testing.T) {
	a := testAddon("Example", "1.0.0", date(2025, 1, 1))
	a.Platforms = []string{"mt440"}
	b := testAddon("Example", "1.1.0", date(2025, 2, 1))
	b.Platforms = []string{"t655"}

	s := Summarize([]Addon{a, b})
	if s.Total != 2 {
		t.Errorf("Total = %d, want 2", s.Total)
	}
	if !reflect.DeepEqual(s.Platforms, []string{"mt440", "t655"}) {
		t.Errorf("Platforms = %v", s.Platforms)
	}
	if !reflect.DeepEqual(s.OSTypes, []string{"Windows"}) {
		t.Errorf("OSTypes = %v", s.OSTypes)
	}
	if !reflect.DeepEqual(s.Architectures, []string{"x64"}) {
		t.Errorf("Architectures = %v", s.Architectures)
	}
	if s.OSTypeCounts["Windows"] != 2 {
		t.Errorf("OSTypeCounts = %v", s.OSTypeCounts)
	}
	if s.YearCounts["2025"] != 2 {
		t.Errorf("YearCounts = %v", s.YearCounts)
	}
	if len(s.Latest) != 1 || s.Latest[0].Addon.Version != "1.1.0" {
		t.Errorf("Latest = %v, want single Example@1.1.0", s.Latest)
	}
}

func TestSummarizeExcludesEmptyValuesFromSets(t *testing.T) {
	a := Addon{ID: "a-1", Description: "A", Version: "1.0"}
	s := Summarize([]Addon{a})
	if s.Total != 1 {
		t.Errorf("Total = %d, addon with empty fields still counts", s.Total)
	}
	if len(s.Platforms) != 0 || len(s.Architectures) != 0 {
		t.Errorf("empty values must not appear in distinct sets: %+v", s)
	}
}

func TestSummarizeLatestKeysMatchEntries(t *testing.T) {
	addons := []Addon{
		testAddon("Alpha", "1.0", date(2024, 3, 1)),
		testAddon("Alpha", "2.0", date(2024, 9, 1)),
		testAddon("Beta", "0.1", nil),
	}
	s := Summarize(addons)
	if len(s.Latest) != 2 {
		t.Fatalf("Latest = %v, want 2 groups", s.Latest)
	}
	for _, entry := range s.Latest {
		if entry.Addon.GroupKey() != entry.Key {
			t.Errorf("entry key %q does not match addon group key %q", entry.Key, entry.Addon.GroupKey())
		}
	}
}

func TestSummarizeDatedBeatsUndated(t *testing.T) {
	dated := testAddon("Example", "0.9.0", date(2023, 1, 1))
	undated := testAddon("Example", "9.9.9", nil)

	s := Summarize([]Addon{undated, dated})
	if got := s.Latest[0].Addon.Version; got != "0.9.0" {
		t.Errorf("dated release should win over undated, got %q", got)
	}
}

func TestSummarizeUndatedGroupFallsBackToVersion(t *testing.T) {
	a := testAddon("Example", "1.10.0", nil)
	b := testAddon("Example", "1.9.0", nil)

	s := Summarize([]Addon{a, b})
	// Plain string ordering: "1.9.0" > "1.10.0".
	if got := s.Latest[0].Addon.Version; got != "1.9.0" {
		t.Errorf("version fallback picked %q, want lexicographically greatest", got)
	}
}

func TestSummarizeTieBreakIsOrderIndependent(t *testing.T) {
	a := testAddon("Example", "1.0.0-a", date(2025, 6, 1))
	b := testAddon("Example", "1.0.0-b", date(2025, 6, 1))

	forward := Summarize([]Addon{a, b})
	reversed := Summarize([]Addon{b, a})

	if forward.Latest[0].Addon.Version != "1.0.0-b" {
		t.Errorf("tie-break picked %q, want greater version", forward.Latest[0].Addon.Version)
	}
	if !reflect.DeepEqual(forward, reversed) {
		t.Error("summary must not depend on input order")
	}
}

func TestSummarizeEmptyDescriptionGroupsByID(t *testing.T) {
	a := Addon{ID: "anon-1.0", Version: "1.0"}
	b := Addon{ID: "other-2.0", Version: "2.0"}

	s := Summarize([]Addon{a, b})
	if len(s.Latest) != 2 {
		t.Errorf("description-less addons must group by ID, got %v", s.Latest)
	}
}

func TestSummarizeRoundTrip(t *testing.T) {
	// sampleXML maps exactly to this hand-built list.
	addons := []Addon{
		{
			ID:             "AmazonWorkSpacesClient-5.27.1",
			Description:    "Amazon WorkSpaces Client",
			Version:        "5.27.1",
			ReleaseDate:    date(2025, 5, 19),
			Platforms:      []string{"mt440", "t655"},
			OSVersions:     []string{"Win11-64"},
			OSTypes:        []string{"Windows"},
			Architecture:   "x64",
			InstallCommand: "msiexec /i AmazonWorkSpacesClient-5.27.1.msi ALLUSERS=1",
			Files: []FileEntry{
				{Kind: "package", Path: "../AddOns/Win64/AmazonWorkSpacesClient-5.27.1.msi", Size: 437948416},
				{Kind: "md5", Path: "../AddOns/Win64/AmazonWorkSpacesClient-5.27.1.md5", Size: 74},
			},
		},
		{
			ID:           "AVDWindows365Client-1.2.6353",
			Description:  "Remote Desktop Connection",
			Version:      "1.2.6353",
			ReleaseDate:  date(2025, 8, 20),
			Platforms:    []string{"mt440"},
			OSVersions:   []string{"Win11-64"},
			OSTypes:      []string{"Windows"},
			Architecture: "x64",
			Files: []FileEntry{
				{Kind: "package", Path: "../AddOns/Win64/AVDWindows365Client-1.2.6353.msi", Size: 33603584},
			},
		},
	}

	parsed, err := Parse(sampleXML)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual(Summarize(parsed), Summarize(addons)) {
		t.Error("summarize(parse(xml)) differs from summarize(addons) for matching fixture")
	}
}
