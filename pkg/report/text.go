package report

import (
	"fmt"
	"strings"

	"github.com/addonscope/addonscope/pkg/catalog"
)

// Text renders the plain-text CLI report body. catalogPath may be empty when
// the source was not written to disk.
func Text(s catalog.Summary, catalogPath string) string {
	var b strings.Builder

	if catalogPath != "" {
		fmt.Fprintf(&b, "Catalog path: %s\n", catalogPath)
	}
	fmt.Fprintf(&b, "Total add-ons: %d\n", s.Total)
	fmt.Fprintf(&b, "Unique platforms: %s\n", joinOrNone(s.Platforms))
	fmt.Fprintf(&b, "Unique OS types: %s\n", joinOrNone(s.OSTypes))
	fmt.Fprintf(&b, "Unique architectures: %s\n", joinOrNone(s.Architectures))
	b.WriteString("Latest versions by description:\n")
	if len(s.Latest) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, entry := range s.Latest {
		fmt.Fprintf(&b, "  - %s: %s\n", entry.Key, entry.Addon.Version)
	}
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
