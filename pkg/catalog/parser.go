// Package catalog implements the parse-and-aggregate core for vendor add-on
// catalogs: XML-to-model translation plus a deterministic summarization step
// shared by the CLI report and the web dashboard.
//
// The catalog is an XML document with an <AddOns> root containing repeated
// <addon> elements. Each addon carries identifying attributes (ID,
// Description, Version, AvailableDate) and child elements for supported
// platforms, operating systems, architecture, and file listings.
//
// Parsing is tolerant: a missing or empty field degrades to its neutral
// default (empty string, empty slice) instead of failing the document. Only
// XML that is not well-formed is an error.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// ErrMalformedXML is returned when the catalog document is not well-formed
// XML. Missing or empty fields within a well-formed document are never an
// error.
var ErrMalformedXML = errors.New("malformed catalog XML")

// dateLayouts are the date formats the catalog uses for AvailableDate and
// ExpirationDate attributes, tried in order.
var dateLayouts = []string{"1/2/2006", "1/2/06"}

// Parse converts catalog XML text into Addon records in document order.
// Fields absent from an addon element are filled with neutral defaults
// rather than failing the parse; an unrecognized date value is treated as
// absent. Parse returns an error wrapping ErrMalformedXML only when the
// document itself cannot be parsed.
func Parse(xmlText string) ([]Addon, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
	}

	addons := make([]Addon, 0, len(root.ChildElements()))
	for _, elem := range root.SelectElements("addon") {
		osVersions, osTypes := collectOSFields(elem)
		addons = append(addons, Addon{
			ID:             cleanText(elem.SelectAttrValue("ID", "")),
			Description:    cleanText(elem.SelectAttrValue("Description", "")),
			Version:        cleanText(elem.SelectAttrValue("Version", "")),
			ReleaseDate:    parseDate(elem.SelectAttrValue("AvailableDate", "")),
			ExpirationDate: parseDate(elem.SelectAttrValue("ExpirationDate", "")),
			Platforms:      collectPlatformIDs(elem),
			OSVersions:     osVersions,
			OSTypes:        osTypes,
			Architecture:   childText(elem, "architecture"),
			InstallCommand: childText(elem, "install_command"),
			Files:          collectFiles(elem),
		})
	}
	return addons, nil
}

// collectPlatformIDs gathers the platform identifiers of one addon element.
// The ID attribute wins; element text is the fallback. Empty entries are
// skipped.
func collectPlatformIDs(elem *etree.Element) []string {
	platforms := []string{}
	for _, p := range elem.FindElements("SupportedPlatforms/platform") {
		id := cleanText(p.SelectAttrValue("ID", ""))
		if id == "" {
			id = cleanText(p.Text())
		}
		if id != "" {
			platforms = append(platforms, id)
		}
	}
	return platforms
}

// collectOSFields gathers OS version and type lists from the OSes element.
func collectOSFields(elem *etree.Element) (versions, types []string) {
	versions, types = []string{}, []string{}
	for _, os := range elem.FindElements("OSes/OS") {
		version := cleanText(os.SelectAttrValue("Version", ""))
		if version == "" {
			version = cleanText(os.Text())
		}
		if version != "" {
			versions = append(versions, version)
		}
		if osType := cleanText(os.SelectAttrValue("Type", "")); osType != "" {
			types = append(types, osType)
		}
	}
	return versions, types
}

// collectFiles gathers the file listing of one addon element. Every child of
// <files> is an entry; its tag names the kind, its text the path, and its
// size attribute the byte count.
func collectFiles(elem *etree.Element) []FileEntry {
	entries := []FileEntry{}
	files := elem.SelectElement("files")
	if files == nil {
		return entries
	}
	for _, child := range files.ChildElements() {
		entries = append(entries, FileEntry{
			Kind: child.Tag,
			Path: cleanText(child.Text()),
			Size: parseSize(child.SelectAttrValue("size", "")),
		})
	}
	return entries
}

// childText returns the trimmed text of a direct child element, or "" when
// the child is absent.
func childText(elem *etree.Element, tag string) string {
	child := elem.SelectElement(tag)
	if child == nil {
		return ""
	}
	return cleanText(child.Text())
}

// cleanText trims surrounding whitespace and collapses internal runs to
// single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseDate parses a catalog date attribute. Empty or unrecognized values
// yield nil rather than an error.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// parseSize parses a size attribute, defaulting to 0 for absent or
// non-numeric values.
func parseSize(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
