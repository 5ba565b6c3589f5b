package catalog

import "time"

// FileEntry represents one file listed inside an addon's <files> element.
// Kind is the element tag (e.g. "package", "md5"), Path the element text,
// and Size the byte count from the size attribute (0 when absent).
type FileEntry struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Addon represents a single <addon> entry in the catalog.
// Values are populated once by Parse and treated as read-only afterward.
// Slice fields are always non-nil; missing text fields are empty strings.
type Addon struct {
	ID             string      `json:"id"`
	Description    string      `json:"description"`
	Version        string      `json:"version"`
	ReleaseDate    *time.Time  `json:"release_date,omitempty"`
	ExpirationDate *time.Time  `json:"expiration_date,omitempty"`
	Platforms      []string    `json:"platforms"`
	OSVersions     []string    `json:"os_versions"`
	OSTypes        []string    `json:"os_types"`
	Architecture   string      `json:"architecture,omitempty"`
	InstallCommand string      `json:"install_command,omitempty"`
	Files          []FileEntry `json:"files"`
}

// GroupKey returns the key used to group historical versions of the same
// addon: the description, or the ID when the description is empty.
func (a Addon) GroupKey() string {
	if a.Description != "" {
		return a.Description
	}
	return a.ID
}
