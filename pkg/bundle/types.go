// Package bundle selects source files from a directory, orders them and
// concatenates them into a single output file.
package bundle

import (
	"strings"

	"codebundle/pkg/ignore"
)

// SortMode controls the order in which files are concatenated.
type SortMode string

const (
	SortByName SortMode = "name" // Lexicographic by file name.
	SortByType SortMode = "type" // Lexicographic by extension; ties keep input order.
)

// ParseSortMode maps "type" to SortByType and everything else to SortByName.
func ParseSortMode(s string) SortMode {
	if strings.TrimSpace(s) == string(SortByType) {
		return SortByType
	}
	return SortByName
}

// Options holds everything one bundle invocation needs. It is built once
// from the command line and passed by value.
type Options struct {
	Dir              string         // Directory whose direct entries are bundled.
	Output           string         // Destination file, truncated on write.
	Language         string         // Language token, resolved through the language registry.
	IncludeNote      bool           // Emit a "// Source:" line per file before the bodies.
	Sort             SortMode       // Concatenation order.
	RemoveEmptyLines bool           // Drop lines that are empty or whitespace only.
	Author           string         // Optional trailing "// Author:" line.
	Markers          ignore.Matcher // Build-artifact exclusion, applied to the full candidate path.
	Patterns         ignore.Matcher // Extra exclusions, applied to the name relative to Dir.
}

// Report summarizes a completed write.
type Report struct {
	Output     string // Absolute path of the bundle.
	Files      int    // Files whose contents were copied.
	Lines      int    // Lines written, notes and author included.
	FileErrors error  // Per-file read failures, combined with multierr. Nil when none.
}
