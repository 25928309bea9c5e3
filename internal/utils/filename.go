package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)
	// Whitespace runs, including newlines and tabs
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// maxFilenameLen leaves room for an extension under the usual 255 byte limit.
const maxFilenameLen = 200

// SanitizeFilename turns an arbitrary identifier into a single safe path
// component. Separators and reserved characters are removed, whitespace is
// collapsed to a dash, and leading dots are stripped so the result can never
// name a parent directory or a hidden file.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = whitespaceRuns.ReplaceAllString(name, "-")
	name = strings.TrimLeft(name, ".")

	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}

	if name == "" {
		name = "unnamed"
	}

	return name
}
