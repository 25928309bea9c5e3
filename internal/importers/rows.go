package importers

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawRow is one unvalidated record extracted from an uploaded file.
// CSV rows only carry string values; JSON rows may carry any decoded value.
type RawRow map[string]any

// Format identifies the encoding of an uploaded file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// EntityType identifies which kind of record a batch contains.
type EntityType string

const (
	EntityMember  EntityType = "member"
	EntityProject EntityType = "project"
	EntityEvent   EntityType = "event"
)

// ParseFormat converts a user supplied format hint into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "text/csv":
		return FormatCSV, nil
	case "json", "application/json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat determines the file format from the filename extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: file %q has no extension", ErrUnsupportedFormat, filename)
	}
	return ParseFormat(ext)
}

// ParseEntityType accepts singular or plural entity names.
func ParseEntityType(s string) (EntityType, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "member":
		return EntityMember, nil
	case "project":
		return EntityProject, nil
	case "event":
		return EntityEvent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEntity, s)
	}
}
