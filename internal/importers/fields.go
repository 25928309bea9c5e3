package importers

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	arraySeparators = regexp.MustCompile(`[,;]`)
	leadingInteger  = regexp.MustCompile(`^[+-]?\d+`)
)

// dateLayouts are tried in order when coercing a string into a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseArrayField coerces a list-like value into a string slice. Slices are
// returned as they are; strings are split on commas and semicolons with
// empty pieces dropped. Anything else yields an empty slice.
func ParseArrayField(v any) []string {
	switch value := v.(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			out = append(out, stringValue(item))
		}
		return out
	case string:
		out := []string{}
		for _, piece := range arraySeparators.Split(value, -1) {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, piece)
			}
		}
		return out
	default:
		return []string{}
	}
}

// ParseBooleanField interprets yes/no style strings, falling back to def for
// anything unrecognised.
func ParseBooleanField(v any, def bool) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "1", "on":
			return true
		case "false", "no", "0", "off":
			return false
		}
	}
	return def
}

// ParseDate coerces v into a date. Unparsable or missing values become
// now plus one day.
func ParseDate(v any, now time.Time) time.Time {
	switch value := v.(type) {
	case time.Time:
		if !value.IsZero() {
			return value
		}
	case string:
		value = strings.TrimSpace(value)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
	}
	return now.AddDate(0, 0, 1)
}

// ParseIntField parses a base-10 integer, reading leading digits the way a
// lenient form parser would ("40 seats" is 40). Falls back to def.
func ParseIntField(v any, def int) int {
	switch value := v.(type) {
	case int:
		return value
	case float64:
		return int(value)
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return int(n)
		}
		if f, err := value.Float64(); err == nil {
			return int(f)
		}
	case string:
		value = strings.TrimSpace(value)
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		if digits := leadingInteger.FindString(value); digits != "" {
			if n, err := strconv.Atoi(digits); err == nil {
				return n
			}
		}
	}
	return def
}

// stringValue renders a decoded scalar as trimmed text.
func stringValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case []any, []string:
		return strings.Join(ParseArrayField(value), ", ")
	default:
		return ""
	}
}

// isEmptyValue reports whether v should be skipped during alias lookup.
func isEmptyValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case []any:
		return len(value) == 0
	case []string:
		return len(value) == 0
	default:
		return false
	}
}
