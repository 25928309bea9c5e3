package importers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ParseDelimitedText parses comma separated text into rows keyed by the
// lower-cased, trimmed header tokens. Each line is one record: a field may
// be quoted to hold a comma, but never spans lines.
//
// Blank input yields no rows and no error. A header without any data line
// yields ErrEmptyInput. Lines whose field count differs from the header, or
// whose quoting is broken, are dropped without error.
func ParseDelimitedText(content string) ([]RawRow, error) {
	rows, _, err := parseDelimitedText(content)
	return rows, err
}

// parseDelimitedText is ParseDelimitedText that also reports how many data
// lines were dropped.
func parseDelimitedText(content string) ([]RawRow, int, error) {
	content = strings.TrimPrefix(content, utf8BOM)

	var header []string
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == nil {
			header = splitHeader(line)
			continue
		}
		lines = append(lines, line)
	}

	if header == nil {
		return []RawRow{}, 0, nil
	}
	if len(lines) == 0 {
		return nil, 0, ErrEmptyInput
	}

	rows := make([]RawRow, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		fields, ok := splitLine(line)
		if !ok || len(fields) != len(header) {
			skipped++
			continue
		}
		row := make(RawRow, len(header))
		for i, h := range header {
			row[h] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// splitLine splits a single line on commas, honouring double quotes.
// It reports false when the quoting is unbalanced.
func splitLine(line string) ([]string, bool) {
	// The reader accepts a quote left open at end of input, so check the
	// balance first. Escaped quotes come in pairs.
	if strings.Count(line, `"`)%2 != 0 {
		return nil, false
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	record, err := reader.Read()
	if err != nil {
		return nil, false
	}
	return record, true
}

func splitHeader(line string) []string {
	fields, ok := splitLine(line)
	if !ok {
		fields = strings.Split(line, ",")
	}
	header := make([]string, len(fields))
	for i, h := range fields {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return header
}

// ParseJSONText decodes a JSON document into rows. An array yields one row
// per element and a single object yields a one-element slice. Array elements
// that are not objects become empty rows, which then fail validation.
func ParseJSONText(content string) ([]RawRow, error) {
	decoder := json.NewDecoder(strings.NewReader(strings.TrimPrefix(content, utf8BOM)))
	decoder.UseNumber()

	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, &MalformedJSONError{Err: err}
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, &MalformedJSONError{Err: err}
	}

	switch v := root.(type) {
	case []any:
		rows := make([]RawRow, 0, len(v))
		for _, element := range v {
			obj, _ := element.(map[string]any)
			if obj == nil {
				obj = map[string]any{}
			}
			rows = append(rows, RawRow(obj))
		}
		return rows, nil
	case map[string]any:
		return []RawRow{RawRow(v)}, nil
	default:
		return nil, ErrInvalidJSONRoot
	}
}

// parse dispatches content to the parser for format.
func parse(content string, format Format) ([]RawRow, int, error) {
	switch format {
	case FormatCSV:
		return parseDelimitedText(content)
	case FormatJSON:
		rows, err := ParseJSONText(content)
		return rows, 0, err
	default:
		return nil, 0, ErrUnsupportedFormat
	}
}

// SniffFormat guesses the format of content whose extension is unknown.
func SniffFormat(content []byte) Format {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(content, []byte(utf8BOM)))
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatCSV
}
