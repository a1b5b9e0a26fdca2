// Package interchange implements the marker file formats: the CSV marker list
// (import/export), the tab-separated timecode export for the video editor, and
// the category settings file.
package interchange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cuemark/internal/markers"
	"cuemark/internal/models"
)

// CSVHeader is the fixed four-column header of the marker CSV format.
const CSVHeader = "timestamp,context,type,status"

// LineError reports a rejected import line. Line numbers are file lines, so
// the header is line 1 and the first data row is line 2.
type LineError struct {
	Line   int
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func lineErrorf(line int, format string, args ...interface{}) *LineError {
	return &LineError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// quoteContext wraps the context field in double quotes, doubling embedded
// quotes. Context is the only quoted column.
func quoteContext(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// unquoteContext strips a wrapping quote pair and un-doubles internal quotes.
// Unquoted input is returned as-is.
func unquoteContext(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}

func formatTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', -1, 64)
}

// ExportMarkersCSV serializes markers in their current list order.
func ExportMarkersCSV(ms []models.Marker) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, m := range ms {
		b.WriteString(formatTimestamp(m.Timestamp))
		b.WriteByte(',')
		b.WriteString(quoteContext(m.Context))
		b.WriteByte(',')
		b.WriteString(m.Type)
		b.WriteByte(',')
		b.WriteString(string(m.Status))
		b.WriteByte('\n')
	}
	return b.String()
}

// ImportMarkersCSV parses a marker CSV against the current category set. The
// whole import fails on the first invalid line; the caller replaces the
// project's marker collection atomically with the result, which is sorted by
// timestamp ascending. Returned markers carry freshly generated identifiers.
//
// Column reassembly is deliberately lenient: the first field is the timestamp,
// the last two are type and status, and everything between is rejoined with
// commas as the context. This tolerates unquoted commas inside context at the
// cost of ambiguity with the type boundary.
func ImportMarkersCSV(data string, categories []models.Category) ([]models.Marker, error) {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	validNames := models.CategoryNames(categories)
	out := []models.Marker{}

	for i, line := range lines {
		fileLine := i + 2 // 1-based, plus the header line
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			return nil, lineErrorf(fileLine, "expected at least 4 columns, got %d", len(parts))
		}

		tsField := strings.TrimSpace(parts[0])
		statusField := strings.TrimSpace(parts[len(parts)-1])
		typeField := strings.TrimSpace(parts[len(parts)-2])
		context := unquoteContext(strings.Join(parts[1:len(parts)-2], ","))

		ts, err := strconv.ParseFloat(tsField, 64)
		if err != nil {
			return nil, lineErrorf(fileLine, "invalid timestamp %q", tsField)
		}

		if _, ok := models.FindCategory(categories, typeField); !ok {
			return nil, lineErrorf(fileLine, "unknown marker type %q (valid types: %s)",
				typeField, strings.Join(validNames, ", "))
		}

		status, err := models.ParseStatus(statusField)
		if err != nil {
			return nil, lineErrorf(fileLine, "%v", err)
		}

		out = append(out, models.Marker{
			ID:        uuid.New().String(),
			Timestamp: ts,
			Context:   context,
			Type:      typeField,
			Status:    status,
		})
	}

	return markers.SortByTimestamp(out), nil
}
