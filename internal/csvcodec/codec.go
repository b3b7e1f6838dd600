// Package csvcodec converts between the data file text and records.
//
// The file has a fixed three-column layout (date, identity, value) and a
// header line. Decoding is intentionally lossy: rows with fewer than three
// fields are dropped and unparsable values become NaN. Neither is an error,
// the file is hand-editable and one bad line must not hide the rest.
package csvcodec

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/iudanet/weightkeeper/internal/models"
)

// Header is the first line written by Encode.
const Header = "Date,Name,Weight"

// headerMarker identifies a header line on decode (case-insensitive substring).
const headerMarker = "date"

const minFields = 3

// Decode parses file text into records in file order.
func Decode(text string) []models.Record {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	start := 0
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), headerMarker) {
		start = 1
	}

	records := make([]models.Record, 0, len(lines)-start)
	for _, line := range lines[start:] {
		parts := strings.Split(line, ",")
		if len(parts) < minFields {
			continue
		}
		records = append(records, models.Record{
			Date:     strings.TrimSpace(parts[0]),
			Identity: strings.TrimSpace(parts[1]),
			Value:    parseValue(parts[2]),
		})
	}

	return records
}

// Encode renders records sorted by date. The input slice is not modified.
func Encode(records []models.Record) string {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.Record) int {
		return strings.Compare(a.Date, b.Date)
	})

	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, r := range sorted {
		b.WriteString(r.Date)
		b.WriteByte(',')
		b.WriteString(r.Identity)
		b.WriteByte(',')
		b.WriteString(FormatValue(r.Value))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatValue formats v in its shortest round-trip decimal form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseValue(field string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
