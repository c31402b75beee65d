package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"report-pad/internal/models"
)

const dateLayout = "2006-01-02"

// Validate checks a submitted options record field by field. Every check
// runs so the caller gets one violation line per bad field, not just the
// first. The wording of each line is fixed; the notice shown to the user
// is built from these lines verbatim.
func Validate(opts models.ReportOptions) models.ValidationResult {
	var violations []string

	if !validDate(opts.StartDate) {
		violations = append(violations, "startDate not set correctly")
	}
	if !validDate(opts.EndDate) {
		violations = append(violations, "endDate not set correctly")
	}
	if strings.TrimSpace(opts.Metrics) == "" {
		violations = append(violations, "metrics not set correctly")
	}
	if strings.TrimSpace(opts.VideoID) == "" {
		violations = append(violations, "videoId not set correctly")
	}

	if len(violations) == 0 {
		return models.ValidationResult{Valid: true}
	}
	return models.ValidationResult{
		Valid:   false,
		Message: strings.TrimSpace(strings.Join(violations, "\n")),
	}
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ShapeError reports a row whose cell count does not match the number of
// column headers. Such a report is never partially formatted.
type ShapeError struct {
	Row     int
	Cells   int
	Columns int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("report row %d has %d cells for %d columns", e.Row, e.Cells, e.Columns)
}

// Format flattens a report into line-oriented text: one "name:: value"
// line per cell, rows in response order, columns in header order. The
// whole block is trimmed of trailing whitespace, so a zero-row report
// formats to the empty string.
func Format(rep *models.AnalyticsReport) (string, error) {
	var b strings.Builder
	for i, row := range rep.Rows {
		if len(row) != len(rep.ColumnHeaders) {
			return "", &ShapeError{Row: i, Cells: len(row), Columns: len(rep.ColumnHeaders)}
		}
		for j, cell := range row {
			b.WriteString(rep.ColumnHeaders[j].Name)
			b.WriteString(":: ")
			b.WriteString(strconv.FormatFloat(cell, 'f', -1, 64))
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), " \t\n"), nil
}
