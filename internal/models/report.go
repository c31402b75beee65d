package models

import "time"

// DefaultMetrics is the metrics list pre-filled into a fresh options record.
const DefaultMetrics = "views,estimatedMinutesWatched,averageViewDuration,likes"

// ReportOptions holds the four user-entered parameters for a single
// analytics query. Dates use YYYY-MM-DD form; Metrics is a comma-separated
// list passed through to the API unvalidated.
type ReportOptions struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Metrics   string `json:"metrics"`
	VideoID   string `json:"video_id"`
}

// DefaultReportOptions returns the seed options for a fresh session:
// both dates set to the current day, the default metrics list, no video.
func DefaultReportOptions(now time.Time) ReportOptions {
	day := now.Format("2006-01-02")
	return ReportOptions{
		StartDate: day,
		EndDate:   day,
		Metrics:   DefaultMetrics,
	}
}

// ValidationResult is the outcome of validating a ReportOptions record.
// Message is empty when Valid is true; otherwise it carries one line per
// failed field.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ColumnHeader describes one column of an analytics report.
type ColumnHeader struct {
	Name       string `json:"name"`
	ColumnType string `json:"column_type"`
	DataType   string `json:"data_type"`
}

// AnalyticsReport is a decoded query response: ordered column headers plus
// a row matrix of numeric cells. Every row must have exactly one cell per
// column header; the analytics client enforces this when decoding.
type AnalyticsReport struct {
	ColumnHeaders []ColumnHeader `json:"column_headers"`
	Rows          [][]float64    `json:"rows"`
}
