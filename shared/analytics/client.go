package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	youtubeanalytics "google.golang.org/api/youtubeanalytics/v2"

	"report-pad/internal/models"
	"report-pad/shared/report"
)

// ownChannel selects the authenticated user's own channel.
const ownChannel = "channel==MINE"

// DeserializationError reports a query response that does not match the
// expected result-table shape. It is terminal for the run; nothing is
// formatted from a malformed response.
type DeserializationError struct {
	Reason string
}

func (e *DeserializationError) Error() string {
	return "malformed analytics response: " + e.Reason
}

// Client is the query collaborator. It builds a YouTube Analytics service
// per call from the token it is handed, so a replaced credential takes
// effect on the next query without any client-side state.
type Client struct{}

// Query runs a single report query for the video named in opts, scoped to
// the caller's own channel, and decodes the response into a report.
func (Client) Query(ctx context.Context, tok *oauth2.Token, opts models.ReportOptions) (*models.AnalyticsReport, error) {
	svc, err := youtubeanalytics.NewService(ctx,
		option.WithTokenSource(oauth2.StaticTokenSource(tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	resp, err := svc.Reports.Query().
		Ids(ownChannel).
		StartDate(opts.StartDate).
		EndDate(opts.EndDate).
		Metrics(opts.Metrics).
		Filters("video==" + opts.VideoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("analytics query failed: %w", err)
	}

	rep, err := decodeReport(resp)
	if err != nil {
		return nil, err
	}

	log.Printf("Query returned %d columns, %d rows for video %s",
		len(rep.ColumnHeaders), len(rep.Rows), opts.VideoID)
	return rep, nil
}

// decodeReport validates the raw response against the result-table shape
// the formatter depends on: named column headers and numeric rows whose
// length matches the header count.
func decodeReport(resp *youtubeanalytics.QueryResponse) (*models.AnalyticsReport, error) {
	if resp == nil {
		return nil, &DeserializationError{Reason: "empty response"}
	}

	rep := &models.AnalyticsReport{}
	for i, h := range resp.ColumnHeaders {
		if h == nil || h.Name == "" {
			return nil, &DeserializationError{Reason: fmt.Sprintf("column header %d has no name", i)}
		}
		rep.ColumnHeaders = append(rep.ColumnHeaders, models.ColumnHeader{
			Name:       h.Name,
			ColumnType: h.ColumnType,
			DataType:   h.DataType,
		})
	}

	for i, raw := range resp.Rows {
		if len(raw) != len(rep.ColumnHeaders) {
			return nil, &report.ShapeError{Row: i, Cells: len(raw), Columns: len(rep.ColumnHeaders)}
		}
		row := make([]float64, 0, len(raw))
		for j, cell := range raw {
			v, ok := numericCell(cell)
			if !ok {
				return nil, &DeserializationError{Reason: fmt.Sprintf("row %d cell %d is not numeric", i, j)}
			}
			row = append(row, v)
		}
		rep.Rows = append(rep.Rows, row)
	}

	return rep, nil
}

func numericCell(cell interface{}) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
