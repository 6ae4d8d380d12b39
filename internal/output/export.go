package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
)

// ExportRow is one evaluated program in an export
type ExportRow struct {
	ProfileID   string  `json:"profile_id,omitempty"`
	ProgramID   string  `json:"program_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Priority    int     `json:"priority"`
	Status      string  `json:"status"`
	Confidence  float64 `json:"confidence"`
	Amount      float64 `json:"amount"`
	Reason      string  `json:"reason"`
	MissingData string  `json:"missing_data"`
}

// ExportRows flattens results for export
func ExportRows(profileID string, results []eligibility.ProgramResult) []ExportRow {
	rows := make([]ExportRow, len(results))
	for i, r := range results {
		rows[i] = ExportRow{
			ProfileID:   profileID,
			ProgramID:   r.ID,
			Title:       r.Title,
			Category:    string(r.Category),
			Priority:    r.Priority,
			Status:      string(r.Verdict.Eligible),
			Confidence:  r.Verdict.Confidence,
			Amount:      r.Verdict.Amount,
			Reason:      r.Verdict.Reason,
			MissingData: strings.Join(r.Verdict.MissingData, "; "),
		}
	}
	return rows
}

var exportHeader = []string{
	"profile_id", "program_id", "title", "category", "priority",
	"status", "confidence", "amount", "reason", "missing_data",
}

// CSVTo writes rows as CSV with a header line
func CSVTo(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ProfileID,
			row.ProgramID,
			row.Title,
			row.Category,
			strconv.Itoa(row.Priority),
			row.Status,
			strconv.FormatFloat(row.Confidence, 'f', 2, 64),
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.Reason,
			row.MissingData,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
