package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"
)

const listSeparator = "; "

// FlatHeader is the column order of a flattened report row. The spreadsheet
// store appends rows in the same order.
func FlatHeader() []string {
	var in Input
	header := make([]string, 0, 32)
	for _, f := range PropertyFields(in.Record) {
		header = append(header, f.Key)
	}
	for _, f := range FinancialFields(in.Record) {
		header = append(header, f.Key)
	}
	for _, m := range MetricRows(in.Metrics) {
		header = append(header, m.Key)
	}
	return append(header, "score", "recommendation", "summary", "warnings", "risks", "report_generated_at")
}

// FlatRow flattens a report into a single row matching FlatHeader.
func FlatRow(in Input) []string {
	row := make([]string, 0, 32)
	for _, f := range PropertyFields(in.Record) {
		row = append(row, f.Raw)
	}
	for _, f := range FinancialFields(in.Record) {
		row = append(row, f.Raw)
	}
	for _, m := range MetricRows(in.Metrics) {
		row = append(row, Raw(m.Value))
	}
	return append(row,
		strconv.Itoa(in.Analysis.Score),
		in.Analysis.Recommendation(),
		strings.Join(in.Analysis.Summary, listSeparator),
		strings.Join(in.Analysis.Warnings, listSeparator),
		strings.Join(in.Analysis.Risks, listSeparator),
		in.GeneratedAt.Format(time.RFC3339),
	)
}

func renderCSV(in Input) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(FlatHeader()); err != nil {
		return nil, err
	}
	if err := w.Write(FlatRow(in)); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
