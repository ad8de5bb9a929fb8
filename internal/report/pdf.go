package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 7.0
)

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func renderPDF(in Input) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Real Estate Investment Analysis", true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFont(pdfFont, "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 12, "Real Estate Investment Analysis", "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, 6, "Report Generated: "+in.GeneratedAt.Format("January 02, 2006 at 03:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	w.heading("Property Overview")
	rows := make([][]string, 0, 9)
	for _, f := range PropertyFields(in.Record) {
		rows = append(rows, []string{f.Label + ":", f.Display})
	}
	w.table(nil, rows, []float64{55, 130})

	w.heading("Financial Summary")
	rows = rows[:0]
	for _, f := range FinancialFields(in.Record) {
		rows = append(rows, []string{f.Label + ":", f.Display})
	}
	w.table(nil, rows, []float64{55, 130})

	w.heading("Investment Metrics")
	rows = rows[:0]
	for _, m := range MetricRows(in.Metrics) {
		rows = append(rows, []string{m.Name, pdfValue(m.Display), m.Benchmark, m.Assessment})
	}
	w.table([]string{"Metric", "Value", "Industry Benchmark", "Assessment"}, rows, []float64{65, 35, 40, 45})

	w.heading("Investment Analysis & Recommendations")
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall Score: %d/100", in.Analysis.Score), "", 1, "L", false, 0, "")
	for _, s := range Sections(in.Analysis) {
		if len(s.Lines) == 0 && (s.Key == "warnings" || s.Key == "risks") {
			continue
		}
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(0, pdfLineHeight, s.Title+":", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		for _, line := range s.Lines {
			pdf.SetX(20)
			pdf.MultiCell(0, 5.5, w.tr("• "+line), "", "L", false)
		}
		pdf.Ln(2)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfValue swaps the infinity symbol for a word; the core PDF fonts have no glyph for it.
func pdfValue(s string) string {
	return strings.ReplaceAll(s, infinity, "Infinite")
}

func (w *pdfWriter) heading(title string) {
	w.pdf.Ln(3)
	w.pdf.SetFont(pdfFont, "B", 14)
	w.pdf.SetTextColor(52, 73, 94)
	w.pdf.CellFormat(0, 9, w.tr(title), "B", 1, "L", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(2)
}

func (w *pdfWriter) table(header []string, rows [][]string, widths []float64) {
	if header != nil {
		w.pdf.SetFont(pdfFont, "B", 10)
		w.pdf.SetFillColor(52, 152, 219)
		w.pdf.SetTextColor(255, 255, 255)
		for i, h := range header {
			w.pdf.CellFormat(widths[i], pdfLineHeight, w.tr(h), "1", 0, "L", true, 0, "")
		}
		w.pdf.Ln(-1)
		w.pdf.SetTextColor(0, 0, 0)
	}

	w.pdf.SetFont(pdfFont, "", 10)
	w.pdf.SetFillColor(248, 249, 250)
	for _, row := range rows {
		for i, cell := range row {
			w.pdf.CellFormat(widths[i], pdfLineHeight, w.tr(pdfValue(cell)), "1", 0, "L", true, 0, "")
		}
		w.pdf.Ln(-1)
	}
}
