// Package report renders a property's metrics and analysis as downloadable
// documents.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/property-service/internal/models"
)

// Format is an export format.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ErrUnsupportedFormat is returned for formats without a renderer.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Input is everything a renderer needs.
type Input struct {
	Record      models.PropertyRecord
	Metrics     models.Metrics
	Analysis    models.Analysis
	GeneratedAt time.Time
}

// Document is a rendered report ready for download.
type Document struct {
	Format      Format
	ContentType string
	Filename    string
	Data        []byte
}

type renderer struct {
	contentType string
	extension   string
	render      func(in Input) ([]byte, error)
}

var renderers = map[Format]renderer{
	FormatHTML: {"text/html; charset=utf-8", "html", renderHTML},
	FormatPDF:  {"application/pdf", "pdf", renderPDF},
	FormatCSV:  {"text/csv; charset=utf-8", "csv", renderCSV},
	FormatJSON: {"application/json", "json", renderJSON},
	FormatXML:  {"application/xml; charset=utf-8", "xml", renderXML},
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := renderers[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Render produces the report in the requested format.
func Render(format Format, in Input) (*Document, error) {
	r, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if in.GeneratedAt.IsZero() {
		in.GeneratedAt = time.Now()
	}

	data, err := r.render(in)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}

	return &Document{
		Format:      format,
		ContentType: r.contentType,
		Filename:    "investment_report." + r.extension,
		Data:        data,
	}, nil
}
