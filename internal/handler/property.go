package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/report"
)

// Metrics computes the investment metrics of a posted record
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	var record models.PropertyRecord
	if !h.decode(w, r, &record) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Evaluate(record).Metrics)
}

// Analysis computes metrics and the scored analysis of a posted record
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	var record models.PropertyRecord
	if !h.decode(w, r, &record) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Evaluate(record))
}

// CreateProperty saves a property for the current user
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var record models.PropertyRecord
	if !h.decode(w, r, &record) {
		return
	}

	property, err := h.svc.CreateProperty(r.Context(), record)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, property)
}

// ListProperties lists the current user's properties
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.svc.ListProperties(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, properties)
}

// GetProperty returns one property
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	property, err := h.svc.GetProperty(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, property)
}

// UpdateProperty replaces a property's record
func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var record models.PropertyRecord
	if !h.decode(w, r, &record) {
		return
	}

	property, err := h.svc.UpdateProperty(r.Context(), id, record)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, property)
}

// DeleteProperty removes a property
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteProperty(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalyzeProperty evaluates a saved property
func (h *Handler) AnalyzeProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	evaluation, err := h.svc.AnalyzeProperty(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, evaluation)
}

// DownloadReport renders a property report as an attachment
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(report.FormatHTML)
	}

	doc, err := h.svc.GenerateReport(r.Context(), id, format)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Data)
}

// ListReports returns a property's report history
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	reports, err := h.svc.ListReports(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reports)
}

type emailRequest struct {
	To     string `json:"to"`
	Format string `json:"format"`
}

// EmailReport mails a property report
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req emailRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = string(report.FormatPDF)
	}

	if err := h.svc.EmailReport(r.Context(), id, req.To, req.Format); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// ExportToSheet appends a property's analysis to the spreadsheet
func (h *Handler) ExportToSheet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.ExportToSheet(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "exported"})
}

// SheetInfo describes the connected spreadsheet
func (h *Handler) SheetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.SheetInfo(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}
