package handler

import (
	"net/http"
	"strings"

	"github.com/Dan9191/property-service/internal/service"
	"github.com/gorilla/mux"
)

// ListListings returns listings filtered by ?q=&type=&sort=&order=asc|desc
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listings, err := h.svc.Listings(r.Context(), service.ListingQuery{
		Search:    q.Get("q"),
		Type:      q.Get("type"),
		SortBy:    q.Get("sort"),
		Ascending: !strings.EqualFold(q.Get("order"), "desc"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listings)
}

// ListingRecord returns a property record prefilled from a listing
func (h *Handler) ListingRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.ListingRecord(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// SyncListings copies the spreadsheet listings into the database now
func (h *Handler) SyncListings(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.SyncListings(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"synced": n})
}
