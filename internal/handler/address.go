package handler

import (
	"errors"
	"net/http"

	"github.com/Dan9191/property-service/internal/integrations/webhook"
	"github.com/Dan9191/property-service/internal/models"
)

// ValidateAddress checks an address without submitting it
func (h *Handler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if !h.decode(w, r, &addr) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.ValidateAddress(addr))
}

// SubmitAddress sends an address to the intake webhook
func (h *Handler) SubmitAddress(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if !h.decode(w, r, &addr) {
		return
	}

	result, err := h.svc.SubmitAddress(r.Context(), addr)
	if errors.Is(err, webhook.ErrDeliveryFailed) && result != nil {
		h.writeJSON(w, http.StatusBadGateway, result)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// PingWebhook tests webhook connectivity
func (h *Handler) PingWebhook(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.PingWebhook(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
