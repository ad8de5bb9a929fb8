package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/property-service/internal/integrations/webhook"
	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/report"
	"github.com/Dan9191/property-service/internal/repository"
	"github.com/Dan9191/property-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !h.decode(w, r, &creds) {
		return
	}

	user, err := h.svc.Register(creds)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !h.decode(w, r, &creds) {
		return
	}

	token, err := h.svc.Login(creds.Email, creds.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid id"})
		return 0, false
	}
	return id, true
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeJSON encodes v before committing the status so an encoding failure
// still produces a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
		body, status = []byte(`{"error":"Internal server error"}`), http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeError maps service errors to HTTP status codes
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Fields: ve.Fields})
	case errors.Is(err, service.ErrInvalidAddress), errors.Is(err, report.ErrUnsupportedFormat):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrForbidden):
		// Another user's property is reported as missing.
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrNotConfigured):
		h.writeJSON(w, http.StatusNotImplemented, errorResponse{Error: err.Error()})
	case errors.Is(err, webhook.ErrDeliveryFailed):
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		h.log.Errorf("Request failed: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}
