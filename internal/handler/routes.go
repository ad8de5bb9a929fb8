package handler

import (
	"net/http"

	"github.com/Dan9191/property-service/internal/config"
	"github.com/Dan9191/property-service/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter registers every route on a new router
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/metrics", h.Metrics).Methods(http.MethodPost)
	authRouter.HandleFunc("/analysis", h.Analysis).Methods(http.MethodPost)

	authRouter.HandleFunc("/properties", h.CreateProperty).Methods(http.MethodPost)
	authRouter.HandleFunc("/properties", h.ListProperties).Methods(http.MethodGet)
	authRouter.HandleFunc("/properties/{id:[0-9]+}", h.GetProperty).Methods(http.MethodGet)
	authRouter.HandleFunc("/properties/{id:[0-9]+}", h.UpdateProperty).Methods(http.MethodPut)
	authRouter.HandleFunc("/properties/{id:[0-9]+}", h.DeleteProperty).Methods(http.MethodDelete)
	authRouter.HandleFunc("/properties/{id:[0-9]+}/analysis", h.AnalyzeProperty).Methods(http.MethodGet)
	authRouter.HandleFunc("/properties/{id:[0-9]+}/report", h.DownloadReport).Methods(http.MethodGet)
	authRouter.HandleFunc("/properties/{id:[0-9]+}/reports", h.ListReports).Methods(http.MethodGet)
	authRouter.HandleFunc("/properties/{id:[0-9]+}/report/email", h.EmailReport).Methods(http.MethodPost)
	authRouter.HandleFunc("/properties/{id:[0-9]+}/sheet", h.ExportToSheet).Methods(http.MethodPost)

	authRouter.HandleFunc("/sheet", h.SheetInfo).Methods(http.MethodGet)

	authRouter.HandleFunc("/listings", h.ListListings).Methods(http.MethodGet)
	authRouter.HandleFunc("/listings/sync", h.SyncListings).Methods(http.MethodPost)
	authRouter.HandleFunc("/listings/{id}/record", h.ListingRecord).Methods(http.MethodGet)

	authRouter.HandleFunc("/addresses/validate", h.ValidateAddress).Methods(http.MethodPost)
	authRouter.HandleFunc("/addresses", h.SubmitAddress).Methods(http.MethodPost)
	authRouter.HandleFunc("/webhook/ping", h.PingWebhook).Methods(http.MethodGet)

	return r
}
