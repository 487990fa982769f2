// Package server exposes the receipt system over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thalha/cabslip/internal/backup"
	"github.com/thalha/cabslip/internal/export"
	"github.com/thalha/cabslip/internal/images"
	"github.com/thalha/cabslip/internal/service"
	"github.com/thalha/cabslip/internal/storage"
)

// Router wraps the mux router and the application services.
type Router struct {
	*mux.Router

	store    storage.Store
	receipts *service.ReceiptService
	profile  *service.ProfileService
	backup   *backup.Engine
	export   *export.Service
	images   *images.Store
	logger   *slog.Logger
}

// NewRouter creates the HTTP router with all routes registered.
func NewRouter(
	store storage.Store,
	receipts *service.ReceiptService,
	profile *service.ProfileService,
	backupEngine *backup.Engine,
	exportSvc *export.Service,
	imageStore *images.Store,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		Router:   mux.NewRouter(),
		store:    store,
		receipts: receipts,
		profile:  profile,
		backup:   backupEngine,
		export:   exportSvc,
		images:   imageStore,
		logger:   logger,
	}

	r.Use(r.loggingMiddleware, metricsMiddleware)

	r.HandleFunc("/healthz", r.healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/cabinfo", r.getCabInfo).Methods("GET")
	api.HandleFunc("/cabinfo", r.putCabInfo).Methods("PUT")

	api.HandleFunc("/receipts", r.listReceipts).Methods("GET")
	api.HandleFunc("/receipts", r.createReceipt).Methods("POST")
	api.HandleFunc("/receipts/{id}", r.getReceipt).Methods("GET")
	api.HandleFunc("/receipts/{id}", r.updateReceipt).Methods("PUT")
	api.HandleFunc("/receipts/{id}", r.deleteReceipt).Methods("DELETE")
	api.HandleFunc("/receipts/{id}/pdf", r.receiptPDF).Methods("GET")

	api.HandleFunc("/stats", r.getStats).Methods("GET")
	api.HandleFunc("/export/xlsx", r.exportXLSX).Methods("GET")

	api.HandleFunc("/backup", r.exportBackup).Methods("GET")
	api.HandleFunc("/backup", r.restoreBackup).Methods("POST")

	api.HandleFunc("/images", r.uploadImage).Methods("POST")

	api.HandleFunc("/events", r.streamEvents).Methods("GET")

	return r
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
