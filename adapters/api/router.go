// Package api serves the dashboard data as JSON, CSV, XLSX and PNG over chi.
package api

import (
	"io"
	"net/http"

	"loadboard/domain/core"
	"loadboard/ports"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader carries the per-request id in both directions
const RequestIDHeader = "X-Request-ID"

// compressedTypes are the content types worth compressing; PNG and XLSX already are.
var compressedTypes = []string{"application/json", "text/csv", "text/plain"}

// Handler serves the read-only dashboard API
type Handler struct {
	dashboard ports.DashboardPort
}

// NewHandler creates an API handler over the dashboard port
func NewHandler(dashboard ports.DashboardPort) *Handler {
	return &Handler{dashboard: dashboard}
}

// NewRouter builds the API router. Paths are relative, the caller mounts it
// under /api.
func NewRouter(dashboard ports.DashboardPort) *chi.Mux {
	h := NewHandler(dashboard)
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	compressor := middleware.NewCompressor(5, compressedTypes...)
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	r.Use(compressor.Handler)

	h.Routes(r)
	return r
}

// Routes registers the API endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.handleSummary)
	r.Get("/options", h.handleOptions)
	r.Get("/records", h.handleRecords)
	r.Get("/export.csv", h.handleExportCSV)
	r.Get("/export.xlsx", h.handleExportXLSX)
	r.Get("/charts/{name}", h.handleChart)
	r.Get("/health", h.handleHealth)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = core.NewRequestID().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
