package api

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"loadboard/app"
	"loadboard/domain/core"
	"loadboard/domain/schedule"
	"loadboard/internal/analytics"
	"loadboard/internal/charts"
	"loadboard/internal/export"

	"github.com/go-chi/chi/v5"
)

type exportFunc func(io.Writer, []schedule.Record) error

// RecordsResponse is the filtered view plus the count the UI shows
type RecordsResponse struct {
	Count int `json:"count"`
	analytics.View
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (analytics.Filter, bool) {
	f, err := app.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return analytics.Filter{}, false
	}
	return f, true
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	summary, err := h.dashboard.Summary(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.dashboard.Options(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	view, err := h.dashboard.Records(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RecordsResponse{Count: view.Len(), View: view})
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv; charset=utf-8", export.CSVFilename, export.WriteCSV)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSXFilename, export.WriteXLSX)
}

// export renders the whole snapshot before writing so a failure can still
// produce a JSON error
func (h *Handler) export(w http.ResponseWriter, r *http.Request, contentType, filename string, write exportFunc) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	view, err := h.dashboard.Records(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, view.Records); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	name, err := charts.ParseName(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, ok := h.filter(w, r)
	if !ok {
		return
	}
	summary, err := h.dashboard.Summary(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(&buf, name, summary); err != nil {
		if stderrors.Is(err, core.ErrEmptySeries) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Health(r.Context()))
}
