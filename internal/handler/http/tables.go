package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/models"
)

// maxMirrorBody bounds the desired snapshot accepted by mirrorTable.
const maxMirrorBody = 64 << 20

type buildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

type snapshotResponse struct {
	Table   string                      `json:"table"`
	Columns []string                    `json:"columns"`
	Types   map[string]models.LocalType `json:"types"`
	Rows    []models.Row                `json:"rows"`
	Length  int                         `json:"length"`
}

type errorResponse struct {
	Error  string        `json:"error"`
	Issues models.Issues `json:"issues,omitempty"`
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.mirror.Status(), http.StatusOK)
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	snapshot, err := h.mirror.Snapshot(r.Context(), table)
	if err == nil && snapshot == nil {
		err = service.ErrSnapshotUnavailable
	}
	if err != nil {
		h.writeError(w, r, "*Handler.getSnapshot", err)
		return
	}

	writeJSON(w, r, snapshotResponse{
		Table:   table,
		Columns: snapshot.Columns,
		Types:   snapshot.Types,
		Rows:    jsonRows(snapshot.Rows),
		Length:  snapshot.Len(),
	}, http.StatusOK)
}

// jsonRows copies rows replacing values JSON cannot carry: NaN becomes null,
// infinities become "+Inf" and "-Inf". Nested maps and slices are walked.
func jsonRows(rows []models.Row) []models.Row {
	out := make([]models.Row, len(rows))
	for i, r := range rows {
		row := make(models.Row, len(r))
		for k, v := range r {
			row[k] = jsonValue(v)
		}
		out[i] = row
	}
	return out
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case float64:
		return finite(x, v)
	case float32:
		return finite(float64(x), v)
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = jsonValue(e)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = jsonValue(e)
		}
		return s
	}
	return v
}

func finite(f float64, v any) any {
	switch {
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return v
}

func (h *Handler) refreshTable(w http.ResponseWriter, r *http.Request) {
	if err := h.mirror.Refresh(r.Context(), chi.URLParam(r, "table")); err != nil {
		h.writeError(w, r, "*Handler.refreshTable", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) refreshAll(w http.ResponseWriter, r *http.Request) {
	if err := h.mirror.RefreshAll(r.Context()); err != nil {
		h.writeError(w, r, "*Handler.refreshAll", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) mirrorTable(w http.ResponseWriter, r *http.Request) {
	desired, err := models.DecodeSnapshot(http.MaxBytesReader(w, r.Body, maxMirrorBody))
	if err != nil {
		h.writeError(w, r, "*Handler.mirrorTable", err)
		return
	}

	if err = h.mirror.Mirror(r.Context(), chi.URLParam(r, "table"), desired); err != nil {
		h.writeError(w, r, "*Handler.mirrorTable", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	logger.FromContextOr(r.Context(), h.logger).Err(err).Str("func", fn).Int("status", status).Msg("request failed")

	resp := errorResponse{Error: err.Error()}
	var violation *models.SchemaViolationError
	if errors.As(err, &violation) {
		resp.Issues = violation.Issues
	}
	writeJSON(w, r, resp, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any, status int) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(r.Context()).Err(err).Str("func", "writeJSON").Msg("failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
