package http

import (
	"net/http"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, buildInfoResponse{
		Version: h.build.BuildVersion(),
		Date:    h.build.BuildDate(),
		Commit:  h.build.BuildCommit(),
	}, http.StatusOK)
}
