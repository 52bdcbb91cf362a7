package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-table-mirror/internal/adapter"
	"github.com/MKhiriev/go-table-mirror/internal/cache"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/internal/store"
	"github.com/MKhiriev/go-table-mirror/models"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is matched in order; the first target found in the chain
// decides the status.
var errorStatuses = []errorStatus{
	{models.ErrEmptyDocument, http.StatusBadRequest},
	{models.ErrInvalidDocument, http.StatusBadRequest},
	{service.ErrNilSnapshot, http.StatusBadRequest},
	{service.ErrUnknownTable, http.StatusNotFound},
	{service.ErrSnapshotUnavailable, http.StatusServiceUnavailable},
	{models.ErrNullPrimaryKeyPart, http.StatusUnprocessableEntity},
	{models.ErrNoPrimaryKey, http.StatusConflict},

	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{context.Canceled, http.StatusServiceUnavailable},

	{adapter.ErrRemoteUnavailable, http.StatusBadGateway},
	{adapter.ErrBadRequest, http.StatusBadGateway},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrForbidden, http.StatusBadGateway},
	{adapter.ErrNotFound, http.StatusBadGateway},
	{adapter.ErrConflict, http.StatusBadGateway},
	{adapter.ErrDecodingPage, http.StatusBadGateway},
	{store.ErrRemoteUnavailable, http.StatusBadGateway},
	{store.ErrTableNotFound, http.StatusBadGateway},

	{cache.ErrUpdateFailed, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	var violation *models.SchemaViolationError
	if errors.As(err, &violation) {
		return http.StatusUnprocessableEntity
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}
