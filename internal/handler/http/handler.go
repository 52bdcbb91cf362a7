package http

import (
	"net/http"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/models"
)

type Handler struct {
	mirror  service.MirrorService
	metrics http.Handler
	build   models.AppBuildInfo

	logger *logger.Logger
}

// NewHandler builds the ops handler. A nil metrics handler leaves /metrics
// unregistered.
func NewHandler(mirror service.MirrorService, metrics http.Handler, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		mirror:  mirror,
		metrics: metrics,
		build:   build,
		logger:  logger,
	}
}
