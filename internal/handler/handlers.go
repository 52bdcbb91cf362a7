package handler

import (
	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/handler/http"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/metrics"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/models"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. m may be nil, in
// which case /metrics is not served.
func NewHandlers(services *service.Services, m *metrics.Metrics, build models.AppBuildInfo, cfg config.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Address == "" {
		return nil, errNoHandlersAreCreated
	}
	if services == nil {
		return nil, errNoServices
	}

	h := &Handlers{}
	if m != nil {
		h.HTTP = http.NewHandler(services.Mirror, m.Handler(), build, logger)
	} else {
		h.HTTP = http.NewHandler(services.Mirror, nil, build, logger)
	}

	return h, nil
}
