package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/metrics"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/models"
)

// newTestServices returns Services without a mirror; the HTTP handler only
// stores it at construction time.
func newTestServices() *service.Services {
	return &service.Services{}
}

func TestNewHandlers_WithAddress(t *testing.T) {
	cfg := config.Metrics{Address: ":9100"}

	h, err := NewHandlers(newTestServices(), metrics.New(), models.NewAppBuildInfo("", "", ""), cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

func TestNewHandlers_WithoutMetrics(t *testing.T) {
	cfg := config.Metrics{Address: ":9100"}

	h, err := NewHandlers(newTestServices(), nil, models.NewAppBuildInfo("", "", ""), cfg, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestServices(), metrics.New(), models.NewAppBuildInfo("", "", ""), config.Metrics{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.True(t, IsDisabled(err))
	assert.Nil(t, h)
}

func TestNewHandlers_NilServices(t *testing.T) {
	h, err := NewHandlers(nil, nil, models.NewAppBuildInfo("", "", ""), config.Metrics{Address: ":9100"}, logger.Nop())

	require.ErrorIs(t, err, errNoServices)
	assert.False(t, IsDisabled(err))
	assert.Nil(t, h)
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.Metrics{Address: ":9100"}

	h1, err1 := NewHandlers(newTestServices(), nil, models.NewAppBuildInfo("", "", ""), cfg, logger.Nop())
	h2, err2 := NewHandlers(newTestServices(), nil, models.NewAppBuildInfo("", "", ""), cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
