// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/handler"
	myHTTP "github.com/MKhiriev/go-table-mirror/internal/handler/http"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/models"
)

func TestNewServer_Disabled(t *testing.T) {
	tests := []struct {
		name     string
		handlers *handler.Handlers
		cfg      config.Metrics
	}{
		{name: "nil handlers", cfg: config.Metrics{Address: ":0"}},
		{name: "no http handler", handlers: &handler.Handlers{}, cfg: config.Metrics{Address: ":0"}},
		{name: "no address", handlers: &handler.Handlers{HTTP: testHandler()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(tt.handlers, tt.cfg, logger.Nop())
			assert.ErrorIs(t, err, errNoServersAreCreated)
			assert.Nil(t, s)
		})
	}
}

func testHandler() *myHTTP.Handler {
	return myHTTP.NewHandler(nil, nil, models.NewAppBuildInfo("v1", "", ""), logger.Nop())
}

func TestServer_RunUntilCancelled(t *testing.T) {
	s, err := NewServer(&handler.Handlers{HTTP: testHandler()}, config.Metrics{Address: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.(*server).run(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_RunServer_BadAddress(t *testing.T) {
	s, err := NewServer(&handler.Handlers{HTTP: testHandler()}, config.Metrics{Address: "256.0.0.1:-1"}, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, s.RunServer(context.Background()))
}

func TestServer_RunReturnsServeError(t *testing.T) {
	s, err := NewServer(&handler.Handlers{HTTP: testHandler()}, config.Metrics{Address: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	done := make(chan error, 1)
	go func() { done <- s.(*server).run(context.Background(), ln) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after serve failed")
	}
}
