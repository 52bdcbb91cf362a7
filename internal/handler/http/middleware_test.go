package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
)

func newBufferedHandler(buf *bytes.Buffer) *Handler {
	return &Handler{logger: &logger.Logger{Logger: zerolog.New(buf)}}
}

// ---- withTraceID ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
	}{
		{name: "trace ID from request header is reused", requestTraceID: "my-custom-trace-id"},
		{name: "missing trace ID is generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newBufferedHandler(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromContext(r.Context()).Info().Msg("inside")
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.requestTraceID != "" {
				assert.Equal(t, tt.requestTraceID, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err, "generated trace ID must be a UUID")
			}
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
		})
	}
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	h := newBufferedHandler(&bytes.Buffer{})
	handler := h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			mu.Lock()
			seen[rr.Header().Get(traceIDHeader)] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
}

// ---- withLogging ----

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains []string
	}{
		{
			name:     "explicit status",
			status:   http.StatusCreated,
			body:     "Created",
			contains: []string{`"level":"info"`, `"method":"POST"`, `"uri":"/api/tables"`, `"status":201`, `"size":7`, `"duration":`},
		},
		{
			name:     "implicit 200",
			body:     "OK",
			contains: []string{`"status":200`, `"size":2`},
		},
		{
			name:     "no body no status",
			contains: []string{`"status":200`, `"size":0`},
		},
		{
			name:     "server error logged as warning",
			status:   http.StatusBadGateway,
			contains: []string{`"level":"warn"`, `"status":502`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newBufferedHandler(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})
			rr := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/tables", nil))

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestWithLogging_UsesRequestLogger(t *testing.T) {
	var fallback, scoped bytes.Buffer
	h := newBufferedHandler(&fallback)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req = req.WithContext(zerolog.New(&scoped).WithContext(req.Context()))
	h.withLogging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, fallback.String())
	assert.Contains(t, scoped.String(), `"uri":"/healthz"`)
}

// ---- responseWriter ----

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.Status())
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestResponseWriter_WriteAccumulatesSize(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n1, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	n2, err := w.Write([]byte(", world"))
	require.NoError(t, err)

	assert.Equal(t, 12, n1+n2)
	assert.Equal(t, 12, w.size)
	assert.Equal(t, http.StatusOK, w.Status())
	assert.Equal(t, "hello, world", rr.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	assert.Same(t, rr, w.Unwrap())
}
