package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocab-api/internal/config"
	"github.com/phrazzld/vocab-api/internal/dispatch"
	"github.com/phrazzld/vocab-api/internal/service/study"
)

func newTestApplication(d *dispatch.Dispatcher) *application {
	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
			CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
		},
		logger:     slog.Default(),
		dispatcher: d,
	}
}

func TestRouterHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestApplication(dispatch.NewDispatcher()).setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterRoutesToRegisteredHandlers(t *testing.T) {
	t.Parallel()

	d := dispatch.NewDispatcher()
	d.RegisterQueryHandler(study.GetGlobalStatsQuery{}, dispatch.QueryHandlerFunc(
		func(context.Context, any) (any, error) {
			return &study.GlobalStats{TotalWords: 1}, nil
		}))

	router := newTestApplication(d).setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_words":1`)
}

func TestRouterUnregisteredHandlerIsServerFault(t *testing.T) {
	t.Parallel()

	// An empty dispatcher simulates a wiring defect; the client sees a 500,
	// never the routing internals.
	router := newTestApplication(dispatch.NewDispatcher()).setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "handler")
}

func TestRouterUnknownPath(t *testing.T) {
	t.Parallel()

	router := newTestApplication(dispatch.NewDispatcher()).setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
