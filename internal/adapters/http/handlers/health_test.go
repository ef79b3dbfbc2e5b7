package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func newHealthRouter(checkers ...ports.HealthChecker) *gin.Engine {
	registry := ports.NewHealthRegistry()
	for _, c := range checkers {
		_ = registry.Register(c)
	}

	router := gin.New()
	NewHealthHandler(registry, NewBuildInfo("1.2.3", "abc123", "2026-08-20")).
		RegisterHealthRoutesOnEngine(router)

	return router
}

func TestLiveness(t *testing.T) {
	w := httptest.NewRecorder()
	newHealthRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestReadiness_AllChecksPass(t *testing.T) {
	router := newHealthRouter(
		stubChecker{name: "zen-quotes"},
		stubChecker{name: "wikipedia"},
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadiness_FailingCheckIs503(t *testing.T) {
	router := newHealthRouter(
		stubChecker{name: "zen-quotes"},
		stubChecker{name: "journal-store", err: errors.New("no reachable servers")},
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp struct {
		Status string                        `json:"status"`
		Checks map[string]*ports.CheckResult `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, ports.HealthStatusUnhealthy, resp.Checks["journal-store"].Status)
}

func TestBuildInfoEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	newHealthRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/build", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
