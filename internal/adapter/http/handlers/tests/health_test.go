package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
)

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

func newHealthRouter(store handlers.Pinger) *gin.Engine {
	handler := handlers.NewHealthHandler(store, "task-manager", "1.2.3")

	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	router.GET("/api/health", handler.CheckHealth)
	router.GET("/api/health/report", handler.CheckHealthReport)
	return router
}

func TestHealthHandler_CheckHealth(t *testing.T) {
	rec := serve(newHealthRouter(pingerStub{}), http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.HealthBasic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task Manager API is running", got.Message)
	require.NotEmpty(t, got.Timestamp)
}

func TestHealthHandler_CheckHealthReport_StoreUp(t *testing.T) {
	rec := serve(newHealthRouter(pingerStub{}), http.MethodGet, "/api/health/report", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.HealthAdvanced
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "task-manager", got.AppName)
	require.Equal(t, "1.2.3", got.AppVersion)
	require.Equal(t, "en", got.Language)
	require.Equal(t, handlers.StatusOk, got.Status.Store)
}

func TestHealthHandler_CheckHealthReport_StoreDown(t *testing.T) {
	rec := serve(newHealthRouter(pingerStub{err: errors.New("connection refused")}), http.MethodGet, "/api/health/report", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var got dto.HealthAdvanced
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, handlers.StatusDown, got.Status.Store)
}
