package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/pkg/translator"
)

const (
	StatusOk           = "ok"
	StatusDown         = "down"
	MsgAPIRunning      = "apiRunning"
	healthStoreTimeout = 2 * time.Second
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store      Pinger
	appName    string
	appVersion string
	now        func() time.Time
}

func NewHealthHandler(store Pinger, appName, appVersion string) *HealthHandler {
	return &HealthHandler{store: store, appName: appName, appVersion: appVersion, now: time.Now}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthBasic{
		Message:   translator.Localize(MsgAPIRunning, middleware.GetLang(c)),
		Timestamp: mapper.FormatTime(h.now()),
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	statusCode := http.StatusOK
	storeStatus := StatusOk
	if !h.checkConnectionToStore(c.Request.Context()) {
		statusCode = http.StatusServiceUnavailable
		storeStatus = StatusDown
	}

	c.JSON(statusCode, dto.HealthAdvanced{
		AppName:    h.appName,
		AppVersion: h.appVersion,
		Timestamp:  mapper.FormatTime(h.now()),
		Language:   middleware.GetLang(c),
		Status: dto.HealthServices{
			Store: storeStatus,
		},
	})
}

func (h *HealthHandler) checkConnectionToStore(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthStoreTimeout)
	defer cancel()
	return h.store.Ping(timeoutCtx) == nil
}
