package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phf/backend/internal/interfaces/http/dto"
	"github.com/phf/backend/internal/interfaces/http/router"
)

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	Ping() error
}

// SystemHandler exposes liveness and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      HealthChecker
	appName string
	env     string
	started time.Time
}

// NewSystemHandler creates a system handler
func NewSystemHandler(db HealthChecker, appName, env string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// Routes returns the system route group
func (h *SystemHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("system", "").
		GET("/health", h.Health).
		GET("/ping", h.Ping)
}

// Health reports service readiness including database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	dbStatus := "ok"

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":      status,
		"app":         h.appName,
		"environment": h.env,
		"uptime":      time.Since(h.started).Round(time.Second).String(),
		"database":    dbStatus,
	}))
}

// Ping is a trivial liveness probe
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "pong"}))
}
