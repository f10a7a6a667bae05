package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matterdesk/internal/port"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db  Pinger
	llm port.LanguageModel
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, llm port.LanguageModel) *HealthHandler {
	return &HealthHandler{db: db, llm: llm}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Checks the database and the language model server, and lists the installed models.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()
	resp := HealthResponse{Status: "ok", Checks: map[string]string{"database": "ok", "ollama": "ok"}}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		zap.L().Warn("readiness: database not reachable", zap.Error(err))
		resp.Checks["database"] = "database not reachable"
		status = http.StatusServiceUnavailable
	}

	if !h.llm.IsHealthy(ctx) {
		resp.Checks["ollama"] = "language model server not reachable"
		status = http.StatusServiceUnavailable
	} else if models, err := h.llm.ListModels(ctx); err != nil {
		zap.L().Warn("readiness: listing models failed", zap.Error(err))
		resp.Checks["ollama"] = "models could not be listed"
	} else {
		resp.Models = models
	}

	if status != http.StatusOK {
		resp.Status = "unavailable"
	}
	c.JSON(status, resp)
}
