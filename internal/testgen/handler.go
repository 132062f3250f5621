package testgen

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"recommendation-backend/internal/shared/metrics"
	"recommendation-backend/internal/shared/server/middleware"
	"recommendation-backend/internal/shared/server/respond"
	"recommendation-backend/internal/shared/util"
	"recommendation-backend/internal/usage"
)

// Handler wires HTTP handlers to the test-generation service.
type Handler struct {
	Svc   *Service
	Usage *usage.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, usageSvc *usage.Service) *Handler {
	return &Handler{Svc: svc, Usage: usageSvc}
}

// RegisterRoutes attaches the test-generation route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/test-generation", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	started := time.Now()

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if strings.TrimSpace(h.Svc.ModelID) == "" {
		respond.Error(c, http.StatusInternalServerError, "config_error", "BEDROCK_MODEL_ID is not configured", nil)
		return
	}
	c.Set("modelId", h.Svc.ModelID)
	metrics.IncStarted(metrics.EndpointTestGeneration)

	resp, err := h.Svc.Generate(c.Request.Context(), req)
	durationMs := float64(time.Since(started).Microseconds()) / 1000.0

	if err != nil {
		code := ClassifyError(err)
		c.Set("errorCode", code)
		metrics.IncFailed(metrics.EndpointTestGeneration)
		metrics.ObserveDurationMs(metrics.EndpointTestGeneration, durationMs)
		h.record(c, usage.OutcomeFailed, code, durationMs)
		respond.Error(c, http.StatusBadGateway, "upstream_error", util.SanitizeError(err), gin.H{"code": code})
		return
	}

	metrics.IncCompleted(metrics.EndpointTestGeneration)
	metrics.ObserveDurationMs(metrics.EndpointTestGeneration, durationMs)
	h.record(c, usage.OutcomeOK, "", durationMs)
	respond.OK(c, resp)
}

func (h *Handler) record(c *gin.Context, outcome, errorCode string, durationMs float64) {
	if h.Usage == nil {
		return
	}
	h.Usage.Record(c.Request.Context(), usage.Record{
		Endpoint:   metrics.EndpointTestGeneration,
		APIKeyHash: usage.HashAPIKey(c.GetHeader(middleware.APIKeyHeader)),
		ModelID:    h.Svc.ModelID,
		Outcome:    outcome,
		ErrorCode:  errorCode,
		DurationMs: durationMs,
	})
}
