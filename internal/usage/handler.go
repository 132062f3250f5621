package usage

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recommendation-backend/internal/shared/server/respond"
)

// Handler exposes the usage ledger for inspection.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the usage routes. Callers should only register
// these in non-production environments.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.listRecent)
}

func (h *Handler) listRecent(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.Svc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list usage records", nil)
		return
	}
	if records == nil {
		records = []Record{}
	}
	respond.OK(c, gin.H{"records": records})
}
