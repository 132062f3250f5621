package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recommendation-backend/internal/shared/server/respond"
)

// APIKeyHeader is the header carrying the caller-supplied API key.
const APIKeyHeader = "X-API-Key"

// Auth validates the X-API-Key header against the configured key. Health and
// metrics stay open; everything else requires a matching key.
func Auth(expectedKey string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(expectedKey))

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/metrics") {
			c.Next()
			return
		}

		if len(expected) == 0 {
			respond.Error(c, http.StatusInternalServerError, "config_error", "API_KEY is not configured", nil)
			return
		}

		supplied := []byte(strings.TrimSpace(c.GetHeader(APIKeyHeader)))
		if len(supplied) == 0 || subtle.ConstantTimeCompare(expected, supplied) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or missing API key", nil)
			return
		}

		c.Next()
	}
}
