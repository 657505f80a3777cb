package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/ports/services"
)

// APIKeyHeader is the header that carries a raw API key.
const APIKeyHeader = "x-api-key"

// APIKeyAuth authenticates requests that present an x-api-key header.
// Requests without the header pass through unauthenticated.
func APIKeyAuth(keySvc services.APIKeySvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader(APIKeyHeader)
		if rawKey == "" {
			c.Next()
			return
		}

		key, err := keySvc.Authenticate(c.Request.Context(), rawKey)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				GetLoggerFromContext(c).Warn("API key rejected", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			GetLoggerFromContext(c).Error("API key lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		setIdentity(c, AuthMethodAPIKey, "apikey:"+strconv.FormatInt(key.ID, 10), slog.Int64("api_key_id", key.ID))
		c.Next()
	}
}

// RequireAuth rejects requests that no authentication middleware accepted.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetAuthMethod(c); !ok {
			GetLoggerFromContext(c).Warn("Unauthenticated write rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
