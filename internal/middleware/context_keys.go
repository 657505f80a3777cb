package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_service/internal/core/domain"
)

const (
	authMethodKey = contextKey("authMethod")
	scopeTokenKey = contextKey("scopeToken")
)

// Auth methods recorded by the authentication middlewares.
const (
	AuthMethodAPIKey = "api_key"
	AuthMethodJWT    = "jwt"
)

// setIdentity records who the caller is and enriches the request logger.
func setIdentity(c *gin.Context, method, scopeToken string, attrs ...any) {
	c.Set(string(authMethodKey), method)
	c.Set(string(scopeTokenKey), scopeToken)

	logger := GetLoggerFromContext(c).With(slog.String("auth_method", method))
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	setLogger(c, logger)
}

// GetAuthMethod reports how the caller authenticated, if at all.
func GetAuthMethod(c *gin.Context) (string, bool) {
	method, ok := c.Get(string(authMethodKey))
	if !ok {
		return "", false
	}
	s, ok := method.(string)
	return s, ok && s != ""
}

// GetScopeToken returns the caller's idempotency scope. Unauthenticated
// callers share the public scope.
func GetScopeToken(c *gin.Context) string {
	if v, ok := c.Get(string(scopeTokenKey)); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return domain.PublicScope
}
