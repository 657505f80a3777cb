package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/utils"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

type mockAPIKeySvc struct {
	mock.Mock
}

func (m *mockAPIKeySvc) Authenticate(ctx context.Context, rawKey string) (*domain.APIKey, error) {
	args := m.Called(ctx, rawKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIKey), args.Error(1)
}

func (m *mockAPIKeySvc) EnsureDefaultKey(ctx context.Context, name string, rawKey string) error {
	return m.Called(ctx, name, rawKey).Error(0)
}

// newTestRouter wires the auth chain the way the server does and exposes the
// resolved identity on GET /whoami.
func newTestRouter(keySvc *mockAPIKeySvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.Use(APIKeyAuth(keySvc))
	r.Use(AuthMiddleware(testJWTSecret))
	r.GET("/whoami", func(c *gin.Context) {
		method, _ := GetAuthMethod(c)
		c.JSON(http.StatusOK, gin.H{"method": method, "scope": GetScopeToken(c)})
	})
	r.POST("/write", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func serve(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	var ctxLogger *slog.Logger
	r.GET("/ping", func(c *gin.Context) {
		ctxLogger = GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := serve(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	require.NotNil(t, ctxLogger)
	assert.NotSame(t, slog.Default(), ctxLogger)

	incoming := "5b0ec6a6-4b7e-4f0c-9a53-4f6a3c1b2d10"
	w = serve(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: incoming})
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), GetLoggerFromCtx(context.Background()))
}

func TestAuthChain(t *testing.T) {
	keySvc := new(mockAPIKeySvc)
	keySvc.On("Authenticate", mock.Anything, "good-key").Return(&domain.APIKey{ID: 7, IsActive: true}, nil)
	keySvc.On("Authenticate", mock.Anything, "bad-key").Return(nil, apperrors.NewUnauthorizedError("Invalid API key"))
	r := newTestRouter(keySvc)

	t.Run("anonymous reads use the public scope", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"method":"","scope":"public"}`, w.Body.String())
	})

	t.Run("api key sets scope", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", map[string]string{APIKeyHeader: "good-key"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"method":"api_key","scope":"apikey:7"}`, w.Body.String())
	})

	t.Run("invalid api key is rejected", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", map[string]string{APIKeyHeader: "bad-key"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid API key"}`, w.Body.String())
	})

	t.Run("bearer token sets scope", func(t *testing.T) {
		token, err := utils.GenerateJWT("svc-billing", testJWTSecret, time.Hour, "ledger-test")
		require.NoError(t, err)
		w := serve(r, http.MethodGet, "/whoami", map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"method":"jwt","scope":"jwt:svc-billing"}`, w.Body.String())
	})

	t.Run("api key wins over bearer token", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", map[string]string{APIKeyHeader: "good-key", "Authorization": "Bearer garbage"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"method":"api_key","scope":"apikey:7"}`, w.Body.String())
	})

	t.Run("malformed bearer token is rejected", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", map[string]string{"Authorization": "Token abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired bearer token is rejected", func(t *testing.T) {
		token, err := utils.GenerateJWT("svc-billing", testJWTSecret, -time.Minute, "ledger-test")
		require.NoError(t, err)
		w := serve(r, http.MethodGet, "/whoami", map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Token has expired"}`, w.Body.String())
	})

	t.Run("writes require authentication", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/write", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, w.Body.String())

		w = serve(r, http.MethodPost, "/write", map[string]string{APIKeyHeader: "good-key"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	limiterInstance, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(limiterInstance))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", nil).Code)
	w := serve(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/ping", nil).Code)

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}
