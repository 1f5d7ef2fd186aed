//go:build unit

package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"venue-booking/internal/handler/middleware"
	"venue-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("one instance backs both the slog handle and the middleware", func(t *testing.T) {
		logger := middleware.NewLogger(config.LogConfig{Level: "info"})

		require.NotNil(t, logger.GetSlogLogger())
		assert.Same(t, slog.Default(), logger.GetSlogLogger())
	})

	t.Run("middleware assigns a request id", func(t *testing.T) {
		logger := middleware.NewLogger(config.LogConfig{Level: "error"})

		engine := gin.New()
		engine.Use(logger.LoggingMiddleware())

		var requestID string
		engine.GET("/ping", func(c *gin.Context) {
			requestID = middleware.GetRequestID(c)
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.NotEmpty(t, requestID)
	})
}
