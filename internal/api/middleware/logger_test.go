package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("LogsRequestDetails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		router := gin.New()
		router.Use(Logger(logger))
		router.GET("/books", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/books?title=go", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		output := buf.String()
		assert.Contains(t, output, "HTTP request")
		assert.Contains(t, output, "/books?title=go")
		assert.Contains(t, output, "GET")
		assert.Contains(t, output, "200")
	})

	t.Run("IncludesCorrelationIDWhenSet", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Logger(logger))
		router.GET("/books", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		providedID := uuid.New().String()
		req, _ := http.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set(CorrelationIDHeader, providedID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Contains(t, buf.String(), providedID)
	})
}
