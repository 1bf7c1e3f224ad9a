package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/metrics"
)

// AdminRequired пропускает только настроенного администратора.
// Идентификация — заголовок X-Telegram-ID, авторизация — простое сравнение.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Telegram-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-Telegram-ID header is required"})
			return
		}

		telegramID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || !s.cfg.IsAdmin(telegramID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}

// RequestLogger логирует каждый HTTP запрос
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// PrometheusMiddleware собирает метрики HTTP запросов
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
