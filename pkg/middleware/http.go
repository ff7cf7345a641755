package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPLogger logs the request
func HTTPLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)

		path := c.Request.URL.Path
		method := c.Request.Method
		statusCode := c.Writer.Status()

		tags := []string{"path:" + path, "method:" + method, "status:" + strconv.Itoa(statusCode)}
		metrics.Count("flightdelay.router.api.request.total", 1, tags)
		metrics.Timing("flightdelay.router.api.request.latency", latency, tags)
		logger.Info(fmt.Sprintf("[access] [%s] %s %s %d %v", c.ClientIP(), method, path, statusCode, latency))
	}
}

// HTTPRecovery turns a handler panic into a 500 with the service's error body.
func HTTPRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("path", c.Request.URL.Path).
					Msgf("Recovered in http recovery with err: %v, stack: %s", r, string(debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}
