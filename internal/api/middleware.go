package api

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/logger"
)

// CorrelationIDHeader carries a request's correlation id, generated if
// the caller doesn't supply one, and echoed back on the response.
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "correlationID"

// correlationIDMiddleware assigns every request a correlation id for
// cross-VASP request tracing.
func correlationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}
		c.Set(correlationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)
		c.Next()
	}
}

// requestLoggingMiddleware logs each request's method, path, status and
// latency tagged with its correlation id.
func requestLoggingMiddleware() gin.HandlerFunc {
	log := logger.For(logger.ComponentAPI)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		correlationID, _ := c.Get(correlationIDKey)
		log.Info("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.Any("correlation_id", correlationID),
		)
	}
}

// configureCORS builds the CORS middleware, overridable via
// CORS_ALLOWED_ORIGINS (comma-separated; defaults to allowing none beyond
// localhost, since the protocol's peers talk server-to-server anyway).
func configureCORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, o := range origins {
			origins[i] = strings.TrimSpace(o)
		}
		cfg.AllowOrigins = origins
	}

	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", CorrelationIDHeader, "X-Verification-Key-Address", "X-Request-ID"}
	return cors.New(cfg)
}
