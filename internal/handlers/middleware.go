package handlers

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

// maxRequestIDLength bounds inbound X-Request-ID values before they reach the logs
const maxRequestIDLength = 128

// MiddlewareConfig holds the settings of the common middleware chain
type MiddlewareConfig struct {
	// AllowedOrigins lists the dashboard origins; empty echoes any origin
	AllowedOrigins []string
}

// SetupMiddleware installs the chain shared by every route. Request ids come first
// so that the request logger and the access log can carry them.
func SetupMiddleware(router *gin.Engine, logger utils.Logger, cfg MiddlewareConfig) {
	router.Use(
		RequestIDMiddleware(),
		CORSMiddleware(cfg.AllowedOrigins),
		gin.Recovery(),
		utils.ContextLogger(logger),
		utils.LoggerMiddleware(logger),
		SecurityMiddleware(),
	)
}

// SecurityMiddleware adds security headers. Answers carry session data, so nothing
// may be cached.
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// RequestIDMiddleware keeps the caller's X-Request-ID when it is usable and
// generates one otherwise.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// CORSMiddleware lets the dashboard frontend call the API with its token cookie.
// Credentials rule out a wildcard, so an accepted origin is echoed back. With an
// allowlist, other origins get no CORS headers and their preflights are refused.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		c.Header("Vary", "Origin")

		if len(allowedOrigins) > 0 && !slices.Contains(allowedOrigins, origin) {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
					Error:     "forbidden",
					Message:   "origin not allowed",
					Timestamp: time.Now().UTC(),
				})
				return
			}
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Disposition, X-Request-ID")
		c.Header("Access-Control-Max-Age", "43200")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
