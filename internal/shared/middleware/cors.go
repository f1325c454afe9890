package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS allows the storefront origin(s) configured via CORS_ORIGINS
// (comma separated; defaults to the local dev frontend).
func CORS() gin.HandlerFunc {
	origins := strings.Split(
		getEnvDefault("CORS_ORIGINS", "http://localhost:5173"),
		",",
	)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, allowed := range origins {
			if allowed == "*" || strings.TrimSpace(allowed) == origin {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
