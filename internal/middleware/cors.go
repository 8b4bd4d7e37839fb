package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig controls which origins may call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
	// AllowPrivate permits localhost and private-subnet origins, for
	// development and staging.
	AllowPrivate bool
}

// DefaultCORSConfig returns the CORS policy for the given environment.
// Production is locked to the dashboard origins; everything else is
// permissive enough for local development.
func DefaultCORSConfig(environment string) CORSConfig {
	if environment == "production" {
		return CORSConfig{
			AllowedOrigins: []string{
				"https://app.safegal.org",
				"https://dashboard.safegal.org",
			},
		}
	}
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowPrivate:   true,
	}
}

// CORS applies the given policy and answers preflight requests.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(cfg, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Service-Key")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(cfg CORSConfig, origin string) bool {
	for _, allowed := range cfg.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	if cfg.AllowPrivate {
		return strings.Contains(origin, "localhost") ||
			strings.Contains(origin, "127.0.0.1") ||
			strings.Contains(origin, "192.168.") ||
			strings.Contains(origin, "10.")
	}
	return false
}
