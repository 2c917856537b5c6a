package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS middleware to handle cross-origin requests from the web frontend
func CORS() gin.HandlerFunc {
	allowed := []string{"http://localhost:5173", "http://localhost:3000"}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		allowed = append(allowed, strings.Split(extra, ",")...)
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		for _, a := range allowed {
			if origin == a {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, User-Agent, Cache-Control, X-Requested-With")
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				c.Writer.Header().Set("Access-Control-Max-Age", "86400")
				break
			}
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
