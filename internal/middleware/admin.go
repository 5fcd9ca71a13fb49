package middleware

import (
	"net/http"
	"strings"

	"cinetrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group behind the configured admin allow-list.
// Runs after JWTAuth, which has already put the verified email in context.
func RequireAdmin(adminEmails []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = true
	}

	return func(c *gin.Context) {
		email := strings.ToLower(c.GetString("email"))
		if email == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !allowed[email] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "This area is restricted to administrators")
			c.Abort()
			return
		}

		c.Next()
	}
}
