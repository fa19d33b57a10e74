package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coworking/internal/pkg/jwt"
	"coworking/internal/pkg/response"
)

// Auth validates the Bearer token and stores the authenticated user id
// and role on the context. Handlers must only ever trust these values,
// never ids from the request body.
func Auth(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortFail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			response.AbortFail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
