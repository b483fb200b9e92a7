package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/librisapp/libris-backend/internal/response"
)

// RequireRole checks that the JWT carries the required role attribute.
// Must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != role {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}

		c.Next()
	}
}
