package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aks1489/icstconnect-sub000/internal/response"
)

// RequireRole checks that the staff JWT carries one of the given roles.
// Must run after RequireStaffJWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
	}
}
