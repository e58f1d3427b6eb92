package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/scholaris-ph/sis-api/internal/models"
	appErrors "github.com/scholaris-ph/sis-api/pkg/errors"
	"github.com/scholaris-ph/sis-api/pkg/response"
)

// RequireCapability gates a route on the static role capability matrix.
// Students additionally may only reach records scoped to their own
// student id when the route carries a :student_id parameter.
func RequireCapability(cap models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !models.HasCapability(claims.Role, cap) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		if claims.Role == models.RoleStudent {
			if target := c.Param("student_id"); target != "" && target != claims.StudentID {
				response.Error(c, appErrors.ErrForbidden)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
