package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/utils"
)

// ContextRoleKey is where the role middleware stores the parsed role.
const ContextRoleKey = "role"

// RoleFromContext returns the role placed on the context by the role
// middleware.
func RoleFromContext(c *gin.Context) (vo.Role, bool) {
	v, exists := c.Get(ContextRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(vo.Role)
	return role, ok
}

// RequireCapability aborts with 403 unless the request's role holds the
// capability.
func RequireCapability(enforcer *Enforcer, object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusBadRequest, "role is required")
			c.Abort()
			return
		}
		if !enforcer.Can(role, object, action) {
			utils.ErrorResponse(c, http.StatusForbidden, "role does not permit this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
