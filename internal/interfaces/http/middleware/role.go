package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/authorization"
	"github.com/ChaleeCh/support-tickets/internal/shared/utils"
)

// RoleHeader carries the caller's self-selected role. It is trusted as-is:
// role scoping is a view concern here, not an authentication boundary.
const RoleHeader = "X-Role"

// RequireRole parses the role header and places the role on the context.
// Requests without a recognized role are rejected.
func RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := vo.NewRole(c.GetHeader(RoleHeader))
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "a valid X-Role header is required")
			c.Abort()
			return
		}
		c.Set(authorization.ContextRoleKey, role)
		c.Next()
	}
}
