package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
	"github.com/ChaleeCh/support-tickets/internal/shared/utils"
)

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, 500, "Internal server error occurred")
	})
}
