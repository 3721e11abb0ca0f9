package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	tickethandlers "github.com/ChaleeCh/support-tickets/internal/interfaces/http/handlers/ticket"
	"github.com/ChaleeCh/support-tickets/internal/interfaces/http/middleware"
	sharedConfig "github.com/ChaleeCh/support-tickets/internal/shared/config"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

// SetupRouter assembles the engine: ambient middleware, health probe, and
// the ticket routes.
func SetupRouter(serverCfg *sharedConfig.ServerConfig, routeCfg *TicketRouteConfig, log logger.Interface) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(serverCfg.AllowedOrigins))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := tickethandlers.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	SetupTicketRoutes(engine, routeCfg)

	return engine, nil
}
