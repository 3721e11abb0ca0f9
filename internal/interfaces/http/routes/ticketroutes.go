package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/ChaleeCh/support-tickets/internal/interfaces/http/handlers/ticket"
	"github.com/ChaleeCh/support-tickets/internal/interfaces/http/middleware"
	"github.com/ChaleeCh/support-tickets/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
	Enforcer      *authorization.Enforcer
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	api := engine.Group("/api")
	api.Use(middleware.RequireRole())
	{
		tickets := api.Group("/tickets")
		{
			// Specific paths before parameterized ones to avoid route
			// conflicts.
			tickets.POST("/upload",
				authorization.RequireCapability(config.Enforcer, authorization.ObjectTickets, authorization.ActionUpload),
				config.TicketHandler.UploadBatch)

			tickets.POST("",
				authorization.RequireCapability(config.Enforcer, authorization.ObjectTickets, authorization.ActionSubmit),
				config.TicketHandler.SubmitTicket)
			tickets.GET("", config.TicketHandler.ListTickets)
			tickets.PUT("",
				authorization.RequireCapability(config.Enforcer, authorization.ObjectTickets, authorization.ActionEdit),
				config.TicketHandler.ReconcileEdits)

			tickets.POST("/:id/notes",
				authorization.RequireCapability(config.Enforcer, authorization.ObjectNotes, authorization.ActionAnnotate),
				config.TicketHandler.AddNotes)
			tickets.GET("/:id/attachment", config.TicketHandler.DownloadAttachment)
		}

		api.GET("/stats", config.TicketHandler.GetStats)
	}
}
