package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	guilds := engine.Group("/api/guilds/:guild_id")
	{
		guilds.GET("/tickets/stats", config.TicketHandler.GetStats)
	}
}
