package ticket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corporatewarfare/cwbot/internal/application/ticket/dto"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
	"github.com/corporatewarfare/cwbot/internal/shared/utils"
)

// StatsQuerier counts a guild's tickets by status.
type StatsQuerier interface {
	Execute(ctx context.Context, guildID string) (*dto.TicketStatsDTO, error)
}

type TicketHandler struct {
	statsUC StatsQuerier
	logger  logger.Interface
}

func NewTicketHandler(statsUC StatsQuerier, logger logger.Interface) *TicketHandler {
	return &TicketHandler{statsUC: statsUC, logger: logger}
}

// GetStats handles GET /api/guilds/:guild_id/tickets/stats
func (h *TicketHandler) GetStats(c *gin.Context) {
	guildID, err := utils.ParseSnowflakeParam(c, "guild_id", "guild")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.statsUC.Execute(c.Request.Context(), guildID)
	if err != nil {
		h.logger.Errorw("failed to get ticket stats", "guild_id", guildID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}
