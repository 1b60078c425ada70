package http

import (
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/response"
	"videotube/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUseCase usecase.DashboardUseCase
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardUseCase usecase.DashboardUseCase, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
		logger:           logger,
	}
}

// GetChannelStats godoc
// @Summary      Channel statistics
// @Description  Totals of videos, views, video likes and subscribers. Defaults to the caller's channel.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        channelId path string false "Channel (user) ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /dashboard/stats [get]
// @Router       /dashboard/stats/{channelId} [get]
func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	channelID := c.Param("channelId")
	if channelID == "" {
		channelID = c.GetString(middleware.UserIDKey)
	}

	stats, err := h.dashboardUseCase.GetChannelStats(c.Request.Context(), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats, "Channel stats fetched successfully")
}

// GetChannelVideos godoc
// @Summary      Videos of the caller's channel
// @Description  Newest first, published or not, each with its like count
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Body
// @Failure      401  {object}  response.Body
// @Router       /dashboard/videos [get]
func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	videos, err := h.dashboardUseCase.GetChannelVideos(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, videos, "Channel videos fetched successfully")
}
