package http

import (
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/response"
	"videotube/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
	logger              *logger.Logger
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

// ToggleSubscription godoc
// @Summary      Subscribe to or unsubscribe from a channel
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId path string true "Channel (user) ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	res, err := h.subscriptionUseCase.ToggleSubscription(c.Request.Context(), c.Param("channelId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Channel subscribed successfully"
	if !res.IsSubscribed {
		message = "Channel unsubscribed successfully"
	}
	response.OK(c, res, message)
}

// GetChannelSubscribers godoc
// @Summary      Subscribers of a channel
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId path string true "Channel (user) ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	subscribers, err := h.subscriptionUseCase.GetChannelSubscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subscribers, "Subscribers fetched successfully")
}

// IsSubscribed godoc
// @Summary      Whether the caller is subscribed to a channel
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId path string true "Channel (user) ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /subscriptions/c/{channelId}/status [get]
func (h *SubscriptionHandler) IsSubscribed(c *gin.Context) {
	ok, err := h.subscriptionUseCase.IsSubscribed(c.Request.Context(), c.Param("channelId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"isSubscribed": ok}, "Subscription status fetched successfully")
}

// GetSubscribedChannels godoc
// @Summary      Channels a user is subscribed to
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        subscriberId path string true "Subscriber (user) ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	channels, err := h.subscriptionUseCase.GetSubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, channels, "Subscribed channels fetched successfully")
}
