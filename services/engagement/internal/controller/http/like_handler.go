package http

import (
	"context"

	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/response"
	"videotube/services/engagement/internal/entity"
	"videotube/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase, logger *logger.Logger) *LikeHandler {
	return &LikeHandler{
		likeUseCase: likeUseCase,
		logger:      logger,
	}
}

type toggleFunc func(ctx context.Context, targetID, actorID string) (*entity.LikeToggle, error)

func (h *LikeHandler) toggle(c *gin.Context, param, noun string, fn toggleFunc) {
	res, err := fn(c.Request.Context(), c.Param(param), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Liked " + noun + " successfully"
	if !res.IsLiked {
		message = "Unliked " + noun + " successfully"
	}
	response.OK(c, res, message)
}

// ToggleVideoLike godoc
// @Summary      Like or unlike a video
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", "video", h.likeUseCase.ToggleVideoLike)
}

// ToggleCommentLike godoc
// @Summary      Like or unlike a comment
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", "comment", h.likeUseCase.ToggleCommentLike)
}

// ToggleTweetLike godoc
// @Summary      Like or unlike a tweet
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId path string true "Tweet ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", "tweet", h.likeUseCase.ToggleTweetLike)
}

// GetLikedVideos godoc
// @Summary      Videos liked by the caller
// @Description  Most recently liked first, each with its owner's profile
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Body
// @Failure      401  {object}  response.Body
// @Router       /likes/videos [get]
func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	videos, err := h.likeUseCase.GetLikedVideos(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, videos, "Liked videos fetched successfully")
}
