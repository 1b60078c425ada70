package http

import (
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/response"
	"videotube/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUseCase usecase.TweetUseCase
	logger       *logger.Logger
}

func NewTweetHandler(tweetUseCase usecase.TweetUseCase, logger *logger.Logger) *TweetHandler {
	return &TweetHandler{
		tweetUseCase: tweetUseCase,
		logger:       logger,
	}
}

// CreateTweet godoc
// @Summary      Post a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ContentRequest true "Tweet content"
// @Success      201  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /tweets [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	content, ok := bindContent(c)
	if !ok {
		return
	}

	tweet, err := h.tweetUseCase.CreateTweet(c.Request.Context(), c.GetString(middleware.UserIDKey), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tweet, "Tweet created successfully")
}

// GetUserTweets godoc
// @Summary      List a user's tweets
// @Description  Newest first, each with like count and the caller's like status
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /tweets/user/{userId} [get]
func (h *TweetHandler) GetUserTweets(c *gin.Context) {
	tweets, err := h.tweetUseCase.GetUserTweets(c.Request.Context(), c.Param("userId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tweets, "Tweets fetched successfully")
}

// UpdateTweet godoc
// @Summary      Edit a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId path string true "Tweet ID"
// @Param        request body ContentRequest true "New content"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /tweets/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	content, ok := bindContent(c)
	if !ok {
		return
	}

	tweet, err := h.tweetUseCase.UpdateTweet(c.Request.Context(), c.Param("tweetId"), c.GetString(middleware.UserIDKey), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tweet, "Tweet updated successfully")
}

// DeleteTweet godoc
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId path string true "Tweet ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /tweets/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	tweetID := c.Param("tweetId")
	if err := h.tweetUseCase.DeleteTweet(c.Request.Context(), tweetID, c.GetString(middleware.UserIDKey)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"tweetId": tweetID}, "Tweet deleted successfully")
}
