package http

import (
	"videotube/pkg/apperr"
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/pagination"
	"videotube/pkg/response"
	"videotube/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ContentRequest struct {
	Content string `json:"content"`
}

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

func bindContent(c *gin.Context) (string, bool) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return "", false
	}
	return req.Content, true
}

// GetVideoComments godoc
// @Summary      List comments of a video
// @Description  Newest first, each with owner profile, like count and the caller's like status. A missing video has its leftover comments purged and returns 404.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10)
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /comments/{videoId} [get]
func (h *CommentHandler) GetVideoComments(c *gin.Context) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	feed, err := h.commentUseCase.GetVideoComments(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if feed.NoComments {
		response.OK(c, feed, "No comments in this video")
		return
	}
	response.OK(c, feed, "Comments fetched successfully")
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Param        request body ContentRequest true "Comment content"
// @Success      201  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /comments/{videoId} [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	content, ok := bindContent(c)
	if !ok {
		return
	}

	comment, err := h.commentUseCase.AddComment(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment, "Comment added successfully")
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Param        request body ContentRequest true "New content"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /comments/c/{commentId} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	content, ok := bindContent(c)
	if !ok {
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), c.Param("commentId"), c.GetString(middleware.UserIDKey), content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comment, "Comment updated successfully")
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /comments/c/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("commentId")
	if err := h.commentUseCase.DeleteComment(c.Request.Context(), commentID, c.GetString(middleware.UserIDKey)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"commentId": commentID}, "Comment deleted successfully")
}
