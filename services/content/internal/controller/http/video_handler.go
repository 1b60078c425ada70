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

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	uploadDir    string
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, uploadDir string, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		uploadDir:    uploadDir,
		logger:       logger,
	}
}

// ListVideos godoc
// @Summary      List videos
// @Description  Paginated video listing with optional search, sorting and owner filter. Unpublished videos are only listed for their owner.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10)
// @Param        query query string false "Case-insensitive title/description search"
// @Param        sortBy query string false "Sort column" Enums(createdAt, views, duration, title)
// @Param        sortType query string false "Sort direction" Enums(asc, desc)
// @Param        userId query string false "Owner filter"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.videoUseCase.ListVideos(c.Request.Context(), c.GetString(middleware.UserIDKey), usecase.VideoQuery{
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		UserID:   c.Query("userId"),
		Params:   params,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, page, "Videos fetched successfully")
}

// PublishVideo godoc
// @Summary      Publish a video
// @Description  Uploads the video file and thumbnail, then creates the video record.
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Title"
// @Param        description formData string true "Description"
// @Param        videoFile formData file true "Video file"
// @Param        thumbnail formData file true "Thumbnail image"
// @Success      201  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      502  {object}  response.Body
// @Router       /videos [post]
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	videoPath, err := saveUpload(c, "videoFile", h.uploadDir)
	if err != nil {
		response.Error(c, err)
		return
	}
	thumbnailPath, err := saveUpload(c, "thumbnail", h.uploadDir)
	defer removeTemp(videoPath, thumbnailPath)
	if err != nil {
		response.Error(c, err)
		return
	}

	video, err := h.videoUseCase.PublishVideo(c.Request.Context(), c.GetString(middleware.UserIDKey), usecase.PublishVideoInput{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		h.logger.Error("Failed to publish video: %v", err)
		response.Error(c, err)
		return
	}

	response.Created(c, video, "Video uploaded successfully")
}

// GetVideo godoc
// @Summary      Get video by ID
// @Description  Video with owner profile, live like count and the caller's like status
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /videos/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	details, err := h.videoUseCase.GetVideo(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, details, "Video fetched successfully")
}

// UpdateVideo godoc
// @Summary      Update video details
// @Description  Updates title, description and/or thumbnail. The previous thumbnail is removed only after the new one is stored.
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Param        title formData string false "Title"
// @Param        description formData string false "Description"
// @Param        thumbnail formData file false "New thumbnail"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /videos/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	thumbnailPath, err := saveUpload(c, "thumbnail", h.uploadDir)
	defer removeTemp(thumbnailPath)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := usecase.UpdateVideoInput{ThumbnailPath: thumbnailPath}
	if title, ok := c.GetPostForm("title"); ok {
		input.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		input.Description = &description
	}

	video, err := h.videoUseCase.UpdateVideo(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, video, "Video details updated successfully")
}

// DeleteVideo godoc
// @Summary      Delete a video
// @Description  Deletes the video and its comments, then removes both stored assets. Asset removal failures are reported, not fatal.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	report, err := h.videoUseCase.DeleteVideo(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Video deleted successfully"
	if len(report.AssetFailures) > 0 {
		message = "Video deleted, some stored files could not be removed"
	}
	response.OK(c, report, message)
}

// TogglePublishStatus godoc
// @Summary      Toggle publish status
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublishStatus(c *gin.Context) {
	video, err := h.videoUseCase.TogglePublishStatus(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Video unpublished"
	if video.IsPublished {
		message = "Video published"
	}
	response.OK(c, gin.H{"isPublished": video.IsPublished}, message)
}

// RecordView godoc
// @Summary      Record a view
// @Description  Counts one view per viewer per video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /videos/{videoId}/view [post]
func (h *VideoHandler) RecordView(c *gin.Context) {
	counted, err := h.videoUseCase.RecordView(c.Request.Context(), c.Param("videoId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.logger.Error("Failed to record view: %v", err)
		}
		response.Error(c, err)
		return
	}

	message := "View already counted"
	if counted {
		message = "View recorded"
	}
	response.OK(c, gin.H{"counted": counted}, message)
}
