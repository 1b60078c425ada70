package http

import (
	"videotube/pkg/apperr"
	"videotube/pkg/logger"
	"videotube/pkg/middleware"
	"videotube/pkg/response"
	"videotube/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type PlaylistHandler struct {
	playlistUseCase usecase.PlaylistUseCase
	logger          *logger.Logger
}

func NewPlaylistHandler(playlistUseCase usecase.PlaylistUseCase, logger *logger.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		playlistUseCase: playlistUseCase,
		logger:          logger,
	}
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePlaylistRequest true "Playlist"
// @Success      201  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Router       /playlist [post]
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	playlist, err := h.playlistUseCase.CreatePlaylist(c.Request.Context(), c.GetString(middleware.UserIDKey), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, playlist, "Playlist created successfully")
}

// GetUserPlaylists godoc
// @Summary      List a user's playlists
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /playlist/user/{userId} [get]
func (h *PlaylistHandler) GetUserPlaylists(c *gin.Context) {
	playlists, err := h.playlistUseCase.GetUserPlaylists(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, playlists, "Playlists fetched successfully")
}

// GetPlaylist godoc
// @Summary      Get playlist by ID
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId path string true "Playlist ID"
// @Success      200  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /playlist/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlist, err := h.playlistUseCase.GetPlaylist(c.Request.Context(), c.Param("playlistId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, playlist, "Playlist fetched successfully")
}

// UpdatePlaylist godoc
// @Summary      Rename a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId path string true "Playlist ID"
// @Param        request body UpdatePlaylistRequest true "Fields to update"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Router       /playlist/{playlistId} [patch]
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	playlist, err := h.playlistUseCase.UpdatePlaylist(c.Request.Context(), c.Param("playlistId"), c.GetString(middleware.UserIDKey), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, playlist, "Playlist updated successfully")
}

// DeletePlaylist godoc
// @Summary      Delete a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId path string true "Playlist ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /playlist/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlistID := c.Param("playlistId")
	if err := h.playlistUseCase.DeletePlaylist(c.Request.Context(), playlistID, c.GetString(middleware.UserIDKey)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"playlistId": playlistID}, "Playlist deleted successfully")
}

// AddVideo godoc
// @Summary      Add a video to a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Param        playlistId path string true "Playlist ID"
// @Success      200  {object}  response.Body
// @Failure      400  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /playlist/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlist, err := h.playlistUseCase.AddVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, playlist, "Video added to playlist")
}

// RemoveVideo godoc
// @Summary      Remove a video from a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        videoId path string true "Video ID"
// @Param        playlistId path string true "Playlist ID"
// @Success      200  {object}  response.Body
// @Failure      403  {object}  response.Body
// @Failure      404  {object}  response.Body
// @Router       /playlist/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlist, err := h.playlistUseCase.RemoveVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, playlist, "Video removed from playlist")
}
