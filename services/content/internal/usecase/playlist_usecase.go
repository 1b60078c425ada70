package usecase

import (
	"context"
	"errors"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/logger"
	"videotube/services/content/internal/entity"
	"videotube/services/content/internal/repo/persistent"
)

type PlaylistUseCase interface {
	CreatePlaylist(ctx context.Context, actorID, name, description string) (*entity.Playlist, error)
	GetUserPlaylists(ctx context.Context, userID string) ([]*entity.PlaylistSummary, error)
	GetPlaylist(ctx context.Context, playlistID, actorID string) (*entity.PlaylistDetails, error)
	AddVideo(ctx context.Context, playlistID, videoID, actorID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, actorID string) (*entity.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlistID, actorID string, name, description *string) (*entity.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, actorID string) error
}

type playlistUseCase struct {
	playlistRepo persistent.PlaylistRepository
	videoRepo    persistent.VideoRepository
	users        identity.Store
	guard        OwnershipGuard
	logger       *logger.Logger
}

func NewPlaylistUseCase(
	playlistRepo persistent.PlaylistRepository,
	videoRepo persistent.VideoRepository,
	users identity.Store,
	guard OwnershipGuard,
	logger *logger.Logger,
) PlaylistUseCase {
	return &playlistUseCase{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		users:        users,
		guard:        guard,
		logger:       logger,
	}
}

func (uc *playlistUseCase) CreatePlaylist(ctx context.Context, actorID, name, description string) (*entity.Playlist, error) {
	name, err := requireText(name, "Name")
	if err != nil {
		return nil, err
	}
	description, err = requireText(description, "Description")
	if err != nil {
		return nil, err
	}

	playlist := &entity.Playlist{OwnerID: actorID, Name: name, Description: description}
	if err := uc.playlistRepo.Create(ctx, playlist); err != nil {
		uc.logger.Error("Failed to create playlist: %v", err)
		return nil, apperr.Internal(err, "Failed to create playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) GetUserPlaylists(ctx context.Context, userID string) ([]*entity.PlaylistSummary, error) {
	if !canonicalID(&userID) {
		return nil, apperr.Validation("Invalid user id")
	}
	exists, err := uc.users.Exists(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to fetch user")
	}
	if !exists {
		return nil, apperr.NotFound("User not found")
	}

	playlists, err := uc.playlistRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to fetch playlists")
	}

	summaries := make([]*entity.PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		summaries = append(summaries, &entity.PlaylistSummary{Playlist: p, TotalVideos: len(p.VideoIDs)})
	}
	return summaries, nil
}

// GetPlaylist resolves the playlist's videos in order. Entries whose video is
// gone, or unpublished and not the actor's, are skipped.
func (uc *playlistUseCase) GetPlaylist(ctx context.Context, playlistID, actorID string) (*entity.PlaylistDetails, error) {
	ctx, span := tracer.Start(ctx, "Content.PlaylistUseCase.GetPlaylist")
	defer span.End()

	if err := requireID(entity.KindPlaylist, &playlistID); err != nil {
		return nil, err
	}

	playlist, err := uc.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err, entity.KindPlaylist, "fetch playlist")
	}

	byID, err := uc.videoRepo.GetByIDs(ctx, playlist.VideoIDs)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch playlist videos")
	}
	videos := make([]*entity.Video, 0, len(playlist.VideoIDs))
	for _, id := range playlist.VideoIDs {
		if v, ok := byID[id]; ok && visibleTo(v, actorID) {
			videos = append(videos, v)
		}
	}

	owners, err := uc.users.GetUsersByIDs(ctx, []string{playlist.OwnerID})
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch playlist owner")
	}

	return &entity.PlaylistDetails{
		Playlist: playlist,
		Owner:    owners[playlist.OwnerID],
		Videos:   videos,
	}, nil
}

func (uc *playlistUseCase) AddVideo(ctx context.Context, playlistID, videoID, actorID string) (*entity.Playlist, error) {
	if err := requireID(entity.KindPlaylist, &playlistID); err != nil {
		return nil, err
	}
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(ctx, entity.KindPlaylist, playlistID, actorID); err != nil {
		return nil, err
	}

	if _, err := visibleVideo(ctx, uc.videoRepo, videoID, actorID); err != nil {
		return nil, err
	}

	if err := uc.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, persistent.ErrAlreadyExists) {
			return nil, apperr.Validation("Video is already in the playlist")
		}
		uc.logger.Error("Failed to add video %s to playlist %s: %v", videoID, playlistID, err)
		return nil, storeErr(err, entity.KindPlaylist, "add video to playlist")
	}
	return uc.reload(ctx, playlistID)
}

func (uc *playlistUseCase) RemoveVideo(ctx context.Context, playlistID, videoID, actorID string) (*entity.Playlist, error) {
	if err := requireID(entity.KindPlaylist, &playlistID); err != nil {
		return nil, err
	}
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(ctx, entity.KindPlaylist, playlistID, actorID); err != nil {
		return nil, err
	}

	if err := uc.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, apperr.NotFound("Video is not in the playlist")
		}
		return nil, apperr.Internal(err, "Failed to remove video from playlist")
	}
	return uc.reload(ctx, playlistID)
}

func (uc *playlistUseCase) UpdatePlaylist(ctx context.Context, playlistID, actorID string, name, description *string) (*entity.Playlist, error) {
	if err := requireID(entity.KindPlaylist, &playlistID); err != nil {
		return nil, err
	}
	if name == nil && description == nil {
		return nil, apperr.Validation("Provide a name or description to update")
	}

	fields := make(map[string]interface{}, 2)
	if name != nil {
		v, err := requireText(*name, "Name")
		if err != nil {
			return nil, err
		}
		fields["name"] = v
	}
	if description != nil {
		v, err := requireText(*description, "Description")
		if err != nil {
			return nil, err
		}
		fields["description"] = v
	}

	if err := uc.guard.Authorize(ctx, entity.KindPlaylist, playlistID, actorID); err != nil {
		return nil, err
	}
	if err := uc.playlistRepo.Update(ctx, playlistID, fields); err != nil {
		return nil, storeErr(err, entity.KindPlaylist, "update playlist")
	}
	return uc.reload(ctx, playlistID)
}

func (uc *playlistUseCase) DeletePlaylist(ctx context.Context, playlistID, actorID string) error {
	if err := requireID(entity.KindPlaylist, &playlistID); err != nil {
		return err
	}
	if err := uc.guard.Authorize(ctx, entity.KindPlaylist, playlistID, actorID); err != nil {
		return err
	}
	if err := uc.playlistRepo.Delete(ctx, playlistID); err != nil {
		uc.logger.Error("Failed to delete playlist %s: %v", playlistID, err)
		return storeErr(err, entity.KindPlaylist, "delete playlist")
	}
	return nil
}

func (uc *playlistUseCase) reload(ctx context.Context, playlistID string) (*entity.Playlist, error) {
	playlist, err := uc.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err, entity.KindPlaylist, "fetch playlist")
	}
	return playlist, nil
}
