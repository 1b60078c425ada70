package usecase

import (
	"context"
	"strings"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/logger"
	"videotube/pkg/models"
	"videotube/pkg/pagination"
	"videotube/pkg/storage"
	"videotube/pkg/tasks"
	"videotube/services/content/internal/entity"
	"videotube/services/content/internal/repo/cache"
	"videotube/services/content/internal/repo/persistent"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("content")

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

type VideoQuery struct {
	Query    string
	SortBy   string
	SortType string
	UserID   string
	Params   pagination.Params
}

type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

type UpdateVideoInput struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

type VideoUseCase interface {
	ListVideos(ctx context.Context, actorID string, q VideoQuery) (pagination.Page[*entity.Video], error)
	PublishVideo(ctx context.Context, actorID string, in PublishVideoInput) (*entity.Video, error)
	GetVideo(ctx context.Context, videoID, actorID string) (*entity.VideoDetails, error)
	UpdateVideo(ctx context.Context, videoID, actorID string, in UpdateVideoInput) (*entity.Video, error)
	DeleteVideo(ctx context.Context, videoID, actorID string) (*entity.DeleteReport, error)
	TogglePublishStatus(ctx context.Context, videoID, actorID string) (*entity.Video, error)
	RecordView(ctx context.Context, videoID, actorID string) (bool, error)
}

type videoUseCase struct {
	videoRepo persistent.VideoRepository
	likeRepo  persistent.LikeReader
	users     identity.Store
	guard     OwnershipGuard
	files     storage.FileStorage
	cleanup   tasks.CleanupScheduler
	views     cache.ViewTracker
	logger    *logger.Logger
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	likeRepo persistent.LikeReader,
	users identity.Store,
	guard OwnershipGuard,
	files storage.FileStorage,
	cleanup tasks.CleanupScheduler,
	views cache.ViewTracker,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		users:     users,
		guard:     guard,
		files:     files,
		cleanup:   cleanup,
		views:     views,
		logger:    logger,
	}
}

func (uc *videoUseCase) ListVideos(ctx context.Context, actorID string, q VideoQuery) (pagination.Page[*entity.Video], error) {
	var empty pagination.Page[*entity.Video]

	column := sortColumns["createdAt"]
	if q.SortBy != "" {
		c, ok := sortColumns[q.SortBy]
		if !ok {
			return empty, apperr.Validation("sortBy must be one of createdAt, views, duration, title")
		}
		column = c
	}

	descending := true
	switch strings.ToLower(q.SortType) {
	case "", "desc":
	case "asc":
		descending = false
	default:
		return empty, apperr.Validation("sortType must be asc or desc")
	}

	if q.UserID != "" {
		if err := requireID("user", &q.UserID); err != nil {
			return empty, err
		}
		exists, err := uc.users.Exists(ctx, q.UserID)
		if err != nil {
			return empty, apperr.Internal(err, "Failed to look up user")
		}
		if !exists {
			return empty, apperr.NotFound("User not found")
		}
	}

	params := q.Params.Normalize()
	videos, total, err := uc.videoRepo.List(ctx, persistent.VideoFilter{
		Query:         q.Query,
		OwnerID:       q.UserID,
		PublishedOnly: q.UserID == "" || q.UserID != actorID,
		SortColumn:    column,
		Descending:    descending,
		Limit:         params.Limit,
		Offset:        params.Offset(),
	})
	if err != nil {
		uc.logger.Error("Failed to list videos: %v", err)
		return empty, apperr.Internal(err, "Failed to fetch videos")
	}

	return pagination.NewPage(videos, params, total), nil
}

// PublishVideo uploads both assets before writing the record. Any failure
// after an upload removes what was already stored.
func (uc *videoUseCase) PublishVideo(ctx context.Context, actorID string, in PublishVideoInput) (*entity.Video, error) {
	title, err := requireText(in.Title, "Title")
	if err != nil {
		return nil, err
	}
	description, err := requireText(in.Description, "Description")
	if err != nil {
		return nil, err
	}
	if in.VideoPath == "" {
		return nil, apperr.Validation("Video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, apperr.Validation("Thumbnail is required")
	}

	videoAsset, err := uc.files.Store(ctx, in.VideoPath, storage.KindVideo)
	if err != nil {
		return nil, uploadErr(err, "Error while uploading video")
	}

	thumbnail, err := uc.files.Store(ctx, in.ThumbnailPath, storage.KindImage)
	if err != nil {
		uc.removeAsset(ctx, videoAsset.ID, storage.KindVideo)
		return nil, uploadErr(err, "Error while uploading thumbnail")
	}

	video := &entity.Video{
		OwnerID:          actorID,
		Title:            title,
		Description:      description,
		VideoFileURL:     videoAsset.URL,
		VideoFileAssetID: videoAsset.ID,
		ThumbnailURL:     thumbnail.URL,
		ThumbnailAssetID: thumbnail.ID,
		Duration:         videoAsset.Duration,
		IsPublished:      true,
	}
	if err := uc.videoRepo.Create(ctx, video); err != nil {
		uc.logger.Error("Failed to create video record: %v", err)
		uc.removeAsset(ctx, videoAsset.ID, storage.KindVideo)
		uc.removeAsset(ctx, thumbnail.ID, storage.KindImage)
		return nil, apperr.Internal(err, "Failed to publish video")
	}

	return video, nil
}

func (uc *videoUseCase) GetVideo(ctx context.Context, videoID, actorID string) (*entity.VideoDetails, error) {
	ctx, span := tracer.Start(ctx, "Content.VideoUseCase.GetVideo")
	defer span.End()

	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		span.RecordError(err)
		return nil, storeErr(err, entity.KindVideo, "fetch video")
	}
	if !visibleTo(video, actorID) {
		return nil, apperr.NotFound("Video not found")
	}

	owners, err := uc.users.GetUsersByIDs(ctx, []string{video.OwnerID})
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch video owner")
	}
	counts, err := uc.likeRepo.CountByTargets(ctx, models.LikeTargetVideo, []string{video.ID})
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to count likes")
	}
	liked, err := uc.likeRepo.LikedTargets(ctx, actorID, models.LikeTargetVideo, []string{video.ID})
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to check like status")
	}

	return &entity.VideoDetails{
		Video:      video,
		Owner:      owners[video.OwnerID],
		LikesCount: counts[video.ID],
		IsLiked:    liked[video.ID],
	}, nil
}

// UpdateVideo stores a replacement thumbnail first. The old asset is removed
// only once the record points at the new one.
func (uc *videoUseCase) UpdateVideo(ctx context.Context, videoID, actorID string, in UpdateVideoInput) (*entity.Video, error) {
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}
	if in.Title == nil && in.Description == nil && in.ThumbnailPath == "" {
		return nil, apperr.Validation("Provide a title, description or thumbnail to update")
	}
	var title, description string
	var err error
	if in.Title != nil {
		if title, err = requireText(*in.Title, "Title"); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if description, err = requireText(*in.Description, "Description"); err != nil {
			return nil, err
		}
	}

	if err := uc.guard.Authorize(ctx, entity.KindVideo, videoID, actorID); err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, entity.KindVideo, "fetch video")
	}

	oldThumbnail := video.ThumbnailAssetID
	var replacement *storage.Asset
	if in.ThumbnailPath != "" {
		replacement, err = uc.files.Store(ctx, in.ThumbnailPath, storage.KindImage)
		if err != nil {
			return nil, uploadErr(err, "Error while uploading thumbnail")
		}
		video.ThumbnailURL = replacement.URL
		video.ThumbnailAssetID = replacement.ID
	}
	if in.Title != nil {
		video.Title = title
	}
	if in.Description != nil {
		video.Description = description
	}

	if err := uc.videoRepo.Update(ctx, video); err != nil {
		uc.logger.Error("Failed to update video %s: %v", videoID, err)
		if replacement != nil {
			uc.removeAsset(ctx, replacement.ID, storage.KindImage)
		}
		return nil, apperr.Internal(err, "Failed to update video")
	}

	if replacement != nil && oldThumbnail != "" {
		uc.removeAsset(ctx, oldThumbnail, storage.KindImage)
	}

	return video, nil
}

func (uc *videoUseCase) DeleteVideo(ctx context.Context, videoID, actorID string) (*entity.DeleteReport, error) {
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(ctx, entity.KindVideo, videoID, actorID); err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, entity.KindVideo, "fetch video")
	}

	purged, err := uc.videoRepo.DeleteWithComments(ctx, videoID)
	if err != nil {
		uc.logger.Error("Failed to delete video %s: %v", videoID, err)
		return nil, storeErr(err, entity.KindVideo, "delete video")
	}

	report := &entity.DeleteReport{
		VideoID:         videoID,
		CommentsDeleted: purged,
		AssetFailures:   []entity.AssetFailure{},
	}
	for _, asset := range []struct {
		id   string
		kind storage.Kind
	}{
		{video.VideoFileAssetID, storage.KindVideo},
		{video.ThumbnailAssetID, storage.KindImage},
	} {
		if asset.id == "" {
			continue
		}
		if failure := uc.removeAsset(ctx, asset.id, asset.kind); failure != nil {
			report.AssetFailures = append(report.AssetFailures, *failure)
		}
	}

	return report, nil
}

func (uc *videoUseCase) TogglePublishStatus(ctx context.Context, videoID, actorID string) (*entity.Video, error) {
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(ctx, entity.KindVideo, videoID, actorID); err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, entity.KindVideo, "fetch video")
	}
	if err := uc.videoRepo.SetPublished(ctx, videoID, !video.IsPublished); err != nil {
		return nil, storeErr(err, entity.KindVideo, "toggle publish status")
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// RecordView counts a viewer once per video.
func (uc *videoUseCase) RecordView(ctx context.Context, videoID, actorID string) (bool, error) {
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return false, err
	}
	if _, err := visibleVideo(ctx, uc.videoRepo, videoID, actorID); err != nil {
		return false, err
	}

	if uc.views != nil && actorID != "" {
		first, err := uc.views.MarkViewed(ctx, videoID, actorID)
		if err != nil {
			uc.logger.Error("Failed to set view marker: %v", err)
			return false, apperr.Internal(err, "Failed to track view")
		}
		if !first {
			return false, nil
		}
	}

	if err := uc.videoRepo.IncrementViews(ctx, videoID); err != nil {
		uc.logger.Error("Failed to increment views: %v", err)
		if uc.views != nil && actorID != "" {
			if ferr := uc.views.Forget(ctx, videoID, actorID); ferr != nil {
				uc.logger.Warn("Failed to clear view marker: %v", ferr)
			}
		}
		return false, apperr.Internal(err, "Failed to track view")
	}
	return true, nil
}

// removeAsset never fails the caller. A failed removal is logged and handed to
// the cleanup worker; the returned AssetFailure describes it.
func (uc *videoUseCase) removeAsset(ctx context.Context, assetID string, kind storage.Kind) *entity.AssetFailure {
	err := uc.files.Remove(ctx, assetID, kind)
	if err == nil {
		return nil
	}

	uc.logger.Error("Failed to remove %s asset %s: %v", kind, assetID, err)
	failure := &entity.AssetFailure{AssetID: assetID, Kind: kind, Error: apperr.MessageOf(err)}
	if uc.cleanup != nil {
		if serr := uc.cleanup.ScheduleRemoval(ctx, assetID, kind); serr != nil {
			uc.logger.Error("Failed to schedule removal of %s: %v", assetID, serr)
		} else {
			failure.RetryScheduled = true
		}
	}
	return failure
}

func uploadErr(err error, message string) error {
	if apperr.KindOf(err) == apperr.KindUploadFailed {
		return err
	}
	return apperr.UploadFailed(err, message)
}

// visibleTo hides unpublished videos from everyone but their owner.
func visibleTo(v *entity.Video, actorID string) bool {
	return v.IsPublished || (actorID != "" && v.OwnerID == actorID)
}

// visibleVideo loads a video the actor may see. Hidden videos read as missing.
func visibleVideo(ctx context.Context, videos persistent.VideoRepository, videoID, actorID string) (*entity.Video, error) {
	video, err := videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, entity.KindVideo, "fetch video")
	}
	if !visibleTo(video, actorID) {
		return nil, apperr.NotFound("Video not found")
	}
	return video, nil
}
