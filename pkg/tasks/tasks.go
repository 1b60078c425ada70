package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"videotube/pkg/storage"

	"github.com/hibiken/asynq"
)

const (
	TypeRemoveAsset = "asset:remove"

	QueueCleanup = "cleanup"
	maxRetry     = 10
)

// TaskEnqueuer is implemented by asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type RemoveAssetPayload struct {
	AssetID string       `json:"assetId"`
	Kind    storage.Kind `json:"kind"`
}

func NewRemoveAssetTask(assetID string, kind storage.Kind) (*asynq.Task, error) {
	payload, err := json.Marshal(RemoveAssetPayload{AssetID: assetID, Kind: kind})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRemoveAsset, payload), nil
}

// CleanupScheduler retries asset removals that failed inline.
type CleanupScheduler interface {
	ScheduleRemoval(ctx context.Context, assetID string, kind storage.Kind) error
}

type asynqScheduler struct {
	enqueuer TaskEnqueuer
}

func NewCleanupScheduler(enqueuer TaskEnqueuer) CleanupScheduler {
	return &asynqScheduler{enqueuer: enqueuer}
}

func (s *asynqScheduler) ScheduleRemoval(ctx context.Context, assetID string, kind storage.Kind) error {
	task, err := NewRemoveAssetTask(assetID, kind)
	if err != nil {
		return err
	}
	_, err = s.enqueuer.Enqueue(task,
		asynq.Queue(QueueCleanup),
		asynq.MaxRetry(maxRetry),
		asynq.ProcessIn(30*time.Second),
		asynq.TaskID(fmt.Sprintf("%s:%s", TypeRemoveAsset, assetID)),
	)
	if err != nil && err != asynq.ErrTaskIDConflict {
		return fmt.Errorf("failed to enqueue %s: %w", TypeRemoveAsset, err)
	}
	return nil
}

// RemoveAssetHandler runs inside cmd/worker.
type RemoveAssetHandler struct {
	storage storage.FileStorage
}

func NewRemoveAssetHandler(fs storage.FileStorage) *RemoveAssetHandler {
	return &RemoveAssetHandler{storage: fs}
}

func (h *RemoveAssetHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p RemoveAssetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if p.AssetID == "" {
		return fmt.Errorf("empty asset id: %w", asynq.SkipRetry)
	}
	return h.storage.Remove(ctx, p.AssetID, p.Kind)
}
