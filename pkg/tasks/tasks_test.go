package tasks

import (
	"context"
	"errors"
	"testing"

	"videotube/pkg/storage"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, localPath string, kind storage.Kind) (*storage.Asset, error) {
	args := m.Called(ctx, localPath, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Asset), args.Error(1)
}

func (m *MockStorage) Remove(ctx context.Context, assetID string, kind storage.Kind) error {
	return m.Called(ctx, assetID, kind).Error(0)
}

func TestScheduleRemoval_EnqueuesTask(t *testing.T) {
	enq := new(MockEnqueuer)
	enq.On("Enqueue", mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == TypeRemoveAsset && string(task.Payload()) == `{"assetId":"videos/a.mp4","kind":"video"}`
	}), mock.Anything).Return(&asynq.TaskInfo{}, nil)

	err := NewCleanupScheduler(enq).ScheduleRemoval(context.Background(), "videos/a.mp4", storage.KindVideo)

	assert.NoError(t, err)
	enq.AssertExpectations(t)
}

func TestScheduleRemoval_DuplicateIsNotAnError(t *testing.T) {
	enq := new(MockEnqueuer)
	enq.On("Enqueue", mock.Anything, mock.Anything).Return(nil, asynq.ErrTaskIDConflict)

	err := NewCleanupScheduler(enq).ScheduleRemoval(context.Background(), "images/a.png", storage.KindImage)
	assert.NoError(t, err)
}

func TestScheduleRemoval_EnqueueFailure(t *testing.T) {
	enq := new(MockEnqueuer)
	enq.On("Enqueue", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	err := NewCleanupScheduler(enq).ScheduleRemoval(context.Background(), "images/a.png", storage.KindImage)
	assert.Error(t, err)
}

func TestRemoveAssetHandler(t *testing.T) {
	fs := new(MockStorage)
	fs.On("Remove", mock.Anything, "images/t.png", storage.KindImage).Return(nil)

	task, err := NewRemoveAssetTask("images/t.png", storage.KindImage)
	require.NoError(t, err)

	assert.NoError(t, NewRemoveAssetHandler(fs).ProcessTask(context.Background(), task))
	fs.AssertExpectations(t)
}

func TestRemoveAssetHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewRemoveAssetHandler(new(MockStorage))

	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeRemoveAsset, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), asynq.NewTask(TypeRemoveAsset, []byte(`{"kind":"video"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
