package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	mock_db "gitlab.ozon.dev/ecom/returns/internal/db/mocks"
	mock_kafka "gitlab.ozon.dev/ecom/returns/internal/kafka/mocks"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	mock_storage "gitlab.ozon.dev/ecom/returns/internal/storage/mocks"
)

type publisherMocks struct {
	db       *mock_db.MockDB
	tx       *mock_db.MockTx
	outbox   *mock_storage.MockOutboxTaskRepository
	producer *mock_kafka.MockProducer
}

func newPublisherForTest(ctrl *gomock.Controller) (*Publisher, *publisherMocks) {
	m := &publisherMocks{
		db:       mock_db.NewMockDB(ctrl),
		tx:       mock_db.NewMockTx(ctrl),
		outbox:   mock_storage.NewMockOutboxTaskRepository(ctrl),
		producer: mock_kafka.NewMockProducer(ctrl),
	}
	p := NewPublisher(m.db, m.outbox, m.producer, PublisherConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
		MaxAttempts:  3,
	})
	return p, m
}

func eventTask(t *testing.T, returnID string) *repository.OutboxTask {
	t.Helper()
	payload, err := jsoniter.ConfigFastest.Marshal(repository.ReturnEventPayload{
		ReturnID:  returnID,
		EventType: "status_changed",
		NewStatus: "approved",
	})
	require.NoError(t, err)
	return &repository.OutboxTask{
		ID:      uuid.New(),
		Status:  repository.TaskStatusCreated,
		Payload: payload,
		Topic:   "return-events",
	}
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes claimed tasks keyed by return id and marks them done", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		p, m := newPublisherForTest(ctrl)

		first := eventTask(t, "aaaaaaaa-1111-4ccc-8ddd-eeeeeeeeeeee")
		second := eventTask(t, "bbbbbbbb-2222-4ccc-8ddd-eeeeeeeeeeee")
		second.Status = repository.TaskStatusFailed
		second.Attempts = 1

		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.outbox.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).
			Return([]*repository.OutboxTask{first, second}, nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, first.ID, repository.TaskStatusProcessing, 0, gomock.Nil(), gomock.Nil()).Return(nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, second.ID, repository.TaskStatusProcessing, 1, gomock.Nil(), gomock.Nil()).Return(nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)

		m.producer.EXPECT().SendMessage(ctx, "return-events", []byte("aaaaaaaa-1111-4ccc-8ddd-eeeeeeeeeeee"), first.Payload).Return(nil)
		m.producer.EXPECT().SendMessage(ctx, "return-events", []byte("bbbbbbbb-2222-4ccc-8ddd-eeeeeeeeeeee"), second.Payload).Return(nil)

		m.outbox.EXPECT().UpdateTaskStatus(ctx, m.db, first.ID, repository.TaskStatusDone, 0, gomock.Nil(), gomock.Not(gomock.Nil())).Return(nil)
		m.outbox.EXPECT().UpdateTaskStatus(ctx, m.db, second.ID, repository.TaskStatusDone, 1, gomock.Nil(), gomock.Not(gomock.Nil())).Return(nil)

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("key falls back to the task id when the payload is opaque", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		p, m := newPublisherForTest(ctrl)

		task := &repository.OutboxTask{
			ID:      uuid.New(),
			Status:  repository.TaskStatusCreated,
			Payload: []byte("{not json"),
			Topic:   "return-events",
		}

		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.outbox.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).
			Return([]*repository.OutboxTask{task}, nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, task.ID, repository.TaskStatusProcessing, 0, gomock.Nil(), gomock.Nil()).Return(nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)

		m.producer.EXPECT().SendMessage(ctx, "return-events", []byte(task.ID.String()), task.Payload).Return(nil)
		m.outbox.EXPECT().UpdateTaskStatus(ctx, m.db, task.ID, repository.TaskStatusDone, 0, gomock.Nil(), gomock.Not(gomock.Nil())).Return(nil)

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("send failure marks the task failed and keeps the batch going", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		p, m := newPublisherForTest(ctrl)

		broken := eventTask(t, "aaaaaaaa-1111-4ccc-8ddd-eeeeeeeeeeee")
		broken.Status = repository.TaskStatusFailed
		broken.Attempts = 2
		healthy := eventTask(t, "bbbbbbbb-2222-4ccc-8ddd-eeeeeeeeeeee")

		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.outbox.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).
			Return([]*repository.OutboxTask{broken, healthy}, nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, broken.ID, repository.TaskStatusProcessing, 2, gomock.Nil(), gomock.Nil()).Return(nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, healthy.ID, repository.TaskStatusProcessing, 0, gomock.Nil(), gomock.Nil()).Return(nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)

		m.producer.EXPECT().SendMessage(ctx, "return-events", gomock.Any(), broken.Payload).
			Return(errors.New("broker unreachable"))
		m.outbox.EXPECT().UpdateTaskStatus(ctx, m.db, broken.ID, repository.TaskStatusFailed, 3, gomock.Not(gomock.Nil()), gomock.Nil()).
			DoAndReturn(func(_ context.Context, _ db.DB, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				assert.Equal(t, "broker unreachable", *lastError)
				return nil
			})

		m.producer.EXPECT().SendMessage(ctx, "return-events", gomock.Any(), healthy.Payload).Return(nil)
		m.outbox.EXPECT().UpdateTaskStatus(ctx, m.db, healthy.ID, repository.TaskStatusDone, 0, gomock.Nil(), gomock.Not(gomock.Nil())).Return(nil)

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("empty batch just commits the claim transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		p, m := newPublisherForTest(ctrl)

		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.outbox.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).Return(nil, nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("claim query failure rolls the transaction back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		p, m := newPublisherForTest(ctrl)

		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.outbox.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).
			Return(nil, errors.New("deadlock detected"))
		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := p.processBatch(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get processable tasks")
	})

	t.Run("shutdown mid-batch releases claimed tasks for the next poll", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		p, m := newPublisherForTest(ctrl)

		first := eventTask(t, "aaaaaaaa-1111-4ccc-8ddd-eeeeeeeeeeee")
		second := eventTask(t, "bbbbbbbb-2222-4ccc-8ddd-eeeeeeeeeeee")

		m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.outbox.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).
			Return([]*repository.OutboxTask{first, second}, nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, first.ID, repository.TaskStatusProcessing, 0, gomock.Nil(), gomock.Nil()).Return(nil)
		m.outbox.EXPECT().UpdateTaskStatusTx(ctx, m.tx, second.ID, repository.TaskStatusProcessing, 0, gomock.Nil(), gomock.Nil()).Return(nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)

		// Released tasks go back to FAILED with attempts untouched, never
		// stuck in PROCESSING. Nothing is sent to the producer.
		released := "publisher stopped before send"
		m.outbox.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, first.ID, repository.TaskStatusFailed, 0, gomock.Not(gomock.Nil()), gomock.Nil()).
			DoAndReturn(func(_ context.Context, _ db.DB, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				assert.Equal(t, released, *lastError)
				return nil
			})
		m.outbox.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, second.ID, repository.TaskStatusFailed, 0, gomock.Not(gomock.Nil()), gomock.Nil()).Return(nil)
		m.producer.EXPECT().Close().Return(nil)

		p.Shutdown()
		p.Shutdown() // second call is a no-op

		err := p.processBatch(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "publisher shutdown")
	})
}

func TestPublisher_RunStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	p, m := newPublisherForTest(ctrl)

	m.db.EXPECT().BeginTx(gomock.Any()).Return(m.tx, nil).AnyTimes()
	m.outbox.EXPECT().GetProcessableTasksTx(gomock.Any(), m.tx, 10, 3).Return(nil, nil).AnyTimes()
	m.tx.EXPECT().Commit(gomock.Any()).Return(nil).AnyTimes()
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	m.producer.EXPECT().Close().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop after context cancellation")
	}

	p.Shutdown()
}
