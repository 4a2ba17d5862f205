package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	mock_database "gitlab.ozon.dev/ecom/returns/internal/db/mocks"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"go.uber.org/mock/gomock"
)

func TestOutboxTaskRepo_CreateTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()
	ctx := context.Background()

	t.Run("Success assigns id and created status", func(t *testing.T) {
		task := &repository.OutboxTask{
			Payload: []byte(`{"event_type":"created"}`),
			Topic:   "return-events",
		}

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
				assert.NotEqual(t, uuid.Nil, args[0])
				assert.Equal(t, repository.TaskStatusCreated, args[1])
				assert.Equal(t, task.Topic, args[3])
				return nil, nil
			})

		err := repo.CreateTx(ctx, mockTx, task)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID)
	})

	t.Run("Keeps caller id", func(t *testing.T) {
		id := uuid.New()
		task := &repository.OutboxTask{ID: id, Topic: "return-events"}

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
				assert.Equal(t, id, args[0])
				return nil, nil
			})

		err := repo.CreateTx(ctx, mockTx, task)
		assert.NoError(t, err)
	})

	t.Run("Tx Error", func(t *testing.T) {
		txErr := errors.New("transaction error")

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, txErr)

		err := repo.CreateTx(ctx, mockTx, &repository.OutboxTask{Topic: "return-events"})
		assert.Error(t, err)
		assert.ErrorIs(t, err, txErr)
	})
}

func TestOutboxTaskRepo_GetProcessableTasksTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := []*repository.OutboxTask{
			{ID: uuid.New(), Status: repository.TaskStatusCreated, Topic: "return-events"},
			{ID: uuid.New(), Status: repository.TaskStatusFailed, Attempts: 1, Topic: "return-events"},
		}

		mockTx.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Eq(repository.TaskStatusCreated), gomock.Eq(repository.TaskStatusFailed),
				gomock.Eq(3), gomock.Eq(10)).
			DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
				assert.Contains(t, query, "FOR UPDATE SKIP LOCKED")
				assert.Contains(t, query, "ORDER BY updated_at ASC")
				*dest.(*[]*repository.OutboxTask) = expected
				return nil
			})

		tasks, err := repo.GetProcessableTasksTx(ctx, mockTx, 10, 3)
		assert.NoError(t, err)
		assert.Equal(t, expected, tasks)
	})

	t.Run("Tx Error", func(t *testing.T) {
		txErr := errors.New("transaction error")

		mockTx.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(txErr)

		tasks, err := repo.GetProcessableTasksTx(ctx, mockTx, 10, 3)
		assert.Nil(t, tasks)
		assert.ErrorIs(t, err, txErr)
	})
}

func TestOutboxTaskRepo_UpdateTaskStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()
	ctx := context.Background()

	id := uuid.New()
	completedAt := time.Now()

	t.Run("Done over pool", func(t *testing.T) {
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq(id), gomock.Eq(repository.TaskStatusDone), gomock.Eq(1),
				gomock.Nil(), gomock.Eq(&completedAt)).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateTaskStatus(ctx, mockDB, id, repository.TaskStatusDone, 1, nil, &completedAt)
		assert.NoError(t, err)
	})

	t.Run("Failed over tx keeps error text", func(t *testing.T) {
		errMsg := "broker unreachable"

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq(id), gomock.Eq(repository.TaskStatusFailed), gomock.Eq(2),
				gomock.Eq(&errMsg), gomock.Nil()).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateTaskStatusTx(ctx, mockTx, id, repository.TaskStatusFailed, 2, &errMsg, nil)
		assert.NoError(t, err)
	})

	t.Run("Missing task", func(t *testing.T) {
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateTaskStatus(ctx, mockDB, id, repository.TaskStatusDone, 1, nil, &completedAt)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := errors.New("database error")

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dbErr)

		err := repo.UpdateTaskStatus(ctx, mockDB, id, repository.TaskStatusDone, 1, nil, &completedAt)
		assert.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
	})
}
