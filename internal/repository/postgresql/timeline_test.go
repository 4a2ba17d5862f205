package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	mock_database "gitlab.ozon.dev/ecom/returns/internal/db/mocks"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"go.uber.org/mock/gomock"
)

func TestTimelineRepo_CreateTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewTimelineRepo(mockDB)
	ctx := context.Background()

	event := &repository.ReturnEvent{
		ReturnID:       uuid.New(),
		EventType:      "status_changed",
		PreviousStatus: "pending",
		NewStatus:      "approved",
		Notes:          "checked photos",
		Actor:          "alice",
		ActorRole:      "manager",
		CreatedAt:      time.Now(),
	}

	t.Run("Success", func(t *testing.T) {
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq(event.ReturnID), gomock.Eq(event.EventType), gomock.Eq(event.PreviousStatus),
				gomock.Eq(event.NewStatus), gomock.Eq(event.Notes), gomock.Eq(event.Actor),
				gomock.Eq(event.ActorRole), gomock.Eq(event.CreatedAt)).
			Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, event)
		assert.NoError(t, err)
	})

	t.Run("Tx Error", func(t *testing.T) {
		txErr := errors.New("transaction error")

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, txErr)

		err := repo.CreateTx(ctx, mockTx, event)
		assert.Error(t, err)
		assert.Equal(t, txErr, err)
	})
}

func TestTimelineRepo_GetByReturnID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := NewTimelineRepo(mockDB)
	ctx := context.Background()

	returnID := uuid.New()

	t.Run("Success in insertion order", func(t *testing.T) {
		expected := []*repository.ReturnEvent{
			{ID: 1, ReturnID: returnID, EventType: "created", NewStatus: "pending"},
			{ID: 2, ReturnID: returnID, EventType: "status_changed", PreviousStatus: "pending", NewStatus: "approved"},
		}

		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(returnID)).
			DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
				assert.Contains(t, query, "ORDER BY id ASC")
				*dest.(*[]*repository.ReturnEvent) = expected
				return nil
			})

		events, err := repo.GetByReturnID(ctx, returnID)
		assert.NoError(t, err)
		assert.Equal(t, expected, events)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := errors.New("database error")

		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(returnID)).
			Return(dbErr)

		events, err := repo.GetByReturnID(ctx, returnID)
		assert.Error(t, err)
		assert.Nil(t, events)
	})
}
