package postgresql

import (
	"context"

	"github.com/google/uuid"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

// TimelineRepo only ever inserts and reads; return_events is append-only.
type TimelineRepo struct {
	db db.DB
}

func NewTimelineRepo(db db.DB) storage.TimelineRepository {
	return &TimelineRepo{db: db}
}

func (r *TimelineRepo) CreateTx(ctx context.Context, tx db.Tx, event *repository.ReturnEvent) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO return_events (
            return_id, event_type, previous_status, new_status, notes, actor, actor_role, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, event.ReturnID, event.EventType, event.PreviousStatus, event.NewStatus,
		event.Notes, event.Actor, event.ActorRole, event.CreatedAt)
	return err
}

func (r *TimelineRepo) GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]*repository.ReturnEvent, error) {
	var events []*repository.ReturnEvent
	err := r.db.Select(ctx, &events, `
        SELECT * FROM return_events
        WHERE return_id = $1
        ORDER BY id ASC
    `, returnID)
	return events, err
}
