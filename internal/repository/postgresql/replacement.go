package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

type ReplacementRepo struct {
	db db.DB
}

func NewReplacementRepo(db db.DB) storage.ReplacementRepository {
	return &ReplacementRepo{db: db}
}

func (r *ReplacementRepo) CreateTx(ctx context.Context, tx db.Tx, rep *repository.Replacement) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO replacements (
            id, return_id, new_order_id, status, notes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `, rep.ID, rep.ReturnID, rep.NewOrderID, rep.Status, rep.Notes, rep.CreatedAt)
	return err
}

func (r *ReplacementRepo) GetByReturnID(ctx context.Context, returnID uuid.UUID) (*repository.Replacement, error) {
	var rep repository.Replacement
	err := r.db.Get(ctx, &rep, "SELECT * FROM replacements WHERE return_id = $1", returnID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &rep, nil
}
