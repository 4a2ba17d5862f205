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

type RefundRepo struct {
	db db.DB
}

func NewRefundRepo(db db.DB) storage.RefundRepository {
	return &RefundRepo{db: db}
}

func (r *RefundRepo) CreateTx(ctx context.Context, tx db.Tx, refund *repository.Refund) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO refunds (
            id, return_id, external_id, amount, method, status, notes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, refund.ID, refund.ReturnID, refund.ExternalID, refund.Amount, refund.Method,
		refund.Status, refund.Notes, refund.CreatedAt)
	return err
}

func (r *RefundRepo) GetByReturnID(ctx context.Context, returnID uuid.UUID) (*repository.Refund, error) {
	var refund repository.Refund
	err := r.db.Get(ctx, &refund, "SELECT * FROM refunds WHERE return_id = $1", returnID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &refund, nil
}
