package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

const defaultListLimit = 20

type ReturnRepo struct {
	db db.DB
}

func NewReturnRepo(db db.DB) storage.ReturnRepository {
	return &ReturnRepo{db: db}
}

func (r *ReturnRepo) CreateTx(ctx context.Context, tx db.Tx, req *repository.ReturnRequest) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO returns (
            id, return_number, order_id, user_id, requested_action, reason_code, reason_text,
            status, order_total, pickup_address, customer_ships, version, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `, req.ID, req.ReturnNumber, req.OrderID, req.UserID, req.RequestedAction, req.ReasonCode,
		req.ReasonText, req.Status, req.OrderTotal, req.PickupAddress, req.CustomerShips,
		req.Version, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *ReturnRepo) CreateItemsTx(ctx context.Context, tx db.Tx, items []*repository.ReturnItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
            INSERT INTO return_items (
                return_id, order_line_id, product_name, quantity, condition, unit_price
            ) VALUES ($1, $2, $3, $4, $5, $6)
        `, item.ReturnID, item.OrderLineID, item.ProductName, item.Quantity, item.Condition, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert return item %s: %w", item.OrderLineID, err)
		}
	}
	return nil
}

func (r *ReturnRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.ReturnRequest, error) {
	var ret repository.ReturnRequest
	err := r.db.Get(ctx, &ret, "SELECT * FROM returns WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (r *ReturnRepo) GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.ReturnRequest, error) {
	var ret repository.ReturnRequest
	err := tx.Get(ctx, &ret, "SELECT * FROM returns WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (r *ReturnRepo) GetItems(ctx context.Context, returnID uuid.UUID) ([]*repository.ReturnItem, error) {
	var items []*repository.ReturnItem
	err := r.db.Select(ctx, &items, `
        SELECT * FROM return_items
        WHERE return_id = $1
        ORDER BY id ASC
    `, returnID)
	return items, err
}

func (r *ReturnRepo) List(ctx context.Context, filter repository.ReturnFilter) ([]*repository.ReturnRequest, error) {
	stmt := goqu.Dialect("postgres").
		From("returns").
		Select(goqu.Star()).
		Order(goqu.I("created_at").Desc())

	if filter.Status != "" {
		stmt = stmt.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.Search != "" {
		stmt = stmt.Where(goqu.Or(
			goqu.Ex{"return_number": filter.Search},
			goqu.Ex{"order_id": filter.Search},
		))
	}
	if filter.From != nil {
		stmt = stmt.Where(goqu.C("created_at").Gte(*filter.From))
	}
	if filter.To != nil {
		stmt = stmt.Where(goqu.C("created_at").Lte(*filter.To))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	stmt = stmt.Limit(uint(limit)).Offset(uint((page - 1) * limit))

	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build returns list query: %w", err)
	}

	var returns []*repository.ReturnRequest
	if err := r.db.Select(ctx, &returns, query, args...); err != nil {
		return nil, err
	}
	return returns, nil
}

func (r *ReturnRepo) CountByStatus(ctx context.Context) ([]*repository.StatusCount, error) {
	var counts []*repository.StatusCount
	err := r.db.Select(ctx, &counts, `
        SELECT status, COUNT(*) AS count
        FROM returns
        GROUP BY status
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to count returns by status: %w", err)
	}
	return counts, nil
}

// ApplyTransitionTx performs the version-guarded status write. Zero affected
// rows yields ErrObjectNotFound; the caller re-reads the row to tell a missing
// request from a lost version race.
func (r *ReturnRepo) ApplyTransitionTx(ctx context.Context, tx db.Tx, upd *repository.TransitionUpdate) error {
	cmdTag, err := tx.Exec(ctx, `
        UPDATE returns
        SET
            status = $3,
            rejection_reason = COALESCE($4, rejection_reason),
            pickup_scheduled_at = COALESCE($5, pickup_scheduled_at),
            pickup_carrier = COALESCE($6, pickup_carrier),
            pickup_ticket_id = COALESCE($7, pickup_ticket_id),
            pickup_address = COALESCE($8, pickup_address),
            refund_id = COALESCE($9, refund_id),
            replacement_id = COALESCE($10, replacement_id),
            approved_at = COALESCE($11, approved_at),
            completed_at = COALESCE($12, completed_at),
            version = version + 1,
            updated_at = $13
        WHERE id = $1 AND version = $2
    `, upd.ID, upd.ExpectedVersion, upd.NewStatus,
		upd.RejectionReason, upd.PickupScheduledAt, upd.PickupCarrier, upd.PickupTicketID,
		upd.PickupAddress, upd.RefundID, upd.ReplacementID, upd.ApprovedAt, upd.CompletedAt,
		upd.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to apply transition for return %s: %w", upd.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// AppendNoteTx concatenates onto admin_notes and bumps the version so note
// writes also serialize against concurrent transitions.
func (r *ReturnRepo) AppendNoteTx(ctx context.Context, tx db.Tx, upd *repository.NoteUpdate) error {
	cmdTag, err := tx.Exec(ctx, `
        UPDATE returns
        SET
            admin_notes = CASE WHEN admin_notes = '' THEN $3 ELSE admin_notes || E'\n' || $3 END,
            version = version + 1,
            updated_at = $4
        WHERE id = $1 AND version = $2
    `, upd.ID, upd.ExpectedVersion, upd.Notes, upd.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to append note for return %s: %w", upd.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
