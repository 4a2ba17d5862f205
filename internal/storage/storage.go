//go:generate mockgen -source ./storage.go -destination=./mocks/storage.go -package=mock_storage
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
)

type ReturnRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, req *repository.ReturnRequest) error
	CreateItemsTx(ctx context.Context, tx db.Tx, items []*repository.ReturnItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.ReturnRequest, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.ReturnRequest, error)
	GetItems(ctx context.Context, returnID uuid.UUID) ([]*repository.ReturnItem, error)
	List(ctx context.Context, filter repository.ReturnFilter) ([]*repository.ReturnRequest, error)
	CountByStatus(ctx context.Context) ([]*repository.StatusCount, error)
	ApplyTransitionTx(ctx context.Context, tx db.Tx, upd *repository.TransitionUpdate) error
	AppendNoteTx(ctx context.Context, tx db.Tx, upd *repository.NoteUpdate) error
}

type TimelineRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, event *repository.ReturnEvent) error
	GetByReturnID(ctx context.Context, returnID uuid.UUID) ([]*repository.ReturnEvent, error)
}

type RefundRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, refund *repository.Refund) error
	GetByReturnID(ctx context.Context, returnID uuid.UUID) (*repository.Refund, error)
}

type ReplacementRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, rep *repository.Replacement) error
	GetByReturnID(ctx context.Context, returnID uuid.UUID) (*repository.Replacement, error)
}

type StaffRepository interface {
	CreateStaff(ctx context.Context, username, password, role string) error
	GetByUsername(ctx context.Context, username string) (*repository.StaffUser, error)
	ValidateStaff(ctx context.Context, username, password string) (*repository.StaffUser, error)
}

// ReturnStore owns every write to the returns tables. Status changes, their
// timeline events and the outbox rows that mirror them commit atomically or
// not at all.
type ReturnStore struct {
	db           db.DB
	returns      ReturnRepository
	timeline     TimelineRepository
	refunds      RefundRepository
	replacements ReplacementRepository
	outbox       OutboxTaskRepository
	topic        string

	timeNow func() time.Time
}

func NewReturnStore(
	db db.DB,
	returns ReturnRepository,
	timeline TimelineRepository,
	refunds RefundRepository,
	replacements ReplacementRepository,
	outbox OutboxTaskRepository,
	topic string,
) *ReturnStore {
	return &ReturnStore{
		db:           db,
		returns:      returns,
		timeline:     timeline,
		refunds:      refunds,
		replacements: replacements,
		outbox:       outbox,
		topic:        topic,
		timeNow:      time.Now,
	}
}

func buildReturnNumber(now time.Time, id uuid.UUID) string {
	return fmt.Sprintf("RET-%s-%s", now.Format("20060102"), strings.ToUpper(id.String()[:8]))
}

func (s *ReturnStore) CreateReturn(ctx context.Context, draft CreateReturnDraft) (*Return, error) {
	now := s.timeNow().UTC()
	id := uuid.New()

	req := &repository.ReturnRequest{
		ID:              id,
		ReturnNumber:    buildReturnNumber(now, id),
		OrderID:         draft.OrderID,
		UserID:          draft.UserID,
		RequestedAction: draft.RequestedAction,
		ReasonCode:      draft.ReasonCode,
		ReasonText:      draft.ReasonText,
		Status:          string(lifecycle.StatusPending),
		OrderTotal:      draft.OrderTotal,
		PickupAddress:   draft.PickupAddress,
		CustomerShips:   draft.CustomerShips,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]*repository.ReturnItem, len(draft.Items))
	for i, it := range draft.Items {
		items[i] = &repository.ReturnItem{
			ReturnID:    id,
			OrderLineID: it.OrderLineID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Condition:   it.Condition,
			UnitPrice:   it.UnitPrice,
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := s.returns.CreateTx(ctx, tx, req); err != nil {
		return nil, fmt.Errorf("failed to create return request: %w", err)
	}
	if err := s.returns.CreateItemsTx(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create return items: %w", err)
	}

	event := &repository.ReturnEvent{
		ReturnID:  id,
		EventType: EventCreated,
		NewStatus: req.Status,
		Actor:     draft.Actor,
		ActorRole: draft.ActorRole,
		CreatedAt: now,
	}
	if err := s.timeline.CreateTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to create timeline event: %w", err)
	}

	if err := s.enqueueEventTx(ctx, tx, req, event, nil, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit return creation: %w", err)
	}

	view := returnView(req)
	return &view, nil
}

func (s *ReturnStore) GetReturn(ctx context.Context, id uuid.UUID) (*Return, error) {
	req, err := s.returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := returnView(req)
	return &view, nil
}

func (s *ReturnStore) GetDetail(ctx context.Context, id uuid.UUID) (*ReturnDetail, error) {
	req, err := s.returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	repoItems, err := s.returns.GetItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load return items: %w", err)
	}
	repoEvents, err := s.timeline.GetByReturnID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}

	detail := &ReturnDetail{
		Return:   returnView(req),
		Items:    make([]Item, len(repoItems)),
		Timeline: make([]TimelineEvent, len(repoEvents)),
	}
	for i, it := range repoItems {
		detail.Items[i] = itemView(it)
	}
	for i, ev := range repoEvents {
		detail.Timeline[i] = eventView(ev)
	}

	if req.RefundID != nil {
		refund, err := s.refunds.GetByReturnID(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("failed to load refund: %w", err)
		}
		if refund != nil {
			detail.Refund = refundView(refund)
		}
	}
	if req.ReplacementID != nil {
		rep, err := s.replacements.GetByReturnID(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("failed to load replacement: %w", err)
		}
		if rep != nil {
			detail.Replacement = replacementView(rep)
		}
	}

	return detail, nil
}

func (s *ReturnStore) ListReturns(ctx context.Context, filter repository.ReturnFilter) ([]Return, error) {
	repoReturns, err := s.returns.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}

	returns := make([]Return, len(repoReturns))
	for i, req := range repoReturns {
		returns[i] = returnView(req)
	}
	return returns, nil
}

func (s *ReturnStore) CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error) {
	counts, err := s.returns.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[lifecycle.Status]int64, len(counts))
	for _, c := range counts {
		result[lifecycle.Status(c.Status)] = c.Count
	}
	return result, nil
}

// ApplyTransition commits one validated status change. The version guard
// decides races: when the guarded update touches nothing, the row is re-read
// inside the same transaction to tell ErrStaleState from ErrObjectNotFound.
func (s *ReturnStore) ApplyTransition(ctx context.Context, cmd TransitionCommand) (*Return, error) {
	now := s.timeNow().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	upd := &repository.TransitionUpdate{
		ID:              cmd.ReturnID,
		ExpectedVersion: cmd.ExpectedVersion,
		NewStatus:       string(cmd.To),
		UpdatedAt:       now,
	}

	if cmd.RejectionReason != "" {
		upd.RejectionReason = &cmd.RejectionReason
	}
	if cmd.PickupScheduledAt != nil {
		upd.PickupScheduledAt = cmd.PickupScheduledAt
	}
	if cmd.PickupCarrier != "" {
		upd.PickupCarrier = &cmd.PickupCarrier
	}
	if cmd.PickupTicketID != "" {
		upd.PickupTicketID = &cmd.PickupTicketID
	}
	if cmd.PickupAddress != "" {
		upd.PickupAddress = &cmd.PickupAddress
	}
	// approved_at marks the first approval only; re-approvals after a failed
	// pickup keep the original timestamp.
	if cmd.To == lifecycle.StatusApproved && cmd.From == lifecycle.StatusPending {
		upd.ApprovedAt = &now
	}
	if cmd.To == lifecycle.StatusCompleted {
		upd.CompletedAt = &now
	}

	if cmd.Refund != nil {
		if cmd.Refund.ID == uuid.Nil {
			cmd.Refund.ID = uuid.New()
		}
		cmd.Refund.ReturnID = cmd.ReturnID
		cmd.Refund.CreatedAt = now
		if err := s.refunds.CreateTx(ctx, tx, cmd.Refund); err != nil {
			return nil, fmt.Errorf("failed to create refund record: %w", err)
		}
		upd.RefundID = &cmd.Refund.ID
	}
	if cmd.Replacement != nil {
		if cmd.Replacement.ID == uuid.Nil {
			cmd.Replacement.ID = uuid.New()
		}
		cmd.Replacement.ReturnID = cmd.ReturnID
		cmd.Replacement.CreatedAt = now
		if err := s.replacements.CreateTx(ctx, tx, cmd.Replacement); err != nil {
			return nil, fmt.Errorf("failed to create replacement record: %w", err)
		}
		upd.ReplacementID = &cmd.Replacement.ID
	}

	if err := s.returns.ApplyTransitionTx(ctx, tx, upd); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			if _, getErr := s.returns.GetByIDTx(ctx, tx, cmd.ReturnID); getErr != nil {
				if errors.Is(getErr, repository.ErrObjectNotFound) {
					return nil, repository.ErrObjectNotFound
				}
				return nil, getErr
			}
			return nil, repository.ErrStaleState
		}
		return nil, err
	}

	event := &repository.ReturnEvent{
		ReturnID:       cmd.ReturnID,
		EventType:      EventStatusChanged,
		PreviousStatus: string(cmd.From),
		NewStatus:      string(cmd.To),
		Notes:          cmd.Notes,
		Actor:          cmd.Actor,
		ActorRole:      cmd.ActorRole,
		CreatedAt:      now,
	}
	if err := s.timeline.CreateTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to create timeline event: %w", err)
	}

	updated, err := s.returns.GetByIDTx(ctx, tx, cmd.ReturnID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read return after transition: %w", err)
	}

	if err := s.enqueueEventTx(ctx, tx, updated, event, cmd.Refund, cmd.Replacement); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	view := returnView(updated)
	return &view, nil
}

func (s *ReturnStore) AddNote(ctx context.Context, cmd NoteCommand) (*Return, error) {
	now := s.timeNow().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	upd := &repository.NoteUpdate{
		ID:              cmd.ReturnID,
		ExpectedVersion: cmd.ExpectedVersion,
		Notes:           cmd.Notes,
		UpdatedAt:       now,
	}
	if err := s.returns.AppendNoteTx(ctx, tx, upd); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			if _, getErr := s.returns.GetByIDTx(ctx, tx, cmd.ReturnID); getErr != nil {
				if errors.Is(getErr, repository.ErrObjectNotFound) {
					return nil, repository.ErrObjectNotFound
				}
				return nil, getErr
			}
			return nil, repository.ErrStaleState
		}
		return nil, err
	}

	event := &repository.ReturnEvent{
		ReturnID:  cmd.ReturnID,
		EventType: EventNoteAdded,
		Notes:     cmd.Notes,
		Actor:     cmd.Actor,
		ActorRole: cmd.ActorRole,
		CreatedAt: now,
	}
	if err := s.timeline.CreateTx(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to create timeline event: %w", err)
	}

	updated, err := s.returns.GetByIDTx(ctx, tx, cmd.ReturnID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read return after note: %w", err)
	}

	if err := s.enqueueEventTx(ctx, tx, updated, event, nil, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit note: %w", err)
	}

	view := returnView(updated)
	return &view, nil
}

func (s *ReturnStore) enqueueEventTx(
	ctx context.Context,
	tx db.Tx,
	req *repository.ReturnRequest,
	event *repository.ReturnEvent,
	refund *repository.Refund,
	replacement *repository.Replacement,
) error {
	payload := repository.ReturnEventPayload{
		ReturnID:       req.ID.String(),
		ReturnNumber:   req.ReturnNumber,
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		EventType:      event.EventType,
		PreviousStatus: event.PreviousStatus,
		NewStatus:      event.NewStatus,
		Actor:          event.Actor,
		ActorRole:      event.ActorRole,
		PickupTicketID: req.PickupTicketID,
		OccurredAt:     event.CreatedAt,
	}
	if refund != nil {
		payload.RefundID = refund.ID.String()
		payload.RefundAmount = refund.Amount
	}
	if replacement != nil {
		payload.ReplacementOrderID = replacement.NewOrderID
	}

	data, err := jsoniter.ConfigFastest.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	task := &repository.OutboxTask{
		Topic:   s.topic,
		Payload: data,
	}
	if err := s.outbox.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue outbox task: %w", err)
	}
	return nil
}
