package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/metrics"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

var (
	// ErrSideEffectFailed wraps a collaborator failure. Nothing local changed:
	// the request is still in its prior status and the caller may retry the
	// same transition.
	ErrSideEffectFailed = errors.New("side effect failed")
	// ErrInvalidAmount marks a refund amount the payment collaborator refuses.
	ErrInvalidAmount = errors.New("invalid refund amount")
)

// Refund methods the payment collaborator accepts.
const (
	RefundMethodOriginalPayment = "original_payment"
	RefundMethodStoreCredit     = "store_credit"
	RefundMethodBankTransfer    = "bank_transfer"
)

const (
	refundStatusInitiated    = "initiated"
	replacementStatusCreated = "created"
)

// ReturnService validates, orchestrates and commits lifecycle operations.
// Collaborator calls always precede the local commit, so a collaborator
// failure leaves no trace in the store.
type ReturnService struct {
	store     Store
	stats     StatsProvider
	validator *lifecycle.Validator
	payments  PaymentService
	orders    OrderService
	shipping  ShippingService
	logger    *zap.Logger
}

func NewReturnService(
	store Store,
	stats StatsProvider,
	validator *lifecycle.Validator,
	payments PaymentService,
	orders OrderService,
	shipping ShippingService,
	logger *zap.Logger,
) *ReturnService {
	return &ReturnService{
		store:     store,
		stats:     stats,
		validator: validator,
		payments:  payments,
		orders:    orders,
		shipping:  shipping,
		logger:    logger,
	}
}

type CreateReturnCommand struct {
	OrderID         string
	UserID          string
	RequestedAction string
	ReasonCode      string
	ReasonText      string
	OrderTotal      int64
	PickupAddress   string
	CustomerShips   bool
	Items           []storage.DraftItem
	Actor           string
	Role            lifecycle.Role
}

func (s *ReturnService) CreateReturn(ctx context.Context, cmd CreateReturnCommand) (*storage.Return, error) {
	l := s.logger.With(zap.String("operation", "CreateReturn"), zap.String("order_id", cmd.OrderID))

	if !lifecycle.RequestedAction(cmd.RequestedAction).Valid() {
		return nil, fmt.Errorf("%w: unknown requested action %q", lifecycle.ErrValidation, cmd.RequestedAction)
	}
	if strings.TrimSpace(cmd.ReasonCode) == "" {
		return nil, fmt.Errorf("%w: reason code is required", lifecycle.ErrValidation)
	}
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("%w: a return needs at least one item", lifecycle.ErrValidation)
	}
	if cmd.OrderTotal <= 0 {
		return nil, fmt.Errorf("%w: order total must be positive", lifecycle.ErrValidation)
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %q needs a positive quantity", lifecycle.ErrValidation, item.OrderLineID)
		}
	}

	ret, err := s.store.CreateReturn(ctx, storage.CreateReturnDraft{
		OrderID:         cmd.OrderID,
		UserID:          cmd.UserID,
		RequestedAction: cmd.RequestedAction,
		ReasonCode:      cmd.ReasonCode,
		ReasonText:      cmd.ReasonText,
		OrderTotal:      cmd.OrderTotal,
		PickupAddress:   cmd.PickupAddress,
		CustomerShips:   cmd.CustomerShips,
		Items:           cmd.Items,
		Actor:           cmd.Actor,
		ActorRole:       string(cmd.Role),
	})
	if err != nil {
		l.Error("Failed to create return", zap.Error(err))
		return nil, err
	}

	l.Info("Return created", zap.String("return_id", ret.ID.String()), zap.String("return_number", ret.ReturnNumber))
	metrics.ReturnsCreatedTotal.Inc()
	return ret, nil
}

type ApproveCommand struct {
	ReturnID        uuid.UUID
	Notes           string
	PickupScheduled *time.Time
	PickupCarrier   string
	PickupAddress   string
	CustomerShips   bool
	Actor           string
	Role            lifecycle.Role
}

func (s *ReturnService) Approve(ctx context.Context, cmd ApproveCommand) (*storage.Return, error) {
	l := s.logger.With(zap.String("operation", "Approve"), zap.String("return_id", cmd.ReturnID.String()))

	ret, err := s.store.GetReturn(ctx, cmd.ReturnID)
	if err != nil {
		return nil, err
	}

	pickupAt := effectivePickup(cmd.PickupScheduled, ret.PickupScheduledAt)
	plan, err := s.validator.Validate(lifecycle.TransitionRequest{
		Current:            ret.Status,
		Requested:          lifecycle.StatusApproved,
		Role:               cmd.Role,
		Notes:              cmd.Notes,
		PickupScheduled:    pickupAt,
		CustomerShips:      cmd.CustomerShips || ret.CustomerShips,
		HasRefundLink:      ret.RefundID != nil,
		HasReplacementLink: ret.ReplacementID != nil,
	})
	if err != nil {
		l.Warn("Approve denied", zap.Error(err))
		return nil, err
	}

	tcmd := transitionCommand(ret, plan, cmd.Notes, cmd.Actor, cmd.Role)
	tcmd.PickupScheduledAt = cmd.PickupScheduled
	tcmd.PickupCarrier = cmd.PickupCarrier
	tcmd.PickupAddress = cmd.PickupAddress

	if cmd.PickupScheduled != nil && cmd.PickupCarrier != "" {
		ticketID, err := s.shipping.SchedulePickup(ctx, PickupRequest{
			ReturnID:    ret.ID,
			OrderID:     ret.OrderID,
			Address:     firstNonEmpty(cmd.PickupAddress, ret.PickupAddress),
			ScheduledAt: *cmd.PickupScheduled,
			Carrier:     cmd.PickupCarrier,
		})
		if err != nil {
			l.Error("Pickup scheduling failed, transition aborted", zap.Error(err))
			metrics.SideEffectFailuresTotal.WithLabelValues("schedule_pickup").Inc()
			return nil, fmt.Errorf("%w: schedule pickup: %v", ErrSideEffectFailed, err)
		}
		tcmd.PickupTicketID = ticketID
	}

	return s.commit(ctx, l, tcmd)
}

type RejectCommand struct {
	ReturnID uuid.UUID
	Notes    string
	Actor    string
	Role     lifecycle.Role
}

func (s *ReturnService) Reject(ctx context.Context, cmd RejectCommand) (*storage.Return, error) {
	l := s.logger.With(zap.String("operation", "Reject"), zap.String("return_id", cmd.ReturnID.String()))

	ret, err := s.store.GetReturn(ctx, cmd.ReturnID)
	if err != nil {
		return nil, err
	}

	plan, err := s.validator.Validate(lifecycle.TransitionRequest{
		Current:            ret.Status,
		Requested:          lifecycle.StatusRejected,
		Role:               cmd.Role,
		Notes:              cmd.Notes,
		HasRefundLink:      ret.RefundID != nil,
		HasReplacementLink: ret.ReplacementID != nil,
	})
	if err != nil {
		l.Warn("Reject denied", zap.Error(err))
		return nil, err
	}

	tcmd := transitionCommand(ret, plan, cmd.Notes, cmd.Actor, cmd.Role)
	tcmd.RejectionReason = cmd.Notes

	return s.commit(ctx, l, tcmd)
}

type UpdateStatusCommand struct {
	ReturnID        uuid.UUID
	NewStatus       string
	Notes           string
	PickupScheduled *time.Time
	PickupCarrier   string
	Actor           string
	Role            lifecycle.Role
}

// UpdateStatus drives the plain operational legs of the graph. Edges that
// create money or order movement have dedicated operations and are refused
// here.
func (s *ReturnService) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (*storage.Return, error) {
	l := s.logger.With(
		zap.String("operation", "UpdateStatus"),
		zap.String("return_id", cmd.ReturnID.String()),
		zap.String("new_status", cmd.NewStatus),
	)

	target, err := lifecycle.ParseStatus(cmd.NewStatus)
	if err != nil {
		return nil, err
	}

	ret, err := s.store.GetReturn(ctx, cmd.ReturnID)
	if err != nil {
		return nil, err
	}

	pickupAt := effectivePickup(cmd.PickupScheduled, ret.PickupScheduledAt)
	plan, err := s.validator.Validate(lifecycle.TransitionRequest{
		Current:            ret.Status,
		Requested:          target,
		Role:               cmd.Role,
		Notes:              cmd.Notes,
		PickupScheduled:    pickupAt,
		CustomerShips:      ret.CustomerShips,
		HasRefundLink:      ret.RefundID != nil,
		HasReplacementLink: ret.ReplacementID != nil,
	})
	if err != nil {
		l.Warn("Status update denied", zap.Error(err))
		return nil, err
	}

	switch plan.Effect {
	case lifecycle.SideEffectCreateRefund:
		return nil, fmt.Errorf("%w: refunds go through the refund operation", lifecycle.ErrValidation)
	case lifecycle.SideEffectCreateReplacement:
		return nil, fmt.Errorf("%w: replacements go through the replacement operation", lifecycle.ErrValidation)
	}

	tcmd := transitionCommand(ret, plan, cmd.Notes, cmd.Actor, cmd.Role)
	if target == lifecycle.StatusRejected {
		tcmd.RejectionReason = cmd.Notes
	}

	if plan.Effect == lifecycle.SideEffectSchedulePickup {
		tcmd.PickupScheduledAt = cmd.PickupScheduled
		tcmd.PickupCarrier = cmd.PickupCarrier

		if cmd.PickupScheduled != nil && cmd.PickupCarrier != "" {
			ticketID, err := s.shipping.SchedulePickup(ctx, PickupRequest{
				ReturnID:    ret.ID,
				OrderID:     ret.OrderID,
				Address:     ret.PickupAddress,
				ScheduledAt: *cmd.PickupScheduled,
				Carrier:     cmd.PickupCarrier,
			})
			if err != nil {
				l.Error("Pickup scheduling failed, transition aborted", zap.Error(err))
				metrics.SideEffectFailuresTotal.WithLabelValues("schedule_pickup").Inc()
				return nil, fmt.Errorf("%w: schedule pickup: %v", ErrSideEffectFailed, err)
			}
			tcmd.PickupTicketID = ticketID
		}
	}

	return s.commit(ctx, l, tcmd)
}

type RefundCommand struct {
	ReturnID uuid.UUID
	Amount   int64
	Method   string
	Partial  bool
	Notes    string
	Actor    string
	Role     lifecycle.Role
}

func (s *ReturnService) InitiateRefund(ctx context.Context, cmd RefundCommand) (*storage.Return, error) {
	l := s.logger.With(
		zap.String("operation", "InitiateRefund"),
		zap.String("return_id", cmd.ReturnID.String()),
		zap.Int64("amount", cmd.Amount),
	)

	if !validRefundMethod(cmd.Method) {
		return nil, fmt.Errorf("%w: unknown refund method %q", lifecycle.ErrValidation, cmd.Method)
	}

	ret, err := s.store.GetReturn(ctx, cmd.ReturnID)
	if err != nil {
		return nil, err
	}

	if cmd.Amount <= 0 || cmd.Amount > ret.OrderTotal {
		l.Warn("Refund amount out of range", zap.Int64("order_total", ret.OrderTotal))
		return nil, fmt.Errorf("%w: refund amount %d out of range, order total is %d",
			lifecycle.ErrValidation, cmd.Amount, ret.OrderTotal)
	}

	target := lifecycle.StatusRefundInitiated
	if cmd.Partial {
		target = lifecycle.StatusRefundPartial
	}

	plan, err := s.validator.Validate(lifecycle.TransitionRequest{
		Current:            ret.Status,
		Requested:          target,
		Role:               cmd.Role,
		Notes:              cmd.Notes,
		HasRefundLink:      ret.RefundID != nil,
		HasReplacementLink: ret.ReplacementID != nil,
	})
	if err != nil {
		l.Warn("Refund denied", zap.Error(err))
		return nil, err
	}

	externalID, err := s.payments.CreateRefund(ctx, RefundRequest{
		ReturnID: ret.ID,
		OrderID:  ret.OrderID,
		UserID:   ret.UserID,
		Amount:   cmd.Amount,
		Method:   cmd.Method,
		Partial:  cmd.Partial,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			l.Warn("Payment service refused the amount", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", lifecycle.ErrValidation, err)
		}
		l.Error("Refund creation failed, transition aborted", zap.Error(err))
		metrics.SideEffectFailuresTotal.WithLabelValues("create_refund").Inc()
		return nil, fmt.Errorf("%w: create refund: %v", ErrSideEffectFailed, err)
	}

	tcmd := transitionCommand(ret, plan, cmd.Notes, cmd.Actor, cmd.Role)
	tcmd.Refund = &repository.Refund{
		ExternalID: externalID,
		Amount:     cmd.Amount,
		Method:     cmd.Method,
		Status:     refundStatusInitiated,
		Notes:      cmd.Notes,
	}

	return s.commit(ctx, l, tcmd)
}

type ReplacementCommand struct {
	ReturnID uuid.UUID
	Notes    string
	Actor    string
	Role     lifecycle.Role
}

func (s *ReturnService) CreateReplacement(ctx context.Context, cmd ReplacementCommand) (*storage.Return, error) {
	l := s.logger.With(zap.String("operation", "CreateReplacement"), zap.String("return_id", cmd.ReturnID.String()))

	detail, err := s.store.GetDetail(ctx, cmd.ReturnID)
	if err != nil {
		return nil, err
	}

	plan, err := s.validator.Validate(lifecycle.TransitionRequest{
		Current:            detail.Status,
		Requested:          lifecycle.StatusReplacementInitiated,
		Role:               cmd.Role,
		Notes:              cmd.Notes,
		HasRefundLink:      detail.RefundID != nil,
		HasReplacementLink: detail.ReplacementID != nil,
	})
	if err != nil {
		l.Warn("Replacement denied", zap.Error(err))
		return nil, err
	}

	items := make([]ReplacementItem, len(detail.Items))
	for i, it := range detail.Items {
		items[i] = ReplacementItem{
			OrderLineID: it.OrderLineID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		}
	}

	newOrderID, err := s.orders.CreateReplacementOrder(ctx, ReplacementRequest{
		ReturnID: detail.ID,
		OrderID:  detail.OrderID,
		UserID:   detail.UserID,
		Items:    items,
	})
	if err != nil {
		l.Error("Replacement order creation failed, transition aborted", zap.Error(err))
		metrics.SideEffectFailuresTotal.WithLabelValues("create_replacement").Inc()
		return nil, fmt.Errorf("%w: create replacement order: %v", ErrSideEffectFailed, err)
	}

	tcmd := transitionCommand(&detail.Return, plan, cmd.Notes, cmd.Actor, cmd.Role)
	tcmd.Replacement = &repository.Replacement{
		NewOrderID: newOrderID,
		Status:     replacementStatusCreated,
		Notes:      cmd.Notes,
	}

	return s.commit(ctx, l, tcmd)
}

type NoteCommand struct {
	ReturnID uuid.UUID
	Notes    string
	Actor    string
	Role     lifecycle.Role
}

func (s *ReturnService) AddNote(ctx context.Context, cmd NoteCommand) (*storage.Return, error) {
	l := s.logger.With(zap.String("operation", "AddNote"), zap.String("return_id", cmd.ReturnID.String()))

	if strings.TrimSpace(cmd.Notes) == "" {
		return nil, fmt.Errorf("%w: note text is required", lifecycle.ErrValidation)
	}

	ret, err := s.store.GetReturn(ctx, cmd.ReturnID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.AddNote(ctx, storage.NoteCommand{
		ReturnID:        ret.ID,
		ExpectedVersion: ret.Version,
		Notes:           cmd.Notes,
		Actor:           cmd.Actor,
		ActorRole:       string(cmd.Role),
		ReturnNumber:    ret.ReturnNumber,
		OrderID:         ret.OrderID,
		UserID:          ret.UserID,
	})
	if err != nil {
		l.Error("Failed to add note", zap.Error(err))
		return nil, err
	}

	l.Info("Note added")
	return updated, nil
}

// Detail is the admin detail view plus the edges the caller's role may drive.
type Detail struct {
	storage.ReturnDetail
	AvailableTransitions []lifecycle.Status `json:"available_transitions"`
}

func (s *ReturnService) GetDetail(ctx context.Context, id uuid.UUID, role lifecycle.Role) (*Detail, error) {
	detail, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{
		ReturnDetail:         *detail,
		AvailableTransitions: s.validator.AvailableTransitions(detail.Status, role),
	}, nil
}

func (s *ReturnService) List(ctx context.Context, filter repository.ReturnFilter) ([]storage.Return, error) {
	return s.store.ListReturns(ctx, filter)
}

func (s *ReturnService) GetStats(ctx context.Context) (map[lifecycle.Status]int64, error) {
	return s.stats.Stats(ctx)
}

func (s *ReturnService) commit(ctx context.Context, l *zap.Logger, tcmd storage.TransitionCommand) (*storage.Return, error) {
	updated, err := s.store.ApplyTransition(ctx, tcmd)
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			l.Warn("Transition lost a version race", zap.Int64("expected_version", tcmd.ExpectedVersion))
			metrics.TransitionConflictsTotal.Inc()
		} else {
			l.Error("Failed to commit transition", zap.Error(err))
		}
		return nil, err
	}

	l.Info("Transition committed",
		zap.String("from", string(tcmd.From)),
		zap.String("to", string(tcmd.To)),
		zap.Int64("version", updated.Version),
	)
	metrics.TransitionsTotal.WithLabelValues(string(tcmd.To)).Inc()
	return updated, nil
}

func transitionCommand(ret *storage.Return, plan lifecycle.TransitionPlan, notes, actor string, role lifecycle.Role) storage.TransitionCommand {
	return storage.TransitionCommand{
		ReturnID:        ret.ID,
		ExpectedVersion: ret.Version,
		From:            plan.From,
		To:              plan.To,
		Notes:           notes,
		Actor:           actor,
		ActorRole:       string(role),
		ReturnNumber:    ret.ReturnNumber,
		OrderID:         ret.OrderID,
		UserID:          ret.UserID,
	}
}

func effectivePickup(requested, stored *time.Time) *time.Time {
	if requested != nil {
		return requested
	}
	return stored
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func validRefundMethod(method string) bool {
	switch method {
	case RefundMethodOriginalPayment, RefundMethodStoreCredit, RefundMethodBankTransfer:
		return true
	}
	return false
}
