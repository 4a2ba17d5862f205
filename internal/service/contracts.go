//go:generate mockgen -source ./contracts.go -destination=./mocks/contracts.go -package=mock_service
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

// Store is the slice of the return store the service drives. Every mutation
// goes through ApplyTransition or AddNote; the service never writes rows
// itself.
type Store interface {
	CreateReturn(ctx context.Context, draft storage.CreateReturnDraft) (*storage.Return, error)
	GetReturn(ctx context.Context, id uuid.UUID) (*storage.Return, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*storage.ReturnDetail, error)
	ListReturns(ctx context.Context, filter repository.ReturnFilter) ([]storage.Return, error)
	ApplyTransition(ctx context.Context, cmd storage.TransitionCommand) (*storage.Return, error)
	AddNote(ctx context.Context, cmd storage.NoteCommand) (*storage.Return, error)
}

// StatsProvider serves status counts. The default binding is the TTL cache,
// so counts may trail commits slightly.
type StatsProvider interface {
	Stats(ctx context.Context) (map[lifecycle.Status]int64, error)
}

// RefundRequest is what the payment collaborator needs to move money back.
type RefundRequest struct {
	ReturnID uuid.UUID
	OrderID  string
	UserID   string
	Amount   int64
	Method   string
	Partial  bool
}

type ReplacementItem struct {
	OrderLineID string
	ProductName string
	Quantity    int
}

// ReplacementRequest asks the order collaborator for a no-charge replacement
// order carrying the returned items.
type ReplacementRequest struct {
	ReturnID uuid.UUID
	OrderID  string
	UserID   string
	Items    []ReplacementItem
}

// PickupRequest books a courier pickup with the shipping collaborator.
type PickupRequest struct {
	ReturnID    uuid.UUID
	OrderID     string
	Address     string
	ScheduledAt time.Time
	Carrier     string
}

// PaymentService creates refunds and returns the collaborator's reference id.
// Implementations report refused amounts as ErrInvalidAmount.
type PaymentService interface {
	CreateRefund(ctx context.Context, req RefundRequest) (string, error)
}

// OrderService creates replacement orders and returns the new order id.
type OrderService interface {
	CreateReplacementOrder(ctx context.Context, req ReplacementRequest) (string, error)
}

// ShippingService schedules pickups and returns the carrier ticket id.
type ShippingService interface {
	SchedulePickup(ctx context.Context, req PickupRequest) (string, error)
}
