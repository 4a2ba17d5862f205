package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrObjectNotFound = errors.New("not found")
	// ErrStaleState is returned when a version-checked update touches zero
	// rows because a concurrent transition won; callers re-fetch and retry.
	ErrStaleState = errors.New("stale state")
)

type ReturnRequest struct {
	ID              uuid.UUID `db:"id"`
	ReturnNumber    string    `db:"return_number"`
	OrderID         string    `db:"order_id"`
	UserID          string    `db:"user_id"`
	RequestedAction string    `db:"requested_action"`
	ReasonCode      string    `db:"reason_code"`
	ReasonText      string    `db:"reason_text"`
	Status          string    `db:"status"`
	OrderTotal      int64     `db:"order_total"`

	PickupAddress     string     `db:"pickup_address"`
	PickupScheduledAt *time.Time `db:"pickup_scheduled_at"`
	PickupCarrier     string     `db:"pickup_carrier"`
	PickupTicketID    string     `db:"pickup_ticket_id"`
	CustomerShips     bool       `db:"customer_ships"`

	RefundID      *uuid.UUID `db:"refund_id"`
	ReplacementID *uuid.UUID `db:"replacement_id"`

	RejectionReason string `db:"rejection_reason"`
	AdminNotes      string `db:"admin_notes"`

	Version     int64      `db:"version"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	ApprovedAt  *time.Time `db:"approved_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

type ReturnItem struct {
	ID          int64     `db:"id"`
	ReturnID    uuid.UUID `db:"return_id"`
	OrderLineID string    `db:"order_line_id"`
	ProductName string    `db:"product_name"`
	Quantity    int       `db:"quantity"`
	Condition   string    `db:"condition"`
	UnitPrice   int64     `db:"unit_price"`
}

// ReturnEvent rows are append-only; no update or delete statement exists for
// the return_events table.
type ReturnEvent struct {
	ID             int64     `db:"id"`
	ReturnID       uuid.UUID `db:"return_id"`
	EventType      string    `db:"event_type"`
	PreviousStatus string    `db:"previous_status"`
	NewStatus      string    `db:"new_status"`
	Notes          string    `db:"notes"`
	Actor          string    `db:"actor"`
	ActorRole      string    `db:"actor_role"`
	CreatedAt      time.Time `db:"created_at"`
}

// Refund is a local snapshot of the payment-service record; the engine stores
// the linking id plus display fields and does not own the refund lifecycle.
type Refund struct {
	ID         uuid.UUID `db:"id"`
	ReturnID   uuid.UUID `db:"return_id"`
	ExternalID string    `db:"external_id"`
	Amount     int64     `db:"amount"`
	Method     string    `db:"method"`
	Status     string    `db:"status"`
	Notes      string    `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}

// Replacement snapshots the order-service record created for a replacement.
type Replacement struct {
	ID         uuid.UUID `db:"id"`
	ReturnID   uuid.UUID `db:"return_id"`
	NewOrderID string    `db:"new_order_id"`
	Status     string    `db:"status"`
	Notes      string    `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}

type StaffUser struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     string `db:"role"`
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

// ReturnFilter narrows admin list queries; zero values mean "no constraint".
type ReturnFilter struct {
	Status string
	// Search matches return_number or order_id exactly.
	Search string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

// TransitionUpdate is the single write shape for status changes. Nil pointer
// fields leave the stored column untouched. ExpectedVersion guards the update:
// zero affected rows means the row moved on (or never existed) since it was
// read.
type TransitionUpdate struct {
	ID              uuid.UUID
	ExpectedVersion int64
	NewStatus       string

	RejectionReason   *string
	PickupScheduledAt *time.Time
	PickupCarrier     *string
	PickupTicketID    *string
	PickupAddress     *string
	RefundID          *uuid.UUID
	ReplacementID     *uuid.UUID
	ApprovedAt        *time.Time
	CompletedAt       *time.Time

	UpdatedAt time.Time
}

// NoteUpdate appends to admin_notes under the same version guard as
// TransitionUpdate.
type NoteUpdate struct {
	ID              uuid.UUID
	ExpectedVersion int64
	Notes           string
	UpdatedAt       time.Time
}
