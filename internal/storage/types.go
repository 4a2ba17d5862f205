package storage

import (
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
)

// Timeline event types. Everything else about a change is carried by the
// previous/new status pair.
const (
	EventCreated       = "created"
	EventStatusChanged = "status_changed"
	EventNoteAdded     = "note_added"
)

type Return struct {
	ID              uuid.UUID        `json:"id"`
	ReturnNumber    string           `json:"return_number"`
	OrderID         string           `json:"order_id"`
	UserID          string           `json:"user_id"`
	RequestedAction string           `json:"requested_action"`
	ReasonCode      string           `json:"reason_code"`
	ReasonText      string           `json:"reason_text,omitempty"`
	Status          lifecycle.Status `json:"status"`
	OrderTotal      int64            `json:"order_total"`

	PickupAddress     string     `json:"pickup_address,omitempty"`
	PickupScheduledAt *time.Time `json:"pickup_scheduled_at,omitempty"`
	PickupCarrier     string     `json:"pickup_carrier,omitempty"`
	PickupTicketID    string     `json:"pickup_ticket_id,omitempty"`
	CustomerShips     bool       `json:"customer_ships"`

	RefundID      *uuid.UUID `json:"refund_id,omitempty"`
	ReplacementID *uuid.UUID `json:"replacement_id,omitempty"`

	RejectionReason string `json:"rejection_reason,omitempty"`
	AdminNotes      string `json:"admin_notes,omitempty"`

	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Item struct {
	OrderLineID string `json:"order_line_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Condition   string `json:"condition,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
}

type TimelineEvent struct {
	EventType      string    `json:"event_type"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Actor          string    `json:"actor"`
	ActorRole      string    `json:"actor_role"`
	CreatedAt      time.Time `json:"created_at"`
}

type RefundInfo struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReplacementInfo struct {
	ID         uuid.UUID `json:"id"`
	NewOrderID string    `json:"new_order_id"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReturnDetail struct {
	Return
	Items       []Item           `json:"items"`
	Timeline    []TimelineEvent  `json:"timeline"`
	Refund      *RefundInfo      `json:"refund,omitempty"`
	Replacement *ReplacementInfo `json:"replacement,omitempty"`
}

// CreateReturnDraft carries everything needed to open a request in pending.
type CreateReturnDraft struct {
	OrderID         string
	UserID          string
	RequestedAction string
	ReasonCode      string
	ReasonText      string
	OrderTotal      int64
	PickupAddress   string
	CustomerShips   bool
	Items           []DraftItem
	Actor           string
	ActorRole       string
}

type DraftItem struct {
	OrderLineID string
	ProductName string
	Quantity    int
	Condition   string
	UnitPrice   int64
}

// TransitionCommand is the storage-level write order for one status change.
// From/To are assumed already validated; ExpectedVersion is the version the
// caller read before deciding.
type TransitionCommand struct {
	ReturnID        uuid.UUID
	ExpectedVersion int64
	From            lifecycle.Status
	To              lifecycle.Status

	Notes     string
	Actor     string
	ActorRole string

	RejectionReason   string
	PickupScheduledAt *time.Time
	PickupCarrier     string
	PickupTicketID    string
	PickupAddress     string

	// Refund/Replacement are inserted in the same transaction and linked onto
	// the request when set.
	Refund      *repository.Refund
	Replacement *repository.Replacement

	// Denormalized request fields for the outbox payload, filled from the row
	// the caller already read.
	ReturnNumber string
	OrderID      string
	UserID       string
}

type NoteCommand struct {
	ReturnID        uuid.UUID
	ExpectedVersion int64
	Notes           string
	Actor           string
	ActorRole       string

	ReturnNumber string
	OrderID      string
	UserID       string
}

func returnView(r *repository.ReturnRequest) Return {
	return Return{
		ID:                r.ID,
		ReturnNumber:      r.ReturnNumber,
		OrderID:           r.OrderID,
		UserID:            r.UserID,
		RequestedAction:   r.RequestedAction,
		ReasonCode:        r.ReasonCode,
		ReasonText:        r.ReasonText,
		Status:            lifecycle.Status(r.Status),
		OrderTotal:        r.OrderTotal,
		PickupAddress:     r.PickupAddress,
		PickupScheduledAt: r.PickupScheduledAt,
		PickupCarrier:     r.PickupCarrier,
		PickupTicketID:    r.PickupTicketID,
		CustomerShips:     r.CustomerShips,
		RefundID:          r.RefundID,
		ReplacementID:     r.ReplacementID,
		RejectionReason:   r.RejectionReason,
		AdminNotes:        r.AdminNotes,
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		ApprovedAt:        r.ApprovedAt,
		CompletedAt:       r.CompletedAt,
	}
}

func itemView(it *repository.ReturnItem) Item {
	return Item{
		OrderLineID: it.OrderLineID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		Condition:   it.Condition,
		UnitPrice:   it.UnitPrice,
	}
}

func eventView(ev *repository.ReturnEvent) TimelineEvent {
	return TimelineEvent{
		EventType:      ev.EventType,
		PreviousStatus: ev.PreviousStatus,
		NewStatus:      ev.NewStatus,
		Notes:          ev.Notes,
		Actor:          ev.Actor,
		ActorRole:      ev.ActorRole,
		CreatedAt:      ev.CreatedAt,
	}
}

func refundView(rf *repository.Refund) *RefundInfo {
	return &RefundInfo{
		ID:         rf.ID,
		ExternalID: rf.ExternalID,
		Amount:     rf.Amount,
		Method:     rf.Method,
		Status:     rf.Status,
		Notes:      rf.Notes,
		CreatedAt:  rf.CreatedAt,
	}
}

func replacementView(rp *repository.Replacement) *ReplacementInfo {
	return &ReplacementInfo{
		ID:         rp.ID,
		NewOrderID: rp.NewOrderID,
		Status:     rp.Status,
		Notes:      rp.Notes,
		CreatedAt:  rp.CreatedAt,
	}
}
