package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

// OutboxTask is a durable envelope for a return event awaiting publication.
// Tasks are inserted in the same transaction as the status commit they
// describe, so a committed transition always has its event queued.
type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// ReturnEventPayload is the wire format published to the return-events topic
// and consumed by the notification and accounting collaborators.
type ReturnEventPayload struct {
	ReturnID           string    `json:"return_id"`
	ReturnNumber       string    `json:"return_number"`
	OrderID            string    `json:"order_id"`
	UserID             string    `json:"user_id"`
	EventType          string    `json:"event_type"`
	PreviousStatus     string    `json:"previous_status,omitempty"`
	NewStatus          string    `json:"new_status,omitempty"`
	Actor              string    `json:"actor"`
	ActorRole          string    `json:"actor_role"`
	RefundID           string    `json:"refund_id,omitempty"`
	RefundAmount       int64     `json:"refund_amount,omitempty"`
	ReplacementOrderID string    `json:"replacement_order_id,omitempty"`
	PickupTicketID     string    `json:"pickup_ticket_id,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}
