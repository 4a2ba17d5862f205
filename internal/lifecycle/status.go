package lifecycle

import "fmt"

// Status is the lifecycle state of a return request.
type Status string

const (
	StatusPending              Status = "pending"
	StatusMoreInfoNeeded       Status = "more_info_needed"
	StatusApproved             Status = "approved"
	StatusRejected             Status = "rejected"
	StatusPickupScheduled      Status = "pickup_scheduled"
	StatusPickedUp             Status = "picked_up"
	StatusPickupFailed         Status = "pickup_failed"
	StatusInTransit            Status = "in_transit"
	StatusReceived             Status = "received"
	StatusInspecting           Status = "inspecting"
	StatusInspectionPassed     Status = "inspection_passed"
	StatusInspectionFailed     Status = "inspection_failed"
	StatusRefundInitiated      Status = "refund_initiated"
	StatusRefundPartial        Status = "refund_partial"
	StatusReplacementInitiated Status = "replacement_initiated"
	StatusCompleted            Status = "completed"
)

// Role identifies who is requesting a transition. Requests never carry an
// implicit session: every service call names its actor and role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleSupport   Role = "support"
	RoleWarehouse Role = "warehouse"
	RoleCourier   Role = "courier"
	RoleCustomer  Role = "customer"
)

// RequestedAction is what the customer asked for when opening the return.
type RequestedAction string

const (
	ActionRefund      RequestedAction = "refund"
	ActionReplacement RequestedAction = "replacement"
	ActionRepair      RequestedAction = "repair"
)

var allStatuses = []Status{
	StatusPending,
	StatusMoreInfoNeeded,
	StatusApproved,
	StatusRejected,
	StatusPickupScheduled,
	StatusPickedUp,
	StatusPickupFailed,
	StatusInTransit,
	StatusReceived,
	StatusInspecting,
	StatusInspectionPassed,
	StatusInspectionFailed,
	StatusRefundInitiated,
	StatusRefundPartial,
	StatusReplacementInitiated,
	StatusCompleted,
}

// AllStatuses returns every known status in graph order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s Status) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus validates a wire-format status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, raw)
	}
	return s, nil
}

func (r RequestedAction) Valid() bool {
	switch r {
	case ActionRefund, ActionReplacement, ActionRepair:
		return true
	}
	return false
}
