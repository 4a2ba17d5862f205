package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidTransition means the requested edge is not in the status graph.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrForbidden means the acting role may not request this edge.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means the transition payload is missing or malformed.
	ErrValidation = errors.New("validation failed")
)

// Capabilities answers whether a role may request an edge. The default
// binding is a static matrix; a real RBAC service satisfies the same contract.
type Capabilities interface {
	CanTransition(role Role, from, to Status) bool
}

// TransitionRequest carries everything the validator needs to judge a single
// requested edge. It is assembled from the stored request plus the caller's
// payload; the validator itself reads nothing from storage.
type TransitionRequest struct {
	Current   Status
	Requested Status
	Role      Role
	Notes     string

	// Approve payload.
	PickupScheduled *time.Time
	CustomerShips   bool

	// Link state of the stored request.
	HasRefundLink      bool
	HasReplacementLink bool
}

// TransitionPlan is the validator's verdict: the edge is legal for this role
// and payload, and implies the named side effect.
type TransitionPlan struct {
	From   Status
	To     Status
	Effect SideEffect
}

// Validator is a pure legality check over the transition table. It performs
// no I/O and mutates nothing.
type Validator struct {
	rbac Capabilities
}

func NewValidator(rbac Capabilities) *Validator {
	return &Validator{rbac: rbac}
}

// Validate maps (current, requested, role, payload) to an allow/deny decision
// plus the side effect the edge requires. All checks run before any write.
func (v *Validator) Validate(req TransitionRequest) (TransitionPlan, error) {
	if !req.Current.Valid() {
		return TransitionPlan{}, fmt.Errorf("%w: unknown current status %q", ErrValidation, req.Current)
	}
	if !req.Requested.Valid() {
		return TransitionPlan{}, fmt.Errorf("%w: unknown requested status %q", ErrValidation, req.Requested)
	}

	if !CanTransition(req.Current, req.Requested) {
		return TransitionPlan{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.Current, req.Requested)
	}

	if v.rbac != nil && !v.rbac.CanTransition(req.Role, req.Current, req.Requested) {
		return TransitionPlan{}, fmt.Errorf("%w: role %q may not move %s -> %s",
			ErrForbidden, req.Role, req.Current, req.Requested)
	}

	if err := v.checkPayload(req); err != nil {
		return TransitionPlan{}, err
	}

	return TransitionPlan{
		From:   req.Current,
		To:     req.Requested,
		Effect: EffectFor(req.Current, req.Requested),
	}, nil
}

func (v *Validator) checkPayload(req TransitionRequest) error {
	switch req.Requested {
	case StatusApproved:
		if req.PickupScheduled == nil && !req.CustomerShips {
			return fmt.Errorf("%w: approval needs a pickup date or the customer-ships flag", ErrValidation)
		}
	case StatusRejected:
		if strings.TrimSpace(req.Notes) == "" {
			return fmt.Errorf("%w: rejection needs a non-empty reason", ErrValidation)
		}
	case StatusRefundInitiated, StatusRefundPartial:
		if req.HasReplacementLink {
			return fmt.Errorf("%w: a replacement was already created for this return", ErrValidation)
		}
		if req.HasRefundLink {
			return fmt.Errorf("%w: a refund was already created for this return", ErrValidation)
		}
	case StatusReplacementInitiated:
		if req.HasRefundLink {
			return fmt.Errorf("%w: a refund was already created for this return", ErrValidation)
		}
		if req.HasReplacementLink {
			return fmt.Errorf("%w: a replacement was already created for this return", ErrValidation)
		}
	}
	return nil
}

// AvailableTransitions lists the out-edges of from that the given role may
// request. The admin client renders these as action buttons.
func (v *Validator) AvailableTransitions(from Status, role Role) []Status {
	edges := OutEdges(from)
	if v.rbac == nil {
		return edges
	}
	allowed := make([]Status, 0, len(edges))
	for _, to := range edges {
		if v.rbac.CanTransition(role, from, to) {
			allowed = append(allowed, to)
		}
	}
	return allowed
}
