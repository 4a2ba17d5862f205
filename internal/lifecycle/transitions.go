package lifecycle

// SideEffect names the external action a transition implies. Transitions with
// an effect are committed only after the effect has been performed (or durably
// queued) by the orchestrator.
type SideEffect int

const (
	SideEffectNone SideEffect = iota
	SideEffectSchedulePickup
	SideEffectCreateRefund
	SideEffectCreateReplacement
)

func (e SideEffect) String() string {
	switch e {
	case SideEffectSchedulePickup:
		return "schedule_pickup"
	case SideEffectCreateRefund:
		return "create_refund"
	case SideEffectCreateReplacement:
		return "create_replacement"
	default:
		return "none"
	}
}

// transitions is the single source of truth for edge legality. Cyclic
// re-drivable edges (pickup_failed -> approved, more_info_needed -> pending)
// are ordinary entries here, not a separate retry mechanism.
var transitions = map[Status][]Status{
	StatusPending:          {StatusMoreInfoNeeded, StatusApproved, StatusRejected},
	StatusMoreInfoNeeded:   {StatusPending},
	StatusApproved:         {StatusPickupScheduled},
	StatusPickupScheduled:  {StatusPickedUp, StatusPickupFailed},
	StatusPickupFailed:     {StatusApproved},
	StatusPickedUp:         {StatusInTransit},
	StatusInTransit:        {StatusReceived},
	StatusReceived:         {StatusInspecting},
	StatusInspecting:       {StatusInspectionPassed, StatusInspectionFailed},
	StatusInspectionPassed: {StatusRefundInitiated, StatusRefundPartial, StatusReplacementInitiated, StatusCompleted},
	StatusInspectionFailed: {StatusCompleted},
	StatusRefundInitiated:  {StatusCompleted},
	StatusRefundPartial:    {StatusCompleted},

	StatusReplacementInitiated: {StatusCompleted},

	StatusRejected:  {},
	StatusCompleted: {},
}

// sideEffects maps the edges that are not plain status flips.
var sideEffects = map[Status]map[Status]SideEffect{
	StatusPending: {
		StatusApproved: SideEffectSchedulePickup,
	},
	StatusPickupFailed: {
		StatusApproved: SideEffectSchedulePickup,
	},
	StatusApproved: {
		StatusPickupScheduled: SideEffectSchedulePickup,
	},
	StatusInspectionPassed: {
		StatusRefundInitiated:      SideEffectCreateRefund,
		StatusRefundPartial:        SideEffectCreateRefund,
		StatusReplacementInitiated: SideEffectCreateReplacement,
	},
}

// CanTransition reports whether (from, to) is an edge of the status graph.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OutEdges returns the legal target statuses from the given state.
func OutEdges(from Status) []Status {
	edges := transitions[from]
	out := make([]Status, len(edges))
	copy(out, edges)
	return out
}

// EffectFor returns the side effect the edge implies, SideEffectNone for plain
// flips and unknown pairs.
func EffectFor(from, to Status) SideEffect {
	if m, ok := sideEffects[from]; ok {
		if effect, ok := m[to]; ok {
			return effect
		}
	}
	return SideEffectNone
}
