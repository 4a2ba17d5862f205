package gateway

import "gitlab.ozon.dev/ecom/returns/internal/lifecycle"

type edge struct {
	from lifecycle.Status
	to   lifecycle.Status
}

// StaticRBAC binds each staff role to the graph edges it may drive. Admins and
// managers may drive every edge; the remaining roles get the slice of the
// graph their job touches.
type StaticRBAC struct {
	allowed map[lifecycle.Role]map[edge]struct{}
}

func NewStaticRBAC() *StaticRBAC {
	grants := map[lifecycle.Role][]edge{
		lifecycle.RoleSupport: {
			{lifecycle.StatusPending, lifecycle.StatusMoreInfoNeeded},
			{lifecycle.StatusPending, lifecycle.StatusApproved},
			{lifecycle.StatusPending, lifecycle.StatusRejected},
			{lifecycle.StatusMoreInfoNeeded, lifecycle.StatusPending},
		},
		lifecycle.RoleWarehouse: {
			{lifecycle.StatusReceived, lifecycle.StatusInspecting},
			{lifecycle.StatusInspecting, lifecycle.StatusInspectionPassed},
			{lifecycle.StatusInspecting, lifecycle.StatusInspectionFailed},
		},
		lifecycle.RoleCourier: {
			{lifecycle.StatusPickupScheduled, lifecycle.StatusPickedUp},
			{lifecycle.StatusPickupScheduled, lifecycle.StatusPickupFailed},
			{lifecycle.StatusPickedUp, lifecycle.StatusInTransit},
			{lifecycle.StatusInTransit, lifecycle.StatusReceived},
		},
		lifecycle.RoleCustomer: {
			{lifecycle.StatusMoreInfoNeeded, lifecycle.StatusPending},
		},
	}

	allowed := make(map[lifecycle.Role]map[edge]struct{}, len(grants))
	for role, edges := range grants {
		set := make(map[edge]struct{}, len(edges))
		for _, e := range edges {
			set[e] = struct{}{}
		}
		allowed[role] = set
	}
	return &StaticRBAC{allowed: allowed}
}

func (r *StaticRBAC) CanTransition(role lifecycle.Role, from, to lifecycle.Status) bool {
	if role == lifecycle.RoleAdmin || role == lifecycle.RoleManager {
		return true
	}
	_, ok := r.allowed[role][edge{from: from, to: to}]
	return ok
}
