package services

import (
	"fmt"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/modules/areas/domain/area"
	"github.com/floodops/pafs/modules/projects/domain/project"
)

// Decision is the outcome of a permission check. Reason is human-readable
// and set only on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// AreaIDsEqual compares two area identifiers independently of their wire
// representation: numeric and string forms of the same id compare equal.
func AreaIDsEqual(a, b any) bool {
	av, aok := project.CoerceInt(a)
	bv, bok := project.CoerceInt(b)
	return aok && bok && av == bv
}

// CanCreateProject decides whether the principal may create a project owned
// by the target area. Creation requires direct RMA membership of the target
// area; PSO-parent delegation deliberately does not apply here.
func CanCreateProject(principal account.Account, targetAreaID any) Decision {
	if !principal.RMA() {
		return deny("only RMA users can create projects")
	}
	for _, m := range principal.Areas() {
		if AreaIDsEqual(m.AreaID, targetAreaID) {
			return allow()
		}
	}
	return deny("user does not belong to the project's area")
}

// CanUpdateProject decides whether the principal may update a project whose
// resolved area chain is given. Admins bypass every check. For everyone
// else membership of the project's own area or of its immediate PSO parent
// suffices; the walk is fixed at depth one, never deeper. An unresolvable
// area fails closed.
func CanUpdateProject(principal account.Account, aw *area.WithParents) Decision {
	if principal.Admin() {
		return allow()
	}
	if aw == nil {
		return deny("project area could not be resolved")
	}
	if principal.HasArea(aw.Node.ID) {
		return allow()
	}
	if aw.PSO != nil && principal.HasArea(aw.PSO.ID) {
		return allow()
	}
	return deny(fmt.Sprintf("user cannot update projects in area %q", aw.Node.Name))
}
