package models

// Capability names a feature a role may access.
type Capability string

const (
	CapViewDashboard  Capability = "dashboard.view"
	CapViewBilling    Capability = "billing.view"
	CapExportBilling  Capability = "billing.export"
	CapViewGrades     Capability = "grades.view"
	CapViewAuditTrail Capability = "audit.view"
	CapManageBackups  Capability = "backups.manage"
)

// roleCapabilities is the static role -> capability matrix. It is resolved at
// startup; there is no per-request feature probing.
var roleCapabilities = map[UserRole]map[Capability]struct{}{
	RoleAdmin: capSet(
		CapViewDashboard, CapViewBilling, CapExportBilling,
		CapViewGrades, CapViewAuditTrail, CapManageBackups,
	),
	RoleRegistrar: capSet(CapViewDashboard, CapViewGrades, CapViewAuditTrail),
	RoleCashier:   capSet(CapViewDashboard, CapViewBilling, CapExportBilling),
	RoleTeacher:   capSet(CapViewDashboard, CapViewGrades),
	RoleStudent:   capSet(CapViewDashboard, CapViewBilling, CapViewGrades),
}

// HasCapability reports whether the role is granted the capability.
// Unknown roles hold no capabilities.
func HasCapability(role UserRole, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, granted := caps[cap]
	return granted
}

// Capabilities returns the capability set granted to a role.
func Capabilities(role UserRole) []Capability {
	caps := roleCapabilities[role]
	result := make([]Capability, 0, len(caps))
	for c := range caps {
		result = append(result, c)
	}
	return result
}

func capSet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}
