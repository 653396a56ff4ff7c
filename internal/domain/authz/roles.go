package authz

import "github.com/sangkips/autoshop-api/internal/domain/enum"

var capabilities = map[enum.UserRole][]Permission{
	enum.UserRoleAdmin: {SuperAdmin},
	enum.UserRoleManager: {
		"customers:*", "vehicles:*", "invoices:*", "quotations:*", "appointments:*", "jobs:*",
		TiresView, TiresCreate, TiresUpdate, TiresAdjustStock, TiresViewCost,
		PaymentsView, PaymentsCreate,
		UsersView, ReportsView, AuditView, DashboardView, PrinterManage,
	},
	enum.UserRoleStaff: {
		CustomersView, CustomersCreate, CustomersUpdate,
		VehiclesView, VehiclesCreate, VehiclesUpdate,
		TiresView,
		InvoicesView, InvoicesCreate, InvoicesPrint,
		QuotationsView, QuotationsCreate, QuotationsUpdate,
		AppointmentsView, AppointmentsCreate, AppointmentsUpdate,
		JobsView,
		DashboardView,
	},
}

// Can reports whether role holds perm.
func Can(role enum.UserRole, perm Permission) bool {
	for _, granted := range capabilities[role] {
		if granted.Matches(perm) {
			return true
		}
	}
	return false
}

// PermissionsFor lists the raw grants of a role, wildcards included.
func PermissionsFor(role enum.UserRole) []Permission {
	granted := capabilities[role]
	out := make([]Permission, len(granted))
	copy(out, granted)
	return out
}
