// Package authz holds the role capability table. Every authorization decision
// in the API goes through Can.
package authz

import "strings"

// Permission is "resource:action", e.g. "invoices:create".
type Permission string

const (
	wildcard      = "*"
	SuperAdmin    Permission = "*:*"
	separatorRune            = ":"
)

// Parse splits a permission into resource and action.
func (p Permission) Parse() (resource, action string) {
	parts := strings.SplitN(string(p), separatorRune, 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Matches reports whether p grants requested. "*:*" grants everything and
// "tires:*" grants every tire action.
func (p Permission) Matches(requested Permission) bool {
	if p == SuperAdmin || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res != "" && res == reqRes && act == wildcard
}

// Resource-level permissions used by routes and services.
const (
	CustomersView   Permission = "customers:view"
	CustomersCreate Permission = "customers:create"
	CustomersUpdate Permission = "customers:update"
	CustomersDelete Permission = "customers:delete"

	VehiclesView   Permission = "vehicles:view"
	VehiclesCreate Permission = "vehicles:create"
	VehiclesUpdate Permission = "vehicles:update"
	VehiclesDelete Permission = "vehicles:delete"

	TiresView        Permission = "tires:view"
	TiresCreate      Permission = "tires:create"
	TiresUpdate      Permission = "tires:update"
	TiresDelete      Permission = "tires:delete"
	TiresAdjustStock Permission = "tires:adjust_stock"
	TiresViewCost    Permission = "tires:view_cost"

	InvoicesView   Permission = "invoices:view"
	InvoicesCreate Permission = "invoices:create"
	InvoicesUpdate Permission = "invoices:update"
	InvoicesPay    Permission = "invoices:pay"
	InvoicesCancel Permission = "invoices:cancel"
	InvoicesSend   Permission = "invoices:send"
	InvoicesPrint  Permission = "invoices:print"

	QuotationsView    Permission = "quotations:view"
	QuotationsCreate  Permission = "quotations:create"
	QuotationsUpdate  Permission = "quotations:update"
	QuotationsDelete  Permission = "quotations:delete"
	QuotationsConvert Permission = "quotations:convert"

	AppointmentsView   Permission = "appointments:view"
	AppointmentsCreate Permission = "appointments:create"
	AppointmentsUpdate Permission = "appointments:update"
	AppointmentsDelete Permission = "appointments:delete"
	AppointmentsRemind Permission = "appointments:remind"

	JobsView    Permission = "jobs:view"
	JobsViewAll Permission = "jobs:view_all"
	JobsCreate  Permission = "jobs:create"
	JobsUpdate  Permission = "jobs:update"
	JobsDelete  Permission = "jobs:delete"

	PaymentsView   Permission = "payments:view"
	PaymentsCreate Permission = "payments:create"

	UsersView   Permission = "users:view"
	UsersManage Permission = "users:manage"

	ReportsView   Permission = "reports:view"
	AuditView     Permission = "audit:view"
	DashboardView Permission = "dashboard:view"
	PrinterManage Permission = "printer:manage"
)
