package authz

import (
	"testing"

	"github.com/sangkips/autoshop-api/internal/domain/enum"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		granted   Permission
		requested Permission
		want      bool
	}{
		{SuperAdmin, TiresDelete, true},
		{"tires:*", TiresViewCost, true},
		{"tires:*", InvoicesView, false},
		{TiresView, TiresView, true},
		{TiresView, TiresDelete, false},
		{"bogus", "bogus:view", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.granted)+"->"+string(tt.requested), func(t *testing.T) {
			if got := tt.granted.Matches(tt.requested); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapabilityTable(t *testing.T) {
	tests := []struct {
		role enum.UserRole
		perm Permission
		want bool
	}{
		{enum.UserRoleAdmin, TiresDelete, true},
		{enum.UserRoleAdmin, UsersManage, true},
		{enum.UserRoleManager, TiresViewCost, true},
		{enum.UserRoleManager, TiresDelete, false},
		{enum.UserRoleManager, QuotationsConvert, true},
		{enum.UserRoleManager, UsersManage, false},
		{enum.UserRoleStaff, TiresViewCost, false},
		{enum.UserRoleStaff, InvoicesCreate, true},
		{enum.UserRoleStaff, InvoicesPay, false},
		{enum.UserRoleStaff, JobsViewAll, false},
		{enum.UserRoleStaff, ReportsView, false},
		{enum.UserRole(42), CustomersView, false},
	}
	for _, tt := range tests {
		if got := Can(tt.role, tt.perm); got != tt.want {
			t.Fatalf("Can(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}
