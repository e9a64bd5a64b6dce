package permission

import (
	"testing"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

func TestViewerWritesNothing(t *testing.T) {
	for _, f := range []domain.Field{
		domain.FieldTrackingCode, domain.FieldClientName, domain.FieldClientPhone,
		domain.FieldAmount, domain.FieldCurrency, domain.FieldIsPaid,
		domain.FieldRemark, domain.FieldStatus,
	} {
		for _, mode := range []Mode{ModeCreate, ModeEdit} {
			if IsFieldWritable(domain.RoleReadonlyViewer, f, mode) {
				t.Errorf("viewer should not write %s in %s mode", f, mode)
			}
		}
	}
}

func TestOriginAdminPaymentFieldsForbidden(t *testing.T) {
	for _, f := range []domain.Field{domain.FieldAmount, domain.FieldCurrency, domain.FieldIsPaid} {
		for _, mode := range []Mode{ModeCreate, ModeEdit} {
			if IsFieldWritable(domain.RoleOriginBranchAdmin, f, mode) {
				t.Errorf("origin admin should not write %s in %s mode", f, mode)
			}
		}
	}
}

func TestDestinationAdminTrackingEditOnly(t *testing.T) {
	if IsFieldWritable(domain.RoleDestinationBranchAdmin, domain.FieldTrackingCode, ModeCreate) {
		t.Error("destination admin should not create tracking codes")
	}
	if !IsFieldWritable(domain.RoleDestinationBranchAdmin, domain.FieldTrackingCode, ModeEdit) {
		t.Error("destination admin should edit tracking codes")
	}
	if CanCreate(domain.RoleDestinationBranchAdmin) {
		t.Error("destination admin should not create orders")
	}
}

func TestInitialStatus(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSuper, domain.RoleOriginBranchAdmin} {
		got, ok := InitialStatus(role)
		if !ok {
			t.Errorf("%s should be able to create orders", role)
			continue
		}
		if got != domain.StatusArrivedOrigin {
			t.Errorf("InitialStatus(%s) = %s, want %s", role, got, domain.StatusArrivedOrigin)
		}
	}
	if _, ok := InitialStatus(domain.RoleReadonlyViewer); ok {
		t.Error("viewer should not create orders")
	}
}

func TestCanTransitionTable(t *testing.T) {
	ao, do := domain.StatusArrivedOrigin, domain.StatusDepartedOrigin
	ad, co := domain.StatusArrivedDestination, domain.StatusCollected

	tests := []struct {
		name     string
		role     domain.Role
		from, to domain.OrderStatus
		want     bool
	}{
		{"super forward", domain.RoleSuper, ao, do, true},
		{"super skip", domain.RoleSuper, ao, co, true},
		{"super rollback", domain.RoleSuper, co, ao, true},
		{"super noop", domain.RoleSuper, do, do, true},

		{"origin intake to transit", domain.RoleOriginBranchAdmin, ao, do, true},
		{"origin past transit", domain.RoleOriginBranchAdmin, do, ad, false},
		{"origin skip", domain.RoleOriginBranchAdmin, ao, ad, false},
		{"origin rollback", domain.RoleOriginBranchAdmin, do, ao, false},
		{"origin noop", domain.RoleOriginBranchAdmin, ao, ao, false},

		{"destination forward one", domain.RoleDestinationBranchAdmin, do, ad, true},
		{"destination collect", domain.RoleDestinationBranchAdmin, ad, co, true},
		{"destination skip", domain.RoleDestinationBranchAdmin, do, co, false},
		{"destination rollback", domain.RoleDestinationBranchAdmin, ad, do, false},
		{"destination noop", domain.RoleDestinationBranchAdmin, ad, ad, false},

		{"viewer forward", domain.RoleReadonlyViewer, ao, do, false},

		{"unknown from", domain.RoleSuper, domain.OrderStatus("x"), do, false},
		{"unknown to", domain.RoleSuper, ao, domain.OrderStatus("x"), false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.role, tt.from, tt.to); got != tt.want {
			t.Errorf("%s: CanTransition(%s, %s, %s) = %t, want %t",
				tt.name, tt.role, tt.from, tt.to, got, tt.want)
		}
	}
}

// Forward-only invariant: any rollback pair is rejected for every role but SUPER.
func TestForwardOnlyInvariant(t *testing.T) {
	roles := []domain.Role{
		domain.RoleOriginBranchAdmin,
		domain.RoleDestinationBranchAdmin,
		domain.RoleReadonlyViewer,
	}
	for _, from := range domain.Pipeline() {
		for _, to := range domain.Pipeline() {
			if !from.IsRollbackTo(to) {
				continue
			}
			for _, role := range roles {
				if CanTransition(role, from, to) {
					t.Errorf("%s may roll back %s -> %s", role, from, to)
				}
			}
		}
	}
}
