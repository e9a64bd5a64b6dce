package workflow

import (
	"testing"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

func existing(id, tracking string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:           id,
		TrackingCode: tracking,
		ClientName:   "client " + id,
		Status:       status,
	}
}

func mustSelect(t *testing.T, s *BatchSession, o *domain.Order) {
	t.Helper()
	if err := s.Select(o); err != nil {
		t.Fatalf("select %s: %v", o.TrackingCode, err)
	}
}

func TestMixedBatchRejected(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusArrivedOrigin))
	mustSelect(t, s, existing("2", "A2", domain.StatusDepartedOrigin))

	err := ValidateBatch(domain.RoleSuper, s, domain.StatusDepartedOrigin)
	if !errors.IsValidation(err, errors.CodeMixedStatus) {
		t.Fatalf("want MIXED_STATUS, got %v", err)
	}
}

func TestRollbackForbiddenForOriginAdmin(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusDepartedOrigin))

	err := ValidateBatch(domain.RoleOriginBranchAdmin, s, domain.StatusArrivedOrigin)
	if !errors.IsValidation(err, errors.CodeRollbackForbidden) {
		t.Fatalf("want ROLLBACK_FORBIDDEN, got %v", err)
	}
}

func TestRollbackAllowedForSuper(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusDepartedOrigin))

	if err := ValidateBatch(domain.RoleSuper, s, domain.StatusArrivedOrigin); err != nil {
		t.Fatalf("super rollback rejected: %v", err)
	}
}

func TestForwardSkipRejectedForBranchAdmins(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleOriginBranchAdmin, domain.RoleDestinationBranchAdmin} {
		s := NewBatchSession()
		mustSelect(t, s, existing("1", "A1", domain.StatusArrivedOrigin))

		err := ValidateBatch(role, s, domain.StatusArrivedDestination)
		if !errors.IsValidation(err, errors.CodeTransitionNotAllowed) {
			t.Errorf("%s skip: want TRANSITION_NOT_ALLOWED, got %v", role, err)
		}
	}
}

func TestNoopRejectedForBranchAdmins(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusArrivedDestination))

	err := ValidateBatch(domain.RoleDestinationBranchAdmin, s, domain.StatusArrivedDestination)
	if !errors.IsValidation(err, errors.CodeTransitionNotAllowed) {
		t.Fatalf("want TRANSITION_NOT_ALLOWED for no-op, got %v", err)
	}
}

func TestStagedOrdersExemptFromHomogeneity(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusArrivedOrigin))
	if err := s.Stage(&domain.Order{TrackingCode: "NEW1", ClientName: "new"}); err != nil {
		t.Fatalf("stage: %v", err)
	}

	if err := ValidateBatch(domain.RoleOriginBranchAdmin, s, domain.StatusDepartedOrigin); err == nil {
		t.Fatal("origin admin staging at DEPARTED_ORIGIN should be rejected")
	}

	s2 := NewBatchSession()
	if err := s2.Stage(&domain.Order{TrackingCode: "NEW1", ClientName: "new"}); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := ValidateBatch(domain.RoleOriginBranchAdmin, s2, domain.StatusArrivedOrigin); err != nil {
		t.Fatalf("all-new batch at intake rejected: %v", err)
	}
}

func TestEmptyBatchRejected(t *testing.T) {
	err := ValidateBatch(domain.RoleSuper, NewBatchSession(), domain.StatusCollected)
	if !errors.IsValidation(err, errors.CodeMissingRequiredField) {
		t.Fatalf("want MISSING_REQUIRED_FIELD, got %v", err)
	}
}

func TestUnknownTargetRejected(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusArrivedOrigin))
	if err := ValidateBatch(domain.RoleSuper, s, domain.OrderStatus("SHIPPED")); err == nil {
		t.Fatal("unknown target status must be rejected")
	}
}

func TestDuplicateTrackingOnStage(t *testing.T) {
	s := NewBatchSession()
	mustSelect(t, s, existing("1", "A1", domain.StatusArrivedOrigin))

	err := s.Stage(&domain.Order{TrackingCode: "A1", ClientName: "dup"})
	if !errors.IsValidation(err, errors.CodeDuplicateTracking) {
		t.Fatalf("want DUPLICATE_TRACKING_CODE, got %v", err)
	}
	if len(s.Staged) != 0 {
		t.Fatal("rejected order must not join the batch")
	}

	if err := s.Stage(&domain.Order{TrackingCode: "B2", ClientName: "ok"}); err != nil {
		t.Fatalf("stage B2: %v", err)
	}
	err = s.Stage(&domain.Order{TrackingCode: "B2", ClientName: "dup"})
	if !errors.IsValidation(err, errors.CodeDuplicateTracking) {
		t.Fatalf("duplicate against staged: want DUPLICATE_TRACKING_CODE, got %v", err)
	}
}

func TestStageAssignsTemporaryID(t *testing.T) {
	s := NewBatchSession()
	o := &domain.Order{TrackingCode: "C3", ClientName: "x"}
	if err := s.Stage(o); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if !domain.IsStagedID(o.ID) {
		t.Fatalf("staged order id %q is not a temporary id", o.ID)
	}
}
