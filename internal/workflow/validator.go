package workflow

import (
	"fmt"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/permission"
	"github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

// ValidateBatch checks that the session may move to target as one unit under
// the acting role. The verdict covers the whole batch: either every member may
// transition or none does. Staged orders carry no prior status and are exempt
// from the homogeneity check.
func ValidateBatch(role domain.Role, session *BatchSession, target domain.OrderStatus) error {
	if session.Empty() {
		return &errors.ErrValidation{
			Code:    errors.CodeMissingRequiredField,
			Message: "no orders in the batch",
		}
	}
	if target.Index() < 0 {
		return &errors.ErrValidation{
			Code:    errors.CodeMissingRequiredField,
			Message: fmt.Sprintf("unknown target status %q", target),
		}
	}

	statuses := map[domain.OrderStatus]struct{}{}
	for _, o := range session.Selected {
		if o.Status.Index() < 0 {
			return &errors.ErrValidation{
				Code:    errors.CodeMissingRequiredField,
				Message: fmt.Sprintf("order %s has unknown status %q", o.TrackingCode, o.Status),
			}
		}
		statuses[o.Status] = struct{}{}
	}
	if len(statuses) > 1 {
		return &errors.ErrValidation{
			Code:    errors.CodeMixedStatus,
			Message: "selected orders are not all in the same status",
		}
	}

	if len(statuses) == 1 {
		var current domain.OrderStatus
		for s := range statuses {
			current = s
		}
		if current.IsRollbackTo(target) && role != domain.RoleSuper {
			return &errors.ErrValidation{
				Code:    errors.CodeRollbackForbidden,
				Message: fmt.Sprintf("%s may not move orders back from %s to %s", role, current, target),
			}
		}
		if !permission.CanTransition(role, current, target) {
			return &errors.ErrValidation{
				Code:    errors.CodeTransitionNotAllowed,
				Message: fmt.Sprintf("%s may not move orders from %s to %s", role, current, target),
			}
		}
	}

	if len(session.Staged) > 0 {
		initial, ok := permission.InitialStatus(role)
		if !ok {
			return &errors.ErrValidation{
				Code:    errors.CodeTransitionNotAllowed,
				Message: fmt.Sprintf("%s may not record new orders", role),
			}
		}
		// SUPER may stage directly into any stage; branch staff only at intake.
		if role != domain.RoleSuper && target != initial {
			return &errors.ErrValidation{
				Code:    errors.CodeTransitionNotAllowed,
				Message: fmt.Sprintf("%s records new orders at %s only", role, initial),
			}
		}
	}

	return nil
}
