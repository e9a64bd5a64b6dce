package workflow

import (
	"fmt"
	"strings"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

// BatchSession holds the orders an operator has assembled for one bulk
// operation: existing orders selected from the table plus freshly staged new
// ones. It is an explicit value passed into the engine, never implicit
// component state.
type BatchSession struct {
	Selected []*domain.Order
	Staged   []*domain.Order
}

// NewBatchSession starts an empty session.
func NewBatchSession() *BatchSession {
	return &BatchSession{}
}

// Select adds an existing order to the batch. Selecting a tracking code that
// is already in the batch is rejected.
func (s *BatchSession) Select(order *domain.Order) error {
	if err := s.checkDuplicate(order.TrackingCode); err != nil {
		return err
	}
	s.Selected = append(s.Selected, order)
	return nil
}

// Stage adds a new, not-yet-created order to the batch. The tracking code
// must not collide with anything already staged or selected; the collision is
// caught here, before the order ever joins the batch.
func (s *BatchSession) Stage(order *domain.Order) error {
	if strings.TrimSpace(order.TrackingCode) == "" {
		return &errors.ErrValidation{
			Code:    errors.CodeMissingRequiredField,
			Message: "tracking code is required",
		}
	}
	if err := s.checkDuplicate(order.TrackingCode); err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = domain.NewStagedID()
	}
	s.Staged = append(s.Staged, order)
	return nil
}

func (s *BatchSession) checkDuplicate(trackingCode string) error {
	for _, o := range s.Selected {
		if o.TrackingCode == trackingCode {
			return &errors.ErrValidation{
				Code:    errors.CodeDuplicateTracking,
				Message: fmt.Sprintf("tracking code %s is already in the batch", trackingCode),
			}
		}
	}
	for _, o := range s.Staged {
		if o.TrackingCode == trackingCode {
			return &errors.ErrValidation{
				Code:    errors.CodeDuplicateTracking,
				Message: fmt.Sprintf("tracking code %s is already in the batch", trackingCode),
			}
		}
	}
	return nil
}

// Orders returns all batch members, selected first, in insertion order.
func (s *BatchSession) Orders() []*domain.Order {
	out := make([]*domain.Order, 0, len(s.Selected)+len(s.Staged))
	out = append(out, s.Selected...)
	out = append(out, s.Staged...)
	return out
}

// Empty reports whether the batch has no members.
func (s *BatchSession) Empty() bool {
	return len(s.Selected) == 0 && len(s.Staged) == 0
}
