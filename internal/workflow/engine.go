package workflow

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/permission"
	"github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

// PlanItem is one order's contribution to a transition: the order itself,
// whether it is being created or updated, and the projected wire payload.
type PlanItem struct {
	Order   *domain.Order
	Mode    permission.Mode
	Payload permission.OrderPayload
}

// TransitionPlan is the validated, fully projected outcome of a proposal,
// ready to hand to the mutation coordinator. Once a plan exists no further
// permission decisions are made downstream.
type TransitionPlan struct {
	Role   domain.Role
	Target domain.OrderStatus
	Items  []PlanItem
}

// Creates returns the plan items that create new orders.
func (p *TransitionPlan) Creates() []PlanItem {
	return p.filter(permission.ModeCreate)
}

// Updates returns the plan items that mutate existing orders.
func (p *TransitionPlan) Updates() []PlanItem {
	return p.filter(permission.ModeEdit)
}

func (p *TransitionPlan) filter(mode permission.Mode) []PlanItem {
	var out []PlanItem
	for _, it := range p.Items {
		if it.Mode == mode {
			out = append(out, it)
		}
	}
	return out
}

// Engine validates proposed transitions and turns them into plans.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a transition engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ProposeTransition validates the batch against the role's transition rules
// and, when accepted, builds one projected payload per order. Rejection is
// all-or-nothing: a failed batch produces zero payloads.
func (e *Engine) ProposeTransition(role domain.Role, session *BatchSession, target domain.OrderStatus) (*TransitionPlan, error) {
	if err := ValidateBatch(role, session, target); err != nil {
		e.logger.Info("batch rejected",
			zap.String("role", string(role)),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		return nil, err
	}

	plan := &TransitionPlan{Role: role, Target: target}
	for _, order := range session.Orders() {
		if err := checkRequired(order); err != nil {
			return nil, err
		}
		mode := permission.ModeEdit
		if order.IsStaged() {
			mode = permission.ModeCreate
		}
		plan.Items = append(plan.Items, PlanItem{
			Order:   order,
			Mode:    mode,
			Payload: permission.ProjectPayload(role, mode, order, target),
		})
	}

	e.logger.Info("transition plan built",
		zap.String("role", string(role)),
		zap.String("target", string(target)),
		zap.Int("orders", len(plan.Items)),
	)
	return plan, nil
}

// checkRequired enforces the identity fields every payload must carry.
func checkRequired(order *domain.Order) error {
	if strings.TrimSpace(order.TrackingCode) == "" {
		return &errors.ErrValidation{
			Code:    errors.CodeMissingRequiredField,
			Message: "tracking code is required",
		}
	}
	if strings.TrimSpace(order.ClientName) == "" {
		return &errors.ErrValidation{
			Code:    errors.CodeMissingRequiredField,
			Message: fmt.Sprintf("client name is required for %s", order.TrackingCode),
		}
	}
	return nil
}
