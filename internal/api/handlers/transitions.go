package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/api/middleware"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/workflow"
)

// TransitionRequest is one bulk (or single) transition intent: existing
// orders referenced by id plus freshly entered new orders, all moving to one
// target status.
type TransitionRequest struct {
	TargetStatus domain.OrderStatus `json:"target_status" binding:"required"`
	OrderIDs     []string           `json:"order_ids"`
	NewOrders    []NewOrderInput    `json:"new_orders"`
}

// NewOrderInput is the staged-order form payload.
type NewOrderInput struct {
	TrackingNumber string   `json:"tracking_number" binding:"required"`
	ClientName     string   `json:"client_name"`
	ClientPhone    string   `json:"client_phone"`
	Amount         *float64 `json:"amount"`
	Currency       *string  `json:"currency"`
	IsPaid         bool     `json:"is_paid"`
	Remark         string   `json:"remark"`
}

// HandleTransition handles POST /v1/transitions
func HandleTransition(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := middleware.GetRoleFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req TransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
			return
		}
		if !req.TargetStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown target status %q", req.TargetStatus)})
			return
		}

		token := middleware.GetTokenFromContext(c)
		sess := deps.Sessions.Get(token)

		batch := workflow.NewBatchSession()
		for _, id := range req.OrderIDs {
			order, ok := sess.Store.Get(id)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("order %s is not in this session", id)})
				return
			}
			if sess.Coordinator.Pending(id) {
				c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("order %s has a change still in flight", id)})
				return
			}
			if err := batch.Select(order); err != nil {
				respondError(c, deps.Logger, err)
				return
			}
		}
		for _, in := range req.NewOrders {
			order, err := stagedOrder(in)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			order.Creator = role
			if err := batch.Stage(order); err != nil {
				respondError(c, deps.Logger, err)
				return
			}
		}

		plan, err := deps.Engine.ProposeTransition(role, batch, req.TargetStatus)
		if err != nil {
			respondError(c, deps.Logger, err)
			return
		}

		committed, err := sess.Coordinator.Apply(c.Request.Context(), plan)
		if err != nil {
			respondError(c, deps.Logger, err)
			return
		}

		deps.Logger.Info("Transition applied",
			zap.String("role", string(role)),
			zap.String("target", string(req.TargetStatus)),
			zap.Int("orders", len(committed)),
		)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orders":  toOrderViews(committed),
		})
	}
}

func stagedOrder(in NewOrderInput) (*domain.Order, error) {
	order := &domain.Order{
		TrackingCode: in.TrackingNumber,
		ClientName:   in.ClientName,
		ClientPhone:  in.ClientPhone,
		IsPaid:       in.IsPaid,
		Remark:       in.Remark,
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return nil, fmt.Errorf("amount for %s must not be negative", in.TrackingNumber)
		}
		order.Amount = in.Amount
	}
	if in.Currency != nil {
		cur := domain.Currency(*in.Currency)
		if !cur.IsValid() {
			return nil, fmt.Errorf("unknown currency %q", *in.Currency)
		}
		order.Currency = &cur
	}
	return order, nil
}
