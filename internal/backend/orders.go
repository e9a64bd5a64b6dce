package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/permission"
	apperrors "github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

// wireOrder is the backend's JSON representation of an order.
type wireOrder struct {
	ID             string             `json:"id"`
	TrackingNumber string             `json:"tracking_number"`
	ClientName     string             `json:"client_name"`
	ClientPhone    *string            `json:"client_phone,omitempty"`
	Amount         *float64           `json:"amount,omitempty"`
	Currency       *domain.Currency   `json:"currency,omitempty"`
	IsPaid         bool               `json:"is_paid"`
	Remark         *string            `json:"remark,omitempty"`
	Status         domain.OrderStatus `json:"status"`
	CreatedBy      string             `json:"created_by,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func (w *wireOrder) toDomain() (*domain.Order, error) {
	if !w.Status.IsValid() {
		return nil, fmt.Errorf("backend returned unknown status %q for order %s", w.Status, w.ID)
	}
	o := &domain.Order{
		ID:           w.ID,
		TrackingCode: w.TrackingNumber,
		ClientName:   w.ClientName,
		IsPaid:       w.IsPaid,
		Status:       w.Status,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	if w.ClientPhone != nil {
		o.ClientPhone = *w.ClientPhone
	}
	if w.Remark != nil {
		o.Remark = *w.Remark
	}
	o.Amount = w.Amount
	o.Currency = w.Currency
	if w.CreatedBy != "" {
		if role, err := domain.ParseRole(w.CreatedBy); err == nil {
			o.Creator = role
		}
	}
	return o, nil
}

// ResolveTracking looks up an order by tracking code. A nil order with a nil
// error means the code is unknown to the backend; the caller proceeds as a
// creation flow. The lookup is a pure read, nothing is mutated on any outcome.
func (c *Client) ResolveTracking(ctx context.Context, code string) (*domain.Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/orders/tracking/"+url.PathEscape(code), nil)
	if err != nil {
		var be *apperrors.ErrBackend
		if errors.As(err, &be) && be.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var w wireOrder
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &apperrors.ErrTransport{Err: fmt.Errorf("malformed order: %w", err)}
	}
	order, err := w.toDomain()
	if err != nil {
		return nil, &apperrors.ErrTransport{Err: err}
	}
	c.logger.Debug("tracking code resolved", zap.String("tracking_number", code), zap.String("order_id", order.ID))
	return order, nil
}

type bulkRequest struct {
	Orders []permission.OrderPayload `json:"orders"`
}

// CreateOrders sends creation payloads, using the bulk route when the plan
// carries more than one order. Returns the created orders as the backend
// recorded them, in request order.
func (c *Client) CreateOrders(ctx context.Context, payloads []permission.OrderPayload) ([]*domain.Order, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	var (
		data json.RawMessage
		err  error
	)
	if len(payloads) == 1 {
		data, err = c.do(ctx, http.MethodPost, "/orders", payloads[0])
	} else {
		data, err = c.do(ctx, http.MethodPost, "/orders/bulk", bulkRequest{Orders: payloads})
	}
	if err != nil {
		return nil, err
	}
	return decodeOrders(data, len(payloads))
}

// UpdateOrders sends update payloads. Every payload must carry the backend id;
// the bulk route is used for more than one order.
func (c *Client) UpdateOrders(ctx context.Context, payloads []permission.OrderPayload) ([]*domain.Order, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	for _, p := range payloads {
		if p.ID == "" {
			return nil, fmt.Errorf("update payload for %s is missing the order id", p.TrackingNumber)
		}
	}
	var (
		data json.RawMessage
		err  error
	)
	if len(payloads) == 1 {
		data, err = c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(payloads[0].ID), payloads[0])
	} else {
		data, err = c.do(ctx, http.MethodPut, "/orders/bulk", bulkRequest{Orders: payloads})
	}
	if err != nil {
		return nil, err
	}
	return decodeOrders(data, len(payloads))
}

// decodeOrders accepts either a single order object or an array, matching the
// backend's single/bulk response shapes.
func decodeOrders(data json.RawMessage, want int) ([]*domain.Order, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var wires []wireOrder
	if err := json.Unmarshal(data, &wires); err != nil {
		var single wireOrder
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, &apperrors.ErrTransport{Err: fmt.Errorf("malformed order list: %w", err)}
		}
		wires = []wireOrder{single}
	}
	orders := make([]*domain.Order, 0, len(wires))
	for i := range wires {
		o, err := wires[i].toDomain()
		if err != nil {
			return nil, &apperrors.ErrTransport{Err: err}
		}
		orders = append(orders, o)
	}
	if want > 0 && len(orders) != want {
		return orders, fmt.Errorf("backend returned %d orders for %d payloads", len(orders), want)
	}
	return orders, nil
}
