package handlers

import (
	"time"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

// OrderView is the order shape returned to the dashboard.
type OrderView struct {
	ID             string             `json:"id"`
	TrackingNumber string             `json:"tracking_number"`
	ClientName     string             `json:"client_name"`
	ClientPhone    string             `json:"client_phone,omitempty"`
	Amount         *float64           `json:"amount,omitempty"`
	Currency       *domain.Currency   `json:"currency,omitempty"`
	IsPaid         bool               `json:"is_paid"`
	Remark         string             `json:"remark,omitempty"`
	Status         domain.OrderStatus `json:"status"`
	Staged         bool               `json:"staged"`
	CreatedAt      string             `json:"created_at,omitempty"`
	UpdatedAt      string             `json:"updated_at,omitempty"`
}

func toOrderView(o *domain.Order) *OrderView {
	v := &OrderView{
		ID:             o.ID,
		TrackingNumber: o.TrackingCode,
		ClientName:     o.ClientName,
		ClientPhone:    o.ClientPhone,
		Amount:         o.Amount,
		Currency:       o.Currency,
		IsPaid:         o.IsPaid,
		Remark:         o.Remark,
		Status:         o.Status,
		Staged:         o.IsStaged(),
	}
	if !o.CreatedAt.IsZero() {
		v.CreatedAt = o.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !o.UpdatedAt.IsZero() {
		v.UpdatedAt = o.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return v
}

func toOrderViews(orders []*domain.Order) []*OrderView {
	out := make([]*OrderView, len(orders))
	for i, o := range orders {
		out[i] = toOrderView(o)
	}
	return out
}
