package permission

import (
	"strings"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

// OrderPayload is the outbound wire shape for one order mutation. Optional
// fields are pointers so an absent field is dropped from the JSON entirely;
// the backend distinguishes "absent" from "explicitly cleared", and sending a
// field the role may not write is a server-side permission error even when
// the value is zero.
type OrderPayload struct {
	ID             string             `json:"id,omitempty"`
	TrackingNumber string             `json:"tracking_number"`
	ClientName     string             `json:"client_name"`
	ClientPhone    *string            `json:"client_phone,omitempty"`
	Status         domain.OrderStatus `json:"status"`
	Remark         *string            `json:"remark,omitempty"`
	Amount         *float64           `json:"amount,omitempty"`
	Currency       *domain.Currency   `json:"currency,omitempty"`
	IsPaid         *bool              `json:"is_paid,omitempty"`
}

// ProjectPayload strips order down to the fields role may write in the given
// mode, with target as the outgoing status. Identity and workflow fields
// (tracking_number, client_name, status) are always carried; everything else
// is included only when the matrix allows it. Every outgoing mutation in the
// system must pass through here.
func ProjectPayload(role domain.Role, mode Mode, order *domain.Order, target domain.OrderStatus) OrderPayload {
	p := OrderPayload{
		TrackingNumber: order.TrackingCode,
		ClientName:     order.ClientName,
		Status:         target,
	}
	if mode == ModeEdit {
		p.ID = order.ID
	}
	if phone := strings.TrimSpace(order.ClientPhone); phone != "" && IsFieldWritable(role, domain.FieldClientPhone, mode) {
		p.ClientPhone = &phone
	}
	if remark := strings.TrimSpace(order.Remark); remark != "" && IsFieldWritable(role, domain.FieldRemark, mode) {
		p.Remark = &remark
	}
	if IsFieldWritable(role, domain.FieldAmount, mode) && order.Amount != nil {
		amount := *order.Amount
		p.Amount = &amount
	}
	if IsFieldWritable(role, domain.FieldCurrency, mode) && order.Currency != nil {
		currency := *order.Currency
		p.Currency = &currency
	}
	if IsFieldWritable(role, domain.FieldIsPaid, mode) {
		paid := order.IsPaid
		p.IsPaid = &paid
	}
	return p
}
