package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Currency is the closed set of currencies payment may be recorded in.
// An order with no currency is priced in LAK.
type Currency string

const (
	CurrencyLAK Currency = "LAK"
	CurrencyTHB Currency = "THB"
	CurrencyUSD Currency = "USD"
)

// DefaultCurrency is implied when an order carries no currency.
const DefaultCurrency = CurrencyLAK

// IsValid checks if the currency is one of the closed set.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyLAK, CurrencyTHB, CurrencyUSD:
		return true
	default:
		return false
	}
}

// Field names one of the permissioned order fields. Permission lookups key on
// these, never on struct field names or JSON tags.
type Field string

const (
	FieldTrackingCode Field = "trackingCode"
	FieldClientName   Field = "clientName"
	FieldClientPhone  Field = "clientPhone"
	FieldAmount       Field = "amount"
	FieldCurrency     Field = "currency"
	FieldIsPaid       Field = "isPaid"
	FieldRemark       Field = "remark"
	FieldStatus       Field = "status"
)

// Order represents a tracked parcel moving through the branch pipeline.
type Order struct {
	ID           string
	TrackingCode string
	ClientName   string
	ClientPhone  string
	Amount       *float64
	Currency     *Currency
	IsPaid       bool
	Remark       string
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Creator      Role
}

// Clone returns a deep copy of the order, used for pre-apply snapshots.
func (o *Order) Clone() *Order {
	c := *o
	if o.Amount != nil {
		amount := *o.Amount
		c.Amount = &amount
	}
	if o.Currency != nil {
		currency := *o.Currency
		c.Currency = &currency
	}
	return &c
}

const stagedIDPrefix = "staged-"

// NewStagedID generates a temporary client-side identifier for an order that
// has not yet been created on the backend.
func NewStagedID() string {
	return stagedIDPrefix + uuid.NewString()
}

// IsStagedID reports whether id is a temporary client-side identifier rather
// than a backend-assigned one.
func IsStagedID(id string) bool {
	return strings.HasPrefix(id, stagedIDPrefix)
}

// IsStaged reports whether the order exists only locally.
func (o *Order) IsStaged() bool {
	return o.ID == "" || IsStagedID(o.ID)
}
