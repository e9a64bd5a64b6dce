package permission

import (
	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

// Mode distinguishes creating a new order from mutating an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// access is a bitmask over the two write modes.
type access uint8

const (
	none   access = 0
	create access = 1 << 0
	edit   access = 1 << 1
)

// matrix is the single source of truth for field-level write permissions.
// Every mutation path in the system consults this table; per-handler role
// checks are deliberately absent everywhere else.
var matrix = map[domain.Role]map[domain.Field]access{
	domain.RoleSuper: {
		domain.FieldTrackingCode: create | edit,
		domain.FieldClientName:   create | edit,
		domain.FieldClientPhone:  create | edit,
		domain.FieldAmount:       create | edit,
		domain.FieldCurrency:     create | edit,
		domain.FieldIsPaid:       create | edit,
		domain.FieldRemark:       create | edit,
		domain.FieldStatus:       create | edit,
	},
	domain.RoleOriginBranchAdmin: {
		domain.FieldTrackingCode: create | edit,
		domain.FieldClientName:   create | edit,
		domain.FieldClientPhone:  create | edit,
		domain.FieldAmount:       none,
		domain.FieldCurrency:     none,
		domain.FieldIsPaid:       none,
		domain.FieldRemark:       create | edit,
		domain.FieldStatus:       create | edit,
	},
	domain.RoleDestinationBranchAdmin: {
		domain.FieldTrackingCode: edit,
		domain.FieldClientName:   edit,
		domain.FieldClientPhone:  edit,
		domain.FieldAmount:       create | edit,
		domain.FieldCurrency:     create | edit,
		domain.FieldIsPaid:       create | edit,
		domain.FieldRemark:       edit,
		domain.FieldStatus:       edit,
	},
	domain.RoleReadonlyViewer: {},
}

// IsFieldWritable reports whether role may write field in the given mode.
func IsFieldWritable(role domain.Role, field domain.Field, mode Mode) bool {
	a := matrix[role][field]
	if mode == ModeCreate {
		return a&create != 0
	}
	return a&edit != 0
}

// CanCreate reports whether role may record new orders at all. Creation
// hinges on authoring the tracking code, the order's identity field.
func CanCreate(role domain.Role) bool {
	return IsFieldWritable(role, domain.FieldTrackingCode, ModeCreate)
}

// InitialStatus returns the pipeline stage a new order enters when created by
// role, and whether that role may create orders. Branch staff always record
// parcels as received at the origin branch; head office does the same.
func InitialStatus(role domain.Role) (domain.OrderStatus, bool) {
	if !CanCreate(role) {
		return "", false
	}
	return domain.StatusArrivedOrigin, true
}

// CanTransition reports whether role may move an order from one pipeline
// stage to another. SUPER moves freely in both directions, including re-marking
// the same stage. Branch admins move exactly one step forward, and origin
// staff only between the two origin-side stages.
func CanTransition(role domain.Role, from, to domain.OrderStatus) bool {
	if from.Index() < 0 || to.Index() < 0 {
		return false
	}
	switch role {
	case domain.RoleSuper:
		return true
	case domain.RoleOriginBranchAdmin:
		return from == domain.StatusArrivedOrigin && to == domain.StatusDepartedOrigin
	case domain.RoleDestinationBranchAdmin:
		return to.Index() == from.Index()+1
	default:
		return false
	}
}
