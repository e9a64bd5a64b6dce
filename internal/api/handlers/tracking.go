package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/api/middleware"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/permission"
	apperrors "github.com/kounITV/misouk-express-wapp-sub000/pkg/errors"
)

// TrackingResponse tells the form what the lookup found and which fields the
// acting role may fill in. On a hit the tracking code is locked and the form
// is pre-filled; on a miss the flow continues as a creation with empty fields.
type TrackingResponse struct {
	Found          bool           `json:"found"`
	Order          *OrderView     `json:"order,omitempty"`
	EditableFields []domain.Field `json:"editable_fields"`
	LockedFields   []domain.Field `json:"locked_fields"`
}

// HandleResolveTracking handles GET /v1/orders/tracking/:code
func HandleResolveTracking(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := middleware.GetRoleFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		code := strings.TrimSpace(c.Param("code"))
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tracking code required"})
			return
		}

		token := middleware.GetTokenFromContext(c)
		order, err := deps.Backend(token).ResolveTracking(c.Request.Context(), code)
		if err != nil {
			respondError(c, deps.Logger, err)
			return
		}

		if order == nil {
			c.JSON(http.StatusOK, TrackingResponse{
				Found:          false,
				EditableFields: writableFields(role, permission.ModeCreate),
				LockedFields:   lockedFields(role, permission.ModeCreate),
			})
			return
		}

		// Cache the hit so a follow-up transition can select it by id.
		deps.Sessions.Get(token).Store.Put(order)

		resp := TrackingResponse{
			Found:          true,
			Order:          toOrderView(order),
			EditableFields: writableFields(role, permission.ModeEdit),
			LockedFields:   lockedFields(role, permission.ModeEdit),
		}
		// Identity field stays locked once the order exists.
		resp.EditableFields = without(resp.EditableFields, domain.FieldTrackingCode)
		if !contains(resp.LockedFields, domain.FieldTrackingCode) {
			resp.LockedFields = append(resp.LockedFields, domain.FieldTrackingCode)
		}
		c.JSON(http.StatusOK, resp)
	}
}

var formFields = []domain.Field{
	domain.FieldTrackingCode,
	domain.FieldClientName,
	domain.FieldClientPhone,
	domain.FieldAmount,
	domain.FieldCurrency,
	domain.FieldIsPaid,
	domain.FieldRemark,
	domain.FieldStatus,
}

func writableFields(role domain.Role, mode permission.Mode) []domain.Field {
	out := []domain.Field{}
	for _, f := range formFields {
		if permission.IsFieldWritable(role, f, mode) {
			out = append(out, f)
		}
	}
	return out
}

func lockedFields(role domain.Role, mode permission.Mode) []domain.Field {
	out := []domain.Field{}
	for _, f := range formFields {
		if !permission.IsFieldWritable(role, f, mode) {
			out = append(out, f)
		}
	}
	return out
}

func without(fields []domain.Field, drop domain.Field) []domain.Field {
	out := make([]domain.Field, 0, len(fields))
	for _, f := range fields {
		if f != drop {
			out = append(out, f)
		}
	}
	return out
}

func contains(fields []domain.Field, want domain.Field) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	kind, msg := apperrors.Classify(err)
	switch kind {
	case apperrors.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg, "kind": kind})
	case apperrors.KindPermission:
		c.JSON(http.StatusForbidden, gin.H{"error": msg, "kind": kind})
	case apperrors.KindTransport:
		logger.Warn("Backend unreachable", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": msg, "kind": kind})
	case apperrors.KindBackend:
		c.JSON(http.StatusBadGateway, gin.H{"error": msg, "kind": kind})
	default:
		logger.Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": kind})
	}
}
