package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/api/middleware"
)

// HandleListSessionOrders handles GET /v1/session/orders
func HandleListSessionOrders(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.GetTokenFromContext(c)
		orders := deps.Sessions.Get(token).Store.List()
		c.JSON(http.StatusOK, gin.H{
			"orders": toOrderViews(orders),
			"count":  len(orders),
		})
	}
}

// HandleResetSessions handles POST /internal/sessions/reset. Ops hook for
// clearing cached dashboard state after a backend migration.
func HandleResetSessions(deps *Deps) gin.HandlerFunc {
	type resetRequest struct {
		Token string `json:"token" binding:"required"`
	}
	return func(c *gin.Context) {
		var req resetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		deps.Sessions.Drop(req.Token)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
