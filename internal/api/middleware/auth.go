package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/config"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

const (
	RoleContextKey  = "staffRole"
	TokenContextKey = "staffToken"
)

// StaffClaims is the payload of a staff session token issued by the auth
// service. The role claim is the only thing this service reads.
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// StaffAuth verifies the bearer token and resolves the staff role. This is
// the single point where an external role string enters the core; everything
// past here works with the typed domain.Role.
func StaffAuth(cfg config.AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		claims := &StaffClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Failed to verify staff token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			c.Abort()
			return
		}

		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			logger.Warn("Staff token carries unknown role", zap.String("role", claims.Role))
			c.JSON(http.StatusForbidden, gin.H{"error": "unrecognized staff role"})
			c.Abort()
			return
		}

		c.Set(RoleContextKey, role)
		c.Set(TokenContextKey, raw)
		c.Next()
	}
}

// ServiceKeyAuth guards internal routes with a shared service key, verified
// against a bcrypt hash so the plaintext never sits in config.
func ServiceKeyAuth(cfg config.AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader("X-Service-Key"))
		if key == "" || cfg.ServiceKeyHash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing service key"})
			c.Abort()
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.ServiceKeyHash), []byte(key)); err != nil {
			logger.Warn("Service key rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid service key"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetRoleFromContext retrieves the resolved staff role from the Gin context.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	v, exists := c.Get(RoleContextKey)
	if !exists {
		return "", false
	}
	role, ok := v.(domain.Role)
	return role, ok
}

// GetTokenFromContext retrieves the raw bearer credential, forwarded verbatim
// to the order backend and never inspected.
func GetTokenFromContext(c *gin.Context) string {
	v, exists := c.Get(TokenContextKey)
	if !exists {
		return ""
	}
	tok, _ := v.(string)
	return tok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
