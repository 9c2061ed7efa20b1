package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/errors"
	"github.com/shajghor/shajghor-backend/pkg/util"
)

// Context keys for the authenticated admin.
const (
	AdminIDKey    = "admin_id"
	AdminEmailKey = "admin_email"
	AdminRoleKey  = "admin_role"
)

type AuthMiddleware struct {
	jwtSecret string
	adminRepo repository.AdminUserRepository
}

func NewAuthMiddleware(jwtSecret string, adminRepo repository.AdminUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		adminRepo: adminRepo,
	}
}

// Authenticate validates the bearer token and stores the claims in the
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Please sign in to continue")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Your session has expired. Please sign in again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		c.Set(AdminIDKey, claims.UserID)
		c.Set(AdminEmailKey, claims.Email)
		c.Set(AdminRoleKey, claims.Role)

		log.Debug("Request authenticated", map[string]interface{}{
			"admin_id": claims.UserID,
			"email":    claims.Email,
		})

		c.Next()
	}
}

// RequireAdmin checks the admin_users table on every request. A token
// issued before a row was removed stops working immediately, not at
// expiry.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		adminID, ok := GetAdminID(c)
		if !ok {
			log.Warn("Admin identity not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Admin access required")
			c.Abort()
			return
		}

		admin, err := m.adminRepo.FindByID(adminID)
		if err != nil {
			log.Warn("Admin row lookup failed", map[string]interface{}{
				"admin_id": adminID,
				"path":     c.Request.URL.Path,
				"error":    err.Error(),
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAccessDenied, "Access denied")
			c.Abort()
			return
		}

		log.Debug("Admin authorization passed", map[string]interface{}{
			"admin_id": admin.ID,
			"email":    admin.Email,
		})
		c.Next()
	}
}

// GetAdminID extracts the authenticated admin's ID from the context.
func GetAdminID(c *gin.Context) (uint, bool) {
	adminID, exists := c.Get(AdminIDKey)
	if !exists {
		return 0, false
	}
	id, ok := adminID.(uint)
	return id, ok
}

// GetAdminEmail extracts the authenticated admin's email from the context.
func GetAdminEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(AdminEmailKey)
	if !exists {
		return "", false
	}
	e, ok := email.(string)
	return e, ok
}
