package middleware

import (
	"strings"

	"gad-officerhub/internal/config"
	"gad-officerhub/internal/core/domain"
	"gad-officerhub/internal/pkg/jwt"
	"gad-officerhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("officerID", claims.OfficerID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		c.Locals("sessionID", claims.SessionID)

		return c.Next()
	}
}

// SessionFromCtx rebuilds the session context from the locals the auth
// middleware set. Handlers pass it down instead of reading locals ad hoc.
func SessionFromCtx(c *fiber.Ctx) domain.SessionContext {
	sess := domain.SessionContext{}
	if v, ok := c.Locals("userID").(uint); ok {
		sess.UserID = v
	}
	if v, ok := c.Locals("officerID").(uint); ok {
		sess.OfficerUserID = v
	}
	if v, ok := c.Locals("role").(string); ok {
		sess.Role = v
	}
	if v, ok := c.Locals("sessionID").(string); ok {
		sess.SessionID = v
	}
	return sess
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// ClerkOrAdmin middleware allows the administrative roles that edit other
// officers' profiles
func ClerkOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleClerk, domain.RoleAdmin)
}

// OfficerOnly middleware allows only OFFICER role
func OfficerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleOfficer)
}
