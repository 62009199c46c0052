// Package middleware provides HTTP middleware for the fiber application.
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cryptowallet/internal/models"
	"cryptowallet/internal/services/auth"
	"cryptowallet/internal/utils"
)

// AuthMiddleware validates bearer tokens and resolves the acting principal.
// Downstream handlers read the verified claims from c.Locals("claims").
type AuthMiddleware struct {
	authService auth.Service
	secret      string
}

func NewAuthMiddleware(authService auth.Service, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		secret:      secret,
	}
}

func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(tokenString, m.secret)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return utils.Unauthorized(c, "invalid token")
	}

	// The token may outlive the account; re-check the user on every request
	user, err := m.authService.GetUserByID(c.Context(), claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}
	if !user.IsActive {
		return utils.Unauthorized(c, "account is inactive")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// ClaimsFromContext returns the verified claims set by the auth middleware.
func ClaimsFromContext(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok && claims != nil
}
