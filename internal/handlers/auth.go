package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cryptowallet/internal/middleware"
	"cryptowallet/internal/models"
	"cryptowallet/internal/services/auth"
	"cryptowallet/internal/utils"
	"cryptowallet/internal/validation"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.UserRegistration(&input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	user, token, err := h.authService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"username":     user.Username,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if _, ok := middleware.ClaimsFromContext(c); !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	// Tokens are short-lived and stateless; logout is a client-side discard
	return utils.Success(c, fiber.Map{
		"message": "session closed successfully",
	})
}
