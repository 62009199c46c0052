package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cryptowallet/internal/middleware"
	"cryptowallet/internal/models"
	"cryptowallet/internal/services/user"
	"cryptowallet/internal/utils"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	profile, err := h.userService.GetProfile(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, profile)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}

	profile, err := h.userService.GetProfile(c.Context(), id)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, profile)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}

	var input models.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	updated, err := h.userService.Update(c.Context(), claims.UserID, id, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, updated)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}

	if err := h.userService.Delete(c.Context(), claims.UserID, id); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.NoContent(c)
}
