package utils

import (
	goerrors "errors"

	"github.com/gofiber/fiber/v2"

	domain "cryptowallet/internal/errors"
)

func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// DomainError maps a core outcome to its HTTP status: absent entities to
// 404, ownership failures to 403, conflicts to 409, validation and lifecycle
// violations to 400. Anything that is not a DomainError becomes a 500.
func DomainError(c *fiber.Ctx, err error) error {
	var derr *domain.DomainError
	if !goerrors.As(err, &derr) {
		return InternalError(c, "internal server error")
	}

	switch derr {
	case domain.ErrUserNotFound, domain.ErrCurrencyNotFound,
		domain.ErrWalletNotFound, domain.ErrTransactionNotFound:
		return Error(c, fiber.StatusNotFound, derr.Message)
	case domain.ErrForbidden:
		return Error(c, fiber.StatusForbidden, derr.Message)
	case domain.ErrInvalidCredentials:
		return Error(c, fiber.StatusUnauthorized, derr.Message)
	case domain.ErrUserInUse:
		return Error(c, fiber.StatusConflict, derr.Message)
	default:
		return Error(c, fiber.StatusBadRequest, derr.Message)
	}
}
