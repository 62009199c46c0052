package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cryptowallet/internal/models"
	"cryptowallet/internal/services/currency"
	"cryptowallet/internal/utils"
)

type CurrencyHandler struct {
	currencyService currency.Service
}

func NewCurrencyHandler(currencyService currency.Service) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

func (h *CurrencyHandler) ListCurrencies(c *fiber.Ctx) error {
	currencies, err := h.currencyService.List(c.Context())
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, currencies)
}

func (h *CurrencyHandler) GetCurrency(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid currency id")
	}

	cur, err := h.currencyService.Get(c.Context(), id)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, cur)
}

func (h *CurrencyHandler) CreateCurrency(c *fiber.Ctx) error {
	var input models.CreateCurrencyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Name == "" || input.Symbol == "" {
		return utils.BadRequest(c, "nombre and simbolo are required")
	}

	cur, err := h.currencyService.Create(c.Context(), input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, cur)
}

func (h *CurrencyHandler) DeleteCurrency(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid currency id")
	}

	if err := h.currencyService.Delete(c.Context(), id); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.NoContent(c)
}
