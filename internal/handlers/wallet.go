package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cryptowallet/internal/middleware"
	"cryptowallet/internal/models"
	"cryptowallet/internal/repositories"
	"cryptowallet/internal/services/user"
	"cryptowallet/internal/services/wallet"
	"cryptowallet/internal/utils"
)

type WalletHandler struct {
	walletService wallet.Service
	userService   user.Service
}

func NewWalletHandler(walletService wallet.Service, userService user.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		userService:   userService,
	}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.CreateWalletInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.CurrencyID == 0 {
		return utils.BadRequest(c, "cryptomoneda_id is required")
	}

	w, err := h.walletService.Create(c.Context(), claims.UserID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, w)
}

func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	skip, limit := utils.ParseSkipLimit(c)
	filter := repositories.WalletFilter{
		UserID:     queryUint(c, "usuario_id"),
		CurrencyID: queryUint(c, "cryptomoneda_id"),
	}

	wallets, err := h.walletService.List(c.Context(), filter, skip, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, wallets)
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	w, err := h.walletService.Get(c.Context(), id)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, w)
}

func (h *WalletHandler) UpdateWallet(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	var input models.UpdateWalletInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	w, err := h.walletService.Update(c.Context(), claims.UserID, id, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, w)
}

func (h *WalletHandler) DeleteWallet(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	if err := h.walletService.Delete(c.Context(), claims.UserID, id); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.NoContent(c)
}

func (h *WalletHandler) ListUserWallets(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	if _, err := h.userService.Get(c.Context(), userID); err != nil {
		return utils.DomainError(c, err)
	}

	skip, limit := utils.ParseSkipLimit(c)
	wallets, err := h.walletService.List(c.Context(), repositories.WalletFilter{UserID: &userID}, skip, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, wallets)
}

func (h *WalletHandler) ListMyWallets(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	skip, limit := utils.ParseSkipLimit(c)
	wallets, err := h.walletService.List(c.Context(), repositories.WalletFilter{UserID: &claims.UserID}, skip, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, wallets)
}
