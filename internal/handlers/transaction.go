package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cryptowallet/internal/middleware"
	"cryptowallet/internal/models"
	"cryptowallet/internal/repositories"
	"cryptowallet/internal/services/transaction"
	"cryptowallet/internal/services/user"
	"cryptowallet/internal/utils"
)

type TransactionHandler struct {
	txnService  transaction.Service
	userService user.Service
}

func NewTransactionHandler(txnService transaction.Service, userService user.Service) *TransactionHandler {
	return &TransactionHandler{
		txnService:  txnService,
		userService: userService,
	}
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input models.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if !input.Type.Valid() {
		return utils.BadRequest(c, "invalid transaction type")
	}

	txn, err := h.txnService.Create(c.Context(), claims.UserID, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, txn)
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	skip, limit := utils.ParseSkipLimit(c)

	filter := repositories.TransactionFilter{
		UserID:     queryUint(c, "usuario_id"),
		CurrencyID: queryUint(c, "cryptomoneda_id"),
	}
	if raw := c.Query("tipo"); raw != "" {
		t := models.TransactionType(raw)
		if !t.Valid() {
			return utils.BadRequest(c, "invalid transaction type")
		}
		filter.Type = &t
	}
	if raw := c.Query("estado"); raw != "" {
		st := models.TransactionStatus(raw)
		if !st.Valid() {
			return utils.BadRequest(c, "invalid transaction status")
		}
		filter.Status = &st
	}

	txns, err := h.txnService.List(c.Context(), filter, skip, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, txns)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	txn, err := h.txnService.Get(c.Context(), id)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, txn)
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	var input models.UpdateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Status != nil && !input.Status.Valid() {
		return utils.BadRequest(c, "invalid transaction status")
	}

	txn, err := h.txnService.Update(c.Context(), claims.UserID, id, input)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, txn)
}

// ChangeStatus handles PATCH /:id/estado with the target status in the
// nuevo_estado query parameter.
func (h *TransactionHandler) ChangeStatus(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	newStatus := models.TransactionStatus(c.Query("nuevo_estado"))
	if !newStatus.Valid() {
		return utils.BadRequest(c, "invalid transaction status")
	}

	txn, err := h.txnService.Transition(c.Context(), claims.UserID, id, newStatus)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, txn)
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	if err := h.txnService.Delete(c.Context(), claims.UserID, id); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.NoContent(c)
}

func (h *TransactionHandler) ListUserTransactions(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}
	if _, err := h.userService.Get(c.Context(), userID); err != nil {
		return utils.DomainError(c, err)
	}

	skip, limit := utils.ParseSkipLimit(c)
	txns, err := h.txnService.List(c.Context(), repositories.TransactionFilter{UserID: &userID}, skip, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, txns)
}

func (h *TransactionHandler) ListMyTransactions(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	skip, limit := utils.ParseSkipLimit(c)
	txns, err := h.txnService.List(c.Context(), repositories.TransactionFilter{UserID: &claims.UserID}, skip, limit)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, txns)
}
