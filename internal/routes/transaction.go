package routes

import (
	"net/http"
	"time"

	"Finora/internal/contracts"
	"Finora/internal/domain/transaction"
	appErrors "Finora/internal/errors"
	"Finora/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	date := body.Date
	if date.IsZero() {
		date = pkg.SetTimestamps()
	}

	transactionEntity := transaction.Transaction{
		UserId:        userID,
		Type:          transaction.Types(body.Type),
		Category:      body.Category,
		Amount:        body.Amount,
		Description:   body.Description,
		PaymentMethod: transaction.PaymentMethod(body.PaymentMethod),
		Date:          date,
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.CreateTransaction(ctx, &transactionEntity); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação criada com sucesso",
		Transaction: transactionEntity,
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionService.GetAllTransactions(ctx, userID, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	transactionEntity, err := h.TransactionService.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: transactionEntity})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.TransactionUpdateRequest
	if err = c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	transactionEntity := transaction.Transaction{
		Id:            transactionID,
		UserId:        userID,
		Type:          transaction.Types(body.Type),
		Category:      body.Category,
		Amount:        body.Amount,
		Description:   body.Description,
		PaymentMethod: transaction.PaymentMethod(body.PaymentMethod),
		Date:          body.Date,
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.UpdateTransaction(ctx, &transactionEntity); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: &transactionEntity})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.DeleteTransaction(ctx, transactionID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionDeletionResponse{
		Message: "Transação removida com sucesso",
	})
}

func (h *Handler) ParseVoiceTransaction(c *gin.Context) {
	var body contracts.VoiceParseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	parsed, err := h.TransactionService.ParseVoiceInput(ctx, userID, body.Transcript)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.VoiceParseResponse{
		Message:     "Transcrição interpretada com sucesso",
		Transaction: *parsed,
	})
}

func parseTransactionFilter(c *gin.Context) (*transaction.Filter, error) {
	filter := &transaction.Filter{}

	if typeStr := c.Query("type"); typeStr != "" && typeStr != "ALL" {
		t := transaction.Types(typeStr)
		if !t.IsValid() {
			return nil, appErrors.NewValidationError("type", "deve ser INCOME ou EXPENSE")
		}
		filter.Type = &t
	}

	filter.Category = c.Query("category")
	filter.Search = c.Query("search")

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := parseDateParam(fromStr)
		if err != nil {
			return nil, appErrors.NewValidationError("from", "formato inválido, use YYYY-MM-DD")
		}
		filter.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := parseDateParam(toStr)
		if err != nil {
			return nil, appErrors.NewValidationError("to", "formato inválido, use YYYY-MM-DD")
		}
		filter.To = &to
	}

	return filter, nil
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
