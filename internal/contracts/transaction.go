package contracts

import (
	"time"

	"Finora/internal/domain/transaction"
)

type TransactionCreateRequest struct {
	Type          string    `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category      string    `json:"category" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Description   string    `json:"description" binding:"omitempty,max=255"`
	PaymentMethod string    `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD UPI WALLET OTHER"`
	Date          time.Time `json:"date" binding:"omitempty"`
}

type TransactionUpdateRequest struct {
	Type          string    `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category      string    `json:"category" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Description   string    `json:"description" binding:"omitempty,max=255"`
	PaymentMethod string    `json:"paymentMethod" binding:"omitempty,oneof=CASH CARD UPI WALLET OTHER"`
	Date          time.Time `json:"date" binding:"omitempty"`
}

type TransactionCreateResponse struct {
	Message     string                  `json:"message"`
	Transaction transaction.Transaction `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction *transaction.Transaction `json:"transaction"`
}

type TransactionDeletionResponse struct {
	Message string `json:"message"`
}

type VoiceParseRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

type VoiceParseResponse struct {
	Message     string                       `json:"message"`
	Transaction transaction.VoiceTransaction `json:"transaction"`
}
