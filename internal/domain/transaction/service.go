package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"Finora/internal/domain/user"
	appErrors "Finora/internal/errors"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository  Repository
	UserService *user.Service
	Voice       VoiceParser
}

func NewService(repo Repository, userSvc *user.Service, voice VoiceParser) *Service {
	return &Service{Repository: repo, UserService: userSvc, Voice: voice}
}

func (s *Service) CreateTransaction(ctx context.Context, transaction *Transaction) error {
	if err := s.ensureUserExists(ctx, transaction.UserId); err != nil {
		return err
	}

	if err := validateTransaction(transaction); err != nil {
		return err
	}

	TransactionCreateStruct(transaction)
	if err := s.Repository.Create(ctx, transaction); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) UpdateTransaction(ctx context.Context, transaction *Transaction) error {
	if err := s.ensureUserExists(ctx, transaction.UserId); err != nil {
		return err
	}

	storedTransaction, err := s.GetTransactionByID(ctx, transaction.Id, transaction.UserId)
	if err != nil {
		return err
	}

	if err := validateTransaction(transaction); err != nil {
		return err
	}

	storedTransaction.Type = transaction.Type
	storedTransaction.Category = transaction.Category
	storedTransaction.Amount = transaction.Amount
	storedTransaction.Description = transaction.Description
	storedTransaction.PaymentMethod = transaction.PaymentMethod
	if !transaction.Date.IsZero() {
		storedTransaction.Date = transaction.Date
	}
	storedTransaction.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, storedTransaction); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	*transaction = *storedTransaction

	return nil
}

func (s *Service) DeleteTransaction(ctx context.Context, transactionID ulid.ULID, userID ulid.ULID) error {
	if _, err := s.GetTransactionByID(ctx, transactionID, userID); err != nil {
		return err
	}

	return s.Repository.Delete(ctx, transactionID)
}

func (s *Service) GetTransactionByID(ctx context.Context, transactionID ulid.ULID, userID ulid.ULID) (*Transaction, error) {
	transaction, err := s.Repository.GetByIDAndUser(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return transaction, nil
}

func (s *Service) GetAllTransactions(ctx context.Context, userID ulid.ULID, filter *Filter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	transactions, total, err := s.Repository.GetAll(ctx, userID, filter, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transactions, total, nil
}

// FindByUserAndDateRange alimenta a agregação de relatórios. O intervalo é
// inclusivo nas duas pontas.
func (s *Service) FindByUserAndDateRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*Transaction, error) {
	if to.Before(from) {
		return nil, appErrors.NewValidationError("date", "intervalo inválido")
	}

	transactions, err := s.Repository.FindByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return transactions, nil
}

func (s *Service) GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	count, err := s.Repository.GetNumberOfTransactions(ctx, userID)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

func TransactionCreateStruct(transaction *Transaction) {
	transaction.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
}

func validateTransaction(transaction *Transaction) error {
	if !transaction.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser INCOME ou EXPENSE")
	}

	if transaction.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	transaction.Category = strings.TrimSpace(transaction.Category)
	if transaction.Category == "" {
		return appErrors.NewValidationError("category", "é obrigatório")
	}

	if transaction.PaymentMethod == "" {
		transaction.PaymentMethod = MethodOther
	}
	if !transaction.PaymentMethod.IsValid() {
		return appErrors.NewValidationError("paymentmethod", "método de pagamento inválido")
	}

	return nil
}

func (s *Service) ensureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s.UserService == nil {
		return appErrors.ErrInternalServer.WithError(errors.New("user service not configured"))
	}
	if _, err := s.UserService.GetByID(ctx, userID); err != nil {
		return appErrors.ErrUserNotFound
	}
	return nil
}
