package transaction

import (
	"context"
	"time"

	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Filter restringe a listagem de transações. Campos nil/vazios são ignorados.
type Filter struct {
	Type     *Types
	Category string
	Search   string
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	Create(ctx context.Context, transaction *Transaction) error
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, transactionID ulid.ULID) error
	GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, userID ulid.ULID, filter *Filter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	FindByUserAndDateRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*Transaction, error)
	GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error)
}
