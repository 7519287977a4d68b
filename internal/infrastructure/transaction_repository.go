package infrastructure

import (
	"context"
	"time"

	"Finora/internal/domain/transaction"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

type transactionDB struct {
	Id            string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId        string    `gorm:"type:varchar(26);index;not null;column:user_id"`
	Type          string    `gorm:"type:varchar(10);not null;column:type"`
	Category      string    `gorm:"type:varchar(100);not null;column:category"`
	Amount        float64   `gorm:"not null;column:amount"`
	Description   string    `gorm:"size:255;column:description"`
	PaymentMethod string    `gorm:"type:varchar(20);column:payment_method"`
	Date          time.Time `gorm:"not null;column:date"`
	CreatedAt     time.Time `gorm:"not null;column:created_at"`
	UpdatedAt     time.Time `gorm:"not null;column:updated_at"`
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		Id:            id,
		UserId:        uid,
		Type:          transaction.Types(tdb.Type),
		Category:      tdb.Category,
		Amount:        tdb.Amount,
		Description:   tdb.Description,
		PaymentMethod: transaction.PaymentMethod(tdb.PaymentMethod),
		Date:          tdb.Date,
		CreatedAt:     tdb.CreatedAt,
		UpdatedAt:     tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	return &transactionDB{
		Id:            t.Id.String(),
		UserId:        t.UserId.String(),
		Type:          string(t.Type),
		Category:      t.Category,
		Amount:        t.Amount,
		Description:   t.Description,
		PaymentMethod: string(t.PaymentMethod),
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Table("transactions").Create(tdb).Error
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Table("transactions").Where("id = ?", tdb.Id).Updates(tdb).Error
}

func (r *TransactionRepository) Delete(ctx context.Context, transactionID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("transactions").Where("id = ?", transactionID.String()).Delete(&transactionDB{}).Error
}

func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, filter *transaction.Filter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	query := r.DB.WithContext(ctx).Table("transactions").Where("user_id = ?", userID.String())

	if filter != nil {
		if filter.Type != nil && *filter.Type != "" {
			query = query.Where("type = ?", string(*filter.Type))
		}
		if filter.Category != "" {
			query = query.Where("category = ?", filter.Category)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("description ILIKE ? OR category ILIKE ?", pattern, pattern)
		}
		if filter.From != nil {
			query = query.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("date <= ?", *filter.To)
		}
	}

	return pkg.Paginate(query, pagination, "date DESC, created_at DESC", toDomainTransaction)
}

func (r *TransactionRepository) FindByUserAndDateRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error) {
	var rows []transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("user_id = ? AND date >= ? AND date <= ?", userID.String(), from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*transaction.Transaction, 0, len(rows))
	for i := range rows {
		item, err := toDomainTransaction(&rows[i])
		if err != nil {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *TransactionRepository) GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transactions").Where("user_id = ?", userID.String()).Count(&count).Error
	return count, err
}
