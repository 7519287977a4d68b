package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Transaction struct {
	Id            ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID     `gorm:"type:varchar(26);index:idx_transactions_user_id;index:idx_transactions_user_date,priority:1;not null" json:"userId"`
	Type          Types         `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	Category      string        `gorm:"type:varchar(100);not null;index:idx_transactions_category" json:"category"`
	Amount        float64       `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description   string        `gorm:"type:varchar(255)" json:"description"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20)" json:"paymentMethod"`
	Date          time.Time     `gorm:"not null;index:idx_transactions_user_date,priority:2" json:"date"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type Types string

const (
	Income  Types = "INCOME"
	Expense Types = "EXPENSE"
)

func (t Types) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodCard   PaymentMethod = "CARD"
	MethodUPI    PaymentMethod = "UPI"
	MethodWallet PaymentMethod = "WALLET"
	MethodOther  PaymentMethod = "OTHER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI, MethodWallet, MethodOther:
		return true
	}
	return false
}
