package user

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type User struct {
	Id           ulid.ULID    `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name         string       `gorm:"type:varchar(100);not null" json:"name"`
	Email        string       `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null" json:"email"`
	Phone        string       `gorm:"type:varchar(20)" json:"phone"`
	Password     string       `gorm:"type:varchar(255)" json:"-"`
	AuthProvider AuthProvider `gorm:"type:varchar(10);default:'local'" json:"authProvider"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

func (p AuthProvider) IsValid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle:
		return true
	}
	return false
}
