package report

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ReportSetting controla a cadência de envio do relatório de um usuário.
// Existe no máximo uma por usuário.
type ReportSetting struct {
	Id             ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId         ulid.ULID     `gorm:"type:varchar(26);uniqueIndex:idx_report_settings_user;not null" json:"userId"`
	Frequency      FrequencyType `gorm:"type:varchar(10);not null;default:'MONTHLY'" json:"frequency"`
	IsEnabled      bool          `gorm:"not null;default:true" json:"isEnabled"`
	LastSentDate   *time.Time    `json:"lastSentDate"`
	NextReportDate time.Time     `gorm:"not null;index:idx_report_settings_next_date" json:"nextReportDate"`
	CreatedAt      time.Time     `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (ReportSetting) TableName() string {
	return "report_settings"
}

// ReportRecord é o histórico imutável de execuções por usuário.
type ReportRecord struct {
	Id        ulid.ULID    `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId    ulid.ULID    `gorm:"type:varchar(26);index:idx_report_records_user;not null" json:"userId"`
	Period    string       `gorm:"type:varchar(60);not null" json:"period"`
	SentDate  time.Time    `gorm:"not null" json:"sentDate"`
	Status    ReportStatus `gorm:"type:varchar(15);not null" json:"status"`
	CreatedAt time.Time    `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (ReportRecord) TableName() string {
	return "report_records"
}

type ReportStatus string

const (
	StatusSent       ReportStatus = "SENT"
	StatusFailed     ReportStatus = "FAILED"
	StatusNoActivity ReportStatus = "NO_ACTIVITY"
)

type FrequencyType string

const (
	Daily   FrequencyType = "DAILY"
	Weekly  FrequencyType = "WEEKLY"
	Monthly FrequencyType = "MONTHLY"
	Yearly  FrequencyType = "YEARLY"
)

func (f FrequencyType) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Report é o resultado transitório da agregação; nunca é persistido.
type Report struct {
	Period   string   `json:"period"`
	Summary  Summary  `json:"summary"`
	Insights []string `json:"insights"`
}

type Summary struct {
	Income        float64          `json:"income"`
	Expenses      float64          `json:"expenses"`
	Balance       float64          `json:"balance"`
	SavingsRate   float64          `json:"savingsRate"`
	TopCategories []CategoryAmount `json:"topCategories"`
}

type CategoryAmount struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Recipient é o destino de entrega resolvido a partir do usuário.
type Recipient struct {
	UserId ulid.ULID
	Name   string
	Email  string
	Phone  string
}
