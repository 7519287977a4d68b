package report

import (
	"context"
	"errors"
	"time"

	"Finora/internal/domain/transaction"
	"Finora/internal/domain/user"
	"Finora/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// ErrSettingNotDue indica que outra execução do job já processou a
// configuração entre a seleção e a gravação.
var ErrSettingNotDue = errors.New("report setting is no longer due")

// DueSetting é uma configuração vencida com o usuário resolvido pelo join.
type DueSetting struct {
	Setting ReportSetting
	User    user.User
}

type SettingRepository interface {
	Create(ctx context.Context, setting *ReportSetting) error
	Update(ctx context.Context, setting *ReportSetting) error
	GetByUserID(ctx context.Context, userID ulid.ULID) (*ReportSetting, error)
	FindDue(ctx context.Context, now time.Time) ([]DueSetting, error)

	// RecordAndReschedule grava o registro de histórico e avança a
	// configuração na mesma transação. A atualização é condicionada a
	// next_report_date <= now; zero linhas afetadas desfaz a gravação e
	// devolve ErrSettingNotDue.
	RecordAndReschedule(ctx context.Context, record *ReportRecord, userID ulid.ULID, now time.Time, lastSent *time.Time, next time.Time) error
}

type RecordRepository interface {
	Create(ctx context.Context, record *ReportRecord) error
	GetAllByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ReportRecord, int64, error)
}

type TransactionSource interface {
	FindByUserAndDateRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*transaction.Transaction, error)
}

type InsightGenerator interface {
	GenerateInsights(ctx context.Context, period string, summary Summary) ([]string, error)
}
