package report

import (
	"context"
	"errors"
	"time"

	"Finora/internal/domain/user"
	"Finora/internal/logger"
	"Finora/internal/pkg"
)

type JobResult struct {
	Success        bool   `json:"success"`
	ProcessedCount int    `json:"processedCount"`
	FailedCount    int    `json:"failedCount"`
	Error          string `json:"error,omitempty"`
}

// JobService executa o ciclo de relatórios: seleciona configurações vencidas,
// gera, entrega e grava o desfecho reagendando na mesma transação.
type JobService struct {
	Settings   SettingRepository
	Reports    *Service
	Dispatcher *Dispatcher
}

func NewJobService(settings SettingRepository, reports *Service, dispatcher *Dispatcher) *JobService {
	return &JobService{
		Settings:   settings,
		Reports:    reports,
		Dispatcher: dispatcher,
	}
}

func (j *JobService) RunReportJob(ctx context.Context) JobResult {
	now := time.Now()

	due, err := j.Settings.FindDue(ctx, now)
	if err != nil {
		logger.Error().Err(err).Msg("falha ao selecionar configurações vencidas")
		return JobResult{Success: false, Error: err.Error()}
	}

	logger.Info().Int("due", len(due)).Msg("iniciando ciclo de relatórios")

	result := JobResult{Success: true}

	for i := range due {
		setting := due[i].Setting
		owner := due[i].User

		if pkg.IsEmptyULID(owner.Id) {
			logger.Warn().
				Str("setting_id", setting.Id.String()).
				Str("user_id", setting.UserId.String()).
				Msg("configuração sem usuário correspondente, pulando")
			continue
		}

		j.processSetting(ctx, setting, owner, now, &result)
	}

	logger.Info().
		Int("processed", result.ProcessedCount).
		Int("failed", result.FailedCount).
		Msg("ciclo de relatórios concluído")

	return result
}

func (j *JobService) processSetting(ctx context.Context, setting ReportSetting, owner user.User, now time.Time, result *JobResult) {
	from, to := ReportWindow(now)

	rpt, err := j.Reports.GenerateReport(ctx, setting.UserId, from, to)

	var status ReportStatus
	var period string
	var lastSent *time.Time

	switch {
	case err != nil:
		logger.Warn().
			Err(err).
			Str("user_id", setting.UserId.String()).
			Msg("falha ao gerar relatório")
		status = StatusFailed
		period = PeriodLabel(from, to)
	case rpt == nil:
		status = StatusNoActivity
		period = PeriodLabel(from, to)
	default:
		recipient := Recipient{
			UserId: owner.Id,
			Name:   owner.Name,
			Email:  owner.Email,
			Phone:  owner.Phone,
		}

		delivery := j.Dispatcher.Deliver(ctx, rpt, recipient, setting.Frequency)
		period = rpt.Period

		if delivery.Delivered {
			status = StatusSent
			sentAt := now
			lastSent = &sentAt
			logger.Info().
				Str("user_id", setting.UserId.String()).
				Str("channel", delivery.Channel).
				Str("period", period).
				Msg("relatório entregue")
		} else {
			status = StatusFailed
			logger.Warn().
				Str("user_id", setting.UserId.String()).
				Str("period", period).
				Msg("nenhum canal conseguiu entregar o relatório")
		}
	}

	record := &ReportRecord{
		Id:        pkg.GenerateULIDObject(),
		UserId:    setting.UserId,
		Period:    period,
		SentDate:  now,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := NextReportDate(setting.Frequency, now)

	if err := j.Settings.RecordAndReschedule(ctx, record, setting.UserId, now, lastSent, next); err != nil {
		if errors.Is(err, ErrSettingNotDue) {
			logger.Debug().
				Str("user_id", setting.UserId.String()).
				Msg("configuração já processada por outra execução")
			return
		}

		logger.Error().
			Err(err).
			Str("user_id", setting.UserId.String()).
			Msg("falha ao gravar histórico e reagendar")
		result.FailedCount++
		return
	}

	result.ProcessedCount++
}
