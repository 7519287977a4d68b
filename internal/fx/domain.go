package fx

import (
	"Finora/config"
	"Finora/internal/domain/auth"
	"Finora/internal/domain/report"
	"Finora/internal/domain/transaction"
	"Finora/internal/domain/user"
	"Finora/internal/infrastructure"
	"Finora/internal/logger"
	"Finora/internal/notify"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,

		// Auth service (requer GoogleClientID)
		newGoogleClientID,
		newAuthService,

		newTransactionService,

		// Report pipeline
		newSettingService,
		newReportService,
		newWhatsAppChannel,
		newEmailChannel,
		newDispatcher,
		newJobService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newGoogleClientID(cfg *config.Config) string {
	googleClientID := ""
	if cfg.GoogleOAuth.Enabled {
		if cfg.GoogleOAuth.ClientID == "" {
			logger.Warn().
				Msg("GOOGLE_OAUTH_ENABLED=true mas GOOGLE_OAUTH_CLIENT_ID está vazio. Verifique se a variável está definida no arquivo .env")
		} else {
			googleClientID = cfg.GoogleOAuth.ClientID
			logger.Info().
				Int("client_id_length", len(googleClientID)).
				Msg("Google OAuth habilitado")
		}
	} else {
		logger.Info().Msg("Google OAuth desabilitado (GOOGLE_OAUTH_ENABLED não está definido como 'true')")
	}
	return googleClientID
}

func newAuthService(
	repo *infrastructure.UserRepository,
	userSvc *user.Service,
	settingSvc *report.SettingService,
	googleClientID string,
) *auth.Service {
	return auth.NewService(repo, userSvc, settingSvc, googleClientID)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	userSvc *user.Service,
	voice *infrastructure.GeminiVoiceParser,
) *transaction.Service {
	return transaction.NewService(repo, userSvc, voice)
}

func newSettingService(repo *infrastructure.ReportSettingRepository) *report.SettingService {
	return report.NewSettingService(repo)
}

func newReportService(
	cfg *config.Config,
	transactionSvc *transaction.Service,
	recordRepo *infrastructure.ReportRecordRepository,
	userSvc *user.Service,
	insights *infrastructure.GeminiInsightGenerator,
) *report.Service {
	return report.NewService(transactionSvc, recordRepo, userSvc, insights, cfg.Report.TopCategories)
}

func newWhatsAppChannel(sender *infrastructure.TwilioWhatsAppSender) *notify.WhatsAppChannel {
	return notify.NewWhatsAppChannel(sender)
}

func newEmailChannel(sender *infrastructure.ResendEmailSender) *notify.EmailChannel {
	return notify.NewEmailChannel(sender)
}

// O WhatsApp vem primeiro; o e-mail é o fallback.
func newDispatcher(whatsapp *notify.WhatsAppChannel, email *notify.EmailChannel) *report.Dispatcher {
	return report.NewDispatcher(whatsapp, email)
}

func newJobService(
	settingRepo *infrastructure.ReportSettingRepository,
	reportSvc *report.Service,
	dispatcher *report.Dispatcher,
) *report.JobService {
	return report.NewJobService(settingRepo, reportSvc, dispatcher)
}
