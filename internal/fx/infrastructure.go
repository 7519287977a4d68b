package fx

import (
	"Finora/config"
	"Finora/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newTransactionRepository,
		newReportSettingRepository,
		newReportRecordRepository,
		newTwilioSender,
		newResendSender,
		newInsightGenerator,
		newVoiceParser,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return infrastructure.NewUserRepository(db)
}

func newTransactionRepository(db *gorm.DB) *infrastructure.TransactionRepository {
	return infrastructure.NewTransactionRepository(db)
}

func newReportSettingRepository(db *gorm.DB) *infrastructure.ReportSettingRepository {
	return infrastructure.NewReportSettingRepository(db)
}

func newReportRecordRepository(db *gorm.DB) *infrastructure.ReportRecordRepository {
	return infrastructure.NewReportRecordRepository(db)
}

func newTwilioSender(cfg *config.Config) *infrastructure.TwilioWhatsAppSender {
	return infrastructure.NewTwilioWhatsAppSender(cfg)
}

func newResendSender(cfg *config.Config) *infrastructure.ResendEmailSender {
	return infrastructure.NewResendEmailSender(cfg)
}

func newInsightGenerator(cfg *config.Config) *infrastructure.GeminiInsightGenerator {
	return infrastructure.NewGeminiInsightGenerator(cfg)
}

func newVoiceParser(cfg *config.Config) *infrastructure.GeminiVoiceParser {
	return infrastructure.NewGeminiVoiceParser(cfg)
}
