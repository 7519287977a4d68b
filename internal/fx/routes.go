package fx

import (
	"Finora/internal/domain/auth"
	"Finora/internal/domain/report"
	"Finora/internal/domain/transaction"
	"Finora/internal/domain/user"
	"Finora/internal/middleware"
	"Finora/internal/notify"
	"Finora/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece os handlers HTTP
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	userSvc *user.Service,
	jwtSvc *middleware.JwtService,
	authSvc *auth.Service,
	transactionSvc *transaction.Service,
	reportSvc *report.Service,
	settingSvc *report.SettingService,
	jobSvc *report.JobService,
	emailChannel *notify.EmailChannel,
	whatsappChannel *notify.WhatsAppChannel,
) *routes.Handler {
	return &routes.Handler{
		UserService:        *userSvc,
		JwtService:         jwtSvc,
		AuthService:        *authSvc,
		TransactionService: *transactionSvc,
		ReportService:      *reportSvc,
		SettingService:     *settingSvc,
		JobService:         jobSvc,

		EmailChannel:    emailChannel,
		WhatsAppChannel: whatsappChannel,
	}
}
