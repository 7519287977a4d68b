package infrastructure

import (
	"context"

	"Finora/config"
	appErrors "Finora/internal/errors"
	"Finora/internal/logger"
	"Finora/internal/notify"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender envia e-mails transacionais via Resend.
type ResendEmailSender struct {
	client *resend.Client
	from   string
}

var _ notify.EmailSender = (*ResendEmailSender)(nil)

func NewResendEmailSender(cfg *config.Config) *ResendEmailSender {
	return &ResendEmailSender{
		client: resend.NewClient(cfg.Resend.APIKey),
		from:   cfg.Resend.MailerSender,
	}
}

func (s *ResendEmailSender) SendEmail(ctx context.Context, to, subject, html, text string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return appErrors.NewExternalServiceError("resend", err)
	}

	logger.Debug().Str("email_id", sent.Id).Msg("e-mail aceito pelo Resend")

	return nil
}
