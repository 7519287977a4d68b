package infrastructure

import (
	"context"

	"Finora/config"
	appErrors "Finora/internal/errors"
	"Finora/internal/logger"
	"Finora/internal/notify"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioWhatsAppSender envia mensagens pelo canal WhatsApp da Twilio.
type TwilioWhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

var _ notify.WhatsAppSender = (*TwilioWhatsAppSender)(nil)

func NewTwilioWhatsAppSender(cfg *config.Config) *TwilioWhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.Twilio.AccountSID,
		Password: cfg.Twilio.AuthToken,
	})

	return &TwilioWhatsAppSender{
		client: client,
		from:   cfg.Twilio.WhatsAppFrom,
	}
}

func (s *TwilioWhatsAppSender) SendWhatsApp(_ context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return appErrors.NewExternalServiceError("twilio", err)
	}

	if msg.Sid != nil {
		logger.Debug().Str("sid", *msg.Sid).Msg("mensagem WhatsApp aceita pela Twilio")
	}

	return nil
}
