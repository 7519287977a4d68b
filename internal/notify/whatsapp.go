package notify

import (
	"context"
	"strings"

	"Finora/internal/domain/report"
)

// WhatsAppSender envia uma mensagem de texto para um número no formato
// "whatsapp:+E164".
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

type WhatsAppChannel struct {
	Sender WhatsAppSender
}

func NewWhatsAppChannel(sender WhatsAppSender) *WhatsAppChannel {
	return &WhatsAppChannel{Sender: sender}
}

func (c *WhatsAppChannel) Name() string {
	return "whatsapp"
}

func (c *WhatsAppChannel) CanDeliver(recipient report.Recipient) bool {
	return recipient.Phone != ""
}

func (c *WhatsAppChannel) Send(ctx context.Context, rpt *report.Report, recipient report.Recipient, frequency report.FrequencyType) error {
	body := PlainText(rpt, recipient.Name, frequency)
	return c.Sender.SendWhatsApp(ctx, FormatWhatsAppAddress(recipient.Phone), body)
}

// FormatWhatsAppAddress garante o prefixo "whatsapp:" e o "+" do E.164.
func FormatWhatsAppAddress(phone string) string {
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return "whatsapp:" + phone
}
