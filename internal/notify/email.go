package notify

import (
	"context"

	"Finora/internal/domain/report"
)

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html, text string) error
}

type EmailChannel struct {
	Sender EmailSender
}

func NewEmailChannel(sender EmailSender) *EmailChannel {
	return &EmailChannel{Sender: sender}
}

func (c *EmailChannel) Name() string {
	return "email"
}

func (c *EmailChannel) CanDeliver(recipient report.Recipient) bool {
	return recipient.Email != ""
}

func (c *EmailChannel) Send(ctx context.Context, rpt *report.Report, recipient report.Recipient, frequency report.FrequencyType) error {
	html, err := RenderEmailHTML(rpt, recipient.Name, frequency)
	if err != nil {
		return err
	}

	subject := Subject(rpt, frequency)
	text := PlainText(rpt, recipient.Name, frequency)

	return c.Sender.SendEmail(ctx, recipient.Email, subject, html, text)
}
