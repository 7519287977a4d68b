package report

import (
	"context"

	"Finora/internal/logger"
)

// Channel é um meio de entrega do relatório. CanDeliver decide pela forma de
// contato do destinatário; Send efetua a entrega.
type Channel interface {
	Name() string
	CanDeliver(recipient Recipient) bool
	Send(ctx context.Context, rpt *Report, recipient Recipient, frequency FrequencyType) error
}

type DeliveryResult struct {
	Channel   string `json:"channel"`
	Delivered bool   `json:"delivered"`
}

// Dispatcher tenta os canais em ordem e para no primeiro envio bem sucedido.
// Um relatório nunca é entregue por mais de um canal.
type Dispatcher struct {
	Channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{Channels: channels}
}

func (d *Dispatcher) Deliver(ctx context.Context, rpt *Report, recipient Recipient, frequency FrequencyType) DeliveryResult {
	for _, channel := range d.Channels {
		if !channel.CanDeliver(recipient) {
			continue
		}

		if err := channel.Send(ctx, rpt, recipient, frequency); err != nil {
			logger.Warn().
				Err(err).
				Str("channel", channel.Name()).
				Str("user_id", recipient.UserId.String()).
				Msg("falha no envio, tentando próximo canal")
			continue
		}

		return DeliveryResult{Channel: channel.Name(), Delivered: true}
	}

	return DeliveryResult{Delivered: false}
}
