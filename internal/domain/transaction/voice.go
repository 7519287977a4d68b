package transaction

import (
	"context"
	"strings"
	"time"

	appErrors "Finora/internal/errors"

	"github.com/oklog/ulid/v2"
)

// VoiceTransaction é o rascunho de transação extraído de um transcript de voz.
// Campos que o modelo não conseguiu extrair ficam zerados; o cliente revisa o
// rascunho antes de criar a transação de fato.
type VoiceTransaction struct {
	Title         string        `json:"title,omitempty"`
	Amount        float64       `json:"amount,omitempty"`
	Type          Types         `json:"type,omitempty"`
	Category      string        `json:"category,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	Date          time.Time     `json:"date"`
	Description   string        `json:"description,omitempty"`
}

type VoiceParser interface {
	ParseVoiceTranscript(ctx context.Context, transcript string) (*VoiceTransaction, error)
}

// ParseVoiceInput transforma um transcript de voz em um rascunho de transação.
func (s *Service) ParseVoiceInput(ctx context.Context, userID ulid.ULID, transcript string) (*VoiceTransaction, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, appErrors.NewValidationError("transcript", "é obrigatório")
	}

	if s.Voice == nil {
		return nil, appErrors.ErrVoiceParserDisabled
	}

	parsed, err := s.Voice.ParseVoiceTranscript(ctx, transcript)
	if err != nil {
		return nil, err
	}

	normalizeVoiceTransaction(parsed, time.Now())
	return parsed, nil
}

// normalizeVoiceTransaction sanitiza a saída do modelo: enum fora do domínio é
// descartado ou mapeado para OTHER, valores negativos são zerados e datas
// implausíveis (ano passado distante) caem para hoje.
func normalizeVoiceTransaction(vt *VoiceTransaction, now time.Time) {
	vt.Title = strings.TrimSpace(vt.Title)
	vt.Description = strings.TrimSpace(vt.Description)
	vt.Category = strings.ToLower(strings.TrimSpace(vt.Category))

	if vt.Amount < 0 {
		vt.Amount = 0
	}

	vt.Type = Types(strings.ToUpper(strings.TrimSpace(string(vt.Type))))
	if vt.Type != "" && !vt.Type.IsValid() {
		vt.Type = ""
	}

	vt.PaymentMethod = PaymentMethod(strings.ToUpper(strings.TrimSpace(string(vt.PaymentMethod))))
	if vt.PaymentMethod != "" && !vt.PaymentMethod.IsValid() {
		vt.PaymentMethod = MethodOther
	}

	if vt.Date.IsZero() || vt.Date.Year() < now.Year()-1 {
		vt.Date = now
	}
}

// ResolveVoiceDate interpreta a data devolvida pelo modelo: datas relativas
// (today/yesterday/tomorrow), ISO ou RFC3339; qualquer outra coisa vira agora.
func ResolveVoiceDate(value string, now time.Time) time.Time {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)

	switch {
	case trimmed == "":
		return now
	case strings.Contains(lower, "today"):
		return now
	case strings.Contains(lower, "yesterday"):
		return now.AddDate(0, 0, -1)
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1)
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}

	return now
}
