package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Finora/config"
	"Finora/internal/domain/transaction"
	appErrors "Finora/internal/errors"

	"google.golang.org/genai"
)

// GeminiVoiceParser extrai um rascunho de transação de um transcript de voz
// usando o modelo configurado.
type GeminiVoiceParser struct {
	cfg config.GeminiConfig
}

var _ transaction.VoiceParser = (*GeminiVoiceParser)(nil)

func NewGeminiVoiceParser(cfg *config.Config) *GeminiVoiceParser {
	return &GeminiVoiceParser{cfg: cfg.Gemini}
}

type voicePayload struct {
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Category      string  `json:"category"`
	PaymentMethod string  `json:"paymentMethod"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
}

func (g *GeminiVoiceParser) ParseVoiceTranscript(ctx context.Context, transcript string) (*transaction.VoiceTransaction, error) {
	if g.cfg.APIKey == "" {
		return nil, appErrors.ErrVoiceParserDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, appErrors.NewExternalServiceError("gemini", err)
	}

	now := time.Now()
	prompt := buildVoiceParsingPrompt(transcript, now)

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return nil, appErrors.NewExternalServiceError("gemini", err)
	}

	var payload voicePayload
	if err := json.Unmarshal([]byte(extractJSONObject(resp.Text())), &payload); err != nil {
		return nil, appErrors.NewExternalServiceError("gemini", err)
	}

	return &transaction.VoiceTransaction{
		Title:         payload.Title,
		Amount:        payload.Amount,
		Type:          transaction.Types(payload.Type),
		Category:      payload.Category,
		PaymentMethod: transaction.PaymentMethod(payload.PaymentMethod),
		Date:          transaction.ResolveVoiceDate(payload.Date, now),
		Description:   payload.Description,
	}, nil
}

func buildVoiceParsingPrompt(transcript string, now time.Time) string {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")

	var b strings.Builder

	b.WriteString("You are a financial assistant that extracts transaction details from a voice transcript.\n")
	b.WriteString("Return ONLY a valid JSON object, no markdown, no code blocks, no arrays.\n\n")
	fmt.Fprintf(&b, "Today is %s. Yesterday was %s. Tomorrow is %s.\n\n", today, yesterday, tomorrow)
	fmt.Fprintf(&b, "Transcript: %q\n\n", transcript)
	b.WriteString("Fields (omit what you cannot extract with confidence, but always try to extract a title):\n")
	b.WriteString("- title: merchant name or a short description of the transaction\n")
	b.WriteString("- amount: positive number, currency symbols removed\n")
	b.WriteString("- type: INCOME (earned, received, salary) or EXPENSE (spent, paid, bought)\n")
	b.WriteString("- category: one of groceries, dining, transportation, utilities, entertainment, shopping, healthcare, travel, housing, income, other\n")
	b.WriteString("- paymentMethod: one of CASH, CARD, UPI, WALLET, OTHER (Google Pay/PhonePe/Paytm map to UPI)\n")
	fmt.Fprintf(&b, "- date: YYYY-MM-DD; \"today\" is %s, \"yesterday\" is %s; default to %s when no date is mentioned\n", today, yesterday, today)
	b.WriteString("- description: additional notes\n\n")
	fmt.Fprintf(&b, "Example: \"Spent 500 rupees on groceries at Walmart today, paid by card\" -> "+
		`{"title":"Walmart","amount":500,"type":"EXPENSE","category":"groceries","paymentMethod":"CARD","date":"%s"}`, today)

	return b.String()
}

// extractJSONObject isola o objeto JSON da resposta, tolerando cercas de
// markdown e texto ao redor.
func extractJSONObject(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return text[start : end+1]
}
