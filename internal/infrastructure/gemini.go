package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"Finora/config"
	"Finora/internal/domain/report"
	appErrors "Finora/internal/errors"
	"Finora/internal/pkg"

	"google.golang.org/genai"
)

// GeminiInsightGenerator produz observações curtas sobre o resumo financeiro
// usando o modelo configurado.
type GeminiInsightGenerator struct {
	cfg config.GeminiConfig
}

var _ report.InsightGenerator = (*GeminiInsightGenerator)(nil)

func NewGeminiInsightGenerator(cfg *config.Config) *GeminiInsightGenerator {
	return &GeminiInsightGenerator{cfg: cfg.Gemini}
}

func (g *GeminiInsightGenerator) GenerateInsights(ctx context.Context, period string, summary report.Summary) ([]string, error) {
	if g.cfg.APIKey == "" {
		return []string{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, appErrors.NewExternalServiceError("gemini", err)
	}

	prompt := buildInsightPrompt(period, summary)

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), nil)
	if err != nil {
		return nil, appErrors.NewExternalServiceError("gemini", err)
	}

	return parseInsightLines(resp.Text()), nil
}

func buildInsightPrompt(period string, summary report.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a personal finance assistant. Based on the summary below for %s, ", period)
	b.WriteString("write exactly 3 short, friendly insights in plain text, one per line, no numbering, no markdown.\n\n")
	fmt.Fprintf(&b, "Income: %s\n", pkg.FormatCurrency(summary.Income))
	fmt.Fprintf(&b, "Expenses: %s\n", pkg.FormatCurrency(summary.Expenses))
	fmt.Fprintf(&b, "Balance: %s\n", pkg.FormatCurrency(summary.Balance))
	fmt.Fprintf(&b, "Savings rate: %.2f%%\n", summary.SavingsRate)

	if len(summary.TopCategories) > 0 {
		b.WriteString("Top spending categories:\n")
		for _, cat := range summary.TopCategories {
			fmt.Fprintf(&b, "- %s: %s (%.1f%% of expenses)\n", cat.Name, pkg.FormatCurrency(cat.Amount), cat.Percent)
		}
	}

	return b.String()
}

func parseInsightLines(text string) []string {
	lines := strings.Split(text, "\n")
	insights := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line == "" {
			continue
		}
		insights = append(insights, line)
	}
	return insights
}
