package notify

import (
	"fmt"
	"strings"

	"Finora/internal/domain/report"
	"Finora/internal/pkg"
)

// Subject monta o assunto do e-mail: "Monthly Financial Report - January 1–31, 2025".
func Subject(rpt *report.Report, frequency report.FrequencyType) string {
	return fmt.Sprintf("%s Financial Report - %s", frequencyLabel(frequency), rpt.Period)
}

// PlainText é o corpo texto compartilhado entre o e-mail e o WhatsApp.
func PlainText(rpt *report.Report, username string, frequency report.FrequencyType) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", username)
	fmt.Fprintf(&b, "Your %s Financial Report (%s)\n\n", frequencyLabel(frequency), rpt.Period)
	fmt.Fprintf(&b, "Income: %s\n", pkg.FormatCurrency(rpt.Summary.Income))
	fmt.Fprintf(&b, "Expenses: %s\n", pkg.FormatCurrency(rpt.Summary.Expenses))
	fmt.Fprintf(&b, "Balance: %s\n", pkg.FormatCurrency(rpt.Summary.Balance))
	fmt.Fprintf(&b, "Savings Rate: %.2f%%\n", rpt.Summary.SavingsRate)

	if len(rpt.Summary.TopCategories) > 0 {
		b.WriteString("\nTop Spending Categories:\n")
		for i, cat := range rpt.Summary.TopCategories {
			fmt.Fprintf(&b, "%d. %s: %s (%.1f%%)\n", i+1, cat.Name, pkg.FormatCurrency(cat.Amount), cat.Percent)
		}
	}

	if len(rpt.Insights) > 0 {
		b.WriteString("\nInsights:\n")
		for _, insight := range rpt.Insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	return b.String()
}

func frequencyLabel(frequency report.FrequencyType) string {
	switch frequency {
	case report.Daily:
		return "Daily"
	case report.Weekly:
		return "Weekly"
	case report.Yearly:
		return "Yearly"
	case report.Monthly:
		return "Monthly"
	}
	if frequency == "" {
		return "Monthly"
	}
	return string(frequency[:1]) + strings.ToLower(string(frequency[1:]))
}
