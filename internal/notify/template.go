package notify

import (
	"fmt"
	"html/template"
	"strings"

	"Finora/internal/domain/report"
	"Finora/internal/pkg"
)

var emailTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:24px;">
    <div style="background-color:#1a1a2e;border-radius:8px 8px 0 0;padding:24px;text-align:center;">
      <h1 style="color:#ffffff;margin:0;font-size:20px;">{{.Frequency}} Financial Report</h1>
      <p style="color:#9ca3af;margin:8px 0 0;font-size:14px;">{{.Period}}</p>
    </div>
    <div style="background-color:#ffffff;padding:24px;">
      <p style="font-size:15px;color:#111827;">Hi {{.Username}},</p>
      <p style="font-size:14px;color:#4b5563;">Here is your financial summary for {{.Period}}.</p>
      <table width="100%" cellpadding="0" cellspacing="0" style="margin:16px 0;">
        <tr>
          <td style="padding:12px;background-color:#ecfdf5;border-radius:6px;">
            <span style="font-size:12px;color:#065f46;">Income</span><br>
            <strong style="font-size:18px;color:#065f46;">{{.Income}}</strong>
          </td>
          <td style="width:12px;"></td>
          <td style="padding:12px;background-color:#fef2f2;border-radius:6px;">
            <span style="font-size:12px;color:#991b1b;">Expenses</span><br>
            <strong style="font-size:18px;color:#991b1b;">{{.Expenses}}</strong>
          </td>
        </tr>
        <tr><td style="height:12px;" colspan="3"></td></tr>
        <tr>
          <td style="padding:12px;background-color:#eff6ff;border-radius:6px;">
            <span style="font-size:12px;color:#1e40af;">Balance</span><br>
            <strong style="font-size:18px;color:#1e40af;">{{.Balance}}</strong>
          </td>
          <td style="width:12px;"></td>
          <td style="padding:12px;background-color:#f5f3ff;border-radius:6px;">
            <span style="font-size:12px;color:#5b21b6;">Savings Rate</span><br>
            <strong style="font-size:18px;color:#5b21b6;">{{.SavingsRate}}</strong>
          </td>
        </tr>
      </table>
      {{if .TopCategories}}
      <h3 style="font-size:15px;color:#111827;margin:20px 0 8px;">Top Spending Categories</h3>
      <table width="100%" cellpadding="0" cellspacing="0">
        {{range .TopCategories}}
        <tr>
          <td style="padding:8px 0;border-bottom:1px solid #e5e7eb;font-size:14px;color:#374151;">{{.Name}}</td>
          <td style="padding:8px 0;border-bottom:1px solid #e5e7eb;font-size:14px;color:#111827;text-align:right;">{{.Amount}} <span style="color:#9ca3af;">({{.Percent}})</span></td>
        </tr>
        {{end}}
      </table>
      {{end}}
      {{if .Insights}}
      <h3 style="font-size:15px;color:#111827;margin:20px 0 8px;">Insights</h3>
      <ul style="padding-left:18px;margin:0;">
        {{range .Insights}}
        <li style="font-size:14px;color:#4b5563;margin-bottom:6px;">{{.}}</li>
        {{end}}
      </ul>
      {{end}}
    </div>
    <div style="background-color:#f9fafb;border-radius:0 0 8px 8px;padding:16px;text-align:center;">
      <p style="font-size:12px;color:#9ca3af;margin:0;">You receive this report because scheduled reports are enabled in your Finora settings.</p>
    </div>
  </div>
</body>
</html>`))

type emailData struct {
	Username      string
	Frequency     string
	Period        string
	Income        string
	Expenses      string
	Balance       string
	SavingsRate   string
	TopCategories []emailCategory
	Insights      []string
}

type emailCategory struct {
	Name    string
	Amount  string
	Percent string
}

// RenderEmailHTML monta o corpo HTML do relatório.
func RenderEmailHTML(rpt *report.Report, username string, frequency report.FrequencyType) (string, error) {
	data := emailData{
		Username:    username,
		Frequency:   frequencyLabel(frequency),
		Period:      rpt.Period,
		Income:      pkg.FormatCurrency(rpt.Summary.Income),
		Expenses:    pkg.FormatCurrency(rpt.Summary.Expenses),
		Balance:     pkg.FormatCurrency(rpt.Summary.Balance),
		SavingsRate: formatPercent(rpt.Summary.SavingsRate),
		Insights:    rpt.Insights,
	}

	for _, cat := range rpt.Summary.TopCategories {
		data.TopCategories = append(data.TopCategories, emailCategory{
			Name:    cat.Name,
			Amount:  pkg.FormatCurrency(cat.Amount),
			Percent: formatPercent(cat.Percent),
		})
	}

	var b strings.Builder
	if err := emailTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
