package contracts

import (
	"time"

	"Finora/internal/domain/report"
)

type ReportSettingResponse struct {
	Frequency      string     `json:"frequency"`
	IsEnabled      bool       `json:"isEnabled"`
	LastSentDate   *time.Time `json:"lastSentDate"`
	NextReportDate time.Time  `json:"nextReportDate"`
}

type ReportSettingUpdateRequest struct {
	Frequency *string `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	IsEnabled *bool   `json:"isEnabled" binding:"omitempty"`
}

type GeneratedReportResponse struct {
	Report *report.Report `json:"report"`
}

type ReportDeliveryResponse struct {
	Message string `json:"message"`
	Channel string `json:"channel"`
	Period  string `json:"period"`
}

type ReportJobResponse struct {
	Message string           `json:"message"`
	Result  report.JobResult `json:"result"`
}
