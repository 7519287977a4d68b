package routes

import (
	"net/http"
	"time"

	"Finora/internal/contracts"
	"Finora/internal/domain/report"
	appErrors "Finora/internal/errors"
	"Finora/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetReportHistory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	records, total, err := h.ReportService.GetHistory(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(records, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetReportSetting(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	setting, err := h.SettingService.GetByUserID(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSettingResponse(setting))
}

func (h *Handler) UpdateReportSetting(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.ReportSettingUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	var frequency *report.FrequencyType
	if body.Frequency != nil {
		f := report.FrequencyType(*body.Frequency)
		frequency = &f
	}

	ctx := c.Request.Context()
	setting, err := h.SettingService.UpdateSetting(ctx, userID, frequency, body.IsEnabled)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSettingResponse(setting))
}

func (h *Handler) GenerateReport(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	from, to, err := parseReportRange(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	rpt, err := h.ReportService.GenerateReport(ctx, userID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if rpt == nil {
		h.respondError(c, appErrors.ErrNoReportData)
		return
	}

	c.JSON(http.StatusOK, contracts.GeneratedReportResponse{Report: rpt})
}

func (h *Handler) SendTestEmail(c *gin.Context) {
	h.sendTestReport(c, h.EmailChannel)
}

func (h *Handler) SendTestWhatsApp(c *gin.Context) {
	h.sendTestReport(c, h.WhatsAppChannel)
}

func (h *Handler) sendTestReport(c *gin.Context, channel report.Channel) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	from, to, err := parseReportRange(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	rpt, err := h.ReportService.GenerateReport(ctx, userID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if rpt == nil {
		h.respondError(c, appErrors.ErrNoReportData)
		return
	}

	userEntity, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	recipient := report.Recipient{
		UserId: userEntity.Id,
		Name:   userEntity.Name,
		Email:  userEntity.Email,
		Phone:  userEntity.Phone,
	}
	if email := c.Query("email"); email != "" {
		recipient.Email = email
	}
	if phone := c.Query("phone"); phone != "" {
		recipient.Phone = phone
	}

	if !channel.CanDeliver(recipient) {
		h.respondError(c, appErrors.NewValidationError(channel.Name(), "destinatário sem forma de contato para este canal"))
		return
	}

	if err := channel.Send(ctx, rpt, recipient, report.Monthly); err != nil {
		h.respondError(c, appErrors.ErrReportDeliveryFailed.WithError(err))
		return
	}

	c.JSON(http.StatusOK, contracts.ReportDeliveryResponse{
		Message: "Relatório de teste enviado com sucesso",
		Channel: channel.Name(),
		Period:  rpt.Period,
	})
}

func (h *Handler) TriggerReportJob(c *gin.Context) {
	result := h.JobService.RunReportJob(c.Request.Context())

	if !result.Success {
		c.JSON(http.StatusInternalServerError, contracts.ReportJobResponse{
			Message: "Falha ao executar o ciclo de relatórios",
			Result:  result,
		})
		return
	}

	c.JSON(http.StatusOK, contracts.ReportJobResponse{
		Message: "Ciclo de relatórios executado com sucesso",
		Result:  result,
	})
}

func toSettingResponse(setting *report.ReportSetting) contracts.ReportSettingResponse {
	return contracts.ReportSettingResponse{
		Frequency:      string(setting.Frequency),
		IsEnabled:      setting.IsEnabled,
		LastSentDate:   setting.LastSentDate,
		NextReportDate: setting.NextReportDate,
	}
}

// parseReportRange lê from/to da query; sem parâmetros usa os últimos 30 dias.
func parseReportRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	to := now
	from := now.AddDate(0, 0, -29)

	if toStr := c.Query("to"); toStr != "" {
		parsed, err := parseDateParam(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, appErrors.NewValidationError("to", "formato inválido, use YYYY-MM-DD")
		}
		to = parsed
		from = to.AddDate(0, 0, -29)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := parseDateParam(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, appErrors.NewValidationError("from", "formato inválido, use YYYY-MM-DD")
		}
		from = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, appErrors.NewValidationError("to", "deve ser posterior a data inicial")
	}

	return from, to, nil
}
