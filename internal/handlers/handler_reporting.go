package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/dto"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService services.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService services.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService services.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// getTrialBalance godoc
// @Summary Get trial balance report
// @Description Aggregates debits and credits per account over an inclusive date range
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]interface{} "Invalid range"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	if params.From == "" || params.To == "" {
		respondError(c, apperrors.NewValidationError("from and to are required"), "")
		return
	}

	from, errFrom := time.Parse(domain.DateLayout, params.From)
	to, errTo := time.Parse(domain.DateLayout, params.To)
	if errFrom != nil || errTo != nil {
		respondError(c, apperrors.NewValidationError("from and to must be dates in YYYY-MM-DD format"), "")
		return
	}

	tb, err := h.reportingService.GetTrialBalance(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}
