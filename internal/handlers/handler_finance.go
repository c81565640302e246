package handlers

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type financeHandler struct {
	reportingService portssvc.ReportingService
	location         *time.Location
	now              func() time.Time
}

func registerFinanceRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, location *time.Location) {
	h := newFinanceHandler(reportingService, location, time.Now)
	rg.GET("/finance/summary", h.getSummary)
}

func newFinanceHandler(reportingService portssvc.ReportingService, location *time.Location, now func() time.Time) *financeHandler {
	if location == nil {
		location = time.UTC
	}
	return &financeHandler{reportingService: reportingService, location: location, now: now}
}

// currentYear is the calendar year on the club's wall clock.
func (h *financeHandler) currentYear() int {
	return h.now().In(h.location).Year()
}

// getSummary godoc
// @Summary Yearly financial summary
// @Description Revenue, expense, balance and the count of pending monthly dues.
// @Tags finance
// @Produce  json
// @Param   year query int false "Calendar year, defaults to the current one"
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/summary [get]
func (h *financeHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year := h.currentYear()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year must be a number"})
			return
		}
		year = parsed
	}

	summary, err := h.reportingService.Summarize(c.Request.Context(), year)
	if err != nil {
		respondError(c, logger, err, "Failed to compute financial summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary))
}
