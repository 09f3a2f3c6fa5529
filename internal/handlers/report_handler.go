package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// ReportHandler serves aggregate reports over the user's ledger.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MonthlyTrend returns income and expenses per month.
// @Summary     Monthly trend
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]reports.MonthTotals "Totals keyed by YYYY-MM"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/monthly [get]
func (h *ReportHandler) MonthlyTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trend, err := h.reportService.MonthlyTrend(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// CategorySummary returns expense totals per category.
// @Summary     Spending by category
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Expense totals keyed by category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/category [get]
func (h *ReportHandler) CategorySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.CategorySummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// BudgetStatus compares each budget with the spending in its category.
// @Summary     Budget status
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]reports.BudgetStatusEntry "Status keyed by category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/budgets [get]
func (h *ReportHandler) BudgetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.reportService.BudgetStatus(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GoalProgress reports how far along each goal is.
// @Summary     Goal progress
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]reports.GoalProgressEntry "Progress keyed by goal name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/goals [get]
func (h *ReportHandler) GoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.reportService.GoalProgress(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Summary bundles the overview reports.
// @Summary     Report summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Dashboard returns the headline totals and counts.
// @Summary     Dashboard
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reports.DashboardSummary "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.reportService.Dashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Statement renders a PDF statement for an inclusive date range.
// @Summary     PDF statement
// @Tags        reports
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       start_date query string true "First day (YYYY-MM-DD)"
// @Param       end_date   query string true "Last day (YYYY-MM-DD)"
// @Success     200 {file}   binary "Statement"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Validation error"
// @Router      /reports/statement.pdf [get]
func (h *ReportHandler) Statement(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, err := queryDate(c, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := queryDate(c, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pdf, err := h.reportService.Statement(user, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("statement-%s-%s.pdf", start, end)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
