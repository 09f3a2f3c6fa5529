package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/reports"
	"fintrack/internal/services"
)

// --- mock report service ---

type mockReportService struct {
	monthlyTrendFn    func(userID string) (map[string]reports.MonthTotals, error)
	categorySummaryFn func(userID string) (map[string]float64, error)
	budgetStatusFn    func(userID string) (map[string]reports.BudgetStatusEntry, error)
	goalProgressFn    func(userID string) (map[string]reports.GoalProgressEntry, error)
	summaryFn         func(userID string) (*services.Summary, error)
	dashboardFn       func(userID string) (*reports.DashboardSummary, error)
	statementFn       func(user *models.User, start, end models.Date) ([]byte, error)
}

func (m *mockReportService) MonthlyTrend(userID string) (map[string]reports.MonthTotals, error) {
	if m.monthlyTrendFn != nil {
		return m.monthlyTrendFn(userID)
	}
	return map[string]reports.MonthTotals{}, nil
}

func (m *mockReportService) CategorySummary(userID string) (map[string]float64, error) {
	if m.categorySummaryFn != nil {
		return m.categorySummaryFn(userID)
	}
	return map[string]float64{}, nil
}

func (m *mockReportService) BudgetStatus(userID string) (map[string]reports.BudgetStatusEntry, error) {
	if m.budgetStatusFn != nil {
		return m.budgetStatusFn(userID)
	}
	return map[string]reports.BudgetStatusEntry{}, nil
}

func (m *mockReportService) GoalProgress(userID string) (map[string]reports.GoalProgressEntry, error) {
	if m.goalProgressFn != nil {
		return m.goalProgressFn(userID)
	}
	return map[string]reports.GoalProgressEntry{}, nil
}

func (m *mockReportService) Summary(userID string) (*services.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID)
	}
	return &services.Summary{}, nil
}

func (m *mockReportService) Dashboard(userID string) (*reports.DashboardSummary, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(userID)
	}
	return &reports.DashboardSummary{}, nil
}

func (m *mockReportService) Statement(user *models.User, start, end models.Date) ([]byte, error) {
	if m.statementFn != nil {
		return m.statementFn(user, start, end)
	}
	return []byte("%PDF-1.3"), nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUser(testUser()))
	auth.GET("/reports/monthly", handler.MonthlyTrend)
	auth.GET("/reports/category", handler.CategorySummary)
	auth.GET("/reports/budgets", handler.BudgetStatus)
	auth.GET("/reports/goals", handler.GoalProgress)
	auth.GET("/reports/summary", handler.Summary)
	auth.GET("/reports/statement.pdf", handler.Statement)
	auth.GET("/dashboard", handler.Dashboard)
	return r
}

func TestReportHandler_Maps(t *testing.T) {
	svc := &mockReportService{
		categorySummaryFn: func(string) (map[string]float64, error) {
			return map[string]float64{"Food": 40}, nil
		},
		monthlyTrendFn: func(string) (map[string]reports.MonthTotals, error) {
			return map[string]reports.MonthTotals{"2024-01": {Income: 100, Expenses: 40}}, nil
		},
		budgetStatusFn: func(string) (map[string]reports.BudgetStatusEntry, error) {
			return map[string]reports.BudgetStatusEntry{"Food": {Limit: 0, Spent: 10, Remaining: 0, Percentage: 0}}, nil
		},
	}
	r := setupReportRouter(NewReportHandler(svc))

	rec := doRequest(r, "GET", "/reports/category", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if len(result) != 1 || result["Food"].(float64) != 40 {
		t.Errorf("unexpected category summary %v", result)
	}

	rec = doRequest(r, "GET", "/reports/monthly", "")
	month := parseJSON(t, rec)["2024-01"].(map[string]interface{})
	if month["income"].(float64) != 100 || month["expenses"].(float64) != 40 {
		t.Errorf("unexpected month %v", month)
	}

	rec = doRequest(r, "GET", "/reports/budgets", "")
	food := parseJSON(t, rec)["Food"].(map[string]interface{})
	if food["percentage"].(float64) != 0 {
		t.Errorf("expected 0 percentage, got %v", food["percentage"])
	}

	for _, path := range []string{"/reports/goals", "/reports/summary", "/dashboard"} {
		if rec := doRequest(r, "GET", path, ""); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestReportHandler_Errors(t *testing.T) {
	svc := &mockReportService{
		dashboardFn: func(string) (*reports.DashboardSummary, error) {
			return nil, apperrors.ErrInternalServer
		},
	}
	r := setupReportRouter(NewReportHandler(svc))

	rec := doRequest(r, "GET", "/dashboard", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
}

func TestReportHandler_Statement(t *testing.T) {
	t.Run("returns a pdf attachment", func(t *testing.T) {
		var gotUser *models.User
		svc := &mockReportService{
			statementFn: func(user *models.User, _, _ models.Date) ([]byte, error) {
				gotUser = user
				return []byte("%PDF-1.3 test"), nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/statement.pdf?start_date=2024-01-01&end_date=2024-01-31", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("Content-Type") != "application/pdf" {
			t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
		}
		if want := `attachment; filename="statement-2024-01-01-2024-01-31.pdf"`; rec.Header().Get("Content-Disposition") != want {
			t.Errorf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Error("expected pdf body")
		}
		if gotUser == nil || gotUser.ID != testUserID {
			t.Error("expected the authenticated user to be passed through")
		}
	})

	t.Run("returns 422 without dates", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))
		assertFieldError(t, doRequest(r, "GET", "/reports/statement.pdf", ""), "start_date")
	})
}
