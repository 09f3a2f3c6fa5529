package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/reports"
)

// reportService loads a user's ledger and hands it to the reports package.
type reportService struct {
	db    *gorm.DB
	title string
	now   Clock
}

// NewReportService creates a new ReportServicer. title heads generated
// statements; now supplies "today" for goal deadlines.
func NewReportService(db *gorm.DB, title string, now Clock) ReportServicer {
	if now == nil {
		now = time.Now
	}
	return &reportService{db: db, title: title, now: now}
}

func (s *reportService) transactions(userID string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	err := s.db.Where("user_id = ?", userID).
		Order(transactionOrder).
		Limit(ReportRowLimit).
		Find(&txs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

func (s *reportService) budgets(userID string) ([]models.Budget, error) {
	budgets := []models.Budget{}
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

func (s *reportService) goals(userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

func (s *reportService) today() models.Date {
	return models.DateOf(s.now())
}

// MonthlyTrend returns income and expenses per month.
func (s *reportService) MonthlyTrend(userID string) (map[string]reports.MonthTotals, error) {
	txs, err := s.transactions(userID)
	if err != nil {
		return nil, err
	}
	return reports.MonthlyTrend(txs), nil
}

// CategorySummary returns expenses per category.
func (s *reportService) CategorySummary(userID string) (map[string]float64, error) {
	txs, err := s.transactions(userID)
	if err != nil {
		return nil, err
	}
	return reports.CategorySummary(txs), nil
}

// BudgetStatus returns spending against each budget.
func (s *reportService) BudgetStatus(userID string) (map[string]reports.BudgetStatusEntry, error) {
	budgets, err := s.budgets(userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactions(userID)
	if err != nil {
		return nil, err
	}
	return reports.BudgetStatus(budgets, txs), nil
}

// GoalProgress returns progress for each goal.
func (s *reportService) GoalProgress(userID string) (map[string]reports.GoalProgressEntry, error) {
	goals, err := s.goals(userID)
	if err != nil {
		return nil, err
	}
	return reports.GoalProgress(goals, s.today()), nil
}

// Summary combines the overview reports from a single read of the ledger.
func (s *reportService) Summary(userID string) (*Summary, error) {
	txs, err := s.transactions(userID)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgets(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals(userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		IncomeVsExpenses:  reports.IncomeVsExpenses(txs),
		CategoryBreakdown: reports.CategorySummary(txs),
		BudgetStatus:      reports.BudgetStatus(budgets, txs),
		Goals:             reports.GoalProgress(goals, s.today()),
	}, nil
}

// Dashboard returns the headline totals and counts.
func (s *reportService) Dashboard(userID string) (*reports.DashboardSummary, error) {
	txs, err := s.transactions(userID)
	if err != nil {
		return nil, err
	}

	var budgetCount, goalCount int64
	if err := s.db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&budgetCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.Goal{}).Where("user_id = ?", userID).Count(&goalCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := reports.Dashboard(txs, int(budgetCount), int(goalCount))
	return &summary, nil
}

// Statement renders a PDF of the user's transactions dated within [start, end].
func (s *reportService) Statement(user *models.User, start, end models.Date) ([]byte, error) {
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	txs := []models.Transaction{}
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", user.ID, start, end).
		Order(transactionOrder).
		Limit(ReportRowLimit).
		Find(&txs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	pdf, err := reports.Statement(reports.StatementInput{
		Title:        s.title,
		User:         user,
		Start:        start,
		End:          end,
		Transactions: txs,
		GeneratedAt:  s.now(),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pdf, nil
}
