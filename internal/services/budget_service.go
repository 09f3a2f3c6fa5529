package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget for a category. Several budgets may
// name the same category.
func (s *budgetService) CreateBudget(userID string, in BudgetInput) (*models.Budget, error) {
	if in.LimitAmount <= 0 {
		return nil, invalidField("limit_amount", "gt", "limit_amount must be greater than zero")
	}

	period := in.Period
	if period == "" {
		period = models.BudgetPeriodMonthly
	}

	budget := &models.Budget{
		Base:        models.Base{UserID: userID},
		Category:    in.Category,
		LimitAmount: in.LimitAmount,
		Period:      period,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID string, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// ListBudgets returns a page of the user's budgets in creation order.
func (s *budgetService) ListBudgets(userID string, page pagination.PageRequest) ([]models.Budget, error) {
	budgets := []models.Budget{}
	err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// UpdateBudget applies the fields present in p.
func (s *budgetService) UpdateBudget(userID string, budgetID uint, p BudgetPatch) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if !p.Merge(budget) {
		return budget, nil
	}
	if budget.LimitAmount <= 0 {
		return nil, invalidField("limit_amount", "gt", "limit_amount must be greater than zero")
	}
	if budget.Period == "" {
		budget.Period = models.BudgetPeriodMonthly
	}

	if err := s.db.Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget.
func (s *budgetService) DeleteBudget(userID string, budgetID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// Merge copies the present fields into b and reports whether any were set.
func (p BudgetPatch) Merge(b *models.Budget) bool {
	changed := p.Category.Apply(&b.Category)
	changed = p.LimitAmount.Apply(&b.LimitAmount) || changed
	changed = p.Period.Apply(&b.Period) || changed
	return changed
}
