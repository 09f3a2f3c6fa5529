package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/models"
)

func tx(id uint, typ models.TransactionType, amount float64, category, date string) models.Transaction {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Base:     models.Base{ID: id},
		Type:     typ,
		Amount:   amount,
		Category: category,
		Date:     d,
	}
}

func sampleLedger() []models.Transaction {
	return []models.Transaction{
		tx(1, models.TransactionTypeIncome, 3000, "Salary", "2024-01-31"),
		tx(2, models.TransactionTypeExpense, 50.10, "Food", "2024-01-05"),
		tx(3, models.TransactionTypeExpense, 20.20, "Food", "2024-02-02"),
		tx(4, models.TransactionTypeExpense, 900, "Rent", "2024-02-01"),
		tx(5, models.TransactionTypeIncome, 100, "Gift", "2024-02-14"),
	}
}

func TestCategorySummary(t *testing.T) {
	got := CategorySummary(sampleLedger())

	assert.Len(t, got, 2)
	assert.InDelta(t, 70.30, got["Food"], 1e-9)
	assert.InDelta(t, 900, got["Rent"], 1e-9)
	assert.NotContains(t, got, "Salary", "income categories are excluded")

	assert.Empty(t, CategorySummary(nil))
}

func TestCategorySummary_ExactDecimalSums(t *testing.T) {
	txs := []models.Transaction{
		tx(1, models.TransactionTypeExpense, 0.1, "Snacks", "2024-01-01"),
		tx(2, models.TransactionTypeExpense, 0.2, "Snacks", "2024-01-01"),
	}
	assert.Equal(t, 0.3, CategorySummary(txs)["Snacks"])
}

func TestMonthlyTrend(t *testing.T) {
	got := MonthlyTrend(sampleLedger())

	require.Len(t, got, 2)
	assert.Equal(t, MonthTotals{Income: 3000, Expenses: 50.10}, got["2024-01"])
	assert.InDelta(t, 100, got["2024-02"].Income, 1e-9)
	assert.InDelta(t, 920.20, got["2024-02"].Expenses, 1e-9)
}

func TestMonthlyTrend_UnknownTypeCountsAsExpense(t *testing.T) {
	got := MonthlyTrend([]models.Transaction{tx(1, "transfer", 40, "Misc", "2024-03-09")})
	assert.Equal(t, MonthTotals{Expenses: 40}, got["2024-03"])
}

func TestIncomeVsExpenses(t *testing.T) {
	got := IncomeVsExpenses(sampleLedger())

	assert.InDelta(t, 3100, got.Income, 1e-9)
	assert.InDelta(t, 970.30, got.Expenses, 1e-9)
	assert.InDelta(t, 2129.70, got.Net, 1e-9)

	assert.Equal(t, IncomeExpenses{}, IncomeVsExpenses(nil))
}

func TestBudgetStatus(t *testing.T) {
	budgets := []models.Budget{
		{Base: models.Base{ID: 1}, Category: "Food", LimitAmount: 100},
		{Base: models.Base{ID: 2}, Category: "Rent", LimitAmount: 500},
		{Base: models.Base{ID: 3}, Category: "Travel", LimitAmount: 200},
	}

	got := BudgetStatus(budgets, sampleLedger())
	require.Len(t, got, 3)

	food := got["Food"]
	assert.Equal(t, 100.0, food.Limit)
	assert.InDelta(t, 70.30, food.Spent, 1e-9)
	assert.InDelta(t, 29.70, food.Remaining, 1e-9)
	assert.InDelta(t, 70.30, food.Percentage, 1e-9)

	rent := got["Rent"]
	assert.Equal(t, 900.0, rent.Spent)
	assert.Equal(t, 0.0, rent.Remaining, "remaining never goes negative")
	assert.Equal(t, 100.0, rent.Percentage, "percentage is capped")

	assert.Equal(t, BudgetStatusEntry{Limit: 200, Remaining: 200}, got["Travel"])
}

func TestBudgetStatus_SharedCategoryLastWins(t *testing.T) {
	budgets := []models.Budget{
		{Base: models.Base{ID: 7}, Category: "Food", LimitAmount: 300},
		{Base: models.Base{ID: 2}, Category: "Food", LimitAmount: 100},
	}

	got := BudgetStatus(budgets, sampleLedger())
	require.Len(t, got, 1)
	assert.Equal(t, 300.0, got["Food"].Limit)
}

func TestBudgetStatus_ZeroLimit(t *testing.T) {
	budgets := []models.Budget{{Base: models.Base{ID: 1}, Category: "Food"}}
	got := BudgetStatus(budgets, sampleLedger())
	assert.Equal(t, 0.0, got["Food"].Percentage)
}

func TestGoalProgress(t *testing.T) {
	today := models.NewDate(2024, 6, 1)
	goals := []models.Goal{
		{Name: "Car", TargetAmount: 10000, CurrentAmount: 2500, Deadline: models.NewDate(2024, 6, 11)},
		{Name: "Trip", TargetAmount: 500, CurrentAmount: 800, Completed: true, Deadline: models.NewDate(2024, 5, 1)},
		{Name: "Odd", TargetAmount: 0, CurrentAmount: 10, Deadline: today},
	}

	got := GoalProgress(goals, today)
	require.Len(t, got, 3)

	assert.Equal(t, GoalProgressEntry{Target: 10000, Current: 2500, Percentage: 25, DaysLeft: 10}, got["Car"])

	trip := got["Trip"]
	assert.Equal(t, 100.0, trip.Percentage)
	assert.True(t, trip.Completed)
	assert.Equal(t, 0, trip.DaysLeft, "past deadlines clamp to zero")

	assert.Equal(t, 0.0, got["Odd"].Percentage)
	assert.Equal(t, 0, got["Odd"].DaysLeft)
}

func TestDashboard(t *testing.T) {
	got := Dashboard(sampleLedger(), 2, 3)

	assert.InDelta(t, 3100, got.TotalIncome, 1e-9)
	assert.InDelta(t, 970.30, got.TotalExpenses, 1e-9)
	assert.InDelta(t, 2129.70, got.NetBalance, 1e-9)
	assert.Equal(t, 5, got.TransactionCount)
	assert.Equal(t, 2, got.BudgetCount)
	assert.Equal(t, 3, got.GoalCount)

	empty := Dashboard(nil, 0, 0)
	assert.Equal(t, DashboardSummary{}, empty)
}
