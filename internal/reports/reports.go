// Package reports derives summaries from a user's ledger. Every function is
// pure: callers load the rows and the result is recomputed on each call.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

var hundred = decimal.NewFromInt(100)

// MonthTotals is the income and spending of one calendar month.
type MonthTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// IncomeExpenses totals a set of transactions.
type IncomeExpenses struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// BudgetStatusEntry compares a budget's limit with the spending in its category.
type BudgetStatusEntry struct {
	Limit      float64 `json:"limit"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// GoalProgressEntry reports how far a goal is from its target and deadline.
type GoalProgressEntry struct {
	Target     float64 `json:"target"`
	Current    float64 `json:"current"`
	Percentage float64 `json:"percentage"`
	Completed  bool    `json:"completed"`
	DaysLeft   int     `json:"days_left"`
}

// DashboardSummary is the headline view of a user's finances.
type DashboardSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`
	BudgetCount      int     `json:"budget_count"`
	GoalCount        int     `json:"goal_count"`
}

// CategorySummary sums expense amounts per category. Categories without
// expenses are omitted.
func CategorySummary(txs []models.Transaction) map[string]float64 {
	sums := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}

	out := make(map[string]float64, len(sums))
	for category, sum := range sums {
		out[category] = sum.InexactFloat64()
	}
	return out
}

// MonthlyTrend buckets transactions by the "YYYY-MM" of their date. Anything
// that is not income counts as an expense.
func MonthlyTrend(txs []models.Transaction) map[string]MonthTotals {
	type totals struct{ income, expenses decimal.Decimal }
	months := map[string]*totals{}

	for _, tx := range txs {
		key := tx.Date.Month()
		m, ok := months[key]
		if !ok {
			m = &totals{}
			months[key] = m
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.TransactionTypeIncome {
			m.income = m.income.Add(amount)
		} else {
			m.expenses = m.expenses.Add(amount)
		}
	}

	out := make(map[string]MonthTotals, len(months))
	for key, m := range months {
		out[key] = MonthTotals{Income: m.income.InexactFloat64(), Expenses: m.expenses.InexactFloat64()}
	}
	return out
}

// IncomeVsExpenses totals income and expenses and their difference.
func IncomeVsExpenses(txs []models.Transaction) IncomeExpenses {
	income, expenses := totals(txs)
	return IncomeExpenses{
		Income:   income.InexactFloat64(),
		Expenses: expenses.InexactFloat64(),
		Net:      income.Sub(expenses).InexactFloat64(),
	}
}

// BudgetStatus reports spending against each budget, keyed by category.
// Spending counts every expense in the category whatever the budget's
// period. When budgets share a category the one with the highest id wins.
func BudgetStatus(budgets []models.Budget, txs []models.Transaction) map[string]BudgetStatusEntry {
	spent := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if tx.Type == models.TransactionTypeExpense {
			spent[tx.Category] = spent[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
		}
	}

	ordered := make([]models.Budget, len(budgets))
	copy(ordered, budgets)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	out := make(map[string]BudgetStatusEntry, len(ordered))
	for _, b := range ordered {
		limit := decimal.NewFromFloat(b.LimitAmount)
		s := spent[b.Category]

		remaining := limit.Sub(s)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		out[b.Category] = BudgetStatusEntry{
			Limit:      b.LimitAmount,
			Spent:      s.InexactFloat64(),
			Remaining:  remaining.InexactFloat64(),
			Percentage: percentage(s, limit),
		}
	}
	return out
}

// GoalProgress reports progress for each goal keyed by name, with days left
// counted from today.
func GoalProgress(goals []models.Goal, today models.Date) map[string]GoalProgressEntry {
	out := make(map[string]GoalProgressEntry, len(goals))
	for _, g := range goals {
		daysLeft := 0
		if !g.Deadline.IsZero() {
			daysLeft = today.DaysUntil(g.Deadline)
		}
		if daysLeft < 0 {
			daysLeft = 0
		}

		out[g.Name] = GoalProgressEntry{
			Target:     g.TargetAmount,
			Current:    g.CurrentAmount,
			Percentage: percentage(decimal.NewFromFloat(g.CurrentAmount), decimal.NewFromFloat(g.TargetAmount)),
			Completed:  g.Completed,
			DaysLeft:   daysLeft,
		}
	}
	return out
}

// Dashboard computes the headline totals and counts.
func Dashboard(txs []models.Transaction, budgetCount, goalCount int) DashboardSummary {
	income, expenses := totals(txs)
	return DashboardSummary{
		TotalIncome:      income.InexactFloat64(),
		TotalExpenses:    expenses.InexactFloat64(),
		NetBalance:       income.Sub(expenses).InexactFloat64(),
		TransactionCount: len(txs),
		BudgetCount:      budgetCount,
		GoalCount:        goalCount,
	}
}

func totals(txs []models.Transaction) (income, expenses decimal.Decimal) {
	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(amount)
		case models.TransactionTypeExpense:
			expenses = expenses.Add(amount)
		}
	}
	return income, expenses
}

// percentage returns part/whole*100 capped at 100, or 0 when whole is not positive.
func percentage(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	p := part.Div(whole).Mul(hundred)
	if p.GreaterThan(hundred) {
		p = hundred
	}
	return p.InexactFloat64()
}
