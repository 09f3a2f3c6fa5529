package models

// BudgetPeriod represents the period label of a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending in a category. The period is stored but not applied
// when computing spend.
type Budget struct {
	Base
	Category    string       `gorm:"size:100;not null" json:"category"`
	LimitAmount float64      `gorm:"not null" json:"limit_amount"`
	Period      BudgetPeriod `gorm:"size:50;not null" json:"period"`
}
