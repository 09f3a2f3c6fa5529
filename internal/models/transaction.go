package models

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// DefaultPaymentMethod is used when a transaction does not name one.
const DefaultPaymentMethod = "cash"

// Transaction represents a single income or expense entry
type Transaction struct {
	Base
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"size:50;not null" json:"type"`
	Category    string          `gorm:"size:100;not null" json:"category"`
	Description *string         `gorm:"size:500" json:"description"`
	Method      string          `gorm:"size:100;not null" json:"method"`
	Date        Date            `gorm:"type:date;not null;index" json:"date"`
}
