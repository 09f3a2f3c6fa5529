package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// ReportRowLimit caps how many transactions a report reads.
const ReportRowLimit = 10000

// transactionOrder lists newest dates first; ties keep insertion order.
const transactionOrder = "date DESC, id ASC"

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, invalidField("amount", "gt", "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return nil, invalidField("date", "required", "date is required")
	}

	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = models.DefaultPaymentMethod
	}

	transaction := &models.Transaction{
		Base:        models.Base{UserID: userID},
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Description: in.Description,
		Method:      method,
		Date:        in.Date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactionByID returns a transaction if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID string, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions returns a page of the user's transactions, newest first.
func (s *transactionService) ListTransactions(userID string, page pagination.PageRequest) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := s.db.Where("user_id = ?", userID).
		Order(transactionOrder).
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListTransactionsByDateRange returns transactions dated within [start, end].
func (s *transactionService) ListTransactionsByDateRange(userID string, start, end models.Date) ([]models.Transaction, error) {
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	transactions := []models.Transaction{}
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order(transactionOrder).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// UpdateTransaction applies the fields present in p.
func (s *transactionService) UpdateTransaction(userID string, transactionID uint, p TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if !p.Merge(transaction) {
		return transaction, nil
	}
	if transaction.Amount <= 0 {
		return nil, invalidField("amount", "gt", "amount must be greater than zero")
	}
	if transaction.Date.IsZero() {
		return nil, invalidField("date", "required", "date is required")
	}
	if transaction.Method == "" {
		transaction.Method = models.DefaultPaymentMethod
	}

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction.
func (s *transactionService) DeleteTransaction(userID string, transactionID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Merge copies the present fields into t and reports whether any were set.
func (p TransactionPatch) Merge(t *models.Transaction) bool {
	changed := p.Amount.Apply(&t.Amount)
	changed = p.Type.Apply(&t.Type) || changed
	changed = p.Category.Apply(&t.Category) || changed
	changed = p.Description.Apply(&t.Description) || changed
	changed = p.Method.Apply(&t.Method) || changed
	changed = p.Date.Apply(&t.Date) || changed
	return changed
}

// invalidField reports a single failed rule the request validator could not
// catch, such as an explicit null on a required column.
func invalidField(field, rule, message string) error {
	return apperrors.WithDetails(apperrors.ErrValidation, []apperrors.FieldError{
		{Field: field, Rule: rule, Message: message},
	})
}
