package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn  func(userID string, in services.TransactionInput) (*models.Transaction, error)
	getTransactionByIDFn func(userID string, transactionID uint) (*models.Transaction, error)
	listTransactionsFn   func(userID string, page pagination.PageRequest) ([]models.Transaction, error)
	listByDateRangeFn    func(userID string, start, end models.Date) ([]models.Transaction, error)
	updateTransactionFn  func(userID string, transactionID uint, p services.TransactionPatch) (*models.Transaction, error)
	deleteTransactionFn  func(userID string, transactionID uint) error
}

func (m *mockTransactionService) CreateTransaction(userID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(userID string, transactionID uint) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactions(userID string, page pagination.PageRequest) ([]models.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(userID, page)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactionsByDateRange(userID string, start, end models.Date) ([]models.Transaction, error) {
	if m.listByDateRangeFn != nil {
		return m.listByDateRangeFn(userID, start, end)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID string, transactionID uint, p services.TransactionPatch) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, p)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID string, transactionID uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUser(testUser()))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.ListTransactions)
	auth.GET("/transactions/date-range/transactions", handler.ListTransactionsByDateRange)
	auth.GET("/transactions/:id", handler.GetTransactionByID)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 with the stored transaction", func(t *testing.T) {
		var got services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(userID string, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{
					Base:     models.Base{ID: 1, UserID: userID},
					Amount:   in.Amount,
					Type:     in.Type,
					Category: in.Category,
					Method:   models.DefaultPaymentMethod,
					Date:     in.Date,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":50,"type":"expense","category":"Food","date":"2024-01-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["amount"].(float64) != 50 || result["date"] != "2024-01-01" || result["method"] != "cash" {
			t.Errorf("unexpected body: %v", result)
		}
		if got.Date != models.NewDate(2024, 1, 1) || got.Description != nil {
			t.Errorf("unexpected input: %+v", got)
		}
	})

	validation := []struct {
		name  string
		body  string
		field string
	}{
		{"zero amount", `{"amount":0,"type":"expense","category":"Food","date":"2024-01-01"}`, "amount"},
		{"negative amount", `{"amount":-1,"type":"expense","category":"Food","date":"2024-01-01"}`, "amount"},
		{"invalid type", `{"amount":5,"type":"transfer","category":"Food","date":"2024-01-01"}`, "type"},
		{"empty category", `{"amount":5,"type":"expense","category":"","date":"2024-01-01"}`, "category"},
		{"missing date", `{"amount":5,"type":"expense","category":"Food"}`, "date"},
		{"amount as string", `{"amount":"5","type":"expense","category":"Food","date":"2024-01-01"}`, "amount"},
	}
	for _, tt := range validation {
		t.Run("returns 422 on "+tt.name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
			assertFieldError(t, doRequest(r, "POST", "/transactions", tt.body), tt.field)
		})
	}

	t.Run("returns 422 on malformed date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		rec := doRequest(r, "POST", "/transactions",
			`{"amount":5,"type":"expense","category":"Food","date":"01/02/2024"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/transactions", handler.CreateTransaction)

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":5,"type":"expense","category":"Food","date":"2024-01-01"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("applies default pagination", func(t *testing.T) {
		var got pagination.PageRequest
		txSvc := &mockTransactionService{
			listTransactionsFn: func(userID string, page pagination.PageRequest) ([]models.Transaction, error) {
				if userID != testUserID {
					t.Errorf("expected scoped user, got %s", userID)
				}
				got = page
				return []models.Transaction{{Base: models.Base{ID: 1}}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Skip != 0 || got.Limit != 0 {
			t.Errorf("expected zero page for service defaults, got %+v", got)
		}
		if len(parseJSONArray(t, rec)) != 1 {
			t.Error("expected one transaction")
		}
	})

	t.Run("returns 422 on negative skip", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		assertFieldError(t, doRequest(r, "GET", "/transactions?skip=-1", ""), "skip")
	})

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions?limit=0", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_ListByDateRange(t *testing.T) {
	t.Run("parses both dates", func(t *testing.T) {
		var gotStart, gotEnd models.Date
		txSvc := &mockTransactionService{
			listByDateRangeFn: func(_ string, start, end models.Date) ([]models.Transaction, error) {
				gotStart, gotEnd = start, end
				return []models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/date-range/transactions?start_date=2024-01-01&end_date=2024-01-31", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotStart != models.NewDate(2024, 1, 1) || gotEnd != models.NewDate(2024, 1, 31) {
			t.Errorf("unexpected range %s..%s", gotStart, gotEnd)
		}
	})

	t.Run("returns 422 when end_date is missing", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		assertFieldError(t, doRequest(r, "GET", "/transactions/date-range/transactions?start_date=2024-01-01", ""), "end_date")
	})

	t.Run("returns 422 on a bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		assertFieldError(t, doRequest(r, "GET", "/transactions/date-range/transactions?start_date=jan&end_date=2024-01-31", ""), "start_date")
	})

	t.Run("surfaces an inverted range", func(t *testing.T) {
		txSvc := &mockTransactionService{
			listByDateRangeFn: func(_ string, _, _ models.Date) ([]models.Transaction, error) {
				return nil, apperrors.ErrInvalidDateRange
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions/date-range/transactions?start_date=2024-02-01&end_date=2024-01-01", "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE_RANGE")
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getTransactionByIDFn: func(_ string, id uint) (*models.Transaction, error) {
				return &models.Transaction{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/7", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["id"].(float64) != 7 {
			t.Error("expected id 7")
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getTransactionByIDFn: func(_ string, _ uint) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/999", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})

	t.Run("returns 422 on a non-numeric id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		assertFieldError(t, doRequest(r, "GET", "/transactions/abc", ""), "id")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("forwards present fields only", func(t *testing.T) {
		var got services.TransactionPatch
		txSvc := &mockTransactionService{
			updateTransactionFn: func(_ string, id uint, p services.TransactionPatch) (*models.Transaction, error) {
				got = p
				return &models.Transaction{Base: models.Base{ID: id}, Amount: 75}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/transactions/1", `{"amount":75,"description":null}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Amount.Set || got.Amount.Value != 75 {
			t.Errorf("expected amount 75, got %+v", got.Amount)
		}
		if !got.Description.Set || got.Description.Value != nil {
			t.Errorf("expected explicit null description, got %+v", got.Description)
		}
		if got.Category.Set || got.Type.Set || got.Method.Set || got.Date.Set {
			t.Errorf("unexpected fields set: %+v", got)
		}
	})

	validation := []struct {
		name  string
		body  string
		field string
	}{
		{"zero amount", `{"amount":0}`, "amount"},
		{"null amount", `{"amount":null}`, "amount"},
		{"invalid type", `{"type":"gift"}`, "type"},
		{"empty category", `{"category":""}`, "category"},
	}
	for _, tt := range validation {
		t.Run("returns 422 on "+tt.name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
			assertFieldError(t, doRequest(r, "PUT", "/transactions/1", tt.body), tt.field)
		})
	}
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 204 and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, audit))

		rec := doRequest(r, "DELETE", "/transactions/3", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if len(audit.calls) != 1 || audit.calls[0].resourceID != "3" || audit.calls[0].resourceType != "transaction" {
			t.Errorf("unexpected audit calls: %v", audit.calls)
		}
	})

	t.Run("returns 404 for another user's transaction", func(t *testing.T) {
		audit := &mockAuditService{}
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(_ string, _ uint) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))

		rec := doRequest(r, "DELETE", "/transactions/3", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if len(audit.calls) != 0 {
			t.Error("failed deletes must not be audited")
		}
	})
}
