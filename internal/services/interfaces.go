package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/patch"
	"fintrack/internal/reports"
)

// UserPatch lists the user fields a client may change.
type UserPatch struct {
	FullName patch.Field[string]
	Currency patch.Field[string]
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, fullName, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	ListUsers(page pagination.PageRequest) ([]models.User, error)
	UpdateUser(id string, p UserPatch) (*models.User, error)
	DeleteUser(id string) error
}

// TransactionInput holds the fields of a new transaction.
type TransactionInput struct {
	Amount      float64
	Type        models.TransactionType
	Category    string
	Description *string
	Method      string
	Date        models.Date
}

// TransactionPatch lists the transaction fields a client may change.
type TransactionPatch struct {
	Amount      patch.Field[float64]
	Type        patch.Field[models.TransactionType]
	Category    patch.Field[string]
	Description patch.Field[*string]
	Method      patch.Field[string]
	Date        patch.Field[models.Date]
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetTransactionByID(userID string, transactionID uint) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.PageRequest) ([]models.Transaction, error)
	ListTransactionsByDateRange(userID string, start, end models.Date) ([]models.Transaction, error)
	UpdateTransaction(userID string, transactionID uint, p TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID string, transactionID uint) error
}

// BudgetInput holds the fields of a new budget.
type BudgetInput struct {
	Category    string
	LimitAmount float64
	Period      models.BudgetPeriod
}

// BudgetPatch lists the budget fields a client may change.
type BudgetPatch struct {
	Category    patch.Field[string]
	LimitAmount patch.Field[float64]
	Period      patch.Field[models.BudgetPeriod]
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID string, in BudgetInput) (*models.Budget, error)
	GetBudgetByID(userID string, budgetID uint) (*models.Budget, error)
	ListBudgets(userID string, page pagination.PageRequest) ([]models.Budget, error)
	UpdateBudget(userID string, budgetID uint, p BudgetPatch) (*models.Budget, error)
	DeleteBudget(userID string, budgetID uint) error
}

// GoalInput holds the fields of a new goal.
type GoalInput struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      models.Date
}

// GoalPatch lists the goal fields a client may change. Completion is
// derived and cannot be set directly.
type GoalPatch struct {
	Name          patch.Field[string]
	TargetAmount  patch.Field[float64]
	CurrentAmount patch.Field[float64]
	Deadline      patch.Field[models.Date]
}

// GoalServicer defines the contract for savings goal business logic.
type GoalServicer interface {
	CreateGoal(userID string, in GoalInput) (*models.Goal, error)
	GetGoalByID(userID string, goalID uint) (*models.Goal, error)
	ListGoals(userID string, page pagination.PageRequest) ([]models.Goal, error)
	UpdateGoal(userID string, goalID uint, p GoalPatch) (*models.Goal, error)
	DeleteGoal(userID string, goalID uint) error
}

// NotificationServicer defines the contract for user notifications.
type NotificationServicer interface {
	CreateNotification(userID, title, message string) (*models.Notification, error)
	GetNotificationByID(userID string, notificationID uint) (*models.Notification, error)
	ListNotifications(userID string, page pagination.PageRequest) ([]models.Notification, error)
	MarkRead(userID string, notificationID uint) (*models.Notification, error)
	DeleteNotification(userID string, notificationID uint) error
}

// Summary bundles the reports shown together on the overview screen.
type Summary struct {
	IncomeVsExpenses  reports.IncomeExpenses               `json:"income_vs_expenses"`
	CategoryBreakdown map[string]float64                   `json:"category_breakdown"`
	BudgetStatus      map[string]reports.BudgetStatusEntry `json:"budget_status"`
	Goals             map[string]reports.GoalProgressEntry `json:"goals"`
}

// ReportServicer loads a user's ledger and derives reports from it.
type ReportServicer interface {
	MonthlyTrend(userID string) (map[string]reports.MonthTotals, error)
	CategorySummary(userID string) (map[string]float64, error)
	BudgetStatus(userID string) (map[string]reports.BudgetStatusEntry, error)
	GoalProgress(userID string) (map[string]reports.GoalProgressEntry, error)
	Summary(userID string) (*Summary, error)
	Dashboard(userID string) (*reports.DashboardSummary, error)
	Statement(user *models.User, start, end models.Date) ([]byte, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

// Clock returns the current time. Services that depend on "today" take one
// so tests can pin the date.
type Clock func() time.Time
